package checker

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/hostsentry/hostsentry/internal/vulnapi"
)

// Status is the tri-state outcome of a single service check.
type Status string

const (
	StatusSecure        Status = "secure"
	StatusInsecure      Status = "insecure"
	StatusIndeterminate Status = "indeterminate"
)

// CheckResult represents the outcome of a single check against one address.
type CheckResult struct {
	Target          string                                 `json:"target"`
	Address         string                                 `json:"address,omitempty"`
	Port            int                                    `json:"port,omitempty"`
	CheckedAt       time.Time                              `json:"checked_at"`
	Status          Status                                 `json:"status"`
	Banner          string                                 `json:"banner,omitempty"`
	Identity        *SystemIdentity                        `json:"identity,omitempty"`
	Vulnerabilities map[vulnapi.Severity][]vulnapi.Finding `json:"vulnerabilities,omitempty"`
	HTTPStatus      int                                    `json:"http_status,omitempty"`
	RedirectChain   []string                               `json:"redirect_chain,omitempty"`
	SecurityHeaders *SecurityHeadersResult                 `json:"security_headers,omitempty"`
	CookieFindings  []CookieFinding                        `json:"cookie_findings,omitempty"`
	ConsoleEntries  []ConsoleEntry                         `json:"console_entries,omitempty"`
	Notes           string                                 `json:"notes,omitempty"`
	Error           string                                 `json:"error,omitempty"`
}

// Checker is the interface that all check implementations must satisfy
type Checker interface {
	// Check performs the actual check logic for a single target
	Check(ctx context.Context, target string) CheckResult

	// Name returns the name of this checker (e.g., "check database", "check ssh")
	Name() string
}

// ProgressFunc is a callback invoked after each host finishes scanning.
type ProgressFunc func(report HostReport, duration float64)

// Runner fans a HostScanner out over multiple hosts with bounded concurrency
// and global rate limiting. Per-host check ordering is untouched; the fan-out
// is only across hosts, and the returned slice preserves input order.
type Runner struct {
	Concurrency int           // Maximum number of hosts scanned at once
	RateLimit   int           // Host scans per second (global)
	Timeout     time.Duration // Timeout for one full host scan
}

// Run executes the scanner against every host using a worker pool.
func (r *Runner) Run(ctx context.Context, hosts []string, scanner *HostScanner, progressFn ProgressFunc) []HostReport {
	concurrency := r.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}
	rateLimit := r.RateLimit
	if rateLimit <= 0 {
		rateLimit = 1
	}

	limiter := rate.NewLimiter(rate.Limit(rateLimit), rateLimit)

	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup
	reports := make([]HostReport, len(hosts))

	for i, host := range hosts {
		wg.Add(1)
		go func(idx int, h string) {
			defer wg.Done()

			// Acquire semaphore
			sem <- struct{}{}
			defer func() { <-sem }()

			// Wait for rate limiter
			_ = limiter.Wait(ctx)

			start := time.Now()

			scanCtx := ctx
			if r.Timeout > 0 {
				var cancel context.CancelFunc
				scanCtx, cancel = context.WithTimeout(ctx, r.Timeout)
				defer cancel()
			}

			report := scanner.Scan(scanCtx, h)
			reports[idx] = report

			if progressFn != nil {
				progressFn(report, time.Since(start).Seconds())
			}
		}(i, host)
	}

	wg.Wait()
	return reports
}
