package checker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/hostsentry/hostsentry/internal/vulnapi"
)

// HostReport aggregates everything one scan invocation learned about a host.
type HostReport struct {
	Host        string        `json:"host"`
	Addresses   []string      `json:"addresses"`
	StartedAt   time.Time     `json:"started_at"`
	CompletedAt time.Time     `json:"completed_at"`
	Results     []CheckResult `json:"results"`
	Notes       string        `json:"notes,omitempty"`
}

// HostScanner runs the full posture scan for a single host: resolve, then
// per address the fixed check sequence database → certificate → mail → ssh,
// then the HTTP inspection (and optional console capture) on the hostname.
type HostScanner struct {
	Resolver *Resolver
	Probe    ProbeConfig
	Lookup   *vulnapi.Client
	HTTP     *HTTPChecker     // nil disables HTTP inspection
	Console  *ConsoleChecker  // nil disables console capture
	Logger   *zap.SugaredLogger
}

// serviceChecks returns the per-address checks in their fixed execution
// order. The presentation layer relies on this ordering being deterministic.
func (s *HostScanner) serviceChecks() []Checker {
	return []Checker{
		&DatabaseChecker{Probe: s.Probe, Logger: s.Logger},
		&SelfSignedChecker{Probe: s.Probe, Logger: s.Logger},
		&MailChecker{Probe: s.Probe, Logger: s.Logger},
		&SSHChecker{Probe: s.Probe, Lookup: s.Lookup, Logger: s.Logger},
	}
}

// Scan always completes and returns a result for every check on every
// resolved address; individual failures are contained inside each check.
func (s *HostScanner) Scan(ctx context.Context, host string) HostReport {
	report := HostReport{
		Host:      host,
		StartedAt: time.Now().UTC(),
		Results:   []CheckResult{},
	}

	resolver := s.Resolver
	if resolver == nil {
		resolver = &Resolver{Logger: s.Logger}
	}

	report.Addresses = resolver.Resolve(ctx, host)
	if len(report.Addresses) == 0 {
		report.Notes = "no addresses resolved"
		report.CompletedAt = time.Now().UTC()
		return report
	}

	// Addresses sequentially, checks sequentially per address. One socket
	// at a time bounds resource usage; cross-host fan-out lives in Runner.
	for _, addr := range report.Addresses {
		for _, chk := range s.serviceChecks() {
			result := chk.Check(ctx, addr)
			result.Target = host
			result.Address = addr
			report.Results = append(report.Results, result)
		}
	}

	if s.HTTP != nil {
		result := s.HTTP.Check(ctx, host)
		result.Target = host
		report.Results = append(report.Results, result)
	}

	if s.Console != nil {
		result := s.Console.Check(ctx, host)
		result.Target = host
		report.Results = append(report.Results, result)
	}

	report.CompletedAt = time.Now().UTC()
	return report
}
