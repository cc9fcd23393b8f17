package checker

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

// ConsoleEntry is one console message or uncaught exception captured while
// loading the target page in a headless browser.
type ConsoleEntry struct {
	Kind    string `json:"kind"` // console API type ("error", "warning", ...) or "exception"
	Message string `json:"message"`
}

// ConsoleChecker loads the target in a headless browser and records console
// output and thrown exceptions. Disabled by default; requires a local
// Chrome/Chromium.
type ConsoleChecker struct {
	WaitTime time.Duration // how long to let the page settle after navigation
	Logger   *zap.SugaredLogger
}

// Check navigates to the target and collects console entries. Browser
// failures are downgraded to an indeterminate result, never fatal.
func (c *ConsoleChecker) Check(ctx context.Context, target string) CheckResult {
	result := CheckResult{
		Target:    target,
		CheckedAt: time.Now().UTC(),
	}

	wait := c.WaitTime
	if wait <= 0 {
		wait = 2 * time.Second
	}

	browserCtx, cancel := chromedp.NewContext(ctx)
	defer cancel()

	var mu sync.Mutex
	entries := []ConsoleEntry{}
	errorCount := 0

	chromedp.ListenTarget(browserCtx, func(ev interface{}) {
		switch e := ev.(type) {
		case *runtime.EventConsoleAPICalled:
			parts := make([]string, 0, len(e.Args))
			for _, arg := range e.Args {
				if arg.Description != "" {
					parts = append(parts, arg.Description)
				} else if len(arg.Value) > 0 {
					parts = append(parts, string(arg.Value))
				}
			}
			mu.Lock()
			entries = append(entries, ConsoleEntry{
				Kind:    string(e.Type),
				Message: strings.Join(parts, " "),
			})
			if e.Type == runtime.APITypeError {
				errorCount++
			}
			mu.Unlock()
		case *runtime.EventExceptionThrown:
			msg := ""
			if e.ExceptionDetails != nil {
				msg = e.ExceptionDetails.Error()
			}
			mu.Lock()
			entries = append(entries, ConsoleEntry{Kind: "exception", Message: msg})
			errorCount++
			mu.Unlock()
		}
	})

	u := NormalizeHTTPTarget(target)
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(u),
		chromedp.Sleep(wait),
	)
	if err != nil {
		if c.Logger != nil {
			c.Logger.Warnw("console capture failed", "target", target, "error", err)
		}
		result.Status = StatusIndeterminate
		result.Error = err.Error()
		return result
	}

	mu.Lock()
	result.ConsoleEntries = entries
	sawErrors := errorCount > 0
	mu.Unlock()

	if sawErrors {
		result.Status = StatusInsecure
		result.Notes = "page emitted console errors or uncaught exceptions"
	} else {
		result.Status = StatusSecure
		result.Notes = "no console errors captured"
	}
	return result
}

// Name returns the checker name
func (c *ConsoleChecker) Name() string {
	return "check console"
}
