package checker

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	consts "github.com/hostsentry/hostsentry/internal/shared/constants"
)

// HTTPChecker performs the HTTP response inspection: security headers,
// cookie flags, and the redirect chain.
type HTTPChecker struct {
	Timeout time.Duration
	Logger  *zap.SugaredLogger
}

// Check issues a GET against the target URL and analyzes the response.
func (h *HTTPChecker) Check(ctx context.Context, target string) CheckResult {
	result := CheckResult{
		Target:    target,
		CheckedAt: time.Now().UTC(),
	}

	timeout := h.Timeout
	if timeout <= 0 {
		timeout = consts.DefaultHTTPTimeout
	}

	redirects := []string{}
	client := &http.Client{
		Timeout: timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			redirects = append(redirects, req.URL.String())
			if len(via) >= 10 {
				return http.ErrUseLastResponse
			}
			return nil
		},
	}

	u := NormalizeHTTPTarget(target)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		result.Status = StatusIndeterminate
		result.Error = fmt.Sprintf("create request: %v", err)
		return result
	}

	resp, err := client.Do(req)
	if err != nil {
		if h.Logger != nil {
			h.Logger.Warnw("http inspection failed", "target", target, "error", err)
		}
		result.Status = StatusIndeterminate
		result.Error = err.Error()
		return result
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, consts.BannerReadLimit))

	result.HTTPStatus = resp.StatusCode
	result.RedirectChain = redirects
	result.SecurityHeaders = AnalyzeSecurityHeaders(resp.Header)
	result.CookieFindings = AnalyzeCookies(resp)

	switch {
	case len(result.SecurityHeaders.Missing) > 0 || len(result.CookieFindings) > 0:
		result.Status = StatusInsecure
		result.Notes = fmt.Sprintf("%d security header(s) missing, %d cookie finding(s)",
			len(result.SecurityHeaders.Missing), len(result.CookieFindings))
	default:
		result.Status = StatusSecure
		result.Notes = "security headers and cookie flags in place"
	}

	return result
}

// Name returns the checker name
func (h *HTTPChecker) Name() string {
	return "check http"
}
