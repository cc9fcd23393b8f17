package checker

import (
	"net/http"
	"strings"
)

// CookieFinding reports a Set-Cookie header missing Secure or HttpOnly.
type CookieFinding struct {
	Name              string `json:"name"`
	MissingSecure     bool   `json:"missing_secure"`
	MissingHTTPOnly   bool   `json:"missing_http_only"`
	OriginalSetCookie string `json:"original_set_cookie,omitempty"`
}

// AnalyzeCookies inspects Set-Cookie headers for missing Secure/HttpOnly flags.
func AnalyzeCookies(resp *http.Response) []CookieFinding {
	if resp == nil {
		return nil
	}

	raw := resp.Header["Set-Cookie"]
	if len(raw) == 0 {
		return nil
	}

	findings := make([]CookieFinding, 0)
	for _, cookie := range resp.Cookies() {
		finding := CookieFinding{
			Name:            cookie.Name,
			MissingSecure:   !cookie.Secure,
			MissingHTTPOnly: !cookie.HttpOnly,
			// Matched by name, not position: resp.Cookies() drops unparsable
			// headers, so indexes into raw can drift.
			OriginalSetCookie: originalHeaderFor(cookie.Name, raw),
		}
		if finding.MissingSecure || finding.MissingHTTPOnly {
			findings = append(findings, finding)
		}
	}
	return findings
}

func originalHeaderFor(name string, raw []string) string {
	for _, line := range raw {
		if strings.HasPrefix(strings.TrimSpace(line), name+"=") {
			return line
		}
	}
	return ""
}
