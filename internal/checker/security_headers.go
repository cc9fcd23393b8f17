package checker

import (
	"net/http"
	"strings"
)

// HeaderStatus captures the evaluation of one security header.
type HeaderStatus struct {
	Present        bool     `json:"present"`
	Value          string   `json:"value,omitempty"`
	Severity       string   `json:"severity"`
	Issues         []string `json:"issues,omitempty"`
	Recommendation string   `json:"recommendation,omitempty"`
}

// SecurityHeadersResult represents security header analysis for one response.
type SecurityHeadersResult struct {
	Headers map[string]HeaderStatus `json:"headers"`
	Missing []string                `json:"missing"`
}

// securityHeaderSpec defines how one header is evaluated.
type securityHeaderSpec struct {
	Name           string
	Severity       string // "high" or "medium"
	CheckFunc      func(value string) []string
	Recommendation string
}

// securityHeaderSpecs is an ordered table so output is deterministic.
var securityHeaderSpecs = []securityHeaderSpec{
	{
		Name:           "Strict-Transport-Security",
		Severity:       "high",
		CheckFunc:      checkHSTS,
		Recommendation: "Add 'Strict-Transport-Security: max-age=31536000; includeSubDomains'",
	},
	{
		Name:           "Content-Security-Policy",
		Severity:       "high",
		CheckFunc:      checkCSP,
		Recommendation: "Implement a strict Content-Security-Policy appropriate for your application",
	},
	{
		Name:           "X-Frame-Options",
		Severity:       "high",
		CheckFunc:      checkXFrameOptions,
		Recommendation: "Add 'X-Frame-Options: DENY' or 'SAMEORIGIN'",
	},
	{
		Name:           "X-Content-Type-Options",
		Severity:       "high",
		CheckFunc:      checkXContentTypeOptions,
		Recommendation: "Add 'X-Content-Type-Options: nosniff'",
	},
	{
		Name:           "Referrer-Policy",
		Severity:       "medium",
		CheckFunc:      checkReferrerPolicy,
		Recommendation: "Add 'Referrer-Policy: strict-origin-when-cross-origin' or 'no-referrer'",
	},
}

// AnalyzeSecurityHeaders evaluates the response headers against the header
// table. Pure string predicates, no I/O.
func AnalyzeSecurityHeaders(headers http.Header) *SecurityHeadersResult {
	result := &SecurityHeadersResult{
		Headers: make(map[string]HeaderStatus),
		Missing: []string{},
	}

	for _, spec := range securityHeaderSpecs {
		value := headers.Get(spec.Name)
		if value == "" {
			result.Headers[spec.Name] = HeaderStatus{
				Present:        false,
				Severity:       spec.Severity,
				Recommendation: spec.Recommendation,
			}
			result.Missing = append(result.Missing, spec.Name)
			continue
		}

		result.Headers[spec.Name] = HeaderStatus{
			Present:  true,
			Value:    value,
			Severity: spec.Severity,
			Issues:   spec.CheckFunc(value),
		}
	}

	return result
}

func checkHSTS(value string) []string {
	issues := []string{}
	value = strings.ToLower(value)

	if !strings.Contains(value, "max-age=") {
		issues = append(issues, "Missing 'max-age' directive")
	} else if strings.Contains(value, "max-age=0") {
		issues = append(issues, "max-age=0 disables HSTS")
	}
	if !strings.Contains(value, "includesubdomains") {
		issues = append(issues, "Consider adding 'includeSubDomains'")
	}
	return issues
}

func checkCSP(value string) []string {
	issues := []string{}
	lower := strings.ToLower(value)

	if strings.Contains(lower, "'unsafe-inline'") {
		issues = append(issues, "'unsafe-inline' weakens CSP")
	}
	if strings.Contains(lower, "'unsafe-eval'") {
		issues = append(issues, "'unsafe-eval' allows dynamic code execution")
	}
	if !strings.Contains(lower, "default-src") {
		issues = append(issues, "No 'default-src' fallback directive")
	}
	return issues
}

func checkXFrameOptions(value string) []string {
	value = strings.ToUpper(value)
	if value == "DENY" || value == "SAMEORIGIN" {
		return nil
	}
	if strings.HasPrefix(value, "ALLOW-FROM") {
		return []string{"ALLOW-FROM is deprecated and not supported by modern browsers"}
	}
	return []string{"Invalid X-Frame-Options value, use 'DENY' or 'SAMEORIGIN'"}
}

func checkXContentTypeOptions(value string) []string {
	if strings.ToLower(value) == "nosniff" {
		return nil
	}
	return []string{"Invalid value, should be 'nosniff'"}
}

func checkReferrerPolicy(value string) []string {
	value = strings.ToLower(value)

	goodPolicies := []string{
		"no-referrer",
		"strict-origin",
		"strict-origin-when-cross-origin",
		"same-origin",
	}
	for _, policy := range goodPolicies {
		if strings.Contains(value, policy) {
			return nil
		}
	}

	if strings.Contains(value, "unsafe-url") {
		return []string{"Policy may leak sensitive information in referrer"}
	}
	return []string{"Unusual or weak referrer policy"}
}
