// Package vulnapi implements the client for the external vulnerability audit
// API. It submits an inferred host identity and returns findings bucketed by
// CVSS severity.
package vulnapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	sharedErrors "github.com/hostsentry/hostsentry/internal/shared/errors"
)

// Severity is a qualitative CVSS bucket. Exactly four values exist; anything
// else coming back from the API is a data contract violation.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// SeverityOrder lists the buckets from most to least urgent, the order
// reports and terminal output walk them in.
var SeverityOrder = []Severity{SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow}

// ParseSeverity maps an API severity string onto the enum. Unrecognized
// input fails loudly rather than being dropped into an unexpected bucket.
func ParseSeverity(s string) (Severity, error) {
	switch Severity(strings.ToLower(s)) {
	case SeverityLow:
		return SeverityLow, nil
	case SeverityMedium:
		return SeverityMedium, nil
	case SeverityHigh:
		return SeverityHigh, nil
	case SeverityCritical:
		return SeverityCritical, nil
	}
	return "", fmt.Errorf("%w: %q", sharedErrors.ErrUnknownSeverity, s)
}

// Package identifies one operating system ("o") or application ("a") unit.
// Fields are always populated; unknown values carry the literal "unknown".
type Package struct {
	Part    string `json:"part"`
	Vendor  string `json:"vendor"`
	Product string `json:"product"`
	Version string `json:"version"`
}

// Query is the audit request body.
type Query struct {
	Software        []Package `json:"software"`
	OperatingSystem Package   `json:"operating_system"`
	Fields          []string  `json:"fields"`
}

// DefaultFields are the result fields requested from the audit endpoint.
var DefaultFields = []string{"title", "short_description", "ai_score", "metrics"}

// Finding is one vulnerability returned by the audit API.
type Finding struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	AIScore      *float64 `json:"ai_score,omitempty"`
	CVSSScore    float64  `json:"cvss_score"`
	CVSSSeverity Severity `json:"cvss_severity"`
}

// Wire types for the audit response:
// {result: [{vulnerabilities: [{title, short_description, ai_score, metrics: {cvss: {score, severity}}}]}]}
type auditResponse struct {
	Result []auditResult `json:"result"`
}

type auditResult struct {
	Vulnerabilities []auditVulnerability `json:"vulnerabilities"`
}

type auditVulnerability struct {
	Title            string   `json:"title"`
	ShortDescription string   `json:"short_description"`
	AIScore          *float64 `json:"ai_score"`
	Metrics          struct {
		CVSS struct {
			Score    float64 `json:"score"`
			Severity string  `json:"severity"`
		} `json:"cvss"`
	} `json:"metrics"`
}

const auditPath = "/api/v4/audit/host"

// Client talks to the vulnerability audit API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient builds a client for the given audit host. An empty apiKey sends
// the request unauthenticated.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				IdleConnTimeout:     30 * time.Second,
				MaxIdleConnsPerHost: 10,
			},
		},
	}
}

// Query submits the identity and returns findings grouped by severity. All
// four buckets are always present, even when empty, so callers never branch
// on a missing key. A non-2xx status or transport fault fails the lookup.
func (c *Client) Query(ctx context.Context, q Query) (map[Severity][]Finding, error) {
	body, err := json.Marshal(q)
	if err != nil {
		return nil, fmt.Errorf("%w: encode query: %v", sharedErrors.ErrLookup, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+auditPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %v", sharedErrors.ErrLookup, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-Api-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", sharedErrors.ErrLookup, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: status %d: %s", sharedErrors.ErrLookup, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var parsed auditResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", sharedErrors.ErrLookup, err)
	}

	return bucketFindings(parsed)
}

// bucketFindings walks the response in order and groups every vulnerability
// by severity. No finding is lost or duplicated; per-bucket order follows
// response order.
func bucketFindings(resp auditResponse) (map[Severity][]Finding, error) {
	buckets := map[Severity][]Finding{
		SeverityLow:      {},
		SeverityMedium:   {},
		SeverityHigh:     {},
		SeverityCritical: {},
	}

	for _, res := range resp.Result {
		for _, vuln := range res.Vulnerabilities {
			sev, err := ParseSeverity(vuln.Metrics.CVSS.Severity)
			if err != nil {
				return nil, fmt.Errorf("%w: %w", sharedErrors.ErrLookup, err)
			}
			buckets[sev] = append(buckets[sev], Finding{
				Title:        vuln.Title,
				Description:  vuln.ShortDescription,
				AIScore:      vuln.AIScore,
				CVSSScore:    vuln.Metrics.CVSS.Score,
				CVSSSeverity: sev,
			})
		}
	}

	return buckets, nil
}
