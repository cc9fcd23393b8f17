package checker

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"
)

func TestHTTPChecker_Name(t *testing.T) {
	chk := &HTTPChecker{}
	if got := chk.Name(); got != "check http" {
		t.Errorf("HTTPChecker.Name() = %v, want %v", got, "check http")
	}
}

func TestHTTPChecker_AllHeadersPresent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		h.Set("Content-Security-Policy", "default-src 'self'")
		h.Set("X-Frame-Options", "DENY")
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("Referrer-Policy", "no-referrer")
	}))
	defer srv.Close()

	chk := &HTTPChecker{Timeout: 5 * time.Second}
	result := chk.Check(context.Background(), srv.URL)

	if result.Status != StatusSecure {
		t.Errorf("Check() status = %v, want secure, notes=%q", result.Status, result.Notes)
	}
	if result.HTTPStatus != http.StatusOK {
		t.Errorf("HTTPStatus = %d, want 200", result.HTTPStatus)
	}
	if len(result.SecurityHeaders.Missing) != 0 {
		t.Errorf("Missing = %v, want none", result.SecurityHeaders.Missing)
	}
}

func TestHTTPChecker_MissingHeadersAndCookies(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "session", Value: "abc"})
	}))
	defer srv.Close()

	chk := &HTTPChecker{Timeout: 5 * time.Second}
	result := chk.Check(context.Background(), srv.URL)

	if result.Status != StatusInsecure {
		t.Errorf("Check() status = %v, want insecure", result.Status)
	}
	if len(result.SecurityHeaders.Missing) != len(securityHeaderSpecs) {
		t.Errorf("Missing = %v, want all %d headers", result.SecurityHeaders.Missing, len(securityHeaderSpecs))
	}
	if len(result.CookieFindings) != 1 {
		t.Fatalf("CookieFindings = %+v, want one", result.CookieFindings)
	}
	if !result.CookieFindings[0].MissingSecure || !result.CookieFindings[0].MissingHTTPOnly {
		t.Errorf("cookie finding = %+v, want both flags missing", result.CookieFindings[0])
	}
}

func TestHTTPChecker_RecordsRedirectChain(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" {
			http.Redirect(w, r, "/final", http.StatusFound)
		}
	}))
	defer srv.Close()

	chk := &HTTPChecker{Timeout: 5 * time.Second}
	result := chk.Check(context.Background(), srv.URL)

	if len(result.RedirectChain) != 1 {
		t.Fatalf("RedirectChain = %v, want one hop", result.RedirectChain)
	}
}

func TestHTTPChecker_UnreachableIsIndeterminate(t *testing.T) {
	host, port := closedPort(t)

	chk := &HTTPChecker{Timeout: 2 * time.Second}
	result := chk.Check(context.Background(), net.JoinHostPort(host, strconv.Itoa(port)))

	if result.Status != StatusIndeterminate {
		t.Errorf("Check() status = %v, want indeterminate", result.Status)
	}
	if result.Error == "" {
		t.Errorf("expected the transport error to be recorded")
	}
}
