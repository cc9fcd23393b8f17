package checker

import "testing"

func TestParseTarget(t *testing.T) {
	tests := []struct {
		input  string
		host   string
		scheme string
		port   string
	}{
		{"example.com", "example.com", "http", ""},
		{"http://example.com", "example.com", "http", ""},
		{"https://example.com", "example.com", "https", ""},
		{"https://example.com:8443/path", "example.com", "https", "8443"},
		{"example.com:8080", "example.com", "http", "8080"},
		{"192.0.2.10", "192.0.2.10", "http", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			info := ParseTarget(tt.input)
			if info.Host != tt.host {
				t.Errorf("Host = %q, want %q", info.Host, tt.host)
			}
			if info.Scheme != tt.scheme {
				t.Errorf("Scheme = %q, want %q", info.Scheme, tt.scheme)
			}
			if info.Port != tt.port {
				t.Errorf("Port = %q, want %q", info.Port, tt.port)
			}
		})
	}
}

func TestExtractHost(t *testing.T) {
	if got := ExtractHost("https://example.com:443/login"); got != "example.com" {
		t.Errorf("ExtractHost() = %q, want example.com", got)
	}
}

func TestNormalizeHTTPTarget(t *testing.T) {
	if got := NormalizeHTTPTarget("example.com"); got != "http://example.com" {
		t.Errorf("NormalizeHTTPTarget() = %q, want http://example.com", got)
	}
}
