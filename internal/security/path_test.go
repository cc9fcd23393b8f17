package security

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestResolveWithin(t *testing.T) {
	base := t.TempDir()

	tests := []struct {
		name    string
		elems   []string
		want    string
		wantErr bool
	}{
		{"run dir and file", []string{"scan-20260801-120000", "results.json"}, filepath.Join(base, "scan-20260801-120000", "results.json"), false},
		{"no elements", nil, base, false},
		{"dotdot inside stays safe", []string{"a", "b", "..", "c"}, filepath.Join(base, "a", "c"), false},
		{"absolute element is re-rooted", []string{"/etc/passwd"}, filepath.Join(base, "etc", "passwd"), false},
		{"single escape", []string{".."}, "", true},
		{"escape with path", []string{"..", "etc", "passwd"}, "", true},
		{"relative escape", []string{"a", "..", "..", "etc"}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveWithin(base, tt.elems...)
			if tt.wantErr {
				if !errors.Is(err, ErrPathEscape) {
					t.Fatalf("ResolveWithin() error = %v, want ErrPathEscape", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolveWithin() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ResolveWithin() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolveWithin_EmptyBase(t *testing.T) {
	if _, err := ResolveWithin("", "file.txt"); err == nil {
		t.Fatal("expected an error for an empty base directory")
	}
}
