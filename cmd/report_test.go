package cmd

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hostsentry/hostsentry/internal/checker"
	sharedErrors "github.com/hostsentry/hostsentry/internal/shared/errors"
	"github.com/hostsentry/hostsentry/internal/vulnapi"
)

func sampleRunOutput() *RunOutput {
	return &RunOutput{
		Metadata: RunMetadata{
			StartAt:    time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
			CompleteAt: time.Date(2026, 8, 1, 12, 5, 0, 0, time.UTC),
			TotalHosts: 2,
		},
		Reports: []checker.HostReport{
			{
				Host:      "one.example.com",
				Addresses: []string{"192.0.2.1", "192.0.2.2"},
				Results: []checker.CheckResult{
					{Status: checker.StatusSecure},
					{Status: checker.StatusInsecure, Vulnerabilities: map[vulnapi.Severity][]vulnapi.Finding{
						vulnapi.SeverityHigh:     {{Title: "a"}, {Title: "b"}},
						vulnapi.SeverityCritical: {{Title: "c"}},
					}},
					{Status: checker.StatusIndeterminate},
				},
			},
			{
				Host:      "two.example.com",
				Addresses: nil,
			},
		},
	}
}

func TestBuildReportSummary(t *testing.T) {
	summary := buildReportSummary(sampleRunOutput())

	if len(summary.Hosts) != 2 {
		t.Fatalf("Hosts = %+v, want two entries", summary.Hosts)
	}

	first := summary.Hosts[0]
	if first.Addresses != 2 || first.Secure != 1 || first.Insecure != 1 || first.Indeterminate != 1 {
		t.Errorf("first host summary = %+v", first)
	}

	second := summary.Hosts[1]
	if second.Addresses != 0 || second.Secure != 0 || second.Insecure != 0 || second.Indeterminate != 0 {
		t.Errorf("second host summary = %+v, want all zero", second)
	}

	if summary.SeverityTotals[vulnapi.SeverityHigh] != 2 {
		t.Errorf("high total = %d, want 2", summary.SeverityTotals[vulnapi.SeverityHigh])
	}
	if summary.SeverityTotals[vulnapi.SeverityCritical] != 1 {
		t.Errorf("critical total = %d, want 1", summary.SeverityTotals[vulnapi.SeverityCritical])
	}
	if summary.SeverityTotals[vulnapi.SeverityLow] != 0 || summary.SeverityTotals[vulnapi.SeverityMedium] != 0 {
		t.Errorf("empty buckets = %+v, want zeros", summary.SeverityTotals)
	}
}

func TestLoadRunOutput(t *testing.T) {
	base := t.TempDir()
	runDir := filepath.Join(base, "scan-20260801-120000")
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		t.Fatal(err)
	}

	data, err := json.Marshal(sampleRunOutput())
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(runDir, "results.json"), data, 0o644); err != nil {
		t.Fatal(err)
	}

	output, err := loadRunOutput(base, "scan-20260801-120000")
	if err != nil {
		t.Fatalf("loadRunOutput() error = %v", err)
	}
	if output.Metadata.TotalHosts != 2 || len(output.Reports) != 2 {
		t.Errorf("loadRunOutput() = %+v", output.Metadata)
	}
}

func TestLoadRunOutput_MissingRun(t *testing.T) {
	_, err := loadRunOutput(t.TempDir(), "scan-20260101-000000")
	if !errors.Is(err, sharedErrors.ErrNoResults) {
		t.Errorf("loadRunOutput() error = %v, want ErrNoResults", err)
	}
}

func TestLoadRunOutput_RejectsTraversal(t *testing.T) {
	_, err := loadRunOutput(t.TempDir(), "../outside")
	if err == nil {
		t.Fatal("loadRunOutput() accepted a traversal run ID")
	}
	if errors.Is(err, sharedErrors.ErrNoResults) {
		t.Errorf("traversal should fail path resolution, got %v", err)
	}
}

func TestGeneratePDFReportBytes(t *testing.T) {
	content, err := generatePDFReportBytes("scan-20260801-120000", sampleRunOutput())
	if err != nil {
		t.Fatalf("generatePDFReportBytes() error = %v", err)
	}
	if len(content) == 0 {
		t.Fatal("generated PDF is empty")
	}
	if string(content[:4]) != "%PDF" {
		t.Errorf("content starts with %q, want a PDF header", content[:4])
	}
}
