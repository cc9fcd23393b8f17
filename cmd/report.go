package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/spf13/cobra"

	"github.com/hostsentry/hostsentry/internal/checker"
	"github.com/hostsentry/hostsentry/internal/security"
	consts "github.com/hostsentry/hostsentry/internal/shared/constants"
	sharedErrors "github.com/hostsentry/hostsentry/internal/shared/errors"
	"github.com/hostsentry/hostsentry/internal/vulnapi"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate a summary report for a scan run",
}

var reportGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a report for a completed scan run",
	RunE: func(cmd *cobra.Command, args []string) error {
		id, _ := cmd.Flags().GetString("id")
		format, _ := cmd.Flags().GetString("format")

		if id == "" {
			return fmt.Errorf("--id is required")
		}

		format = strings.ToLower(format)
		if format != "json" && format != "pdf" {
			return fmt.Errorf("invalid format: %s (must be json or pdf)", format)
		}

		output, err := loadRunOutput(resultsDir, id)
		if err != nil {
			return err
		}

		var content []byte
		var filename string

		switch format {
		case "json":
			content, err = json.MarshalIndent(buildReportSummary(output), "", "  ")
			if err != nil {
				return fmt.Errorf("failed to generate report: %w", err)
			}
			filename = "report.json"
		case "pdf":
			content, err = generatePDFReportBytes(id, output)
			if err != nil {
				return fmt.Errorf("failed to generate PDF report: %w", err)
			}
			filename = "report.pdf"
		}

		reportPath, err := security.ResolveWithin(resultsDir, id, filename)
		if err != nil {
			return fmt.Errorf("resolve report path: %w", err)
		}
		if err := os.WriteFile(reportPath, content, consts.DefaultFilePerm); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}

		fmt.Printf("Report generated: %s\n", reportPath)
		fmt.Printf("Total hosts: %d\n", output.Metadata.TotalHosts)
		return nil
	},
}

func init() {
	reportGenerateCmd.Flags().String("id", "", "scan run ID (the results directory name)")
	reportGenerateCmd.Flags().String("format", "pdf", "report format: json or pdf")
	reportCmd.AddCommand(reportGenerateCmd)
}

func loadRunOutput(baseDir, id string) (*RunOutput, error) {
	path, err := security.ResolveWithin(baseDir, id, "results.json")
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", sharedErrors.ErrNoResults, path)
		}
		return nil, err
	}

	var output RunOutput
	if err := json.Unmarshal(data, &output); err != nil {
		return nil, fmt.Errorf("parse results file: %w", err)
	}
	return &output, nil
}

// ReportSummary is the JSON report shape: per-host status counts plus
// severity totals across all vulnerability findings.
type ReportSummary struct {
	Metadata       RunMetadata              `json:"metadata"`
	Hosts          []HostSummary            `json:"hosts"`
	SeverityTotals map[vulnapi.Severity]int `json:"severity_totals"`
}

// HostSummary aggregates one host's check outcomes.
type HostSummary struct {
	Host          string `json:"host"`
	Addresses     int    `json:"addresses"`
	Secure        int    `json:"secure"`
	Insecure      int    `json:"insecure"`
	Indeterminate int    `json:"indeterminate"`
}

func buildReportSummary(output *RunOutput) ReportSummary {
	summary := ReportSummary{
		Metadata: output.Metadata,
		Hosts:    []HostSummary{},
		SeverityTotals: map[vulnapi.Severity]int{
			vulnapi.SeverityLow:      0,
			vulnapi.SeverityMedium:   0,
			vulnapi.SeverityHigh:     0,
			vulnapi.SeverityCritical: 0,
		},
	}

	for _, report := range output.Reports {
		host := HostSummary{
			Host:      report.Host,
			Addresses: len(report.Addresses),
		}
		for _, res := range report.Results {
			switch res.Status {
			case checker.StatusSecure:
				host.Secure++
			case checker.StatusInsecure:
				host.Insecure++
			default:
				host.Indeterminate++
			}
			for sev, findings := range res.Vulnerabilities {
				summary.SeverityTotals[sev] += len(findings)
			}
		}
		summary.Hosts = append(summary.Hosts, host)
	}

	return summary
}

func generatePDFReportBytes(id string, output *RunOutput) ([]byte, error) {
	summary := buildReportSummary(output)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	// Title
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, fmt.Sprintf("Scan Report: %s", id), "", 1, "C", false, 0, "")
	pdf.Ln(5)

	// Metadata section
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Started: %s", summary.Metadata.StartAt.Format("2006-01-02 15:04:05 UTC")), "", 1, "", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Completed: %s", summary.Metadata.CompleteAt.Format("2006-01-02 15:04:05 UTC")), "", 1, "", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Total hosts: %d", summary.Metadata.TotalHosts), "", 1, "", false, 0, "")
	pdf.Ln(5)

	// Severity totals
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, "Vulnerability Findings", "", 1, "", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	for _, sev := range vulnapi.SeverityOrder {
		pdf.CellFormat(0, 6, fmt.Sprintf("%s: %d", strings.ToUpper(string(sev)), summary.SeverityTotals[sev]), "", 1, "", false, 0, "")
	}
	pdf.Ln(5)

	// Per-host outcomes
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, "Hosts", "", 1, "", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	for _, host := range summary.Hosts {
		pdf.CellFormat(0, 6, fmt.Sprintf("%s - addresses: %d, secure: %d, insecure: %d, indeterminate: %d",
			host.Host, host.Addresses, host.Secure, host.Insecure, host.Indeterminate), "", 1, "", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
