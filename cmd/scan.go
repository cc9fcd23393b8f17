package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/hostsentry/hostsentry/internal/checker"
	"github.com/hostsentry/hostsentry/internal/security"
	consts "github.com/hostsentry/hostsentry/internal/shared/constants"
	sharedErrors "github.com/hostsentry/hostsentry/internal/shared/errors"
	"github.com/hostsentry/hostsentry/internal/vulnapi"
)

// RunMetadata describes one scan invocation in results.json.
type RunMetadata struct {
	StartAt    time.Time `json:"started_at"`
	CompleteAt time.Time `json:"completed_at"`
	TotalHosts int       `json:"total_hosts"`
}

// RunOutput is the persisted shape of a scan run.
type RunOutput struct {
	Metadata RunMetadata          `json:"metadata"`
	Reports  []checker.HostReport `json:"reports"`
}

var scanCmd = &cobra.Command{
	Use:   "scan [hostname...]",
	Short: "Scan hosts for exposed services, weak TLS, and missing HTTP hygiene",
	Long: `Resolve each hostname to its IPv4 addresses and probe every address for:
- exposed database service (port 3306)
- self-signed TLS certificate (port 443)
- mail service without STARTTLS (port 25)
- reachable SSH service (port 22), with banner-based identity inference
  and a vulnerability audit lookup for the identified software

The target's HTTP response is also inspected for security headers and
cookie flags. Only scan hosts you are authorized to test.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runScan,
}

func init() {
	registerScanFlags(scanCmd.Flags())
}

func registerScanFlags(flags *pflag.FlagSet) {
	flags.IntVar(&cliConfig.Scan.Concurrency, "concurrency", cliConfig.Scan.Concurrency, "maximum hosts scanned at once")
	flags.IntVar(&cliConfig.Scan.RateLimit, "rate-limit", cliConfig.Scan.RateLimit, "host scans per second")
	flags.IntVar(&cliConfig.Scan.ConnectTimeoutSecs, "connect-timeout", cliConfig.Scan.ConnectTimeoutSecs, "probe connect timeout in seconds")
	flags.IntVar(&cliConfig.Scan.ReadTimeoutSecs, "read-timeout", cliConfig.Scan.ReadTimeoutSecs, "probe banner read timeout in seconds")
	flags.IntVar(&cliConfig.Scan.HTTPTimeoutSecs, "http-timeout", cliConfig.Scan.HTTPTimeoutSecs, "HTTP inspection timeout in seconds")
	flags.BoolVar(&cliConfig.Scan.HTTPEnabled, "http", cliConfig.Scan.HTTPEnabled, "inspect the target's HTTP response headers and cookies")
	flags.BoolVar(&cliConfig.Scan.Console.Enabled, "console", cliConfig.Scan.Console.Enabled, "capture browser console output (requires local Chrome)")
	flags.IntVar(&cliConfig.Scan.Console.WaitSecs, "console-wait", cliConfig.Scan.Console.WaitSecs, "seconds to let the page settle during console capture")
	flags.StringVar(&cliConfig.Scan.Lookup.BaseURL, "lookup-url", cliConfig.Scan.Lookup.BaseURL, "vulnerability audit API base URL")
	flags.StringVar(&cliConfig.Scan.Lookup.APIKey, "lookup-api-key", cliConfig.Scan.Lookup.APIKey, "vulnerability audit API key")
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg := cliConfig.Scan

	hosts := make([]string, 0, len(args))
	for _, arg := range args {
		host := checker.ExtractHost(arg)
		if host == "" {
			return fmt.Errorf("%w: %q", sharedErrors.ErrEmptyTarget, arg)
		}
		hosts = append(hosts, host)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scanner := buildHostScanner(cfg)

	runner := &checker.Runner{
		Concurrency: cfg.Concurrency,
		RateLimit:   cfg.RateLimit,
	}

	progress := newProgressPrinter(len(hosts), "scan")
	progress.Start()

	reports := runner.Run(ctx, hosts, scanner, func(report checker.HostReport, duration float64) {
		var secure, insecure, indeterminate int
		for _, res := range report.Results {
			switch res.Status {
			case checker.StatusSecure:
				secure++
			case checker.StatusInsecure:
				insecure++
			default:
				indeterminate++
			}
		}
		progress.Increment(secure, insecure, indeterminate, duration)
	})

	progress.Stop()

	for _, report := range reports {
		printHostReport(report)
	}

	resultsPath, err := writeRunOutput(reports)
	if err != nil {
		return fmt.Errorf("write results: %w", err)
	}

	fmt.Println(colorSuccess("Scan complete."))
	fmt.Printf("%s %s\n", colorInfo("Results:"), resultsPath)
	return nil
}

func buildHostScanner(cfg ScanRuntimeConfig) *checker.HostScanner {
	probe := checker.ProbeConfig{
		ConnectTimeout: time.Duration(cfg.ConnectTimeoutSecs) * time.Second,
		ReadTimeout:    time.Duration(cfg.ReadTimeoutSecs) * time.Second,
	}

	var lookup *vulnapi.Client
	if cfg.Lookup.BaseURL != "" {
		lookup = vulnapi.NewClient(cfg.Lookup.BaseURL, cfg.Lookup.APIKey,
			time.Duration(cfg.Lookup.TimeoutSecs)*time.Second)
	}

	scanner := &checker.HostScanner{
		Resolver: &checker.Resolver{Logger: logger},
		Probe:    probe,
		Lookup:   lookup,
		Logger:   logger,
	}

	if cfg.HTTPEnabled {
		scanner.HTTP = &checker.HTTPChecker{
			Timeout: time.Duration(cfg.HTTPTimeoutSecs) * time.Second,
			Logger:  logger,
		}
	}

	if cfg.Console.Enabled {
		scanner.Console = &checker.ConsoleChecker{
			WaitTime: time.Duration(cfg.Console.WaitSecs) * time.Second,
			Logger:   logger,
		}
	}

	return scanner
}

// printHostReport renders one host's results as severity-colored lines.
// Every check on every resolved address produces exactly one line.
func printHostReport(report checker.HostReport) {
	fmt.Printf("\n%s %s\n", colorInfo("Host:"), report.Host)
	if len(report.Addresses) == 0 {
		fmt.Printf("  %s %s\n", colorWarn("no addresses resolved"), "- nothing to scan")
		return
	}
	fmt.Printf("  %s %v\n", colorInfo("Addresses:"), report.Addresses)

	for _, res := range report.Results {
		line := fmt.Sprintf("  [%s]", formatStatusWithColor(res.Status))
		if res.Address != "" {
			line += fmt.Sprintf(" %s", res.Address)
		}
		if res.Port > 0 {
			line += fmt.Sprintf(":%d", res.Port)
		}
		if res.Notes != "" {
			line += " " + res.Notes
		}
		if res.Error != "" {
			line += fmt.Sprintf(" (%s)", colorError(res.Error))
		}
		fmt.Println(line)

		printFindings(res)
	}
}

func printFindings(res checker.CheckResult) {
	if len(res.Vulnerabilities) == 0 {
		return
	}
	for _, sev := range vulnapi.SeverityOrder {
		for _, finding := range res.Vulnerabilities[sev] {
			fmt.Printf("    %s %s (cvss %.1f)\n",
				formatSeverityWithColor(sev), finding.Title, finding.CVSSScore)
		}
	}
}

func writeRunOutput(reports []checker.HostReport) (string, error) {
	output := RunOutput{
		Metadata: RunMetadata{
			CompleteAt: time.Now().UTC(),
			TotalHosts: len(reports),
		},
		Reports: reports,
	}
	for _, report := range reports {
		if output.Metadata.StartAt.IsZero() || report.StartedAt.Before(output.Metadata.StartAt) {
			output.Metadata.StartAt = report.StartedAt
		}
	}

	runID := "scan-" + time.Now().UTC().Format("20060102-150405")
	runDir, err := security.ResolveWithin(resultsDir, runID)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(runDir, consts.DefaultDirPerm); err != nil {
		return "", err
	}

	resultsPath, err := security.ResolveWithin(resultsDir, runID, "results.json")
	if err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(resultsPath, data, consts.DefaultFilePerm); err != nil {
		return "", err
	}
	return resultsPath, nil
}
