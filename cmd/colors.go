package cmd

import (
	"github.com/fatih/color"

	"github.com/hostsentry/hostsentry/internal/checker"
	"github.com/hostsentry/hostsentry/internal/vulnapi"
)

var (
	colorSuccess  = color.New(color.FgGreen).SprintFunc()
	colorInfo     = color.New(color.FgCyan).SprintFunc()
	colorWarn     = color.New(color.FgYellow).SprintFunc()
	colorError    = color.New(color.FgRed).SprintFunc()
	colorCritical = color.New(color.FgRed, color.Bold).SprintFunc()
)

// formatStatusWithColor colors a check outcome: secure green, insecure red,
// indeterminate yellow.
func formatStatusWithColor(status checker.Status) string {
	switch status {
	case checker.StatusSecure:
		return colorSuccess(string(status))
	case checker.StatusInsecure:
		return colorError(string(status))
	case checker.StatusIndeterminate:
		return colorWarn(string(status))
	default:
		return string(status)
	}
}

// formatSeverityWithColor colors a CVSS severity bucket label.
func formatSeverityWithColor(sev vulnapi.Severity) string {
	switch sev {
	case vulnapi.SeverityCritical:
		return colorCritical(string(sev))
	case vulnapi.SeverityHigh:
		return colorError(string(sev))
	case vulnapi.SeverityMedium:
		return colorWarn(string(sev))
	case vulnapi.SeverityLow:
		return colorInfo(string(sev))
	default:
		return string(sev)
	}
}
