package cmd

import (
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	consts "github.com/hostsentry/hostsentry/internal/shared/constants"
)

const (
	defaultConcurrency = 1
	defaultRateLimit   = 1
)

// CLIConfig captures runtime configuration shared across commands.
type CLIConfig struct {
	Scan ScanRuntimeConfig
}

// ScanRuntimeConfig consolidates flag- and config-driven settings for the
// scan command. Probe timeouts are declared once here and threaded through
// ProbeConfig, never re-declared per check.
type ScanRuntimeConfig struct {
	Concurrency        int
	RateLimit          int
	ConnectTimeoutSecs int
	ReadTimeoutSecs    int
	HTTPTimeoutSecs    int
	HTTPEnabled        bool
	Console            ConsoleConfig
	Lookup             LookupConfig
}

// ConsoleConfig captures headless console-capture options.
type ConsoleConfig struct {
	Enabled  bool
	WaitSecs int
}

// LookupConfig groups vulnerability audit API options.
type LookupConfig struct {
	BaseURL     string
	APIKey      string
	TimeoutSecs int
}

var cliConfig = newCLIConfig()

func newCLIConfig() *CLIConfig {
	return &CLIConfig{
		Scan: ScanRuntimeConfig{
			Concurrency:        defaultConcurrency,
			RateLimit:          defaultRateLimit,
			ConnectTimeoutSecs: int(consts.DefaultConnectTimeout / time.Second),
			ReadTimeoutSecs:    int(consts.DefaultReadTimeout / time.Second),
			HTTPTimeoutSecs:    int(consts.DefaultHTTPTimeout / time.Second),
			HTTPEnabled:        true,
			Console: ConsoleConfig{
				Enabled:  false,
				WaitSecs: 2,
			},
			Lookup: LookupConfig{
				TimeoutSecs: int(consts.DefaultLookupTimeout / time.Second),
			},
		},
	}
}

// applyConfigOverrides folds viper config values into the defaults. A config
// value is skipped when its flag was passed explicitly: flags always win over
// the config file.
func applyConfigOverrides() {
	flags := scanCmd.Flags()
	cfg := &cliConfig.Scan

	applyIntOverride(flags, "concurrency", "scan.concurrency", &cfg.Concurrency)
	applyIntOverride(flags, "rate-limit", "scan.rate_limit", &cfg.RateLimit)
	applyIntOverride(flags, "connect-timeout", "scan.connect_timeout_secs", &cfg.ConnectTimeoutSecs)
	applyIntOverride(flags, "read-timeout", "scan.read_timeout_secs", &cfg.ReadTimeoutSecs)
	applyIntOverride(flags, "http-timeout", "scan.http_timeout_secs", &cfg.HTTPTimeoutSecs)
	applyBoolOverride(flags, "http", "scan.http_enabled", &cfg.HTTPEnabled)
	applyBoolOverride(flags, "console", "scan.console.enabled", &cfg.Console.Enabled)
	applyIntOverride(flags, "console-wait", "scan.console.wait_secs", &cfg.Console.WaitSecs)
	applyStringOverride(flags, "lookup-url", "lookup.base_url", &cfg.Lookup.BaseURL)
	applyStringOverride(flags, "lookup-api-key", "lookup.api_key", &cfg.Lookup.APIKey)

	// No flag exists for the lookup timeout; the config file is its only source.
	if viper.IsSet("lookup.timeout_secs") {
		cfg.Lookup.TimeoutSecs = viper.GetInt("lookup.timeout_secs")
	}
}

func applyIntOverride(flags *pflag.FlagSet, flagName, key string, dst *int) {
	if flags.Changed(flagName) || !viper.IsSet(key) {
		return
	}
	*dst = viper.GetInt(key)
}

func applyBoolOverride(flags *pflag.FlagSet, flagName, key string, dst *bool) {
	if flags.Changed(flagName) || !viper.IsSet(key) {
		return
	}
	*dst = viper.GetBool(key)
}

func applyStringOverride(flags *pflag.FlagSet, flagName, key string, dst *string) {
	if flags.Changed(flagName) || !viper.IsSet(key) {
		return
	}
	*dst = viper.GetString(key)
}
