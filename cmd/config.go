package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/khanhnv2901/seca-pin/internal/checker"
	"github.com/khanhnv2901/seca-pin/internal/domain/probe"
	"github.com/khanhnv2901/seca-pin/internal/domainset"
	"github.com/khanhnv2901/seca-pin/internal/extension"
)

const (
	defaultExtensionDir = "dist/extension"
	defaultZipOutput    = "dist/brokersitehelper.zip"
)

// CLIConfig captures runtime configuration shared across commands.
type CLIConfig struct {
	Defaults  DefaultValues
	Probe     ProbeRuntimeConfig
	Extension ExtensionConfig
}

// DefaultValues represent operator-level defaults, typically derived from env/config.
type DefaultValues struct {
	Timeout          time.Duration
	Workers          int
	RateLimit        int
	TelemetryEnabled bool
}

// ProbeRuntimeConfig consolidates flag-driven settings for the probe command.
type ProbeRuntimeConfig struct {
	Timeout          time.Duration
	Workers          int
	RateLimit        int
	BaseName         string
	PinnedIdentities []string
	KnownSuffixes    []string
	ExtendedSuffixes []string
	IncludeExtended  bool
	ExtraDomains     []string
	Format           string
	Progress         bool
	Strict           bool
	InsecureIdentity bool
	TelemetryEnabled bool
	BuildExtension   bool
	Force            bool
}

// ExtensionConfig controls where and how the browser extension is packaged.
type ExtensionConfig struct {
	Dir     string
	ZipPath string
	Name    string
	Version string
}

type defaultOverrides struct {
	Timeout          *time.Duration
	Workers          *int
	RateLimit        *int
	TelemetryEnabled *bool
}

var cliConfig = newCLIConfig()

func newCLIConfig() *CLIConfig {
	return &CLIConfig{
		Defaults: DefaultValues{
			Timeout: probe.DefaultTimeout,
			Workers: probe.DefaultWorkers,
		},
		Probe: ProbeRuntimeConfig{
			Timeout:          probe.DefaultTimeout,
			Workers:          probe.DefaultWorkers,
			BaseName:         domainset.DefaultBaseName,
			PinnedIdentities: append([]string(nil), domainset.DefaultPinnedIdentities...),
			KnownSuffixes:    append([]string(nil), domainset.DefaultKnownSuffixes...),
			ExtendedSuffixes: append([]string(nil), domainset.DefaultExtendedSuffixes...),
			Format:           string(formatTable),
		},
		Extension: ExtensionConfig{
			Dir:     defaultExtensionDir,
			ZipPath: defaultZipOutput,
			Name:    extension.DefaultName,
			Version: extension.DefaultVersion,
		},
	}
}

func loadDefaultOverrides() defaultOverrides {
	overrides := defaultOverrides{}

	if viper.IsSet("defaults.timeout") {
		val := viper.GetDuration("defaults.timeout")
		overrides.Timeout = &val
	}

	if viper.IsSet("defaults.workers") {
		val := viper.GetInt("defaults.workers")
		overrides.Workers = &val
	}

	if viper.IsSet("defaults.rate_limit") {
		val := viper.GetInt("defaults.rate_limit")
		overrides.RateLimit = &val
	}

	if viper.IsSet("defaults.telemetry") {
		val := viper.GetBool("defaults.telemetry")
		overrides.TelemetryEnabled = &val
	}

	return overrides
}

// applyConfigDefaults merges config file defaults into the runtime config when the user
// did not explicitly override the corresponding flag.
func applyConfigDefaults(cmd *cobra.Command) {
	flags := cmd.Flags()
	overrides := loadDefaultOverrides()

	if overrides.Timeout != nil {
		applyDurationDefault(flags, "timeout", *overrides.Timeout, func(v time.Duration) {
			cliConfig.Defaults.Timeout = v
			cliConfig.Probe.Timeout = v
		})
	}

	if overrides.Workers != nil {
		applyIntDefault(flags, "workers", *overrides.Workers, func(v int) {
			cliConfig.Defaults.Workers = v
			cliConfig.Probe.Workers = v
		})
	}

	if overrides.RateLimit != nil {
		applyIntDefault(flags, "rate-limit", *overrides.RateLimit, func(v int) {
			cliConfig.Defaults.RateLimit = v
			cliConfig.Probe.RateLimit = v
		})
	}

	if overrides.TelemetryEnabled != nil {
		applyBoolDefault(flags, "telemetry", *overrides.TelemetryEnabled, func(v bool) {
			cliConfig.Defaults.TelemetryEnabled = v
			cliConfig.Probe.TelemetryEnabled = v
		})
	}

	if viper.IsSet("probe.base_name") {
		applyStringDefault(flags, "base", viper.GetString("probe.base_name"), func(v string) {
			cliConfig.Probe.BaseName = v
		})
	}
	if viper.IsSet("probe.include_extended") {
		applyBoolDefault(flags, "include-extended", viper.GetBool("probe.include_extended"), func(v bool) {
			cliConfig.Probe.IncludeExtended = v
		})
	}
	// no flags for these; config is the only override
	if viper.IsSet("probe.pinned_identities") {
		cliConfig.Probe.PinnedIdentities = viper.GetStringSlice("probe.pinned_identities")
	}
	if viper.IsSet("probe.known_suffixes") {
		cliConfig.Probe.KnownSuffixes = viper.GetStringSlice("probe.known_suffixes")
	}
	if viper.IsSet("probe.extended_suffixes") {
		cliConfig.Probe.ExtendedSuffixes = viper.GetStringSlice("probe.extended_suffixes")
	}

	if viper.IsSet("extension.dir") {
		applyStringDefault(flags, "extension-dir", viper.GetString("extension.dir"), func(v string) {
			cliConfig.Extension.Dir = v
		})
	}
	if viper.IsSet("extension.zip") {
		applyStringDefault(flags, "zip-output", viper.GetString("extension.zip"), func(v string) {
			cliConfig.Extension.ZipPath = v
		})
	}
	if viper.IsSet("extension.name") {
		cliConfig.Extension.Name = viper.GetString("extension.name")
	}
	if viper.IsSet("extension.version") {
		cliConfig.Extension.Version = viper.GetString("extension.version")
	}
}

func applyIntDefault(flags *pflag.FlagSet, name string, value int, setter func(int)) {
	if flags == nil || setter == nil {
		return
	}
	flag := flags.Lookup(name)
	if flag != nil && flag.Changed {
		return
	}
	setter(value)
}

func applyBoolDefault(flags *pflag.FlagSet, name string, value bool, setter func(bool)) {
	if flags == nil || setter == nil {
		return
	}
	flag := flags.Lookup(name)
	if flag != nil && flag.Changed {
		return
	}
	setter(value)
}

func applyDurationDefault(flags *pflag.FlagSet, name string, value time.Duration, setter func(time.Duration)) {
	if flags == nil || setter == nil {
		return
	}
	flag := flags.Lookup(name)
	if flag != nil && flag.Changed {
		return
	}
	setter(value)
}

func applyStringDefault(flags *pflag.FlagSet, name, value string, setter func(string)) {
	if flags == nil || setter == nil || value == "" {
		return
	}
	flag := flags.Lookup(name)
	if flag != nil && flag.Changed {
		return
	}
	setter(value)
}

// probeSettings freezes the resolved configuration into the value handed to
// the orchestrator.
func probeSettings(cfg ProbeRuntimeConfig) (probe.Settings, error) {
	settings := probe.Settings{
		Timeout:     cfg.Timeout,
		Workers:     cfg.Workers,
		RateLimit:   cfg.RateLimit,
		Pinned:      probe.NewPinnedIdentitySet(cfg.PinnedIdentities...),
		InsecureTLS: cfg.InsecureIdentity,
	}
	if err := settings.Validate(); err != nil {
		return probe.Settings{}, fmt.Errorf("invalid probe configuration: %w", err)
	}
	return settings, nil
}

func newDomainBuilder(cfg ProbeRuntimeConfig) *domainset.Builder {
	return &domainset.Builder{
		BaseName:         cfg.BaseName,
		KnownSuffixes:    cfg.KnownSuffixes,
		ExtendedSuffixes: cfg.ExtendedSuffixes,
		IncludeExtended:  cfg.IncludeExtended,
	}
}

// buildDomainList expands the suffix groups and appends any extra hosts.
func buildDomainList(cfg ProbeRuntimeConfig) ([]probe.Domain, error) {
	builder := newDomainBuilder(cfg)
	domains, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("build domain set: %w", err)
	}
	if len(cfg.ExtraDomains) == 0 {
		return domains, nil
	}
	// operators may paste URLs; keep only the host part
	extra := make([]string, 0, len(cfg.ExtraDomains))
	for _, raw := range cfg.ExtraDomains {
		extra = append(extra, checker.ExtractHost(raw))
	}
	domains, err = builder.Extra(domains, extra...)
	if err != nil {
		return nil, fmt.Errorf("extra domains: %w", err)
	}
	return domains, nil
}
