package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/khanhnv2901/seca-pin/internal/application"
	probeapp "github.com/khanhnv2901/seca-pin/internal/application/probe"
	"github.com/khanhnv2901/seca-pin/internal/domain/probe"
)

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Check that every broker domain presents a pinned certificate identity",
	Long: `Probe the base name under every known country suffix (and optionally the
extended set), fetch each domain's certificate common name, and report whether
it belongs to the pinned set. Failures are explained by the first matching
transport condition.`,
	RunE: runProbe,
}

func runProbe(cmd *cobra.Command, args []string) error {
	appCtx := getAppContext(cmd)
	cfg := appCtx.Config
	logger := appCtx.zapLogger()

	format, err := parseReportFormat(cfg.Probe.Format)
	if err != nil {
		return err
	}
	settings, err := probeSettings(cfg.Probe)
	if err != nil {
		return err
	}
	domains, err := buildDomainList(cfg.Probe)
	if err != nil {
		return err
	}

	services, err := application.NewContainer(settings, logger)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Setup signal handling
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	go func() {
		select {
		case sig := <-sigCh:
			fmt.Fprintf(cmd.ErrOrStderr(), "\n%s Received %s, finalizing partial results...\n", colorWarn("!"), sig.String())
			cancel()
		case <-ctx.Done():
		}
	}()

	out := cmd.OutOrStdout()
	if format == formatTable {
		fmt.Fprintf(out, "%s Probing %d domains (workers=%d, timeout=%s)\n\n",
			colorInfo("→"), len(domains), settings.Workers, settings.Timeout)
	}

	startTime := time.Now()
	report, err := executeProbe(ctx, services.Orchestrator, domains, format, cfg.Probe.Progress, out, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	elapsed := time.Since(startTime)

	if format == formatTable {
		fmt.Fprintln(out)
	}
	if err := renderReport(out, report, format); err != nil {
		return err
	}

	if cfg.Probe.TelemetryEnabled {
		if err := recordTelemetry(appCtx, "probe", report, elapsed); err != nil {
			logger.Sugar().Warnf("telemetry not recorded: %v", err)
		}
	}

	return finishProbe(appCtx, report, cmd.ErrOrStderr())
}

// executeProbe runs the orchestrator, streaming rows (table format) or a
// progress line while domains complete.
func executeProbe(ctx context.Context, orchestrator *probeapp.Orchestrator, domains []probe.Domain, format reportFormat, progress bool, out, errOut io.Writer) (probe.Report, error) {
	var printer *progressPrinter
	var onOutcome func(probe.Outcome)

	switch {
	case progress:
		progressOut := out
		if format != formatTable {
			progressOut = errOut
		}
		printer = newProgressPrinter(progressOut, len(domains), "probe")
		printer.Start()
		onOutcome = func(o probe.Outcome) {
			printer.Increment(o.Passed(), o.Duration.Seconds())
		}
	case format == formatTable:
		onOutcome = func(o probe.Outcome) {
			fmt.Fprintln(out, formatOutcomeLine(o))
		}
	}

	report, err := orchestrator.Run(ctx, domains, onOutcome)
	if printer != nil {
		printer.Stop()
	}
	if err != nil {
		return probe.Report{}, fmt.Errorf("probe run failed: %w", err)
	}
	return report, nil
}

// finishProbe applies the post-run gates: partial reports, optional extension
// packaging, and strict mode.
func finishProbe(appCtx *AppContext, report probe.Report, errOut io.Writer) error {
	cfg := appCtx.Config

	if !report.Complete() {
		if cfg.Probe.BuildExtension {
			fmt.Fprintf(errOut, "%s Extension not built: run was interrupted\n", colorWarn("!"))
		}
		return &IncompleteReportError{Submitted: report.Submitted, Collected: len(report.Outcomes)}
	}

	if cfg.Probe.BuildExtension {
		if !report.AllKnownPassed() {
			if !cfg.Probe.Force {
				return &PublishGateError{Action: "extension build", Failed: report.FailedKnown()}
			}
			fmt.Fprintf(errOut, "%s Known-scope gate failed, building anyway (--force)\n", colorWarn("!"))
		}
		if err := buildExtension(appCtx, errOut); err != nil {
			return err
		}
	}

	if cfg.Probe.Strict && !report.AllKnownPassed() {
		return &PublishGateError{Action: "strict run", Failed: report.FailedKnown()}
	}
	return nil
}

func init() {
	flags := probeCmd.Flags()
	flags.DurationVar(&cliConfig.Probe.Timeout, "timeout", cliConfig.Probe.Timeout, "per-sub-probe timeout")
	flags.IntVar(&cliConfig.Probe.Workers, "workers", cliConfig.Probe.Workers, "worker pool size")
	flags.IntVar(&cliConfig.Probe.RateLimit, "rate-limit", cliConfig.Probe.RateLimit, "max probe starts per second (0 = unlimited)")
	flags.BoolVar(&cliConfig.Probe.IncludeExtended, "include-extended", false, "also probe the extended suffix group")
	flags.StringVar(&cliConfig.Probe.BaseName, "base", cliConfig.Probe.BaseName, "base name combined with each suffix")
	flags.StringSliceVar(&cliConfig.Probe.ExtraDomains, "domain", nil, "extra hosts to probe (scope derived from suffix)")
	flags.StringVar(&cliConfig.Probe.Format, "format", cliConfig.Probe.Format, "output format: table, json or yaml")
	flags.BoolVar(&cliConfig.Probe.Progress, "progress", false, "show a live progress line instead of streaming rows")
	flags.BoolVar(&cliConfig.Probe.Strict, "strict", false, "exit non-zero unless all known-scope domains passed")
	flags.BoolVar(&cliConfig.Probe.InsecureIdentity, "insecure-identity", false, "skip chain verification while fetching certificate identities")
	flags.BoolVar(&cliConfig.Probe.TelemetryEnabled, "telemetry", false, "append run telemetry to <results_dir>/telemetry.jsonl")
	flags.BoolVar(&cliConfig.Probe.BuildExtension, "build-extension", false, "build the browser extension after probing")
	flags.StringVar(&cliConfig.Extension.Dir, "extension-dir", cliConfig.Extension.Dir, "extension output directory")
	flags.StringVar(&cliConfig.Extension.ZipPath, "zip-output", cliConfig.Extension.ZipPath, "extension zip path")
	flags.BoolVar(&cliConfig.Probe.Force, "force", false, "build the extension even if known-scope domains failed")
}
