package probe

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/khanhnv2901/seca-pin/internal/checker"
	"github.com/khanhnv2901/seca-pin/internal/domain/probe"
	sharedErrors "github.com/khanhnv2901/seca-pin/internal/shared/errors"
)

// Orchestrator coordinates one probe run: fan out over the worker pool,
// collect outcomes as they finish, then sort them into a report.
type Orchestrator struct {
	runner  *checker.Runner
	checker checker.Checker
	logger  *zap.Logger
}

// NewOrchestrator creates a new probe orchestrator
func NewOrchestrator(settings probe.Settings, chk checker.Checker, logger *zap.Logger) (*Orchestrator, error) {
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid probe settings: %w", err)
	}
	if chk == nil {
		return nil, fmt.Errorf("checker is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Orchestrator{
		runner: &checker.Runner{
			Concurrency: settings.Workers,
			RateLimit:   settings.RateLimit,
		},
		checker: chk,
		logger:  logger,
	}, nil
}

// Run probes every domain and returns the ordered report. The report is
// partial (Complete() == false) only when ctx ended before all domains finished.
func (o *Orchestrator) Run(ctx context.Context, domains []probe.Domain, onOutcome checker.OutcomeFunc) (probe.Report, error) {
	if len(domains) == 0 {
		return probe.Report{}, sharedErrors.ErrNoDomains
	}

	start := time.Now()
	o.logger.Info("probe run started",
		zap.String("checker", o.checker.Name()),
		zap.Int("domains", len(domains)),
		zap.Int("workers", o.runner.Concurrency))

	outcomes := o.runner.RunChecks(ctx, domains, o.checker, func(outcome probe.Outcome) {
		o.logger.Debug("domain probed",
			zap.String("domain", outcome.Domain),
			zap.Stringer("scope", outcome.Scope),
			zap.String("cn", outcome.IdentityLabel()),
			zap.String("verdict", string(outcome.Verdict)),
			zap.String("reason", outcome.ReasonText),
			zap.Duration("elapsed", outcome.Duration))
		if onOutcome != nil {
			onOutcome(outcome)
		}
	})

	report := probe.NewReport(len(domains), outcomes)
	passed, failed := report.Counts()

	if !report.Complete() {
		o.logger.Warn("probe run interrupted, report is partial",
			zap.Int("submitted", report.Submitted),
			zap.Int("collected", len(report.Outcomes)))
	}
	o.logger.Info("probe run finished",
		zap.Int("passed", passed),
		zap.Int("failed", failed),
		zap.Bool("all_known_passed", report.AllKnownPassed()),
		zap.Duration("elapsed", time.Since(start)))

	return report, nil
}
