package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/khanhnv2901/seca-pin/internal/domain/probe"
	consts "github.com/khanhnv2901/seca-pin/internal/shared/constants"
	"github.com/khanhnv2901/seca-pin/internal/shared/security"
)

const telemetryFileName = "telemetry.jsonl"

// telemetryRecord holds aggregate counts only; per-domain results are never persisted.
type telemetryRecord struct {
	Timestamp            time.Time `json:"timestamp"`
	Command              string    `json:"command"`
	DomainCount          int       `json:"domain_count"`
	CompletedCount       int       `json:"completed_count"`
	PassCount            int       `json:"pass_count"`
	FailCount            int       `json:"fail_count"`
	PassRate             float64   `json:"pass_rate"`
	AllKnownPassed       bool      `json:"all_known_passed"`
	DurationSeconds      float64   `json:"duration_seconds"`
	AvgDurationPerDomain float64   `json:"avg_duration_per_domain"`
}

func recordTelemetry(appCtx *AppContext, command string, report probe.Report, duration time.Duration) error {
	passCount, failCount := report.Counts()
	total := len(report.Outcomes)

	passRate := 0.0
	if total > 0 {
		passRate = (float64(passCount) / float64(total)) * 100
	}

	avgDuration := 0.0
	if total > 0 {
		avgDuration = duration.Seconds() / float64(total)
	}

	record := telemetryRecord{
		Timestamp:            time.Now().UTC(),
		Command:              command,
		DomainCount:          report.Submitted,
		CompletedCount:       total,
		PassCount:            passCount,
		FailCount:            failCount,
		PassRate:             passRate,
		AllKnownPassed:       report.AllKnownPassed(),
		DurationSeconds:      duration.Seconds(),
		AvgDurationPerDomain: avgDuration,
	}

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal telemetry: %w", err)
	}

	if err := ensureResultsDir(appCtx); err != nil {
		return err
	}
	telemetryPath, err := security.ResolveWithin(appCtx.ResultsDir, telemetryFileName)
	if err != nil {
		return err
	}
	f, err := os.OpenFile(telemetryPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, consts.DefaultFilePerm) // #nosec G304 -- path resolved within results dir
	if err != nil {
		return fmt.Errorf("open telemetry file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write telemetry: %w", err)
	}

	return nil
}
