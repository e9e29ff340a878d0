package cmd

import (
	"bufio"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestRecordTelemetry_WritesMetrics(t *testing.T) {
	appCtx := setupTestAppContext(t)
	report := sampleReport()

	if err := recordTelemetry(appCtx, "probe", report, 3*time.Second); err != nil {
		t.Fatalf("recordTelemetry returned error: %v", err)
	}
	if err := recordTelemetry(appCtx, "probe", report, time.Second); err != nil {
		t.Fatalf("second recordTelemetry returned error: %v", err)
	}

	path := filepath.Join(appCtx.ResultsDir, "telemetry.jsonl")
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("failed to open telemetry file: %v", err)
	}
	defer f.Close()

	var records []telemetryRecord
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.Contains(line, "interactivebrokers") {
			t.Fatalf("telemetry must not contain per-domain data: %s", line)
		}
		var rec telemetryRecord
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			t.Fatalf("failed to unmarshal record: %v", err)
		}
		records = append(records, rec)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 appended records, got %d", len(records))
	}

	rec := records[0]
	if rec.Command != "probe" {
		t.Errorf("expected command probe, got %s", rec.Command)
	}
	if rec.DomainCount != 3 || rec.CompletedCount != 3 {
		t.Errorf("unexpected domain counts: %+v", rec)
	}
	if rec.PassCount != 2 || rec.FailCount != 1 {
		t.Errorf("unexpected counts: %+v", rec)
	}
	if !rec.AllKnownPassed {
		t.Errorf("expected all_known_passed true")
	}

	expectedRate := (2.0 / 3.0) * 100
	if math.Abs(rec.PassRate-expectedRate) > 0.0001 {
		t.Errorf("expected pass rate %.6f, got %.6f", expectedRate, rec.PassRate)
	}
	if rec.DurationSeconds != 3 || rec.AvgDurationPerDomain != 1 {
		t.Errorf("unexpected durations: %+v", rec)
	}
}

func TestRecordTelemetry_CreatesResultsDir(t *testing.T) {
	appCtx := setupTestAppContext(t)
	appCtx.ResultsDir = filepath.Join(t.TempDir(), "nested", "results")

	if err := recordTelemetry(appCtx, "probe", sampleReport(), time.Second); err != nil {
		t.Fatalf("recordTelemetry returned error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(appCtx.ResultsDir, "telemetry.jsonl")); err != nil {
		t.Fatalf("expected telemetry file: %v", err)
	}
}
