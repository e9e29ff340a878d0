package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	probeapp "github.com/khanhnv2901/seca-pin/internal/application/probe"
	"github.com/khanhnv2901/seca-pin/internal/domain/probe"
)

// tableChecker answers every domain from a fixed identity table.
type tableChecker struct {
	identities map[string]string
}

func (c *tableChecker) Check(ctx context.Context, domain probe.Domain) probe.Outcome {
	transport := probe.TransportSuccess(200, "https://"+domain.Host+"/")
	return probe.NewOutcome(domain, c.identities[domain.Host], transport, testPinned, time.Millisecond)
}

func (c *tableChecker) Name() string { return "check table" }

func newTestOrchestrator(t *testing.T, identities map[string]string) *probeapp.Orchestrator {
	t.Helper()
	settings := probe.Settings{Timeout: time.Second, Workers: 2, Pinned: testPinned}
	o, err := probeapp.NewOrchestrator(settings, &tableChecker{identities: identities}, nil)
	if err != nil {
		t.Fatalf("NewOrchestrator returned error: %v", err)
	}
	return o
}

func testDomains() []probe.Domain {
	return []probe.Domain{
		probe.NewDomain("interactivebrokers.com", probe.ScopeKnown),
		probe.NewDomain("interactivebrokers.eu", probe.ScopeKnown),
	}
}

func TestExecuteProbe_StreamsRowsInTableFormat(t *testing.T) {
	disableColor(t)

	o := newTestOrchestrator(t, map[string]string{
		"interactivebrokers.com": "interactivebrokers.com",
		"interactivebrokers.eu":  "ibkr.eu",
	})

	var out, errOut bytes.Buffer
	report, err := executeProbe(context.Background(), o, testDomains(), formatTable, false, &out, &errOut)
	if err != nil {
		t.Fatalf("executeProbe returned error: %v", err)
	}
	if !report.AllKnownPassed() {
		t.Fatalf("expected all known to pass: %+v", report)
	}
	if strings.Count(out.String(), "PASS: certificate pinned") != 2 {
		t.Fatalf("expected two streamed rows, got %q", out.String())
	}
	if errOut.Len() != 0 {
		t.Fatalf("expected nothing on stderr, got %q", errOut.String())
	}
}

func TestExecuteProbe_JSONKeepsStdoutClean(t *testing.T) {
	o := newTestOrchestrator(t, nil)

	var out, errOut bytes.Buffer
	if _, err := executeProbe(context.Background(), o, testDomains(), formatJSON, true, &out, &errOut); err != nil {
		t.Fatalf("executeProbe returned error: %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("stdout must stay clean for machine formats, got %q", out.String())
	}
	if !strings.Contains(errOut.String(), "Progress: 2/2") {
		t.Fatalf("expected progress on stderr, got %q", errOut.String())
	}
}

func TestExecuteProbe_NoDomains(t *testing.T) {
	o := newTestOrchestrator(t, nil)
	if _, err := executeProbe(context.Background(), o, nil, formatTable, false, &bytes.Buffer{}, &bytes.Buffer{}); err == nil {
		t.Fatal("expected error for empty domain list")
	}
}

func TestFinishProbe(t *testing.T) {
	disableColor(t)

	passing := sampleReport()
	failing := probe.NewReport(2, []probe.Outcome{
		outcome("interactivebrokers.com", probe.ScopeKnown, "interactivebrokers.com", probe.TransportSuccess(200, "")),
		outcome("interactivebrokers.de", probe.ScopeKnown, "", probe.TransportFailure(probe.ReasonTimeout)),
	})
	partial := probe.NewReport(3, passing.Outcomes[:2])

	t.Run("plain run succeeds regardless of verdicts", func(t *testing.T) {
		appCtx := setupTestAppContext(t)
		if err := finishProbe(appCtx, failing, &bytes.Buffer{}); err != nil {
			t.Fatalf("expected nil, got %v", err)
		}
	})

	t.Run("partial report", func(t *testing.T) {
		appCtx := setupTestAppContext(t)
		appCtx.Config.Probe.BuildExtension = true
		var errOut bytes.Buffer
		err := finishProbe(appCtx, partial, &errOut)
		var incomplete *IncompleteReportError
		if !errors.As(err, &incomplete) || incomplete.Collected != 2 || incomplete.Submitted != 3 {
			t.Fatalf("expected IncompleteReportError, got %v", err)
		}
		if !strings.Contains(errOut.String(), "Extension not built") {
			t.Fatalf("expected skip notice, got %q", errOut.String())
		}
	})

	t.Run("strict mode", func(t *testing.T) {
		appCtx := setupTestAppContext(t)
		appCtx.Config.Probe.Strict = true
		err := finishProbe(appCtx, failing, &bytes.Buffer{})
		var gate *PublishGateError
		if !errors.As(err, &gate) || gate.Action != "strict run" {
			t.Fatalf("expected strict PublishGateError, got %v", err)
		}
		if len(gate.Failed) != 1 || gate.Failed[0] != "interactivebrokers.de" {
			t.Fatalf("unexpected failed list: %v", gate.Failed)
		}
		if err := finishProbe(appCtx, passing, &bytes.Buffer{}); err != nil {
			t.Fatalf("strict run with passing report returned %v", err)
		}
	})

	t.Run("gate refuses extension build", func(t *testing.T) {
		appCtx := setupTestAppContext(t)
		dir := filepath.Join(t.TempDir(), "ext")
		appCtx.Config.Probe.BuildExtension = true
		appCtx.Config.Extension.Dir = dir
		appCtx.Config.Extension.ZipPath = dir + ".zip"

		err := finishProbe(appCtx, failing, &bytes.Buffer{})
		var gate *PublishGateError
		if !errors.As(err, &gate) || gate.Action != "extension build" {
			t.Fatalf("expected PublishGateError, got %v", err)
		}
		if _, statErr := os.Stat(dir); !os.IsNotExist(statErr) {
			t.Fatalf("extension must not be built, stat err=%v", statErr)
		}
	})

	t.Run("gate passes and builds", func(t *testing.T) {
		appCtx := setupTestAppContext(t)
		dir := filepath.Join(t.TempDir(), "ext")
		appCtx.Config.Probe.BuildExtension = true
		appCtx.Config.Extension.Dir = dir
		appCtx.Config.Extension.ZipPath = dir + ".zip"

		if err := finishProbe(appCtx, passing, &bytes.Buffer{}); err != nil {
			t.Fatalf("finishProbe returned error: %v", err)
		}
		for _, path := range []string{filepath.Join(dir, "manifest.json"), dir + ".zip"} {
			if _, err := os.Stat(path); err != nil {
				t.Fatalf("expected %s: %v", path, err)
			}
		}
	})

	t.Run("force overrides gate", func(t *testing.T) {
		appCtx := setupTestAppContext(t)
		dir := filepath.Join(t.TempDir(), "ext")
		appCtx.Config.Probe.BuildExtension = true
		appCtx.Config.Probe.Force = true
		appCtx.Config.Extension.Dir = dir
		appCtx.Config.Extension.ZipPath = dir + ".zip"

		var errOut bytes.Buffer
		if err := finishProbe(appCtx, failing, &errOut); err != nil {
			t.Fatalf("finishProbe returned error: %v", err)
		}
		if !strings.Contains(errOut.String(), "--force") {
			t.Fatalf("expected force warning, got %q", errOut.String())
		}
		if _, err := os.Stat(filepath.Join(dir, "content.js")); err != nil {
			t.Fatalf("expected content.js: %v", err)
		}
	})
}
