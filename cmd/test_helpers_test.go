package cmd

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fatih/color"

	"github.com/khanhnv2901/seca-pin/internal/domain/probe"
	consts "github.com/khanhnv2901/seca-pin/internal/shared/constants"
)

var testPinned = probe.NewPinnedIdentitySet("ibkr.eu", "interactivebrokers.com")

// setupTestAppContext installs an AppContext rooted in a temp dir with a fresh config.
func setupTestAppContext(t *testing.T) *AppContext {
	t.Helper()

	original := globalAppContext
	originalConfig := *cliConfig

	resultsDir := filepath.Join(t.TempDir(), "results")
	if err := os.MkdirAll(resultsDir, consts.DefaultDirPerm); err != nil {
		t.Fatalf("failed to create results directory: %v", err)
	}

	*cliConfig = *newCLIConfig()
	appCtx := &AppContext{
		Logger:     nil,
		ResultsDir: resultsDir,
		Config:     cliConfig,
	}
	globalAppContext = appCtx

	t.Cleanup(func() {
		globalAppContext = original
		*cliConfig = originalConfig
	})
	return appCtx
}

func disableColor(t *testing.T) {
	t.Helper()
	original := color.NoColor
	color.NoColor = true
	t.Cleanup(func() {
		color.NoColor = original
	})
}

func outcome(host string, scope probe.Scope, identity string, transport probe.TransportOutcome) probe.Outcome {
	return probe.NewOutcome(probe.NewDomain(host, scope), identity, transport, testPinned, 120*time.Millisecond)
}

func sampleReport() probe.Report {
	return probe.NewReport(3, []probe.Outcome{
		outcome("interactivebrokers.at", probe.ScopeExtended, "", probe.TransportFailure(probe.ReasonNoDNS)),
		outcome("interactivebrokers.eu", probe.ScopeKnown, "ibkr.eu", probe.TransportSuccess(200, "https://interactivebrokers.eu/")),
		outcome("interactivebrokers.com", probe.ScopeKnown, "interactivebrokers.com", probe.TransportSuccess(200, "https://www.interactivebrokers.com/")),
	})
}
