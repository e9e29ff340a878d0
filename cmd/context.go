package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// AppContext carries state resolved once by the root command.
type AppContext struct {
	Logger     *zap.SugaredLogger
	ResultsDir string
	Config     *CLIConfig
}

type appContextKey struct{}

// globalAppContext backs commands run without a cobra context (tests, direct calls).
var globalAppContext *AppContext

func storeAppContext(cmd *cobra.Command, appCtx *AppContext) {
	globalAppContext = appCtx
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(context.WithValue(ctx, appContextKey{}, appCtx))
}

func getAppContext(cmd *cobra.Command) *AppContext {
	if cmd != nil {
		if ctx := cmd.Context(); ctx != nil {
			if appCtx, ok := ctx.Value(appContextKey{}).(*AppContext); ok {
				return appCtx
			}
		}
	}
	if globalAppContext != nil {
		return globalAppContext
	}
	return &AppContext{ResultsDir: "./results", Config: cliConfig}
}

// zapLogger returns the structured logger, or a no-op logger when none was set.
func (a *AppContext) zapLogger() *zap.Logger {
	if a == nil || a.Logger == nil {
		return zap.NewNop()
	}
	return a.Logger.Desugar()
}
