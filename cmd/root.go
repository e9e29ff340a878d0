package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	consts "github.com/khanhnv2901/seca-pin/internal/shared/constants"
)

const envPrefix = "SECA_PIN"

var cfgFile string
var verbose bool

var rootCmd = &cobra.Command{
	Use:           "seca-pin",
	Short:         "Certificate pinning probe for broker domains across country suffixes",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		initConfig()

		resultsDir := viper.GetString("results_dir")
		if resultsDir == "" {
			resultsDir = "./results"
		}
		// Make final resultsDir absolute (for clarity in logs)
		if abs, err := filepath.Abs(resultsDir); err == nil {
			resultsDir = abs
		}

		logger, err := newLogger(verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		applyConfigDefaults(cmd)

		storeAppContext(cmd, &AppContext{
			Logger:     logger.Sugar(),
			ResultsDir: resultsDir,
			Config:     cliConfig,
		})

		logger.Sugar().Debugf("results_dir=%s config=%s", resultsDir, viper.ConfigFileUsed())
		return nil
	},
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath("$HOME")
		viper.SetConfigName(".seca-pin")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	_ = viper.ReadInConfig()
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	// keep stdout clean for reports
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}

// ensureResultsDir creates the results directory on first write.
func ensureResultsDir(appCtx *AppContext) error {
	if err := os.MkdirAll(appCtx.ResultsDir, consts.DefaultDirPerm); err != nil {
		return fmt.Errorf("failed to create results directory: %w", err)
	}
	return nil
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, colorError("Error:"), err)
		os.Exit(1)
	}
}

func init() {
	// config file flag
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.seca-pin.yaml)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable development logging")

	// add subcommands
	rootCmd.AddCommand(probeCmd)
	rootCmd.AddCommand(domainsCmd)
	rootCmd.AddCommand(extensionCmd)
	rootCmd.AddCommand(versionCmd)
}
