package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/khanhnv2901/seca-pin/internal/extension"
)

var extensionCmd = &cobra.Command{
	Use:   "extension",
	Short: "Package the BrokerSiteHelper browser extension",
}

var extensionBuildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the extension directory and zip without probing",
	RunE: func(cmd *cobra.Command, args []string) error {
		return buildExtension(getAppContext(cmd), cmd.OutOrStdout())
	},
}

func extensionOptions(cfg *CLIConfig) extension.Options {
	opts := extension.DefaultOptions(cfg.Probe.BaseName, cfg.Probe.KnownSuffixes)
	if cfg.Extension.Name != "" {
		opts.Name = cfg.Extension.Name
	}
	if cfg.Extension.Version != "" {
		opts.Version = cfg.Extension.Version
	}
	return opts
}

// buildExtension writes the extension directory and its zip archive.
func buildExtension(appCtx *AppContext, out io.Writer) error {
	cfg := appCtx.Config
	logger := appCtx.zapLogger().Sugar()

	pkg, err := extension.Build(cfg.Extension.Dir, extensionOptions(cfg))
	if err != nil {
		return fmt.Errorf("build extension: %w", err)
	}
	logger.Infof("extension built dir=%s files=%d hosts=%d", pkg.Dir, len(pkg.Files), len(pkg.Manifest.HostPermissions))

	if err := extension.Zip(cfg.Extension.Dir, cfg.Extension.ZipPath); err != nil {
		return fmt.Errorf("zip extension: %w", err)
	}

	fmt.Fprintf(out, "%s Extension %s %s written to %s\n", colorSuccess("✓"), pkg.Manifest.Name, pkg.Manifest.Version, pkg.Dir)
	fmt.Fprintf(out, "%s Archive: %s\n", colorSuccess("✓"), cfg.Extension.ZipPath)
	return nil
}

func init() {
	flags := extensionBuildCmd.Flags()
	flags.StringVar(&cliConfig.Extension.Dir, "extension-dir", cliConfig.Extension.Dir, "extension output directory")
	flags.StringVar(&cliConfig.Extension.ZipPath, "zip-output", cliConfig.Extension.ZipPath, "extension zip path")
	flags.StringVar(&cliConfig.Probe.BaseName, "base", cliConfig.Probe.BaseName, "base name used in host permissions")

	extensionCmd.AddCommand(extensionBuildCmd)
}
