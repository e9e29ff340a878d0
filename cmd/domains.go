package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/khanhnv2901/seca-pin/internal/domain/probe"
)

var domainsCmd = &cobra.Command{
	Use:   "domains",
	Short: "List the domains a probe run would check, with their scope",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := getAppContext(cmd).Config
		domains, err := buildDomainList(cfg.Probe)
		if err != nil {
			return err
		}
		return writeDomainTable(cmd.OutOrStdout(), domains)
	},
}

func writeDomainTable(w io.Writer, domains []probe.Domain) error {
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SCOPE\tDOMAIN")
	for _, d := range domains {
		fmt.Fprintf(tw, "%s\t%s\n", formatScopeWithColor(d.Scope), d.Host)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("flush domain table: %w", err)
	}
	fmt.Fprintf(w, "\nTotal: %d\n", len(domains))
	return nil
}

func init() {
	flags := domainsCmd.Flags()
	flags.BoolVar(&cliConfig.Probe.IncludeExtended, "include-extended", false, "include the extended suffix group")
	flags.StringVar(&cliConfig.Probe.BaseName, "base", cliConfig.Probe.BaseName, "base name combined with each suffix")
	flags.StringSliceVar(&cliConfig.Probe.ExtraDomains, "domain", nil, "extra hosts to list (scope derived from suffix)")
}
