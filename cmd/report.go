package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/khanhnv2901/seca-pin/internal/domain/probe"
	sharedErrors "github.com/khanhnv2901/seca-pin/internal/shared/errors"
)

const (
	jsonPrefix = ""
	jsonIndent = "  "
)

type reportFormat string

const (
	formatTable reportFormat = "table"
	formatJSON  reportFormat = "json"
	formatYAML  reportFormat = "yaml"
)

func parseReportFormat(value string) (reportFormat, error) {
	switch f := reportFormat(strings.ToLower(strings.TrimSpace(value))); f {
	case formatTable, formatJSON, formatYAML:
		return f, nil
	case "yml":
		return formatYAML, nil
	case "":
		return formatTable, nil
	default:
		return "", fmt.Errorf("%w: %q (want table, json or yaml)", sharedErrors.ErrInvalidFormat, value)
	}
}

// reportDocument is the machine-readable form of a report.
type reportDocument struct {
	Submitted      int             `json:"submitted" yaml:"submitted"`
	Complete       bool            `json:"complete" yaml:"complete"`
	AllKnownPassed bool            `json:"all_known_passed" yaml:"all_known_passed"`
	Passed         int             `json:"passed" yaml:"passed"`
	Failed         int             `json:"failed" yaml:"failed"`
	Results        []probe.Outcome `json:"results" yaml:"results"`
}

func newReportDocument(report probe.Report) reportDocument {
	passed, failed := report.Counts()
	results := report.Outcomes
	if results == nil {
		results = []probe.Outcome{}
	}
	return reportDocument{
		Submitted:      report.Submitted,
		Complete:       report.Complete(),
		AllKnownPassed: report.AllKnownPassed(),
		Passed:         passed,
		Failed:         failed,
		Results:        results,
	}
}

func renderReport(w io.Writer, report probe.Report, format reportFormat) error {
	switch format {
	case formatJSON:
		data, err := json.MarshalIndent(newReportDocument(report), jsonPrefix, jsonIndent)
		if err != nil {
			return fmt.Errorf("marshal json report: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(newReportDocument(report)); err != nil {
			return fmt.Errorf("marshal yaml report: %w", err)
		}
		return enc.Close()
	case formatTable, "":
		return writeReportTable(w, report)
	default:
		return fmt.Errorf("%w: %q", sharedErrors.ErrInvalidFormat, format)
	}
}

func writeReportTable(w io.Writer, report probe.Report) error {
	if len(report.Outcomes) == 0 {
		_, err := fmt.Fprintln(w, colorWarn("No domains finished."))
		return err
	}

	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SCOPE\tDOMAIN\tCN\tRESULT\tREASON")
	for _, o := range report.Outcomes {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			o.Scope, o.Domain, o.IdentityLabel(), formatStatusWithColor(string(o.Verdict)), o.ReasonText)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("flush report table: %w", err)
	}

	printReportSummary(w, report)
	return nil
}

func printReportSummary(w io.Writer, report probe.Report) {
	passed, failed := report.Counts()
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Domains: %d/%d | Pass: %s | Fail: %s\n",
		len(report.Outcomes), report.Submitted,
		colorSuccess(fmt.Sprintf("%d", passed)),
		colorError(fmt.Sprintf("%d", failed)),
	)
	switch {
	case !report.Complete():
		fmt.Fprintln(w, colorWarn("Run interrupted: report is partial."))
	case report.AllKnownPassed():
		fmt.Fprintln(w, colorSuccess("All known-scope domains present a pinned certificate."))
	default:
		fmt.Fprintf(w, "%s %s\n", colorError("Known-scope failures:"), strings.Join(report.FailedKnown(), ", "))
	}
}

// formatOutcomeLine renders one streamed row as it completes.
func formatOutcomeLine(o probe.Outcome) string {
	return fmt.Sprintf("%-8s %-32s %-28s %s: %s",
		formatScopeWithColor(o.Scope), o.Domain, o.IdentityLabel(),
		formatStatusWithColor(string(o.Verdict)), o.ReasonText)
}
