package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ersonp/affinity/internal/application/handlers"
	"github.com/ersonp/affinity/internal/domain/services"
)

type reportFlags struct {
	format string
	output string
}

func newReportCmd() *cobra.Command {
	var flags reportFlags

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show who shares each interest",
		Long: `For every person, lists each of their interests and the other
people who share it.

Formats:
  text      grouped by person (default)
  lines     one "<person> shares <interest> with: <people>" line per interest
  json, csv, markdown`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.format, "format", "f", FormatText, "Output format (text, lines, json, csv, markdown)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file (default: stdout)")

	return cmd
}

func runReport(cmd *cobra.Command, flags reportFlags) error {
	if !slices.Contains(validFormats, flags.format) {
		return fmt.Errorf("invalid format %q, valid formats: %v", flags.format, validFormats)
	}

	ctx := cmd.Context()

	return withDeps(ctx, func(d *Deps) error {
		result, err := d.GraphHandler.HandleReport(ctx)
		if err != nil {
			return fmt.Errorf("building report: %w", err)
		}
		return writeReport(cmd.OutOrStdout(), flags, result)
	})
}

func writeReport(stdout io.Writer, flags reportFlags, result *handlers.ReportResult) (err error) {
	w := stdout
	if flags.output != "" {
		f, err := os.OpenFile(flags.output, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
		if err != nil {
			return fmt.Errorf("creating file: %w", err)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("closing file: %w", cerr)
			}
		}()
		w = f
	}

	if err := formatReport(w, flags.format, result); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}

	if flags.output != "" {
		fmt.Fprintf(stdout, "Wrote report to %s\n", flags.output)
	}
	return nil
}

func formatReport(w io.Writer, format string, result *handlers.ReportResult) error {
	switch format {
	case FormatText:
		return formatText(w, result)
	case FormatLines:
		return formatLines(w, result.Shares)
	case FormatJSON:
		return formatJSON(w, result.Shares)
	case FormatCSV:
		return formatCSV(w, result.Shares)
	case FormatMarkdown:
		return formatMarkdown(w, result.Shares)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// formatText prints every person followed by their interests and matches:
//
//	Jim:
//	 shares Volleyball with:
//	 Sabrina
func formatText(w io.Writer, result *handlers.ReportResult) error {
	for _, p := range result.People {
		if _, err := fmt.Fprintf(w, "%s:\n", p.Name); err != nil {
			return err
		}
		for _, s := range result.Shares {
			if s.Person != p {
				continue
			}
			if _, err := fmt.Fprintf(w, " shares %s with:\n", s.Interest.Name); err != nil {
				return err
			}
			for _, match := range s.With {
				if _, err := fmt.Fprintf(w, " %s\n", match.Name); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func formatLines(w io.Writer, shares []services.Share) error {
	for _, s := range shares {
		if _, err := fmt.Fprintln(w, s.Line()); err != nil {
			return err
		}
	}
	return nil
}

func formatJSON(w io.Writer, shares []services.Share) error {
	type reportEntry struct {
		Person   string   `json:"person"`
		Interest string   `json:"interest"`
		With     []string `json:"with"`
	}

	entries := make([]reportEntry, 0, len(shares))
	for _, s := range shares {
		entries = append(entries, reportEntry{
			Person:   s.Person.Name,
			Interest: s.Interest.Name,
			With:     names(s),
		})
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(entries)
}

func formatCSV(w io.Writer, shares []services.Share) error {
	writer := csv.NewWriter(w)

	if err := writer.Write([]string{"person", "interest", "with"}); err != nil {
		return err
	}
	for _, s := range shares {
		row := []string{s.Person.Name, s.Interest.Name, strings.Join(names(s), ";")}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func formatMarkdown(w io.Writer, shares []services.Share) error {
	if _, err := fmt.Fprintf(w, "# Shared Interests\n\nTotal: %d entries\n\n", len(shares)); err != nil {
		return err
	}
	if _, err := fmt.Fprint(w, "| Person | Interest | Shared with |\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprint(w, "|--------|----------|-------------|\n"); err != nil {
		return err
	}

	for _, s := range shares {
		with := strings.Join(names(s), ", ")
		if with == "" {
			with = "-"
		}
		if _, err := fmt.Fprintf(w, "| %s | %s | %s |\n",
			escapeMarkdown(s.Person.Name),
			escapeMarkdown(s.Interest.Name),
			escapeMarkdown(with),
		); err != nil {
			return err
		}
	}
	return nil
}

// names returns the names of the people s is shared with, never nil.
func names(s services.Share) []string {
	out := make([]string, 0, len(s.With))
	for _, p := range s.With {
		out = append(out, p.Name)
	}
	return out
}

func escapeMarkdown(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	s = strings.ReplaceAll(s, "\n", " ")
	return s
}
