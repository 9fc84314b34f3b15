package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/prospect-explorer/internal/core"
)

func newQualityCmd() *cobra.Command {
	var (
		sheet       string
		mappingPath string
		countsOnly  bool
	)

	cmd := &cobra.Command{
		Use:   "quality FILE",
		Short: "List data-quality issues in the unfiltered table",
		Long: `Runs the data-quality checks over every row of FILE: links in the email
column, emails without an @, rows with no contact and duplicate
name/company pairs. Nothing is corrected.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(cmd.Context(), args[0], sheet, mappingPath)
			if err != nil {
				return err
			}
			records, err := ws.svc.Standardized(ws.state.ID)
			if err != nil {
				return err
			}

			report := core.CheckQuality(records)
			return writeQuality(cmd.OutOrStdout(), report, countsOnly)
		},
	}

	cmd.Flags().StringVar(&sheet, "sheet", "", "Worksheet to read (XLSX only, default first)")
	cmd.Flags().StringVar(&mappingPath, "mapping", "", "Mapping YAML written by the columns command")
	cmd.Flags().BoolVar(&countsOnly, "counts", false, "Print only the number of rows per check")
	return cmd
}

func writeQuality(w io.Writer, report core.QualityReport, countsOnly bool) error {
	sections := []struct {
		title string
		rows  []core.QualityRow
	}{
		{"URL in email", report.URLInEmail},
		{"Invalid email", report.InvalidEmail},
		{"No contact", report.NoContact},
		{"Duplicate name/company", report.DuplicateNameComp},
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, s := range sections {
		fmt.Fprintf(tw, "%s\t%d\n", s.title, len(s.rows))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if countsOnly {
		return nil
	}

	for _, s := range sections {
		if len(s.rows) == 0 {
			continue
		}
		fmt.Fprintf(w, "\n%s\n", s.title)
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "NAME\tCOMPANY\tEMAIL\tPHONE\tCOUNTRY")
		for _, r := range s.rows {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", r.Name, r.Company, r.Email, r.Phone, r.Country)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	return nil
}
