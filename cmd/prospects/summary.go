package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/prospect-explorer/internal/core"
)

func newSummaryCmd() *cobra.Command {
	var (
		sheet       string
		mappingPath string
		filters     filterFlags
	)

	cmd := &cobra.Command{
		Use:   "summary FILE",
		Short: "Print headline counts and breakdowns of the filtered view",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			criteria, err := filters.criteria()
			if err != nil {
				return err
			}
			ws, err := openWorkspace(cmd.Context(), args[0], sheet, mappingPath)
			if err != nil {
				return err
			}

			exp, err := ws.svc.Explore(cmd.Context(), ws.state.ID, core.Query{Criteria: criteria})
			if err != nil {
				return err
			}
			return writeSummary(cmd.OutOrStdout(), exp)
		},
	}

	cmd.Flags().StringVar(&sheet, "sheet", "", "Worksheet to read (XLSX only, default first)")
	cmd.Flags().StringVar(&mappingPath, "mapping", "", "Mapping YAML written by the columns command")
	filters.register(cmd)
	return cmd
}

func writeSummary(w io.Writer, exp *core.Exploration) error {
	s := exp.Summary
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Prospects\t%d\n", s.Prospects)
	fmt.Fprintf(tw, "Companies\t%d\n", s.Companies)
	fmt.Fprintf(tw, "With email\t%d\n", s.WithEmail)
	fmt.Fprintf(tw, "With phone\t%d\n", s.WithPhone)
	fmt.Fprintf(tw, "Only email\t%d\n", s.OnlyEmail)
	fmt.Fprintf(tw, "Only phone\t%d\n", s.OnlyPhone)
	fmt.Fprintf(tw, "In CRM\t%d\n", s.InCRM)
	if err := tw.Flush(); err != nil {
		return err
	}

	b := exp.Breakdowns
	for _, section := range []struct {
		title  string
		counts []core.Count
	}{
		{"Contact types", b.ContactTypes},
		{"CRM", b.CRM},
		{"Sectors", b.Sectors},
		{"Countries", b.Countries},
		{"Companies", b.Companies},
		{"Roles", b.Roles},
	} {
		if len(section.counts) == 0 {
			continue
		}
		fmt.Fprintf(w, "\n%s\n", section.title)
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		for _, c := range section.counts {
			fmt.Fprintf(tw, "  %s\t%d\n", c.Label, c.Value)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	return nil
}
