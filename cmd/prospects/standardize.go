package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/prospect-explorer/internal/core"
)

// filterFlags are the filter selections shared by the commands that read
// the filtered view.
type filterFlags struct {
	regions      []string
	countries    []string
	companies    []string
	sectors      []string
	contactTypes []string
	role         string
	email        string
	phone        string
	crm          string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringSliceVar(&f.regions, "region", nil, "Keep these regions (APAC, MENA, EMEA, AMER, Other)")
	fs.StringArrayVar(&f.countries, "country", nil, "Keep these countries (repeatable)")
	fs.StringArrayVar(&f.companies, "company", nil, "Keep these companies (repeatable)")
	fs.StringArrayVar(&f.sectors, "sector", nil, "Keep these sectors (repeatable)")
	fs.StringSliceVar(&f.contactTypes, "contact-type", nil, "Keep these contact types (Email, Phone, Both, Web form, None)")
	fs.StringVar(&f.role, "role", "", "Keep roles containing this text")
	fs.StringVar(&f.email, "email", "", "Keep emails containing this text")
	fs.StringVar(&f.phone, "phone", "", "Keep phones containing this text")
	fs.StringVar(&f.crm, "crm", "", "Keep CRM Yes, No or All")
}

func (f *filterFlags) criteria() (core.Criteria, error) {
	c := core.Criteria{
		Countries:     f.countries,
		Companies:     f.companies,
		Sectors:       f.sectors,
		RoleContains:  strings.TrimSpace(f.role),
		EmailContains: strings.TrimSpace(f.email),
		PhoneContains: strings.TrimSpace(f.phone),
		CRM:           matchFold(f.crm, core.CRMAll, core.CRMFilterYes, core.CRMFilterNo),
	}
	for _, r := range f.regions {
		c.Regions = append(c.Regions, matchFold(r,
			core.RegionAPAC, core.RegionMENA, core.RegionEMEA, core.RegionAMER, core.RegionOther))
	}
	for _, t := range f.contactTypes {
		c.ContactTypes = append(c.ContactTypes, matchFold(t, core.ContactTypes...))
	}
	if err := c.Validate(); err != nil {
		return core.Criteria{}, err
	}
	return c, nil
}

// matchFold returns the known value equal to s ignoring case, or s itself
// so that validation can reject it.
func matchFold[T ~string](s string, known ...T) T {
	s = strings.TrimSpace(s)
	for _, k := range known {
		if strings.EqualFold(s, string(k)) {
			return k
		}
	}
	return T(s)
}

func newStandardizeCmd() *cobra.Command {
	var (
		sheet       string
		mappingPath string
		outPath     string
		format      string
		filters     filterFlags
	)

	cmd := &cobra.Command{
		Use:   "standardize FILE",
		Short: "Write the standardized, filtered table as CSV or XLSX",
		Long: `Standardizes every row of FILE and writes the rows that pass the filters.

Without --out the table is written to stdout as CSV. With --out the format
follows the file extension unless --format is given.`,
		Example: `  prospects standardize leads.csv --region APAC --crm no
  prospects standardize book.xlsx --sheet Leads --mapping leads.yaml --out apac.xlsx`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			criteria, err := filters.criteria()
			if err != nil {
				return err
			}
			exportFormat, err := resolveFormat(format, outPath)
			if err != nil {
				return err
			}

			ws, err := openWorkspace(cmd.Context(), args[0], sheet, mappingPath)
			if err != nil {
				return err
			}

			var buf bytes.Buffer
			if err := ws.svc.Export(cmd.Context(), ws.state.ID, criteria, exportFormat, &buf); err != nil {
				return err
			}

			if outPath == "" {
				_, err := cmd.OutOrStdout().Write(buf.Bytes())
				return err
			}
			if err := os.WriteFile(outPath, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", outPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&sheet, "sheet", "", "Worksheet to read (XLSX only, default first)")
	cmd.Flags().StringVar(&mappingPath, "mapping", "", "Mapping YAML written by the columns command")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Output file (default stdout)")
	cmd.Flags().StringVar(&format, "format", "", "Output format: csv or xlsx")
	filters.register(cmd)
	return cmd
}

func resolveFormat(format, outPath string) (core.ExportFormat, error) {
	if format != "" {
		return core.ParseExportFormat(format)
	}
	if ext := strings.TrimPrefix(filepath.Ext(outPath), "."); ext != "" {
		return core.ParseExportFormat(ext)
	}
	return core.ExportCSV, nil
}
