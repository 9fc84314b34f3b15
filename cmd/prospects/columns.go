package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newColumnsCmd() *cobra.Command {
	var sheet string

	cmd := &cobra.Command{
		Use:   "columns FILE",
		Short: "Print the columns of a file and the guessed mapping as YAML",
		Long: `Loads FILE and prints its columns together with the mapping guessed from
the column names. Save the output, edit it and pass it back with --mapping.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(cmd.Context(), args[0], sheet, "")
			if err != nil {
				return err
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(newMappingFile(ws.state)); err != nil {
				return fmt.Errorf("failed to write mapping: %w", err)
			}
			return enc.Close()
		},
	}
	cmd.Flags().StringVar(&sheet, "sheet", "", "Worksheet to read (XLSX only, default first)")
	return cmd
}
