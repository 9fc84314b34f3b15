// Command prospects standardizes, checks and filters contact lists from the
// command line using the same pipeline as the web server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/JonMunkholm/prospect-explorer/internal/core"
	"github.com/JonMunkholm/prospect-explorer/internal/logging"
)

func main() {
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", describe(err))
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:   "prospects",
		Short: "Normalize and explore prospect contact lists",
		Long: `prospects loads a CSV or XLSX contact list, maps its columns onto the
canonical prospect fields and standardizes every row: cleaned emails and
phones, inferred countries, regions and contact types.

Use "columns" to see the guessed column mapping, "standardize" to write the
filtered standardized table, "quality" to list data-quality issues and
"summary" for headline counts and breakdowns.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupWriter(cmd.ErrOrStderr(), logLevel, "text")
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level: debug, info, warn or error")

	root.AddCommand(
		newColumnsCmd(),
		newStandardizeCmd(),
		newQualityCmd(),
		newSummaryCmd(),
	)
	return root
}

// describe prefers the user-facing message when the error has one.
func describe(err error) string {
	if core.IsUserFacing(err) {
		return core.FormatUserError(err)
	}
	return err.Error()
}
