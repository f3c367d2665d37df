// Package cmd contains all CLI commands for the formkit binary.
package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/klytics/formkit/cmd/check"
	"github.com/klytics/formkit/cmd/completion"
	cmdconfig "github.com/klytics/formkit/cmd/config"
	"github.com/klytics/formkit/cmd/extract"
	cmdtemplate "github.com/klytics/formkit/cmd/template"
	"github.com/klytics/formkit/cmd/version"
	cmdwatch "github.com/klytics/formkit/cmd/watch"
)

var (
	jsonOutput bool
	verbose    bool
	noColor    bool
)

// NewRootCommand creates and returns the root cobra command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "formkit",
		Short: "Validate and extract constrained spreadsheet forms",
		Long: `FormKit — typed records out of filled-in spreadsheet forms.

Validates that a filled-in workbook still matches its distributed blank
template (headers, labels, and fixed layout untouched), then extracts the
declared variables as a typed record for downstream pipelines.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if noColor {
				color.NoColor = true
			}
		},
	}

	// Global persistent flags
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output as machine-readable JSON")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable ANSI color output")

	// Register subcommands
	rootCmd.AddCommand(extract.NewCommand())
	rootCmd.AddCommand(check.NewCommand())
	rootCmd.AddCommand(cmdtemplate.NewCommand())
	rootCmd.AddCommand(cmdwatch.NewCommand())
	rootCmd.AddCommand(cmdconfig.NewCommand())
	rootCmd.AddCommand(completion.NewCommand(rootCmd))
	rootCmd.AddCommand(version.NewCommand())

	return rootCmd
}

// Execute runs the root command and handles any returned errors.
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
