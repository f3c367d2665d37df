// Package check provides the "formkit check" command: template
// integrity verification without extraction.
package check

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/klytics/formkit/internal/config"
	"github.com/klytics/formkit/internal/integrity"
	"github.com/klytics/formkit/internal/output"
	"github.com/klytics/formkit/internal/report"
	tmpl "github.com/klytics/formkit/internal/template"
	"github.com/klytics/formkit/internal/workbook"
)

// NewCommand creates the "check" command.
func NewCommand() *cobra.Command {
	var templatePath string

	cmd := &cobra.Command{
		Use:   "check <file.xlsx>",
		Short: "Verify that a workbook still matches its template layout",
		Long: `Confirms every referenced sheet exists and compares every fixed
region against the template's blank reference. All violated ranges are
reported together in one pass.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonFlag, _ := cmd.Flags().GetBool("json")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			def, err := tmpl.Load(tmpl.Resolve(templatePath, cfg.Template.Dir))
			if err != nil {
				return err
			}

			session := report.NewSession()
			if _, err := os.Stat(args[0]); err != nil {
				ferr := session.Errorf("check", report.CodeMissingFile,
					"file not found: %s — check that the path is correct", args[0])
				if jsonFlag {
					return output.PrintJSONError("check", ferr, output.ExitUserError)
				}
				return ferr
			}

			_, err = integrity.Check(session, workbook.NewReader(), args[0], def)
			if jsonFlag {
				if err != nil {
					return output.PrintJSONError("check", err, output.ExitUserError)
				}
				return output.PrintJSON("check", session.Diagnostics())
			}

			session.Render(os.Stderr)
			if err != nil {
				return err
			}

			color.New(color.FgGreen).Printf("%s matches the template layout\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVarP(&templatePath, "template", "t", "", "Template definition YAML (required)")
	cmd.MarkFlagRequired("template")

	return cmd
}
