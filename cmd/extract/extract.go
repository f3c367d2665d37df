// Package extract provides the "formkit extract" command: validate a
// filled-in workbook against its template and emit the typed record.
package extract

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/klytics/formkit/internal/config"
	"github.com/klytics/formkit/internal/extract"
	"github.com/klytics/formkit/internal/output"
	"github.com/klytics/formkit/internal/report"
	tmpl "github.com/klytics/formkit/internal/template"
	"github.com/klytics/formkit/internal/workbook"
)

// NewCommand creates the "extract" command.
func NewCommand() *cobra.Command {
	var templatePath string
	var csvOutput bool

	cmd := &cobra.Command{
		Use:   "extract <file.xlsx>",
		Short: "Validate a filled-in form and extract its variables",
		Long: `Checks that the workbook's fixed regions still match the template's
blank reference, then reads every declared variable as a typed grid.
The command fails, with every violation reported, if the layout was
modified or any variable cannot be coerced to its declared type.`,
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
			rec, err := extract.Extract(session, workbook.NewReader(), args[0], def)
			if err != nil {
				if jsonFlag {
					return output.PrintJSONError("extract", err, output.ExitUserError)
				}
				session.Render(os.Stderr)
				return err
			}

			if jsonFlag {
				return output.PrintJSON("extract", struct {
					Record      extract.Record      `json:"record"`
					Diagnostics []report.Diagnostic `json:"diagnostics"`
				}{rec, session.Diagnostics()})
			}

			if csvOutput {
				return writeCSV(def, rec)
			}

			printPretty(def, rec)
			return nil
		},
	}

	cmd.Flags().StringVarP(&templatePath, "template", "t", "", "Template definition YAML (required)")
	cmd.MarkFlagRequired("template")
	cmd.Flags().BoolVar(&csvOutput, "csv", false, "Output as CSV, one block per variable")

	return cmd
}

func writeCSV(def *tmpl.Definition, rec extract.Record) error {
	w := csv.NewWriter(os.Stdout)
	for _, v := range def.Variables {
		grid := rec[v.Name]
		if len(def.Variables) > 1 {
			fmt.Fprintf(os.Stderr, "--- %s ---\n", v.Name)
		}
		for _, row := range grid {
			record := make([]string, len(row))
			for i, cell := range row {
				record[i] = cell.String()
			}
			if err := w.Write(record); err != nil {
				return err
			}
		}
		w.Flush()
	}
	return w.Error()
}

func printPretty(def *tmpl.Definition, rec extract.Record) {
	headerStyle := color.New(color.Bold, color.FgCyan)
	dim := color.New(color.FgHiBlack)

	for _, v := range def.Variables {
		grid := rec[v.Name]
		headerStyle.Printf("%s ", v.Name)
		dim.Printf("(%s!%s, %s)\n", v.Sheet, v.Range, v.EffectiveType())

		if grid.Rows() == 0 {
			dim.Println("  (empty)")
			continue
		}

		widths := make([]int, grid.Cols())
		for _, row := range grid {
			for j, cell := range row {
				if n := len(cell.String()); n > widths[j] {
					widths[j] = n
				}
			}
		}

		for _, row := range grid {
			parts := make([]string, len(row))
			for j, cell := range row {
				s := cell.String()
				if cell.IsMissing() {
					s = "·"
				}
				parts[j] = fmt.Sprintf("%-*s", widths[j], s)
			}
			fmt.Printf("  %s\n", strings.TrimRight(strings.Join(parts, "  "), " "))
		}
	}
}
