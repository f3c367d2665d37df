// Package template provides the "formkit template" CLI commands for
// inspecting and validating template definition files.
package template

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/klytics/formkit/internal/config"
	"github.com/klytics/formkit/internal/output"
	tmpl "github.com/klytics/formkit/internal/template"
)

// NewCommand creates the "template" command with all subcommands.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "template",
		Aliases: []string{"tmpl"},
		Short:   "Inspect and validate template definitions",
		Long:    "Lint and display the YAML definitions that declare a form's variables and fixed regions.",
	}

	cmd.AddCommand(newLintCmd())
	cmd.AddCommand(newShowCmd())

	return cmd
}

func newLintCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lint <def.yaml>",
		Short: "Validate a template definition file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			def, err := loadDef(args[0])
			if err != nil {
				return err
			}

			if _, err := os.Stat(def.BlankFile); err != nil {
				return fmt.Errorf("blank reference workbook not found: %s", def.BlankFile)
			}

			jsonFlag, _ := cmd.Flags().GetBool("json")
			if jsonFlag {
				return output.PrintJSON("template lint", def)
			}

			color.New(color.FgGreen).Printf("%s is valid: %d variable(s), %d fixed region set(s)\n",
				args[0], len(def.Variables), len(def.FixedValues))
			return nil
		},
	}
	return cmd
}

func newShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <def.yaml>",
		Short: "Show the variables and fixed regions of a template definition",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			def, err := loadDef(args[0])
			if err != nil {
				return err
			}

			jsonFlag, _ := cmd.Flags().GetBool("json")
			if jsonFlag {
				return output.PrintJSON("template show", def)
			}

			if def.Name != "" {
				fmt.Printf("Template: %s\n", def.Name)
			}
			fmt.Printf("Blank reference: %s\n\n", def.BlankFile)

			tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintf(tw, "VARIABLE\tSHEET\tRANGE\tTYPE\n")
			for _, v := range def.Variables {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", v.Name, v.Sheet, v.Range, v.EffectiveType())
			}
			tw.Flush()

			if len(def.FixedValues) > 0 {
				fmt.Println()
				tw = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
				fmt.Fprintf(tw, "FIXED SHEET\tRANGES\n")
				for _, fx := range def.FixedValues {
					fmt.Fprintf(tw, "%s\t%s\n", fx.Sheet, strings.Join(fx.Ranges, ", "))
				}
				tw.Flush()
			}
			return nil
		},
	}
	return cmd
}

func loadDef(path string) (*tmpl.Definition, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return tmpl.Load(tmpl.Resolve(path, cfg.Template.Dir))
}
