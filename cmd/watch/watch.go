// Package watch provides the "formkit watch" command: automatic
// extraction of workbooks dropped into a directory.
package watch

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/klytics/formkit/internal/config"
	"github.com/klytics/formkit/internal/extract"
	"github.com/klytics/formkit/internal/report"
	tmpl "github.com/klytics/formkit/internal/template"
	w "github.com/klytics/formkit/internal/watch"
	"github.com/klytics/formkit/internal/workbook"
)

// NewCommand creates the "watch" command.
func NewCommand() *cobra.Command {
	var (
		templatePath string
		outDir       string
		pattern      string
		recursive    bool
		debounce     int
	)

	cmd := &cobra.Command{
		Use:   "watch <directory> [directory...]",
		Short: "Watch directories and extract every incoming workbook",
		Long: `Monitors directories for new or modified .xlsx files, validates each
against the template, and writes the extracted record as JSON next to
the workbook (or into --out). Rejected workbooks produce a .report.json
with the full diagnostic list instead.

Example:
  formkit watch ./inbox --template survey.yaml --out ./records`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			def, err := tmpl.Load(tmpl.Resolve(templatePath, cfg.Template.Dir))
			if err != nil {
				return err
			}

			if debounce <= 0 {
				debounce = cfg.Watch.DebounceMs
			}

			watcher, err := w.New(w.Config{
				Directories: args,
				Pattern:     pattern,
				Recursive:   recursive || cfg.Watch.Recursive,
				Debounce:    debounce,
			})
			if err != nil {
				return err
			}

			reader := workbook.NewReader()
			watcher.Handler = func(path string) error {
				return processOne(reader, def, path, outDir)
			}

			fmt.Printf("Watching %s for workbooks matching template\n", strings.Join(args, ", "))
			fmt.Println("Press Ctrl+C to stop")

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			go func() {
				<-sigCh
				fmt.Println("\nStopping watcher...")
				cancel()
			}()

			return watcher.Start(ctx)
		},
	}

	cmd.Flags().StringVarP(&templatePath, "template", "t", "", "Template definition YAML (required)")
	cmd.MarkFlagRequired("template")
	cmd.Flags().StringVar(&outDir, "out", "", "Directory for record JSON (default: next to each workbook)")
	cmd.Flags().StringVar(&pattern, "pattern", "", "Glob on file names (e.g. 'survey-*.xlsx')")
	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "Watch directories recursively")
	cmd.Flags().IntVar(&debounce, "debounce", 0, "Debounce interval in milliseconds")

	return cmd
}

// processOne extracts a single workbook and writes either the record
// or, when rejected, the diagnostic report.
func processOne(reader *workbook.Reader, def *tmpl.Definition, path, outDir string) error {
	session := report.NewSession()
	rec, err := extract.Extract(session, reader, path, def)

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	dir := outDir
	if dir == "" {
		dir = filepath.Dir(path)
	} else if mkErr := os.MkdirAll(dir, 0755); mkErr != nil {
		return mkErr
	}

	if err != nil {
		reportPath := filepath.Join(dir, base+".report.json")
		if wErr := writeJSON(reportPath, session.Diagnostics()); wErr != nil {
			return wErr
		}
		return fmt.Errorf("%s rejected: %w (report: %s)", path, err, reportPath)
	}

	return writeJSON(filepath.Join(dir, base+".json"), rec)
}

func writeJSON(path string, v interface{}) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
