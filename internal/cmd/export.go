package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/tock/internal/errors"
	"github.com/Iron-Ham/tock/internal/export"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the task list as text, JSON, CSV or PDF",
	Long: `Write the task list in another format.

Formats:
  text  - the numbered listing, as shown by list
  json  - an array of task objects
  csv   - one row per task with a header row
  pdf   - a printable A4 page

The format defaults to export.format from the configuration. Output goes to
stdout unless --output names a file.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

var (
	exportFormat string
	exportOutput string
	exportMatch  string
)

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "", "output format: text, json, csv or pdf")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "write to this file instead of stdout")
	exportCmd.Flags().StringVarP(&exportMatch, "match", "m", "", "only export tasks whose description matches this glob")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	s, err := openSession(cmd, false)
	if err != nil {
		return err
	}
	defer s.Close()

	name := exportFormat
	if name == "" {
		name = s.cfg.Export.Format
	}
	format, err := export.ParseFormat(name)
	if err != nil {
		return err
	}

	items := export.Items(s.list.Tasks())
	if exportMatch != "" {
		if items, err = export.Filter(s.list.Tasks(), exportMatch); err != nil {
			return err
		}
	}

	var w io.Writer = cmd.OutOrStdout()
	if exportOutput != "" {
		if err := os.MkdirAll(filepath.Dir(exportOutput), 0o755); err != nil {
			return errors.Wrapf(err, "failed to create output directory for %s", exportOutput)
		}
		f, err := os.Create(exportOutput)
		if err != nil {
			return errors.Wrapf(err, "failed to create output file %s", exportOutput)
		}
		defer func() { _ = f.Close() }()
		w = f
	}

	if err := export.Write(w, format, items); err != nil {
		return errors.Wrapf(err, "%s export failed", format)
	}
	s.logger.Info("tasks exported", "format", string(format), "count", len(items), "output", exportOutput)

	if exportOutput != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "Exported %d tasks to %s\n", len(items), exportOutput)
	}
	return nil
}
