/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/josephgoksu/tasktracker/store"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the task document as JSON, YAML or TOML",
	Long: `Write the whole task document in the chosen format to stdout, or to a
file with --output.

Examples:
  tasktracker export --format yaml
  tasktracker export --format toml -o tasks.toml`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

var (
	exportFormat string
	exportOutput string
)

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&exportFormat, "format", store.FormatJSON,
		fmt.Sprintf("output format (%s)", strings.Join(store.Formats, ", ")))
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "write to file instead of stdout")
}

func runExport(cmd *cobra.Command, args []string) error {
	doc, err := app.service.Document()
	if err != nil {
		return fail("Error: Could not read the task file.", err)
	}

	data, err := store.Encode(doc, exportFormat)
	if err != nil {
		return fail(fmt.Sprintf("Error: Cannot export as %q.", exportFormat), err)
	}

	if exportOutput == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}

	if dir := filepath.Dir(exportOutput); dir != "." {
		if err := appFs.MkdirAll(dir, 0o755); err != nil {
			return fail("Error: Could not create the output directory.", err)
		}
	}
	if err := afero.WriteFile(appFs, exportOutput, data, 0o644); err != nil {
		return fail(fmt.Sprintf("Error: Could not write %s.", exportOutput), err)
	}
	if !isQuiet() {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Exported %d tasks to %s\n", len(doc.Tasks), exportOutput)
	}
	return nil
}
