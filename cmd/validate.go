/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"

	"github.com/josephgoksu/tasktracker/models"
	"github.com/josephgoksu/tasktracker/store"
	"github.com/spf13/cobra"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the task file for integrity problems",
	Long: `Load the task file, check it against the task document JSON schema, and
check that the counters agree with the task list and that every completed
task has a completion time.

Exits non-zero when a problem is found.`,
	Args: cobra.NoArgs,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	doc, err := app.service.Document()
	if err != nil {
		return fail("Error: Could not read the task file.", err)
	}

	raw, err := app.store.Raw()
	if err != nil {
		return fail("Error: Could not read the task file.", err)
	}
	if err := store.ValidateSchemaBytes(raw); err != nil {
		return fail(fmt.Sprintf("Task file is invalid: %v", err), err)
	}
	if err := models.ValidateDocument(doc); err != nil {
		return fail(fmt.Sprintf("Task file is invalid: %v", err), err)
	}

	if !isQuiet() {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Task file is valid (%d tasks)\n", len(doc.Tasks))
	}
	return nil
}
