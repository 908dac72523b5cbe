/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// doneCmd represents the done command
var doneCmd = &cobra.Command{
	Use:     "done <task_id>",
	Aliases: []string{"complete", "finish"},
	Short:   "Mark a task as done",
	Long: `Mark the earliest pending task with the given id as completed.

Unknown ids and tasks that are already completed are reported but are not
errors.`,
	Example: `  tasktracker done T1

  # Using alias
  tasktracker finish T1`,
	Args: cobra.ExactArgs(1),
	RunE: runDone,
}

func init() {
	rootCmd.AddCommand(doneCmd)
}

func runDone(cmd *cobra.Command, args []string) error {
	taskID := args[0]

	completed, err := app.service.CompleteTask(taskID)
	if err != nil {
		return fail(fmt.Sprintf("Error: Failed to mark task '%s' as done.", taskID), err)
	}

	if isJSON() {
		return printJSON(cmd.OutOrStdout(), doneResponse{ID: taskID, Completed: completed})
	}

	out := cmd.OutOrStdout()
	if !completed {
		fmt.Fprintf(out, "No pending task with ID '%s'.\n", taskID)
		return nil
	}
	if !isQuiet() {
		fmt.Fprintf(out, "✓ Completed %s\n", taskID)
	}
	return nil
}
