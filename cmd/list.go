/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"github.com/josephgoksu/tasktracker/internal/ui"
	"github.com/josephgoksu/tasktracker/models"
	"github.com/spf13/cobra"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List pending tasks",
	Long: `List pending tasks in the order they were added.

Examples:
  tasktracker list          # Pending tasks
  tasktracker list --all    # Every task, completed ones included
  tasktracker list --json   # Machine-readable output`,
	Aliases: []string{"ls"},
	Args:    cobra.NoArgs,
	RunE:    runList,
}

var listAll bool

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().BoolVarP(&listAll, "all", "a", false, "include completed tasks")
}

func runList(cmd *cobra.Command, args []string) error {
	var (
		tasks []models.Task
		err   error
	)
	if listAll {
		tasks, err = app.service.ListTasks()
	} else {
		tasks, err = app.service.GetPendingTasks()
	}
	if err != nil {
		return fail("Error: Could not read the task file.", err)
	}

	if isJSON() {
		return printJSON(cmd.OutOrStdout(), tasks)
	}

	emptyMsg := "No pending tasks."
	if listAll {
		emptyMsg = "No tasks found."
	}
	if err := ui.RenderTaskList(cmd.OutOrStdout(), tasks, emptyMsg); err != nil {
		return fail("Error: Could not render the task list.", err)
	}
	return nil
}
