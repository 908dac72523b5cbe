/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"
	"strings"

	"github.com/josephgoksu/tasktracker/internal/util"
	"github.com/josephgoksu/tasktracker/models"
	"github.com/spf13/cobra"
)

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:   "add <description>",
	Short: "Add a pending task",
	Long: `Append a pending task to the end of the list.

Ids are not checked for uniqueness. When --id is omitted a short random id
is generated.

Examples:
  tasktracker add "Write the parser" --id T1 --category backend
  tasktracker add "Ship it" --priority P0`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

var (
	addID       string
	addCategory string
	addPriority string
)

func init() {
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().StringVar(&addID, "id", "", "task id (default: generated)")
	addCmd.Flags().StringVar(&addCategory, "category", "general", "task category")
	addCmd.Flags().StringVarP(&addPriority, "priority", "p", models.DefaultPriority, "task priority")
}

func runAdd(cmd *cobra.Command, args []string) error {
	description := strings.Join(args, " ")

	id := addID
	if id == "" {
		id = util.NewTaskID()
	}

	if _, err := app.service.AddTask(id, description, addCategory, addPriority); err != nil {
		return fail("Error: Failed to add the task.", err)
	}

	if isJSON() {
		tasks, err := app.service.ListTasks()
		if err != nil {
			return fail("Error: Could not read the task file.", err)
		}
		return printJSON(cmd.OutOrStdout(), addResponse{Added: true, Task: tasks[len(tasks)-1]})
	}

	if !isQuiet() {
		priority := addPriority
		if priority == "" {
			priority = models.DefaultPriority
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Added [%s] %s: %s\n", priority, id, description)
	}
	return nil
}
