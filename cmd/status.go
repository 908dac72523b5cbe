/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"github.com/spf13/cobra"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the progress report",
	Long: `Print completed/total counts, the completion percentage and the list of
pending tasks. The exit code is 0 whether or not every task is done.`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	if isJSON() {
		progress, err := app.service.GetProgress()
		if err != nil {
			return fail("Error: Could not read the task file.", err)
		}
		pending, err := app.service.GetPendingTasks()
		if err != nil {
			return fail("Error: Could not read the task file.", err)
		}
		return printJSON(cmd.OutOrStdout(), statusResponse{Progress: progress, Pending: pending})
	}

	complete, err := app.service.PrintStatus(cmd.OutOrStdout())
	if err != nil {
		return fail("Error: Could not read the task file.", err)
	}
	app.log.Debug("status printed", "complete", complete)
	return nil
}
