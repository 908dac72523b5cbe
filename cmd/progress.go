/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"

	"github.com/josephgoksu/tasktracker/internal/ui"
	"github.com/spf13/cobra"
)

// progressCmd represents the progress command
var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Print aggregate progress",
	Args:  cobra.NoArgs,
	RunE:  runProgress,
}

func init() {
	rootCmd.AddCommand(progressCmd)
}

func runProgress(cmd *cobra.Command, args []string) error {
	progress, err := app.service.GetProgress()
	if err != nil {
		return fail("Error: Could not read the task file.", err)
	}

	if isJSON() {
		return printJSON(cmd.OutOrStdout(), progress)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%d/%d completed (%s%%), %d remaining\n",
		progress.Completed, progress.Total, ui.FormatPercentage(progress), progress.Remaining)
	return nil
}
