/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/josephgoksu/tasktracker/internal/tracker"
	"github.com/josephgoksu/tasktracker/internal/ui"
	"github.com/josephgoksu/tasktracker/internal/watch"
	"github.com/spf13/cobra"
)

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Show live progress while the task file changes",
	Long: `Open a live view of the progress report that refreshes whenever the task
file is written. Press q to quit or r to reload.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

var watchExitOnComplete bool

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().BoolVar(&watchExitOnComplete, "exit-on-complete", false, "quit once every task is completed")
}

// snapshotLoader reads progress and pending tasks for the watch view.
func snapshotLoader(svc *tracker.Service) ui.SnapshotFunc {
	return func() ui.Snapshot {
		progress, err := svc.GetProgress()
		if err != nil {
			return ui.Snapshot{Err: err}
		}
		pending, err := svc.GetPendingTasks()
		if err != nil {
			return ui.Snapshot{Err: err}
		}
		return ui.Snapshot{Progress: progress, Pending: pending}
	}
}

func runWatch(cmd *cobra.Command, args []string) error {
	path := app.cfg.StorePath()

	watcher, err := watch.NewFileWatcher(path, app.cfg.Watch.Debounce, app.log)
	if err != nil {
		return fail("Error: Could not watch the task file.", err)
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	watcher.Start(ctx)
	defer watcher.Stop()

	model := ui.NewWatchModel(snapshotLoader(app.service), watcher.Changes(), path, watchExitOnComplete)
	program := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	)

	final, err := program.Run()
	if err != nil {
		return fail("Error: The watch view stopped unexpectedly.", err)
	}
	if m, ok := final.(ui.WatchModel); ok && m.Snapshot().Err != nil {
		return fail("Error: Could not read the task file.", m.Snapshot().Err)
	}
	return nil
}
