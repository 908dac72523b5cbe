/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"errors"

	"github.com/spf13/cobra"
)

var (
	// cfgFile is the path to the configuration file.
	cfgFile string
	// version is the application version.
	version = "0.1.0"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "tasktracker",
	Short: "Track progress through a JSON task list",
	Long: `tasktracker keeps an ordered list of tasks in a JSON file and reports
how far along you are.

Run without a subcommand to print the status report.`,
	Args:               cobra.NoArgs,
	SilenceUsage:       true,
	SilenceErrors:      true,
	PersistentPreRunE:  setupApp,
	PersistentPostRunE: teardownApp,
	RunE:               runStatus,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		var ce *cliError
		if errors.As(err, &ce) {
			HandleFatalError(ce.msg, ce.err)
		}
		HandleFatalError("Error: "+err.Error(), err)
	}
}

// GetVersion returns the application version.
func GetVersion() string {
	return version
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&cfgFile, "config", "c", "", "config file (default is .tasktracker/config.yaml, $HOME/.tasktracker.yaml or ./.tasktracker.yaml)")
	pf.StringP("file", "f", "", "task file path (default .tasktracker/tasks.json)")
	pf.String("backend", "", "storage backend: file or sqlite")
	pf.BoolP("verbose", "v", false, "enable verbose output")
	pf.Bool("json", false, "output JSON where supported")
	pf.BoolP("quiet", "q", false, "print only essential output")
}
