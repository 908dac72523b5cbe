package cmd

import (
	"fmt"
	"log/slog"

	"github.com/josephgoksu/tasktracker/internal/config"
	"github.com/josephgoksu/tasktracker/internal/logger"
	"github.com/josephgoksu/tasktracker/internal/tracker"
	"github.com/josephgoksu/tasktracker/store"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// appFs backs the file store and export output. Tests swap in a MemMapFs.
var appFs = afero.NewOsFs()

// appState is what every command works against once setupApp has run.
type appState struct {
	cfg     *config.Config
	store   store.DocumentStore
	service *tracker.Service
	log     *slog.Logger
}

var app *appState

// flagKeys maps global flags to their config keys.
var flagKeys = map[string]string{
	"config":  "config",
	"file":    "data.file",
	"backend": "data.backend",
	"verbose": "verbose",
	"json":    "json",
	"quiet":   "quiet",
}

// bindGlobalFlags binds on every run so that a viper.Reset between runs
// does not lose the bindings.
func bindGlobalFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	return nil
}

// setupApp loads config, installs the logger and opens the configured store.
func setupApp(cmd *cobra.Command, args []string) error {
	v := viper.GetViper()
	if err := bindGlobalFlags(v, cmd.Root().PersistentFlags()); err != nil {
		return err
	}

	cfg, err := config.Load(v, cfgFile)
	if err != nil {
		return fail("Error: Could not load configuration.", err)
	}

	level := cfg.Log.Level
	if cfg.Verbose {
		level = "debug"
	}
	log, err := logger.New(level, cfg.Log.Format, cmd.ErrOrStderr())
	if err != nil {
		return fail("Error: Invalid logging configuration.", err)
	}
	slog.SetDefault(log)

	logger.SetBasePath(cfg.Data.Dir)
	logger.SetVersion(version)
	logger.SetCommand(cmd.CommandPath(), args)

	if cfg.Config != "" {
		log.Debug("using config file", "path", cfg.Config)
	}

	st, err := openStore(cfg)
	if err != nil {
		return fail("Error: Could not initialize the task store.", err)
	}

	app = &appState{
		cfg:     cfg,
		store:   st,
		service: tracker.NewService(st, tracker.WithLogger(log)),
		log:     log,
	}
	return nil
}

func teardownApp(cmd *cobra.Command, args []string) error {
	if app == nil {
		return nil
	}
	st := app.store
	app = nil
	if err := st.Close(); err != nil {
		return fail("Error: Failed to close task store.", err)
	}
	return nil
}

func openStore(cfg *config.Config) (store.DocumentStore, error) {
	switch cfg.Data.Backend {
	case config.BackendSQLite:
		return store.NewSQLiteStore(cfg.Data.SQLitePath)
	case config.BackendFile, "":
		return store.NewFileStore(appFs, cfg.Data.File), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Data.Backend)
	}
}
