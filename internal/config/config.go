// Package config loads tasktracker settings from flags, environment, .env and
// an optional YAML config file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	configName = ".tasktracker"
	envPrefix  = "TASKTRACKER"

	// ProjectConfigName is the file name looked up inside the data directory.
	ProjectConfigName = "config"

	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Config is the resolved application configuration.
type Config struct {
	Verbose bool   `mapstructure:"verbose"`
	Config  string `mapstructure:"config"`
	Data    DataConfig
	Log     LogConfig
	Watch   WatchConfig
}

type DataConfig struct {
	Dir        string `mapstructure:"dir" validate:"required"`
	File       string `mapstructure:"file" validate:"required"`
	Backend    string `mapstructure:"backend" validate:"required,oneof=file sqlite"`
	SQLitePath string `mapstructure:"sqlitePath" validate:"required_if=Backend sqlite"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" validate:"omitempty,oneof=debug info warn warning error"`
	Format string `mapstructure:"format" validate:"omitempty,oneof=text json"`
}

type WatchConfig struct {
	Debounce time.Duration `mapstructure:"debounce" validate:"min=0"`
}

// validate is a single instance of Validate, it caches struct info
var validate = validator.New()

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("data.dir", DefaultDataDir)
	// Empty paths resolve against data.dir after loading.
	v.SetDefault("data.file", "")
	v.SetDefault("data.backend", BackendFile)
	v.SetDefault("data.sqlitePath", "")
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "text")
	v.SetDefault("watch.debounce", 200*time.Millisecond)
	v.SetDefault("verbose", false)
}

// Load reads .env, environment variables and the config file into a validated
// Config. cfgFile, when non-empty, must exist.
func Load(v *viper.Viper, cfgFile string) (*Config, error) {
	// A missing .env is the common case.
	_ = godotenv.Load()

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		addSearchPaths(v)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound) && cfgFile == "":
			// Defaults and environment only.
		case errors.Is(err, os.ErrNotExist):
			return nil, fmt.Errorf("config file not found: %s", cfgFile)
		default:
			return nil, fmt.Errorf("read config %s: %w", v.ConfigFileUsed(), err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.Config = v.ConfigFileUsed()
	cfg.resolvePaths()

	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// addSearchPaths prefers <data dir>/config.yaml and falls back to
// $HOME/.tasktracker.yaml and ./.tasktracker.yaml.
func addSearchPaths(v *viper.Viper) {
	dataDir := v.GetString("data.dir")
	if info, err := os.Stat(dataDir); err == nil && info.IsDir() {
		if _, err := os.Stat(ProjectConfigPath(dataDir)); err == nil {
			v.AddConfigPath(dataDir)
			v.SetConfigName(ProjectConfigName)
			return
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(home)
	}
	v.AddConfigPath(".")
	v.SetConfigName(configName)
}
