package config

import (
	"path/filepath"
)

// DefaultDataDir is the project-local directory holding the task file,
// the optional config.yaml and crash logs.
const DefaultDataDir = ".tasktracker"

const (
	DefaultDataFile     = "tasks.json"
	DefaultDatabaseFile = "tasks.db"
)

// ProjectConfigPath returns <dataDir>/config.yaml.
func ProjectConfigPath(dataDir string) string {
	return filepath.Join(dataDir, ProjectConfigName+".yaml")
}

// resolvePaths places unset data files inside the data directory.
func (c *Config) resolvePaths() {
	if c.Data.File == "" && c.Data.Dir != "" {
		c.Data.File = filepath.Join(c.Data.Dir, DefaultDataFile)
	}
	if c.Data.SQLitePath == "" && c.Data.Dir != "" {
		c.Data.SQLitePath = filepath.Join(c.Data.Dir, DefaultDatabaseFile)
	}
}

// StorePath returns the path the configured backend persists to.
func (c *Config) StorePath() string {
	if c.Data.Backend == BackendSQLite {
		return c.Data.SQLitePath
	}
	return c.Data.File
}
