// Package config reads the toolchain settings from the environment.
package config

import (
	"fmt"
	"runtime"

	"github.com/kelseyhightower/envconfig"
)

// Config holds the settings shared by every command. Command-line flags
// override these values.
type Config struct {
	// Jobs is the number of files formatted in parallel. Zero means one per
	// CPU.
	Jobs int `envconfig:"FIDL_JOBS"`

	// Verbosity is the log level: 0 logs errors only, higher values log
	// more.
	Verbosity int `envconfig:"FIDL_VERBOSITY"`

	// LogFile receives the log instead of stderr when set.
	LogFile string `envconfig:"FIDL_LOG_FILE"`
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	var conf Config
	if err := envconfig.Process("", &conf); err != nil {
		return conf, fmt.Errorf("read environment: %w", err)
	}
	if conf.Jobs < 0 {
		return conf, fmt.Errorf("FIDL_JOBS must not be negative, got %d", conf.Jobs)
	}
	return conf, nil
}

// Workers returns the number of parallel workers to use.
func (c Config) Workers() int {
	if c.Jobs > 0 {
		return c.Jobs
	}
	return runtime.NumCPU()
}

// LogPath returns the log file for commonlog.Configure, nil for stderr.
func (c Config) LogPath() *string {
	if c.LogFile == "" {
		return nil
	}
	path := c.LogFile
	return &path
}
