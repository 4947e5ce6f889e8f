// File: config/config.go
// Author: momentics <momentics@gmail.com>
//
// Runtime configuration surface. One environment variable selects the
// worker-thread count; an optional TOML file supplies defaults underneath
// it. Environment wins over file, file wins over detection.

package config

import (
	"fmt"
	"os"
	"runtime"
	"strconv"

	"github.com/BurntSushi/toml"
)

const (
	// EnvMaxProcs selects the worker-thread count. Unset or unparsable
	// values fall back to the detected logical CPU count.
	EnvMaxProcs = "CORELOOP_MAXPROCS"

	// EnvConfigFile names an optional TOML configuration file.
	EnvConfigFile = "CORELOOP_CONFIG"
)

// Config holds the runtime settings consumed by the bootstrap.
type Config struct {
	Workers  int    `toml:"workers"`
	LogLevel string `toml:"log_level"`
}

// Load assembles the effective configuration. A missing or invalid
// CORELOOP_MAXPROCS falls back to runtime.NumCPU exactly; an unreadable
// TOML file is a setup error.
func Load() (Config, error) {
	cfg := Config{
		Workers:  runtime.NumCPU(),
		LogLevel: "info",
	}

	if path := os.Getenv(EnvConfigFile); path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: %s: %w", path, err)
		}
		if cfg.Workers <= 0 {
			cfg.Workers = runtime.NumCPU()
		}
	}

	if s := os.Getenv(EnvMaxProcs); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			cfg.Workers = n
		} else {
			cfg.Workers = runtime.NumCPU()
		}
	}

	return cfg, nil
}
