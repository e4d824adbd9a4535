// Package config handles application configuration and setup
package config

import (
	"os"

	"github.com/retroenv/aheuic/internal/backend"
	"github.com/retroenv/aheuic/internal/compiler"
	"github.com/retroenv/retrogolib/log"
	"github.com/xyproto/env/v2"
)

// Environment variables that provide defaults for command line flags.
const (
	EnvBackend = "AHEUI_BACKEND"
	EnvEntry   = "AHEUI_ENTRY"
	EnvNoTrace = "AHEUI_NOTRACE"
	EnvDebug   = "AHEUI_DEBUG"
)

// Defaults contains flag defaults read from the environment.
type Defaults struct {
	Backend string
	Entry   string
	NoTrace bool
	Debug   bool
}

// EnvironmentDefaults returns the flag defaults, environment variables
// override the built in values.
func EnvironmentDefaults() Defaults {
	env.Load()
	return Defaults{
		Backend: env.Str(EnvBackend, backend.Default),
		Entry:   env.Str(EnvEntry, compiler.DefaultEntryName),
		NoTrace: env.Bool(EnvNoTrace),
		Debug:   env.Bool(EnvDebug),
	}
}

// CreateLogger creates a logger with appropriate settings. It logs to
// stderr, stdout carries program and console compiler output.
func CreateLogger(debug, quiet bool) *log.Logger {
	return log.NewWithConfig(loggerConfig(debug, quiet))
}

func loggerConfig(debug, quiet bool) log.Config {
	cfg := log.DefaultConfig()
	cfg.Output = os.Stderr
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return cfg
}
