package config

import (
	"os"
	"testing"

	"github.com/retroenv/aheuic/internal/backend"
	"github.com/retroenv/aheuic/internal/compiler"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestEnvironmentDefaults(t *testing.T) {
	t.Setenv(EnvBackend, "")
	t.Setenv(EnvEntry, "")
	t.Setenv(EnvNoTrace, "")
	t.Setenv(EnvDebug, "")

	defaults := EnvironmentDefaults()
	assert.Equal(t, backend.Default, defaults.Backend)
	assert.Equal(t, compiler.DefaultEntryName, defaults.Entry)
	assert.False(t, defaults.NoTrace)
	assert.False(t, defaults.Debug)
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv(EnvBackend, "qbe")
	t.Setenv(EnvEntry, "main")
	t.Setenv(EnvNoTrace, "1")
	t.Setenv(EnvDebug, "true")

	defaults := EnvironmentDefaults()
	assert.Equal(t, "qbe", defaults.Backend)
	assert.Equal(t, "main", defaults.Entry)
	assert.True(t, defaults.NoTrace)
	assert.True(t, defaults.Debug)
}

func TestEnvironmentReload(t *testing.T) {
	t.Setenv(EnvBackend, "qbe")
	assert.Equal(t, "qbe", EnvironmentDefaults().Backend)

	t.Setenv(EnvBackend, "ir")
	assert.Equal(t, "ir", EnvironmentDefaults().Backend)
}

func TestLoggerConfig(t *testing.T) {
	assert.Equal(t, log.DefaultConfig().Level, loggerConfig(false, false).Level)
	assert.Equal(t, log.DebugLevel, loggerConfig(true, false).Level)
	assert.Equal(t, log.ErrorLevel, loggerConfig(false, true).Level)
	assert.Equal(t, log.DebugLevel, loggerConfig(true, true).Level)

	// stdout is reserved for program and console compiler output
	assert.True(t, loggerConfig(false, false).Output == os.Stderr)
}

func TestCreateLogger(t *testing.T) {
	assert.NotNil(t, CreateLogger(false, false))
	assert.NotNil(t, CreateLogger(true, false))
	assert.NotNil(t, CreateLogger(false, true))
}
