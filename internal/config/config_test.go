package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/splitrand/internal/backend"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.hcl"))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "sip", cfg.Generator.Backend)
	assert.Equal(t, "none", cfg.Generator.Sequential)
	assert.Equal(t, 64*1024, cfg.Stream.BufferSize)
	assert.Equal(t, 8, cfg.Fanout.Workers)

	_, ok := cfg.Seed()
	assert.False(t, ok)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFilename)
	src := `
log_level = "debug"

generator {
  backend    = "chaskey"
  sequential = "pcg32"
  seed       = 1234567890
}

fanout {
  workers     = 16
  parallelism = 4
}
`
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "chaskey", cfg.Generator.Backend)
	assert.Equal(t, "pcg32", cfg.Generator.Sequential)
	assert.Equal(t, 16, cfg.Fanout.Workers)
	assert.Equal(t, 4, cfg.Fanout.Parallelism)
	// Blocks left out of the file still get defaults.
	assert.Equal(t, int64(1<<20), cfg.Fanout.Bytes)
	assert.Equal(t, 1<<20, cfg.Check.Bytes)

	seed, ok := cfg.Seed()
	require.True(t, ok)
	assert.Equal(t, uint64(1234567890), seed)
}

func TestNegativeSeedWraps(t *testing.T) {
	cfg, err := Parse([]byte(`generator { seed = -1 }`), "test.hcl")
	require.NoError(t, err)

	seed, ok := cfg.Seed()
	require.True(t, ok)
	assert.Equal(t, ^uint64(0), seed)
}

func TestParseErrors(t *testing.T) {
	_, err := Parse([]byte(`generator {`), "broken.hcl")
	assert.ErrorContains(t, err, "failed to parse")

	_, err = Parse([]byte(`colour = "red"`), "unknown.hcl")
	assert.ErrorContains(t, err, "failed to decode")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		errMsg string
	}{
		{"log level", func(c *Config) { c.LogLevel = "trace" }, "invalid log level"},
		{"backend", func(c *Config) { c.Generator.Backend = "isaac" }, "unknown backend"},
		{"sequential", func(c *Config) { c.Generator.Sequential = "mt" }, "unknown sequential"},
		{"buffer", func(c *Config) { c.Stream.BufferSize = -1 }, "buffer size"},
		{"bench", func(c *Config) { c.Bench.Splits = -1 }, "bench"},
		{"check bytes", func(c *Config) { c.Check.Bytes = 10 }, "256 bytes"},
		{"check words", func(c *Config) { c.Check.Words = 1 }, "2 words"},
		{"workers", func(c *Config) { c.Fanout.Workers = -2 }, "workers"},
		{"parallelism", func(c *Config) { c.Fanout.Parallelism = -1 }, "parallelism"},
		{"fanout bytes", func(c *Config) { c.Fanout.Bytes = -1 }, "bytes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.errMsg)
		})
	}
}

func TestValidateWrapsBackendErrors(t *testing.T) {
	cfg := Default()
	cfg.Generator.Backend = "fortuna"
	assert.ErrorIs(t, cfg.Validate(), backend.ErrUnknownBackend)
}
