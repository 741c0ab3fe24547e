package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/splitrand/internal/backend"
)

// DefaultFilename is the configuration file read when none is given.
const DefaultFilename = "randsplit.hcl"

// Config represents the complete randsplit configuration
type Config struct {
	LogLevel  string           `hcl:"log_level,optional"`
	Generator *GeneratorConfig `hcl:"generator,block"`
	Stream    *StreamConfig    `hcl:"stream,block"`
	Bench     *BenchConfig     `hcl:"bench,block"`
	Check     *CheckConfig     `hcl:"check,block"`
	Fanout    *FanoutConfig    `hcl:"fanout,block"`
}

// GeneratorConfig selects the generator and its seed. A nil Seed means the
// seed is drawn from the operating system.
type GeneratorConfig struct {
	Backend    string `hcl:"backend,optional"`
	Sequential string `hcl:"sequential,optional"`
	Seed       *int64 `hcl:"seed,optional"`
}

// StreamConfig controls raw byte output
type StreamConfig struct {
	BufferSize int `hcl:"buffer_size,optional"`
}

// BenchConfig sizes the throughput workloads
type BenchConfig struct {
	Bytes  int64 `hcl:"bytes,optional"`
	Splits int   `hcl:"splits,optional"`
}

// CheckConfig sizes the statistical smoke tests
type CheckConfig struct {
	Bytes int `hcl:"bytes,optional"`
	Words int `hcl:"words,optional"`
}

// FanoutConfig controls the parallel branch demonstration
type FanoutConfig struct {
	Workers     int   `hcl:"workers,optional"`
	Parallelism int   `hcl:"parallelism,optional"`
	Bytes       int64 `hcl:"bytes,optional"`
}

// Default returns the configuration used when no file exists
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from an HCL file. A missing file yields the
// defaults.
func Load(filename string) (*Config, error) {
	src, err := os.ReadFile(filename)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(src, filename)
}

// Parse decodes HCL source and applies defaults for missing values
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg Config
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}

	if c.Generator == nil {
		c.Generator = &GeneratorConfig{}
	}
	if c.Generator.Backend == "" {
		c.Generator.Backend = "sip"
	}
	if c.Generator.Sequential == "" {
		c.Generator.Sequential = "none"
	}

	if c.Stream == nil {
		c.Stream = &StreamConfig{}
	}
	if c.Stream.BufferSize == 0 {
		c.Stream.BufferSize = 64 * 1024
	}

	if c.Bench == nil {
		c.Bench = &BenchConfig{}
	}
	if c.Bench.Bytes == 0 {
		c.Bench.Bytes = 64 << 20
	}
	if c.Bench.Splits == 0 {
		c.Bench.Splits = 1 << 20
	}

	if c.Check == nil {
		c.Check = &CheckConfig{}
	}
	if c.Check.Bytes == 0 {
		c.Check.Bytes = 1 << 20
	}
	if c.Check.Words == 0 {
		c.Check.Words = 1 << 14
	}

	if c.Fanout == nil {
		c.Fanout = &FanoutConfig{}
	}
	if c.Fanout.Workers == 0 {
		c.Fanout.Workers = 8
	}
	if c.Fanout.Bytes == 0 {
		c.Fanout.Bytes = 1 << 20
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s", c.LogLevel)
	}

	if err := backend.Validate(c.Generator.Backend, c.Generator.Sequential); err != nil {
		return fmt.Errorf("generator: %w", err)
	}

	if c.Stream.BufferSize <= 0 {
		return fmt.Errorf("stream: buffer size must be positive")
	}
	if c.Bench.Bytes <= 0 || c.Bench.Splits <= 0 {
		return fmt.Errorf("bench: workload sizes must be positive")
	}
	if c.Check.Bytes < 256 {
		return fmt.Errorf("check: need at least 256 bytes, got %d", c.Check.Bytes)
	}
	if c.Check.Words < 2 {
		return fmt.Errorf("check: need at least 2 words, got %d", c.Check.Words)
	}
	if c.Fanout.Workers <= 0 {
		return fmt.Errorf("fanout: workers must be positive")
	}
	if c.Fanout.Parallelism < 0 {
		return fmt.Errorf("fanout: parallelism cannot be negative")
	}
	if c.Fanout.Bytes <= 0 {
		return fmt.Errorf("fanout: bytes must be positive")
	}

	return nil
}

// Seed returns the configured seed, if any.
func (c *Config) Seed() (uint64, bool) {
	if c.Generator.Seed == nil {
		return 0, false
	}
	return uint64(*c.Generator.Seed), true
}
