package main

import (
	"fmt"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/lox/splitrand/cmd/randsplit/shared"
	"github.com/lox/splitrand/internal/backend"
	"github.com/lox/splitrand/internal/config"
	"github.com/lox/splitrand/internal/randutil"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Globals `embed:""`

	Version kong.VersionFlag `short:"v" help:"Show version"`
	Stream  StreamCmd        `cmd:"" help:"Write raw generator output to stdout"`
	Bench   BenchCmd         `cmd:"" help:"Measure fill and split throughput"`
	Check   CheckCmd         `cmd:"" help:"Run statistical smoke tests"`
	Fanout  FanoutCmd        `cmd:"" help:"Digest branch streams from parallel workers"`
	Info    InfoCmd          `cmd:"" help:"Print version and available generators"`
}

// Globals are flags shared by every command. Flags override the config file.
type Globals struct {
	Config     string  `short:"c" default:"randsplit.hcl" help:"Path to HCL configuration file"`
	LogLevel   string  `short:"l" help:"Log level (overrides config)"`
	Backend    string  `short:"b" help:"Splittable backend: sip, chaskey or twolcg (overrides config)"`
	Sequential string  `short:"s" help:"Sequential generator composed onto the backend (overrides config)"`
	Seed       *uint64 `help:"Seed (overrides config; drawn from the OS when unset)"`
}

// env is the resolved runtime state for a command.
type env struct {
	cfg    *config.Config
	logger *log.Logger
	seed   uint64
}

func (g *Globals) load() (*env, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if g.LogLevel != "" {
		cfg.LogLevel = g.LogLevel
	}
	if g.Backend != "" {
		cfg.Generator.Backend = g.Backend
	}
	if g.Sequential != "" {
		cfg.Generator.Sequential = g.Sequential
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger := shared.SetupLogger(cfg.LogLevel)

	seed, ok := cfg.Seed()
	if g.Seed != nil {
		seed, ok = *g.Seed, true
	}
	if !ok {
		seed, err = randutil.NewSeed()
		if err != nil {
			return nil, err
		}
		logger.Info("Drew seed from OS", "seed", seed)
	}

	return &env{cfg: cfg, logger: logger, seed: seed}, nil
}

// open builds a fresh generator from the resolved seed. Every call starts
// from the same root, so commands can open one generator per run.
func (e *env) open(name, sequential string) (backend.Generator, error) {
	g, err := backend.Open(name, sequential, randutil.Expand(e.seed))
	if err != nil {
		return nil, err
	}
	e.logger.Debug("Opened generator", "generator", backend.Label(name, sequential), "seed", e.seed)
	return g, nil
}

// selected opens the generator named by the configuration.
func (e *env) selected() (backend.Generator, string, error) {
	name, seq := e.cfg.Generator.Backend, e.cfg.Generator.Sequential
	g, err := e.open(name, seq)
	return g, backend.Label(name, seq), err
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("randsplit"),
		kong.Description("Splittable pseudorandom generators"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
