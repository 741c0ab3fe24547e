package main

import (
	"context"
	"fmt"

	"github.com/coder/quartz"

	"github.com/lox/splitrand/cmd/randsplit/shared"
	"github.com/lox/splitrand/internal/backend"
	"github.com/lox/splitrand/internal/bench"
)

type BenchCmd struct {
	All    bool  `short:"a" help:"Benchmark every backend and sequential combination"`
	Bytes  int64 `help:"Bytes generated per fill run (overrides config)"`
	Splits int   `help:"Splits per split run (overrides config)"`
}

func (c *BenchCmd) Run(g *Globals) error {
	e, err := g.load()
	if err != nil {
		return err
	}
	if c.Bytes > 0 {
		e.cfg.Bench.Bytes = c.Bytes
	}
	if c.Splits > 0 {
		e.cfg.Bench.Splits = c.Splits
	}

	targets := [][2]string{{e.cfg.Generator.Backend, e.cfg.Generator.Sequential}}
	if c.All {
		targets = allTargets()
	}

	ctx := shared.SetupSignalHandler(e.logger)
	runner := bench.NewRunner(quartz.NewReal(), e.logger, e.cfg.Stream.BufferSize)

	var results []bench.Result
	for _, t := range targets {
		rs, err := benchTarget(ctx, e, runner, t[0], t[1])
		if err != nil {
			return err
		}
		results = append(results, rs...)
	}

	fmt.Println(renderBench(results))
	return nil
}

func benchTarget(ctx context.Context, e *env, runner *bench.Runner, name, seq string) ([]bench.Result, error) {
	label := backend.Label(name, seq)

	gen, err := e.open(name, seq)
	if err != nil {
		return nil, err
	}
	fill, err := runner.Fill(ctx, label, gen, e.cfg.Bench.Bytes)
	if err != nil {
		return nil, err
	}

	gen, err = e.open(name, seq)
	if err != nil {
		return nil, err
	}
	splits, err := bench.Split(ctx, runner, label, gen, e.cfg.Bench.Splits)
	if err != nil {
		return nil, err
	}
	return []bench.Result{fill, splits}, nil
}

func allTargets() [][2]string {
	var targets [][2]string
	for _, name := range backend.Backends {
		for _, seq := range backend.Sequentials {
			targets = append(targets, [2]string{name, seq})
		}
	}
	return targets
}
