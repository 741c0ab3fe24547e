package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/lox/splitrand/cmd/randsplit/shared"
	"github.com/lox/splitrand/internal/backend"
	"github.com/lox/splitrand/internal/fanout"
	"github.com/lox/splitrand/internal/fileutil"
)

type FanoutCmd struct {
	Workers     int    `short:"w" help:"Number of workers (overrides config)"`
	Parallelism int    `short:"p" help:"Maximum concurrent workers, 0 for unbounded (overrides config)"`
	Bytes       int64  `help:"Bytes each worker digests (overrides config)"`
	Output      string `short:"o" help:"Write digests to this file atomically instead of stdout"`
}

func (c *FanoutCmd) Run(g *Globals) error {
	e, err := g.load()
	if err != nil {
		return err
	}
	if c.Workers > 0 {
		e.cfg.Fanout.Workers = c.Workers
	}
	if c.Parallelism > 0 {
		e.cfg.Fanout.Parallelism = c.Parallelism
	}
	if c.Bytes > 0 {
		e.cfg.Fanout.Bytes = c.Bytes
	}

	gen, label, err := e.selected()
	if err != nil {
		return err
	}

	ctx := shared.SetupSignalHandler(e.logger)
	e.logger.Info("Fanning out",
		"generator", label,
		"workers", e.cfg.Fanout.Workers,
		"parallelism", e.cfg.Fanout.Parallelism,
		"bytes", e.cfg.Fanout.Bytes)

	digests, err := digestBranches(ctx, gen, e.cfg.Fanout.Workers, e.cfg.Fanout.Parallelism, e.cfg.Fanout.Bytes, e.logger)
	if err != nil {
		return err
	}
	if c.Output == "" {
		return printDigests(os.Stdout, digests)
	}
	if err := fileutil.WriteAtomic(c.Output, 0o644, func(w io.Writer) error {
		return printDigests(w, digests)
	}); err != nil {
		return fmt.Errorf("writing %s: %w", c.Output, err)
	}
	e.logger.Info("Wrote digests", "path", c.Output, "workers", len(digests))
	return nil
}

// digestBranches hashes the first n bytes of each of the first workers
// branches taken off gen.
func digestBranches(ctx context.Context, gen backend.Generator, workers, parallelism int, n int64, logger *log.Logger) ([]uint64, error) {
	return fanout.Run(ctx, gen.Branch(), workers,
		func(_ context.Context, _ int, g backend.Generator) (uint64, error) {
			return fanout.Digest(g, n)
		},
		fanout.WithLimit(parallelism),
		fanout.WithLogger(logger))
}

func printDigests(w io.Writer, digests []uint64) error {
	for i, d := range digests {
		if _, err := fmt.Fprintf(w, "%4d  %016x\n", i, d); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}
	return nil
}
