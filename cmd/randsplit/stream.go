package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/lox/splitrand/cmd/randsplit/shared"
	"github.com/lox/splitrand/split"
)

var errTerminal = errors.New("refusing to write binary output to a terminal (use --force)")

type StreamCmd struct {
	Count int64 `short:"n" help:"Number of bytes to write (0 streams until interrupted)"`
	Force bool  `short:"f" help:"Write even when stdout is a terminal"`
}

func (c *StreamCmd) Run(g *Globals) error {
	if c.Count < 0 {
		return fmt.Errorf("count cannot be negative: %d", c.Count)
	}
	if !c.Force && isTerminal(os.Stdout) {
		return errTerminal
	}

	e, err := g.load()
	if err != nil {
		return err
	}
	gen, label, err := e.selected()
	if err != nil {
		return err
	}

	e.logger.Debug("Streaming", "generator", label, "count", c.Count)
	ctx := shared.SetupSignalHandler(e.logger)
	err = stream(ctx, os.Stdout, gen, c.Count, e.cfg.Stream.BufferSize)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// stream writes count bytes from r to w, or runs until ctx is cancelled when
// count is zero.
func stream(ctx context.Context, w io.Writer, r split.Rand, count int64, bufSize int) error {
	buf := make([]byte, bufSize)
	var written int64
	for count == 0 || written < count {
		if err := ctx.Err(); err != nil {
			return err
		}
		n := int64(len(buf))
		if count > 0 && count-written < n {
			n = count - written
		}
		r.Fill(buf[:n])
		if _, err := w.Write(buf[:n]); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		written += n
	}
	return nil
}
