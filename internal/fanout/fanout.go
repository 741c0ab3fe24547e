// Package fanout runs indexed workers in parallel, each owning the generator
// produced by a branch factory for its index. Because worker i always gets
// branch.Call(i), results depend only on the seed and never on scheduling.
package fanout

import (
	"context"
	"fmt"
	"io"

	"github.com/cespare/xxhash/v2"
	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/splitrand/split"
)

type options struct {
	limit  int
	logger *log.Logger
}

// Option configures Run.
type Option func(*options)

// WithLimit bounds the number of concurrently running workers. Values <= 0
// leave the group unbounded.
func WithLimit(n int) Option {
	return func(o *options) { o.limit = n }
}

// WithLogger attaches a logger for per-worker debug lines.
func WithLogger(logger *log.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// Run starts n workers and returns their results in index order. Worker i
// calls fn with its own generator branch.Call(i). The first worker error
// cancels the context handed to the others and is returned.
func Run[G, T any](ctx context.Context, branch split.Branch[G], n int, fn func(ctx context.Context, i int, g G) (T, error), opts ...Option) ([]T, error) {
	if n < 0 {
		return nil, fmt.Errorf("invalid worker count: %d", n)
	}
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	g, ctx := errgroup.WithContext(ctx)
	if o.limit > 0 {
		g.SetLimit(o.limit)
	}

	results := make([]T, n)
	for i := range n {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if o.logger != nil {
				o.logger.Debug("Starting worker", "index", i)
			}
			r, err := fn(ctx, i, branch.Call(uint64(i)))
			if err != nil {
				return fmt.Errorf("worker %d: %w", i, err)
			}
			results[i] = r
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Digest hashes the next n bytes of r with xxhash.
func Digest(r io.Reader, n int64) (uint64, error) {
	d := xxhash.New()
	if _, err := io.CopyN(d, r, n); err != nil {
		return 0, fmt.Errorf("digest stream: %w", err)
	}
	return d.Sum64(), nil
}
