// Package bench measures generator throughput against an injectable clock.
package bench

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/splitrand/split"
)

// DefaultBufferSize is the chunk handed to Fill per iteration.
const DefaultBufferSize = 64 * 1024

// Result is one timed measurement. Ops counts the operations performed:
// bytes for fill runs, splits for split runs.
type Result struct {
	Name    string
	Kind    string
	Ops     int64
	Elapsed time.Duration
}

// OpsPerSecond returns the throughput, or 0 when no time elapsed.
func (r Result) OpsPerSecond() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Ops) / r.Elapsed.Seconds()
}

// NanosPerOp returns the mean cost of one operation.
func (r Result) NanosPerOp() float64 {
	if r.Ops == 0 {
		return 0
	}
	return float64(r.Elapsed.Nanoseconds()) / float64(r.Ops)
}

// Runner times workloads.
type Runner struct {
	clock   quartz.Clock
	logger  *log.Logger
	bufSize int
}

// NewRunner creates a Runner. A nil logger disables debug output and a
// non-positive bufSize selects DefaultBufferSize.
func NewRunner(clock quartz.Clock, logger *log.Logger, bufSize int) *Runner {
	if bufSize <= 0 {
		bufSize = DefaultBufferSize
	}
	return &Runner{clock: clock, logger: logger, bufSize: bufSize}
}

// Fill times generating total bytes from src.
func (r *Runner) Fill(ctx context.Context, name string, src split.Rand, total int64) (Result, error) {
	if total <= 0 {
		return Result{}, fmt.Errorf("%s: byte count must be positive, got %d", name, total)
	}
	buf := make([]byte, r.bufSize)

	start := r.clock.Now()
	var done int64
	for done < total {
		if err := ctx.Err(); err != nil {
			return Result{}, fmt.Errorf("%s: %w", name, err)
		}
		n := int64(len(buf))
		if rem := total - done; rem < n {
			n = rem
		}
		src.Fill(buf[:n])
		done += n
	}
	res := Result{Name: name, Kind: "fill", Ops: done, Elapsed: r.clock.Since(start)}
	r.debug(res)
	return res, nil
}

// Split times n successive splits of g. Each child is consumed for one word
// so the split cannot be elided.
func Split[G split.Splitter[G]](ctx context.Context, r *Runner, name string, g G, n int) (Result, error) {
	if n <= 0 {
		return Result{}, fmt.Errorf("%s: split count must be positive, got %d", name, n)
	}

	start := r.clock.Now()
	var sink uint64
	for i := range n {
		if i%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return Result{}, fmt.Errorf("%s: %w", name, err)
			}
		}
		sink ^= g.Split().Uint64()
	}
	res := Result{Name: name, Kind: "split", Ops: int64(n), Elapsed: r.clock.Since(start)}
	if r.logger != nil {
		r.logger.Debug("Split sink", "name", name, "sink", sink)
	}
	r.debug(res)
	return res, nil
}

func (r *Runner) debug(res Result) {
	if r.logger == nil {
		return
	}
	r.logger.Debug("Measured",
		"name", res.Name,
		"kind", res.Kind,
		"ops", res.Ops,
		"elapsed", res.Elapsed)
}
