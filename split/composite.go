package split

import (
	rand "math/rand/v2"

	"github.com/lox/splitrand/internal/mix"
)

// Composite pairs a splittable generator S with a fast sequential
// generator R. Sequential output comes from R; splitting is done by S.
// Whenever S changes state, R is replaced by a fresh generator drawn
// from S, so R is always a deterministic function of S and two
// composites built from equal splitters produce equal output.
//
// No quality guarantees are inherited from the components. In
// particular, composing two good generators does not yield a good one
// by construction.
type Composite[S Splitter[S], R rand.Source] struct {
	splitter S
	seq      R
	draw     func(S) R
}

// Compose builds a Composite from s, taking ownership of it. draw
// constructs a sequential generator by consuming output from s.
func Compose[S Splitter[S], R rand.Source](s S, draw func(S) R) *Composite[S, R] {
	return &Composite[S, R]{splitter: s, seq: draw(s), draw: draw}
}

// Reseed replaces the splitting component with s and redraws the
// sequential one. Reseeding with a splitter equal to the one originally
// passed to Compose restarts the same stream.
func (c *Composite[S, R]) Reseed(s S) {
	c.splitter = s
	c.seq = c.draw(s)
}

func (c *Composite[S, R]) Uint64() uint64 {
	return c.seq.Uint64()
}

func (c *Composite[S, R]) Uint32() uint32 {
	if r, ok := any(c.seq).(interface{ Uint32() uint32 }); ok {
		return r.Uint32()
	}
	return uint32(c.seq.Uint64())
}

func (c *Composite[S, R]) Fill(p []byte) {
	if r, ok := any(c.seq).(interface{ Fill([]byte) }); ok {
		r.Fill(p)
		return
	}
	mix.Fill64(p, c.seq.Uint64)
}

// Read implements io.Reader. It never returns an error.
func (c *Composite[S, R]) Read(p []byte) (int, error) {
	c.Fill(p)
	return len(p), nil
}

// Split forks the splitting component and redraws both sequential
// components from the resulting splitters.
func (c *Composite[S, R]) Split() *Composite[S, R] {
	child := c.splitter.Split()
	c.seq = c.draw(c.splitter)
	return &Composite[S, R]{splitter: child, seq: c.draw(child), draw: c.draw}
}

// Branch takes a branch factory off the splitting component.
func (c *Composite[S, R]) Branch() Branch[*Composite[S, R]] {
	b := c.splitter.Branch()
	c.seq = c.draw(c.splitter)
	return compositeBranch[S, R]{branch: b, draw: c.draw}
}

type compositeBranch[S Splitter[S], R rand.Source] struct {
	branch Branch[S]
	draw   func(S) R
}

func (b compositeBranch[S, R]) Call(i uint64) *Composite[S, R] {
	s := b.branch.Call(i)
	return &Composite[S, R]{splitter: s, seq: b.draw(s), draw: b.draw}
}

// PCG draws a math/rand/v2 PCG generator from r.
func PCG[S Rand](r S) *rand.PCG {
	return rand.NewPCG(r.Uint64(), r.Uint64())
}

// ChaCha8 draws a math/rand/v2 ChaCha8 generator from r.
func ChaCha8[S Rand](r S) *rand.ChaCha8 {
	var seed [32]byte
	r.Fill(seed[:])
	return rand.NewChaCha8(seed)
}
