// Package twolcg implements Steele's TwoLCG splittable generator: two
// 64-bit linear congruential generators whose states are combined by a
// data-dependent rotation and a multiply.
//
// Splitting is generation based. Split draws a fresh seed from the
// parent's stream, and a Branch captures one odd multiplier m from
// which child k is built in closed form as (4km, 4(k+2)m, 4(k+1)m,
// 4(k+3)m). The closed form is the recommended way to hand independent
// streams to a fixed set of workers up front.
//
// There is no counter to wrap. Each LCG has an odd increment, so it has
// the full period of 2^64 and no descent is ever scheduled.
package twolcg

import (
	"math/bits"

	"github.com/lox/splitrand/internal/mix"
	"github.com/lox/splitrand/split"
)

const (
	mulOut = 2685821657736338717
	mulS1  = 3202034522624059733
	mulS2  = 3935559000370003845
)

// Seed is (s1, s2, g1, g2). The low bits of g1 and g2 are ignored and
// forced to 1.
type Seed [4]uint64

// Rand is a TwoLCG generator. Construct one with New.
type Rand struct {
	s1, s2 uint64
	g1, g2 uint64
}

var _ split.Splitter[*Rand] = (*Rand)(nil)

// New returns a generator with the given state and increments.
func New(seed Seed) *Rand {
	r := new(Rand)
	r.Reseed(seed)
	return r
}

// From draws a seed from src and returns a generator built from it.
func From(src split.Rand) *Rand {
	return New(Seed{src.Uint64(), src.Uint64(), src.Uint64(), src.Uint64()})
}

// Reseed puts r in the same state as New(seed).
func (r *Rand) Reseed(seed Seed) {
	r.s1 = seed[0]
	r.s2 = seed[1]
	r.g1 = seed[2] | 1
	r.g2 = seed[3] | 1
}

// Clone returns an independent copy of r.
func (r *Rand) Clone() *Rand {
	c := *r
	return &c
}

func (r *Rand) Uint64() uint64 {
	x := bits.RotateLeft64(r.s1, 32) ^ r.s2
	x = bits.RotateLeft64(x, int(r.s1>>58))
	x *= mulOut
	r.s1 = r.s1*mulS1 + r.g1
	r.s2 = r.s2*mulS2 + r.g2
	return x ^ x>>32
}

func (r *Rand) Uint32() uint32 {
	return uint32(r.Uint64())
}

func (r *Rand) Fill(p []byte) {
	mix.Fill64(p, r.Uint64)
}

// Read implements io.Reader. It never returns an error.
func (r *Rand) Read(p []byte) (int, error) {
	r.Fill(p)
	return len(p), nil
}

// Split returns a generator seeded from the next four words of r.
func (r *Rand) Split() *Rand {
	return From(r)
}

// Branch captures an odd multiplier from r.
func (r *Rand) Branch() split.Branch[*Rand] {
	return Branch{m: r.Uint64() | 1}
}

// Branch builds TwoLCG generators in closed form from a multiplier.
type Branch struct {
	m uint64
}

func (b Branch) Call(k uint64) *Rand {
	return New(Seed{
		4 * k * b.m,
		4 * (k + 2) * b.m,
		4 * (k + 1) * b.m,
		4 * (k + 3) * b.m,
	})
}
