// Package chaskey implements a splittable pseudorandom generator built
// on the Chaskey permutation. It is not cryptographically secure.
//
// Sequential output runs the permutation in counter mode, keyed
// Even-Mansour style with the doubled seed as whitening subkey. Each
// permutation call yields a 128-bit block that is handed out as four
// 32-bit words. Descending into a child mixes the branch index and the
// block counter into the state and permutes it.
//
// Cycle avoidance: when the 64-bit block counter wraps to zero the
// generator rekeys itself as branch 0. The block for the last counter
// value is still handed out, and the next refill comes from the new key.
package chaskey

import (
	"math"

	"github.com/lox/splitrand/internal/mix"
	"github.com/lox/splitrand/split"
)

// Seed is the 128-bit key of a Rand, as four little-endian words.
type Seed [4]uint32

// Rand is a splittable generator based on Chaskey. Construct one with
// New.
type Rand struct {
	v   [4]uint32
	k1  [4]uint32
	ctr uint64

	buf    [4]uint32
	cursor int
}

var _ split.Splitter[*Rand] = (*Rand)(nil)

// New returns a generator keyed by seed.
func New(seed Seed) *Rand {
	r := new(Rand)
	r.Reseed(seed)
	return r
}

// From draws a seed from src and returns a generator keyed by it.
func From(src split.Rand) *Rand {
	return New(Seed{src.Uint32(), src.Uint32(), src.Uint32(), src.Uint32()})
}

// Reseed puts r in the same state as New(seed).
func (r *Rand) Reseed(seed Seed) {
	r.v = seed
	r.k1 = mix.TimesTwo(seed)
	r.ctr = 0
	r.buf = [4]uint32{}
	r.cursor = len(r.buf)
}

// Clone returns an independent copy of r that will produce the same
// output as r.
func (r *Rand) Clone() *Rand {
	c := *r
	return &c
}

// block computes the output block for the current counter.
func (r *Rand) block() [4]uint32 {
	b := [4]uint32{
		r.v[0] ^ r.k1[0],
		r.v[1] ^ r.k1[1],
		r.v[2] ^ r.k1[2] ^ mix.Lo32(r.ctr),
		r.v[3] ^ r.k1[3] ^ mix.Hi32(r.ctr),
	}
	mix.ChaskeyPermute(&b)
	for i := range b {
		b[i] ^= r.k1[i]
	}
	return b
}

// advance refills the buffer.
func (r *Rand) advance() {
	r.buf = r.block()
	r.cursor = 0
	r.ctr++
	if r.ctr == 0 {
		r.rekey(0)
	}
}

// rekey mixes the branch index and the counter into the state and resets
// the counter. The buffer is left alone.
func (r *Rand) rekey(i uint64) {
	r.v[0] ^= math.MaxUint32 ^ mix.Hi32(i)
	r.v[1] ^= mix.Lo32(i)
	r.v[2] ^= mix.Lo32(r.ctr)
	r.v[3] ^= mix.Hi32(r.ctr)
	mix.ChaskeyPermute(&r.v)
	r.ctr = 0
}

// descend commits r to child i and discards any buffered words.
func (r *Rand) descend(i uint64) {
	r.rekey(i)
	r.advance()
}

func (r *Rand) Uint32() uint32 {
	if r.cursor == len(r.buf) {
		r.advance()
	}
	w := r.buf[r.cursor]
	r.cursor++
	return w
}

// Uint64 combines two consecutive 32-bit words, the first one in the
// high half.
func (r *Rand) Uint64() uint64 {
	hi := r.Uint32()
	lo := r.Uint32()
	return uint64(hi)<<32 | uint64(lo)
}

func (r *Rand) Fill(p []byte) {
	mix.Fill32(p, r.Uint32)
}

// Read implements io.Reader. It never returns an error.
func (r *Rand) Read(p []byte) (int, error) {
	r.Fill(p)
	return len(p), nil
}

// Split moves r to branch 0 and returns branch 1.
func (r *Rand) Split() *Rand {
	child := r.Clone()
	r.descend(0)
	child.descend(1)
	return child
}

// Branch splits r and freezes the child as a branch factory.
func (r *Rand) Branch() split.Branch[*Rand] {
	return Branch{state: *r.Split()}
}

// Branch is a frozen Rand. Call(i) descends from the frozen state into
// child i.
type Branch struct {
	state Rand
}

func (b Branch) Call(i uint64) *Rand {
	r := b.state
	r.descend(i)
	return &r
}
