// Package sip implements a splittable pseudorandom generator built on
// the SipHash round function. It is not cryptographically secure.
//
// The construction follows Claessen and Pałka's splittable generators
// (the design behind Haskell's tf-random), with SipHash standing in for
// the Threefish block cipher: the four SipHash registers act as a hash
// state that absorbs a counter for sequential output and a branch index
// for descent into a child.
//
// Cycle avoidance: the 64-bit advance counter never wraps silently.
// When it would return to zero the generator descends into branch 0
// first, so no register state is ever revisited within a stream.
package sip

import (
	"github.com/lox/splitrand/internal/mix"
	"github.com/lox/splitrand/split"
)

// SipHash initialisation constants ("somepseudorandomlygeneratedbytes").
const (
	c0 = 0x736f6d6570736575
	c1 = 0x646f72616e646f6d
	c2 = 0x6c7967656e657261
	c3 = 0x7465646279746573
)

// Seed is the 128-bit key of a Rand.
type Seed [2]uint64

// Rand is a splittable generator based on SipHash. The zero value is not
// useful; construct one with New.
type Rand struct {
	v0, v1, v2, v3 uint64
	ctr            uint64
	length         uint64
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
	return New(Seed{src.Uint64(), src.Uint64()})
}

// Reseed puts r in the same state as New(seed).
func (r *Rand) Reseed(seed Seed) {
	r.v0 = seed[0] ^ c0
	r.v1 = seed[1] ^ c1
	r.v2 = seed[0] ^ c2
	r.v3 = seed[1] ^ c3
	r.ctr = 0
	r.length = 1
}

// Clone returns an independent copy of r that will produce the same
// output as r.
func (r *Rand) Clone() *Rand {
	c := *r
	return &c
}

func (r *Rand) compress(m uint64) {
	r.v3 ^= m
	r.v0, r.v1, r.v2, r.v3 = mix.SipRound(r.v0, r.v1, r.v2, r.v3)
	r.v0, r.v1, r.v2, r.v3 = mix.SipRound(r.v0, r.v1, r.v2, r.v3)
	r.v0 ^= m
}

func (r *Rand) advance() {
	r.compress(r.ctr)
	r.ctr++
	if r.ctr == 0 {
		r.descend(0)
	}
}

// descend commits r to child i. The parent state cannot be recovered
// from the child.
func (r *Rand) descend(i uint64) {
	r.compress(r.ctr)
	r.compress(i)
	r.length++
	r.ctr = 0
}

// finalize derives an output word from the current registers without
// modifying them.
func (r *Rand) finalize() uint64 {
	v0, v1, v2, v3 := r.v0, r.v1, r.v2, r.v3
	b := r.length << 56
	v3 ^= b
	v0, v1, v2, v3 = mix.SipRound(v0, v1, v2, v3)
	v0 ^= b
	v2 ^= 0xff
	v0, v1, v2, v3 = mix.SipRound(v0, v1, v2, v3)
	v0, v1, v2, v3 = mix.SipRound(v0, v1, v2, v3)
	v0, v1, v2, v3 = mix.SipRound(v0, v1, v2, v3)
	return v0 ^ v1 ^ v2 ^ v3
}

func (r *Rand) Uint64() uint64 {
	r.advance()
	return r.finalize()
}

// Uint32 returns the low half of the next 64-bit output.
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

// Branch is a frozen Rand. Call(i) is the generator obtained by
// descending from the frozen state into child i.
type Branch struct {
	state Rand
}

func (b Branch) Call(i uint64) *Rand {
	r := b.state
	r.descend(i)
	return &r
}
