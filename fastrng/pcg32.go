// Package fastrng provides small, fast sequential generators meant to be
// grafted onto a splittable generator with split.Compose. They cannot
// split on their own.
package fastrng

import (
	"github.com/lox/splitrand/internal/mix"
	"github.com/lox/splitrand/split"
)

const pcgMultiplier = 6364136223846793005

// PCG32 is a PCG-XSH-RR generator with 64-bit state and 32-bit output.
type PCG32 struct {
	state uint64
	inc   uint64
}

// NewPCG32 creates a PCG32 on the given state and stream. The stream
// selects the LCG increment; it is forced odd.
func NewPCG32(state, stream uint64) *PCG32 {
	r := &PCG32{inc: stream<<1 | 1}
	r.Uint32()
	r.state += state
	r.Uint32()
	return r
}

// DrawPCG32 builds a PCG32 from two words of src.
func DrawPCG32[S split.Rand](src S) *PCG32 {
	return NewPCG32(src.Uint64(), src.Uint64())
}

// Uint32 generates a random uint32
func (r *PCG32) Uint32() uint32 {
	oldstate := r.state
	r.state = oldstate*pcgMultiplier + r.inc
	xorshifted := uint32(((oldstate >> 18) ^ oldstate) >> 27)
	rot := uint32(oldstate >> 59)
	return (xorshifted >> rot) | (xorshifted << ((-rot) & 31))
}

// Uint64 combines two draws, the first in the high half.
func (r *PCG32) Uint64() uint64 {
	hi := uint64(r.Uint32())
	lo := uint64(r.Uint32())
	return hi<<32 | lo
}

func (r *PCG32) Fill(p []byte) {
	mix.Fill32(p, r.Uint32)
}
