package fastrng

import (
	"math/bits"

	"github.com/lox/splitrand/internal/mix"
	"github.com/lox/splitrand/split"
)

// Xoroshiro is xoroshiro128++.
type Xoroshiro struct {
	lo, hi uint64
}

// NewXoroshiro creates a generator on the given state. The all-zero
// state is a fixed point, so it is replaced by a fixed non-zero one.
func NewXoroshiro(lo, hi uint64) *Xoroshiro {
	if lo|hi == 0 {
		lo = 0x9e3779b97f4a7c15
		hi = 0x6a09e667f3bcc909
	}
	return &Xoroshiro{lo: lo, hi: hi}
}

// DrawXoroshiro builds a Xoroshiro from two words of src.
func DrawXoroshiro[S split.Rand](src S) *Xoroshiro {
	return NewXoroshiro(src.Uint64(), src.Uint64())
}

func (r *Xoroshiro) Uint64() uint64 {
	lo, hi := r.lo, r.hi
	res := bits.RotateLeft64(lo+hi, 17) + lo
	hi ^= lo
	r.lo = bits.RotateLeft64(lo, 49) ^ hi ^ (hi << 21)
	r.hi = bits.RotateLeft64(hi, 28)
	return res
}

func (r *Xoroshiro) Uint32() uint32 {
	return uint32(r.Uint64() >> 32)
}

func (r *Xoroshiro) Fill(p []byte) {
	mix.Fill64(p, r.Uint64)
}
