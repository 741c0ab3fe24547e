package randutil

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"

	"github.com/lox/splitrand/internal/mix"
)

const (
	goldenRatio64 = 0x9e3779b97f4a7c15
)

// Expander turns a single 64-bit seed into an unbounded splitmix64 stream. It
// is the one place where a user-facing seed is widened into the larger seed
// tuples the backends consume, so every command derives them the same way.
type Expander struct {
	state uint64
}

// Expand returns an Expander positioned at the start of the stream for seed.
func Expand(seed uint64) *Expander {
	return &Expander{state: seed}
}

func (e *Expander) Uint64() uint64 {
	e.state += goldenRatio64
	return mixBits(e.state)
}

func (e *Expander) Uint32() uint32 {
	return uint32(e.Uint64() >> 32)
}

func (e *Expander) Fill(p []byte) {
	mix.Fill64(p, e.Uint64)
}

// NewSeed reads a fresh 64-bit seed from the operating system.
func NewSeed() (uint64, error) {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read entropy: %w", err)
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}

func mixBits(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
