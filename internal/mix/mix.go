// Package mix holds the stateless bit-mixing primitives shared by the
// generator backends, plus endian-explicit helpers for packing word
// streams into byte buffers.
package mix

import (
	"encoding/binary"
	"math/bits"
)

// SipRound applies one SipHash round to the four 64-bit registers.
func SipRound(v0, v1, v2, v3 uint64) (uint64, uint64, uint64, uint64) {
	v0 += v1
	v2 += v3
	v1 = bits.RotateLeft64(v1, 13)
	v3 = bits.RotateLeft64(v3, 16)
	v1 ^= v0
	v3 ^= v2
	v0 = bits.RotateLeft64(v0, 32)

	v2 += v1
	v0 += v3
	v1 = bits.RotateLeft64(v1, 17)
	v3 = bits.RotateLeft64(v3, 21)
	v1 ^= v2
	v3 ^= v0
	v2 = bits.RotateLeft64(v2, 32)
	return v0, v1, v2, v3
}

// ChaskeyRound applies one Chaskey round to the four 32-bit words.
func ChaskeyRound(v0, v1, v2, v3 uint32) (uint32, uint32, uint32, uint32) {
	v0 += v1
	v2 += v3
	v1 = bits.RotateLeft32(v1, 5)
	v3 = bits.RotateLeft32(v3, 8)
	v1 ^= v0
	v3 ^= v2
	v0 = bits.RotateLeft32(v0, 16)

	v2 += v1
	v0 += v3
	v1 = bits.RotateLeft32(v1, 7)
	v3 = bits.RotateLeft32(v3, 13)
	v1 ^= v2
	v3 ^= v0
	v2 = bits.RotateLeft32(v2, 16)
	return v0, v1, v2, v3
}

// ChaskeyPermute runs the eight-round Chaskey permutation in place.
func ChaskeyPermute(v *[4]uint32) {
	v0, v1, v2, v3 := v[0], v[1], v[2], v[3]
	for range 8 {
		v0, v1, v2, v3 = ChaskeyRound(v0, v1, v2, v3)
	}
	v[0], v[1], v[2], v[3] = v0, v1, v2, v3
}

// TimesTwo doubles a 128-bit little-endian word vector in GF(2^128),
// reducing by x^128 + x^7 + x^2 + x + 1. This is the Chaskey subkey
// derivation.
func TimesTwo(k [4]uint32) [4]uint32 {
	var reduce uint32
	if k[3]&0x8000_0000 != 0 {
		reduce = 0x87
	}
	return [4]uint32{
		k[0]<<1 ^ reduce,
		k[1]<<1 | k[0]>>31,
		k[2]<<1 | k[1]>>31,
		k[3]<<1 | k[2]>>31,
	}
}

// Lo32 returns the low half of n.
func Lo32(n uint64) uint32 { return uint32(n) }

// Hi32 returns the high half of n.
func Hi32(n uint64) uint32 { return uint32(n >> 32) }

// Fill64 fills p with consecutive words from next, each stored
// little-endian. The final word is truncated when len(p) is not a
// multiple of eight.
func Fill64(p []byte, next func() uint64) {
	for len(p) >= 8 {
		binary.LittleEndian.PutUint64(p, next())
		p = p[8:]
	}
	if len(p) > 0 {
		var tail [8]byte
		binary.LittleEndian.PutUint64(tail[:], next())
		copy(p, tail[:])
	}
}

// Fill32 is Fill64 for 32-bit word streams.
func Fill32(p []byte, next func() uint32) {
	for len(p) >= 4 {
		binary.LittleEndian.PutUint32(p, next())
		p = p[4:]
	}
	if len(p) > 0 {
		var tail [4]byte
		binary.LittleEndian.PutUint32(tail[:], next())
		copy(p, tail[:])
	}
}
