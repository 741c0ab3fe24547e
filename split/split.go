// Package split defines the contract shared by splittable pseudorandom
// generators.
//
// A splittable generator produces a sequential stream of words like any
// other generator, and can also be forked into descendants whose
// streams are independent of each other yet fully determined by the
// original seed. Forking is deterministic: the tree of descendants is
// the same no matter which goroutine asks for which child, or in what
// order. Concurrency is therefore "fork, then own": a generator must not
// be shared between goroutines, but each goroutine can be handed its own
// child.
//
// None of the generators in this module are cryptographically secure.
package split

// Rand is the sequential output surface of a generator.
type Rand interface {
	Uint32() uint32
	Uint64() uint64
	// Fill overwrites p with pseudorandom bytes, packing consecutive
	// words little-endian and truncating the last word.
	Fill(p []byte)
}

// Splitter is a generator that can fork descendants of its own type G.
//
// Split changes the receiver into one descendant and returns another.
// Branch freezes a descendant as a Branch factory. Neither can fail.
type Splitter[G any] interface {
	Rand
	Split() G
	Branch() Branch[G]
}

// Branch is an immutable generator factory taken off a Splitter. Call
// is referentially transparent: the same index always yields a
// generator in the same state, and distinct indexes yield independent
// generators.
type Branch[G any] interface {
	Call(i uint64) G
}

// Words returns the next n 64-bit words of r. It is mostly useful for
// comparing streams.
func Words(r Rand, n int) []uint64 {
	out := make([]uint64, n)
	for i := range out {
		out[i] = r.Uint64()
	}
	return out
}

// Fork returns n children of g obtained from a single branch factory,
// child i being Call(i). The receiver is split once.
func Fork[G Splitter[G]](g G, n int) []G {
	b := g.Branch()
	out := make([]G, n)
	for i := range out {
		out[i] = b.Call(uint64(i))
	}
	return out
}
