// Package backend resolves generator names to constructors and erases the
// concrete generator type so commands can treat every backend alike.
package backend

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/lox/splitrand/chaskey"
	"github.com/lox/splitrand/fastrng"
	"github.com/lox/splitrand/sip"
	"github.com/lox/splitrand/split"
	"github.com/lox/splitrand/twolcg"
)

var (
	ErrUnknownBackend    = errors.New("unknown backend")
	ErrUnknownSequential = errors.New("unknown sequential generator")
)

// Backends lists the splittable generators by name.
var Backends = []string{"sip", "chaskey", "twolcg"}

// Sequentials lists the fast generators that can be composed onto a backend.
// "none" uses the backend's own output.
var Sequentials = []string{"none", "pcg", "chacha8", "pcg32", "xoroshiro"}

// Generator is a splittable generator with its concrete type erased.
type Generator interface {
	split.Rand
	io.Reader
	Split() Generator
	Branch() split.Branch[Generator]
}

// Open builds the named backend, seeded from src, optionally composed with a
// sequential generator.
func Open(name, sequential string, src split.Rand) (Generator, error) {
	switch name {
	case "sip":
		return compose(sip.From(src), sequential)
	case "chaskey":
		return compose(chaskey.From(src), sequential)
	case "twolcg":
		return compose(twolcg.From(src), sequential)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, name)
}

// Label is the display name of a backend/sequential pair.
func Label(name, sequential string) string {
	if sequential == "" || sequential == "none" {
		return name
	}
	return name + "+" + sequential
}

// Validate checks that both names are known.
func Validate(name, sequential string) error {
	if !slices.Contains(Backends, name) {
		return fmt.Errorf("%w: %q", ErrUnknownBackend, name)
	}
	if sequential != "" && !slices.Contains(Sequentials, sequential) {
		return fmt.Errorf("%w: %q", ErrUnknownSequential, sequential)
	}
	return nil
}

func compose[S split.Splitter[S]](s S, sequential string) (Generator, error) {
	switch sequential {
	case "", "none":
		return Wrap(s), nil
	case "pcg":
		return Wrap(split.Compose(s, split.PCG[S])), nil
	case "chacha8":
		return Wrap(split.Compose(s, split.ChaCha8[S])), nil
	case "pcg32":
		return Wrap(split.Compose(s, fastrng.DrawPCG32[S])), nil
	case "xoroshiro":
		return Wrap(split.Compose(s, fastrng.DrawXoroshiro[S])), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownSequential, sequential)
}

// Wrap erases the concrete type of g.
func Wrap[G split.Splitter[G]](g G) Generator {
	return erased[G]{g: g}
}

type erased[G split.Splitter[G]] struct {
	g G
}

func (e erased[G]) Uint32() uint32 { return e.g.Uint32() }
func (e erased[G]) Uint64() uint64 { return e.g.Uint64() }
func (e erased[G]) Fill(p []byte)  { e.g.Fill(p) }

func (e erased[G]) Read(p []byte) (int, error) {
	e.g.Fill(p)
	return len(p), nil
}

func (e erased[G]) Split() Generator {
	return erased[G]{g: e.g.Split()}
}

func (e erased[G]) Branch() split.Branch[Generator] {
	return erasedBranch[G]{b: e.g.Branch()}
}

type erasedBranch[G split.Splitter[G]] struct {
	b split.Branch[G]
}

func (b erasedBranch[G]) Call(i uint64) Generator {
	return erased[G]{g: b.b.Call(i)}
}
