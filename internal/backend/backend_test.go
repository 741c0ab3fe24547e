package backend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/splitrand/chaskey"
	"github.com/lox/splitrand/gen"
	"github.com/lox/splitrand/internal/randutil"
	"github.com/lox/splitrand/sip"
	"github.com/lox/splitrand/split"
)

func TestOpenEveryCombination(t *testing.T) {
	for _, name := range Backends {
		for _, seq := range Sequentials {
			t.Run(Label(name, seq), func(t *testing.T) {
				require.NoError(t, Validate(name, seq))

				a, err := Open(name, seq, randutil.Expand(1))
				require.NoError(t, err)
				b, err := Open(name, seq, randutil.Expand(1))
				require.NoError(t, err)
				assert.Equal(t, split.Words(a, 8), split.Words(b, 8))

				c, err := Open(name, seq, randutil.Expand(2))
				require.NoError(t, err)
				assert.NotEqual(t, split.Words(a, 8), split.Words(c, 8))
			})
		}
	}
}

func TestOpenMatchesConcreteBackend(t *testing.T) {
	g, err := Open("sip", "", randutil.Expand(5))
	require.NoError(t, err)
	want := sip.From(randutil.Expand(5))
	assert.Equal(t, split.Words(want, 4), split.Words(g, 4))

	g, err = Open("chaskey", "none", randutil.Expand(5))
	require.NoError(t, err)
	ref := chaskey.From(randutil.Expand(5))
	assert.Equal(t, ref.Split().Uint64(), g.Split().Uint64())
	assert.Equal(t, ref.Branch().Call(9).Uint32(), g.Branch().Call(9).Uint32())
}

func TestOpenUnknownNames(t *testing.T) {
	_, err := Open("mt19937", "", randutil.Expand(1))
	assert.ErrorIs(t, err, ErrUnknownBackend)

	_, err = Open("sip", "isaac", randutil.Expand(1))
	assert.ErrorIs(t, err, ErrUnknownSequential)

	assert.ErrorIs(t, Validate("fortuna", ""), ErrUnknownBackend)
	assert.ErrorIs(t, Validate("sip", "isaac"), ErrUnknownSequential)
	assert.NoError(t, Validate("twolcg", ""))
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "sip", Label("sip", ""))
	assert.Equal(t, "sip", Label("sip", "none"))
	assert.Equal(t, "chaskey+pcg32", Label("chaskey", "pcg32"))
}

func TestGeneratorRead(t *testing.T) {
	g, err := Open("twolcg", "", randutil.Expand(3))
	require.NoError(t, err)

	buf := make([]byte, 20)
	n, err := g.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, 20, n)

	want := make([]byte, 20)
	g2, err := Open("twolcg", "", randutil.Expand(3))
	require.NoError(t, err)
	g2.Fill(want)
	assert.Equal(t, want, buf)
}

func TestErasedGeneratorDrivesGen(t *testing.T) {
	type pair struct {
		A uint32
		B [3]uint8
	}

	g, err := Open("sip", "pcg", randutil.Expand(11))
	require.NoError(t, err)
	h, err := Open("sip", "pcg", randutil.Expand(11))
	require.NoError(t, err)

	assert.Equal(t, gen.MustValue[pair](g), gen.MustValue[pair](h))
}
