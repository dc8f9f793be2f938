package sponge

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestActionSerialization(t *testing.T) {
	require.Equal(t, uint32(0x80000003), AbsorbAction(3).Serialize())
	require.Equal(t, uint32(0x00000002), SqueezeAction(2).Serialize())
	require.Equal(t, uint32(0xffffffff), AbsorbAction(MaxActionCount).Serialize())
	require.Equal(t, uint32(0x80000000), AbsorbAction(0).Serialize())

	require.Panics(t, func() { SqueezeAction(MaxActionCount + 1).Serialize() })
}

func TestActionRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(uint64(31)))

	counts := []uint32{0, 1, 2, MaxActionCount - 1, MaxActionCount}
	for i := 0; i < 64; i++ {
		counts = append(counts, rng.Uint32()&MaxActionCount)
	}

	for _, count := range counts {
		for _, action := range []Action{AbsorbAction(count), SqueezeAction(count)} {
			require.Equal(t, action, DeserializeAction(action.Serialize()))
		}
	}
}

func TestCompressActions(t *testing.T) {
	testcases := []struct {
		In       []Action
		Expected []Action
	}{
		{
			In:       nil,
			Expected: []Action{},
		},
		{
			In:       []Action{AbsorbAction(3), AbsorbAction(2)},
			Expected: []Action{AbsorbAction(5)},
		},
		{
			In: []Action{
				AbsorbAction(1), SqueezeAction(1), SqueezeAction(4),
				AbsorbAction(2), AbsorbAction(2), AbsorbAction(2), SqueezeAction(1),
			},
			Expected: []Action{
				AbsorbAction(1), SqueezeAction(5), AbsorbAction(6), SqueezeAction(1),
			},
		},
	}

	for _, testcase := range testcases {
		actual, err := CompressActions(testcase.In)
		require.NoError(t, err)
		require.Equal(t, testcase.Expected, actual)
	}
}

func TestCompressDoesNotTouchLog(t *testing.T) {
	var log Log
	log.Append(SqueezeAction(1))
	log.Append(SqueezeAction(1))

	compressed, err := log.Compress()
	require.NoError(t, err)
	require.Equal(t, []Action{SqueezeAction(2)}, compressed)
	require.Equal(t, []Action{SqueezeAction(1), SqueezeAction(1)}, log.Entries())
	require.Equal(t, 2, log.Len())
}

func TestCompressOverflow(t *testing.T) {
	_, err := CompressActions([]Action{AbsorbAction(MaxActionCount), AbsorbAction(1)})
	require.ErrorIs(t, err, ErrCountOverflow)

	_, err = CompressActions([]Action{
		AbsorbAction(MaxActionCount), SqueezeAction(MaxActionCount),
	})
	require.NoError(t, err)
}

func TestPatternParsing(t *testing.T) {
	actions, err := ParsePattern("A3, S2,a1")
	require.NoError(t, err)
	require.Equal(t, []Action{AbsorbAction(3), SqueezeAction(2), AbsorbAction(1)}, actions)
	require.Equal(t, "A3,S2,A1", FormatPattern(actions))

	actions, err = ParsePattern("")
	require.NoError(t, err)
	require.Empty(t, actions)

	for _, bad := range []string{"X3", "A", "A3x", "S4294967296"} {
		_, err = ParsePattern(bad)
		require.Error(t, err, bad)
	}
}

func TestDomainSeparatorFromString(t *testing.T) {
	require.Equal(t, DomainSeparator{0}, DomainSeparatorFromString(""))
	require.Equal(t,
		DomainSeparator{5, 0x73706f6e, 0x67000000},
		DomainSeparatorFromString("spong"),
	)

	sep := DomainSeparator{1, 2}
	words := sep.Serialize()
	words[0] = 99
	require.Equal(t, uint32(1), sep[0], "serialize hands out a copy")
}
