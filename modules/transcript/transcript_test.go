package transcript

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/test"
	"github.com/stretchr/testify/require"

	"DomainSpongeCircuit/modules/fields"
	"DomainSpongeCircuit/modules/poseidon"
	"DomainSpongeCircuit/modules/sponge"
)

var testSeparator = sponge.DomainSeparatorFromString("transcript-test")

type TranscriptTestingCircuit struct {
	Input []frontend.Variable
}

func (t *TranscriptTestingCircuit) Define(api frontend.API) error {
	arithmeticEngine := fields.ArithmeticEngine{API: api, ECCFieldEnum: fields.ECCBN254}
	transcript, err := NewTranscript(arithmeticEngine, testSeparator)
	if err != nil {
		return err
	}
	transcript.AppendFs(t.Input...)
	computed := transcript.CircuitF()

	// same thing driven through the host directly
	host := poseidon.NewHost(api, poseidon.BN254x3{Separator: testSeparator})
	s, err := host.New()
	if err != nil {
		return err
	}
	if err := host.Absorb(s, t.Input...); err != nil {
		return err
	}
	expected, err := host.Squeeze(s, 1)
	if err != nil {
		return err
	}

	api.AssertIsEqual(computed, expected[0])
	return nil
}

func TestTranscript(t *testing.T) {
	circuit := TranscriptTestingCircuit{Input: make([]frontend.Variable, 5)}
	assignment := TranscriptTestingCircuit{Input: []frontend.Variable{1, 2, 3, 4, 5}}

	err := test.IsSolved(&circuit, &assignment, ecc.BN254.ScalarField())
	require.NoError(t, err, "ggs solving witness error")
}

type transcriptPatternCircuit struct {
	A, B, C frontend.Variable

	pattern *[]sponge.Action
	count   *uint
}

func (c *transcriptPatternCircuit) Define(api frontend.API) error {
	arithmeticEngine := fields.ArithmeticEngine{API: api, ECCFieldEnum: fields.ECCBN254}
	transcript, err := NewTranscript(arithmeticEngine, testSeparator)
	if err != nil {
		return err
	}

	transcript.AppendFs(c.A, c.B)
	r0 := transcript.ChallengeF()
	transcript.AppendF(c.C)
	transcript.ResetCount()
	rs := transcript.ChallengeFs(3)
	*c.count = transcript.GetCount()

	// challenges never repeat across rounds
	api.AssertIsDifferent(r0[0], rs[0][0])
	api.AssertIsDifferent(rs[0][0], rs[1][0])

	transcript.AppendF(c.A)
	if _, err := transcript.Finalize(); err != nil {
		return err
	}
	*c.pattern = transcript.Pattern()
	return nil
}

func TestTranscriptPattern(t *testing.T) {
	var pattern []sponge.Action
	var count uint

	circuit := transcriptPatternCircuit{pattern: &pattern, count: &count}
	assignment := transcriptPatternCircuit{A: 3, B: 5, C: 7, pattern: &pattern, count: &count}
	require.NoError(t, test.IsSolved(&circuit, &assignment, ecc.BN254.ScalarField()))

	require.Equal(t, []sponge.Action{
		sponge.AbsorbAction(2),
		sponge.SqueezeAction(1),
		sponge.AbsorbAction(1),
		sponge.SqueezeAction(3),
		sponge.AbsorbAction(1),
	}, pattern)
	// 3 limbs out of a rate of 2: permute on the stale buffer and once more.
	require.Equal(t, uint(2), count)
}

func TestTranscriptUnsupportedField(t *testing.T) {
	_, err := NewTranscript(fields.ArithmeticEngine{ECCFieldEnum: fields.ECCGF2}, nil)
	require.Error(t, err)
}
