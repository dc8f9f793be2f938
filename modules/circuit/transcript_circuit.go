package circuit

import (
	"fmt"

	"DomainSpongeCircuit/modules/fields"
	"DomainSpongeCircuit/modules/poseidon"
	"DomainSpongeCircuit/modules/sponge"
	"DomainSpongeCircuit/modules/transcript"

	"github.com/consensys/gnark/frontend"
)

// TranscriptCircuit replays a Fiat-Shamir interaction: each round appends
// Rounds[i] proof elements to the transcript and draws one challenge.
// Challenges holds the expected challenge of every round as its base field
// limbs.
type TranscriptCircuit struct {
	FieldEnum fields.ECCFieldEnum     `gnark:"-"`
	Separator sponge.DomainSeparator `gnark:"-"`
	Rounds    []uint                 `gnark:"-"`

	Proof      Proof               // private input
	Challenges [][]frontend.Variable `gnark:",public"`
	Tag        frontend.Variable     `gnark:",public"`
}

func NewTranscriptCircuit(
	fieldEnum fields.ECCFieldEnum,
	sep sponge.DomainSeparator,
	rounds []uint,
) *TranscriptCircuit {
	var total uint
	for _, r := range rounds {
		total += r
	}

	arithmeticEngine := fields.ArithmeticEngine{ECCFieldEnum: fieldEnum}
	return &TranscriptCircuit{
		FieldEnum:  fieldEnum,
		Separator:  sep,
		Rounds:     rounds,
		Proof:      Proof{Elems: make([]frontend.Variable, total)},
		Challenges: arithmeticEngine.Zeroes(uint(len(rounds))),
	}
}

// Define declares the circuit constraints
func (c *TranscriptCircuit) Define(api frontend.API) error {
	arithmeticEngine := fields.ArithmeticEngine{ECCFieldEnum: c.FieldEnum, API: api}
	fsTranscript, err := transcript.NewTranscript(arithmeticEngine, c.Separator)
	if err != nil {
		return err
	}

	if len(c.Challenges) != len(c.Rounds) {
		return fmt.Errorf("%d challenges for %d rounds", len(c.Challenges), len(c.Rounds))
	}

	c.Proof.Reset()
	for i, n := range c.Rounds {
		fsTranscript.AppendFs(c.Proof.NextN(n)...)
		arithmeticEngine.AssertEq(fsTranscript.ChallengeF(), c.Challenges[i])
	}
	if c.Proof.Remaining() != 0 {
		return fmt.Errorf("%d proof elements left unread", c.Proof.Remaining())
	}

	tag, err := fsTranscript.Finalize()
	if err != nil {
		return err
	}
	api.AssertIsEqual(tag, c.Tag)
	return nil
}

// Assign computes the challenges and tag proof gives out of circuit and
// returns the matching assignment.
func (c *TranscriptCircuit) Assign(proof *Proof) (*TranscriptCircuit, error) {
	if uint(len(proof.Elems)) != uint(len(c.Proof.Elems)) {
		return nil, fmt.Errorf("proof of %d elements, circuit expects %d",
			len(proof.Elems), len(c.Proof.Elems))
	}

	impl, err := poseidon.ForField(c.FieldEnum, c.Separator)
	if err != nil {
		return nil, err
	}
	s, err := poseidon.NewNativeSponge(impl)
	if err != nil {
		return nil, err
	}

	degree := int(c.FieldEnum.ChallengeFieldDegree())
	proof.Reset()
	var challenges [][]frontend.Variable
	for _, n := range c.Rounds {
		if err := s.Absorb(nil, proof.NextN(n)...); err != nil {
			return nil, err
		}
		limbs, err := s.Squeeze(nil, degree)
		if err != nil {
			return nil, err
		}
		challenges = append(challenges, limbs)
	}
	proof.Reset()

	tag, err := s.Finalize(nil)
	if err != nil {
		return nil, err
	}

	return &TranscriptCircuit{
		FieldEnum:  c.FieldEnum,
		Separator:  c.Separator,
		Rounds:     c.Rounds,
		Proof:      *proof,
		Challenges: challenges,
		Tag:        tag,
	}, nil
}
