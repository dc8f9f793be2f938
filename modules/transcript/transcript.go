package transcript

import (
	"DomainSpongeCircuit/modules/fields"
	"DomainSpongeCircuit/modules/poseidon"
	"DomainSpongeCircuit/modules/sponge"

	"github.com/consensys/gnark/frontend"
)

// SpongeTranscript is a Fiat-Shamir transcript on top of the domain separated
// sponge. Appended values are pooled and absorbed as a single batch right
// before the next challenge is squeezed, so the sponge log records the
// transcript's round structure.
type SpongeTranscript struct {
	fields.ArithmeticEngine

	sponge *sponge.Sponge

	// The values to feed the sponge
	dataPool []frontend.Variable

	// helper field: counting, irrelevant to circuit
	countBase uint
}

// NewTranscript is the enter point to construct a new instance of transcript,
// the sponge implementation is decided by the field tied to the engine.
func NewTranscript(
	arithmeticEngine fields.ArithmeticEngine,
	sep sponge.DomainSeparator,
) (*SpongeTranscript, error) {
	impl, err := poseidon.ForField(arithmeticEngine.ECCFieldEnum, sep)
	if err != nil {
		return nil, err
	}
	return NewTranscriptWithImpl(arithmeticEngine, impl)
}

// NewTranscriptWithImpl builds a transcript over an explicit implementation.
func NewTranscriptWithImpl(
	arithmeticEngine fields.ArithmeticEngine,
	impl poseidon.Impl,
) (*SpongeTranscript, error) {
	s, err := poseidon.NewHost(arithmeticEngine.API, impl).New()
	if err != nil {
		return nil, err
	}

	return &SpongeTranscript{
		ArithmeticEngine: arithmeticEngine,
		sponge:           s,
		dataPool:         make([]frontend.Variable, 0),
	}, nil
}

func (t *SpongeTranscript) AppendF(f frontend.Variable) {
	t.dataPool = append(t.dataPool, f)
}

func (t *SpongeTranscript) AppendFs(fs ...frontend.Variable) {
	t.dataPool = append(t.dataPool, fs...)
}

// flush absorbs the pooled values as one batch.
func (t *SpongeTranscript) flush() {
	if err := t.sponge.Absorb(t.API, t.dataPool...); err != nil {
		panic(err.Error())
	}
	t.dataPool = nil
}

func (t *SpongeTranscript) squeeze(n int) []frontend.Variable {
	t.flush()

	out, err := t.sponge.Squeeze(t.API, n)
	if err != nil {
		panic(err.Error())
	}
	return out
}

// CircuitF squeezes a single base field challenge.
func (t *SpongeTranscript) CircuitF() frontend.Variable {
	return t.squeeze(1)[0]
}

// ChallengeF squeezes a challenge field element as its base field limbs.
func (t *SpongeTranscript) ChallengeF() []frontend.Variable {
	return t.squeeze(int(t.ChallengeFieldDegree()))
}

// ChallengeFs squeezes n challenge field elements in a single batch.
func (t *SpongeTranscript) ChallengeFs(n uint) [][]frontend.Variable {
	degree := t.ChallengeFieldDegree()
	limbs := t.squeeze(int(n * degree))

	cs := make([][]frontend.Variable, n)
	for i := uint(0); i < n; i++ {
		cs[i] = limbs[i*degree : (i+1)*degree]
	}
	return cs
}

// Finalize absorbs anything still pooled and binds the transcript's I/O
// pattern and domain separator into the sponge capacity. The transcript
// cannot be used afterwards.
func (t *SpongeTranscript) Finalize() (frontend.Variable, error) {
	if err := t.sponge.Absorb(t.API, t.dataPool...); err != nil {
		return nil, err
	}
	t.dataPool = nil

	return t.sponge.Finalize(t.API)
}

// Pattern is the uncompressed sponge log recorded so far.
func (t *SpongeTranscript) Pattern() []sponge.Action {
	return t.sponge.Log()
}

// GetCount is the number of permutations since the last reset.
func (t *SpongeTranscript) GetCount() uint {
	return t.sponge.Permutations() - t.countBase
}

func (t *SpongeTranscript) ResetCount() {
	t.countBase = t.sponge.Permutations()
}
