package sponge

import (
	"fmt"

	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/logger"
)

// Phase is the life cycle stage of a Sponge.
type Phase uint8

const (
	Fresh Phase = iota
	Active
	Finalized
	Failed
)

func (p Phase) String() string {
	switch p {
	case Fresh:
		return "Fresh"
	case Active:
		return "Active"
	case Finalized:
		return "Finalized"
	case Failed:
		return "Failed"
	}
	return "Unknown"
}

// Sponge is the domain separated duplex sponge. It owns its State
// exclusively and is driven purely through the State primitives; every call
// takes the circuit builder it should emit constraints into.
//
// The log of batch lengths is folded into a domain tag by Finalize, after
// which the sponge refuses any further operation. A permutation error in the
// middle of a batch leaves the sponge Failed, which is terminal as well.
type Sponge struct {
	state  *State
	sep    DomainSeparator
	tagger TagHasher
	phase  Phase
}

// New creates a sponge with cursors at 0, an empty log and an unset
// capacity. The rate must leave at least one capacity slot in the
// permutation state.
func New(
	api frontend.API,
	sep DomainSeparator,
	rate int,
	perm Permutation,
	tagger TagHasher,
) (*Sponge, error) {
	if perm == nil || tagger == nil {
		return nil, ErrNilCollaborator
	}
	if rate <= 0 || rate >= perm.Width() {
		return nil, fmt.Errorf("%w: rate %d for permutation width %d",
			ErrInvalidRate, rate, perm.Width())
	}

	return &Sponge{
		state:  newState(rate, perm),
		sep:    sep.Serialize(),
		tagger: tagger,
		phase:  Fresh,
	}, nil
}

// checkOpen rejects any operation on a Finalized or Failed sponge.
func (s *Sponge) checkOpen(op string) error {
	switch s.phase {
	case Finalized:
		return fmt.Errorf("%s after finalize: %w", op, ErrFinalized)
	case Failed:
		return fmt.Errorf("%s: %w", op, ErrFailed)
	}
	return nil
}

// checkBatch validates a batch of length n before anything is mutated.
func (s *Sponge) checkBatch(direction Direction, n int) error {
	if err := s.checkOpen(direction.String()); err != nil {
		return err
	}

	if uint64(n) > uint64(MaxActionCount) {
		return fmt.Errorf("%w: %s batch of %d", ErrCountOverflow, direction, n)
	}
	if s.state.Log().tailRun(direction)+uint64(n) > uint64(MaxActionCount) {
		return fmt.Errorf("%w: %s run would reach %d", ErrCountOverflow, direction,
			s.state.Log().tailRun(direction)+uint64(n))
	}
	return nil
}

// Absorb feeds the inputs into the rate, permuting whenever it fills up. The
// whole batch is logged as one entry. An empty batch is a no-op.
func (s *Sponge) Absorb(api frontend.API, inputs ...frontend.Variable) error {
	if len(inputs) == 0 {
		return s.checkOpen("absorb")
	}
	if err := s.checkBatch(Absorb, len(inputs)); err != nil {
		return err
	}

	s.phase = Active
	s.state.AddLog(AbsorbAction(uint32(len(inputs))))

	for _, input := range inputs {
		if err := s.state.absorbOne(api, input); err != nil {
			s.phase = Failed
			return err
		}
	}
	return nil
}

// Squeeze reads length elements out of the rate, in order. A squeeze right
// after an absorb always permutes first. A zero length is a no-op.
func (s *Sponge) Squeeze(api frontend.API, length int) ([]frontend.Variable, error) {
	if length == 0 {
		if err := s.checkOpen("squeeze"); err != nil {
			return nil, err
		}
		return []frontend.Variable{}, nil
	}
	if length < 0 {
		return nil, fmt.Errorf("squeeze: negative length %d", length)
	}
	if err := s.checkBatch(Squeeze, length); err != nil {
		return nil, err
	}

	s.phase = Active
	s.state.AddLog(SqueezeAction(uint32(length)))

	outputs := make([]frontend.Variable, length)
	for i := range outputs {
		output, err := s.state.squeezeOne(api)
		if err != nil {
			s.phase = Failed
			return nil, err
		}
		outputs[i] = output
	}
	return outputs, nil
}

// Finalize derives the domain tag from the compressed log and the domain
// separator and writes it into the capacity. It runs at most once.
func (s *Sponge) Finalize(api frontend.API) (frontend.Variable, error) {
	if err := s.checkOpen("finalize"); err != nil {
		return nil, err
	}

	compressed, err := s.state.Log().Compress()
	if err != nil {
		return nil, err
	}

	items := append(SerializeActions(compressed), s.sep.Serialize()...)
	tag, err := s.tagger.HashTag(api, items)
	if err != nil {
		return nil, fmt.Errorf("hash domain tag: %w", err)
	}

	s.state.InitializeCapacity(api, tag)
	s.phase = Finalized

	log := logger.Logger()
	log.Debug().
		Str("pattern", FormatPattern(compressed)).
		Int("separatorWords", len(s.sep)).
		Uint("permutations", s.state.Permutations()).
		Msg("sponge finalized")

	return tag, nil
}

func (s *Sponge) Phase() Phase {
	return s.phase
}

func (s *Sponge) Rate() int {
	return s.state.Rate()
}

func (s *Sponge) AbsorbPos() int {
	return s.state.AbsorbPos()
}

func (s *Sponge) SqueezePos() int {
	return s.state.SqueezePos()
}

// Log returns a copy of the uncompressed I/O log.
func (s *Sponge) Log() []Action {
	return s.state.Log().Entries()
}

// Permutations counts the permutation calls made so far.
func (s *Sponge) Permutations() uint {
	return s.state.Permutations()
}

// Snapshot copies out rate followed by capacity.
func (s *Sponge) Snapshot() []frontend.Variable {
	return s.state.Snapshot()
}

func (s *Sponge) DomainSeparator() DomainSeparator {
	return s.sep.Serialize()
}
