package sponge

import (
	"fmt"

	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/logger"
)

// State is the primitive layer of the sponge: rate and capacity slots, the
// two cursors into the rate and the I/O log. It knows nothing about the
// absorb/squeeze protocol, which lives in Sponge.
type State struct {
	rate     []frontend.Variable
	capacity []frontend.Variable

	absorbPos  int
	squeezePos int

	log Log

	perm Permutation

	// helper field: counting, irrelevant to circuit
	permutations uint
}

func newState(rate int, perm Permutation) *State {
	zeroes := func(n int) []frontend.Variable {
		vs := make([]frontend.Variable, n)
		for i := range vs {
			vs[i] = 0
		}
		return vs
	}

	return &State{
		rate:     zeroes(rate),
		capacity: zeroes(perm.Width() - rate),
		perm:     perm,
	}
}

func (s *State) Rate() int {
	return len(s.rate)
}

func (s *State) AbsorbPos() int {
	return s.absorbPos
}

func (s *State) SetAbsorbPos(pos int) {
	s.checkCursor("absorb", pos)
	s.absorbPos = pos
}

func (s *State) SqueezePos() int {
	return s.squeezePos
}

func (s *State) SetSqueezePos(pos int) {
	s.checkCursor("squeeze", pos)
	s.squeezePos = pos
}

// checkCursor panics on a cursor outside [0, rate]. No sequence of public
// calls can get here, it would be a bug in the protocol layer.
func (s *State) checkCursor(name string, pos int) {
	if pos < 0 || pos > len(s.rate) {
		panic(fmt.Sprintf("%s cursor %d out of [0, %d]", name, pos, len(s.rate)))
	}
}

func (s *State) ReadRateElement(offset int) frontend.Variable {
	return s.rate[offset]
}

// AddRateElement writes value into the rate slot at offset.
func (s *State) AddRateElement(offset int, value frontend.Variable) {
	s.rate[offset] = value
}

func (s *State) AddLog(action Action) {
	s.log.Append(action)
}

func (s *State) Log() *Log {
	return &s.log
}

// Permute runs the permutation over the full state.
func (s *State) Permute(api frontend.API) error {
	if err := s.perm.Permute(api, s.rate, s.capacity); err != nil {
		return fmt.Errorf("permute sponge state: %w", err)
	}
	s.permutations++

	log := logger.Logger()
	log.Trace().Uint("count", s.permutations).Msg("sponge permutation")
	return nil
}

func (s *State) InitializeCapacity(api frontend.API, tag frontend.Variable) {
	s.perm.InitializeCapacity(api, s.capacity, tag)
}

// Snapshot copies out the full state as rate followed by capacity.
func (s *State) Snapshot() []frontend.Variable {
	snapshot := make([]frontend.Variable, 0, len(s.rate)+len(s.capacity))
	snapshot = append(snapshot, s.rate...)
	return append(snapshot, s.capacity...)
}

func (s *State) Permutations() uint {
	return s.permutations
}

// absorbOne writes a single element, permuting first when the rate is full.
// Every absorb invalidates the squeeze buffer.
func (s *State) absorbOne(api frontend.API, input frontend.Variable) error {
	if s.AbsorbPos() == s.Rate() {
		if err := s.Permute(api); err != nil {
			return err
		}
		s.SetAbsorbPos(0)
	}

	s.AddRateElement(s.AbsorbPos(), input)

	s.SetAbsorbPos(s.AbsorbPos() + 1)
	s.SetSqueezePos(s.Rate())
	return nil
}

// squeezeOne reads a single element, permuting first when the squeeze buffer
// is exhausted or stale.
func (s *State) squeezeOne(api frontend.API) (frontend.Variable, error) {
	if s.SqueezePos() == s.Rate() {
		if err := s.Permute(api); err != nil {
			return nil, err
		}
		s.SetAbsorbPos(0)
		s.SetSqueezePos(0)
	}

	ret := s.ReadRateElement(s.SqueezePos())

	s.SetSqueezePos(s.SqueezePos() + 1)
	return ret, nil
}
