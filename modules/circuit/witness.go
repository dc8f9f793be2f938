package circuit

import (
	"fmt"

	"DomainSpongeCircuit/modules/permutation"
	"DomainSpongeCircuit/modules/poseidon"

	"github.com/consensys/gnark/frontend"
)

// Witness is the out of circuit run of a sponge: the absorbed inputs, the
// squeezed outputs and the finalized tag, as flat values.
type Witness struct {
	NumInputs  uint
	NumOutputs uint
	Values     []frontend.Variable
}

// PubInput stores the circuit public inputs
type PubInput = []frontend.Variable

// PrivInput stores the circuit private inputs
type PrivInput = []frontend.Variable

// NewSpongeWitness absorbs inputs in one batch, squeezes numOutputs elements
// and finalizes, natively, over the sponge impl gives.
func NewSpongeWitness(impl poseidon.Impl, inputs []frontend.Variable, numOutputs uint) (*Witness, error) {
	s, err := poseidon.NewNativeSponge(impl)
	if err != nil {
		return nil, err
	}

	modulus := impl.Field().FieldModulus()
	values := make([]frontend.Variable, 0, len(inputs)+int(numOutputs)+1)
	for i, in := range inputs {
		v, err := permutation.ToBigInt(in)
		if err != nil {
			return nil, fmt.Errorf("input %d: %w", i, err)
		}
		values = append(values, v.Mod(v, modulus))
	}

	if err := s.Absorb(nil, values...); err != nil {
		return nil, err
	}
	outputs, err := s.Squeeze(nil, int(numOutputs))
	if err != nil {
		return nil, err
	}
	tag, err := s.Finalize(nil)
	if err != nil {
		return nil, err
	}

	values = append(values, outputs...)
	values = append(values, tag)

	return &Witness{
		NumInputs:  uint(len(inputs)),
		NumOutputs: numOutputs,
		Values:     values,
	}, nil
}

// ToPubPrivInputs separate the Witness into the private inputs and the
// public outputs followed by the tag.
func (w *Witness) ToPubPrivInputs() (pubInputs PubInput, privInputs PrivInput) {
	privInputs = w.Values[:w.NumInputs]
	pubInputs = w.Values[w.NumInputs:]
	return
}

// Tag is the finalized sponge tag.
func (w *Witness) Tag() frontend.Variable {
	return w.Values[len(w.Values)-1]
}
