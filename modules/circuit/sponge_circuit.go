package circuit

import (
	"fmt"

	"DomainSpongeCircuit/modules/poseidon"

	"github.com/consensys/gnark/frontend"
)

// SpongeCircuit proves knowledge of inputs that, absorbed into a fresh
// sponge, squeeze to Outputs and finalize to Tag.
type SpongeCircuit struct {
	Impl poseidon.Impl `gnark:"-"`

	Inputs  []frontend.Variable
	Outputs []frontend.Variable `gnark:",public"`
	Tag     frontend.Variable   `gnark:",public"`
}

// NewSpongeCircuit is the placeholder used at compile time.
func NewSpongeCircuit(impl poseidon.Impl, numInputs, numOutputs uint) *SpongeCircuit {
	return &SpongeCircuit{
		Impl:    impl,
		Inputs:  make([]frontend.Variable, numInputs),
		Outputs: make([]frontend.Variable, numOutputs),
	}
}

// Assignment fills a SpongeCircuit with the values of w.
func (w *Witness) Assignment(impl poseidon.Impl) *SpongeCircuit {
	pub, priv := w.ToPubPrivInputs()
	return &SpongeCircuit{
		Impl:    impl,
		Inputs:  priv,
		Outputs: pub[:w.NumOutputs],
		Tag:     w.Tag(),
	}
}

// Define declares the circuit constraints
func (c *SpongeCircuit) Define(api frontend.API) error {
	if c.Impl == nil {
		return fmt.Errorf("sponge circuit without an implementation")
	}

	host := poseidon.NewHost(api, c.Impl)
	s, err := host.New()
	if err != nil {
		return err
	}

	if err := host.Absorb(s, c.Inputs...); err != nil {
		return err
	}
	outputs, err := host.Squeeze(s, len(c.Outputs))
	if err != nil {
		return err
	}
	tag, err := host.Finalize(s)
	if err != nil {
		return err
	}

	for i := range outputs {
		api.AssertIsEqual(outputs[i], c.Outputs[i])
	}
	api.AssertIsEqual(tag, c.Tag)
	return nil
}
