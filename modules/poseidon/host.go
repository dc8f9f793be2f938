package poseidon

import (
	"DomainSpongeCircuit/modules/sponge"

	"github.com/consensys/gnark/frontend"
)

// Host ties a circuit builder to a sponge implementation, exposing the sponge
// protocol as circuit level operations.
type Host[I Impl] struct {
	API  frontend.API
	Impl I
}

func NewHost[I Impl](api frontend.API, impl I) *Host[I] {
	return &Host[I]{API: api, Impl: impl}
}

// New gives a fresh sponge for this circuit.
func (h *Host[I]) New() (*sponge.Sponge, error) {
	return sponge.New(
		h.API,
		h.Impl.DomainSeparator(),
		h.Impl.Rate(),
		h.Impl.Permutation(),
		h.Impl.TagHasher(),
	)
}

func (h *Host[I]) Absorb(s *sponge.Sponge, inputs ...frontend.Variable) error {
	return s.Absorb(h.API, inputs...)
}

func (h *Host[I]) Squeeze(s *sponge.Sponge, length int) ([]frontend.Variable, error) {
	return s.Squeeze(h.API, length)
}

func (h *Host[I]) Finalize(s *sponge.Sponge) (frontend.Variable, error) {
	return s.Finalize(h.API)
}

// NewNativeSponge builds the out of circuit twin of the sponge an Impl gives
// in circuit. It is driven with a nil frontend.API.
func NewNativeSponge(impl Impl) (*sponge.Sponge, error) {
	return sponge.New(
		nil,
		impl.DomainSeparator(),
		impl.Rate(),
		impl.NativePermutation(),
		impl.NativeTagHasher(),
	)
}
