// Package poseidon binds concrete Poseidon permutations and tag hashers to the
// domain separated sponge, so circuits can ask for a sponge by implementation
// instead of wiring collaborators themselves.
package poseidon

import (
	"fmt"
	"sort"

	"DomainSpongeCircuit/modules/fields"
	"DomainSpongeCircuit/modules/permutation"
	"DomainSpongeCircuit/modules/sponge"
	"DomainSpongeCircuit/modules/taghash"
)

// Impl describes one sponge instantiation: the field it runs over, its rate,
// domain separator, permutation and tag hasher.
type Impl interface {
	Name() string
	Field() fields.ECCFieldEnum
	Rate() int
	DomainSeparator() sponge.DomainSeparator

	// Permutation and TagHasher return fresh collaborators for one sponge.
	Permutation() sponge.Permutation
	TagHasher() sponge.TagHasher

	// NativePermutation and NativeTagHasher compute the same values out of
	// circuit, for witness generation.
	NativePermutation() sponge.Permutation
	NativeTagHasher() sponge.TagHasher
}

// separatorOr falls back to the implementation name packed as words.
func separatorOr(sep sponge.DomainSeparator, name string) sponge.DomainSeparator {
	if len(sep) == 0 {
		return sponge.DomainSeparatorFromString(name)
	}
	return sep.Serialize()
}

// M31x16 is Poseidon over Mersenne-31 with width 16 and rate 8, tagged with
// a Keccak digest reduced into M31.
type M31x16 struct {
	Separator sponge.DomainSeparator
}

func (M31x16) Name() string { return "poseidon-m31x16" }
func (M31x16) Field() fields.ECCFieldEnum { return fields.ECCM31 }
func (M31x16) Rate() int { return 8 }
func (M31x16) Permutation() sponge.Permutation { return permutation.PoseidonM31x16{} }

func (i M31x16) DomainSeparator() sponge.DomainSeparator {
	return separatorOr(i.Separator, i.Name())
}

func (M31x16) TagHasher() sponge.TagHasher {
	return taghash.Keccak{Field: fields.ECCM31}
}

func (M31x16) NativePermutation() sponge.Permutation {
	return permutation.NativePoseidonM31x16{}
}

func (i M31x16) NativeTagHasher() sponge.TagHasher {
	return i.TagHasher()
}

// BN254x3 is Poseidon2 over BN254 with width 3 and rate 2. The tag is a
// native MiMC digest entering the circuit as a constant.
type BN254x3 struct {
	Separator sponge.DomainSeparator
}

func (BN254x3) Name() string { return "poseidon2-bn254x3" }
func (BN254x3) Field() fields.ECCFieldEnum { return fields.ECCBN254 }
func (BN254x3) Rate() int { return 2 }

func (i BN254x3) DomainSeparator() sponge.DomainSeparator {
	return separatorOr(i.Separator, i.Name())
}

func (BN254x3) Permutation() sponge.Permutation {
	return permutation.NewPoseidon2BN254()
}

func (BN254x3) TagHasher() sponge.TagHasher {
	return taghash.NativeMiMC{}
}

func (BN254x3) NativePermutation() sponge.Permutation {
	return permutation.NewNativePoseidon2BN254()
}

func (BN254x3) NativeTagHasher() sponge.TagHasher {
	return taghash.NativeMiMC{}
}

// BN254x3InCircuit is BN254x3 with the tag computed by the MiMC gadget.
type BN254x3InCircuit struct {
	BN254x3
}

func (BN254x3InCircuit) Name() string { return "poseidon2-bn254x3-mimc" }

func (i BN254x3InCircuit) DomainSeparator() sponge.DomainSeparator {
	return separatorOr(i.Separator, i.Name())
}

func (BN254x3InCircuit) TagHasher() sponge.TagHasher {
	return taghash.CircuitMiMC{}
}

var registry = map[string]func(sponge.DomainSeparator) Impl{
	M31x16{}.Name():           func(sep sponge.DomainSeparator) Impl { return M31x16{Separator: sep} },
	BN254x3{}.Name():          func(sep sponge.DomainSeparator) Impl { return BN254x3{Separator: sep} },
	BN254x3InCircuit{}.Name(): func(sep sponge.DomainSeparator) Impl { return BN254x3InCircuit{BN254x3{Separator: sep}} },
}

// ByName looks up an implementation, using sep as its domain separator
// (or the default one when sep is empty).
func ByName(name string, sep sponge.DomainSeparator) (Impl, error) {
	newImpl, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf(`unknown sponge implementation "%s", have %v`, name, Names())
	}
	return newImpl(sep), nil
}

// ForField picks the default implementation over a field.
func ForField(field fields.ECCFieldEnum, sep sponge.DomainSeparator) (Impl, error) {
	switch field {
	case fields.ECCM31:
		return M31x16{Separator: sep}, nil
	case fields.ECCBN254:
		return BN254x3{Separator: sep}, nil
	case fields.ECCGF2:
		// NOTE no Poseidon instance over GF2
		fallthrough
	default:
		return nil, fmt.Errorf("no sponge implementation over field %s", field)
	}
}

func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
