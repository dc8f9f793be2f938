// Package taghash implements the hashers turning a serialized sponge I/O
// pattern and domain separator into a single field element.
package taghash

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	nativeMiMC "github.com/consensys/gnark-crypto/ecc/bn254/fr/mimc"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/hash/mimc"
)

// NativeMiMC hashes the words out of circuit with BN254 MiMC and hands the
// digest to the circuit as a constant. Every word is one field element.
type NativeMiMC struct{}

func (NativeMiMC) HashTag(_ frontend.API, items []uint32) (frontend.Variable, error) {
	return NativeMiMCDigest(items)
}

// NativeMiMCDigest is the BN254 MiMC digest of the words, each encoded as a
// 32 byte big-endian field element.
func NativeMiMCDigest(items []uint32) (*big.Int, error) {
	hasher := nativeMiMC.NewMiMC()

	var e fr.Element
	for _, item := range items {
		e.SetUint64(uint64(item))
		block := e.Bytes()
		if _, err := hasher.Write(block[:]); err != nil {
			return nil, err
		}
	}

	return new(big.Int).SetBytes(hasher.Sum(nil)), nil
}

// CircuitMiMC hashes the words with the gnark MiMC gadget. The words are
// public constants, the result agrees with NativeMiMC.
type CircuitMiMC struct{}

func (CircuitMiMC) HashTag(api frontend.API, items []uint32) (frontend.Variable, error) {
	hasher, err := mimc.NewMiMC(api)
	if err != nil {
		return nil, err
	}

	for _, item := range items {
		hasher.Write(uint64(item))
	}
	return hasher.Sum(), nil
}
