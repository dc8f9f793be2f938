package taghash

import (
	"encoding/binary"
	"math/big"

	"DomainSpongeCircuit/modules/fields"

	"github.com/consensys/gnark/frontend"
	"golang.org/x/crypto/sha3"
)

// Keccak hashes the words big-endian with legacy Keccak-256 and reduces the
// digest into the target field. It serves fields too small for MiMC, such
// as Mersenne-31.
type Keccak struct {
	Field fields.ECCFieldEnum
}

func (k Keccak) HashTag(_ frontend.API, items []uint32) (frontend.Variable, error) {
	return KeccakDigest(k.Field, items), nil
}

func KeccakDigest(field fields.ECCFieldEnum, items []uint32) *big.Int {
	hasher := sha3.NewLegacyKeccak256()

	buf := make([]byte, 4)
	for _, item := range items {
		binary.BigEndian.PutUint32(buf, item)
		hasher.Write(buf)
	}

	digest := new(big.Int).SetBytes(hasher.Sum(nil))
	return digest.Mod(digest, field.FieldModulus())
}
