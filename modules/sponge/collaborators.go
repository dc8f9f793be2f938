package sponge

import (
	"encoding/binary"

	"github.com/consensys/gnark/frontend"
)

// Permutation is the keyless permutation the sponge is built on. The sponge
// only sees the state split into its rate and capacity parts, the layout of
// the full permutation state is up to the implementation.
type Permutation interface {
	// Width is the full state width, rate plus capacity.
	Width() int

	// Permute applies the permutation in place to rate and capacity.
	Permute(api frontend.API, rate, capacity []frontend.Variable) error

	// InitializeCapacity writes the domain tag into the capacity region.
	InitializeCapacity(api frontend.API, capacity []frontend.Variable, tag frontend.Variable)
}

// TagHasher turns a sequence of public (non-circuit) words into one field
// element.
type TagHasher interface {
	HashTag(api frontend.API, items []uint32) (frontend.Variable, error)
}

// DomainSeparator identifies the protocol a sponge is used for. It is fixed
// at construction and appended after the compressed log when deriving the
// tag.
type DomainSeparator []uint32

func (sep DomainSeparator) Serialize() []uint32 {
	words := make([]uint32, len(sep))
	copy(words, sep)
	return words
}

// DomainSeparatorFromString packs a label into words: the byte length first,
// then the bytes big-endian, zero padded to a whole word.
func DomainSeparatorFromString(label string) DomainSeparator {
	raw := []byte(label)
	padded := make([]byte, (len(raw)+3)/4*4)
	copy(padded, raw)

	sep := make(DomainSeparator, 0, 1+len(padded)/4)
	sep = append(sep, uint32(len(raw)))
	for i := 0; i < len(padded); i += 4 {
		sep = append(sep, binary.BigEndian.Uint32(padded[i:i+4]))
	}
	return sep
}
