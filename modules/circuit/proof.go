package circuit

import (
	"fmt"
	"math/big"

	"DomainSpongeCircuit/modules/fields"

	"github.com/consensys/gnark/frontend"
	"golang.org/x/exp/rand"
)

// Proof is a stream of field elements read by a verifier circuit in order.
type Proof struct {
	Idx   uint
	Elems []frontend.Variable
}

func (p *Proof) Next() frontend.Variable {
	var e = p.Elems[p.Idx]
	p.Idx++

	return e
}

func (p *Proof) NextN(n uint) []frontend.Variable {
	es := make([]frontend.Variable, n)
	for i := range es {
		es[i] = p.Next()
	}
	return es
}

func (p *Proof) Remaining() uint {
	return uint(len(p.Elems)) - p.Idx
}

func (p *Proof) Reset() {
	p.Idx = 0
}

func (p *Proof) PlaceHolder() *Proof {
	return &Proof{
		Idx:   0,
		Elems: make([]frontend.Variable, len(p.Elems)),
	}
}

// NewRandomProof samples n_elems field elements, deterministically in seed.
func NewRandomProof(n_elems uint, fieldEnum fields.ECCFieldEnum, seed uint64) *Proof {
	var proof = Proof{}
	var modulus = fieldEnum.FieldModulus()
	var rng = rand.New(rand.NewSource(seed))

	proof.Idx = 0
	for i := uint(0); i < n_elems; i++ {
		v := new(big.Int).SetUint64(rng.Uint64())
		proof.Elems = append(proof.Elems, v.Mod(v, modulus))
	}

	return &proof
}

// ReadProofBytes parses a proof serialized as consecutive little endian field
// elements of fieldEnum.FieldBytes() bytes each.
func ReadProofBytes(data []byte, fieldEnum fields.ECCFieldEnum) (*Proof, error) {
	var elemBytes = int(fieldEnum.FieldBytes())
	if elemBytes == 0 || len(data)%elemBytes != 0 {
		return nil, fmt.Errorf(
			"proof of %d bytes is not a multiple of the %s element size",
			len(data), fieldEnum)
	}

	var modulus = fieldEnum.FieldModulus()
	var proof = Proof{}
	for i := 0; i < len(data); i += elemBytes {
		v := new(big.Int).SetBytes(reversed(data[i : i+elemBytes]))
		if v.Cmp(modulus) >= 0 {
			return nil, fmt.Errorf("proof element %d is not reduced", i/elemBytes)
		}
		proof.Elems = append(proof.Elems, v)
	}

	return &proof, nil
}

// Bytes serializes constant proof elements in the ReadProofBytes layout.
func (p *Proof) Bytes(fieldEnum fields.ECCFieldEnum) ([]byte, error) {
	var elemBytes = int(fieldEnum.FieldBytes())
	var out = make([]byte, 0, elemBytes*len(p.Elems))

	for i, e := range p.Elems {
		v, ok := e.(*big.Int)
		if !ok {
			return nil, fmt.Errorf("proof element %d is not a constant: %T", i, e)
		}
		buf := make([]byte, elemBytes)
		v.FillBytes(buf)
		out = append(out, reversed(buf)...)
	}
	return out, nil
}

func reversed(b []byte) []byte {
	r := make([]byte, len(b))
	for i := range b {
		r[len(b)-1-i] = b[i]
	}
	return r
}
