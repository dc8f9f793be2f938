package permutation

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark/frontend"
	"golang.org/x/crypto/sha3"
)

const (
	Poseidon2BN254Width         = 3
	poseidon2BN254FullRounds    = 8
	poseidon2BN254PartialRounds = 56
)

var (
	// full round constants, the first half before the partial rounds
	poseidon2BN254FullRC    [poseidon2BN254FullRounds][Poseidon2BN254Width]fr.Element
	poseidon2BN254PartialRC [poseidon2BN254PartialRounds]fr.Element

	poseidon2BN254FullRCVar    [poseidon2BN254FullRounds][Poseidon2BN254Width]*big.Int
	poseidon2BN254PartialRCVar [poseidon2BN254PartialRounds]*big.Int
)

func poseidon2BN254Init() {
	// NOTE round constants are a Keccak-256 chain over the seed, reduced mod r
	seed := []byte("poseidon2_seed_BN254_3")

	hasher := sha3.NewLegacyKeccak256()
	hasher.Write(seed)
	seed = hasher.Sum(nil)

	next := func(e *fr.Element) *big.Int {
		hasher.Reset()
		hasher.Write(seed)
		seed = hasher.Sum(nil)

		e.SetBytes(seed)
		return e.BigInt(new(big.Int))
	}

	for round := 0; round < poseidon2BN254FullRounds/2; round++ {
		for i := 0; i < Poseidon2BN254Width; i++ {
			poseidon2BN254FullRCVar[round][i] = next(&poseidon2BN254FullRC[round][i])
		}
	}
	for round := range poseidon2BN254PartialRC {
		poseidon2BN254PartialRCVar[round] = next(&poseidon2BN254PartialRC[round])
	}
	for round := poseidon2BN254FullRounds / 2; round < poseidon2BN254FullRounds; round++ {
		for i := 0; i < Poseidon2BN254Width; i++ {
			poseidon2BN254FullRCVar[round][i] = next(&poseidon2BN254FullRC[round][i])
		}
	}
}

func init() {
	poseidon2BN254Init()
}

func poseidon2Sbox(api frontend.API, x frontend.Variable) frontend.Variable {
	x2 := api.Mul(x, x)
	x4 := api.Mul(x2, x2)
	return api.Mul(x, x4)
}

// poseidon2BN254MatFull is the external matrix circ(2, 1, 1).
func poseidon2BN254MatFull(api frontend.API, state *[Poseidon2BN254Width]frontend.Variable) {
	sum := api.Add(state[0], state[1], state[2])
	for i := range state {
		state[i] = api.Add(sum, state[i])
	}
}

// poseidon2BN254MatPartial is the internal matrix 1 + diag(0, 0, 1).
func poseidon2BN254MatPartial(api frontend.API, state *[Poseidon2BN254Width]frontend.Variable) {
	sum := api.Add(state[0], state[1], state[2])
	state[2] = api.Add(state[2], state[2])
	for i := range state {
		state[i] = api.Add(state[i], sum)
	}
}

func poseidon2BN254FullRound(
	api frontend.API, state *[Poseidon2BN254Width]frontend.Variable, round int) {

	for i := range state {
		state[i] = api.Add(state[i], poseidon2BN254FullRCVar[round][i])
	}
	for i := range state {
		state[i] = poseidon2Sbox(api, state[i])
	}
	poseidon2BN254MatFull(api, state)
}

func poseidon2BN254Permute(api frontend.API, state *[Poseidon2BN254Width]frontend.Variable) {
	poseidon2BN254MatFull(api, state)

	for round := 0; round < poseidon2BN254FullRounds/2; round++ {
		poseidon2BN254FullRound(api, state, round)
	}

	for _, rc := range poseidon2BN254PartialRCVar {
		state[0] = api.Add(state[0], rc)
		state[0] = poseidon2Sbox(api, state[0])
		poseidon2BN254MatPartial(api, state)
	}

	for round := poseidon2BN254FullRounds / 2; round < poseidon2BN254FullRounds; round++ {
		poseidon2BN254FullRound(api, state, round)
	}
}

// Poseidon2BN254 is Poseidon2 with width 3 over BN254: 8 full rounds split
// around 56 partial rounds, x^5 S-box. The permutation state is laid out as
// rate followed by capacity.
type Poseidon2BN254 struct{}

func NewPoseidon2BN254() *Poseidon2BN254 {
	return &Poseidon2BN254{}
}

func (p *Poseidon2BN254) Width() int {
	return Poseidon2BN254Width
}

func (p *Poseidon2BN254) Permute(
	api frontend.API, rate, capacity []frontend.Variable) error {

	if len(rate)+len(capacity) != Poseidon2BN254Width {
		return fmt.Errorf("poseidon2 bn254: state of %d+%d elements",
			len(rate), len(capacity))
	}

	var state [Poseidon2BN254Width]frontend.Variable
	copy(state[:], rate)
	copy(state[len(rate):], capacity)

	poseidon2BN254Permute(api, &state)

	copy(rate, state[:len(rate)])
	copy(capacity, state[len(rate):])
	return nil
}

func (p *Poseidon2BN254) InitializeCapacity(
	_ frontend.API, capacity []frontend.Variable, tag frontend.Variable) {
	writeTag(capacity, tag)
}
