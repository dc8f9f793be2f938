package permutation

import (
	"encoding/binary"
	"fmt"
	"math/big"

	"DomainSpongeCircuit/modules/fields"

	"github.com/PolyhedraZK/ExpanderCompilerCollection/ecgo"
	"github.com/PolyhedraZK/ExpanderCompilerCollection/ecgo/utils/customgates"
	"github.com/consensys/gnark/frontend"
	"golang.org/x/crypto/sha3"
)

const PoseidonM31x16Width = 16

var (
	poseidonM31x16FullRounds    uint
	poseidonM31x16PartialRounds uint

	poseidonM31x16RoundConstant [][]uint
	poseidonM31x16MDS           [][]uint

	POW_5_GATE_ID     uint64 = 12345
	POW_5_COST_PSEUDO int    = 20
)

// sBox raises f to the 5th power, through the ECGO custom gate when the
// builder supports it.
func sBox(api frontend.API, f frontend.Variable) frontend.Variable {
	if ecgoAPI, ok := api.(ecgo.API); ok {
		return ecgoAPI.CustomGate(POW_5_GATE_ID, f)
	}

	f2 := api.Mul(f, f)
	f4 := api.Mul(f2, f2)
	return api.Mul(f4, f)
}

func Power5(field *big.Int, inputs []*big.Int, outputs []*big.Int) error {
	a := big.NewInt(0)
	a.Mul(inputs[0], inputs[0])
	a.Mul(a, a)
	a.Mul(a, inputs[0])
	outputs[0] = a.Mod(a, field)
	return nil
}

func poseidonM31x16Init() {
	poseidonM31x16FullRounds = 8
	poseidonM31x16PartialRounds = 14

	var m31Modulus uint = uint(fields.ECCM31.FieldModulus().Int64())

	// NOTE Poseidon full round parameter generation
	poseidonM31x16Seed := []byte("poseidon_seed_Mersenne 31_16")

	hasher := sha3.NewLegacyKeccak256()
	hasher.Write(poseidonM31x16Seed)
	poseidonM31x16Seed = hasher.Sum(nil)

	poseidonM31x16RoundConstant = make([][]uint, poseidonM31x16FullRounds+poseidonM31x16PartialRounds)
	for i := range poseidonM31x16RoundConstant {
		poseidonM31x16RoundConstant[i] = make([]uint, PoseidonM31x16Width)

		for j := 0; j < PoseidonM31x16Width; j++ {
			hasher.Reset()
			hasher.Write(poseidonM31x16Seed)
			poseidonM31x16Seed = hasher.Sum(nil)

			u32LE := binary.LittleEndian.Uint32(poseidonM31x16Seed[:4])
			poseidonM31x16RoundConstant[i][j] = uint(u32LE) % m31Modulus
		}
	}

	// NOTE circulant MDS
	poseidonM31x16MDS = make([][]uint, PoseidonM31x16Width)
	poseidonM31x16MDS[0] = []uint{1, 1, 51, 1, 11, 17, 2, 1, 101, 63, 15, 2, 67, 22, 13, 3}
	for i := 1; i < PoseidonM31x16Width; i++ {
		poseidonM31x16MDS[i] = make([]uint, PoseidonM31x16Width)
		for j := 0; j < PoseidonM31x16Width; j++ {
			poseidonM31x16MDS[i][j] = poseidonM31x16MDS[0][(i+j)%PoseidonM31x16Width]
		}
	}

	customgates.Register(POW_5_GATE_ID, Power5, POW_5_COST_PSEUDO)
}

func init() {
	poseidonM31x16Init()
}

func poseidonM31x16MDSApply(
	api frontend.API, state []frontend.Variable) []frontend.Variable {

	res := make([]frontend.Variable, PoseidonM31x16Width)
	for i := range res {
		res[i] = 0
		for j := 0; j < PoseidonM31x16Width; j++ {
			res[i] = api.Add(api.Mul(poseidonM31x16MDS[i][j], state[j]), res[i])
		}
	}

	return res
}

func poseidonM31x16Round(
	api frontend.API, state []frontend.Variable, round uint, full bool) []frontend.Variable {

	for i := 0; i < PoseidonM31x16Width; i++ {
		state[i] = api.Add(state[i], poseidonM31x16RoundConstant[round][i])
	}

	state = poseidonM31x16MDSApply(api, state)

	if !full {
		state[0] = sBox(api, state[0])
		return state
	}

	for i := 0; i < PoseidonM31x16Width; i++ {
		state[i] = sBox(api, state[i])
	}
	return state
}

func poseidonM31x16Permutate(
	api frontend.API, state []frontend.Variable) []frontend.Variable {

	partialRoundEnds := poseidonM31x16FullRounds/2 + poseidonM31x16PartialRounds
	allRoundEnds := poseidonM31x16FullRounds + poseidonM31x16PartialRounds

	for i := uint(0); i < allRoundEnds; i++ {
		full := i < poseidonM31x16FullRounds/2 || i >= partialRoundEnds
		state = poseidonM31x16Round(api, state, i, full)
	}

	return state
}

// PoseidonM31x16 is the width-16 Poseidon permutation over Mersenne-31. The
// permutation state is laid out as capacity followed by rate.
type PoseidonM31x16 struct{}

func (PoseidonM31x16) Width() int {
	return PoseidonM31x16Width
}

func (PoseidonM31x16) Permute(
	api frontend.API, rate, capacity []frontend.Variable) error {

	if len(rate)+len(capacity) != PoseidonM31x16Width {
		return fmt.Errorf("poseidon m31x16: state of %d+%d elements",
			len(capacity), len(rate))
	}

	state := make([]frontend.Variable, 0, PoseidonM31x16Width)
	state = append(state, capacity...)
	state = append(state, rate...)

	state = poseidonM31x16Permutate(api, state)

	copy(capacity, state[:len(capacity)])
	copy(rate, state[len(capacity):])
	return nil
}

func (PoseidonM31x16) InitializeCapacity(
	_ frontend.API, capacity []frontend.Variable, tag frontend.Variable) {
	writeTag(capacity, tag)
}

// writeTag sets the first capacity slot to the tag and clears the others.
func writeTag(capacity []frontend.Variable, tag frontend.Variable) {
	capacity[0] = tag
	for i := 1; i < len(capacity); i++ {
		capacity[i] = 0
	}
}
