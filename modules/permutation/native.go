package permutation

import (
	"fmt"
	"math/big"

	"DomainSpongeCircuit/modules/fields"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark/frontend"
)

// The native permutations run the sponge out of circuit (api is ignored),
// over constant values, to compute witnesses for the circuit versions.

// ToBigInt reads a constant frontend.Variable.
func ToBigInt(v frontend.Variable) (*big.Int, error) {
	switch x := v.(type) {
	case *big.Int:
		return new(big.Int).Set(x), nil
	case big.Int:
		return new(big.Int).Set(&x), nil
	case int:
		return big.NewInt(int64(x)), nil
	case int64:
		return big.NewInt(x), nil
	case uint:
		return new(big.Int).SetUint64(uint64(x)), nil
	case uint32:
		return new(big.Int).SetUint64(uint64(x)), nil
	case uint64:
		return new(big.Int).SetUint64(x), nil
	case fr.Element:
		res := new(big.Int)
		x.BigInt(res)
		return res, nil
	default:
		return nil, fmt.Errorf("not a constant value: %T", v)
	}
}

// NativePoseidonM31x16 computes PoseidonM31x16 over uint64 limbs.
type NativePoseidonM31x16 struct{}

func (NativePoseidonM31x16) Width() int {
	return PoseidonM31x16Width
}

func m31Reduce(v uint64) uint64 {
	const p = 1<<31 - 1
	return v % p
}

func m31Pow5(v uint64) uint64 {
	v2 := m31Reduce(v * v)
	v4 := m31Reduce(v2 * v2)
	return m31Reduce(v4 * v)
}

func nativePoseidonM31x16Permutate(state []uint64) []uint64 {
	partialRoundEnds := poseidonM31x16FullRounds/2 + poseidonM31x16PartialRounds
	allRoundEnds := poseidonM31x16FullRounds + poseidonM31x16PartialRounds

	for round := uint(0); round < allRoundEnds; round++ {
		for i := range state {
			state[i] = m31Reduce(state[i] + uint64(poseidonM31x16RoundConstant[round][i]))
		}

		mixed := make([]uint64, PoseidonM31x16Width)
		for i := range mixed {
			var acc uint64 = 0
			for j := range state {
				acc = m31Reduce(acc + uint64(poseidonM31x16MDS[i][j])*state[j])
			}
			mixed[i] = acc
		}
		state = mixed

		if round < poseidonM31x16FullRounds/2 || round >= partialRoundEnds {
			for i := range state {
				state[i] = m31Pow5(state[i])
			}
		} else {
			state[0] = m31Pow5(state[0])
		}
	}

	return state
}

func (NativePoseidonM31x16) Permute(
	_ frontend.API, rate, capacity []frontend.Variable) error {

	if len(rate)+len(capacity) != PoseidonM31x16Width {
		return fmt.Errorf("native poseidon m31x16: state of %d+%d elements",
			len(capacity), len(rate))
	}

	modulus := fields.ECCM31.FieldModulus()
	state := make([]uint64, 0, PoseidonM31x16Width)
	for _, v := range append(append([]frontend.Variable{}, capacity...), rate...) {
		b, err := ToBigInt(v)
		if err != nil {
			return err
		}
		state = append(state, b.Mod(b, modulus).Uint64())
	}

	state = nativePoseidonM31x16Permutate(state)

	for i := range capacity {
		capacity[i] = new(big.Int).SetUint64(state[i])
	}
	for i := range rate {
		rate[i] = new(big.Int).SetUint64(state[len(capacity)+i])
	}
	return nil
}

func (NativePoseidonM31x16) InitializeCapacity(
	_ frontend.API, capacity []frontend.Variable, tag frontend.Variable) {
	writeTag(capacity, tag)
}

func nativePoseidon2BN254MatFull(state *[Poseidon2BN254Width]fr.Element) {
	var sum fr.Element
	sum.Add(&state[0], &state[1]).Add(&sum, &state[2])
	for i := range state {
		state[i].Add(&state[i], &sum)
	}
}

func nativePoseidon2BN254MatPartial(state *[Poseidon2BN254Width]fr.Element) {
	var sum fr.Element
	sum.Add(&state[0], &state[1]).Add(&sum, &state[2])
	state[2].Double(&state[2])
	for i := range state {
		state[i].Add(&state[i], &sum)
	}
}

func nativePoseidon2Sbox(x *fr.Element) {
	var x4 fr.Element
	x4.Square(x).Square(&x4)
	x.Mul(x, &x4)
}

func nativePoseidon2BN254FullRound(state *[Poseidon2BN254Width]fr.Element, round int) {
	for i := range state {
		state[i].Add(&state[i], &poseidon2BN254FullRC[round][i])
		nativePoseidon2Sbox(&state[i])
	}
	nativePoseidon2BN254MatFull(state)
}

func nativePoseidon2BN254Permute(state *[Poseidon2BN254Width]fr.Element) {
	nativePoseidon2BN254MatFull(state)

	for round := 0; round < poseidon2BN254FullRounds/2; round++ {
		nativePoseidon2BN254FullRound(state, round)
	}

	for i := range poseidon2BN254PartialRC {
		state[0].Add(&state[0], &poseidon2BN254PartialRC[i])
		nativePoseidon2Sbox(&state[0])
		nativePoseidon2BN254MatPartial(state)
	}

	for round := poseidon2BN254FullRounds / 2; round < poseidon2BN254FullRounds; round++ {
		nativePoseidon2BN254FullRound(state, round)
	}
}

// NativePoseidon2BN254 computes Poseidon2BN254 over fr.Element, sharing its
// round constants.
type NativePoseidon2BN254 struct{}

func NewNativePoseidon2BN254() *NativePoseidon2BN254 {
	return &NativePoseidon2BN254{}
}

func (p *NativePoseidon2BN254) Width() int {
	return Poseidon2BN254Width
}

func (p *NativePoseidon2BN254) Permute(
	_ frontend.API, rate, capacity []frontend.Variable) error {

	if len(rate)+len(capacity) != Poseidon2BN254Width {
		return fmt.Errorf("native poseidon2 bn254: state of %d+%d elements",
			len(rate), len(capacity))
	}

	var state [Poseidon2BN254Width]fr.Element
	for i, v := range append(append([]frontend.Variable{}, rate...), capacity...) {
		b, err := ToBigInt(v)
		if err != nil {
			return err
		}
		state[i].SetBigInt(b)
	}

	nativePoseidon2BN254Permute(&state)

	for i := range rate {
		rate[i] = state[i].BigInt(new(big.Int))
	}
	for i := range capacity {
		capacity[i] = state[len(rate)+i].BigInt(new(big.Int))
	}
	return nil
}

func (p *NativePoseidon2BN254) InitializeCapacity(
	_ frontend.API, capacity []frontend.Variable, tag frontend.Variable) {
	writeTag(capacity, tag)
}
