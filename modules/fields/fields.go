package fields

import (
	"fmt"
	"math/big"
	"strings"

	eccFields "github.com/PolyhedraZK/ExpanderCompilerCollection/ecgo/field"
	"github.com/consensys/gnark/frontend"
)

// ECCFieldEnum is the enum value indicating the field a sponge circuit is
// compiled over.
type ECCFieldEnum uint64

// The enum assignment is aligning with the ones on ECGO side.
const (
	// ECCBN254 is the ECCFieldEnum for BN254 field
	ECCBN254 ECCFieldEnum = 2
	// ECCM31 is the ECCFieldEnum for Mersenne31 field
	ECCM31 ECCFieldEnum = 1
	// ECCGF2 is the ECCFieldEnum for Galois2 field
	ECCGF2 ECCFieldEnum = 3
)

func (f ECCFieldEnum) GetFieldEngine() eccFields.Field {
	return eccFields.GetFieldById(uint64(f))
}

// FieldModulus finds the modulus for the base field tied to the ECC field enum
func (f ECCFieldEnum) FieldModulus() *big.Int {
	fieldEngine := f.GetFieldEngine()
	return fieldEngine.Field()
}

// FieldBytes stand for the number of bytes of the base field modulus
// tied to the ECC field enum
func (f ECCFieldEnum) FieldBytes() uint {
	fieldModulus := f.FieldModulus()
	bitLen := fieldModulus.BitLen()
	// NOTE: round up against bit-byte rate
	return (uint(bitLen) + 8 - 1) / 8
}

// ChallengeFieldDegree is the number of base field limbs a transcript
// challenge is made of.
func (f ECCFieldEnum) ChallengeFieldDegree() uint {
	switch f {
	case ECCBN254:
		return 1
	case ECCM31:
		return 3
	case ECCGF2:
		return 128
	default:
		panic(fmt.Sprintf("unknown ecc field enum %d", uint64(f)))
	}
}

func (f ECCFieldEnum) String() string {
	switch f {
	case ECCBN254:
		return "bn254"
	case ECCM31:
		return "m31"
	case ECCGF2:
		return "gf2"
	default:
		return fmt.Sprintf("ECCFieldEnum(%d)", uint64(f))
	}
}

// ParseECCFieldEnum maps a field name, as printed by String, back to its enum.
func ParseECCFieldEnum(name string) (ECCFieldEnum, error) {
	switch strings.ToLower(name) {
	case "bn254":
		return ECCBN254, nil
	case "m31", "mersenne31":
		return ECCM31, nil
	case "gf2":
		return ECCGF2, nil
	default:
		return 0, fmt.Errorf(`unknown field "%s"`, name)
	}
}

// ArithmeticEngine ties a frontend.API to the field it builds constraints
// over, so that challenge-field values (slices of base field limbs) can be
// handled uniformly.
type ArithmeticEngine struct {
	ECCFieldEnum
	frontend.API
}

// AssertEq checks if a bunch of base field elements equal to each other
// assuming they are limbs of a challenge field element.
func (engine *ArithmeticEngine) AssertEq(
	lhs []frontend.Variable, rhs []frontend.Variable) {

	degree := engine.ChallengeFieldDegree()
	if len(lhs) != int(degree) || len(rhs) != int(degree) {
		panic("challenge field elements should be of same degree")
	}

	for i := range lhs {
		engine.API.AssertIsEqual(lhs[i], rhs[i])
	}
}

// Zero returns challenge field zero instance.
func (engine *ArithmeticEngine) Zero() []frontend.Variable {
	degree := engine.ChallengeFieldDegree()
	zero := make([]frontend.Variable, degree)
	for i := 0; i < int(degree); i++ {
		zero[i] = 0
	}
	return zero
}

// Zeroes returns a slice of challenge field zero instances.
func (engine *ArithmeticEngine) Zeroes(num uint) [][]frontend.Variable {
	res := make([][]frontend.Variable, num)
	for i := uint(0); i < num; i++ {
		res[i] = engine.Zero()
	}

	return res
}
