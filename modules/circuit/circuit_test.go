package circuit

import (
	"math/big"
	"testing"

	"DomainSpongeCircuit/modules/fields"
	"DomainSpongeCircuit/modules/poseidon"
	"DomainSpongeCircuit/modules/sponge"

	"github.com/PolyhedraZK/ExpanderCompilerCollection/ecgo"
	ecgoTest "github.com/PolyhedraZK/ExpanderCompilerCollection/ecgo/test"
	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/test"
	"github.com/stretchr/testify/require"
)

func TestSpongeCircuitBN254(t *testing.T) {
	impl := poseidon.BN254x3{Separator: sponge.DomainSeparatorFromString("circuit-test")}
	inputs := []frontend.Variable{1, 2, 3, 4, 5}

	w, err := NewSpongeWitness(impl, inputs, 3)
	require.NoError(t, err)
	require.Len(t, w.Values, 5+3+1)

	err = test.IsSolved(NewSpongeCircuit(impl, 5, 3), w.Assignment(impl), ecc.BN254.ScalarField())
	require.NoError(t, err)

	// a wrong tag is rejected
	bad := w.Assignment(impl)
	bad.Tag = 0
	err = test.IsSolved(NewSpongeCircuit(impl, 5, 3), bad, ecc.BN254.ScalarField())
	require.Error(t, err)
}

func TestSpongeCircuitM31(t *testing.T) {
	impl := poseidon.M31x16{}
	inputs := make([]frontend.Variable, 8)
	for i := range inputs {
		inputs[i] = 114514
	}

	w, err := NewSpongeWitness(impl, inputs, 8)
	require.NoError(t, err)

	pub, _ := w.ToPubPrivInputs()
	expected := []int64{
		849034538, 175601510, 1454280121, 1362077584,
		528171622, 187534772, 436020341, 1441052621,
	}
	for i, v := range expected {
		require.Equal(t, 0, big.NewInt(v).Cmp(pub[i].(*big.Int)), "output %d", i)
	}

	circuitCompileResult, err := ecgo.Compile(fields.ECCM31.FieldModulus(), NewSpongeCircuit(impl, 8, 8))
	require.NoError(t, err, "ggs compile circuit error")
	layeredCircuit := circuitCompileResult.GetLayeredCircuit()

	inputSolver := circuitCompileResult.GetInputSolver()
	witness, err := inputSolver.SolveInput(w.Assignment(impl), 0)
	require.NoError(t, err, "ggs solving witness error")

	require.True(t, ecgoTest.CheckCircuit(layeredCircuit, witness), "ggs check circuit error")
}

func TestSpongeCircuitWithoutImpl(t *testing.T) {
	err := test.IsSolved(&SpongeCircuit{}, &SpongeCircuit{}, ecc.BN254.ScalarField())
	require.Error(t, err)
}

func TestTranscriptCircuit(t *testing.T) {
	rounds := []uint{3, 0, 4, 1}
	sep := sponge.DomainSeparatorFromString("fiat-shamir")

	circuit := NewTranscriptCircuit(fields.ECCBN254, sep, rounds)
	proof := NewRandomProof(8, fields.ECCBN254, 7)

	assignment, err := circuit.Assign(proof)
	require.NoError(t, err)
	require.Len(t, assignment.Challenges, len(rounds))

	err = test.IsSolved(circuit, assignment, ecc.BN254.ScalarField())
	require.NoError(t, err)

	_, err = circuit.Assign(NewRandomProof(7, fields.ECCBN254, 7))
	require.Error(t, err)

	// a challenge off by one in a single limb is rejected
	bad, err := circuit.Assign(proof)
	require.NoError(t, err)
	bad.Challenges[2] = []frontend.Variable{1}
	err = test.IsSolved(circuit, bad, ecc.BN254.ScalarField())
	require.Error(t, err)
}

func TestTranscriptCircuitPlaceholder(t *testing.T) {
	circuit := NewTranscriptCircuit(fields.ECCM31, nil, []uint{1, 2, 3})
	require.Len(t, circuit.Proof.Elems, 6)
	require.Len(t, circuit.Challenges, 3)
	for _, challenge := range circuit.Challenges {
		require.Equal(t, []frontend.Variable{0, 0, 0}, challenge)
	}
}

func TestTranscriptCircuitM31(t *testing.T) {
	rounds := []uint{10, 2}
	circuit := NewTranscriptCircuit(fields.ECCM31, nil, rounds)

	assignment, err := circuit.Assign(NewRandomProof(12, fields.ECCM31, 1))
	require.NoError(t, err)
	require.Len(t, assignment.Challenges, 2)
	for _, challenge := range assignment.Challenges {
		require.Len(t, challenge, 3)
	}

	circuitCompileResult, err := ecgo.Compile(fields.ECCM31.FieldModulus(), circuit)
	require.NoError(t, err, "ggs compile circuit error")

	inputSolver := circuitCompileResult.GetInputSolver()
	witness, err := inputSolver.SolveInput(assignment, 0)
	require.NoError(t, err, "ggs solving witness error")

	require.True(t,
		ecgoTest.CheckCircuit(circuitCompileResult.GetLayeredCircuit(), witness),
		"ggs check circuit error",
	)
}

func TestProofBytes(t *testing.T) {
	for _, fieldEnum := range []fields.ECCFieldEnum{fields.ECCBN254, fields.ECCM31} {
		proof := NewRandomProof(5, fieldEnum, 42)
		data, err := proof.Bytes(fieldEnum)
		require.NoError(t, err)
		require.Len(t, data, 5*int(fieldEnum.FieldBytes()))

		read, err := ReadProofBytes(data, fieldEnum)
		require.NoError(t, err)
		require.Equal(t, proof.Elems, read.Elems)
	}

	_, err := ReadProofBytes([]byte{1, 2, 3}, fields.ECCM31)
	require.Error(t, err)

	// 2^31 - 1 is the M31 modulus itself
	_, err = ReadProofBytes([]byte{0xff, 0xff, 0xff, 0x7f}, fields.ECCM31)
	require.Error(t, err)
}

func TestProofStream(t *testing.T) {
	proof := &Proof{Elems: []frontend.Variable{1, 2, 3}}
	require.Equal(t, []frontend.Variable{1, 2}, proof.NextN(2))
	require.Equal(t, uint(1), proof.Remaining())
	require.Equal(t, 3, proof.Next())

	proof.Reset()
	require.Equal(t, 1, proof.Next())
	require.Len(t, proof.PlaceHolder().Elems, 3)
}
