package main

import (
	"os"
	"path/filepath"
	"testing"

	"DomainSpongeCircuit/modules/fields"
	"DomainSpongeCircuit/modules/sponge"

	"github.com/stretchr/testify/require"
)

func TestSelectedImpl(t *testing.T) {
	defer func() { fieldName, implName, domain = "bn254", "", "" }()

	fieldName = "m31"
	impl, err := selectedImpl()
	require.NoError(t, err)
	require.Equal(t, fields.ECCM31, impl.Field())

	implName, domain = "poseidon2-bn254x3-mimc", "my-protocol"
	impl, err = selectedImpl()
	require.NoError(t, err)
	require.Equal(t, "poseidon2-bn254x3-mimc", impl.Name())
	require.Equal(t, sponge.DomainSeparatorFromString("my-protocol"), impl.DomainSeparator())

	implName, fieldName = "", "gf2"
	_, err = selectedImpl()
	require.Error(t, err)
}

func TestTagImpl(t *testing.T) {
	defer func() { tagPattern = "" }()

	tagPattern = "A1,A2,S1"
	require.NoError(t, TagImpl())

	tagPattern = "X1"
	require.Error(t, TagImpl())
}

func useSpongeShape(t *testing.T, inputs, outputs uint) {
	oldInputs, oldOutputs := numInputs, numOutputs
	t.Cleanup(func() { numInputs, numOutputs = oldInputs, oldOutputs })
	numInputs, numOutputs = inputs, outputs
}

func TestCompileBN254Impl(t *testing.T) {
	useSpongeShape(t, 3, 2)

	impl, err := selectedImpl()
	require.NoError(t, err)
	require.NoError(t, CompileBN254Impl(impl))
}

func TestGroth16Impl(t *testing.T) {
	useSpongeShape(t, 3, 1)
	t.Cleanup(func() {
		groth16CRSFile, groth16VKFile, groth16ProofFile, groth16Mode = "", "", "", ""
	})

	dir := t.TempDir()
	groth16CRSFile = filepath.Join(dir, "sponge.crs")
	groth16VKFile = filepath.Join(dir, "sponge.vk")
	groth16ProofFile = filepath.Join(dir, "sponge.proof")

	for _, mode := range []string{"setup", "prove", "verify"} {
		groth16Mode = mode
		require.NoError(t, Groth16Impl(), mode)
	}
	for _, path := range []string{groth16CRSFile, groth16VKFile, groth16ProofFile} {
		info, err := os.Stat(path)
		require.NoError(t, err)
		require.NotZero(t, info.Size())
	}

	groth16Mode = "aggregate"
	require.Error(t, Groth16Impl())
}

func TestGroth16ImplRejectsM31(t *testing.T) {
	defer func() { fieldName = "bn254" }()
	fieldName = "m31"
	groth16Mode = "setup"
	defer func() { groth16Mode = "" }()

	require.Error(t, Groth16Impl())
}
