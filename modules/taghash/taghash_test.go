package taghash

import (
	"testing"

	"DomainSpongeCircuit/modules/fields"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/test"
	"github.com/stretchr/testify/require"
)

type mimcAgreementCircuit struct {
	Items []uint32 `gnark:"-"`

	Expected frontend.Variable `gnark:",public"`
}

func (c *mimcAgreementCircuit) Define(api frontend.API) error {
	tag, err := CircuitMiMC{}.HashTag(api, c.Items)
	if err != nil {
		return err
	}
	api.AssertIsEqual(tag, c.Expected)
	return nil
}

func TestCircuitMiMCMatchesNative(t *testing.T) {
	items := []uint32{0x80000003, 0x00000002, 5, 0x73706f6e, 0x67000000}

	expected, err := NativeMiMCDigest(items)
	require.NoError(t, err)

	circuit := mimcAgreementCircuit{Items: items}
	assignment := mimcAgreementCircuit{Items: items, Expected: expected}
	require.NoError(t, test.IsSolved(&circuit, &assignment, ecc.BN254.ScalarField()))
}

func TestNativeMiMCSeparates(t *testing.T) {
	a, err := NativeMiMCDigest([]uint32{0x80000003, 2, 1})
	require.NoError(t, err)
	b, err := NativeMiMCDigest([]uint32{0x80000003, 2, 2})
	require.NoError(t, err)
	c, err := NativeMiMCDigest([]uint32{0x80000003, 2, 1})
	require.NoError(t, err)

	require.NotEqual(t, 0, a.Cmp(b))
	require.Equal(t, 0, a.Cmp(c))
	require.Equal(t, -1, a.Cmp(ecc.BN254.ScalarField()))
}

func TestKeccakReducesIntoField(t *testing.T) {
	for _, f := range []fields.ECCFieldEnum{fields.ECCM31, fields.ECCBN254} {
		a := KeccakDigest(f, []uint32{0x80000001, 1})
		b := KeccakDigest(f, []uint32{0x80000001, 2})

		require.Equal(t, -1, a.Cmp(f.FieldModulus()))
		require.NotEqual(t, 0, a.Cmp(b))
	}

	tag, err := Keccak{Field: fields.ECCM31}.HashTag(nil, []uint32{7})
	require.NoError(t, err)
	require.Equal(t, KeccakDigest(fields.ECCM31, []uint32{7}), tag)
}
