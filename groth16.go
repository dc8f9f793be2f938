package main

import (
	"fmt"
	"io"
	"os"

	"DomainSpongeCircuit/modules/circuit"
	"DomainSpongeCircuit/modules/fields"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"
	"github.com/consensys/gnark/logger"
	"github.com/spf13/cobra"
)

var (
	groth16CRSFile   string
	groth16VKFile    string
	groth16ProofFile string
	groth16Mode      string
)

var groth16Cmd = &cobra.Command{
	Use:   "groth16",
	Short: "Prove knowledge of a sponge preimage with Groth16",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Groth16Impl()
	},
}

func init() {
	spongeCmd.AddCommand(groth16Cmd)
	groth16Cmd.Flags().StringVar(&groth16CRSFile, "groth16-crs", "", "The Groth16 CRS used in the sponge proof.")
	groth16Cmd.Flags().StringVar(&groth16VKFile, "groth16-vk", "", "The Groth16 VK used in the sponge proof.")
	groth16Cmd.Flags().StringVar(&groth16ProofFile, "groth16-proof", "", "The Groth16 sponge proof file.")
	groth16Cmd.Flags().StringVar(&groth16Mode, "groth16-mode", "", "The Groth16 work mode - one of setup/prove/verify.")
	groth16Cmd.MarkFlagRequired("groth16-mode")
}

func writeKey(path string, key io.WriterTo) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = key.WriteTo(f)
	return err
}

func readKey(path string, key io.ReaderFrom) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = key.ReadFrom(f)
	return err
}

func Groth16Impl() error {
	log := logger.Logger()

	impl, err := selectedImpl()
	if err != nil {
		return err
	}
	if impl.Field() != fields.ECCBN254 {
		return fmt.Errorf("groth16 runs over bn254, got %s", impl.Field())
	}

	ccs, err := frontend.Compile(
		ecc.BN254.ScalarField(), r1cs.NewBuilder,
		circuit.NewSpongeCircuit(impl, numInputs, numOutputs),
	)
	if err != nil {
		return err
	}
	log.Info().Int("constraints", ccs.GetNbConstraints()).Msg("sponge circuit compiled")

	w, err := spongeWitness(impl)
	if err != nil {
		return err
	}
	witness, err := frontend.NewWitness(w.Assignment(impl), ecc.BN254.ScalarField())
	if err != nil {
		return err
	}

	pk := groth16.NewProvingKey(ecc.BN254)
	vk := groth16.NewVerifyingKey(ecc.BN254)
	groth16Proof := groth16.NewProof(ecc.BN254)

	switch groth16Mode {
	case "setup":
		log.Info().Msg("groth16 generating setup from scratch")
		if pk, vk, err = groth16.Setup(ccs); err != nil {
			return err
		}
		if err := writeKey(groth16CRSFile, pk); err != nil {
			return err
		}
		if err := writeKey(groth16VKFile, vk); err != nil {
			return err
		}
	case "prove":
		log.Info().Msg("groth16 reading CRS from file")
		if err := readKey(groth16CRSFile, pk); err != nil {
			return err
		}
		if groth16Proof, err = groth16.Prove(ccs, pk, witness); err != nil {
			return err
		}
		if err := writeKey(groth16ProofFile, groth16Proof); err != nil {
			return err
		}
	case "verify":
		log.Info().Msg("groth16 reading vk from file")
		if err := readKey(groth16VKFile, vk); err != nil {
			return err
		}
		if err := readKey(groth16ProofFile, groth16Proof); err != nil {
			return err
		}

		publicWitness, err := witness.Public()
		if err != nil {
			return err
		}
		if err = groth16.Verify(groth16Proof, vk, publicWitness); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown groth16 mode %q", groth16Mode)
	}

	fmt.Println("Done.")
	return nil
}
