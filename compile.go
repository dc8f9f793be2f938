package main

import (
	"fmt"
	"os"

	"DomainSpongeCircuit/modules/circuit"
	"DomainSpongeCircuit/modules/fields"
	"DomainSpongeCircuit/modules/poseidon"

	"github.com/PolyhedraZK/ExpanderCompilerCollection/ecgo"
	ecgoTest "github.com/PolyhedraZK/ExpanderCompilerCollection/ecgo/test"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"
	"github.com/consensys/gnark/logger"
	"github.com/spf13/cobra"
)

var (
	numInputs  uint
	numOutputs uint
	inputSeed  uint64
	circuitOut string
	witnessOut string
)

func init() {
	spongeCmd.AddCommand(compileCmd)
	for _, cmd := range []*cobra.Command{compileCmd, groth16Cmd} {
		cmd.Flags().UintVar(&numInputs, "inputs", 8, "The number of elements absorbed by the sponge circuit.")
		cmd.Flags().UintVar(&numOutputs, "outputs", 2, "The number of elements squeezed by the sponge circuit.")
		cmd.Flags().Uint64Var(&inputSeed, "seed", 1, "The seed the absorbed elements are sampled from.")
	}
	compileCmd.Flags().StringVar(&circuitOut, "circuit-out", "", "Where to write the layered circuit, m31 only.")
	compileCmd.Flags().StringVar(&witnessOut, "witness-out", "", "Where to write the layered witness, m31 only.")
}

var compileCmd = &cobra.Command{
	Use:   "compile",
	Short: "Compile a sponge circuit and check it against a native run",
	Long: `
Compile a circuit absorbing --inputs elements, squeezing --outputs
elements and finalizing, then check it is satisfied by the outputs
and tag of the same sponge run natively.
BN254 sponges compile to R1CS, M31 sponges to an ECGO layered circuit.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		impl, err := selectedImpl()
		if err != nil {
			return err
		}

		switch impl.Field() {
		case fields.ECCBN254:
			return CompileBN254Impl(impl)
		case fields.ECCM31:
			return CompileMersenne31Impl(impl)
		default:
			return fmt.Errorf("no compiler for field %s", impl.Field())
		}
	},
}

func spongeWitness(impl poseidon.Impl) (*circuit.Witness, error) {
	inputs := circuit.NewRandomProof(numInputs, impl.Field(), inputSeed).Elems
	return circuit.NewSpongeWitness(impl, inputs, numOutputs)
}

func CompileBN254Impl(impl poseidon.Impl) error {
	log := logger.Logger()

	ccs, err := frontend.Compile(
		impl.Field().FieldModulus(), r1cs.NewBuilder,
		circuit.NewSpongeCircuit(impl, numInputs, numOutputs),
	)
	if err != nil {
		return err
	}

	fmt.Println("Nb Constraints: ", ccs.GetNbConstraints())
	fmt.Println("Nb Internal Witness: ", ccs.GetNbInternalVariables())
	fmt.Println("Nb Private Witness: ", ccs.GetNbSecretVariables())
	fmt.Println("Nb Public Witness:", ccs.GetNbPublicVariables())

	log.Info().Msg("solving witness")
	w, err := spongeWitness(impl)
	if err != nil {
		return err
	}
	witness, err := frontend.NewWitness(w.Assignment(impl), impl.Field().FieldModulus())
	if err != nil {
		return err
	}

	log.Info().Msg("checking satisfiability")
	if err := ccs.IsSolved(witness); err != nil {
		return fmt.Errorf("R1CS not satisfied: %w", err)
	}
	fmt.Println("Tag:", w.Tag())
	return nil
}

func CompileMersenne31Impl(impl poseidon.Impl) error {
	log := logger.Logger()

	m31Compilation, err := ecgo.Compile(
		impl.Field().FieldModulus(),
		circuit.NewSpongeCircuit(impl, numInputs, numOutputs),
	)
	if err != nil {
		return err
	}
	layeredCircuit := m31Compilation.GetLayeredCircuit()

	log.Info().Msg("solving witness")
	w, err := spongeWitness(impl)
	if err != nil {
		return err
	}
	inputSolver := m31Compilation.GetInputSolver()
	witness, err := inputSolver.SolveInput(w.Assignment(impl), 0)
	if err != nil {
		return err
	}

	log.Info().Msg("checking satisfiability")
	if !ecgoTest.CheckCircuit(layeredCircuit, witness) {
		return fmt.Errorf("layered circuit not satisfied")
	}

	if circuitOut != "" {
		if err := os.WriteFile(circuitOut, layeredCircuit.Serialize(), 0o644); err != nil {
			return err
		}
	}
	if witnessOut != "" {
		if err := os.WriteFile(witnessOut, witness.Serialize(), 0o644); err != nil {
			return err
		}
	}

	fmt.Println("Tag:", w.Tag())
	return nil
}
