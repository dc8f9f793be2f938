package main

import (
	"fmt"
	"os"
	"time"

	"DomainSpongeCircuit/modules/fields"
	"DomainSpongeCircuit/modules/poseidon"
	"DomainSpongeCircuit/modules/sponge"

	"github.com/consensys/gnark/logger"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	fieldName string
	implName  string
	domain    string
	verbose   bool
)

func init() {
	spongeCmd.PersistentFlags().StringVar(&fieldName, "field", "bn254", "The field the sponge runs over - one of bn254/m31.")
	spongeCmd.PersistentFlags().StringVar(&implName, "impl", "", "The sponge implementation, overriding the field default.")
	spongeCmd.PersistentFlags().StringVar(&domain, "domain", "", "The domain separator label, defaults to the implementation name.")
	spongeCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log sponge internals.")
}

var spongeCmd = &cobra.Command{
	Use:          "sponge",
	Short:        "Domain separated sponges for arithmetic circuits",
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := zerolog.InfoLevel
		if verbose {
			level = zerolog.TraceLevel
		}
		output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}
		logger.Set(zerolog.New(output).Level(level).With().Timestamp().Logger())
	},
	Run: func(cmd *cobra.Command, args []string) {
		cmd.HelpFunc()(cmd, args)
	},
}

// selectedImpl resolves --impl, --field and --domain into a sponge
// implementation.
func selectedImpl() (poseidon.Impl, error) {
	var sep sponge.DomainSeparator
	if domain != "" {
		sep = sponge.DomainSeparatorFromString(domain)
	}

	if implName != "" {
		return poseidon.ByName(implName, sep)
	}

	fieldEnum, err := fields.ParseECCFieldEnum(fieldName)
	if err != nil {
		return nil, err
	}
	return poseidon.ForField(fieldEnum, sep)
}

func main() {
	if err := spongeCmd.Execute(); err != nil {
		fmt.Println(err.Error())
		os.Exit(1)
	}
}
