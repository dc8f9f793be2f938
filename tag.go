package main

import (
	"fmt"

	"DomainSpongeCircuit/modules/sponge"

	"github.com/spf13/cobra"
)

var tagPattern string

func init() {
	spongeCmd.AddCommand(tagCmd)
	tagCmd.Flags().StringVar(&tagPattern, "pattern", "", "The sponge calls to tag, e.g. A3,S2,A1.")
	tagCmd.MarkFlagRequired("pattern")
}

var tagCmd = &cobra.Command{
	Use:   "tag",
	Short: "Compute the domain tag a sequence of sponge calls finalizes to",
	Long: `
Compute the domain tag a sequence of sponge calls finalizes to.
Consecutive calls in the same direction are merged before hashing,
so A1,A2 and A3 give the same tag.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return TagImpl()
	},
}

func TagImpl() error {
	impl, err := selectedImpl()
	if err != nil {
		return err
	}

	actions, err := sponge.ParsePattern(tagPattern)
	if err != nil {
		return err
	}
	compressed, err := sponge.CompressActions(actions)
	if err != nil {
		return err
	}

	items := append(sponge.SerializeActions(compressed), impl.DomainSeparator().Serialize()...)
	tag, err := impl.NativeTagHasher().HashTag(nil, items)
	if err != nil {
		return err
	}

	fmt.Println("Impl:      ", impl.Name())
	fmt.Println("Pattern:   ", sponge.FormatPattern(compressed))
	fmt.Print("Items:      ")
	for _, item := range items {
		fmt.Printf("%08x ", item)
	}
	fmt.Println()
	fmt.Println("Tag:       ", tag)
	return nil
}
