package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/moveup-labs/moveup-go-sdk/model/moveup"
)

func newResourceAccountCmd() *cobra.Command {
	var (
		flagSource  string
		flagSeed    string
		flagSeedHex string
	)

	cmd := &cobra.Command{
		Use:   "resource-account",
		Short: "Derive the address of a resource account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			source, err := moveup.HexToAddress(flagSource)
			if err != nil {
				return fmt.Errorf("invalid source address: %w", err)
			}

			seed := []byte(flagSeed)
			if flagSeedHex != "" {
				if flagSeed != "" {
					return fmt.Errorf("only one of --seed and --seed-hex can be set")
				}
				seed, err = decodeHexArg(flagSeedHex)
				if err != nil {
					return err
				}
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), moveup.ResourceAccountAddress(source, seed).Hex())
			return err
		},
	}

	cmd.Flags().StringVar(&flagSource, "source", "", "address of the account creating the resource account")
	_ = cmd.MarkFlagRequired("source")
	cmd.Flags().StringVar(&flagSeed, "seed", "", "seed as a utf-8 string")
	cmd.Flags().StringVar(&flagSeedHex, "seed-hex", "", "seed as hex")
	return cmd
}
