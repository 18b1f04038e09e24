package cmd

import (
	"github.com/spf13/cobra"

	"github.com/moveup-labs/moveup-go-sdk/crypto"
)

const defaultDerivationPath = "m/44'/60'/0'/0'/0'"

type accountOutput struct {
	Address           string `json:"address"`
	PublicKey         string `json:"public_key"`
	AuthenticationKey string `json:"authentication_key"`
	PrivateKey        string `json:"private_key,omitempty"`
	Mnemonic          string `json:"mnemonic,omitempty"`
}

func newAccountCmd() *cobra.Command {
	var (
		flagPrivateKey     string
		flagMnemonic       string
		flagPath           string
		flagGenerate       bool
		flagShowPrivateKey bool
	)

	cmd := &cobra.Command{
		Use:   "account",
		Short: "Derive the address and keys of an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, log, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			mnemonic := flagMnemonic
			if flagGenerate {
				mnemonic, err = crypto.GenerateMnemonic(128)
				if err != nil {
					return err
				}
				log.Info().Str("path", flagPath).Msg("generated a new mnemonic")
			}

			a, err := loadAccount(flagPrivateKey, mnemonic, flagPath)
			if err != nil {
				return err
			}

			out := accountOutput{
				Address:           a.Address().Hex(),
				PublicKey:         a.PubKey().Hex(),
				AuthenticationKey: a.AuthKey().Hex(),
			}
			if flagShowPrivateKey || flagGenerate {
				out.PrivateKey = a.ToPrivateKeyObject().PrivateKeyHex
			}
			if flagGenerate {
				out.Mnemonic = mnemonic
			}
			return printJSON(cmd, out)
		},
	}

	cmd.Flags().StringVar(&flagPrivateKey, "private-key", "", "hex encoded secp256k1 private key")
	cmd.Flags().StringVar(&flagMnemonic, "mnemonic", "", "BIP39 mnemonic to derive the key from")
	cmd.Flags().StringVar(&flagPath, "path", defaultDerivationPath, "BIP44 derivation path used with --mnemonic")
	cmd.Flags().BoolVar(&flagGenerate, "generate", false, "generate a new mnemonic and derive its first account")
	cmd.Flags().BoolVar(&flagShowPrivateKey, "show-private-key", false, "include the private key in the output")
	return cmd
}
