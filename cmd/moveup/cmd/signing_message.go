package cmd

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/moveup-labs/moveup-go-sdk/model/bcs"
	"github.com/moveup-labs/moveup-go-sdk/model/moveup"
	"github.com/moveup-labs/moveup-go-sdk/sdk/txbuilder"
)

type signingMessageOutput struct {
	Scheme  string `json:"scheme"`
	Message string `json:"message"`
	Digest  string `json:"digest"`
}

func newSigningMessageCmd() *cobra.Command {
	var flagMultiAgent bool

	cmd := &cobra.Command{
		Use:   "signing-message <raw transaction hex>",
		Short: "Print the signing message and the digest to sign of a raw transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			scheme, err := cfg.Scheme()
			if err != nil {
				return err
			}

			b, err := decodeHexArg(args[0])
			if err != nil {
				return err
			}
			var tx interface{}
			if flagMultiAgent {
				tx, err = bcs.FromBytes(b, moveup.DeserializeRawTransactionWithData)
			} else {
				tx, err = bcs.FromBytes(b, moveup.DeserializeRawTransaction)
			}
			if err != nil {
				return fmt.Errorf("could not decode raw transaction: %w", err)
			}

			msg, err := txbuilder.SigningMessage(tx)
			if err != nil {
				return err
			}
			digest, err := scheme.Digest(tx)
			if err != nil {
				return err
			}
			return printJSON(cmd, signingMessageOutput{
				Scheme:  scheme.String(),
				Message: "0x" + hex.EncodeToString(msg),
				Digest:  "0x" + hex.EncodeToString(digest),
			})
		},
	}

	cmd.Flags().BoolVar(&flagMultiAgent, "multi-agent", false, "decode a multi agent raw transaction")
	return cmd
}
