package cmd

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/moveup-labs/moveup-go-sdk/model/bcs"
	"github.com/moveup-labs/moveup-go-sdk/model/encoding"
	"github.com/moveup-labs/moveup-go-sdk/model/moveup"
	"github.com/moveup-labs/moveup-go-sdk/sdk/eip712"
)

type decodedTransaction struct {
	Hash          string                 `json:"hash" yaml:"hash"`
	Transaction   map[string]interface{} `json:"transaction" yaml:"transaction"`
	Authenticator map[string]interface{} `json:"authenticator" yaml:"authenticator"`
}

func newDecodeCmd() *cobra.Command {
	var flagFormat string

	cmd := &cobra.Command{
		Use:   "decode <signed transaction hex>",
		Short: "Decode a BCS encoded signed transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := decodeHexArg(args[0])
			if err != nil {
				return err
			}
			signed, err := bcs.FromBytes(b, moveup.DeserializeSignedTransaction)
			if err != nil {
				return fmt.Errorf("could not decode signed transaction: %w", err)
			}

			h, err := signed.Hash()
			if err != nil {
				return err
			}
			typedData, err := eip712.RawTransaction(signed.RawTxn)
			if err != nil {
				return err
			}
			out := decodedTransaction{
				Hash:          h.Hex(),
				Transaction:   typedData.Message,
				Authenticator: transactionAuthenticator(signed.Authenticator),
			}

			format, err := encoding.ParseFormat(flagFormat)
			if err != nil {
				return err
			}
			return printEncoded(cmd, format, out)
		},
	}

	cmd.Flags().StringVar(&flagFormat, "format", string(encoding.FormatJSON), "output format, json, yaml or cbor (hex encoded)")
	return cmd
}

func transactionAuthenticator(auth moveup.TransactionAuthenticator) map[string]interface{} {
	switch a := auth.(type) {
	case moveup.TransactionAuthenticatorSecp256k1:
		return map[string]interface{}{
			"type":       "secp256k1",
			"public_key": a.PublicKey.Hex(),
			"signature":  "0x" + hex.EncodeToString(a.Signature.Bytes()),
		}
	case moveup.TransactionAuthenticatorMultiSecp256k1:
		return multiSecp256k1(a.PublicKey, a.Signature)
	case moveup.TransactionAuthenticatorMultiAgent:
		secondary := make([]interface{}, len(a.SecondarySigners))
		for i, signer := range a.SecondarySigners {
			secondary[i] = accountAuthenticator(signer)
		}
		addresses := make([]string, len(a.SecondarySignerAddresses))
		for i, addr := range a.SecondarySignerAddresses {
			addresses[i] = addr.Hex()
		}
		return map[string]interface{}{
			"type":                       "multi_agent",
			"sender":                     accountAuthenticator(a.Sender),
			"secondary_signer_addresses": addresses,
			"secondary_signers":          secondary,
		}
	default:
		return map[string]interface{}{"type": fmt.Sprintf("%T", auth)}
	}
}

func accountAuthenticator(auth moveup.AccountAuthenticator) map[string]interface{} {
	switch a := auth.(type) {
	case moveup.AccountAuthenticatorSecp256k1:
		return transactionAuthenticator(moveup.TransactionAuthenticatorSecp256k1{PublicKey: a.PublicKey, Signature: a.Signature})
	case moveup.AccountAuthenticatorMultiSecp256k1:
		return multiSecp256k1(a.PublicKey, a.Signature)
	default:
		return map[string]interface{}{"type": fmt.Sprintf("%T", auth)}
	}
}

func multiSecp256k1(pk moveup.MultiSecp256k1PublicKey, sig moveup.MultiSecp256k1Signature) map[string]interface{} {
	keys := make([]string, len(pk.PublicKeys))
	for i, k := range pk.PublicKeys {
		keys[i] = k.Hex()
	}
	sigs := make([]string, len(sig.Signatures))
	for i, s := range sig.Signatures {
		sigs[i] = "0x" + hex.EncodeToString(s.Bytes())
	}
	return map[string]interface{}{
		"type":        "multi_secp256k1",
		"public_keys": keys,
		"threshold":   pk.Threshold,
		"signatures":  sigs,
		"bitmap":      "0x" + hex.EncodeToString(sig.Bitmap[:]),
	}
}
