package cmd

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/moveup-labs/moveup-go-sdk/config"
	"github.com/moveup-labs/moveup-go-sdk/model/bcs"
	"github.com/moveup-labs/moveup-go-sdk/model/moveup"
	"github.com/moveup-labs/moveup-go-sdk/model/rest"
	"github.com/moveup-labs/moveup-go-sdk/sdk/abi"
	"github.com/moveup-labs/moveup-go-sdk/sdk/account"
	"github.com/moveup-labs/moveup-go-sdk/sdk/client"
)

type signOutput struct {
	Hash              string            `json:"hash"`
	SignedTransaction string            `json:"signed_transaction"`
	Committed         *rest.Transaction `json:"committed,omitempty"`
}

type signFlags struct {
	privateKey     string
	mnemonic       string
	path           string
	function       string
	typeArgs       []string
	args           string
	abiFile        string
	sequenceNumber uint64
	chainID        uint8
	submit         bool
}

func newSignCmd() *cobra.Command {
	var flags signFlags

	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Build and sign a call of an entry function",
		Long: `Build and sign a call of an entry function.

With --abi the transaction is built offline from a BCS encoded ABI and --sequence-number
and --chain-id are required. Otherwise the ABI, sequence number, chain id and gas unit
price are read from the node.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			a, err := loadAccount(flags.privateKey, flags.mnemonic, flags.path)
			if err != nil {
				return err
			}
			args, err := parseArgs(flags.args)
			if err != nil {
				return err
			}

			if flags.abiFile != "" {
				if flags.submit {
					return fmt.Errorf("--submit cannot be used with --abi")
				}
				if !cmd.Flags().Changed("sequence-number") || !cmd.Flags().Changed("chain-id") {
					return fmt.Errorf("--sequence-number and --chain-id are required with --abi")
				}
				return signOffline(cmd, cfg, a, flags, args)
			}
			return signRemote(cmd, cfg, log, a, flags, args)
		},
	}

	cmd.Flags().StringVar(&flags.privateKey, "private-key", "", "hex encoded secp256k1 private key of the sender")
	cmd.Flags().StringVar(&flags.mnemonic, "mnemonic", "", "BIP39 mnemonic of the sender")
	cmd.Flags().StringVar(&flags.path, "path", defaultDerivationPath, "BIP44 derivation path used with --mnemonic")
	cmd.Flags().StringVar(&flags.function, "function", "", "entry function to call, e.g. 0x1::coin::transfer")
	cmd.Flags().StringSliceVar(&flags.typeArgs, "type-args", nil, "type arguments of the call")
	cmd.Flags().StringVar(&flags.args, "args", "[]", "JSON array of the call arguments")
	cmd.Flags().StringVar(&flags.abiFile, "abi", "", "path of a BCS encoded ABI to build the transaction offline")
	cmd.Flags().Uint64Var(&flags.sequenceNumber, "sequence-number", 0, "sequence number of the sender, used with --abi")
	cmd.Flags().Uint8Var(&flags.chainID, "chain-id", 0, "chain id, used with --abi")
	cmd.Flags().BoolVar(&flags.submit, "submit", false, "submit the transaction and wait for it to be committed")
	_ = cmd.MarkFlagRequired("function")
	return cmd
}

// parseArgs decodes the JSON arguments keeping numbers exact, so that u128 and u256 values
// do not lose precision.
func parseArgs(raw string) ([]interface{}, error) {
	decoder := json.NewDecoder(bytes.NewReader([]byte(raw)))
	decoder.UseNumber()
	var args []interface{}
	if err := decoder.Decode(&args); err != nil {
		return nil, fmt.Errorf("invalid --args, expected a JSON array: %w", err)
	}
	return args, nil
}

func signOffline(cmd *cobra.Command, cfg *config.Config, a *account.Account, flags signFlags, args []interface{}) error {
	encoded, err := os.ReadFile(flags.abiFile)
	if err != nil {
		return fmt.Errorf("could not read abi: %w", err)
	}
	scheme, err := cfg.Scheme()
	if err != nil {
		return err
	}

	builderCfg := cfg.BuilderDefaults()
	builderCfg.Sender = a.Address()
	builderCfg.SequenceNumber = &flags.sequenceNumber
	chainID := moveup.ChainID(flags.chainID)
	builderCfg.ChainID = &chainID
	if builderCfg.GasUnitPrice == nil {
		return fmt.Errorf("--gas-unit-price is required with --abi")
	}

	builder, err := abi.NewTransactionBuilderABI([][]byte{encoded}, builderCfg)
	if err != nil {
		return err
	}
	raw, err := builder.Build(flags.function, flags.typeArgs, args)
	if err != nil {
		return fmt.Errorf("could not build %s: %w", flags.function, err)
	}
	signed, err := client.GenerateSignedBCSTransaction(a, raw, scheme)
	if err != nil {
		return err
	}
	return printSigned(cmd, signed, nil)
}

func signRemote(cmd *cobra.Command, cfg *config.Config, log zerolog.Logger, a *account.Account, flags signFlags, args []interface{}) error {
	clientCfg, err := cfg.ClientConfig()
	if err != nil {
		return err
	}
	scheme, err := cfg.Scheme()
	if err != nil {
		return err
	}
	cache, err := abi.NewCache(cfg.Cache.ABICacheSize, cfg.Cache.ABICacheTTL, nil)
	if err != nil {
		return err
	}

	c, err := client.New(log, clientCfg)
	if err != nil {
		return err
	}
	defer c.Close()

	provider, err := client.NewProvider(log, c,
		client.WithBuilderDefaults(cfg.BuilderDefaults()),
		client.WithScheme(scheme),
		client.WithABICache(cache),
	)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	_, signed, err := provider.BuildAndSign(ctx, a, flags.function, flags.typeArgs, args)
	if err != nil {
		return err
	}
	if !flags.submit {
		return printSigned(cmd, signed, nil)
	}

	pending, err := provider.SubmitSignedBCSTransaction(ctx, signed)
	if err != nil {
		return fmt.Errorf("could not submit %s: %w", flags.function, err)
	}
	log.Info().Str("tx_hash", pending.Hash).Msg("transaction submitted, waiting for it to be committed")
	committed, err := provider.WaitForTransaction(ctx, pending.Hash)
	if err != nil {
		return err
	}
	return printSigned(cmd, signed, committed)
}

func printSigned(cmd *cobra.Command, signed []byte, committed *rest.Transaction) error {
	tx, err := bcs.FromBytes(signed, moveup.DeserializeSignedTransaction)
	if err != nil {
		return err
	}
	h, err := tx.Hash()
	if err != nil {
		return err
	}
	return printJSON(cmd, signOutput{
		Hash:              h.Hex(),
		SignedTransaction: "0x" + hex.EncodeToString(signed),
		Committed:         committed,
	})
}
