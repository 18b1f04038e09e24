package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/moveup-labs/moveup-go-sdk/config"
	"github.com/moveup-labs/moveup-go-sdk/crypto"
	"github.com/moveup-labs/moveup-go-sdk/model/encoding"
	"github.com/moveup-labs/moveup-go-sdk/model/encoding/cbor"
	"github.com/moveup-labs/moveup-go-sdk/model/encoding/json"
	"github.com/moveup-labs/moveup-go-sdk/model/encoding/yaml"
	"github.com/moveup-labs/moveup-go-sdk/sdk/account"
)

// NewRootCmd returns the moveup command with all subcommands attached.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "moveup",
		Short:         "Build, sign and inspect Moveup transactions",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	config.InitializeFlags(root.PersistentFlags(), config.DefaultConfig())

	root.AddCommand(
		newAccountCmd(),
		newResourceAccountCmd(),
		newSignCmd(),
		newDecodeCmd(),
		newSigningMessageCmd(),
	)
	return root
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads the configuration and builds the command logger. Logs go to stderr so
// that stdout only carries the command output.
func loadConfig(cmd *cobra.Command) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	level, err := cfg.Level()
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr(), TimeFormat: time.RFC3339}).
		Level(level).
		With().
		Timestamp().
		Logger()
	return cfg, log, nil
}

// loadAccount returns the account of a hex private key, or of a mnemonic at a derivation path.
func loadAccount(privateKey string, mnemonic string, path string) (*account.Account, error) {
	switch {
	case privateKey != "" && mnemonic != "":
		return nil, fmt.Errorf("only one of --private-key and --mnemonic can be set")
	case privateKey != "":
		sk, err := crypto.DecodePrivateKeyHex(privateKey)
		if err != nil {
			return nil, err
		}
		return account.NewAccount(sk, nil)
	case mnemonic != "":
		return account.FromDerivePath(path, mnemonic)
	default:
		return nil, fmt.Errorf("one of --private-key and --mnemonic is required")
	}
}

func decodeHexArg(s string) ([]byte, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(s), "0x"), "0X")
	b, err := hexutil.Decode("0x" + s)
	if err != nil {
		return nil, fmt.Errorf("invalid hex %q: %w", s, err)
	}
	return b, nil
}

func printJSON(cmd *cobra.Command, val interface{}) error {
	return printEncoded(cmd, encoding.FormatJSON, val)
}

func printEncoded(cmd *cobra.Command, format encoding.Format, val interface{}) error {
	var encoder encoding.Encoder
	switch format {
	case encoding.FormatJSON:
		encoder = json.NewEncoder()
	case encoding.FormatYAML:
		encoder = yaml.NewEncoder()
	case encoding.FormatCBOR:
		encoder = cbor.NewEncoder()
	default:
		return fmt.Errorf("unknown format %q", format)
	}

	b, err := encoder.Encode(val)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), format.Render(b))
	return err
}
