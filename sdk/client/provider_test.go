package client_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moveup-labs/moveup-go-sdk/model/bcs"
	"github.com/moveup-labs/moveup-go-sdk/model/moveup"
	"github.com/moveup-labs/moveup-go-sdk/sdk/abi"
	"github.com/moveup-labs/moveup-go-sdk/sdk/account"
	"github.com/moveup-labs/moveup-go-sdk/sdk/client"
	"github.com/moveup-labs/moveup-go-sdk/sdk/eip712"
	"github.com/moveup-labs/moveup-go-sdk/sdk/txbuilder"
	"github.com/moveup-labs/moveup-go-sdk/utils/unittest"
)

var ethAddress = moveup.MustHexToAddress("0x1222")

func newProviderNode(t *testing.T, sender moveup.AccountAddress) *unittest.TestNode {
	node := unittest.NewTestNode(t, 4)
	node.SetAccount(sender, 5)
	node.SetGasEstimate(150)
	node.AddModules(ethAddress, unittest.MoveModuleFixture(ethAddress, "eth",
		unittest.EntryFunctionFixture("transfer", 0, "&signer", "address", "u128"),
	))
	return node
}

func TestProviderBuildSignSubmit(t *testing.T) {
	a, err := account.NewAccount(unittest.PrivateKeyFixture(t), nil)
	require.NoError(t, err)
	node := newProviderNode(t, a.Address())

	provider, err := client.NewProvider(unittest.Logger(), newClient(t, testConfig(node.URL())),
		client.WithBuilderDefaults(abi.BuilderConfig{MaxGasAmount: 5000}),
	)
	require.NoError(t, err)
	ctx := context.Background()

	tx, err := provider.BuildSignSubmit(ctx, a, "0x1222::eth::transfer", nil, []interface{}{"0xdd", "100"})
	require.NoError(t, err)
	assert.True(t, tx.Success)

	_, err = provider.BuildSignSubmit(ctx, a, "0x1222::eth::transfer", nil, []interface{}{"0xdd", "100"})
	require.NoError(t, err)

	submitted := node.Submitted()
	require.Len(t, submitted, 2)
	for i, signed := range submitted {
		raw := signed.RawTxn
		assert.Equal(t, a.Address(), raw.Sender)
		assert.Equal(t, uint64(5+i), raw.SequenceNumber, "sequence number is read from the node")
		assert.Equal(t, uint64(150), raw.GasUnitPrice)
		assert.Equal(t, uint64(5000), raw.MaxGasAmount)
		assert.Equal(t, moveup.ChainID(4), raw.ChainID)

		auth, ok := signed.Authenticator.(moveup.TransactionAuthenticatorSecp256k1)
		require.True(t, ok)
		assert.Equal(t, a.PubKey(), auth.PublicKey)
		msg, err := raw.SigningMessage()
		require.NoError(t, err)
		assert.True(t, a.VerifySignature(msg, auth.Signature))
	}

	assert.Equal(t, 1, node.Requests(unittest.RouteAccountModules), "the abi is cached across builders")
}

func TestProviderEIP712(t *testing.T) {
	a, err := account.GenerateAccount()
	require.NoError(t, err)
	node := newProviderNode(t, a.Address())

	provider, err := client.NewProvider(unittest.Logger(), newClient(t, testConfig(node.URL())),
		client.WithScheme(txbuilder.SchemeEIP712),
	)
	require.NoError(t, err)

	raw, signed, err := provider.BuildAndSign(context.Background(), a, "0x1222::eth::transfer", nil, []interface{}{"0xdd", 1})
	require.NoError(t, err)
	assert.Equal(t, abi.DefaultMaxGasAmount, raw.MaxGasAmount)
	assert.Empty(t, node.Submitted())

	decoded, err := bcs.FromBytes(signed, moveup.DeserializeSignedTransaction)
	require.NoError(t, err)
	assert.Equal(t, raw, decoded.RawTxn)

	digest, err := eip712.RawTransactionDigest(raw)
	require.NoError(t, err)
	auth := decoded.Authenticator.(moveup.TransactionAuthenticatorSecp256k1)
	assert.True(t, a.PrivateKey().PublicKey().VerifyDigest(auth.Signature.Bytes(), digest))
}

func TestProviderErrors(t *testing.T) {
	a, err := account.GenerateAccount()
	require.NoError(t, err)
	node := newProviderNode(t, a.Address())
	node.SetFailTransactions(true)

	provider, err := client.NewProvider(unittest.Logger(), newClient(t, testConfig(node.URL())))
	require.NoError(t, err)
	ctx := context.Background()

	_, err = provider.BuildSignSubmit(ctx, a, "0x1222::eth::withdraw", nil, nil)
	assert.True(t, abi.IsLookupKind(err, abi.FunctionNotFound))

	_, err = provider.BuildSignSubmit(ctx, a, "0x1222::eth::transfer", nil, []interface{}{"0xdd", 1})
	assert.True(t, client.IsErrTransactionFailed(err))

	stranger, err := account.GenerateAccount()
	require.NoError(t, err)
	_, err = provider.BuildSignSubmit(ctx, stranger, "0x1222::eth::transfer", nil, []interface{}{"0xdd", 1})
	assert.True(t, client.IsNotFound(err), "unknown senders have no sequence number")
}
