package moveup_test

import (
	"encoding/hex"
	"math"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/moveup-labs/moveup-go-sdk/crypto"
	"github.com/moveup-labs/moveup-go-sdk/model/bcs"
	"github.com/moveup-labs/moveup-go-sdk/model/moveup"
)

const (
	testPrivateKey = "13aafc825347cc74fe63189ff1766b65957c94a81920c2d65ae6fbec8b71ba28"
	testPublicKey  = "049d623f9c5ef8302f4c1455e05cdefb6c5bc5d44dde7248528ab634707fe24c87a220acec3450e1811cff011785f265fa634498781f2519000b7b4b864d1f79d7"

	transferRawTxn = "000000000000000000000000000000000a550c18" + "0000000000000000" +
		"02" + "0000000000000000000000000000000000001222" + "03657468" + "087472616e73666572" + "00" +
		"02" + "0700000000000000000000000000000000000000dd" + "0401000000000000000000000000000000" +
		"d007000000000000" + "0000000000000000" + "ffffffffffffffff" + "04"
	transferSignature = "ab06c1501b4098e05fe38572c60f19da5ed7dce867fede1c137cafcaf1da365a453b911c560ee241890800184e860edaf6404c0a5340ce3a8a3264e02ca8a891"
	transferHash      = "0xbeb0f1e21e22412e2aaa057f5461085d56f55958e003e5e0f6ce7cd54254609c"

	multiAgentSignature = "1e131f14e7c1559832e6e6610a0d8b8b03380c6746934838b953b95f98bff46f2e68f3379ea47de6c804ad1a1985fbb02f91797c7563843d6b008a2b43ecab2f"
)

func transferTransaction(t testing.TB) moveup.RawTransaction {
	ef, err := moveup.NaturalEntryFunction("0x1222::eth", "transfer", nil, []moveup.EntryFunctionArgument{
		moveup.EntryFunctionArgumentAddress{Value: moveup.MustHexToAddress("0xdd")},
		moveup.EntryFunctionArgumentU128{Value: *uint256.NewInt(1)},
	})
	require.NoError(t, err)
	return moveup.RawTransaction{
		Sender:                  moveup.MustHexToAddress("0x0a550c18"),
		SequenceNumber:          0,
		Payload:                 moveup.TransactionPayloadEntryFunction{EntryFunction: ef},
		MaxGasAmount:            2000,
		GasUnitPrice:            0,
		ExpirationTimestampSecs: math.MaxUint64,
		ChainID:                 4,
	}
}

func testKey(t testing.TB) (*crypto.PrivateKey, moveup.Secp256k1PublicKey) {
	sk, err := crypto.DecodePrivateKeyHex(testPrivateKey)
	require.NoError(t, err)
	pk, err := moveup.NewSecp256k1PublicKey(sk.PublicKey().Encode())
	require.NoError(t, err)
	require.Equal(t, testPublicKey, hex.EncodeToString(pk.Bytes()))
	return sk, pk
}

func signMessage(t testing.TB, sk *crypto.PrivateKey, msg []byte) moveup.Secp256k1Signature {
	raw, err := sk.Sign(msg)
	require.NoError(t, err)
	sig, err := moveup.NewSecp256k1Signature(raw)
	require.NoError(t, err)
	return sig
}

func TestRawTransactionEncoding(t *testing.T) {
	tx := transferTransaction(t)
	assert.Equal(t, transferRawTxn, encodeHex(t, tx))

	msg, err := tx.SigningMessage()
	require.NoError(t, err)
	assert.Equal(t, "2b289b50132e50e80a20e9a83d7809c899198dad18004e6b5071dcf3144f8fd1"+transferRawTxn, hex.EncodeToString(msg))

	decoded, err := bcs.FromBytes(mustDecodeHex(t, transferRawTxn), moveup.DeserializeRawTransaction)
	require.NoError(t, err)
	assert.Equal(t, tx, decoded)
}

func TestSignedTransaction(t *testing.T) {
	sk, pk := testKey(t)
	tx := transferTransaction(t)

	msg, err := tx.SigningMessage()
	require.NoError(t, err)
	sig := signMessage(t, sk, msg)
	assert.Equal(t, transferSignature, hex.EncodeToString(sig.Bytes()))

	signed := moveup.SignedTransaction{
		RawTxn:        tx,
		Authenticator: moveup.TransactionAuthenticatorSecp256k1{PublicKey: pk, Signature: sig},
	}
	encoded := encodeHex(t, signed)
	assert.Equal(t, transferRawTxn+"0341"+testPublicKey+"40"+transferSignature, encoded)

	h, err := signed.Hash()
	require.NoError(t, err)
	assert.Equal(t, transferHash, h.Hex())

	decoded, err := bcs.FromBytes(mustDecodeHex(t, encoded), moveup.DeserializeSignedTransaction)
	require.NoError(t, err)
	assert.Equal(t, signed, decoded)
}

func TestMultiAgentTransaction(t *testing.T) {
	sk, pk := testKey(t)
	secondary := moveup.MustHexToAddress("0xdd")
	tx := moveup.MultiAgentRawTransaction{
		RawTxn:                   transferTransaction(t),
		SecondarySignerAddresses: []moveup.AccountAddress{secondary},
	}

	msg, err := tx.SigningMessage()
	require.NoError(t, err)
	assert.Equal(t,
		"f9b003ab796fdaf76487ca55cf3767ce142a692acd9c6aa43a8841857e61dc3e"+"00"+transferRawTxn+"01"+"00000000000000000000000000000000000000dd",
		hex.EncodeToString(msg))

	sig := signMessage(t, sk, msg)
	assert.Equal(t, multiAgentSignature, hex.EncodeToString(sig.Bytes()))

	auth := moveup.AccountAuthenticatorSecp256k1{PublicKey: pk, Signature: sig}
	signed := moveup.SignedTransaction{
		RawTxn: tx.RawTxn,
		Authenticator: moveup.TransactionAuthenticatorMultiAgent{
			Sender:                   auth,
			SecondarySignerAddresses: tx.SecondarySignerAddresses,
			SecondarySigners:         []moveup.AccountAuthenticator{auth},
		},
	}
	single := "0341" + testPublicKey + "40" + multiAgentSignature
	assert.Equal(t, transferRawTxn+"02"+single+"01"+"00000000000000000000000000000000000000dd"+"01"+single, encodeHex(t, signed))

	decodedData, err := bcs.FromBytes(mustDecodeHex(t, hex.EncodeToString(msg[32:])), moveup.DeserializeRawTransactionWithData)
	require.NoError(t, err)
	assert.Equal(t, tx, decodedData)
}

func TestScriptTransaction(t *testing.T) {
	// script with one type argument 0x1::eth::ETH and a u8 argument, signed by the test key
	signed := "000000000000000000000000000000000a550c1800000000000000000026a11ceb0b030000000105000100000000050601000000000000000600000000000000001a010201070000000000000000000000000000000000000001036574680345544800010002d0070000000000000000000000000000ffffffffffffffff040341049d623f9c5ef8302f4c1455e05cdefb6c5bc5d44dde7248528ab634707fe24c87a220acec3450e1811cff011785f265fa634498781f2519000b7b4b864d1f79d7408716198afd610b68786e1782ad9a89b4654127dceb0e219d675d695ba8da1dd66114d7109060daeb896decef16f11210a807aa77fd2b5a70f6e5e34dfd4328bf"

	decoded, err := bcs.FromBytes(mustDecodeHex(t, signed), moveup.DeserializeSignedTransaction)
	require.NoError(t, err)
	assert.Equal(t, signed, encodeHex(t, decoded))

	payload, ok := decoded.RawTxn.Payload.(moveup.TransactionPayloadScript)
	require.True(t, ok)
	eth, err := moveup.NewStructTag(moveup.CoreAddress, "eth", "ETH")
	require.NoError(t, err)
	assert.Equal(t, []moveup.TypeTag{moveup.TypeTagStruct{Value: eth}}, payload.Script.TypeArgs)
	assert.Equal(t, []moveup.TransactionArgument{moveup.TransactionArgumentU8{Value: 2}}, payload.Script.Args)
	assert.Equal(t, "a11ceb0b030000000105000100000000050601000000000000000600000000000000001a0102", hex.EncodeToString(payload.Script.Code))

	// the signature covers the salted signing message
	sk, _ := testKey(t)
	msg, err := decoded.RawTxn.SigningMessage()
	require.NoError(t, err)
	auth := decoded.Authenticator.(moveup.TransactionAuthenticatorSecp256k1)
	assert.True(t, sk.PublicKey().Verify(auth.Signature.Bytes(), msg))
}

func TestMultisigPayload(t *testing.T) {
	ef, err := moveup.NaturalEntryFunction("0x1::coin", "transfer", nil, nil)
	require.NoError(t, err)
	multisig := moveup.MustHexToAddress("0xabcd")

	withPayload := moveup.TransactionPayloadMultisig{MultiSig: moveup.MultiSig{
		MultisigAddress: multisig,
		Payload:         &moveup.MultiSigTransactionPayload{EntryFunction: ef},
	}}
	efHex := encodeHex(t, ef)
	assert.Equal(t, "03"+"000000000000000000000000000000000000abcd"+"01"+"00"+efHex, encodeHex(t, withPayload))

	stored := moveup.TransactionPayloadMultisig{MultiSig: moveup.MultiSig{MultisigAddress: multisig}}
	assert.Equal(t, "03"+"000000000000000000000000000000000000abcd"+"00", encodeHex(t, stored))

	for _, p := range []moveup.TransactionPayload{withPayload, stored} {
		decoded, err := bcs.FromBytes(mustDecodeHex(t, encodeHex(t, p)), moveup.DeserializeTransactionPayload)
		require.NoError(t, err)
		assert.Equal(t, p, decoded)
	}

	_, err = bcs.FromBytes(mustDecodeHex(t, "03"+"000000000000000000000000000000000000abcd"+"01"+"01"+efHex), moveup.DeserializeTransactionPayload)
	require.Error(t, err)
	assert.True(t, moveup.IsErrUnknownVariant(err))
}

func TestTransactionPayloadUnknownVariant(t *testing.T) {
	for _, tag := range []byte{0x01, 0x04} {
		_, err := moveup.DeserializeTransactionPayload(bcs.NewDeserializer([]byte{tag, 0x00}))
		require.Error(t, err)
		assert.True(t, moveup.IsErrUnknownVariant(err))
	}
}

func TestNaturalEntryFunction(t *testing.T) {
	ef, err := moveup.NaturalEntryFunction("0x1::coin", "transfer", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "0x1::coin::transfer", ef.FunctionID())
	assert.NotNil(t, ef.TypeArgs)
	assert.NotNil(t, ef.Args)

	_, err = moveup.NaturalEntryFunction("0x1::coin::transfer", "transfer", nil, nil)
	assert.True(t, moveup.IsValidationKind(err, moveup.InvalidModuleIdString))

	_, err = moveup.NaturalEntryFunction("0x1", "transfer", nil, nil)
	assert.True(t, moveup.IsValidationKind(err, moveup.InvalidModuleIdString))

	_, err = moveup.NaturalEntryFunction("0x1::coin", "1transfer", nil, nil)
	assert.True(t, moveup.IsValidationKind(err, moveup.InvalidIdentifier))
}

func TestTruncatedTransaction(t *testing.T) {
	b := mustDecodeHex(t, transferRawTxn)
	for _, n := range []int{0, 10, 28, 60, len(b) - 1} {
		_, err := bcs.FromBytes(b[:n], moveup.DeserializeRawTransaction)
		assert.ErrorIs(t, err, bcs.ErrOutOfBounds, "prefix of %d bytes", n)
	}

	_, err := bcs.FromBytes(append(b, 0x00), moveup.DeserializeRawTransaction)
	assert.ErrorIs(t, err, bcs.ErrTrailingBytes)
}

func TestRawTransactionRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		tx := rawTransactionGen().Draw(t, "tx")
		b, err := bcs.ToBytes(tx)
		require.NoError(t, err)

		decoded, err := bcs.FromBytes(b, moveup.DeserializeRawTransaction)
		require.NoError(t, err)

		again, err := bcs.ToBytes(decoded)
		require.NoError(t, err)
		require.Equal(t, b, again)
	})
}

func TestSignedTransactionRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		signed := moveup.SignedTransaction{
			RawTxn:        rawTransactionGen().Draw(t, "tx"),
			Authenticator: transactionAuthenticatorGen().Draw(t, "auth"),
		}
		b, err := bcs.ToBytes(signed)
		require.NoError(t, err)

		decoded, err := bcs.FromBytes(b, moveup.DeserializeSignedTransaction)
		require.NoError(t, err)

		again, err := bcs.ToBytes(decoded)
		require.NoError(t, err)
		require.Equal(t, b, again)

		h1, err := signed.Hash()
		require.NoError(t, err)
		h2, err := decoded.Hash()
		require.NoError(t, err)
		require.True(t, h1.Equal(h2))
	})
}
