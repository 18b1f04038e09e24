package account_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moveup-labs/moveup-go-sdk/crypto"
	"github.com/moveup-labs/moveup-go-sdk/model/moveup"
	"github.com/moveup-labs/moveup-go-sdk/sdk/account"
)

const testMnemonic = "shoot island position soft burden budget tooth cruel issue economy destroy above"

var testObject = account.PrivateKeyObject{
	Address:       "0xdaa27e14c3c801389746ca06f4729c24c9802990",
	PublicKeyHex:  "0x049d623f9c5ef8302f4c1455e05cdefb6c5bc5d44dde7248528ab634707fe24c87a220acec3450e1811cff011785f265fa634498781f2519000b7b4b864d1f79d7",
	PrivateKeyHex: "0x13aafc825347cc74fe63189ff1766b65957c94a81920c2d65ae6fbec8b71ba28",
}

func TestGenerateAccount(t *testing.T) {
	a1, err := account.GenerateAccount()
	require.NoError(t, err)
	a2, err := account.GenerateAccount()
	require.NoError(t, err)

	assert.NotEqual(t, a1.AuthKey(), a2.AuthKey())
	assert.NotEqual(t, a1.Address(), a2.Address())
	assert.Equal(t, a1.AuthKey().DerivedAddress(), a1.Address())
}

func TestFromDerivePath(t *testing.T) {
	a, err := account.FromDerivePath("m/44'/60'/0'/0'/0'", testMnemonic)
	require.NoError(t, err)
	assert.Equal(t, "0x98b124afa4eaa730864079c71a2a0948ea947c9f", a.Address().ShortHex())

	for _, path := range []string{"", "m/44'/60'/0'/0/0", "m/44'/637'/0'/0'/0'", "m/44'/60'/0'/0'"} {
		_, err := account.FromDerivePath(path, testMnemonic)
		assert.True(t, moveup.IsValidationKind(err, moveup.InvalidDerivationPath), path)
	}

	_, err = account.FromDerivePath("m/44'/60'/0'/0'/0'", "not a mnemonic")
	require.Error(t, err)
	assert.True(t, crypto.IsInvalidInputsError(err))
}

func TestIsValidPath(t *testing.T) {
	assert.True(t, account.IsValidPath("m/44'/60'/12'/3'/456'"))
	assert.False(t, account.IsValidPath("m/44'/60'/a'/0'/0'"))
}

func TestCustomAddress(t *testing.T) {
	sk, err := crypto.GeneratePrivateKey()
	require.NoError(t, err)
	addr := moveup.MustHexToAddress("0x777")

	a, err := account.NewAccount(sk, &addr)
	require.NoError(t, err)
	assert.Equal(t, "0x777", a.Address().ShortHex())
	assert.NotEqual(t, addr, a.AuthKey().DerivedAddress())
}

func TestPrivateKeyObject(t *testing.T) {
	a, err := account.FromPrivateKeyObject(testObject)
	require.NoError(t, err)
	assert.Equal(t, testObject.Address, a.Address().Hex())
	assert.Equal(t, testObject.PublicKeyHex, a.PubKey().Hex())

	withoutAddress, err := account.FromPrivateKeyObject(account.PrivateKeyObject{PrivateKeyHex: testObject.PrivateKeyHex})
	require.NoError(t, err)
	assert.Equal(t, a.Address(), withoutAddress.Address())
	assert.Equal(t, testObject, withoutAddress.ToPrivateKeyObject())

	_, err = account.FromPrivateKeyObject(account.PrivateKeyObject{PrivateKeyHex: "0xzz"})
	assert.Error(t, err)
}

func TestPrivateKeyObjectJSON(t *testing.T) {
	generated, err := account.GenerateAccount()
	require.NoError(t, err)

	b, err := json.Marshal(generated.ToPrivateKeyObject())
	require.NoError(t, err)

	var obj account.PrivateKeyObject
	require.NoError(t, json.Unmarshal(b, &obj))
	restored, err := account.FromPrivateKeyObject(obj)
	require.NoError(t, err)

	assert.Equal(t, generated.AuthKey(), restored.AuthKey())
	assert.Equal(t, generated.Address(), restored.Address())
}

func TestSign(t *testing.T) {
	a, err := account.FromPrivateKeyObject(testObject)
	require.NoError(t, err)

	sig, err := a.SignHexString("0x7777")
	require.NoError(t, err)
	assert.Equal(t, "0x9e7b52594a02fd3a01ac381cfae8a50d2413ae7acd2b6dbcc5235d978186599d219119c2d8534d9f18b33b0a7311a58fa468d5dd775d46c83b8501b46fb1c773", sig.Hex())

	again, err := a.SignBuffer([]byte{0x77, 0x77})
	require.NoError(t, err)
	assert.Equal(t, sig, again)

	assert.True(t, a.VerifySignature([]byte{0x77, 0x77}, sig))
	assert.False(t, a.VerifySignature([]byte{0x77}, sig))

	_, err = a.SignHexString("0x7")
	assert.True(t, moveup.IsValidationKind(err, moveup.InvalidArgument))

	_, err = a.SignDigest([]byte{1, 2, 3})
	assert.True(t, crypto.IsInvalidInputsError(err))
}
