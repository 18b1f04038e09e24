package unittest

import (
	crand "crypto/rand"
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"

	"github.com/moveup-labs/moveup-go-sdk/crypto"
	"github.com/moveup-labs/moveup-go-sdk/model/bcs"
	"github.com/moveup-labs/moveup-go-sdk/model/moveup"
	"github.com/moveup-labs/moveup-go-sdk/model/rest"
)

const (
	// TestPrivateKeyHex is the key the golden vectors are signed with.
	TestPrivateKeyHex = "13aafc825347cc74fe63189ff1766b65957c94a81920c2d65ae6fbec8b71ba28"
	// TestMnemonic is a well known development mnemonic.
	TestMnemonic = "shoot island position soft burden budget tooth cruel issue economy destroy above"

	// TransferRawTransactionHex is the encoding of TransferTransactionFixture.
	TransferRawTransactionHex = "000000000000000000000000000000000a550c18" + "0000000000000000" +
		"02" + "0000000000000000000000000000000000001222" + "03657468" + "087472616e73666572" + "00" +
		"02" + "0700000000000000000000000000000000000000dd" + "0401000000000000000000000000000000" +
		"d007000000000000" + "0000000000000000" + "ffffffffffffffff" + "04"
	// TransferSignatureHex is the native signature of TransferTransactionFixture by TestPrivateKeyHex.
	TransferSignatureHex = "ab06c1501b4098e05fe38572c60f19da5ed7dce867fede1c137cafcaf1da365a453b911c560ee241890800184e860edaf6404c0a5340ce3a8a3264e02ca8a891"
)

// returns a deterministic math/rand PRG that can be used for deterministic randomness in tests only.
// The PRG seed is logged in case the test iteration needs to be reproduced.
func GetPRG(t *testing.T) *rand.Rand {
	random := time.Now().UnixNano()
	t.Logf("rng seed is %d", random)
	rng := rand.New(rand.NewSource(random))
	return rng
}

func AddressFixture() moveup.AccountAddress {
	return moveup.MustHexToAddress("0x0a550c18")
}

func RandomAddressFixture() moveup.AccountAddress {
	var addr moveup.AccountAddress
	_, _ = crand.Read(addr[:])
	return addr
}

func SeedFixture(n int) []byte {
	var seed = make([]byte, n)
	_, _ = crand.Read(seed)
	return seed
}

// PrivateKeyFixture returns the key the golden vectors are signed with.
func PrivateKeyFixture(t testing.TB) *crypto.PrivateKey {
	sk, err := crypto.DecodePrivateKeyHex(TestPrivateKeyHex)
	require.NoError(t, err)
	return sk
}

func RandomPrivateKeyFixture(t testing.TB) *crypto.PrivateKey {
	sk, err := crypto.GeneratePrivateKey()
	require.NoError(t, err)
	return sk
}

// TransferTransactionFixture returns a call of 0x1222::eth::transfer(0xdd, 1u128) sent by 0x0a550c18
// on chain 4. Its encoding is TransferRawTransactionHex.
func TransferTransactionFixture(t testing.TB) moveup.RawTransaction {
	ef, err := moveup.NaturalEntryFunction("0x1222::eth", "transfer", nil, []moveup.EntryFunctionArgument{
		moveup.EntryFunctionArgumentAddress{Value: moveup.MustHexToAddress("0xdd")},
		moveup.EntryFunctionArgumentU128{Value: *uint256.NewInt(1)},
	})
	require.NoError(t, err)
	return moveup.RawTransaction{
		Sender:                  AddressFixture(),
		SequenceNumber:          0,
		Payload:                 moveup.TransactionPayloadEntryFunction{EntryFunction: ef},
		MaxGasAmount:            2000,
		GasUnitPrice:            0,
		ExpirationTimestampSecs: math.MaxUint64,
		ChainID:                 4,
	}
}

// TransferABIFixture returns the encoded ABI of 0x1222::eth::transfer(address, u128).
func TransferABIFixture(t testing.TB) []byte {
	return EntryFunctionABIFixture(t, "0x1222::eth", "transfer", nil,
		moveup.ArgumentABI{Name: "to", TypeTag: moveup.TypeTagAddress{}},
		moveup.ArgumentABI{Name: "amount", TypeTag: moveup.TypeTagU128{}},
	)
}

// EntryFunctionABIFixture encodes the ABI of an entry function of the given module.
func EntryFunctionABIFixture(t testing.TB, module string, name string, typeArgs []string, args ...moveup.ArgumentABI) []byte {
	moduleID, err := moveup.ParseModuleId(module)
	require.NoError(t, err)
	typeArgABIs := make([]moveup.TypeArgumentABI, len(typeArgs))
	for i, ty := range typeArgs {
		typeArgABIs[i] = moveup.TypeArgumentABI{Name: ty}
	}
	if args == nil {
		args = []moveup.ArgumentABI{}
	}
	encoded, err := bcs.ToBytes(moveup.EntryFunctionABI{
		FunctionName: name,
		Module:       moduleID,
		Doc:          name + " doc",
		TypeArgs:     typeArgABIs,
		Args:         args,
	})
	require.NoError(t, err)
	return encoded
}

// ScriptABIFixture encodes the ABI of a script taking the given arguments.
func ScriptABIFixture(t testing.TB, name string, code []byte, args ...moveup.ArgumentABI) []byte {
	if args == nil {
		args = []moveup.ArgumentABI{}
	}
	encoded, err := bcs.ToBytes(moveup.TransactionScriptABI{
		ScriptName: name,
		Doc:        name + " doc",
		Code:       code,
		TypeArgs:   []moveup.TypeArgumentABI{},
		Args:       args,
	})
	require.NoError(t, err)
	return encoded
}

// MoveModuleFixture returns the JSON ABI of a module the node would serve for addr.
func MoveModuleFixture(addr moveup.AccountAddress, name string, functions ...rest.MoveFunction) rest.MoveModuleBytecode {
	return rest.MoveModuleBytecode{
		Bytecode: "0xa11ceb0b",
		ABI: &rest.MoveModule{
			Address:          addr,
			Name:             name,
			Friends:          []string{},
			ExposedFunctions: functions,
		},
	}
}

// EntryFunctionFixture returns the JSON ABI of a public entry function.
func EntryFunctionFixture(name string, genericParams int, params ...string) rest.MoveFunction {
	generics := make([]rest.MoveFunctionGenericTypeParam, genericParams)
	for i := range generics {
		generics[i] = rest.MoveFunctionGenericTypeParam{Constraints: []string{}}
	}
	return rest.MoveFunction{
		Name:              name,
		Visibility:        "public",
		IsEntry:           true,
		GenericTypeParams: generics,
		Params:            params,
		Return:            []string{},
	}
}
