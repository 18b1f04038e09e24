package moveup_test

import (
	"github.com/holiman/uint256"
	"pgregory.net/rapid"

	"github.com/moveup-labs/moveup-go-sdk/model/moveup"
)

func addressGen() *rapid.Generator[moveup.AccountAddress] {
	return rapid.Custom(func(t *rapid.T) moveup.AccountAddress {
		var a moveup.AccountAddress
		copy(a[:], rapid.SliceOfN(rapid.Byte(), moveup.AddressLength, moveup.AddressLength).Draw(t, "address"))
		return a
	})
}

func identifierGen() *rapid.Generator[moveup.Identifier] {
	return rapid.Custom(func(t *rapid.T) moveup.Identifier {
		return moveup.Identifier(rapid.StringMatching(`[a-z][a-z0-9_]{0,8}`).Draw(t, "identifier"))
	})
}

func u128Gen() *rapid.Generator[uint256.Int] {
	return rapid.Custom(func(t *rapid.T) uint256.Int {
		return uint256.Int{rapid.Uint64().Draw(t, "lo"), rapid.Uint64().Draw(t, "hi"), 0, 0}
	})
}

func u256Gen() *rapid.Generator[uint256.Int] {
	return rapid.Custom(func(t *rapid.T) uint256.Int {
		var v uint256.Int
		for i := range v {
			v[i] = rapid.Uint64().Draw(t, "limb")
		}
		return v
	})
}

func typeTagGen(depth int) *rapid.Generator[moveup.TypeTag] {
	return rapid.Custom(func(t *rapid.T) moveup.TypeTag {
		leaves := []moveup.TypeTag{
			moveup.TypeTagBool{}, moveup.TypeTagU8{}, moveup.TypeTagU16{}, moveup.TypeTagU32{},
			moveup.TypeTagU64{}, moveup.TypeTagU128{}, moveup.TypeTagU256{},
			moveup.TypeTagAddress{}, moveup.TypeTagSigner{},
		}
		kind := 0
		if depth > 0 {
			kind = rapid.IntRange(0, 2).Draw(t, "kind")
		}
		switch kind {
		case 1:
			return moveup.TypeTagVector{Elem: typeTagGen(depth - 1).Draw(t, "elem")}
		case 2:
			return moveup.TypeTagStruct{Value: structTagGen(depth - 1).Draw(t, "struct")}
		default:
			return rapid.SampledFrom(leaves).Draw(t, "leaf")
		}
	})
}

func structTagGen(depth int) *rapid.Generator[moveup.StructTag] {
	return rapid.Custom(func(t *rapid.T) moveup.StructTag {
		return moveup.StructTag{
			Address:  addressGen().Draw(t, "address"),
			Module:   identifierGen().Draw(t, "module"),
			Name:     identifierGen().Draw(t, "name"),
			TypeArgs: rapid.SliceOfN(typeTagGen(depth), 0, 2).Draw(t, "type_args"),
		}
	})
}

func transactionArgumentGen() *rapid.Generator[moveup.TransactionArgument] {
	return rapid.OneOf(
		rapid.Custom(func(t *rapid.T) moveup.TransactionArgument {
			return moveup.TransactionArgumentU8{Value: rapid.Uint8().Draw(t, "v")}
		}),
		rapid.Custom(func(t *rapid.T) moveup.TransactionArgument {
			return moveup.TransactionArgumentU16{Value: rapid.Uint16().Draw(t, "v")}
		}),
		rapid.Custom(func(t *rapid.T) moveup.TransactionArgument {
			return moveup.TransactionArgumentU32{Value: rapid.Uint32().Draw(t, "v")}
		}),
		rapid.Custom(func(t *rapid.T) moveup.TransactionArgument {
			return moveup.TransactionArgumentU64{Value: rapid.Uint64().Draw(t, "v")}
		}),
		rapid.Custom(func(t *rapid.T) moveup.TransactionArgument {
			return moveup.TransactionArgumentU128{Value: u128Gen().Draw(t, "v")}
		}),
		rapid.Custom(func(t *rapid.T) moveup.TransactionArgument {
			return moveup.TransactionArgumentU256{Value: u256Gen().Draw(t, "v")}
		}),
		rapid.Custom(func(t *rapid.T) moveup.TransactionArgument {
			return moveup.TransactionArgumentAddress{Value: addressGen().Draw(t, "v")}
		}),
		rapid.Custom(func(t *rapid.T) moveup.TransactionArgument {
			return moveup.TransactionArgumentU8Vector{Value: rapid.SliceOf(rapid.Byte()).Draw(t, "v")}
		}),
		rapid.Custom(func(t *rapid.T) moveup.TransactionArgument {
			return moveup.TransactionArgumentBool{Value: rapid.Bool().Draw(t, "v")}
		}),
	)
}

func entryFunctionArgumentGen(depth int) *rapid.Generator[moveup.EntryFunctionArgument] {
	return rapid.Custom(func(t *rapid.T) moveup.EntryFunctionArgument {
		last := 11
		if depth > 0 {
			last = 15
		}
		switch rapid.IntRange(0, last).Draw(t, "variant") {
		case 0:
			return moveup.EntryFunctionArgumentU8{Value: rapid.Uint8().Draw(t, "v")}
		case 1:
			return moveup.EntryFunctionArgumentU16{Value: rapid.Uint16().Draw(t, "v")}
		case 2:
			return moveup.EntryFunctionArgumentU32{Value: rapid.Uint32().Draw(t, "v")}
		case 3:
			return moveup.EntryFunctionArgumentU64{Value: rapid.Uint64().Draw(t, "v")}
		case 4:
			return moveup.EntryFunctionArgumentU128{Value: u128Gen().Draw(t, "v")}
		case 5:
			return moveup.EntryFunctionArgumentU256{Value: u256Gen().Draw(t, "v")}
		case 6:
			return moveup.EntryFunctionArgumentBool{Value: rapid.Bool().Draw(t, "v")}
		case 7:
			return moveup.EntryFunctionArgumentAddress{Value: addressGen().Draw(t, "v")}
		case 8:
			return moveup.EntryFunctionArgumentString{Value: rapid.String().Draw(t, "v")}
		case 9:
			return moveup.EntryFunctionArgumentBcsBytes{Value: rapid.SliceOf(rapid.Byte()).Draw(t, "v")}
		case 10:
			return moveup.EntryFunctionArgumentFixedPoint32{Value: rapid.Uint64().Draw(t, "v")}
		case 11:
			return moveup.EntryFunctionArgumentObject{Value: addressGen().Draw(t, "v")}
		case 12:
			return moveup.EntryFunctionArgumentFixedPoint64{Value: u128Gen().Draw(t, "v")}
		case 13:
			return moveup.EntryFunctionArgumentVector{
				Elements: rapid.SliceOfN(entryFunctionArgumentGen(depth-1), 0, 3).Draw(t, "elements"),
			}
		case 14:
			if rapid.Bool().Draw(t, "present") {
				return moveup.EntryFunctionArgumentOption{Value: entryFunctionArgumentGen(depth - 1).Draw(t, "inner")}
			}
			return moveup.EntryFunctionArgumentOption{}
		default:
			fields := rapid.SliceOfN(rapid.Custom(func(t *rapid.T) moveup.StructField {
				return moveup.StructField{
					Name:  identifierGen().Draw(t, "field"),
					Value: entryFunctionArgumentGen(depth-1).Draw(t, "value"),
				}
			}), 0, 3).Draw(t, "fields")
			return moveup.EntryFunctionArgumentStruct{Tag: structTagGen(0).Draw(t, "tag"), Fields: fields}
		}
	})
}

func payloadGen() *rapid.Generator[moveup.TransactionPayload] {
	entryFunction := rapid.Custom(func(t *rapid.T) moveup.EntryFunction {
		return moveup.EntryFunction{
			Module:   moveup.ModuleId{Address: addressGen().Draw(t, "module_address"), Name: identifierGen().Draw(t, "module")},
			Function: identifierGen().Draw(t, "function"),
			TypeArgs: rapid.SliceOfN(typeTagGen(2), 0, 3).Draw(t, "type_args"),
			Args:     rapid.SliceOfN(entryFunctionArgumentGen(2), 0, 4).Draw(t, "args"),
		}
	})

	return rapid.OneOf(
		rapid.Custom(func(t *rapid.T) moveup.TransactionPayload {
			return moveup.TransactionPayloadScript{Script: moveup.Script{
				Code:     rapid.SliceOf(rapid.Byte()).Draw(t, "code"),
				TypeArgs: rapid.SliceOfN(typeTagGen(2), 0, 3).Draw(t, "type_args"),
				Args:     rapid.SliceOfN(transactionArgumentGen(), 0, 4).Draw(t, "args"),
			}}
		}),
		rapid.Custom(func(t *rapid.T) moveup.TransactionPayload {
			return moveup.TransactionPayloadEntryFunction{EntryFunction: entryFunction.Draw(t, "entry_function")}
		}),
		rapid.Custom(func(t *rapid.T) moveup.TransactionPayload {
			ms := moveup.MultiSig{MultisigAddress: addressGen().Draw(t, "multisig")}
			if rapid.Bool().Draw(t, "with_payload") {
				ms.Payload = &moveup.MultiSigTransactionPayload{EntryFunction: entryFunction.Draw(t, "entry_function")}
			}
			return moveup.TransactionPayloadMultisig{MultiSig: ms}
		}),
	)
}

func rawTransactionGen() *rapid.Generator[moveup.RawTransaction] {
	return rapid.Custom(func(t *rapid.T) moveup.RawTransaction {
		return moveup.RawTransaction{
			Sender:                  addressGen().Draw(t, "sender"),
			SequenceNumber:          rapid.Uint64().Draw(t, "sequence_number"),
			Payload:                 payloadGen().Draw(t, "payload"),
			MaxGasAmount:            rapid.Uint64().Draw(t, "max_gas"),
			GasUnitPrice:            rapid.Uint64().Draw(t, "gas_unit_price"),
			ExpirationTimestampSecs: rapid.Uint64().Draw(t, "expiration"),
			ChainID:                 moveup.ChainID(rapid.Uint8().Draw(t, "chain_id")),
		}
	})
}

func secp256k1PublicKeyGen() *rapid.Generator[moveup.Secp256k1PublicKey] {
	return rapid.Custom(func(t *rapid.T) moveup.Secp256k1PublicKey {
		var pk moveup.Secp256k1PublicKey
		copy(pk[:], rapid.SliceOfN(rapid.Byte(), len(pk), len(pk)).Draw(t, "public_key"))
		return pk
	})
}

func secp256k1SignatureGen() *rapid.Generator[moveup.Secp256k1Signature] {
	return rapid.Custom(func(t *rapid.T) moveup.Secp256k1Signature {
		var sig moveup.Secp256k1Signature
		copy(sig[:], rapid.SliceOfN(rapid.Byte(), len(sig), len(sig)).Draw(t, "signature"))
		return sig
	})
}

func accountAuthenticatorGen() *rapid.Generator[moveup.AccountAuthenticator] {
	return rapid.OneOf(
		rapid.Custom(func(t *rapid.T) moveup.AccountAuthenticator {
			return moveup.AccountAuthenticatorSecp256k1{
				PublicKey: secp256k1PublicKeyGen().Draw(t, "pk"),
				Signature: secp256k1SignatureGen().Draw(t, "sig"),
			}
		}),
		rapid.Custom(func(t *rapid.T) moveup.AccountAuthenticator {
			pk, sig := multiKeyGen(t)
			return moveup.AccountAuthenticatorMultiSecp256k1{PublicKey: pk, Signature: sig}
		}),
	)
}

func multiKeyGen(t *rapid.T) (moveup.MultiSecp256k1PublicKey, moveup.MultiSecp256k1Signature) {
	keys := rapid.SliceOfN(secp256k1PublicKeyGen(), 1, 4).Draw(t, "keys")
	indices := rapid.SliceOfNDistinct(rapid.IntRange(0, len(keys)-1), 1, len(keys), func(i int) int { return i }).Draw(t, "signers")
	sigs := make([]moveup.Secp256k1Signature, len(indices))
	bits := make([]uint8, len(indices))
	for i, idx := range indices {
		sigs[i] = secp256k1SignatureGen().Draw(t, "sig")
		bits[i] = uint8(idx)
	}
	bitmap, err := moveup.CreateBitmap(bits)
	if err != nil {
		t.Fatal(err)
	}
	return moveup.MultiSecp256k1PublicKey{PublicKeys: keys, Threshold: uint8(len(indices))},
		moveup.MultiSecp256k1Signature{Signatures: sigs, Bitmap: bitmap}
}

func transactionAuthenticatorGen() *rapid.Generator[moveup.TransactionAuthenticator] {
	return rapid.OneOf(
		rapid.Custom(func(t *rapid.T) moveup.TransactionAuthenticator {
			return moveup.TransactionAuthenticatorSecp256k1{
				PublicKey: secp256k1PublicKeyGen().Draw(t, "pk"),
				Signature: secp256k1SignatureGen().Draw(t, "sig"),
			}
		}),
		rapid.Custom(func(t *rapid.T) moveup.TransactionAuthenticator {
			pk, sig := multiKeyGen(t)
			return moveup.TransactionAuthenticatorMultiSecp256k1{PublicKey: pk, Signature: sig}
		}),
		rapid.Custom(func(t *rapid.T) moveup.TransactionAuthenticator {
			n := rapid.IntRange(0, 3).Draw(t, "secondary")
			addrs := make([]moveup.AccountAddress, n)
			signers := make([]moveup.AccountAuthenticator, n)
			for i := 0; i < n; i++ {
				addrs[i] = addressGen().Draw(t, "address")
				signers[i] = accountAuthenticatorGen().Draw(t, "signer")
			}
			return moveup.TransactionAuthenticatorMultiAgent{
				Sender:                   accountAuthenticatorGen().Draw(t, "sender"),
				SecondarySignerAddresses: addrs,
				SecondarySigners:         signers,
			}
		}),
	)
}
