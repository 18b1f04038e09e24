package crypto

import (
	"strings"

	hdwallet "github.com/miguelmota/go-ethereum-hdwallet"
	"github.com/tyler-smith/go-bip32"
	"github.com/tyler-smith/go-bip39"
)

// NormalizeMnemonic trims, lowercases and collapses whitespace in a seed phrase.
func NormalizeMnemonic(mnemonic string) string {
	return strings.Join(strings.Fields(strings.ToLower(mnemonic)), " ")
}

// GenerateMnemonic returns a new BIP39 seed phrase with the given entropy size in bits.
func GenerateMnemonic(bits int) (string, error) {
	entropy, err := bip39.NewEntropy(bits)
	if err != nil {
		return "", invalidInputsErrorf("entropy: %w", err)
	}
	return bip39.NewMnemonic(entropy)
}

func seedFromMnemonic(mnemonic string) ([]byte, error) {
	mnemonic = NormalizeMnemonic(mnemonic)
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, invalidInputsErrorf("invalid mnemonic")
	}
	return bip39.NewSeed(mnemonic, ""), nil
}

// DeriveFromMnemonic derives the secp256k1 key at the BIP32 path from a BIP39 seed phrase.
func DeriveFromMnemonic(mnemonic string, path string) (*PrivateKey, error) {
	seed, err := seedFromMnemonic(mnemonic)
	if err != nil {
		return nil, err
	}
	derivationPath, err := hdwallet.ParseDerivationPath(path)
	if err != nil {
		return nil, invalidInputsErrorf("derivation path %q: %w", path, err)
	}

	wallet, err := hdwallet.NewFromSeed(seed)
	if err != nil {
		return nil, err
	}
	account, err := wallet.Derive(derivationPath, false)
	if err != nil {
		return nil, err
	}
	key, err := wallet.PrivateKey(account)
	if err != nil {
		return nil, err
	}
	return &PrivateKey{key: key}, nil
}

// ExtendedPublicKey returns the serialized BIP32 extended public key (xpub) at path.
func ExtendedPublicKey(mnemonic string, path string) (string, error) {
	seed, err := seedFromMnemonic(mnemonic)
	if err != nil {
		return "", err
	}
	derivationPath, err := hdwallet.ParseDerivationPath(path)
	if err != nil {
		return "", invalidInputsErrorf("derivation path %q: %w", path, err)
	}

	key, err := bip32.NewMasterKey(seed)
	if err != nil {
		return "", err
	}
	for _, index := range derivationPath {
		key, err = key.NewChildKey(index)
		if err != nil {
			return "", err
		}
	}
	return key.PublicKey().String(), nil
}
