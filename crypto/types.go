package crypto

//revive:disable:var-naming

// SigningAlgorithm is an identifier for a signing algorithm and curve.
type SigningAlgorithm int

const (
	UnknownSigningAlgorithm SigningAlgorithm = iota
	ECDSA_Secp256k1
)

// String returns the string representation of this signing algorithm.
func (f SigningAlgorithm) String() string {
	return [...]string{"UNKNOWN", "ECDSA_SECP256K1"}[f]
}

const (
	// SEC p256k1
	PrKeyLenECDSA_Secp256k1 = 32
	// uncompressed, 0x04 || X || Y
	PubKeyLenECDSA_Secp256k1 = 65
	// compact R || S
	SignatureLenECDSA_Secp256k1 = 64
	// R || S || V as produced by the signer
	RecoverableSignatureLen = 65
	// digests signed by the keys
	DigestLen = 32
)

// Signature is a compact R || S secp256k1 signature.
type Signature []byte
