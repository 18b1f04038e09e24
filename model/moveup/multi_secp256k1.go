package moveup

import (
	"math/bits"

	"github.com/moveup-labs/moveup-go-sdk/model/bcs"
)

const (
	// MaxSignaturesSupported bounds both the number of signers in a bitmap and the threshold.
	MaxSignaturesSupported = 32
	BitmapLength           = 4
)

// MultiSecp256k1PublicKey is a K-of-N public key. The transaction is valid if
// at least Threshold of the keys signed it.
type MultiSecp256k1PublicKey struct {
	PublicKeys []Secp256k1PublicKey
	Threshold  uint8
}

func NewMultiSecp256k1PublicKey(keys []Secp256k1PublicKey, threshold uint8) (MultiSecp256k1PublicKey, error) {
	if threshold > MaxSignaturesSupported {
		return MultiSecp256k1PublicKey{}, NewValidationErr(ThresholdTooLarge, "threshold %d exceeds %d", threshold, MaxSignaturesSupported)
	}
	return MultiSecp256k1PublicKey{PublicKeys: keys, Threshold: threshold}, nil
}

// Bytes returns p1 || ... || pn || threshold.
func (k MultiSecp256k1PublicKey) Bytes() []byte {
	b := make([]byte, 0, len(k.PublicKeys)*Secp256k1PublicKeyLength+1)
	for _, pk := range k.PublicKeys {
		b = append(b, pk[:]...)
	}
	return append(b, k.Threshold)
}

func (k MultiSecp256k1PublicKey) Serialize(s *bcs.Serializer) {
	s.Bytes(k.Bytes())
}

func DeserializeMultiSecp256k1PublicKey(d *bcs.Deserializer) (MultiSecp256k1PublicKey, error) {
	b, err := d.Bytes()
	if err != nil {
		return MultiSecp256k1PublicKey{}, err
	}
	if len(b) == 0 || (len(b)-1)%Secp256k1PublicKeyLength != 0 {
		return MultiSecp256k1PublicKey{}, NewValidationErr(InvalidKeyLength, "multi secp256k1 public key of %d bytes", len(b))
	}
	n := (len(b) - 1) / Secp256k1PublicKeyLength
	keys := make([]Secp256k1PublicKey, n)
	for i := range keys {
		copy(keys[i][:], b[i*Secp256k1PublicKeyLength:])
	}
	return NewMultiSecp256k1PublicKey(keys, b[len(b)-1])
}

// MultiSecp256k1Signature holds the signatures of the participating signers, ordered
// by signer index, and a bitmap marking which of the N keys signed.
type MultiSecp256k1Signature struct {
	Signatures []Secp256k1Signature
	Bitmap     [BitmapLength]byte
}

func NewMultiSecp256k1Signature(sigs []Secp256k1Signature, bitmap [BitmapLength]byte) (MultiSecp256k1Signature, error) {
	set := 0
	for _, b := range bitmap {
		set += bits.OnesCount8(b)
	}
	if set != len(sigs) {
		return MultiSecp256k1Signature{}, NewValidationErr(InvalidBitmap, "bitmap marks %d signers but %d signatures given", set, len(sigs))
	}
	return MultiSecp256k1Signature{Signatures: sigs, Bitmap: bitmap}, nil
}

// CreateBitmap sets one bit per signer index. Bits are read from the most
// significant bit of the first byte, so index 0 is 0x80 in byte 0.
func CreateBitmap(indices []uint8) ([BitmapLength]byte, error) {
	var bitmap [BitmapLength]byte
	seen := make(map[uint8]struct{}, len(indices))
	for _, i := range indices {
		if i >= MaxSignaturesSupported {
			return bitmap, NewValidationErr(InvalidBitmap, "signer index %d out of range", i)
		}
		if _, dup := seen[i]; dup {
			return bitmap, NewValidationErr(InvalidBitmap, "duplicate signer index %d", i)
		}
		seen[i] = struct{}{}
		bitmap[i/8] |= 0x80 >> (i % 8)
	}
	return bitmap, nil
}

// Bytes returns s1 || ... || sn || bitmap.
func (m MultiSecp256k1Signature) Bytes() []byte {
	b := make([]byte, 0, len(m.Signatures)*Secp256k1SignatureLength+BitmapLength)
	for _, sig := range m.Signatures {
		b = append(b, sig[:]...)
	}
	return append(b, m.Bitmap[:]...)
}

func (m MultiSecp256k1Signature) Serialize(s *bcs.Serializer) {
	s.Bytes(m.Bytes())
}

func DeserializeMultiSecp256k1Signature(d *bcs.Deserializer) (MultiSecp256k1Signature, error) {
	b, err := d.Bytes()
	if err != nil {
		return MultiSecp256k1Signature{}, err
	}
	if len(b) < BitmapLength || (len(b)-BitmapLength)%Secp256k1SignatureLength != 0 {
		return MultiSecp256k1Signature{}, NewValidationErr(InvalidSignatureLength, "multi secp256k1 signature of %d bytes", len(b))
	}
	n := (len(b) - BitmapLength) / Secp256k1SignatureLength
	sigs := make([]Secp256k1Signature, n)
	for i := range sigs {
		copy(sigs[i][:], b[i*Secp256k1SignatureLength:])
	}
	var bitmap [BitmapLength]byte
	copy(bitmap[:], b[len(b)-BitmapLength:])
	return NewMultiSecp256k1Signature(sigs, bitmap)
}
