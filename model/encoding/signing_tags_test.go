package encoding_test

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/moveup-labs/moveup-go-sdk/model/encoding"
)

func TestSalts(t *testing.T) {
	assert.Equal(t, "MOVEUP::RawTransaction", encoding.RawTransactionTag)
	assert.Equal(t, "2b289b50132e50e80a20e9a83d7809c899198dad18004e6b5071dcf3144f8fd1", hex.EncodeToString(encoding.RawTransactionSalt()))
	assert.Equal(t, "f9b003ab796fdaf76487ca55cf3767ce142a692acd9c6aa43a8841857e61dc3e", hex.EncodeToString(encoding.RawTransactionWithDataSalt()))
	assert.Equal(t, "50892bede709d42723f0b6ee35f88692fb97be8d7077096f293adc418e40b0a3", hex.EncodeToString(encoding.TransactionHashSalt()))
}

func TestSaltsAreCopies(t *testing.T) {
	salt := encoding.RawTransactionSalt()
	salt[0] ^= 0xff
	assert.NotEqual(t, salt, encoding.RawTransactionSalt())
}
