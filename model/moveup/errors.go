package moveup

import (
	"errors"
	"fmt"
)

// ErrUnknownVariant indicates that a tagged union was decoded with a discriminant
// this package does not know about.
type ErrUnknownVariant struct {
	Type string
	Tag  uint32
}

func (e ErrUnknownVariant) Error() string {
	return fmt.Sprintf("unknown variant index %d for %s", e.Tag, e.Type)
}

// NewUnknownVariantErr returns a new ErrUnknownVariant
func NewUnknownVariantErr(typ string, tag uint32) ErrUnknownVariant {
	return ErrUnknownVariant{Type: typ, Tag: tag}
}

// IsErrUnknownVariant returns true if an error is ErrUnknownVariant
func IsErrUnknownVariant(err error) bool {
	var e ErrUnknownVariant
	return errors.As(err, &e)
}

// ValidationKind classifies malformed caller input.
type ValidationKind string

const (
	InvalidDerivationPath  ValidationKind = "invalid derivation path"
	InvalidBitmap          ValidationKind = "invalid bitmap"
	WrongArgumentCount     ValidationKind = "wrong number of arguments"
	ThresholdTooLarge      ValidationKind = "threshold too large"
	InvalidModuleIdString  ValidationKind = "invalid module id"
	InvalidIdentifier      ValidationKind = "invalid identifier"
	InvalidAddress         ValidationKind = "invalid account address"
	InvalidTypeTag         ValidationKind = "invalid type tag"
	InvalidArgument        ValidationKind = "invalid argument"
	InvalidKeyLength       ValidationKind = "invalid key length"
	InvalidSignatureLength ValidationKind = "invalid signature length"
	InvalidSignature       ValidationKind = "invalid signature"
)

// ErrValidation is returned at construction time when caller input is malformed.
type ErrValidation struct {
	Kind ValidationKind
	msg  string
}

func (e ErrValidation) Error() string {
	if e.msg == "" {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.msg)
}

// NewValidationErr returns a new ErrValidation of the given kind.
func NewValidationErr(kind ValidationKind, msg string, args ...interface{}) ErrValidation {
	return ErrValidation{Kind: kind, msg: fmt.Sprintf(msg, args...)}
}

// IsErrValidation returns true if an error is ErrValidation
func IsErrValidation(err error) bool {
	var e ErrValidation
	return errors.As(err, &e)
}

// IsValidationKind returns true if err is an ErrValidation of the given kind.
func IsValidationKind(err error, kind ValidationKind) bool {
	var e ErrValidation
	return errors.As(err, &e) && e.Kind == kind
}
