package abi

import (
	"errors"
	"fmt"
)

// LookupKind classifies why a function could not be resolved against the known ABIs.
type LookupKind string

const (
	FunctionNotFound         LookupKind = "function not found"
	ConflictingABIInterfaces LookupKind = "conflicting ABI interfaces"
	InvalidFunctionIdFormat  LookupKind = "invalid function id format"
)

// ErrLookup is returned when resolving an ABI by name fails.
type ErrLookup struct {
	Kind LookupKind
	Name string
}

func (e ErrLookup) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Name)
}

// NewLookupErr returns a new ErrLookup
func NewLookupErr(kind LookupKind, name string) ErrLookup {
	return ErrLookup{Kind: kind, Name: name}
}

// IsErrLookup returns true if an error is ErrLookup
func IsErrLookup(err error) bool {
	var e ErrLookup
	return errors.As(err, &e)
}

// IsLookupKind returns true if err is an ErrLookup of the given kind.
func IsLookupKind(err error, kind LookupKind) bool {
	var e ErrLookup
	return errors.As(err, &e) && e.Kind == kind
}
