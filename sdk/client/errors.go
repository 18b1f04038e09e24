package client

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrWaitForTransactionTimeout is returned when a submitted transaction is not committed in time.
var ErrWaitForTransactionTimeout = errors.New("timed out waiting for transaction")

// RequestError is returned when the node answers with a non 2xx status.
type RequestError struct {
	Route       string
	StatusCode  int
	ErrorCode   string
	Message     string
	VMErrorCode *int
}

func (e *RequestError) Error() string {
	if e.ErrorCode == "" {
		return fmt.Sprintf("%s: node returned %d: %s", e.Route, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: node returned %d (%s): %s", e.Route, e.StatusCode, e.ErrorCode, e.Message)
}

// IsRequestError returns true if err is a RequestError
func IsRequestError(err error) bool {
	var e *RequestError
	return errors.As(err, &e)
}

// IsNotFound returns true if the node answered with 404.
func IsNotFound(err error) bool {
	var e *RequestError
	return errors.As(err, &e) && e.StatusCode == http.StatusNotFound
}

// ErrTransactionFailed is returned when a transaction was committed but its execution failed.
type ErrTransactionFailed struct {
	Hash     string
	VMStatus string
}

func (e ErrTransactionFailed) Error() string {
	return fmt.Sprintf("transaction %s failed: %s", e.Hash, e.VMStatus)
}

// NewTransactionFailedErr returns a new ErrTransactionFailed
func NewTransactionFailedErr(hash string, vmStatus string) ErrTransactionFailed {
	return ErrTransactionFailed{Hash: hash, VMStatus: vmStatus}
}

// IsErrTransactionFailed returns true if an error is ErrTransactionFailed
func IsErrTransactionFailed(err error) bool {
	var e ErrTransactionFailed
	return errors.As(err, &e)
}
