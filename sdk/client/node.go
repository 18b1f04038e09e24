package client

import (
	"context"

	"github.com/moveup-labs/moveup-go-sdk/model/rest"
	"github.com/moveup-labs/moveup-go-sdk/sdk/abi"
)

// NodeAPI is the node REST API used by the builders and the provider.
type NodeAPI interface {
	abi.Node
	GetLedgerInfo(ctx context.Context) (*rest.IndexResponse, error)
	GetTransactionByHash(ctx context.Context, hash string) (*rest.Transaction, error)
	SubmitSignedBCSTransaction(ctx context.Context, signedTxn []byte) (*rest.PendingTransaction, error)
	// WaitForTransaction blocks until the transaction is committed. A committed but failed
	// transaction is reported as ErrTransactionFailed.
	WaitForTransaction(ctx context.Context, hash string) (*rest.Transaction, error)
}

var _ NodeAPI = (*Client)(nil)
