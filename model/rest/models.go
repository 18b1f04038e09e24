package rest

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/moveup-labs/moveup-go-sdk/model/moveup"
)

// U64 is a 64 bit unsigned integer that travels as a decimal string in JSON.
type U64 uint64

func (u U64) MarshalJSON() ([]byte, error) {
	return json.Marshal(strconv.FormatUint(uint64(u), 10))
}

func (u *U64) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		// some endpoints return bare numbers
		var n uint64
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("invalid u64 %s: %w", data, err)
		}
		*u = U64(n)
		return nil
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid u64 %q: %w", s, err)
	}
	*u = U64(n)
	return nil
}

// IndexResponse is returned by the index endpoint ("/").
type IndexResponse struct {
	ChainID             uint8  `json:"chain_id"`
	Epoch               U64    `json:"epoch"`
	LedgerVersion       U64    `json:"ledger_version"`
	OldestLedgerVersion U64    `json:"oldest_ledger_version"`
	LedgerTimestamp     U64    `json:"ledger_timestamp"`
	NodeRole            string `json:"node_role"`
	OldestBlockHeight   U64    `json:"oldest_block_height"`
	BlockHeight         U64    `json:"block_height"`
	GitHash             string `json:"git_hash,omitempty"`
}

type AccountData struct {
	SequenceNumber    U64    `json:"sequence_number"`
	AuthenticationKey string `json:"authentication_key"`
}

type GasEstimation struct {
	DeprioritizedGasEstimate U64 `json:"deprioritized_gas_estimate,omitempty"`
	GasEstimate              U64 `json:"gas_estimate"`
	PrioritizedGasEstimate   U64 `json:"prioritized_gas_estimate,omitempty"`
}

// MoveModuleBytecode is a published module. ABI is nil when the node could not decode the bytecode.
type MoveModuleBytecode struct {
	Bytecode string      `json:"bytecode"`
	ABI      *MoveModule `json:"abi,omitempty"`
}

type MoveModule struct {
	Address          moveup.AccountAddress `json:"address"`
	Name             string                `json:"name"`
	Friends          []string              `json:"friends"`
	ExposedFunctions []MoveFunction        `json:"exposed_functions"`
}

type MoveFunctionGenericTypeParam struct {
	Constraints []string `json:"constraints"`
}

type MoveFunction struct {
	Name              string                         `json:"name"`
	Visibility        string                         `json:"visibility"`
	IsEntry           bool                           `json:"is_entry"`
	IsView            bool                           `json:"is_view"`
	GenericTypeParams []MoveFunctionGenericTypeParam `json:"generic_type_params"`
	Params            []string                       `json:"params"`
	Return            []string                       `json:"return"`
}

// EntryFunctions returns the functions of the module that can be called by a transaction.
func (m MoveModule) EntryFunctions() []MoveFunction {
	var fns []MoveFunction
	for _, fn := range m.ExposedFunctions {
		if fn.IsEntry {
			fns = append(fns, fn)
		}
	}
	return fns
}

type PendingTransaction struct {
	Hash                    string                `json:"hash"`
	Sender                  moveup.AccountAddress `json:"sender"`
	SequenceNumber          U64                   `json:"sequence_number"`
	MaxGasAmount            U64                   `json:"max_gas_amount"`
	GasUnitPrice            U64                   `json:"gas_unit_price"`
	ExpirationTimestampSecs U64                   `json:"expiration_timestamp_secs"`
}

// Transaction is the subset of a committed or pending transaction this client inspects.
type Transaction struct {
	Type     string `json:"type"`
	Hash     string `json:"hash"`
	Version  U64    `json:"version,omitempty"`
	Success  bool   `json:"success"`
	VMStatus string `json:"vm_status"`
	GasUsed  U64    `json:"gas_used,omitempty"`
}

const (
	TransactionTypePending = "pending_transaction"
	TransactionTypeUser    = "user_transaction"
)

// IsPending reports whether the node has not committed the transaction yet.
func (t Transaction) IsPending() bool {
	return t.Type == TransactionTypePending
}

// Error is the body the node returns with every non 2xx response.
type Error struct {
	Message     string `json:"message"`
	ErrorCode   string `json:"error_code"`
	VMErrorCode *int   `json:"vm_error_code,omitempty"`
}
