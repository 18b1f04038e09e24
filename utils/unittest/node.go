package unittest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gorilla/mux"

	"github.com/moveup-labs/moveup-go-sdk/model/bcs"
	"github.com/moveup-labs/moveup-go-sdk/model/moveup"
	"github.com/moveup-labs/moveup-go-sdk/model/rest"
)

// Route names of the test node, usable with FailNext.
const (
	RouteIndex             = "index"
	RouteAccount           = "account"
	RouteAccountModules    = "account_modules"
	RouteEstimateGasPrice  = "estimate_gas_price"
	RouteSubmitTransaction = "submit_transaction"
	RouteTransactionByHash = "transaction_by_hash"
)

const VMStatusExecuted = "Executed successfully"

type injectedFailure struct {
	status int
	times  int
}

type trackedTransaction struct {
	tx           rest.Transaction
	pendingPolls int
}

// TestNode is an in-process node serving the subset of the REST API the SDK uses.
// Submitted transactions are decoded, stay pending for a number of lookups and then
// succeed unless SetFailTransactions was called.
type TestNode struct {
	server *httptest.Server

	mu               sync.Mutex
	chainID          uint8
	gasEstimate      uint64
	accounts         map[moveup.AccountAddress]rest.AccountData
	modules          map[moveup.AccountAddress][]rest.MoveModuleBytecode
	transactions     map[string]*trackedTransaction
	failures         map[string]*injectedFailure
	requests         map[string]int
	clientHeaders    []string
	submitted        []moveup.SignedTransaction
	pendingPolls     int
	failTransactions bool
}

// NewTestNode starts a test node that is closed when the test ends.
func NewTestNode(t testing.TB, chainID uint8) *TestNode {
	n := &TestNode{
		chainID:      chainID,
		gasEstimate:  100,
		accounts:     make(map[moveup.AccountAddress]rest.AccountData),
		modules:      make(map[moveup.AccountAddress][]rest.MoveModuleBytecode),
		transactions: make(map[string]*trackedTransaction),
		failures:     make(map[string]*injectedFailure),
		requests:     make(map[string]int),
		pendingPolls: 1,
	}

	router := mux.NewRouter()
	v1 := router.PathPrefix("/v1").Subrouter()
	v1.Use(n.middleware)
	v1.HandleFunc("/", n.index).Methods(http.MethodGet).Name(RouteIndex)
	v1.HandleFunc("/accounts/{address}", n.account).Methods(http.MethodGet).Name(RouteAccount)
	v1.HandleFunc("/accounts/{address}/modules", n.accountModules).Methods(http.MethodGet).Name(RouteAccountModules)
	v1.HandleFunc("/estimate_gas_price", n.estimateGasPrice).Methods(http.MethodGet).Name(RouteEstimateGasPrice)
	v1.HandleFunc("/transactions", n.submitTransaction).Methods(http.MethodPost).Name(RouteSubmitTransaction)
	v1.HandleFunc("/transactions/by_hash/{hash}", n.transactionByHash).Methods(http.MethodGet).Name(RouteTransactionByHash)

	n.server = httptest.NewServer(router)
	t.Cleanup(n.server.Close)
	return n
}

// URL returns the base url of the API.
func (n *TestNode) URL() string {
	return n.server.URL + "/v1"
}

func (n *TestNode) SetGasEstimate(price uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.gasEstimate = price
}

func (n *TestNode) SetAccount(addr moveup.AccountAddress, sequenceNumber uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.accounts[addr] = rest.AccountData{
		SequenceNumber:    rest.U64(sequenceNumber),
		AuthenticationKey: addr.Hex(),
	}
}

func (n *TestNode) AddModules(addr moveup.AccountAddress, modules ...rest.MoveModuleBytecode) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.modules[addr] = append(n.modules[addr], modules...)
}

// SetPendingPolls sets how many lookups of a submitted transaction report it pending.
func (n *TestNode) SetPendingPolls(polls int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.pendingPolls = polls
}

// SetFailTransactions makes every transaction submitted from now on abort.
func (n *TestNode) SetFailTransactions(fail bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.failTransactions = fail
}

// FailNext makes the next times requests of route answer with status.
func (n *TestNode) FailNext(route string, status int, times int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.failures[route] = &injectedFailure{status: status, times: times}
}

// Requests returns how many requests route received, failed ones included.
func (n *TestNode) Requests(route string) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.requests[route]
}

// ClientHeaders returns the client header of every request received.
func (n *TestNode) ClientHeaders() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.clientHeaders...)
}

func (n *TestNode) Submitted() []moveup.SignedTransaction {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]moveup.SignedTransaction(nil), n.submitted...)
}

func (n *TestNode) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route := ""
		if current := mux.CurrentRoute(r); current != nil {
			route = current.GetName()
		}

		n.mu.Lock()
		n.requests[route]++
		n.clientHeaders = append(n.clientHeaders, r.Header.Get("x-moveup-client"))
		failure := n.failures[route]
		inject := failure != nil && failure.times > 0
		if inject {
			failure.times--
		}
		n.mu.Unlock()

		if inject {
			writeError(w, failure.status, "injected_failure", fmt.Sprintf("injected %d", failure.status))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (n *TestNode) index(w http.ResponseWriter, _ *http.Request) {
	n.mu.Lock()
	defer n.mu.Unlock()
	writeJSON(w, http.StatusOK, rest.IndexResponse{
		ChainID:       n.chainID,
		Epoch:         1,
		LedgerVersion: rest.U64(len(n.submitted)),
		NodeRole:      "full_node",
	})
}

func (n *TestNode) account(w http.ResponseWriter, r *http.Request) {
	addr, ok := parseAddress(w, r)
	if !ok {
		return
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	account, ok := n.accounts[addr]
	if !ok {
		writeError(w, http.StatusNotFound, "account_not_found", "Account not found by Address("+addr.Hex()+")")
		return
	}
	writeJSON(w, http.StatusOK, account)
}

func (n *TestNode) accountModules(w http.ResponseWriter, r *http.Request) {
	addr, ok := parseAddress(w, r)
	if !ok {
		return
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	modules := n.modules[addr]
	if modules == nil {
		modules = []rest.MoveModuleBytecode{}
	}
	writeJSON(w, http.StatusOK, modules)
}

func (n *TestNode) estimateGasPrice(w http.ResponseWriter, _ *http.Request) {
	n.mu.Lock()
	defer n.mu.Unlock()
	writeJSON(w, http.StatusOK, rest.GasEstimation{
		DeprioritizedGasEstimate: rest.U64(n.gasEstimate / 2),
		GasEstimate:              rest.U64(n.gasEstimate),
		PrioritizedGasEstimate:   rest.U64(n.gasEstimate * 2),
	})
}

func (n *TestNode) submitTransaction(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("Content-Type") != "application/x.moveup.signed_transaction+bcs" {
		writeError(w, http.StatusUnsupportedMediaType, "invalid_input", "unsupported content type")
		return
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_input", err.Error())
		return
	}
	signed, err := bcs.FromBytes(body, moveup.DeserializeSignedTransaction)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_input", "failed to deserialize input into SignedTransaction: "+err.Error())
		return
	}
	h, err := signed.Hash()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
		return
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	n.submitted = append(n.submitted, signed)
	raw := signed.RawTxn
	if account, ok := n.accounts[raw.Sender]; ok {
		account.SequenceNumber++
		n.accounts[raw.Sender] = account
	}
	n.transactions[h.Hex()] = &trackedTransaction{
		tx:           rest.Transaction{Type: rest.TransactionTypePending, Hash: h.Hex()},
		pendingPolls: n.pendingPolls,
	}

	writeJSON(w, http.StatusAccepted, rest.PendingTransaction{
		Hash:                    h.Hex(),
		Sender:                  raw.Sender,
		SequenceNumber:          rest.U64(raw.SequenceNumber),
		MaxGasAmount:            rest.U64(raw.MaxGasAmount),
		GasUnitPrice:            rest.U64(raw.GasUnitPrice),
		ExpirationTimestampSecs: rest.U64(raw.ExpirationTimestampSecs),
	})
}

func (n *TestNode) transactionByHash(w http.ResponseWriter, r *http.Request) {
	hash := mux.Vars(r)["hash"]
	n.mu.Lock()
	defer n.mu.Unlock()
	tracked, ok := n.transactions[hash]
	if !ok {
		writeError(w, http.StatusNotFound, "transaction_not_found", "Transaction not found by Transaction hash("+hash+")")
		return
	}
	if tracked.pendingPolls > 0 {
		tracked.pendingPolls--
	} else if tracked.tx.IsPending() {
		tracked.tx = rest.Transaction{
			Type:     rest.TransactionTypeUser,
			Hash:     hash,
			Version:  rest.U64(len(n.submitted)),
			Success:  !n.failTransactions,
			VMStatus: VMStatusExecuted,
			GasUsed:  7,
		}
		if n.failTransactions {
			tracked.tx.VMStatus = "Move abort in 0x1::coin: EINSUFFICIENT_BALANCE(0x10006)"
		}
	}
	writeJSON(w, http.StatusOK, tracked.tx)
}

func parseAddress(w http.ResponseWriter, r *http.Request) (moveup.AccountAddress, bool) {
	addr, err := moveup.HexToAddress(mux.Vars(r)["address"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_input", err.Error())
		return moveup.AccountAddress{}, false
	}
	return addr, true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, rest.Error{Message: message, ErrorCode: code})
}
