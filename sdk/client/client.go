package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/docker/go-units"
	"github.com/rs/zerolog"
	"github.com/sethvargo/go-retry"
	httpmetrics "github.com/slok/go-http-metrics/metrics"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/moveup-labs/moveup-go-sdk/model/moveup"
	"github.com/moveup-labs/moveup-go-sdk/model/rest"
	"github.com/moveup-labs/moveup-go-sdk/module"
	"github.com/moveup-labs/moveup-go-sdk/module/metrics"
)

const (
	// ClientHeader identifies the SDK to the node.
	ClientHeader = "x-moveup-client"
	ClientName   = "moveup-go-sdk"

	// SignedTransactionContentType is the content type of BCS encoded signed transactions.
	SignedTransactionContentType = "application/x.moveup.signed_transaction+bcs"

	serviceName = "moveup-node"
)

var (
	errDecodeResponse = errors.New("could not decode response")
	errRateLimited    = errors.New("rate limit exceeded")
)

// Route names used for metrics and errors.
const (
	routeIndex             = "getLedgerInfo"
	routeAccount           = "getAccount"
	routeAccountModules    = "getAccountModules"
	routeEstimateGasPrice  = "estimateGasPrice"
	routeSubmitTransaction = "submitTransaction"
	routeTransactionByHash = "getTransactionByHash"
)

// CircuitBreakerConfig configures the breaker placed in front of the node.
type CircuitBreakerConfig struct {
	Enabled bool
	// MaxFailures is the number of consecutive failures that opens the breaker.
	MaxFailures uint32
	// RestoreTimeout is how long the breaker stays open before letting requests through again.
	RestoreTimeout time.Duration
	// MaxRequests is the number of requests allowed while half open.
	MaxRequests uint32
}

type Config struct {
	URL            string
	Timeout        time.Duration
	RetryMax       uint64
	RetryBase      time.Duration
	CircuitBreaker CircuitBreakerConfig
	WaitTimeout    time.Duration
	PollInterval   time.Duration
	// RateLimit caps the requests sent per second. Zero disables the limit.
	RateLimit float64
	RateBurst int
}

func DefaultConfig() Config {
	return Config{
		URL:       "http://127.0.0.1:8080/v1",
		Timeout:   10 * time.Second,
		RetryMax:  3,
		RetryBase: 200 * time.Millisecond,
		CircuitBreaker: CircuitBreakerConfig{
			Enabled:        false,
			MaxFailures:    5,
			RestoreTimeout: 60 * time.Second,
			MaxRequests:    1,
		},
		WaitTimeout:  20 * time.Second,
		PollInterval: 500 * time.Millisecond,
		RateLimit:    0,
		RateBurst:    3,
	}
}

// Client is a client of the node REST API.
type Client struct {
	log        zerolog.Logger
	config     Config
	baseURL    *url.URL
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	limiter    *rate.Limiter
	metrics    module.ClientMetrics
	clock      func() time.Time
}

type Option func(*Client)

// WithHTTPClient replaces the http client. The configured timeout is not applied to it.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func WithMetrics(m module.ClientMetrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// New initializes a client of the node at cfg.URL.
func New(log zerolog.Logger, cfg Config, opts ...Option) (*Client, error) {
	baseURL, err := url.Parse(strings.TrimRight(cfg.URL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid node url %q: %w", cfg.URL, err)
	}
	if baseURL.Scheme != "http" && baseURL.Scheme != "https" {
		return nil, fmt.Errorf("invalid node url %q: unsupported scheme", cfg.URL)
	}
	if cfg.RetryBase <= 0 {
		return nil, fmt.Errorf("invalid retry base %s: must be positive", cfg.RetryBase)
	}

	c := &Client{
		log:     log.With().Str("component", "node_client").Str("node", baseURL.Host).Logger(),
		config:  cfg,
		baseURL: baseURL,
		metrics: metrics.NewNoopCollector(),
		clock:   time.Now,
	}
	for _, apply := range opts {
		apply(c)
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	if cfg.RateLimit > 0 {
		burst := cfg.RateBurst
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}

	if cfg.CircuitBreaker.Enabled {
		c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        baseURL.Host,
			MaxRequests: cfg.CircuitBreaker.MaxRequests,
			Timeout:     cfg.CircuitBreaker.RestoreTimeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= cfg.CircuitBreaker.MaxFailures
			},
			IsSuccessful: func(err error) bool {
				return err == nil || !isNodeFailure(err)
			},
			OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
				c.log.Warn().Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state changed")
			},
		})
	}

	return c, nil
}

// Close releases idle connections.
func (c *Client) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

// GetLedgerInfo returns the state of the node's ledger.
func (c *Client) GetLedgerInfo(ctx context.Context) (*rest.IndexResponse, error) {
	var info rest.IndexResponse
	err := c.get(ctx, routeIndex, "/", &info)
	if err != nil {
		return nil, err
	}
	return &info, nil
}

func (c *Client) GetChainID(ctx context.Context) (uint8, error) {
	info, err := c.GetLedgerInfo(ctx)
	if err != nil {
		return 0, err
	}
	return info.ChainID, nil
}

func (c *Client) GetAccount(ctx context.Context, addr moveup.AccountAddress) (*rest.AccountData, error) {
	var account rest.AccountData
	err := c.get(ctx, routeAccount, "/accounts/"+addr.Hex(), &account)
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// GetAccountModules returns every module published under addr.
func (c *Client) GetAccountModules(ctx context.Context, addr moveup.AccountAddress) ([]rest.MoveModuleBytecode, error) {
	var modules []rest.MoveModuleBytecode
	err := c.get(ctx, routeAccountModules, "/accounts/"+addr.Hex()+"/modules", &modules)
	if err != nil {
		return nil, err
	}
	return modules, nil
}

func (c *Client) EstimateGasPrice(ctx context.Context) (*rest.GasEstimation, error) {
	var estimation rest.GasEstimation
	err := c.get(ctx, routeEstimateGasPrice, "/estimate_gas_price", &estimation)
	if err != nil {
		return nil, err
	}
	return &estimation, nil
}

func (c *Client) GetTransactionByHash(ctx context.Context, hash string) (*rest.Transaction, error) {
	var tx rest.Transaction
	err := c.get(ctx, routeTransactionByHash, "/transactions/by_hash/"+url.PathEscape(hash), &tx)
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

// SubmitSignedBCSTransaction submits a BCS encoded signed transaction. Submissions are never retried.
func (c *Client) SubmitSignedBCSTransaction(ctx context.Context, signedTxn []byte) (*rest.PendingTransaction, error) {
	start := c.clock()
	var pending rest.PendingTransaction
	err := c.execute(ctx, http.MethodPost, routeSubmitTransaction, "/transactions", signedTxn, SignedTransactionContentType, &pending)
	if err != nil {
		return nil, err
	}
	c.metrics.TransactionSubmitted(c.clock().Sub(start))
	c.log.Debug().
		Str("tx_hash", pending.Hash).
		Str("size", units.HumanSize(float64(len(signedTxn)))).
		Msg("transaction submitted")
	return &pending, nil
}

// WaitForTransaction polls the node until the transaction leaves the mempool or the wait timeout elapses.
func (c *Client) WaitForTransaction(ctx context.Context, hash string) (*rest.Transaction, error) {
	start := c.clock()
	if c.config.WaitTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.WaitTimeout)
		defer cancel()
	}
	interval := c.config.PollInterval
	if interval <= 0 {
		interval = DefaultConfig().PollInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		tx, err := c.GetTransactionByHash(ctx, hash)
		switch {
		case err == nil && !tx.IsPending():
			waited := c.clock().Sub(start)
			c.metrics.TransactionCommitted(tx.Success, waited)
			c.log.Info().
				Str("tx_hash", hash).
				Bool("success", tx.Success).
				Str("waited", units.HumanDuration(waited)).
				Msg("transaction committed")
			if !tx.Success {
				return tx, NewTransactionFailedErr(hash, tx.VMStatus)
			}
			return tx, nil
		case err == nil, IsNotFound(err):
			c.log.Debug().Str("tx_hash", hash).Msg("transaction not committed yet")
		case errors.Is(err, context.DeadlineExceeded) && ctx.Err() != nil:
			// the wait deadline may expire in the middle of a request
		default:
			return nil, fmt.Errorf("could not get transaction %s: %w", hash, err)
		}

		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return nil, fmt.Errorf("transaction %s: %w", hash, ErrWaitForTransactionTimeout)
			}
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

// get sends an idempotent request, retrying transport failures, 5xx and 429 responses.
func (c *Client) get(ctx context.Context, route string, path string, out interface{}) error {
	backoff := retry.WithMaxRetries(c.config.RetryMax, retry.NewExponential(c.config.RetryBase))

	attempt := 0
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		if attempt > 1 {
			c.metrics.RequestRetried(route)
		}
		err := c.execute(ctx, http.MethodGet, route, path, nil, "", out)
		if err != nil && isRetryable(err) {
			c.log.Info().Err(err).Str("route", route).Int("attempt", attempt).Msg("retrying node request")
			return retry.RetryableError(err)
		}
		return err
	})
}

// execute sends one request through the rate limiter and the circuit breaker.
func (c *Client) execute(ctx context.Context, method string, route string, path string, body []byte, contentType string, out interface{}) error {
	if err := c.waitRateLimit(ctx, route); err != nil {
		return err
	}
	if c.breaker == nil {
		return c.send(ctx, method, route, path, body, contentType, out)
	}
	_, err := c.breaker.Execute(func() (interface{}, error) {
		return nil, c.send(ctx, method, route, path, body, contentType, out)
	})
	if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
		return fmt.Errorf("%s: node %s unavailable: %w", route, c.baseURL.Host, err)
	}
	return err
}

// waitRateLimit blocks until the limiter admits one more request.
func (c *Client) waitRateLimit(ctx context.Context, route string) error {
	if c.limiter == nil {
		return nil
	}
	err := c.limiter.Wait(ctx)
	if err == nil {
		return nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("%s: %w", route, ctxErr)
	}
	// the limiter refuses upfront when the deadline is closer than the next token
	return fmt.Errorf("%s: %w: %w", route, errRateLimited, err)
}

func (c *Client) send(ctx context.Context, method string, route string, path string, body []byte, contentType string, out interface{}) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.String()+path, reader)
	if err != nil {
		return fmt.Errorf("%s: could not create request: %w", route, err)
	}
	req.Header.Set(ClientHeader, ClientName)
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	props := httpmetrics.HTTPProperties{Service: serviceName, ID: route}
	c.metrics.AddTotalRequests(ctx, method, route)
	c.metrics.AddInflightRequests(ctx, props, 1)
	defer c.metrics.AddInflightRequests(ctx, props, -1)

	start := c.clock()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: request failed: %w", route, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	reqProps := httpmetrics.HTTPReqProperties{
		Service: serviceName,
		ID:      route,
		Method:  method,
		Code:    strconv.Itoa(resp.StatusCode),
	}
	c.metrics.ObserveHTTPRequestDuration(ctx, reqProps, c.clock().Sub(start))
	c.metrics.ObserveHTTPResponseSize(ctx, reqProps, int64(len(data)))
	if err != nil {
		return fmt.Errorf("%s: could not read response: %w", route, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		reqErr := &RequestError{Route: route, StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(data))}
		var nodeErr rest.Error
		if json.Unmarshal(data, &nodeErr) == nil && nodeErr.Message != "" {
			reqErr.Message = nodeErr.Message
			reqErr.ErrorCode = nodeErr.ErrorCode
			reqErr.VMErrorCode = nodeErr.VMErrorCode
		}
		return reqErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%s: %w: %w", route, errDecodeResponse, err)
	}
	return nil
}

// isNodeFailure reports whether err means the node is unhealthy, as opposed to rejecting the request.
func isNodeFailure(err error) bool {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.StatusCode >= http.StatusInternalServerError
	}
	return !errors.Is(err, context.Canceled)
}

func isRetryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return false
	}
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.StatusCode == http.StatusTooManyRequests || reqErr.StatusCode >= http.StatusInternalServerError
	}
	return !errors.Is(err, errDecodeResponse) && !errors.Is(err, errRateLimited)
}
