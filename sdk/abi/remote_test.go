package abi_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/moveup-labs/moveup-go-sdk/model/moveup"
	"github.com/moveup-labs/moveup-go-sdk/model/rest"
	"github.com/moveup-labs/moveup-go-sdk/module/metrics"
	"github.com/moveup-labs/moveup-go-sdk/sdk/abi"
	clientmock "github.com/moveup-labs/moveup-go-sdk/sdk/client/mock"
	"github.com/moveup-labs/moveup-go-sdk/utils/unittest"
)

var ethAddress = moveup.MustHexToAddress("0x1222")

func ethModules() []rest.MoveModuleBytecode {
	eth := unittest.MoveModuleFixture(ethAddress, "eth",
		unittest.EntryFunctionFixture("transfer", 0, "&signer", "address", "u128"),
		unittest.EntryFunctionFixture("deposit", 1, "signer", "vector<T0>", "0x1::option::Option<u64>"),
	)
	eth.ABI.ExposedFunctions = append(eth.ABI.ExposedFunctions, rest.MoveFunction{
		Name:       "balance",
		Visibility: "public",
		IsEntry:    false,
		Params:     []string{"address"},
	})
	return []rest.MoveModuleBytecode{eth, {Bytecode: "0xa11ceb0b"}}
}

func fixedClock() time.Time { return time.Unix(1000, 0) }

func TestNormalizeFunctionID(t *testing.T) {
	for in, expected := range map[string]string{
		"0x0001222::eth::transfer": "0x1222::eth::transfer",
		"0X01::coin::transfer":     "0x1::coin::transfer",
		"0x1::coin::transfer":      "0x1::coin::transfer",
		"0x0::m::f":                "0x0::m::f",
		"0x000::m::f":              "0x0::m::f",
		"0x00a0::m::f":             "0xa0::m::f",
		"coin::transfer":           "coin::transfer",
	} {
		assert.Equal(t, expected, abi.NormalizeFunctionID(in), in)
	}
}

func TestRemoteBuildConfigured(t *testing.T) {
	node := clientmock.NewNodeAPI(t)
	node.On("GetAccountModules", mock.Anything, ethAddress).Return(ethModules(), nil).Once()

	builder, err := abi.NewRemoteABIBuilder(unittest.Logger(), node, transferConfig(), abi.WithRemoteClock(epoch))
	require.NoError(t, err)

	tx, err := builder.Build(context.Background(), "0x0001222::eth::transfer", nil, []interface{}{"0xdd", "1"})
	require.NoError(t, err)
	assert.Equal(t, unittest.TransferTransactionFixture(t), tx)

	// served from the cache
	_, err = builder.Build(context.Background(), "0x1222::eth::transfer", nil, []interface{}{"0xdd", "1"})
	require.NoError(t, err)
}

func TestRemoteBuildFetchesMissingFields(t *testing.T) {
	node := clientmock.NewNodeAPI(t)
	sender := unittest.RandomAddressFixture()
	node.On("GetAccountModules", mock.Anything, ethAddress).Return(ethModules(), nil)
	node.On("GetAccount", mock.Anything, sender).Return(&rest.AccountData{SequenceNumber: 12}, nil)
	node.On("GetChainID", mock.Anything).Return(uint8(42), nil)
	node.On("EstimateGasPrice", mock.Anything).Return(&rest.GasEstimation{GasEstimate: 150}, nil)

	builder, err := abi.NewRemoteABIBuilder(unittest.Logger(), node, abi.BuilderConfig{Sender: sender}, abi.WithRemoteClock(fixedClock))
	require.NoError(t, err)

	tx, err := builder.Build(context.Background(), "0x1222::eth::deposit", []string{"u8"}, []interface{}{[]byte{1, 2}, nil})
	require.NoError(t, err)
	assert.Equal(t, sender, tx.Sender)
	assert.Equal(t, uint64(12), tx.SequenceNumber)
	assert.Equal(t, moveup.ChainID(42), tx.ChainID)
	assert.Equal(t, uint64(150), tx.GasUnitPrice)
	assert.Equal(t, abi.DefaultMaxGasAmount, tx.MaxGasAmount)
	assert.Equal(t, uint64(1000)+abi.DefaultExpirationSecs, tx.ExpirationTimestampSecs)

	ef := tx.Payload.(moveup.TransactionPayloadEntryFunction).EntryFunction
	assert.Equal(t, "0x1222::eth::deposit", ef.FunctionID())
	assert.Equal(t, []moveup.EntryFunctionArgument{
		moveup.EntryFunctionArgumentVector{Elements: []moveup.EntryFunctionArgument{
			moveup.EntryFunctionArgumentU8{Value: 1},
			moveup.EntryFunctionArgumentU8{Value: 2},
		}},
		moveup.EntryFunctionArgumentOption{},
	}, ef.Args)
}

func TestRemoteBuildErrors(t *testing.T) {
	node := clientmock.NewNodeAPI(t)
	node.On("GetAccountModules", mock.Anything, ethAddress).Return(ethModules(), nil).Maybe()

	builder, err := abi.NewRemoteABIBuilder(unittest.Logger(), node, transferConfig())
	require.NoError(t, err)
	ctx := context.Background()

	for _, fn := range []string{"0x1222::eth", "0x1222::eth::transfer::extra", "transfer"} {
		_, err = builder.Build(ctx, fn, nil, nil)
		assert.True(t, abi.IsLookupKind(err, abi.InvalidFunctionIdFormat), fn)
	}

	_, err = builder.Build(ctx, "0x1222::eth::balance", nil, []interface{}{"0x1"})
	assert.True(t, abi.IsLookupKind(err, abi.FunctionNotFound), "view functions are not callable")

	_, err = builder.Build(ctx, "0x1222::eth::transfer", nil, []interface{}{"0xdd"})
	assert.True(t, moveup.IsValidationKind(err, moveup.WrongArgumentCount))

	_, err = builder.Build(ctx, "0x1222::eth::deposit", nil, []interface{}{[]byte{1}, nil})
	require.Error(t, err, "generic parameters need type arguments")
}

func TestRemoteBuildLookupFailure(t *testing.T) {
	sender := unittest.RandomAddressFixture()
	node := clientmock.NewNodeAPI(t)
	node.On("GetAccountModules", mock.Anything, ethAddress).Return(ethModules(), nil)
	node.On("GetAccount", mock.Anything, sender).Return(nil, errors.New("account not found"))
	node.On("GetChainID", mock.Anything).Return(uint8(4), nil).Maybe()
	node.On("EstimateGasPrice", mock.Anything).Return(&rest.GasEstimation{GasEstimate: 1}, nil).Maybe()

	builder, err := abi.NewRemoteABIBuilder(unittest.Logger(), node, abi.BuilderConfig{Sender: sender})
	require.NoError(t, err)

	_, err = builder.Build(context.Background(), "0x1222::eth::transfer", nil, []interface{}{"0xdd", "1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "account not found")
}

func TestFetchABICaching(t *testing.T) {
	now := time.Unix(0, 0)
	var mu sync.Mutex
	clock := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return now
	}
	advance := func(d time.Duration) {
		mu.Lock()
		defer mu.Unlock()
		now = now.Add(d)
	}

	node := clientmock.NewNodeAPI(t)
	node.On("GetAccountModules", mock.Anything, ethAddress).Return(ethModules(), nil).Twice()

	registry := prometheus.NewRegistry()
	collector := metrics.NewCacheCollector(registry)
	builder, err := abi.NewRemoteABIBuilder(unittest.Logger(), node, transferConfig(),
		abi.WithRemoteClock(clock),
		abi.WithCacheMetrics(collector),
	)
	require.NoError(t, err)
	ctx := context.Background()

	functions, err := builder.FetchABI(ctx, ethAddress)
	require.NoError(t, err)
	assert.Len(t, functions, 2)
	assert.Contains(t, functions, "0x1222::eth::transfer")
	assert.Contains(t, functions, "0x1222::eth::deposit")

	advance(abi.DefaultCacheTTL - time.Second)
	_, err = builder.FetchABI(ctx, ethAddress)
	require.NoError(t, err)

	advance(time.Second)
	_, err = builder.FetchABI(ctx, ethAddress)
	require.NoError(t, err)

	node.AssertNumberOfCalls(t, "GetAccountModules", 2)

	assert.Equal(t, 1.0, counterValue(t, registry, "moveup_cache_hits_total"))
	assert.Equal(t, 2.0, counterValue(t, registry, "moveup_cache_misses_total"))
}

func counterValue(t *testing.T, registry *prometheus.Registry, name string) float64 {
	families, err := registry.Gather()
	require.NoError(t, err)
	for _, family := range families {
		if family.GetName() != name {
			continue
		}
		var total float64
		for _, m := range family.GetMetric() {
			total += m.GetCounter().GetValue()
		}
		return total
	}
	require.Failf(t, "metric not found", "%s", name)
	return 0
}
