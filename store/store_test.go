package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"sync"
	"testing"

	sdk "github.com/cosmos/cosmos-sdk/types"
	banktypes "github.com/cosmos/cosmos-sdk/x/bank/types"
	"github.com/pokt-network/poktroll/pkg/polylog"
	"github.com/pokt-network/poktroll/pkg/polylog/polyzero"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"

	"github.com/sei-protocol/sei-client-go/tx"
)

func newTestStore() *Store {
	return New(testLogger(), nil)
}

func testLogger() polylog.Logger {
	return polyzero.NewLogger(polyzero.WithOutput(io.Discard))
}

type (
	balanceRequest  = banktypes.QueryBalanceRequest
	balanceResponse = banktypes.QueryBalanceResponse
)

var (
	queryBalance = QueryName{Module: "cosmos.bank.v1beta1", Name: "QueryBalance"}
	queryParams  = QueryName{Module: "cosmos.bank.v1beta1", Name: "QueryParams"}
)

func balance(amount int64) *balanceResponse {
	coin := sdk.NewInt64Coin("usei", amount)
	return &balanceResponse{Balance: &coin}
}

func TestKey(t *testing.T) {
	key, err := Key(map[string]any{"denom": "usei", "address": "sei1a"}, nil)
	require.NoError(t, err)
	require.Equal(t, `{"params":{"address":"sei1a","denom":"usei"},"query":{}}`, key)

	key, err = Key(map[string]any{"id": 1}, map[string]any{"limit": 10})
	require.NoError(t, err)
	require.Equal(t, `{"params":{"id":1},"query":{"limit":10}}`, key)
}

func TestStore_CommitLastWriteWins(t *testing.T) {
	s := newTestStore()

	s.Commit("QueryBalance", "k", balance(1))
	s.Commit("QueryBalance", "k", balance(2))
	s.Commit("QuerySupply", "k", balance(3))

	got, ok := GetAs[*balanceResponse](s, "QueryBalance", "k")
	require.True(t, ok)
	require.Equal(t, "2usei", got.Balance.String())
	require.Equal(t, 2, s.Size())

	_, ok = s.Get("QueryBalance", "other")
	require.False(t, ok)

	_, ok = GetAs[string](s, "QueryBalance", "k")
	require.False(t, ok)
}

func TestStore_SubscribeIsIdempotent(t *testing.T) {
	s := newTestStore()
	sub := Subscription{Action: "QueryBalance", Params: map[string]any{"address": "sei1a"}}

	require.NoError(t, s.Subscribe(sub))
	require.NoError(t, s.Subscribe(sub))
	require.NoError(t, s.Subscribe(Subscription{Action: "QueryBalance", Params: map[string]any{"address": "sei1a"}, All: true}))
	require.Len(t, s.Subscriptions(), 2)

	require.NoError(t, s.Unsubscribe(sub))
	require.Equal(t, []Subscription{{Action: "QueryBalance", Params: map[string]any{"address": "sei1a"}, All: true}}, s.Subscriptions())
}

func TestStore_Reset(t *testing.T) {
	s := newTestStore()
	s.RegisterAction("QueryBalance", func(context.Context, Subscription) error { return nil })
	s.Commit("QueryBalance", "k", 1)
	require.NoError(t, s.Subscribe(Subscription{Action: "QueryBalance"}))

	s.Reset()

	require.Zero(t, s.Size())
	require.Empty(t, s.Subscriptions())
	require.NoError(t, s.Dispatch(context.Background(), Subscription{Action: "QueryBalance"}))

	s.Commit("QueryBalance", "k", 2)
	value, ok := s.Get("QueryBalance", "k")
	require.True(t, ok)
	require.Equal(t, 2, value)
}

func TestStore_ResetDoesNotLeakGoroutines(t *testing.T) {
	s := newTestStore()
	before := runtime.NumGoroutine()

	for i := 0; i < 100; i++ {
		s.Commit("QueryBalance", fmt.Sprint(i), i)
		s.Reset()
	}

	require.LessOrEqual(t, runtime.NumGoroutine(), before)
	require.Zero(t, s.Size())
}

func TestStore_KeepsEveryResult(t *testing.T) {
	s := newTestStore()
	const entries = 25_000

	for i := 0; i < entries; i++ {
		s.Commit("QueryBalance", fmt.Sprint(i), i)
	}

	require.Equal(t, entries, s.Size())
	for i := 0; i < entries; i++ {
		value, ok := s.Get("QueryBalance", fmt.Sprint(i))
		require.True(t, ok, i)
		require.Equal(t, i, value)
	}
}

func TestStore_Update(t *testing.T) {
	s := newTestStore()
	errTimeout := errors.New("timeout")

	var mu sync.Mutex
	replayed := map[string]int{}
	s.RegisterAction("QueryOk", func(_ context.Context, sub Subscription) error {
		mu.Lock()
		defer mu.Unlock()
		replayed[sub.Params["id"].(string)]++
		return nil
	})
	s.RegisterAction("QueryFail", func(context.Context, Subscription) error {
		return errTimeout
	})

	require.NoError(t, s.Subscribe(Subscription{Action: "QueryOk", Params: map[string]any{"id": "a"}}))
	require.NoError(t, s.Subscribe(Subscription{Action: "QueryFail"}))
	require.NoError(t, s.Subscribe(Subscription{Action: "QueryOk", Params: map[string]any{"id": "b"}}))
	require.NoError(t, s.Subscribe(Subscription{Action: "QueryMissing"}))

	err := s.Update(context.Background())
	require.Error(t, err)
	require.ErrorIs(t, err, errTimeout)
	require.ErrorIs(t, err, ErrSubscription)
	require.ErrorIs(t, err, ErrUnknownAction)
	require.Contains(t, err.Error(), "Subscriptions: ")

	require.Equal(t, map[string]int{"a": 1, "b": 1}, replayed)

	require.NoError(t, s.Unsubscribe(Subscription{Action: "QueryFail"}))
	require.NoError(t, s.Unsubscribe(Subscription{Action: "QueryMissing"}))
	require.NoError(t, s.Update(context.Background()))
	require.Equal(t, map[string]int{"a": 2, "b": 2}, replayed)
}

func TestQuery(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()
	req := &balanceRequest{Address: "sei1a", Denom: "usei"}

	calls := int64(0)
	fetch := func(_ context.Context, req *balanceRequest, _ ...grpc.CallOption) (*balanceResponse, error) {
		calls++
		return balance(calls), nil
	}

	resp, err := Query(ctx, s, queryBalance, req, QueryOptions{}, fetch)
	require.NoError(t, err)
	require.Equal(t, "1usei", resp.Balance.String())
	require.Empty(t, s.Subscriptions())

	cached, ok := Lookup[balanceResponse](s, queryBalance, req)
	require.True(t, ok)
	require.Same(t, resp, cached)

	_, ok = Lookup[balanceResponse](s, QueryName{Module: "cosmos.other.v1", Name: "QueryBalance"}, req)
	require.False(t, ok)

	_, err = Query(ctx, s, queryBalance, req, QueryOptions{Subscribe: true}, fetch)
	require.NoError(t, err)
	require.Equal(t, []Subscription{{
		Action: "cosmos.bank.v1beta1/QueryBalance",
		Params: map[string]any{"address": "sei1a", "denom": "usei"},
	}}, s.Subscriptions())

	cached, ok = Lookup[balanceResponse](s, queryBalance, req)
	require.True(t, ok)
	require.Equal(t, "2usei", cached.Balance.String())
}

func TestQuery_Error(t *testing.T) {
	s := newTestStore()
	errTimeout := errors.New("timeout")

	_, err := Query(context.Background(), s, queryParams, &banktypes.QueryParamsRequest{}, QueryOptions{Subscribe: true},
		func(context.Context, *banktypes.QueryParamsRequest, ...grpc.CallOption) (*banktypes.QueryParamsResponse, error) {
			return nil, errTimeout
		})

	require.ErrorIs(t, err, errTimeout)
	require.ErrorIs(t, err, ErrQueryFailed)
	require.Contains(t, err.Error(), "QueryClient:QueryParams")
	require.Contains(t, err.Error(), "timeout")

	var actionErr *ActionError
	require.ErrorAs(t, err, &actionErr)
	require.Equal(t, "QueryClient:QueryParams", actionErr.Label)

	require.Zero(t, s.Size())
	require.Empty(t, s.Subscriptions())
}

func TestRegisterQuery_Replay(t *testing.T) {
	s := newTestStore()
	var got []*balanceRequest
	var gotOpts []QueryOptions

	RegisterQuery(s, queryBalance, func(_ context.Context, req *balanceRequest, opts QueryOptions) (*balanceResponse, error) {
		got = append(got, req)
		gotOpts = append(gotOpts, opts)
		return &balanceResponse{}, nil
	})

	require.NoError(t, s.Subscribe(Subscription{
		Action: queryBalance.String(),
		Params: map[string]any{"address": "sei1a", "denom": "usei"},
		All:    true,
	}))
	require.NoError(t, s.Update(context.Background()))

	require.Equal(t, []*balanceRequest{{Address: "sei1a", Denom: "usei"}}, got)
	require.Equal(t, []QueryOptions{{All: true}}, gotOpts)
}

func TestRegisterQuery_SameNameInTwoModules(t *testing.T) {
	s := newTestStore()
	var replayed []string

	RegisterQuery(s, queryParams, func(context.Context, *banktypes.QueryParamsRequest, QueryOptions) (*banktypes.QueryParamsResponse, error) {
		replayed = append(replayed, "bank")
		return &banktypes.QueryParamsResponse{}, nil
	})
	other := QueryName{Module: "cosmos.other.v1", Name: "QueryParams"}
	RegisterQuery(s, other, func(context.Context, *banktypes.QueryParamsRequest, QueryOptions) (*banktypes.QueryParamsResponse, error) {
		replayed = append(replayed, "other")
		return &banktypes.QueryParamsResponse{}, nil
	})

	require.NoError(t, s.Dispatch(context.Background(), Subscription{Action: queryParams.String()}))
	require.NoError(t, s.Dispatch(context.Background(), Subscription{Action: other.String()}))
	require.Equal(t, []string{"bank", "other"}, replayed)
}

func TestTxErrors(t *testing.T) {
	cause := errors.New("out of gas")

	tests := []struct {
		desc  string
		err   error
		label string
		kind  error
	}{
		{desc: "init", err: InitError("MsgVote", tx.ErrMissingWallet), label: "TxClient:MsgVote:Init", kind: ErrMissingWallet},
		{desc: "send", err: SendError("MsgVote", cause), label: "TxClient:MsgVote:Send", kind: ErrBroadcast},
		{desc: "create", err: CreateError("MsgVote", cause), label: "TxClient:MsgVote:Create", kind: ErrCreateMessage},
	}

	for _, test := range tests {
		t.Run(test.desc, func(t *testing.T) {
			var actionErr *ActionError
			require.ErrorAs(t, test.err, &actionErr)
			require.Equal(t, test.label, actionErr.Label)
			require.ErrorIs(t, test.err, test.kind)
			require.Contains(t, test.err.Error(), test.label+": "+test.kind.Error())
		})
	}

	require.ErrorIs(t, InitError("MsgVote", tx.ErrMissingWallet), tx.ErrMissingWallet)
}

func TestBuild(t *testing.T) {
	reg := newTestStore().Registry()
	typed := &balanceRequest{Address: "a"}

	got, err := Build[balanceRequest](reg, typed)
	require.NoError(t, err)
	require.Same(t, typed, got)

	got, err = Build[balanceRequest](reg, balanceRequest{Address: "b"})
	require.NoError(t, err)
	require.Equal(t, &balanceRequest{Address: "b"}, got)

	got, err = Build[balanceRequest](reg, map[string]any{"address": "c", "denom": "usei"})
	require.NoError(t, err)
	require.Equal(t, &balanceRequest{Address: "c", Denom: "usei"}, got)

	_, err = Build[balanceRequest](reg, map[string]any{"address": 5})
	require.Error(t, err)

	_, err = Build[balanceRequest](reg, (*balanceRequest)(nil))
	require.Error(t, err)
}

func TestFee(t *testing.T) {
	require.Equal(t, tx.DefaultFee(), Fee(nil))
	custom := tx.StdFee{Gas: "300000"}
	require.Equal(t, custom, Fee(&custom))
}
