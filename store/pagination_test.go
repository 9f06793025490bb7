package store

import (
	"context"
	"errors"
	"testing"

	"cosmossdk.io/math"
	"github.com/cosmos/cosmos-sdk/types/query"
	distrtypes "github.com/cosmos/cosmos-sdk/x/distribution/types"
	"github.com/stretchr/testify/require"

	"github.com/sei-protocol/sei-client-go/codec"
)

type slashesResponse = distrtypes.QueryValidatorSlashesResponse

func slashes(periods ...uint64) []distrtypes.ValidatorSlashEvent {
	events := make([]distrtypes.ValidatorSlashEvent, 0, len(periods))
	for _, period := range periods {
		events = append(events, distrtypes.ValidatorSlashEvent{ValidatorPeriod: period, Fraction: math.LegacyNewDecWithPrec(1, 2)})
	}
	return events
}

func periods(resp *slashesResponse) []uint64 {
	out := make([]uint64, 0, len(resp.Slashes))
	for _, event := range resp.Slashes {
		out = append(out, event.ValidatorPeriod)
	}
	return out
}

func pagedFetcher(t *testing.T, pages map[string]*slashesResponse, requested *[]string) PageFetcher[*slashesResponse] {
	return func(_ context.Context, key []byte) (*slashesResponse, error) {
		*requested = append(*requested, string(key))
		page, ok := pages[string(key)]
		require.True(t, ok, "unexpected key %q", key)
		return page, nil
	}
}

func nextKey(resp *slashesResponse) []byte {
	return resp.Pagination.GetNextKey()
}

func TestFetchAll_AccumulatesPages(t *testing.T) {
	pages := map[string]*slashesResponse{
		"":   {Slashes: slashes(1), Pagination: &query.PageResponse{NextKey: []byte("k1"), Total: 4}},
		"k1": {Slashes: slashes(2, 3), Pagination: &query.PageResponse{NextKey: []byte("k2")}},
		"k2": {Slashes: slashes(4), Pagination: &query.PageResponse{}},
	}

	var requested []string
	resp, err := FetchAll(context.Background(), codec.NewRegistry(), true, pagedFetcher(t, pages, &requested), nextKey)
	require.NoError(t, err)

	require.Equal(t, []string{"", "k1", "k2"}, requested)
	require.Equal(t, []uint64{1, 2, 3, 4}, periods(resp))
	require.Equal(t, "0.010000000000000000", resp.Slashes[3].Fraction.String())
	require.Empty(t, resp.Pagination.GetNextKey())
}

func TestFetchAll_SinglePage(t *testing.T) {
	pages := map[string]*slashesResponse{
		"": {Slashes: slashes(1), Pagination: &query.PageResponse{NextKey: []byte("k1")}},
	}

	var requested []string
	resp, err := FetchAll(context.Background(), codec.NewRegistry(), false, pagedFetcher(t, pages, &requested), nextKey)
	require.NoError(t, err)
	require.Same(t, pages[""], resp)
	require.Equal(t, []string{""}, requested)
}

func TestFetchAll_NoNextKey(t *testing.T) {
	pages := map[string]*slashesResponse{"": {Slashes: slashes(9)}}

	var requested []string
	resp, err := FetchAll(context.Background(), codec.NewRegistry(), true, pagedFetcher(t, pages, &requested), nextKey)
	require.NoError(t, err)
	require.Same(t, pages[""], resp)
}

func TestFetchAll_PageError(t *testing.T) {
	errTimeout := errors.New("timeout")
	fetch := func(_ context.Context, key []byte) (*slashesResponse, error) {
		if key == nil {
			return &slashesResponse{Pagination: &query.PageResponse{NextKey: []byte("k1")}}, nil
		}
		return nil, errTimeout
	}

	_, err := FetchAll(context.Background(), codec.NewRegistry(), true, fetch, nextKey)
	require.ErrorIs(t, err, errTimeout)
}

func TestPageAt(t *testing.T) {
	page := PageAt(&query.PageRequest{Offset: 10, Limit: 5, CountTotal: true}, []byte("k1"))
	require.Equal(t, &query.PageRequest{Key: []byte("k1"), Limit: 5, CountTotal: true}, page)

	require.Equal(t, &query.PageRequest{Key: []byte("k2")}, PageAt(nil, []byte("k2")))
}

func TestMergeResults(t *testing.T) {
	tests := []struct {
		desc     string
		acc      map[string]any
		next     map[string]any
		expected map[string]any
	}{
		{
			desc:     "arrays are concatenated",
			acc:      map[string]any{"votes": []any{"a"}},
			next:     map[string]any{"votes": []any{"b", "c"}},
			expected: map[string]any{"votes": []any{"a", "b", "c"}},
		},
		{
			desc:     "null accumulated array counts as empty",
			acc:      map[string]any{"votes": nil},
			next:     map[string]any{"votes": []any{"b"}},
			expected: map[string]any{"votes": []any{"b"}},
		},
		{
			desc:     "null next array keeps accumulated entries",
			acc:      map[string]any{"votes": []any{"a"}},
			next:     map[string]any{"votes": nil},
			expected: map[string]any{"votes": []any{"a"}},
		},
		{
			desc:     "scalars and objects are overwritten",
			acc:      map[string]any{"pagination": map[string]any{"next_key": "azE="}, "height": "1"},
			next:     map[string]any{"pagination": map[string]any{"next_key": nil}, "height": "2"},
			expected: map[string]any{"pagination": map[string]any{"next_key": nil}, "height": "2"},
		},
		{
			desc:     "keys only in acc are kept",
			acc:      map[string]any{"total": "3"},
			next:     map[string]any{},
			expected: map[string]any{"total": "3"},
		},
	}

	for _, test := range tests {
		t.Run(test.desc, func(t *testing.T) {
			require.Equal(t, test.expected, MergeResults(test.acc, test.next))
		})
	}
}
