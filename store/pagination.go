package store

import (
	"context"
	"fmt"

	"github.com/cosmos/cosmos-sdk/types/query"

	"github.com/sei-protocol/sei-client-go/codec"
)

// PageFetcher fetches one page. A nil key requests the first page with the
// caller's own pagination.
type PageFetcher[PT any] func(ctx context.Context, key []byte) (PT, error)

// FetchAll fetches the first page and, when all is set, keeps requesting
// the page at next_key until a page comes back without one. Pages are
// merged in their proto3 JSON form with MergeResults.
func FetchAll[T any, PT interface {
	*T
	codec.Message
}](
	ctx context.Context,
	registry *codec.Registry,
	all bool,
	fetch PageFetcher[PT],
	nextKey func(PT) []byte,
) (PT, error) {
	page, err := fetch(ctx, nil)
	if err != nil {
		return nil, err
	}
	if !all {
		return page, nil
	}

	key := nextKey(page)
	if len(key) == 0 {
		return page, nil
	}

	acc, err := registry.ToJSON(page)
	if err != nil {
		return nil, err
	}
	for len(key) > 0 {
		page, err = fetch(ctx, key)
		if err != nil {
			return nil, err
		}
		next, err := registry.ToJSON(page)
		if err != nil {
			return nil, err
		}
		acc = MergeResults(acc, next)
		key = nextKey(page)
	}

	merged := PT(new(T))
	if err := registry.FromJSON(acc, merged); err != nil {
		return nil, fmt.Errorf("FetchAll: error decoding merged pages: %w", err)
	}
	return merged, nil
}

// PageAt returns a copy of p requesting the page at key. Offsets cannot be
// combined with a key and are dropped.
func PageAt(p *query.PageRequest, key []byte) *query.PageRequest {
	page := &query.PageRequest{}
	if p != nil {
		*page = *p
	}
	page.Key = key
	page.Offset = 0
	return page
}

// MergeResults merges the JSON form of a page into acc: arrays are
// concatenated, every other value is overwritten by next. A null array on
// either side counts as empty.
func MergeResults(acc, next map[string]any) map[string]any {
	out := make(map[string]any, len(acc))
	for k, v := range acc {
		out[k] = v
	}

	for k, v := range next {
		nextList, nextIsList := v.([]any)
		accList, accIsList := out[k].([]any)
		switch {
		case nextIsList && (accIsList || out[k] == nil):
			merged := make([]any, 0, len(accList)+len(nextList))
			out[k] = append(append(merged, accList...), nextList...)
		case v == nil && accIsList:
			// keep the accumulated entries
		default:
			out[k] = v
		}
	}
	return out
}
