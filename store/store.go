// Package store caches query results for the module stores and replays
// subscribed queries on every new block.
//
// Query results are kept in a SturdyC cache without TTL, keyed by the query
// name and the JSON form of its parameters. Commits always overwrite: the
// last write for a key wins.
//
// Documentation: https://github.com/viccon/sturdyc
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/pokt-network/poktroll/pkg/polylog"
	"github.com/viccon/sturdyc"

	"github.com/sei-protocol/sei-client-go/codec"
	"github.com/sei-protocol/sei-client-go/tx"
)

// SturdyC cache configuration. Results are never evicted: a shard only
// evicts once it holds capacity/numShards entries, which math.MaxInt puts
// out of reach. Shards grow on demand, nothing is preallocated.
const (
	cacheCapacity      = math.MaxInt // Effectively unbounded
	numShards          = 10          // Number of cache shards for concurrency
	evictionPercentage = 0           // Never evict
)

// noTTL keeps entries until they are overwritten or the store is reset.
const noTTL = time.Duration(math.MaxInt64)

// QueryName identifies a query action. Module is the proto package of the
// query service, e.g. "cosmos.gov.v1beta1", so that two modules can both
// expose a "QueryParams" without sharing an action or cached results.
type QueryName struct {
	Module string
	Name   string
}

// String returns the action name, e.g. "cosmos.gov.v1beta1/QueryParams".
func (q QueryName) String() string {
	return q.Module + "/" + q.Name
}

// QueryOptions controls a query action.
type QueryOptions struct {
	// Subscribe replays the query on every Update.
	Subscribe bool
	// All follows pagination.next_key and merges every page.
	All bool
}

// Subscription is a query action replayed on every Update. Action is a
// QueryName string and Params the proto3 JSON form of the query request.
type Subscription struct {
	Action string         `json:"action"`
	Params map[string]any `json:"params"`
	All    bool           `json:"all"`
}

// Key returns the subscription's identity: its JSON serialization.
func (s Subscription) Key() (string, error) {
	bz, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("Key: error marshaling subscription %s: %w", s.Action, err)
	}
	return string(bz), nil
}

// Action runs a registered store action for a subscription.
type Action func(ctx context.Context, sub Subscription) error

// Store is the state shared by the module stores: the query cache, the
// subscriptions, the registered actions and the signing client.
// It is safe for concurrent use.
type Store struct {
	logger   polylog.Logger
	registry *codec.Registry

	cache *sturdyc.Client[any]

	mu            sync.Mutex
	subscriptions map[string]Subscription
	actions       map[string]Action
	structures    map[string][]Field
	signer        tx.SigningClient
}

// New returns an empty store. A nil registry is replaced by an empty one.
func New(logger polylog.Logger, registry *codec.Registry) *Store {
	if registry == nil {
		registry = codec.NewRegistry()
	}
	return &Store{
		logger:        logger.With("component", "store"),
		registry:      registry,
		cache:         newCache(),
		subscriptions: make(map[string]Subscription),
		actions:       make(map[string]Action),
		structures:    make(map[string][]Field),
	}
}

func newCache() *sturdyc.Client[any] {
	return sturdyc.New[any](
		cacheCapacity,
		numShards,
		noTTL,
		evictionPercentage,
		sturdyc.WithNoContinuousEvictions(),
	)
}

// Registry returns the type registry shared by the module stores.
func (s *Store) Registry() *codec.Registry {
	return s.registry
}

// Logger returns the store's logger.
func (s *Store) Logger() polylog.Logger {
	return s.logger
}

// Key builds the cache key of a query from its parameters. A nil query
// is rendered as an empty object.
func Key(params, query any) (string, error) {
	if query == nil {
		query = map[string]any{}
	}
	bz, err := json.Marshal(struct {
		Params any `json:"params"`
		Query  any `json:"query"`
	}{Params: params, Query: query})
	if err != nil {
		return "", fmt.Errorf("Key: error marshaling query parameters: %w", err)
	}
	return string(bz), nil
}

func entryKey(query, key string) string {
	return query + ":" + key
}

// Commit stores value as the result of query for key, replacing any
// previous result.
func (s *Store) Commit(query, key string, value any) {
	s.cache.Set(entryKey(query, key), value)
	s.logger.Debug().
		Str("query", query).
		Str("key", key).
		Msg("Committed query result")
}

// Get returns the cached result of query for key.
func (s *Store) Get(query, key string) (any, bool) {
	value, ok := s.cache.Get(entryKey(query, key))
	if !ok {
		s.logger.Debug().
			Str("query", query).
			Str("key", key).
			Msg("Cache miss")
	}
	return value, ok
}

// GetAs returns the cached result of query for key when it holds a T.
func GetAs[T any](s *Store, query, key string) (T, bool) {
	var zero T
	value, ok := s.Get(query, key)
	if !ok {
		return zero, false
	}
	typed, ok := value.(T)
	if !ok {
		return zero, false
	}
	return typed, true
}

// Size returns the number of cached results.
func (s *Store) Size() int {
	return s.cache.Size()
}

// Subscribe adds sub to the replayed set. Subscribing twice is a no-op.
func (s *Store) Subscribe(sub Subscription) error {
	key, err := sub.Key()
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscriptions[key] = sub
	return nil
}

// Unsubscribe removes sub from the replayed set.
func (s *Store) Unsubscribe(sub Subscription) error {
	key, err := sub.Key()
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subscriptions, key)
	return nil
}

// Subscriptions returns the replayed set ordered by key.
func (s *Store) Subscriptions() []Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys := make([]string, 0, len(s.subscriptions))
	for key := range s.subscriptions {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	subs := make([]Subscription, 0, len(keys))
	for _, key := range keys {
		subs = append(subs, s.subscriptions[key])
	}
	return subs
}

// Reset drops every cached result and every subscription. Registered
// actions, structures and the signing client are kept.
func (s *Store) Reset() {
	for _, key := range s.cache.ScanKeys() {
		s.cache.Delete(key)
	}

	s.mu.Lock()
	s.subscriptions = make(map[string]Subscription)
	s.mu.Unlock()

	s.logger.Info().Msg("Store reset")
}

// RegisterAction makes an action available to Dispatch and to
// subscription replay.
func (s *Store) RegisterAction(name string, action Action) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.actions[name] = action
}

// Dispatch runs the action named by sub.Action.
func (s *Store) Dispatch(ctx context.Context, sub Subscription) error {
	s.mu.Lock()
	action, ok := s.actions[sub.Action]
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownAction, sub.Action)
	}
	return action(ctx, sub)
}

// Update replays every subscription. A failing subscription does not stop
// the others; all failures are joined, each labelled "Subscriptions".
func (s *Store) Update(ctx context.Context) error {
	subs := s.Subscriptions()
	s.logger.Debug().
		Int("subscriptions", len(subs)).
		Msg("Replaying subscriptions")

	var errs []error
	for _, sub := range subs {
		if err := s.Dispatch(ctx, sub); err != nil {
			s.logger.Error().Err(err).
				Str("action", sub.Action).
				Msg("Subscription replay failed")
			errs = append(errs, actionError("Subscriptions", ErrSubscription, err))
		}
	}
	return errors.Join(errs...)
}

// SetSigner sets the signing client used by Tx actions. A nil signer
// makes them fail with ErrMissingWallet.
func (s *Store) SetSigner(signer tx.SigningClient) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.signer = signer
}

// Signer returns the signing client, nil when none is set.
func (s *Store) Signer() tx.SigningClient {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.signer
}
