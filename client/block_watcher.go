package client

import (
	"context"
	"sync"
	"time"

	"github.com/pokt-network/poktroll/pkg/polylog"

	"github.com/sei-protocol/sei-client-go/store"
)

// pollTimeout bounds a single height check.
const pollTimeout = 10 * time.Second

// HeightFetcher returns the latest committed block height.
type HeightFetcher interface {
	LatestBlockHeight(ctx context.Context) (int64, error)
}

// BlockWatcher polls the chain height and replays the store's
// subscriptions every time a new block is committed.
type BlockWatcher struct {
	logger   polylog.Logger
	heights  HeightFetcher
	store    *store.Store
	interval time.Duration

	heightMu   sync.RWMutex
	lastHeight int64
}

func NewBlockWatcher(
	logger polylog.Logger,
	heights HeightFetcher,
	s *store.Store,
	interval time.Duration,
) *BlockWatcher {
	return &BlockWatcher{
		logger:   logger.With("component", "block_watcher"),
		heights:  heights,
		store:    s,
		interval: interval,
	}
}

// Height returns the last observed block height.
func (w *BlockWatcher) Height() int64 {
	w.heightMu.RLock()
	defer w.heightMu.RUnlock()
	return w.lastHeight
}

// Run polls until ctx is cancelled. Poll failures are logged and retried
// on the next tick.
func (w *BlockWatcher) Run(ctx context.Context) {
	w.logger.Info().
		Dur("interval", w.interval).
		Msg("Starting block watcher")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info().Msg("Block watcher stopped")
			return
		case <-ticker.C:
			if _, err := w.Poll(ctx); err != nil {
				w.logger.Error().
					Err(err).
					Msg("Failed to refresh subscriptions on new block")
			}
		}
	}
}

// Poll checks the chain height once. When it has moved past the last
// observed height every subscription is replayed, and Poll reports true.
func (w *BlockWatcher) Poll(ctx context.Context) (bool, error) {
	pollCtx, cancel := context.WithTimeout(ctx, pollTimeout)
	height, err := w.heights.LatestBlockHeight(pollCtx)
	cancel()
	if err != nil {
		return false, err
	}

	w.heightMu.Lock()
	if height <= w.lastHeight {
		w.heightMu.Unlock()
		return false, nil
	}
	w.lastHeight = height
	w.heightMu.Unlock()

	w.logger.Debug().
		Int64("height", height).
		Int("subscriptions", len(w.store.Subscriptions())).
		Msg("New block, replaying subscriptions")

	return true, w.store.Update(ctx)
}
