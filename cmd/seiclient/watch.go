package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"
	"time"

	distrtypes "github.com/cosmos/cosmos-sdk/x/distribution/types"
	govv1beta1 "github.com/cosmos/cosmos-sdk/x/gov/types/v1beta1"
	"github.com/spf13/cobra"

	"github.com/sei-protocol/sei-client-go/store"
)

// watchSnapshot is printed after every block that refreshed the store.
type watchSnapshot struct {
	Height        int64           `json:"height"`
	CommunityPool json.RawMessage `json:"community_pool,omitempty"`
	Proposals     json.RawMessage `json:"proposals,omitempty"`
}

func (c *cli) watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Print the community pool and the proposals in voting period on every new block",
		Long: `Subscribes to the community pool and to every proposal in voting period, then
replays both queries whenever the chain height moves and prints the refreshed results.
Stops on SIGINT or SIGTERM.`,
		Args:              cobra.NoArgs,
		PersistentPreRunE: c.connect,
		PostRunE:          c.close,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			poolReq := &distrtypes.QueryCommunityPoolRequest{}
			if _, err := c.client.Distribution.QueryCommunityPool(ctx, poolReq, store.QueryOptions{Subscribe: true}); err != nil {
				return err
			}
			proposalsReq := &govv1beta1.QueryProposalsRequest{ProposalStatus: govv1beta1.StatusVotingPeriod}
			if _, err := c.client.Gov.QueryProposals(ctx, proposalsReq, store.QueryOptions{Subscribe: true, All: true}); err != nil {
				return err
			}

			return c.watch(ctx, func() error {
				snapshot := watchSnapshot{Height: c.client.Watcher.Height()}
				if pool, ok := c.client.Distribution.GetCommunityPool(poolReq); ok {
					bz, err := c.client.Store.Registry().MarshalJSON(pool)
					if err != nil {
						return err
					}
					snapshot.CommunityPool = bz
				}
				if proposals, ok := c.client.Gov.GetProposals(proposalsReq); ok {
					bz, err := c.client.Store.Registry().MarshalJSON(proposals)
					if err != nil {
						return err
					}
					snapshot.Proposals = bz
				}
				return c.printJSON(snapshot)
			})
		},
	}
}

// watch polls for new blocks until ctx is done, calling onBlock after each
// block that refreshed the store.
func (c *cli) watch(ctx context.Context, onBlock func() error) error {
	ticker := time.NewTicker(c.cfg.Store.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			updated, err := c.client.Watcher.Poll(ctx)
			if err != nil {
				c.logger.Error().Err(err).Msg("Failed to refresh subscriptions")
				continue
			}
			if !updated {
				continue
			}
			if err := onBlock(); err != nil {
				return err
			}
		}
	}
}
