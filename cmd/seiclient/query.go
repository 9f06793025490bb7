package main

import (
	"fmt"
	"strconv"

	"github.com/cosmos/cosmos-sdk/types/query"
	distrtypes "github.com/cosmos/cosmos-sdk/x/distribution/types"
	govv1beta1 "github.com/cosmos/cosmos-sdk/x/gov/types/v1beta1"
	"github.com/spf13/cobra"

	"github.com/sei-protocol/sei-client-go/store"
)

const (
	flagAll         = "all"
	flagAllUsage    = "Fetch every page and concatenate the results"
	flagLimit       = "limit"
	flagStatus      = "status"
	flagStatusUsage = "Filter by proposal status, e.g. PROPOSAL_STATUS_VOTING_PERIOD"
)

func (c *cli) queryCmd() *cobra.Command {
	queryCmd := &cobra.Command{
		Use:                "query",
		Aliases:            []string{"q"},
		Short:              "Query module state",
		PersistentPreRunE:  c.connect,
		PersistentPostRunE: c.close,
	}

	distrCmd := &cobra.Command{Use: "distribution", Short: "Query the distribution module"}
	distrCmd.AddCommand(
		c.queryDistributionParamsCmd(),
		c.queryCommunityPoolCmd(),
		c.queryRewardsCmd(),
		c.querySlashesCmd(),
	)

	govCmd := &cobra.Command{Use: "gov", Short: "Query the gov module"}
	govCmd.AddCommand(
		c.queryProposalsCmd(),
		c.queryProposalCmd(),
		c.queryTallyCmd(),
	)

	queryCmd.AddCommand(distrCmd, govCmd)
	return queryCmd
}

func (c *cli) queryDistributionParamsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "params",
		Short: "Query the distribution parameters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			resp, err := c.client.Distribution.QueryParams(cmd.Context(), &distrtypes.QueryParamsRequest{}, store.QueryOptions{})
			if err != nil {
				return err
			}
			return c.printJSON(resp)
		},
	}
}

func (c *cli) queryCommunityPoolCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "community-pool",
		Short: "Query the community pool coins",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			resp, err := c.client.Distribution.QueryCommunityPool(cmd.Context(), &distrtypes.QueryCommunityPoolRequest{}, store.QueryOptions{})
			if err != nil {
				return err
			}
			return c.printJSON(resp)
		},
	}
}

func (c *cli) queryRewardsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rewards [delegator] [validator]",
		Short: "Query a delegator's rewards, from every validator or from one",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 2 {
				resp, err := c.client.Distribution.QueryDelegationRewards(cmd.Context(), &distrtypes.QueryDelegationRewardsRequest{
					DelegatorAddress: args[0],
					ValidatorAddress: args[1],
				}, store.QueryOptions{})
				if err != nil {
					return err
				}
				return c.printJSON(resp)
			}

			resp, err := c.client.Distribution.QueryDelegationTotalRewards(cmd.Context(), &distrtypes.QueryDelegationTotalRewardsRequest{
				DelegatorAddress: args[0],
			}, store.QueryOptions{})
			if err != nil {
				return err
			}
			return c.printJSON(resp)
		},
	}
}

func (c *cli) querySlashesCmd() *cobra.Command {
	var (
		all   bool
		limit uint64
	)
	cmd := &cobra.Command{
		Use:   "slashes [validator]",
		Short: "Query a validator's slash events",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := &distrtypes.QueryValidatorSlashesRequest{
				ValidatorAddress: args[0],
				Pagination:       pageRequest(limit),
			}
			resp, err := c.client.Distribution.QueryValidatorSlashes(cmd.Context(), req, store.QueryOptions{All: all})
			if err != nil {
				return err
			}
			return c.printJSON(resp)
		},
	}
	cmd.Flags().BoolVar(&all, flagAll, false, flagAllUsage)
	cmd.Flags().Uint64Var(&limit, flagLimit, 0, "Page size")
	return cmd
}

func (c *cli) queryProposalsCmd() *cobra.Command {
	var (
		all    bool
		limit  uint64
		status string
	)
	cmd := &cobra.Command{
		Use:   "proposals",
		Short: "Query proposals, optionally filtered by status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req := &govv1beta1.QueryProposalsRequest{Pagination: pageRequest(limit)}
			if status != "" {
				proposalStatus, err := govv1beta1.ProposalStatusFromString(status)
				if err != nil {
					return err
				}
				req.ProposalStatus = proposalStatus
			}
			resp, err := c.client.Gov.QueryProposals(cmd.Context(), req, store.QueryOptions{All: all})
			if err != nil {
				return err
			}
			return c.printJSON(resp)
		},
	}
	cmd.Flags().BoolVar(&all, flagAll, false, flagAllUsage)
	cmd.Flags().Uint64Var(&limit, flagLimit, 0, "Page size")
	cmd.Flags().StringVar(&status, flagStatus, "", flagStatusUsage)
	return cmd
}

func (c *cli) queryProposalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "proposal [proposal-id]",
		Short: "Query a proposal by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseProposalID(args[0])
			if err != nil {
				return err
			}
			resp, err := c.client.Gov.QueryProposal(cmd.Context(), &govv1beta1.QueryProposalRequest{ProposalId: id}, store.QueryOptions{})
			if err != nil {
				return err
			}
			return c.printJSON(resp)
		},
	}
}

func (c *cli) queryTallyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tally [proposal-id]",
		Short: "Query the tally of a proposal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseProposalID(args[0])
			if err != nil {
				return err
			}
			resp, err := c.client.Gov.QueryTallyResult(cmd.Context(), &govv1beta1.QueryTallyResultRequest{ProposalId: id}, store.QueryOptions{})
			if err != nil {
				return err
			}
			return c.printJSON(resp)
		},
	}
}

func pageRequest(limit uint64) *query.PageRequest {
	if limit == 0 {
		return nil
	}
	return &query.PageRequest{Limit: limit}
}

func parseProposalID(arg string) (uint64, error) {
	id, err := strconv.ParseUint(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid proposal ID %q: %w", arg, err)
	}
	return id, nil
}
