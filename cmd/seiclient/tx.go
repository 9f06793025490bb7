package main

import (
	"fmt"

	"strings"

	sdk "github.com/cosmos/cosmos-sdk/types"
	distrtypes "github.com/cosmos/cosmos-sdk/x/distribution/types"
	govv1beta1 "github.com/cosmos/cosmos-sdk/x/gov/types/v1beta1"
	"github.com/spf13/cobra"

	"github.com/sei-protocol/sei-client-go/tx"
)

const (
	flagFees      = "fees"
	flagFeesUsage = "Fee coins, e.g. 2000usei"
	flagGas       = "gas"
	flagGasUsage  = "Gas limit; defaults to the signer's configured gas"
	flagMemo      = "memo"
)

// txFlags are shared by every tx subcommand.
type txFlags struct {
	fees string
	gas  string
	memo string
}

func (f *txFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.fees, flagFees, "", flagFeesUsage)
	cmd.Flags().StringVar(&f.gas, flagGas, "", flagGasUsage)
	cmd.Flags().StringVar(&f.memo, flagMemo, "", "Transaction memo")
}

// fee returns the fee for the flags. With neither flag nor configured gas
// the store's default fee applies.
func (f *txFlags) fee(defaultGas string) (*tx.StdFee, error) {
	gas := f.gas
	if gas == "" {
		gas = defaultGas
	}
	if f.fees == "" && gas == "" {
		return nil, nil
	}
	if gas == "" {
		gas = tx.DefaultGas
	}

	amount, err := parseFees(f.fees)
	if err != nil {
		return nil, err
	}
	return &tx.StdFee{Amount: amount, Gas: gas}, nil
}

// parseFees parses a coin list such as "2000usei,1uatom".
func parseFees(fees string) (sdk.Coins, error) {
	coins, err := sdk.ParseCoinsNormalized(fees)
	if err != nil {
		return nil, fmt.Errorf("invalid fees %q: %w", fees, err)
	}
	if coins == nil {
		return sdk.NewCoins(), nil
	}
	return coins, nil
}

// parseVoteOption accepts "yes", "no", "abstain", "no_with_veto" or the
// full enum name.
func parseVoteOption(option string) (govv1beta1.VoteOption, error) {
	name := strings.ToUpper(option)
	if !strings.HasPrefix(name, "VOTE_OPTION_") {
		name = "VOTE_OPTION_" + name
	}
	return govv1beta1.VoteOptionFromString(name)
}

func (c *cli) txCmd() *cobra.Command {
	txCmd := &cobra.Command{
		Use:                "tx",
		Short:              "Sign and broadcast transactions with the configured signer",
		PersistentPreRunE:  c.connect,
		PersistentPostRunE: c.close,
	}

	distrCmd := &cobra.Command{Use: "distribution", Short: "Distribution transactions"}
	distrCmd.AddCommand(c.txWithdrawRewardsCmd())

	govCmd := &cobra.Command{Use: "gov", Short: "Gov transactions"}
	govCmd.AddCommand(c.txVoteCmd())

	txCmd.AddCommand(distrCmd, govCmd)
	return txCmd
}

func (c *cli) signerGas() string {
	if c.cfg.Signer == nil {
		return ""
	}
	return c.cfg.Signer.Gas
}

// signerAddress returns the configured signer's address, or "" when none
// is configured; the Tx action then reports the missing wallet.
func (c *cli) signerAddress() string {
	signer := c.client.Store.Signer()
	if signer == nil {
		return ""
	}
	return signer.Address()
}

func (c *cli) txWithdrawRewardsCmd() *cobra.Command {
	var flags txFlags
	cmd := &cobra.Command{
		Use:   "withdraw-rewards [validator]",
		Short: "Withdraw the signer's rewards from a validator",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fee, err := flags.fee(c.signerGas())
			if err != nil {
				return err
			}
			msg := &distrtypes.MsgWithdrawDelegatorReward{
				DelegatorAddress: c.signerAddress(),
				ValidatorAddress: args[0],
			}
			result, err := c.client.Distribution.SendMsgWithdrawDelegatorReward(cmd.Context(), msg, fee, flags.memo)
			if err != nil {
				return err
			}
			return c.printJSON(result)
		},
	}
	flags.register(cmd)
	return cmd
}

func (c *cli) txVoteCmd() *cobra.Command {
	var flags txFlags
	cmd := &cobra.Command{
		Use:   "vote [proposal-id] [option]",
		Short: "Vote on a proposal: yes, no, abstain or no_with_veto",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseProposalID(args[0])
			if err != nil {
				return err
			}
			option, err := parseVoteOption(args[1])
			if err != nil {
				return err
			}
			fee, err := flags.fee(c.signerGas())
			if err != nil {
				return err
			}
			msg := &govv1beta1.MsgVote{
				ProposalId: id,
				Voter:      c.signerAddress(),
				Option:     option,
			}
			result, err := c.client.Gov.SendMsgVote(cmd.Context(), msg, fee, flags.memo)
			if err != nil {
				return err
			}
			return c.printJSON(result)
		},
	}
	flags.register(cmd)
	return cmd
}
