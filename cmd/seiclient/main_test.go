package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	distrtypes "github.com/cosmos/cosmos-sdk/x/distribution/types"
	govv1beta1 "github.com/cosmos/cosmos-sdk/x/gov/types/v1beta1"
	"github.com/stretchr/testify/require"

	"github.com/sei-protocol/sei-client-go/codec"
	"github.com/sei-protocol/sei-client-go/tx"
)

func writeConfig(t *testing.T, restURL string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
grpc_config:
  host_port: localhost:9090
  insecure: true
rpc_url: http://localhost:26657
rest_url: `+restURL+`
logger:
  level: error
`), 0o600))
	return path
}

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()

	out := &bytes.Buffer{}
	cmd := newRootCmd(out)
	cmd.SetArgs(args)
	cmd.SetErr(io.Discard)
	err := cmd.Execute()
	return out.String(), err
}

func TestQueryCommands(t *testing.T) {
	reg := codec.NewRegistry()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var reply codec.Message
		switch r.URL.Path {
		case "/cosmos/distribution/v1beta1/community_pool":
			reply = &distrtypes.QueryCommunityPoolResponse{
				Pool: sdk.NewDecCoins(sdk.NewDecCoinFromDec("usei", math.LegacyNewDecWithPrec(125, 1))),
			}
		case "/cosmos/gov/v1beta1/proposals":
			if r.URL.Query().Get("proposal_status") != "PROPOSAL_STATUS_PASSED" {
				http.Error(w, `{"code":3,"message":"unexpected status filter"}`, http.StatusBadRequest)
				return
			}
			reply = &govv1beta1.QueryProposalsResponse{Proposals: govv1beta1.Proposals{{
				ProposalId:       9,
				Status:           govv1beta1.StatusPassed,
				FinalTallyResult: govv1beta1.EmptyTallyResult(),
			}}}
		default:
			http.NotFound(w, r)
			return
		}
		bz, err := reg.MarshalJSON(reply)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		_, _ = w.Write(bz)
	}))
	defer server.Close()
	config := writeConfig(t, server.URL)

	out, err := runCmd(t, "query", "distribution", "community-pool", "--config", config)
	require.NoError(t, err)

	var pool map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &pool))
	coin := pool["pool"].([]any)[0].(map[string]any)
	require.Equal(t, "usei", coin["denom"])
	require.Equal(t, "12.500000000000000000", coin["amount"])

	out, err = runCmd(t, "q", "gov", "proposals", "--status", "PROPOSAL_STATUS_PASSED", "--config", config)
	require.NoError(t, err)
	require.Contains(t, out, `"proposal_id": "9"`)
	require.Contains(t, out, `"status": "PROPOSAL_STATUS_PASSED"`)

	_, err = runCmd(t, "q", "gov", "proposals", "--status", "PASSED_MAYBE", "--config", config)
	require.Error(t, err)

	_, err = runCmd(t, "query", "gov", "tally", "nine", "--config", config)
	require.ErrorContains(t, err, "invalid proposal ID")

	_, err = runCmd(t, "query", "gov", "proposal", "4", "--config", config)
	require.ErrorContains(t, err, "QueryClient:QueryProposal")
}

func TestTxCommands_MissingWallet(t *testing.T) {
	config := writeConfig(t, "http://localhost:1317")

	_, err := runCmd(t, "tx", "gov", "vote", "3", "yes", "--config", config)
	require.ErrorContains(t, err, "TxClient:MsgVote:Init")

	_, err = runCmd(t, "tx", "gov", "vote", "3", "maybe", "--config", config)
	require.Error(t, err)
}

func TestMissingConfig(t *testing.T) {
	_, err := runCmd(t, "query", "distribution", "params", "--config", filepath.Join(t.TempDir(), "none.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseVoteOption(t *testing.T) {
	for arg, want := range map[string]govv1beta1.VoteOption{
		"yes":                 govv1beta1.OptionYes,
		"No_With_Veto":        govv1beta1.OptionNoWithVeto,
		"VOTE_OPTION_ABSTAIN": govv1beta1.OptionAbstain,
		"vote_option_no":      govv1beta1.OptionNo,
	} {
		option, err := parseVoteOption(arg)
		require.NoError(t, err, arg)
		require.Equal(t, want, option, arg)
	}

	_, err := parseVoteOption("maybe")
	require.Error(t, err)
}

func TestTxFlags_Fee(t *testing.T) {
	tests := []struct {
		desc       string
		flags      txFlags
		defaultGas string
		wantFees   string
		wantGas    string
		wantNil    bool
		wantErr    bool
	}{
		{
			desc:    "no flags and no configured gas uses the store default",
			wantNil: true,
		},
		{
			desc:       "configured gas",
			defaultGas: "300000",
			wantGas:    "300000",
		},
		{
			desc:       "flags override configured gas",
			flags:      txFlags{fees: "2000usei", gas: "150000"},
			defaultGas: "300000",
			wantFees:   "2000usei",
			wantGas:    "150000",
		},
		{
			desc:     "fees without gas",
			flags:    txFlags{fees: "5usei"},
			wantFees: "5usei",
			wantGas:  tx.DefaultGas,
		},
		{
			desc:    "invalid fees",
			flags:   txFlags{fees: "five usei"},
			wantErr: true,
		},
	}

	for _, test := range tests {
		t.Run(test.desc, func(t *testing.T) {
			fee, err := test.flags.fee(test.defaultGas)
			if test.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			if test.wantNil {
				require.Nil(t, fee)
				return
			}
			require.NotNil(t, fee.Amount)
			require.Equal(t, test.wantFees, fee.Amount.String())
			require.Equal(t, test.wantGas, fee.Gas)
		})
	}
}
