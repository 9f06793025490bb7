package gov

import (
	"context"
	"errors"
	"io"
	"testing"

	"cosmossdk.io/math"
	"github.com/cosmos/cosmos-sdk/types/query"
	govv1beta1 "github.com/cosmos/cosmos-sdk/x/gov/types/v1beta1"
	"github.com/pokt-network/poktroll/pkg/polylog/polyzero"
	"github.com/stretchr/testify/require"

	"github.com/sei-protocol/sei-client-go/codec"
	"github.com/sei-protocol/sei-client-go/rpc"
	"github.com/sei-protocol/sei-client-go/store"
	"github.com/sei-protocol/sei-client-go/tx"
)

// fakeNode answers gov queries from a handler keyed by method name.
type fakeNode map[string]func(data []byte) (codec.Message, error)

func (n fakeNode) conn(reg *codec.Registry) *rpc.ClientConn {
	return rpc.NewClientConn(rpc.TransportFunc(func(_ context.Context, fullMethod string, data []byte) ([]byte, error) {
		service, method := rpc.SplitMethod(fullMethod)
		handler, ok := n[method]
		if service != "cosmos.gov.v1beta1.Query" || !ok {
			return nil, errors.New("unimplemented")
		}
		resp, err := handler(data)
		if err != nil {
			return nil, err
		}
		return reg.Marshal(resp)
	}), reg)
}

func newTestModule(node fakeNode) (*Module, *store.Store) {
	s := store.New(polyzero.NewLogger(polyzero.WithOutput(io.Discard)), nil)
	return NewModule(s, govv1beta1.NewQueryClient(node.conn(s.Registry()))), s
}

type fakeSigner struct {
	msgs []codec.EncodeObject
}

func (f *fakeSigner) Address() string { return "sei1voter" }

func (f *fakeSigner) SignAndBroadcast(_ context.Context, msgs []codec.EncodeObject, _ tx.StdFee, _ string) (*tx.BroadcastResult, error) {
	f.msgs = append(f.msgs, msgs...)
	return &tx.BroadcastResult{Height: 11, TxHash: "VOTE"}, nil
}

func votingProposal(id uint64) govv1beta1.Proposal {
	return govv1beta1.Proposal{
		ProposalId:       id,
		Status:           govv1beta1.StatusVotingPeriod,
		FinalTallyResult: govv1beta1.EmptyTallyResult(),
	}
}

func TestQueryProposals_AllPages(t *testing.T) {
	pages := map[string]*govv1beta1.QueryProposalsResponse{
		"": {
			Proposals:  govv1beta1.Proposals{votingProposal(1)},
			Pagination: &query.PageResponse{NextKey: []byte("p2"), Total: 2},
		},
		"p2": {
			Proposals: govv1beta1.Proposals{votingProposal(2)},
		},
	}

	module, s := newTestModule(fakeNode{
		"Proposals": func(data []byte) (codec.Message, error) {
			req := &govv1beta1.QueryProposalsRequest{}
			if err := codec.Unmarshal(data, req); err != nil {
				return nil, err
			}
			if req.ProposalStatus != govv1beta1.StatusVotingPeriod {
				return nil, errors.New("unexpected status")
			}
			return pages[string(req.Pagination.GetKey())], nil
		},
	})

	req := &govv1beta1.QueryProposalsRequest{ProposalStatus: govv1beta1.StatusVotingPeriod}
	resp, err := module.QueryProposals(context.Background(), req, store.QueryOptions{All: true, Subscribe: true})
	require.NoError(t, err)
	require.Len(t, resp.Proposals, 2)
	require.Equal(t, uint64(2), resp.Proposals[1].ProposalId)

	subs := s.Subscriptions()
	require.Len(t, subs, 1)
	require.Equal(t, "cosmos.gov.v1beta1/QueryProposals", subs[0].Action)
	require.True(t, subs[0].All)
	require.Equal(t, "PROPOSAL_STATUS_VOTING_PERIOD", subs[0].Params["proposal_status"])

	// Replaying decodes the enum back from its name.
	require.NoError(t, s.Update(context.Background()))
	cached, ok := module.GetProposals(req)
	require.True(t, ok)
	require.Len(t, cached.Proposals, 2)
}

func TestQueryProposals_SinglePage(t *testing.T) {
	calls := 0
	module, _ := newTestModule(fakeNode{
		"Proposals": func([]byte) (codec.Message, error) {
			calls++
			return &govv1beta1.QueryProposalsResponse{
				Proposals:  govv1beta1.Proposals{votingProposal(1)},
				Pagination: &query.PageResponse{NextKey: []byte("p2")},
			}, nil
		},
	})

	resp, err := module.QueryProposals(context.Background(), &govv1beta1.QueryProposalsRequest{}, store.QueryOptions{})
	require.NoError(t, err)
	require.Equal(t, 1, calls)
	require.Equal(t, []byte("p2"), resp.Pagination.NextKey)
}

func TestQueryTallyResult(t *testing.T) {
	module, _ := newTestModule(fakeNode{
		"TallyResult": func(data []byte) (codec.Message, error) {
			req := &govv1beta1.QueryTallyResultRequest{}
			if err := codec.Unmarshal(data, req); err != nil {
				return nil, err
			}
			if req.ProposalId != 4 {
				return nil, errors.New("unexpected proposal")
			}
			return &govv1beta1.QueryTallyResultResponse{
				Tally: govv1beta1.NewTallyResult(math.NewInt(10), math.ZeroInt(), math.NewInt(2), math.ZeroInt()),
			}, nil
		},
	})

	req := &govv1beta1.QueryTallyResultRequest{ProposalId: 4}
	resp, err := module.QueryTallyResult(context.Background(), req, store.QueryOptions{})
	require.NoError(t, err)
	require.Equal(t, "10", resp.Tally.Yes.String())

	_, ok := module.GetTallyResult(&govv1beta1.QueryTallyResultRequest{ProposalId: 5})
	require.False(t, ok)
	cached, ok := module.GetTallyResult(req)
	require.True(t, ok)
	require.Same(t, resp, cached)
}

func TestQueryParams_TallyDecimals(t *testing.T) {
	module, _ := newTestModule(fakeNode{
		"Params": func([]byte) (codec.Message, error) {
			return &govv1beta1.QueryParamsResponse{TallyParams: govv1beta1.DefaultTallyParams()}, nil
		},
	})

	resp, err := module.QueryParams(context.Background(), &govv1beta1.QueryParamsRequest{ParamsType: "tallying"}, store.QueryOptions{})
	require.NoError(t, err)
	require.Equal(t, "0.334000000000000000", resp.TallyParams.Quorum.String())
	require.Equal(t, "0.500000000000000000", resp.TallyParams.Threshold.String())
}

func TestQueryVote_Error(t *testing.T) {
	module, _ := newTestModule(fakeNode{})

	_, err := module.QueryVote(context.Background(), &govv1beta1.QueryVoteRequest{ProposalId: 1, Voter: "sei1v"}, store.QueryOptions{})
	require.ErrorIs(t, err, store.ErrQueryFailed)
	require.Contains(t, err.Error(), "QueryClient:QueryVote")
}

func TestTxActions(t *testing.T) {
	module, s := newTestModule(fakeNode{})
	ctx := context.Background()

	_, err := module.SendMsgVote(ctx, &govv1beta1.MsgVote{ProposalId: 1}, nil, "")
	require.ErrorIs(t, err, store.ErrMissingWallet)
	require.Contains(t, err.Error(), "TxClient:MsgVote:Init")

	signer := &fakeSigner{}
	s.SetSigner(signer)

	vote, err := module.MsgVote(map[string]any{
		"proposal_id": uint64(3),
		"voter":       "sei1voter",
		"option":      "VOTE_OPTION_NO_WITH_VETO",
	})
	require.NoError(t, err)
	require.Equal(t, &govv1beta1.MsgVote{ProposalId: 3, Voter: "sei1voter", Option: govv1beta1.OptionNoWithVeto}, vote.Value)

	res, err := module.SendMsgVote(ctx, vote.Value.(*govv1beta1.MsgVote), nil, "")
	require.NoError(t, err)
	require.Equal(t, "VOTE", res.TxHash)
	require.Equal(t, "/cosmos.gov.v1beta1.MsgVote", signer.msgs[0].TypeURL)

	weighted, err := module.MsgVoteWeighted(map[string]any{
		"proposal_id": "3",
		"voter":       "sei1voter",
		"options": []any{
			map[string]any{"option": "VOTE_OPTION_YES", "weight": "0.5"},
			map[string]any{"option": "VOTE_OPTION_ABSTAIN", "weight": "0.5"},
		},
	})
	require.NoError(t, err)
	packed, err := weighted.Any()
	require.NoError(t, err)
	decoded := &govv1beta1.MsgVoteWeighted{}
	require.NoError(t, codec.Unmarshal(packed.Value, decoded))
	require.Len(t, decoded.Options, 2)
	require.Equal(t, "0.500000000000000000", decoded.Options[0].Weight.String())

	_, err = module.MsgDeposit(map[string]any{"proposal_id": "three"})
	require.ErrorIs(t, err, store.ErrCreateMessage)
	require.Contains(t, err.Error(), "TxClient:MsgDeposit:Create")
}

func TestMsgSubmitProposal_ResolvesContent(t *testing.T) {
	module, s := newTestModule(fakeNode{})
	s.SetSigner(&fakeSigner{})

	obj, err := module.MsgSubmitProposal(map[string]any{
		"content": map[string]any{
			"@type":       "/cosmos.gov.v1beta1.TextProposal",
			"title":       "Raise gas",
			"description": "Raise the block gas limit",
		},
		"initial_deposit": []any{map[string]any{"denom": "usei", "amount": "1000"}},
		"proposer":        "sei1p",
	})
	require.NoError(t, err)

	msg := obj.Value.(*govv1beta1.MsgSubmitProposal)
	require.Equal(t, "1000usei", msg.InitialDeposit.String())
	require.Equal(t, &govv1beta1.TextProposal{Title: "Raise gas", Description: "Raise the block gas limit"}, msg.GetContent())

	content, err := s.Registry().Unpack(msg.Content)
	require.NoError(t, err)
	require.Equal(t, &govv1beta1.TextProposal{Title: "Raise gas", Description: "Raise the block gas limit"}, content)

	_, err = module.MsgSubmitProposal(map[string]any{"content": map[string]any{"@type": "/unknown.Proposal"}})
	require.ErrorIs(t, err, store.ErrCreateMessage)
}

func TestNewModule_RegistersTypes(t *testing.T) {
	_, s := newTestModule(fakeNode{})

	fields, ok := s.TypeStructure("cosmos.gov.v1beta1.TallyResult")
	require.True(t, ok)
	require.Len(t, fields, 4)

	vote, ok := s.TypeStructure("cosmos.gov.v1beta1.Vote")
	require.True(t, ok)
	require.Equal(t, store.Field{Name: "proposal_id", Kind: "string"}, vote[0])

	require.Contains(t, s.Registry().TypeURLs(), "/cosmos.gov.v1beta1.TextProposal")
}
