// Package gov is the store module of cosmos.gov.v1beta1: cached queries,
// subscriptions and Tx actions over the module's clients.
package gov

import (
	"context"

	govv1beta1 "github.com/cosmos/cosmos-sdk/x/gov/types/v1beta1"
	"google.golang.org/grpc"

	"github.com/sei-protocol/sei-client-go/codec"
	"github.com/sei-protocol/sei-client-go/store"
	"github.com/sei-protocol/sei-client-go/tx"
	govclient "github.com/sei-protocol/sei-client-go/x/gov"
)

// ProtoPackage namespaces the module's actions and cached results in a
// shared store.
const ProtoPackage = "cosmos.gov.v1beta1"

// Querier is satisfied by the generated gRPC client and by
// govclient.RESTClient.
type Querier = govv1beta1.QueryClient

var _ Querier = (*govclient.RESTClient)(nil)

func queryName(name string) store.QueryName {
	return store.QueryName{Module: ProtoPackage, Name: name}
}

// Module holds the gov actions.
type Module struct {
	store   *store.Store
	querier Querier
}

func NewModule(s *store.Store, querier Querier) *Module {
	m := &Module{store: s, querier: querier}

	s.Registry().Register(govv1beta1.RegisterInterfaces)
	s.RegisterStructures(
		&govv1beta1.WeightedVoteOption{},
		&govv1beta1.TextProposal{},
		&govv1beta1.Deposit{},
		&govv1beta1.Proposal{},
		&govv1beta1.TallyResult{},
		&govv1beta1.Vote{},
		&govv1beta1.DepositParams{},
		&govv1beta1.VotingParams{},
		&govv1beta1.TallyParams{},
	)

	store.RegisterQuery(s, queryName("QueryProposal"), m.QueryProposal)
	store.RegisterQuery(s, queryName("QueryProposals"), m.QueryProposals)
	store.RegisterQuery(s, queryName("QueryVote"), m.QueryVote)
	store.RegisterQuery(s, queryName("QueryVotes"), m.QueryVotes)
	store.RegisterQuery(s, queryName("QueryParams"), m.QueryParams)
	store.RegisterQuery(s, queryName("QueryDeposit"), m.QueryDeposit)
	store.RegisterQuery(s, queryName("QueryDeposits"), m.QueryDeposits)
	store.RegisterQuery(s, queryName("QueryTallyResult"), m.QueryTallyResult)

	return m
}

func (m *Module) QueryProposal(
	ctx context.Context,
	req *govv1beta1.QueryProposalRequest,
	opts store.QueryOptions,
) (*govv1beta1.QueryProposalResponse, error) {
	return store.Query(ctx, m.store, queryName("QueryProposal"), req, opts, m.querier.Proposal)
}

func (m *Module) GetProposal(req *govv1beta1.QueryProposalRequest) (*govv1beta1.QueryProposalResponse, bool) {
	return store.Lookup[govv1beta1.QueryProposalResponse](m.store, queryName("QueryProposal"), req)
}

// QueryProposals is paginated: with opts.All every page is fetched and the
// proposals are concatenated.
func (m *Module) QueryProposals(
	ctx context.Context,
	req *govv1beta1.QueryProposalsRequest,
	opts store.QueryOptions,
) (*govv1beta1.QueryProposalsResponse, error) {
	return store.Query(ctx, m.store, queryName("QueryProposals"), req, opts,
		func(ctx context.Context, req *govv1beta1.QueryProposalsRequest, _ ...grpc.CallOption) (*govv1beta1.QueryProposalsResponse, error) {
			return store.FetchAll(ctx, m.store.Registry(), opts.All,
				func(ctx context.Context, key []byte) (*govv1beta1.QueryProposalsResponse, error) {
					page := *req
					if key != nil {
						page.Pagination = store.PageAt(req.Pagination, key)
					}
					return m.querier.Proposals(ctx, &page)
				},
				func(resp *govv1beta1.QueryProposalsResponse) []byte {
					return resp.Pagination.GetNextKey()
				},
			)
		},
	)
}

func (m *Module) GetProposals(req *govv1beta1.QueryProposalsRequest) (*govv1beta1.QueryProposalsResponse, bool) {
	return store.Lookup[govv1beta1.QueryProposalsResponse](m.store, queryName("QueryProposals"), req)
}

func (m *Module) QueryVote(
	ctx context.Context,
	req *govv1beta1.QueryVoteRequest,
	opts store.QueryOptions,
) (*govv1beta1.QueryVoteResponse, error) {
	return store.Query(ctx, m.store, queryName("QueryVote"), req, opts, m.querier.Vote)
}

func (m *Module) GetVote(req *govv1beta1.QueryVoteRequest) (*govv1beta1.QueryVoteResponse, bool) {
	return store.Lookup[govv1beta1.QueryVoteResponse](m.store, queryName("QueryVote"), req)
}

// QueryVotes is paginated like QueryProposals.
func (m *Module) QueryVotes(
	ctx context.Context,
	req *govv1beta1.QueryVotesRequest,
	opts store.QueryOptions,
) (*govv1beta1.QueryVotesResponse, error) {
	return store.Query(ctx, m.store, queryName("QueryVotes"), req, opts,
		func(ctx context.Context, req *govv1beta1.QueryVotesRequest, _ ...grpc.CallOption) (*govv1beta1.QueryVotesResponse, error) {
			return store.FetchAll(ctx, m.store.Registry(), opts.All,
				func(ctx context.Context, key []byte) (*govv1beta1.QueryVotesResponse, error) {
					page := *req
					if key != nil {
						page.Pagination = store.PageAt(req.Pagination, key)
					}
					return m.querier.Votes(ctx, &page)
				},
				func(resp *govv1beta1.QueryVotesResponse) []byte {
					return resp.Pagination.GetNextKey()
				},
			)
		},
	)
}

func (m *Module) GetVotes(req *govv1beta1.QueryVotesRequest) (*govv1beta1.QueryVotesResponse, bool) {
	return store.Lookup[govv1beta1.QueryVotesResponse](m.store, queryName("QueryVotes"), req)
}

func (m *Module) QueryParams(
	ctx context.Context,
	req *govv1beta1.QueryParamsRequest,
	opts store.QueryOptions,
) (*govv1beta1.QueryParamsResponse, error) {
	return store.Query(ctx, m.store, queryName("QueryParams"), req, opts, m.querier.Params)
}

func (m *Module) GetParams(req *govv1beta1.QueryParamsRequest) (*govv1beta1.QueryParamsResponse, bool) {
	return store.Lookup[govv1beta1.QueryParamsResponse](m.store, queryName("QueryParams"), req)
}

func (m *Module) QueryDeposit(
	ctx context.Context,
	req *govv1beta1.QueryDepositRequest,
	opts store.QueryOptions,
) (*govv1beta1.QueryDepositResponse, error) {
	return store.Query(ctx, m.store, queryName("QueryDeposit"), req, opts, m.querier.Deposit)
}

func (m *Module) GetDeposit(req *govv1beta1.QueryDepositRequest) (*govv1beta1.QueryDepositResponse, bool) {
	return store.Lookup[govv1beta1.QueryDepositResponse](m.store, queryName("QueryDeposit"), req)
}

// QueryDeposits is paginated like QueryProposals.
func (m *Module) QueryDeposits(
	ctx context.Context,
	req *govv1beta1.QueryDepositsRequest,
	opts store.QueryOptions,
) (*govv1beta1.QueryDepositsResponse, error) {
	return store.Query(ctx, m.store, queryName("QueryDeposits"), req, opts,
		func(ctx context.Context, req *govv1beta1.QueryDepositsRequest, _ ...grpc.CallOption) (*govv1beta1.QueryDepositsResponse, error) {
			return store.FetchAll(ctx, m.store.Registry(), opts.All,
				func(ctx context.Context, key []byte) (*govv1beta1.QueryDepositsResponse, error) {
					page := *req
					if key != nil {
						page.Pagination = store.PageAt(req.Pagination, key)
					}
					return m.querier.Deposits(ctx, &page)
				},
				func(resp *govv1beta1.QueryDepositsResponse) []byte {
					return resp.Pagination.GetNextKey()
				},
			)
		},
	)
}

func (m *Module) GetDeposits(req *govv1beta1.QueryDepositsRequest) (*govv1beta1.QueryDepositsResponse, bool) {
	return store.Lookup[govv1beta1.QueryDepositsResponse](m.store, queryName("QueryDeposits"), req)
}

func (m *Module) QueryTallyResult(
	ctx context.Context,
	req *govv1beta1.QueryTallyResultRequest,
	opts store.QueryOptions,
) (*govv1beta1.QueryTallyResultResponse, error) {
	return store.Query(ctx, m.store, queryName("QueryTallyResult"), req, opts, m.querier.TallyResult)
}

func (m *Module) GetTallyResult(req *govv1beta1.QueryTallyResultRequest) (*govv1beta1.QueryTallyResultResponse, bool) {
	return store.Lookup[govv1beta1.QueryTallyResultResponse](m.store, queryName("QueryTallyResult"), req)
}

func (m *Module) txClient(msg string) (*govclient.TxClient, error) {
	client, err := govclient.NewTxClient(m.store.Signer())
	if err != nil {
		return nil, store.InitError(msg, err)
	}
	return client, nil
}

func (m *Module) SendMsgSubmitProposal(
	ctx context.Context,
	msg *govv1beta1.MsgSubmitProposal,
	fee *tx.StdFee,
	memo string,
) (*tx.BroadcastResult, error) {
	const name = "MsgSubmitProposal"
	client, err := m.txClient(name)
	if err != nil {
		return nil, err
	}
	return m.store.Broadcast(ctx, client, name, client.MsgSubmitProposal(msg), fee, memo)
}

func (m *Module) SendMsgVote(
	ctx context.Context,
	msg *govv1beta1.MsgVote,
	fee *tx.StdFee,
	memo string,
) (*tx.BroadcastResult, error) {
	const name = "MsgVote"
	client, err := m.txClient(name)
	if err != nil {
		return nil, err
	}
	return m.store.Broadcast(ctx, client, name, client.MsgVote(msg), fee, memo)
}

func (m *Module) SendMsgVoteWeighted(
	ctx context.Context,
	msg *govv1beta1.MsgVoteWeighted,
	fee *tx.StdFee,
	memo string,
) (*tx.BroadcastResult, error) {
	const name = "MsgVoteWeighted"
	client, err := m.txClient(name)
	if err != nil {
		return nil, err
	}
	return m.store.Broadcast(ctx, client, name, client.MsgVoteWeighted(msg), fee, memo)
}

func (m *Module) SendMsgDeposit(
	ctx context.Context,
	msg *govv1beta1.MsgDeposit,
	fee *tx.StdFee,
	memo string,
) (*tx.BroadcastResult, error) {
	const name = "MsgDeposit"
	client, err := m.txClient(name)
	if err != nil {
		return nil, err
	}
	return m.store.Broadcast(ctx, client, name, client.MsgDeposit(msg), fee, memo)
}

// MsgSubmitProposal builds the message from a *govv1beta1.MsgSubmitProposal
// or a partial proto3 JSON object. A content given as {"@type": ...} is
// resolved through the store's registry.
func (m *Module) MsgSubmitProposal(value any) (codec.EncodeObject, error) {
	const name = "MsgSubmitProposal"
	client, err := m.txClient(name)
	if err != nil {
		return codec.EncodeObject{}, err
	}
	msg, err := store.Build[govv1beta1.MsgSubmitProposal](m.store.Registry(), value)
	if err != nil {
		return codec.EncodeObject{}, store.CreateError(name, err)
	}
	return client.MsgSubmitProposal(msg), nil
}

func (m *Module) MsgVote(value any) (codec.EncodeObject, error) {
	const name = "MsgVote"
	client, err := m.txClient(name)
	if err != nil {
		return codec.EncodeObject{}, err
	}
	msg, err := store.Build[govv1beta1.MsgVote](m.store.Registry(), value)
	if err != nil {
		return codec.EncodeObject{}, store.CreateError(name, err)
	}
	return client.MsgVote(msg), nil
}

func (m *Module) MsgVoteWeighted(value any) (codec.EncodeObject, error) {
	const name = "MsgVoteWeighted"
	client, err := m.txClient(name)
	if err != nil {
		return codec.EncodeObject{}, err
	}
	msg, err := store.Build[govv1beta1.MsgVoteWeighted](m.store.Registry(), value)
	if err != nil {
		return codec.EncodeObject{}, store.CreateError(name, err)
	}
	return client.MsgVoteWeighted(msg), nil
}

func (m *Module) MsgDeposit(value any) (codec.EncodeObject, error) {
	const name = "MsgDeposit"
	client, err := m.txClient(name)
	if err != nil {
		return codec.EncodeObject{}, err
	}
	msg, err := store.Build[govv1beta1.MsgDeposit](m.store.Registry(), value)
	if err != nil {
		return codec.EncodeObject{}, store.CreateError(name, err)
	}
	return client.MsgDeposit(msg), nil
}
