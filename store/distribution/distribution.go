// Package distribution is the store module of cosmos.distribution.v1beta1:
// cached queries, subscriptions and Tx actions over the module's clients.
package distribution

import (
	"context"

	distrtypes "github.com/cosmos/cosmos-sdk/x/distribution/types"
	"google.golang.org/grpc"

	"github.com/sei-protocol/sei-client-go/codec"
	"github.com/sei-protocol/sei-client-go/store"
	"github.com/sei-protocol/sei-client-go/tx"
	distrclient "github.com/sei-protocol/sei-client-go/x/distribution"
)

// ProtoPackage namespaces the module's actions and cached results in a
// shared store.
const ProtoPackage = "cosmos.distribution.v1beta1"

// Querier is satisfied by the generated gRPC client and by
// distrclient.RESTClient.
type Querier = distrtypes.QueryClient

var _ Querier = (*distrclient.RESTClient)(nil)

func queryName(name string) store.QueryName {
	return store.QueryName{Module: ProtoPackage, Name: name}
}

// Module holds the distribution actions. Every query action is registered
// with the store so subscriptions can replay it.
type Module struct {
	store   *store.Store
	querier Querier
}

func NewModule(s *store.Store, querier Querier) *Module {
	m := &Module{store: s, querier: querier}

	s.Registry().Register(distrtypes.RegisterInterfaces)
	s.RegisterStructures(
		&distrtypes.Params{},
		&distrtypes.ValidatorHistoricalRewards{},
		&distrtypes.ValidatorCurrentRewards{},
		&distrtypes.ValidatorAccumulatedCommission{},
		&distrtypes.ValidatorOutstandingRewards{},
		&distrtypes.ValidatorSlashEvent{},
		&distrtypes.ValidatorSlashEvents{},
		&distrtypes.FeePool{},
		&distrtypes.CommunityPoolSpendProposal{},
		&distrtypes.DelegatorStartingInfo{},
		&distrtypes.DelegationDelegatorReward{},
		&distrtypes.CommunityPoolSpendProposalWithDeposit{},
	)
	store.RegisterQuery(s, queryName("QueryParams"), m.QueryParams)
	store.RegisterQuery(s, queryName("QueryValidatorDistributionInfo"), m.QueryValidatorDistributionInfo)
	store.RegisterQuery(s, queryName("QueryValidatorOutstandingRewards"), m.QueryValidatorOutstandingRewards)
	store.RegisterQuery(s, queryName("QueryValidatorCommission"), m.QueryValidatorCommission)
	store.RegisterQuery(s, queryName("QueryValidatorSlashes"), m.QueryValidatorSlashes)
	store.RegisterQuery(s, queryName("QueryDelegationRewards"), m.QueryDelegationRewards)
	store.RegisterQuery(s, queryName("QueryDelegationTotalRewards"), m.QueryDelegationTotalRewards)
	store.RegisterQuery(s, queryName("QueryDelegatorValidators"), m.QueryDelegatorValidators)
	store.RegisterQuery(s, queryName("QueryDelegatorWithdrawAddress"), m.QueryDelegatorWithdrawAddress)
	store.RegisterQuery(s, queryName("QueryCommunityPool"), m.QueryCommunityPool)

	return m
}

func (m *Module) QueryParams(
	ctx context.Context,
	req *distrtypes.QueryParamsRequest,
	opts store.QueryOptions,
) (*distrtypes.QueryParamsResponse, error) {
	return store.Query(ctx, m.store, queryName("QueryParams"), req, opts, m.querier.Params)
}

func (m *Module) GetParams(req *distrtypes.QueryParamsRequest) (*distrtypes.QueryParamsResponse, bool) {
	return store.Lookup[distrtypes.QueryParamsResponse](m.store, queryName("QueryParams"), req)
}

func (m *Module) QueryValidatorDistributionInfo(
	ctx context.Context,
	req *distrtypes.QueryValidatorDistributionInfoRequest,
	opts store.QueryOptions,
) (*distrtypes.QueryValidatorDistributionInfoResponse, error) {
	return store.Query(ctx, m.store, queryName("QueryValidatorDistributionInfo"), req, opts, m.querier.ValidatorDistributionInfo)
}

func (m *Module) GetValidatorDistributionInfo(req *distrtypes.QueryValidatorDistributionInfoRequest) (*distrtypes.QueryValidatorDistributionInfoResponse, bool) {
	return store.Lookup[distrtypes.QueryValidatorDistributionInfoResponse](m.store, queryName("QueryValidatorDistributionInfo"), req)
}

func (m *Module) QueryValidatorOutstandingRewards(
	ctx context.Context,
	req *distrtypes.QueryValidatorOutstandingRewardsRequest,
	opts store.QueryOptions,
) (*distrtypes.QueryValidatorOutstandingRewardsResponse, error) {
	return store.Query(ctx, m.store, queryName("QueryValidatorOutstandingRewards"), req, opts, m.querier.ValidatorOutstandingRewards)
}

func (m *Module) GetValidatorOutstandingRewards(req *distrtypes.QueryValidatorOutstandingRewardsRequest) (*distrtypes.QueryValidatorOutstandingRewardsResponse, bool) {
	return store.Lookup[distrtypes.QueryValidatorOutstandingRewardsResponse](m.store, queryName("QueryValidatorOutstandingRewards"), req)
}

func (m *Module) QueryValidatorCommission(
	ctx context.Context,
	req *distrtypes.QueryValidatorCommissionRequest,
	opts store.QueryOptions,
) (*distrtypes.QueryValidatorCommissionResponse, error) {
	return store.Query(ctx, m.store, queryName("QueryValidatorCommission"), req, opts, m.querier.ValidatorCommission)
}

func (m *Module) GetValidatorCommission(req *distrtypes.QueryValidatorCommissionRequest) (*distrtypes.QueryValidatorCommissionResponse, bool) {
	return store.Lookup[distrtypes.QueryValidatorCommissionResponse](m.store, queryName("QueryValidatorCommission"), req)
}

// QueryValidatorSlashes is paginated: with opts.All every page is fetched and the
// slashes are concatenated.
func (m *Module) QueryValidatorSlashes(
	ctx context.Context,
	req *distrtypes.QueryValidatorSlashesRequest,
	opts store.QueryOptions,
) (*distrtypes.QueryValidatorSlashesResponse, error) {
	return store.Query(ctx, m.store, queryName("QueryValidatorSlashes"), req, opts,
		func(ctx context.Context, req *distrtypes.QueryValidatorSlashesRequest, _ ...grpc.CallOption) (*distrtypes.QueryValidatorSlashesResponse, error) {
			return store.FetchAll(ctx, m.store.Registry(), opts.All,
				func(ctx context.Context, key []byte) (*distrtypes.QueryValidatorSlashesResponse, error) {
					page := *req
					if key != nil {
						page.Pagination = store.PageAt(req.Pagination, key)
					}
					return m.querier.ValidatorSlashes(ctx, &page)
				},
				func(resp *distrtypes.QueryValidatorSlashesResponse) []byte {
					return resp.Pagination.GetNextKey()
				},
			)
		},
	)
}

func (m *Module) GetValidatorSlashes(req *distrtypes.QueryValidatorSlashesRequest) (*distrtypes.QueryValidatorSlashesResponse, bool) {
	return store.Lookup[distrtypes.QueryValidatorSlashesResponse](m.store, queryName("QueryValidatorSlashes"), req)
}

func (m *Module) QueryDelegationRewards(
	ctx context.Context,
	req *distrtypes.QueryDelegationRewardsRequest,
	opts store.QueryOptions,
) (*distrtypes.QueryDelegationRewardsResponse, error) {
	return store.Query(ctx, m.store, queryName("QueryDelegationRewards"), req, opts, m.querier.DelegationRewards)
}

func (m *Module) GetDelegationRewards(req *distrtypes.QueryDelegationRewardsRequest) (*distrtypes.QueryDelegationRewardsResponse, bool) {
	return store.Lookup[distrtypes.QueryDelegationRewardsResponse](m.store, queryName("QueryDelegationRewards"), req)
}

func (m *Module) QueryDelegationTotalRewards(
	ctx context.Context,
	req *distrtypes.QueryDelegationTotalRewardsRequest,
	opts store.QueryOptions,
) (*distrtypes.QueryDelegationTotalRewardsResponse, error) {
	return store.Query(ctx, m.store, queryName("QueryDelegationTotalRewards"), req, opts, m.querier.DelegationTotalRewards)
}

func (m *Module) GetDelegationTotalRewards(req *distrtypes.QueryDelegationTotalRewardsRequest) (*distrtypes.QueryDelegationTotalRewardsResponse, bool) {
	return store.Lookup[distrtypes.QueryDelegationTotalRewardsResponse](m.store, queryName("QueryDelegationTotalRewards"), req)
}

func (m *Module) QueryDelegatorValidators(
	ctx context.Context,
	req *distrtypes.QueryDelegatorValidatorsRequest,
	opts store.QueryOptions,
) (*distrtypes.QueryDelegatorValidatorsResponse, error) {
	return store.Query(ctx, m.store, queryName("QueryDelegatorValidators"), req, opts, m.querier.DelegatorValidators)
}

func (m *Module) GetDelegatorValidators(req *distrtypes.QueryDelegatorValidatorsRequest) (*distrtypes.QueryDelegatorValidatorsResponse, bool) {
	return store.Lookup[distrtypes.QueryDelegatorValidatorsResponse](m.store, queryName("QueryDelegatorValidators"), req)
}

func (m *Module) QueryDelegatorWithdrawAddress(
	ctx context.Context,
	req *distrtypes.QueryDelegatorWithdrawAddressRequest,
	opts store.QueryOptions,
) (*distrtypes.QueryDelegatorWithdrawAddressResponse, error) {
	return store.Query(ctx, m.store, queryName("QueryDelegatorWithdrawAddress"), req, opts, m.querier.DelegatorWithdrawAddress)
}

func (m *Module) GetDelegatorWithdrawAddress(req *distrtypes.QueryDelegatorWithdrawAddressRequest) (*distrtypes.QueryDelegatorWithdrawAddressResponse, bool) {
	return store.Lookup[distrtypes.QueryDelegatorWithdrawAddressResponse](m.store, queryName("QueryDelegatorWithdrawAddress"), req)
}

func (m *Module) QueryCommunityPool(
	ctx context.Context,
	req *distrtypes.QueryCommunityPoolRequest,
	opts store.QueryOptions,
) (*distrtypes.QueryCommunityPoolResponse, error) {
	return store.Query(ctx, m.store, queryName("QueryCommunityPool"), req, opts, m.querier.CommunityPool)
}

func (m *Module) GetCommunityPool(req *distrtypes.QueryCommunityPoolRequest) (*distrtypes.QueryCommunityPoolResponse, bool) {
	return store.Lookup[distrtypes.QueryCommunityPoolResponse](m.store, queryName("QueryCommunityPool"), req)
}

func (m *Module) txClient(msg string) (*distrclient.TxClient, error) {
	client, err := distrclient.NewTxClient(m.store.Signer())
	if err != nil {
		return nil, store.InitError(msg, err)
	}
	return client, nil
}

func (m *Module) SendMsgSetWithdrawAddress(
	ctx context.Context,
	msg *distrtypes.MsgSetWithdrawAddress,
	fee *tx.StdFee,
	memo string,
) (*tx.BroadcastResult, error) {
	const name = "MsgSetWithdrawAddress"
	client, err := m.txClient(name)
	if err != nil {
		return nil, err
	}
	return m.store.Broadcast(ctx, client, name, client.MsgSetWithdrawAddress(msg), fee, memo)
}

func (m *Module) SendMsgWithdrawDelegatorReward(
	ctx context.Context,
	msg *distrtypes.MsgWithdrawDelegatorReward,
	fee *tx.StdFee,
	memo string,
) (*tx.BroadcastResult, error) {
	const name = "MsgWithdrawDelegatorReward"
	client, err := m.txClient(name)
	if err != nil {
		return nil, err
	}
	return m.store.Broadcast(ctx, client, name, client.MsgWithdrawDelegatorReward(msg), fee, memo)
}

func (m *Module) SendMsgWithdrawValidatorCommission(
	ctx context.Context,
	msg *distrtypes.MsgWithdrawValidatorCommission,
	fee *tx.StdFee,
	memo string,
) (*tx.BroadcastResult, error) {
	const name = "MsgWithdrawValidatorCommission"
	client, err := m.txClient(name)
	if err != nil {
		return nil, err
	}
	return m.store.Broadcast(ctx, client, name, client.MsgWithdrawValidatorCommission(msg), fee, memo)
}

func (m *Module) SendMsgFundCommunityPool(
	ctx context.Context,
	msg *distrtypes.MsgFundCommunityPool,
	fee *tx.StdFee,
	memo string,
) (*tx.BroadcastResult, error) {
	const name = "MsgFundCommunityPool"
	client, err := m.txClient(name)
	if err != nil {
		return nil, err
	}
	return m.store.Broadcast(ctx, client, name, client.MsgFundCommunityPool(msg), fee, memo)
}

// MsgSetWithdrawAddress builds the message from a *distrtypes.MsgSetWithdrawAddress or a
// partial proto3 JSON object.
func (m *Module) MsgSetWithdrawAddress(value any) (codec.EncodeObject, error) {
	const name = "MsgSetWithdrawAddress"
	client, err := m.txClient(name)
	if err != nil {
		return codec.EncodeObject{}, err
	}
	msg, err := store.Build[distrtypes.MsgSetWithdrawAddress](m.store.Registry(), value)
	if err != nil {
		return codec.EncodeObject{}, store.CreateError(name, err)
	}
	return client.MsgSetWithdrawAddress(msg), nil
}

func (m *Module) MsgWithdrawDelegatorReward(value any) (codec.EncodeObject, error) {
	const name = "MsgWithdrawDelegatorReward"
	client, err := m.txClient(name)
	if err != nil {
		return codec.EncodeObject{}, err
	}
	msg, err := store.Build[distrtypes.MsgWithdrawDelegatorReward](m.store.Registry(), value)
	if err != nil {
		return codec.EncodeObject{}, store.CreateError(name, err)
	}
	return client.MsgWithdrawDelegatorReward(msg), nil
}

func (m *Module) MsgWithdrawValidatorCommission(value any) (codec.EncodeObject, error) {
	const name = "MsgWithdrawValidatorCommission"
	client, err := m.txClient(name)
	if err != nil {
		return codec.EncodeObject{}, err
	}
	msg, err := store.Build[distrtypes.MsgWithdrawValidatorCommission](m.store.Registry(), value)
	if err != nil {
		return codec.EncodeObject{}, store.CreateError(name, err)
	}
	return client.MsgWithdrawValidatorCommission(msg), nil
}

func (m *Module) MsgFundCommunityPool(value any) (codec.EncodeObject, error) {
	const name = "MsgFundCommunityPool"
	client, err := m.txClient(name)
	if err != nil {
		return codec.EncodeObject{}, err
	}
	msg, err := store.Build[distrtypes.MsgFundCommunityPool](m.store.Registry(), value)
	if err != nil {
		return codec.EncodeObject{}, store.CreateError(name, err)
	}
	return client.MsgFundCommunityPool(msg), nil
}
