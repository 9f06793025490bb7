// Package distribution holds the REST and transaction clients of the
// cosmos distribution module. The gRPC query client is the SDK's generated
// distrtypes.NewQueryClient over an rpc.ClientConn.
package distribution

import (
	"context"
	"net/url"
	"strconv"

	distrtypes "github.com/cosmos/cosmos-sdk/x/distribution/types"
	"google.golang.org/grpc"

	"github.com/sei-protocol/sei-client-go/rest"
)

const restPrefix = "/cosmos/distribution/v1beta1"

var _ distrtypes.QueryClient = (*RESTClient)(nil)

// RESTClient serves the distribution queries from the node's REST endpoint.
// Call options are ignored.
type RESTClient struct {
	client *rest.Client
}

func NewRESTClient(client *rest.Client) *RESTClient {
	return &RESTClient{client: client}
}

func (c *RESTClient) Params(
	ctx context.Context,
	_ *distrtypes.QueryParamsRequest,
	_ ...grpc.CallOption,
) (*distrtypes.QueryParamsResponse, error) {
	resp := &distrtypes.QueryParamsResponse{}
	if err := c.client.Get(ctx, rest.Path(restPrefix+"/params"), nil, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *RESTClient) ValidatorDistributionInfo(
	ctx context.Context,
	req *distrtypes.QueryValidatorDistributionInfoRequest,
	_ ...grpc.CallOption,
) (*distrtypes.QueryValidatorDistributionInfoResponse, error) {
	resp := &distrtypes.QueryValidatorDistributionInfoResponse{}
	path := rest.Path(restPrefix+"/validators", req.ValidatorAddress)
	if err := c.client.Get(ctx, path, nil, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *RESTClient) ValidatorOutstandingRewards(
	ctx context.Context,
	req *distrtypes.QueryValidatorOutstandingRewardsRequest,
	_ ...grpc.CallOption,
) (*distrtypes.QueryValidatorOutstandingRewardsResponse, error) {
	resp := &distrtypes.QueryValidatorOutstandingRewardsResponse{}
	path := rest.Path(restPrefix+"/validators", req.ValidatorAddress, "outstanding_rewards")
	if err := c.client.Get(ctx, path, nil, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *RESTClient) ValidatorCommission(
	ctx context.Context,
	req *distrtypes.QueryValidatorCommissionRequest,
	_ ...grpc.CallOption,
) (*distrtypes.QueryValidatorCommissionResponse, error) {
	resp := &distrtypes.QueryValidatorCommissionResponse{}
	path := rest.Path(restPrefix+"/validators", req.ValidatorAddress, "commission")
	if err := c.client.Get(ctx, path, nil, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *RESTClient) ValidatorSlashes(
	ctx context.Context,
	req *distrtypes.QueryValidatorSlashesRequest,
	_ ...grpc.CallOption,
) (*distrtypes.QueryValidatorSlashesResponse, error) {
	resp := &distrtypes.QueryValidatorSlashesResponse{}
	path := rest.Path(restPrefix+"/validators", req.ValidatorAddress, "slashes")
	if err := c.client.Get(ctx, path, slashesValues(req), resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *RESTClient) DelegationRewards(
	ctx context.Context,
	req *distrtypes.QueryDelegationRewardsRequest,
	_ ...grpc.CallOption,
) (*distrtypes.QueryDelegationRewardsResponse, error) {
	resp := &distrtypes.QueryDelegationRewardsResponse{}
	path := rest.Path(restPrefix+"/delegators", req.DelegatorAddress, "rewards", req.ValidatorAddress)
	if err := c.client.Get(ctx, path, nil, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *RESTClient) DelegationTotalRewards(
	ctx context.Context,
	req *distrtypes.QueryDelegationTotalRewardsRequest,
	_ ...grpc.CallOption,
) (*distrtypes.QueryDelegationTotalRewardsResponse, error) {
	resp := &distrtypes.QueryDelegationTotalRewardsResponse{}
	path := rest.Path(restPrefix+"/delegators", req.DelegatorAddress, "rewards")
	if err := c.client.Get(ctx, path, nil, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *RESTClient) DelegatorValidators(
	ctx context.Context,
	req *distrtypes.QueryDelegatorValidatorsRequest,
	_ ...grpc.CallOption,
) (*distrtypes.QueryDelegatorValidatorsResponse, error) {
	resp := &distrtypes.QueryDelegatorValidatorsResponse{}
	path := rest.Path(restPrefix+"/delegators", req.DelegatorAddress, "validators")
	if err := c.client.Get(ctx, path, nil, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *RESTClient) DelegatorWithdrawAddress(
	ctx context.Context,
	req *distrtypes.QueryDelegatorWithdrawAddressRequest,
	_ ...grpc.CallOption,
) (*distrtypes.QueryDelegatorWithdrawAddressResponse, error) {
	resp := &distrtypes.QueryDelegatorWithdrawAddressResponse{}
	path := rest.Path(restPrefix+"/delegators", req.DelegatorAddress, "withdraw_address")
	if err := c.client.Get(ctx, path, nil, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *RESTClient) CommunityPool(
	ctx context.Context,
	_ *distrtypes.QueryCommunityPoolRequest,
	_ ...grpc.CallOption,
) (*distrtypes.QueryCommunityPoolResponse, error) {
	resp := &distrtypes.QueryCommunityPoolResponse{}
	if err := c.client.Get(ctx, rest.Path(restPrefix+"/community_pool"), nil, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// slashesValues carries the height bounds and pagination of req.
func slashesValues(req *distrtypes.QueryValidatorSlashesRequest) url.Values {
	v := url.Values{}
	if req.StartingHeight != 0 {
		v.Set("starting_height", strconv.FormatUint(req.StartingHeight, 10))
	}
	if req.EndingHeight != 0 {
		v.Set("ending_height", strconv.FormatUint(req.EndingHeight, 10))
	}
	rest.AddPageValues(v, req.Pagination)
	return v
}
