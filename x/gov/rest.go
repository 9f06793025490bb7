// Package gov holds the REST and transaction clients of the cosmos gov
// v1beta1 module.
package gov

import (
	"context"
	"net/url"
	"strconv"

	govv1beta1 "github.com/cosmos/cosmos-sdk/x/gov/types/v1beta1"
	"google.golang.org/grpc"

	"github.com/sei-protocol/sei-client-go/rest"
)

const restPrefix = "/cosmos/gov/v1beta1"

var _ govv1beta1.QueryClient = (*RESTClient)(nil)

// RESTClient serves the gov queries from the node's REST endpoint. Call
// options are ignored.
type RESTClient struct {
	client *rest.Client
}

func NewRESTClient(client *rest.Client) *RESTClient {
	return &RESTClient{client: client}
}

func proposalPath(id uint64, segments ...string) string {
	return rest.Path(restPrefix+"/proposals", append([]string{strconv.FormatUint(id, 10)}, segments...)...)
}

func (c *RESTClient) Proposal(
	ctx context.Context,
	req *govv1beta1.QueryProposalRequest,
	_ ...grpc.CallOption,
) (*govv1beta1.QueryProposalResponse, error) {
	resp := &govv1beta1.QueryProposalResponse{}
	if err := c.client.Get(ctx, proposalPath(req.ProposalId), nil, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *RESTClient) Proposals(
	ctx context.Context,
	req *govv1beta1.QueryProposalsRequest,
	_ ...grpc.CallOption,
) (*govv1beta1.QueryProposalsResponse, error) {
	resp := &govv1beta1.QueryProposalsResponse{}
	if err := c.client.Get(ctx, rest.Path(restPrefix+"/proposals"), proposalsValues(req), resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *RESTClient) Vote(
	ctx context.Context,
	req *govv1beta1.QueryVoteRequest,
	_ ...grpc.CallOption,
) (*govv1beta1.QueryVoteResponse, error) {
	resp := &govv1beta1.QueryVoteResponse{}
	if err := c.client.Get(ctx, proposalPath(req.ProposalId, "votes", req.Voter), nil, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *RESTClient) Votes(
	ctx context.Context,
	req *govv1beta1.QueryVotesRequest,
	_ ...grpc.CallOption,
) (*govv1beta1.QueryVotesResponse, error) {
	resp := &govv1beta1.QueryVotesResponse{}
	v := url.Values{}
	rest.AddPageValues(v, req.Pagination)
	if err := c.client.Get(ctx, proposalPath(req.ProposalId, "votes"), v, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *RESTClient) Params(
	ctx context.Context,
	req *govv1beta1.QueryParamsRequest,
	_ ...grpc.CallOption,
) (*govv1beta1.QueryParamsResponse, error) {
	resp := &govv1beta1.QueryParamsResponse{}
	if err := c.client.Get(ctx, rest.Path(restPrefix+"/params", req.ParamsType), nil, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *RESTClient) Deposit(
	ctx context.Context,
	req *govv1beta1.QueryDepositRequest,
	_ ...grpc.CallOption,
) (*govv1beta1.QueryDepositResponse, error) {
	resp := &govv1beta1.QueryDepositResponse{}
	if err := c.client.Get(ctx, proposalPath(req.ProposalId, "deposits", req.Depositor), nil, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *RESTClient) Deposits(
	ctx context.Context,
	req *govv1beta1.QueryDepositsRequest,
	_ ...grpc.CallOption,
) (*govv1beta1.QueryDepositsResponse, error) {
	resp := &govv1beta1.QueryDepositsResponse{}
	v := url.Values{}
	rest.AddPageValues(v, req.Pagination)
	if err := c.client.Get(ctx, proposalPath(req.ProposalId, "deposits"), v, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *RESTClient) TallyResult(
	ctx context.Context,
	req *govv1beta1.QueryTallyResultRequest,
	_ ...grpc.CallOption,
) (*govv1beta1.QueryTallyResultResponse, error) {
	resp := &govv1beta1.QueryTallyResultResponse{}
	if err := c.client.Get(ctx, proposalPath(req.ProposalId, "tally"), nil, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// proposalsValues carries the non-empty filters and pagination of req.
func proposalsValues(req *govv1beta1.QueryProposalsRequest) url.Values {
	v := url.Values{}
	if req.ProposalStatus != govv1beta1.StatusNil {
		v.Set("proposal_status", req.ProposalStatus.String())
	}
	if req.Voter != "" {
		v.Set("voter", req.Voter)
	}
	if req.Depositor != "" {
		v.Set("depositor", req.Depositor)
	}
	rest.AddPageValues(v, req.Pagination)
	return v
}
