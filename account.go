package sdk

import (
	"context"
	"fmt"

	"github.com/cosmos/cosmos-sdk/codec"
	cdctypes "github.com/cosmos/cosmos-sdk/codec/types"
	cryptocodec "github.com/cosmos/cosmos-sdk/crypto/codec"
	cryptotypes "github.com/cosmos/cosmos-sdk/crypto/types"
	"github.com/cosmos/cosmos-sdk/types"
	accounttypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	vestingtypes "github.com/cosmos/cosmos-sdk/x/auth/vesting/types"
	grpc "github.com/cosmos/gogoproto/grpc"
	grpcoptions "google.golang.org/grpc"
)

var queryCodec *codec.ProtoCodec

// init initializes the codec used to unpack accounts: base and vesting
// accounts, and their public keys.
func init() {
	reg := cdctypes.NewInterfaceRegistry()
	accounttypes.RegisterInterfaces(reg)
	vestingtypes.RegisterInterfaces(reg)
	cryptocodec.RegisterInterfaces(reg)
	queryCodec = codec.NewProtoCodec(reg)
}

// AccountClient is used to interact with the auth module.
//
// The signer uses it to read the account number and sequence of its own
// account before every transaction.
type AccountClient struct {
	NodeAccountFetcher
}

// GetAccount returns the account stored at address. Vesting accounts are
// returned as their concrete vesting type.
func (ac *AccountClient) GetAccount(ctx context.Context, address string) (types.AccountI, error) {
	req := &accounttypes.QueryAccountRequest{Address: address}
	res, err := ac.NodeAccountFetcher.Account(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("GetAccount: error querying account %s: %w", address, err)
	}

	var fetchedAccount types.AccountI
	if err = queryCodec.UnpackAny(res.Account, &fetchedAccount); err != nil {
		return nil, fmt.Errorf("GetAccount: error unpacking account %s: %w", address, err)
	}

	return fetchedAccount, nil
}

// GetPubKeyFromAddress returns the public key of the account with the given address.
// It is nil until the account has signed its first transaction.
func (ac *AccountClient) GetPubKeyFromAddress(
	ctx context.Context,
	address string,
) (cryptotypes.PubKey, error) {
	account, err := ac.GetAccount(ctx, address)
	if err != nil {
		return nil, err
	}
	return account.GetPubKey(), nil
}

// NewNodeAccountFetcher returns the default implementation of the NodeAccountFetcher interface.
// It connects to a full node, through the auth module's query client, to get account data.
func NewNodeAccountFetcher(grpcConn grpc.ClientConn) NodeAccountFetcher {
	return accounttypes.NewQueryClient(grpcConn)
}

// NodeAccountFetcher is used by the AccountClient to fetch accounts using
// cosmos-sdk auth request/response types.
//
// Most users can rely on the default implementation provided by NewNodeAccountFetcher.
type NodeAccountFetcher interface {
	Account(
		context.Context,
		*accounttypes.QueryAccountRequest,
		...grpcoptions.CallOption,
	) (*accounttypes.QueryAccountResponse, error)
}
