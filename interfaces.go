package sdk

import (
	"context"

	"github.com/cosmos/cosmos-sdk/types"
)

// AccountFetcher returns the on-chain account at an address.
//
// - Used by the transaction signer to read its account number and sequence
//
// Implemented by AccountClient.
type AccountFetcher interface {
	GetAccount(ctx context.Context, address string) (types.AccountI, error)
}

var _ AccountFetcher = (*AccountClient)(nil)
