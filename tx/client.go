// Package tx defines the signing client contract used to broadcast module
// messages, and the fee and result types shared by every module TxClient.
package tx

import (
	"context"
	"errors"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/sei-protocol/sei-client-go/codec"
)

// DefaultGas is the gas limit used when a caller does not provide a fee.
const DefaultGas = "200000"

// ErrMissingWallet is returned when a TxClient is built without a signer.
var ErrMissingWallet = errors.New("wallet is required")

// StdFee is the fee attached to a transaction.
type StdFee struct {
	Amount sdk.Coins `json:"amount"`
	Gas    string    `json:"gas"`
}

// DefaultFee returns an empty fee amount with DefaultGas.
func DefaultFee() StdFee {
	return StdFee{Amount: sdk.NewCoins(), Gas: DefaultGas}
}

// BroadcastResult is the node's reply to a broadcast transaction.
type BroadcastResult struct {
	Height    int64  `json:"height"`
	TxHash    string `json:"txhash"`
	Code      uint32 `json:"code"`
	Codespace string `json:"codespace"`
	RawLog    string `json:"raw_log"`
	GasWanted int64  `json:"gas_wanted"`
	GasUsed   int64  `json:"gas_used"`
}

// SigningClient signs messages with a wallet and broadcasts them.
type SigningClient interface {
	// Address returns the bech32 address of the signing account.
	Address() string
	SignAndBroadcast(ctx context.Context, msgs []codec.EncodeObject, fee StdFee, memo string) (*BroadcastResult, error)
}

// Client is embedded by the module TxClients.
type Client struct {
	signer SigningClient
}

// NewClient returns ErrMissingWallet when signer is nil.
func NewClient(signer SigningClient) (*Client, error) {
	if signer == nil {
		return nil, ErrMissingWallet
	}
	return &Client{signer: signer}, nil
}

// Address returns the signer's address.
func (c *Client) Address() string {
	return c.signer.Address()
}

// SignAndBroadcast delegates to the signing client.
func (c *Client) SignAndBroadcast(ctx context.Context, msgs []codec.EncodeObject, fee StdFee, memo string) (*BroadcastResult, error) {
	return c.signer.SignAndBroadcast(ctx, msgs, fee, memo)
}
