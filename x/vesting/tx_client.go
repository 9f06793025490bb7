// Package vesting holds the transaction client of the cosmos vesting module.
package vesting

import (
	vestingtypes "github.com/cosmos/cosmos-sdk/x/auth/vesting/types"

	"github.com/sei-protocol/sei-client-go/codec"
	"github.com/sei-protocol/sei-client-go/tx"
)

// TxClient builds vesting messages and broadcasts them with a signer.
type TxClient struct {
	*tx.Client
}

// NewTxClient returns tx.ErrMissingWallet when signer is nil.
func NewTxClient(signer tx.SigningClient) (*TxClient, error) {
	client, err := tx.NewClient(signer)
	if err != nil {
		return nil, err
	}
	return &TxClient{Client: client}, nil
}

func (c *TxClient) MsgCreateVestingAccount(msg *vestingtypes.MsgCreateVestingAccount) codec.EncodeObject {
	return codec.NewEncodeObject(msg)
}
