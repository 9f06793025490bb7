package gov

import (
	govv1beta1 "github.com/cosmos/cosmos-sdk/x/gov/types/v1beta1"

	"github.com/sei-protocol/sei-client-go/codec"
	"github.com/sei-protocol/sei-client-go/tx"
)

// TxClient builds gov messages and broadcasts them with a signer.
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

func (c *TxClient) MsgSubmitProposal(msg *govv1beta1.MsgSubmitProposal) codec.EncodeObject {
	return codec.NewEncodeObject(msg)
}

func (c *TxClient) MsgVote(msg *govv1beta1.MsgVote) codec.EncodeObject {
	return codec.NewEncodeObject(msg)
}

func (c *TxClient) MsgVoteWeighted(msg *govv1beta1.MsgVoteWeighted) codec.EncodeObject {
	return codec.NewEncodeObject(msg)
}

func (c *TxClient) MsgDeposit(msg *govv1beta1.MsgDeposit) codec.EncodeObject {
	return codec.NewEncodeObject(msg)
}
