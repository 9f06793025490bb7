package distribution

import (
	distrtypes "github.com/cosmos/cosmos-sdk/x/distribution/types"

	"github.com/sei-protocol/sei-client-go/codec"
	"github.com/sei-protocol/sei-client-go/tx"
)

// TxClient builds distribution messages and broadcasts them with a signer.
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

func (c *TxClient) MsgSetWithdrawAddress(msg *distrtypes.MsgSetWithdrawAddress) codec.EncodeObject {
	return codec.NewEncodeObject(msg)
}

func (c *TxClient) MsgWithdrawDelegatorReward(msg *distrtypes.MsgWithdrawDelegatorReward) codec.EncodeObject {
	return codec.NewEncodeObject(msg)
}

func (c *TxClient) MsgWithdrawValidatorCommission(msg *distrtypes.MsgWithdrawValidatorCommission) codec.EncodeObject {
	return codec.NewEncodeObject(msg)
}

func (c *TxClient) MsgFundCommunityPool(msg *distrtypes.MsgFundCommunityPool) codec.EncodeObject {
	return codec.NewEncodeObject(msg)
}
