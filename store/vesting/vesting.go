// Package vesting is the store module of cosmos.vesting.v1beta1. The module
// has no query service; it only carries the Tx actions.
package vesting

import (
	"context"

	vestingtypes "github.com/cosmos/cosmos-sdk/x/auth/vesting/types"

	"github.com/sei-protocol/sei-client-go/codec"
	"github.com/sei-protocol/sei-client-go/store"
	"github.com/sei-protocol/sei-client-go/tx"
	vestingclient "github.com/sei-protocol/sei-client-go/x/vesting"
)

const msgCreateVestingAccount = "MsgCreateVestingAccount"

type Module struct {
	store *store.Store
}

func NewModule(s *store.Store) *Module {
	s.Registry().Register(vestingtypes.RegisterInterfaces)
	s.RegisterStructures(
		&vestingtypes.BaseVestingAccount{},
		&vestingtypes.ContinuousVestingAccount{},
		&vestingtypes.DelayedVestingAccount{},
		&vestingtypes.Period{},
		&vestingtypes.PeriodicVestingAccount{},
		&vestingtypes.PermanentLockedAccount{},
	)
	return &Module{store: s}
}

func (m *Module) txClient() (*vestingclient.TxClient, error) {
	client, err := vestingclient.NewTxClient(m.store.Signer())
	if err != nil {
		return nil, store.InitError(msgCreateVestingAccount, err)
	}
	return client, nil
}

func (m *Module) SendMsgCreateVestingAccount(
	ctx context.Context,
	msg *vestingtypes.MsgCreateVestingAccount,
	fee *tx.StdFee,
	memo string,
) (*tx.BroadcastResult, error) {
	client, err := m.txClient()
	if err != nil {
		return nil, err
	}
	return m.store.Broadcast(ctx, client, msgCreateVestingAccount, client.MsgCreateVestingAccount(msg), fee, memo)
}

func (m *Module) MsgCreateVestingAccount(value any) (codec.EncodeObject, error) {
	client, err := m.txClient()
	if err != nil {
		return codec.EncodeObject{}, err
	}
	msg, err := store.Build[vestingtypes.MsgCreateVestingAccount](m.store.Registry(), value)
	if err != nil {
		return codec.EncodeObject{}, store.CreateError(msgCreateVestingAccount, err)
	}
	return client.MsgCreateVestingAccount(msg), nil
}
