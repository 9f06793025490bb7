// Package signer signs transactions in SIGN_MODE_DIRECT with a secp256k1
// key and broadcasts them over the cosmos tx gRPC service.
package signer

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"

	cdctypes "github.com/cosmos/cosmos-sdk/codec/types"
	"github.com/cosmos/cosmos-sdk/crypto/keys/secp256k1"
	"github.com/cosmos/cosmos-sdk/types/bech32"
	txtypes "github.com/cosmos/cosmos-sdk/types/tx"
	"github.com/cosmos/cosmos-sdk/types/tx/signing"
	gogogrpc "github.com/cosmos/gogoproto/grpc"
	"github.com/pokt-network/poktroll/pkg/polylog"
	"google.golang.org/grpc"

	sdk "github.com/sei-protocol/sei-client-go"
	"github.com/sei-protocol/sei-client-go/codec"
	"github.com/sei-protocol/sei-client-go/tx"
)

var (
	ErrInvalidPrivateKey = errors.New("invalid private key")
	ErrInvalidFee        = errors.New("invalid fee")
	ErrTxRejected        = errors.New("transaction rejected")
)

var _ tx.SigningClient = (*DirectSigner)(nil)

// TxBroadcaster is the part of the cosmos tx service the signer uses.
type TxBroadcaster interface {
	BroadcastTx(
		ctx context.Context,
		req *txtypes.BroadcastTxRequest,
		opts ...grpc.CallOption,
	) (*txtypes.BroadcastTxResponse, error)
}

// NewTxBroadcaster returns the tx service client over conn.
func NewTxBroadcaster(conn gogogrpc.ClientConn) TxBroadcaster {
	return txtypes.NewServiceClient(conn)
}

// DirectSigner signs with a single secp256k1 key. The account number and
// sequence are read from the chain before every transaction.
type DirectSigner struct {
	logger      polylog.Logger
	privKey     *secp256k1.PrivKey
	address     string
	chainID     string
	accounts    sdk.AccountFetcher
	broadcaster TxBroadcaster
}

// NewDirectSigner decodes privateKeyHex and derives the signer's address
// under bech32Prefix, e.g. "sei".
func NewDirectSigner(
	logger polylog.Logger,
	privateKeyHex string,
	bech32Prefix string,
	chainID string,
	accounts sdk.AccountFetcher,
	broadcaster TxBroadcaster,
) (*DirectSigner, error) {
	keyBz, err := hex.DecodeString(privateKeyHex)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPrivateKey, err)
	}
	if len(keyBz) != secp256k1.PrivKeySize {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidPrivateKey, len(keyBz), secp256k1.PrivKeySize)
	}
	privKey := &secp256k1.PrivKey{Key: keyBz}

	address, err := bech32.ConvertAndEncode(bech32Prefix, privKey.PubKey().Address())
	if err != nil {
		return nil, fmt.Errorf("NewDirectSigner: error encoding address with prefix %q: %w", bech32Prefix, err)
	}

	return &DirectSigner{
		logger:      logger.With("component", "signer", "address", address),
		privKey:     privKey,
		address:     address,
		chainID:     chainID,
		accounts:    accounts,
		broadcaster: broadcaster,
	}, nil
}

func (s *DirectSigner) Address() string {
	return s.address
}

// SignAndBroadcast signs msgs into a single transaction and broadcasts it in
// SYNC mode. A transaction accepted by the node but failing CheckTx is
// returned as ErrTxRejected along with its result.
func (s *DirectSigner) SignAndBroadcast(
	ctx context.Context,
	msgs []codec.EncodeObject,
	fee tx.StdFee,
	memo string,
) (*tx.BroadcastResult, error) {
	account, err := s.accounts.GetAccount(ctx, s.address)
	if err != nil {
		return nil, fmt.Errorf("SignAndBroadcast: error fetching signer account: %w", err)
	}

	txBytes, err := s.Sign(msgs, fee, memo, account.GetAccountNumber(), account.GetSequence())
	if err != nil {
		return nil, err
	}

	res, err := s.broadcaster.BroadcastTx(ctx, &txtypes.BroadcastTxRequest{
		TxBytes: txBytes,
		Mode:    txtypes.BroadcastMode_BROADCAST_MODE_SYNC,
	})
	if err != nil {
		return nil, fmt.Errorf("SignAndBroadcast: error broadcasting transaction: %w", err)
	}
	if res.TxResponse == nil {
		return nil, fmt.Errorf("SignAndBroadcast: %w: empty response", ErrTxRejected)
	}

	result := &tx.BroadcastResult{
		Height:    res.TxResponse.Height,
		TxHash:    res.TxResponse.TxHash,
		Code:      res.TxResponse.Code,
		Codespace: res.TxResponse.Codespace,
		RawLog:    res.TxResponse.RawLog,
		GasWanted: res.TxResponse.GasWanted,
		GasUsed:   res.TxResponse.GasUsed,
	}
	if result.Code != 0 {
		return result, fmt.Errorf("%w: code %d (%s): %s", ErrTxRejected, result.Code, result.Codespace, result.RawLog)
	}

	s.logger.Debug().
		Str("tx_hash", result.TxHash).
		Uint64("sequence", account.GetSequence()).
		Int("msgs", len(msgs)).
		Msg("Broadcast signed transaction")
	return result, nil
}

// Sign returns the encoded TxRaw of msgs signed for the given account number
// and sequence.
func (s *DirectSigner) Sign(
	msgs []codec.EncodeObject,
	fee tx.StdFee,
	memo string,
	accountNumber uint64,
	sequence uint64,
) ([]byte, error) {
	body := &txtypes.TxBody{Memo: memo}
	for _, msg := range msgs {
		packed, err := msg.Any()
		if err != nil {
			return nil, fmt.Errorf("Sign: error packing %s: %w", msg.TypeURL, err)
		}
		body.Messages = append(body.Messages, packed)
	}
	bodyBz, err := body.Marshal()
	if err != nil {
		return nil, fmt.Errorf("Sign: error marshaling tx body: %w", err)
	}

	txFee, err := toTxFee(fee)
	if err != nil {
		return nil, err
	}
	pubKey, err := cdctypes.NewAnyWithValue(s.privKey.PubKey())
	if err != nil {
		return nil, fmt.Errorf("Sign: error packing public key: %w", err)
	}
	authInfo := &txtypes.AuthInfo{
		SignerInfos: []*txtypes.SignerInfo{{
			PublicKey: pubKey,
			ModeInfo: &txtypes.ModeInfo{
				Sum: &txtypes.ModeInfo_Single_{
					Single: &txtypes.ModeInfo_Single{Mode: signing.SignMode_SIGN_MODE_DIRECT},
				},
			},
			Sequence: sequence,
		}},
		Fee: txFee,
	}
	authInfoBz, err := authInfo.Marshal()
	if err != nil {
		return nil, fmt.Errorf("Sign: error marshaling auth info: %w", err)
	}

	signDoc := &txtypes.SignDoc{
		BodyBytes:     bodyBz,
		AuthInfoBytes: authInfoBz,
		ChainId:       s.chainID,
		AccountNumber: accountNumber,
	}
	signBz, err := signDoc.Marshal()
	if err != nil {
		return nil, fmt.Errorf("Sign: error marshaling sign doc: %w", err)
	}
	signature, err := s.privKey.Sign(signBz)
	if err != nil {
		return nil, fmt.Errorf("Sign: error signing: %w", err)
	}

	raw := &txtypes.TxRaw{
		BodyBytes:     bodyBz,
		AuthInfoBytes: authInfoBz,
		Signatures:    [][]byte{signature},
	}
	return raw.Marshal()
}

func toTxFee(fee tx.StdFee) (*txtypes.Fee, error) {
	gas, err := strconv.ParseUint(fee.Gas, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: gas %q: %w", ErrInvalidFee, fee.Gas, err)
	}

	if err := fee.Amount.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFee, err)
	}
	return &txtypes.Fee{Amount: fee.Amount, GasLimit: gas}, nil
}
