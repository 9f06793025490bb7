package sdk

import (
	"context"

	ctypes "github.com/cometbft/cometbft/rpc/core/types"
	cosmos "github.com/cosmos/cosmos-sdk/client"
)

// NodeStatusFetcher returns the status of the node to which it is connected.
//
// This status is used here in the BlockClient in order to get the latest block height.
type NodeStatusFetcher interface {
	Status(ctx context.Context) (*ctypes.ResultStatus, error)
}

// BlockClient reads the chain height from a node's cometbft RPC endpoint.
//
// It uses the Status call rather than fetching the latest block, since only
// the height is needed. The block watcher polls it to detect new blocks.
type BlockClient struct {
	NodeStatusFetcher
}

// NewNodeStatusFetcher returns the default NodeStatusFetcher for the node at rpcURL.
func NewNodeStatusFetcher(rpcURL string) (NodeStatusFetcher, error) {
	// TODO: drop the cosmos dependency and directly use cometbft rpchttp.New, once the latter publishes a release that includes this functionality
	statusFetcher, err := cosmos.NewClientFromNode(rpcURL)
	if err != nil {
		return nil, err
	}
	return statusFetcher, nil
}

// LatestBlockHeight returns the height of the latest committed block in the blockchain.
func (bc *BlockClient) LatestBlockHeight(ctx context.Context) (height int64, err error) {
	nodeStatus, err := bc.NodeStatusFetcher.Status(ctx)
	if err != nil {
		return 0, err
	}

	return nodeStatus.SyncInfo.LatestBlockHeight, nil
}
