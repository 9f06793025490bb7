// Package client wires a full node connection, the store and the module
// store actions into a ready to use Client.
package client

import (
	"context"
	"errors"
	"fmt"
	"net"

	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	vestingtypes "github.com/cosmos/cosmos-sdk/x/auth/vesting/types"
	distrtypes "github.com/cosmos/cosmos-sdk/x/distribution/types"
	govv1beta1 "github.com/cosmos/cosmos-sdk/x/gov/types/v1beta1"
	"github.com/pokt-network/poktroll/pkg/polylog"
	"google.golang.org/grpc"

	sdk "github.com/sei-protocol/sei-client-go"
	"github.com/sei-protocol/sei-client-go/codec"
	"github.com/sei-protocol/sei-client-go/rest"
	"github.com/sei-protocol/sei-client-go/rpc"
	"github.com/sei-protocol/sei-client-go/signer"
	"github.com/sei-protocol/sei-client-go/store"
	storedistribution "github.com/sei-protocol/sei-client-go/store/distribution"
	storegov "github.com/sei-protocol/sei-client-go/store/gov"
	storevesting "github.com/sei-protocol/sei-client-go/store/vesting"
	distrclient "github.com/sei-protocol/sei-client-go/x/distribution"
	govclient "github.com/sei-protocol/sei-client-go/x/gov"
)

// Client is a connected client: one store shared by the module actions,
// kept fresh by a block watcher.
type Client struct {
	logger  polylog.Logger
	conn    *grpc.ClientConn
	metrics net.Listener

	Store        *store.Store
	Distribution *storedistribution.Module
	Gov          *storegov.Module
	Vesting      *storevesting.Module
	Watcher      *BlockWatcher
}

// New connects to the node described by cfg. cfg is expected to have been
// loaded with LoadConfig, or validated by the caller.
func New(logger polylog.Logger, cfg Config) (*Client, error) {
	conn, err := connectGRPC(cfg.GRPCConfig.HostPort, cfg.GRPCConfig.UseInsecureGRPCConn)
	if err != nil {
		return nil, fmt.Errorf("New: error creating new GRPC connection at %s: %w", cfg.GRPCConfig.HostPort, err)
	}

	statusFetcher, err := sdk.NewNodeStatusFetcher(cfg.RpcURL)
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("New: error creating new block client at URL %s: %w", cfg.RpcURL, err)
	}

	c, err := newClient(logger, cfg, conn, statusFetcher)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	c.conn = conn
	return c, nil
}

// newClient builds the client over an existing connection.
func newClient(
	logger polylog.Logger,
	cfg Config,
	conn grpc.ClientConnInterface,
	statusFetcher sdk.NodeStatusFetcher,
) (*Client, error) {
	logger = logger.With("client", "sei_client")

	registry := codec.NewRegistry()
	registry.Register(
		authtypes.RegisterInterfaces,
		vestingtypes.RegisterInterfaces,
		distrtypes.RegisterInterfaces,
		govv1beta1.RegisterInterfaces,
	)
	s := store.New(logger, registry)

	var (
		distrQuerier storedistribution.Querier
		govQuerier   storegov.Querier
	)
	if cfg.RestURL != "" {
		restClient := rest.NewClient(cfg.RestURL, nil, registry)
		distrQuerier = distrclient.NewRESTClient(restClient)
		govQuerier = govclient.NewRESTClient(restClient)
	} else {
		var transport rpc.Transport = rpc.NewGRPCTransport(conn)
		if cfg.Metrics.Enabled {
			transport = rpc.NewMeteredTransport(transport)
		}
		queryConn := rpc.NewClientConn(transport, registry)
		distrQuerier = distrtypes.NewQueryClient(queryConn)
		govQuerier = govv1beta1.NewQueryClient(queryConn)
	}

	var metrics net.Listener
	if cfg.Metrics.Enabled && cfg.Metrics.Addr != "" {
		ln, err := ServeMetrics(logger, cfg.Metrics.Addr)
		if err != nil {
			return nil, fmt.Errorf("New: error serving metrics at %s: %w", cfg.Metrics.Addr, err)
		}
		metrics = ln
	}

	if cfg.Signer != nil {
		directSigner, err := signer.NewDirectSigner(
			logger,
			cfg.Signer.PrivateKeyHex,
			cfg.Bech32Prefix,
			cfg.ChainID,
			&sdk.AccountClient{NodeAccountFetcher: sdk.NewNodeAccountFetcher(conn)},
			signer.NewTxBroadcaster(conn),
		)
		if err != nil {
			if metrics != nil {
				_ = metrics.Close()
			}
			return nil, fmt.Errorf("New: error creating signer: %w", err)
		}
		s.SetSigner(directSigner)
	}

	return &Client{
		logger:       logger,
		metrics:      metrics,
		Store:        s,
		Distribution: storedistribution.NewModule(s, distrQuerier),
		Gov:          storegov.NewModule(s, govQuerier),
		Vesting:      storevesting.NewModule(s),
		Watcher: NewBlockWatcher(
			logger,
			&sdk.BlockClient{NodeStatusFetcher: statusFetcher},
			s,
			cfg.Store.PollInterval,
		),
	}, nil
}

// Run keeps the store's subscriptions fresh until ctx is cancelled.
func (c *Client) Run(ctx context.Context) {
	c.Watcher.Run(ctx)
}

// Close releases the node connection and stops the metrics server.
func (c *Client) Close() error {
	var errs []error
	if c.metrics != nil {
		errs = append(errs, c.metrics.Close())
	}
	if c.conn != nil {
		errs = append(errs, c.conn.Close())
	}
	return errors.Join(errs...)
}
