// Package rpc provides the generic request function behind every module
// Query client: a Transport carrying encoded requests to a gRPC method,
// and a ClientConn running the SDK's generated Query clients over it.
package rpc

import (
	"context"
	"errors"
	"fmt"
	"strings"

	gogogrpc "github.com/cosmos/gogoproto/grpc"
	"google.golang.org/grpc"

	"github.com/sei-protocol/sei-client-go/codec"
)

// ErrStreamingUnsupported is returned by ClientConn.NewStream.
var ErrStreamingUnsupported = errors.New("streaming calls are not supported")

// Transport sends an encoded request to a full gRPC method path, e.g.
// "/cosmos.gov.v1beta1.Query/Proposal", and returns the encoded response.
type Transport interface {
	Request(ctx context.Context, method string, data []byte) ([]byte, error)
}

// TransportFunc adapts a plain function to the Transport interface.
type TransportFunc func(ctx context.Context, method string, data []byte) ([]byte, error)

func (f TransportFunc) Request(ctx context.Context, method string, data []byte) ([]byte, error) {
	return f(ctx, method, data)
}

// Invoke encodes req, sends it through t and decodes the reply into resp,
// unpacking its Any values with registry.
//
// Transport errors are returned unmodified so callers see the original failure.
func Invoke(
	ctx context.Context,
	t Transport,
	registry *codec.Registry,
	method string,
	req, resp codec.Message,
) error {
	bz, err := registry.Marshal(req)
	if err != nil {
		return fmt.Errorf("Invoke: error encoding %s request: %w", method, err)
	}

	bz, err = t.Request(ctx, method, bz)
	if err != nil {
		return err
	}

	if err := registry.Unmarshal(bz, resp); err != nil {
		return fmt.Errorf("Invoke: error decoding %s response: %w", method, err)
	}
	return nil
}

var _ gogogrpc.ClientConn = (*ClientConn)(nil)

// ClientConn lets the generated Query clients (e.g.
// distrtypes.NewQueryClient) run over any Transport. Call options are
// ignored.
type ClientConn struct {
	transport Transport
	registry  *codec.Registry
}

func NewClientConn(transport Transport, registry *codec.Registry) *ClientConn {
	return &ClientConn{transport: transport, registry: registry}
}

func (c *ClientConn) Invoke(ctx context.Context, method string, args, reply any, _ ...grpc.CallOption) error {
	req, ok := args.(codec.Message)
	if !ok {
		return fmt.Errorf("Invoke: %w: request %T", codec.ErrUnsupportedType, args)
	}
	resp, ok := reply.(codec.Message)
	if !ok {
		return fmt.Errorf("Invoke: %w: response %T", codec.ErrUnsupportedType, reply)
	}
	return Invoke(ctx, c.transport, c.registry, method, req, resp)
}

func (c *ClientConn) NewStream(context.Context, *grpc.StreamDesc, string, ...grpc.CallOption) (grpc.ClientStream, error) {
	return nil, ErrStreamingUnsupported
}

// SplitMethod splits "/<service>/<method>" into its service and method.
func SplitMethod(fullMethod string) (service, method string) {
	service, method, ok := strings.Cut(strings.TrimPrefix(fullMethod, "/"), "/")
	if !ok {
		return "", service
	}
	return service, method
}
