package rpc

import (
	"context"
	"strconv"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"

	"github.com/sei-protocol/sei-client-go/codec"
)

// BlockHeightHeader pins a gRPC query to the state at a given height.
const BlockHeightHeader = "x-cosmos-block-height"

var _ Transport = &GRPCTransport{}

// GRPCTransport sends requests as unary gRPC calls. Payloads are passed
// through as already-encoded protobuf bytes.
type GRPCTransport struct {
	conn grpc.ClientConnInterface
}

func NewGRPCTransport(conn grpc.ClientConnInterface) *GRPCTransport {
	return &GRPCTransport{conn: conn}
}

// Request invokes method on the connection.
func (t *GRPCTransport) Request(ctx context.Context, method string, data []byte) ([]byte, error) {
	var out []byte
	err := t.conn.Invoke(
		ctx,
		method,
		data,
		&out,
		grpc.ForceCodec(codec.GRPCCodec{}),
	)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// WithHeight returns a context whose gRPC queries read state at height.
func WithHeight(ctx context.Context, height int64) context.Context {
	return metadata.AppendToOutgoingContext(ctx, BlockHeightHeader, strconv.FormatInt(height, 10))
}
