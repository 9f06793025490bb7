package codec

import (
	"fmt"

	"google.golang.org/grpc/encoding"
	protov2 "google.golang.org/protobuf/proto"
)

var _ encoding.Codec = GRPCCodec{}

// GRPCCodec is a gRPC codec for pre-encoded payloads and for both gogoproto
// and protobuf-go messages. Install it with grpc.ForceCodec (client) or
// grpc.ForceServerCodec (server).
type GRPCCodec struct{}

func (GRPCCodec) Marshal(v any) ([]byte, error) {
	switch m := v.(type) {
	case []byte:
		return m, nil
	case *[]byte:
		return *m, nil
	case protov2.Message:
		return protov2.Marshal(m)
	case Message:
		return Marshal(m)
	}
	return nil, fmt.Errorf("GRPCCodec: %w: %T", ErrUnsupportedType, v)
}

func (GRPCCodec) Unmarshal(data []byte, v any) error {
	switch m := v.(type) {
	case *[]byte:
		*m = append((*m)[:0], data...)
		return nil
	case protov2.Message:
		return protov2.Unmarshal(data, m)
	case Message:
		return Unmarshal(data, m)
	}
	return fmt.Errorf("GRPCCodec: %w: %T", ErrUnsupportedType, v)
}

// Name reports "proto" so servers treat the payloads as regular protobuf.
func (GRPCCodec) Name() string {
	return "proto"
}
