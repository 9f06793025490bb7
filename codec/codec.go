// Package codec adapts the Cosmos SDK protobuf codec to the module stores.
//
// Message types are the SDK's generated gogoproto types. A Registry wraps
// the SDK InterfaceRegistry and ProtoCodec so that:
//   - Any values and "@type" JSON objects resolve to concrete messages
//   - messages convert to and from generic JSON objects (proto3 JSON names)
//   - decoded messages have their interfaces unpacked
package codec

import (
	"errors"
	"fmt"
	"sort"

	sdkcodec "github.com/cosmos/cosmos-sdk/codec"
	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	cryptocodec "github.com/cosmos/cosmos-sdk/crypto/codec"
	gogoproto "github.com/cosmos/gogoproto/proto"
)

var (
	// ErrUnknownTypeURL is returned when a type URL has no registered message.
	ErrUnknownTypeURL = errors.New("unknown type URL")
	// ErrUnsupportedType is returned when a value cannot be handled by a codec.
	ErrUnsupportedType = errors.New("unsupported type")
)

// Message is a generated protobuf message.
type Message = gogoproto.Message

// Marshal returns the wire encoding of m.
func Marshal(m Message) ([]byte, error) {
	return gogoproto.Marshal(m)
}

// Unmarshal decodes bz into m without unpacking interfaces. Use
// Registry.Unmarshal for messages carrying Any fields.
func Unmarshal(bz []byte, m Message) error {
	return gogoproto.Unmarshal(bz, m)
}

// Registry resolves type URLs to messages. It is shared by the query
// clients, the REST client and the store.
type Registry struct {
	interfaces codectypes.InterfaceRegistry
	cdc        *sdkcodec.ProtoCodec
}

// NewRegistry returns a registry knowing the public key types. Modules add
// their own types with Register.
func NewRegistry() *Registry {
	interfaces := codectypes.NewInterfaceRegistry()
	cryptocodec.RegisterInterfaces(interfaces)
	return &Registry{
		interfaces: interfaces,
		cdc:        sdkcodec.NewProtoCodec(interfaces),
	}
}

// Register runs each module's RegisterInterfaces against the registry,
// e.g. r.Register(govv1beta1.RegisterInterfaces).
func (r *Registry) Register(fns ...func(codectypes.InterfaceRegistry)) {
	for _, fn := range fns {
		fn(r.interfaces)
	}
}

func (r *Registry) InterfaceRegistry() codectypes.InterfaceRegistry {
	return r.interfaces
}

func (r *Registry) Codec() *sdkcodec.ProtoCodec {
	return r.cdc
}

// TypeURLs returns the type URLs of every registered implementation, sorted.
func (r *Registry) TypeURLs() []string {
	seen := make(map[string]struct{})
	for _, iface := range r.interfaces.ListAllInterfaces() {
		for _, url := range r.interfaces.ListImplementations(iface) {
			seen[url] = struct{}{}
		}
	}

	urls := make([]string, 0, len(seen))
	for url := range seen {
		urls = append(urls, url)
	}
	sort.Strings(urls)
	return urls
}

// New returns a fresh zero message for typeURL.
func (r *Registry) New(typeURL string) (Message, error) {
	msg, err := r.interfaces.Resolve(typeURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTypeURL, typeURL)
	}
	return msg, nil
}

// Marshal returns the wire encoding of m. An empty message encodes to an
// empty, non-nil slice.
func (r *Registry) Marshal(m Message) ([]byte, error) {
	return r.cdc.Marshal(m)
}

// Unmarshal decodes bz into m and unpacks the Any values it carries.
func (r *Registry) Unmarshal(bz []byte, m Message) error {
	return r.cdc.Unmarshal(bz, m)
}

// Pack wraps m in an Any under its own type URL.
func (r *Registry) Pack(m Message) (*codectypes.Any, error) {
	return codectypes.NewAnyWithValue(m)
}

// Unpack decodes the message carried by a.
func (r *Registry) Unpack(a *codectypes.Any) (Message, error) {
	if a == nil {
		return nil, fmt.Errorf("Unpack: %w: nil Any", ErrUnsupportedType)
	}
	msg, err := r.New(a.TypeUrl)
	if err != nil {
		return nil, err
	}
	if err := r.Unmarshal(a.Value, msg); err != nil {
		return nil, fmt.Errorf("Unpack: error decoding %s: %w", a.TypeUrl, err)
	}
	return msg, nil
}

// EncodeObject identifies a transaction message for signing.
type EncodeObject struct {
	TypeURL string
	Value   Message
}

// NewEncodeObject wraps msg with its type URL, e.g. "/cosmos.gov.v1beta1.MsgVote".
func NewEncodeObject(msg Message) EncodeObject {
	return EncodeObject{TypeURL: codectypes.MsgTypeURL(msg), Value: msg}
}

// Any packs the object's value.
func (o EncodeObject) Any() (*codectypes.Any, error) {
	return codectypes.NewAnyWithValue(o.Value)
}
