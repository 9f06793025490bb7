package store

import (
	"context"
	"fmt"

	"google.golang.org/grpc"

	"github.com/sei-protocol/sei-client-go/codec"
	"github.com/sei-protocol/sei-client-go/tx"
)

// Query runs a query action: it fetches the result, commits it under the
// request's key and subscribes to it when asked. Fetch failures are
// returned as "QueryClient:<name.Name>" errors.
//
// fetch has the shape of a generated Query client method, so
// m.querier.Params can be passed directly.
func Query[Req codec.Message, Resp any](
	ctx context.Context,
	s *Store,
	name QueryName,
	req Req,
	opts QueryOptions,
	fetch func(ctx context.Context, req Req, opts ...grpc.CallOption) (*Resp, error),
) (*Resp, error) {
	params, err := s.registry.ToJSON(req)
	if err != nil {
		return nil, QueryError(name.Name, err)
	}
	key, err := Key(params, nil)
	if err != nil {
		return nil, QueryError(name.Name, err)
	}

	resp, err := fetch(ctx, req)
	if err != nil {
		s.logger.Error().Err(err).
			Str("query", name.String()).
			Msg("Query failed")
		return nil, QueryError(name.Name, err)
	}
	s.Commit(name.String(), key, resp)

	if opts.Subscribe {
		if err := s.Subscribe(Subscription{Action: name.String(), Params: params, All: opts.All}); err != nil {
			return nil, QueryError(name.Name, err)
		}
	}
	return resp, nil
}

// Lookup returns the committed result of the query action name for req.
func Lookup[Resp any](s *Store, name QueryName, req codec.Message) (*Resp, bool) {
	params, err := s.registry.ToJSON(req)
	if err != nil {
		return nil, false
	}
	key, err := Key(params, nil)
	if err != nil {
		return nil, false
	}
	return GetAs[*Resp](s, name.String(), key)
}

// RegisterQuery registers a query action under name. Replays decode the
// subscription params into a fresh request and never resubscribe.
func RegisterQuery[Req any, PReq interface {
	*Req
	codec.Message
}, Resp any](
	s *Store,
	name QueryName,
	query func(ctx context.Context, req PReq, opts QueryOptions) (*Resp, error),
) {
	s.RegisterAction(name.String(), func(ctx context.Context, sub Subscription) error {
		req := PReq(new(Req))
		if err := s.registry.FromJSON(sub.Params, req); err != nil {
			return fmt.Errorf("%s: error decoding params: %w", name, err)
		}
		_, err := query(ctx, req, QueryOptions{All: sub.All})
		return err
	})
}

// Build returns value as a *T. Values that are not already a T or *T are
// decoded from their proto3 JSON form, so partial objects leave the
// missing fields zero.
func Build[T any, PT interface {
	*T
	codec.Message
}](registry *codec.Registry, value any) (PT, error) {
	switch v := value.(type) {
	case PT:
		if v == nil {
			return nil, fmt.Errorf("Build: nil %T", v)
		}
		return v, nil
	case T:
		return PT(&v), nil
	}

	out := PT(new(T))
	if err := registry.FromJSON(value, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Fee returns fee, or tx.DefaultFee when fee is nil.
func Fee(fee *tx.StdFee) tx.StdFee {
	if fee == nil {
		return tx.DefaultFee()
	}
	return *fee
}

// Broadcast signs and broadcasts msg for the Tx action name using client,
// labelling failures "TxClient:<name>:Send".
func (s *Store) Broadcast(
	ctx context.Context,
	client tx.SigningClient,
	name string,
	msg codec.EncodeObject,
	fee *tx.StdFee,
	memo string,
) (*tx.BroadcastResult, error) {
	result, err := client.SignAndBroadcast(ctx, []codec.EncodeObject{msg}, Fee(fee), memo)
	if err != nil {
		s.logger.Error().Err(err).
			Str("msg", name).
			Msg("Broadcast failed")
		return nil, SendError(name, err)
	}

	s.logger.Debug().
		Str("msg", name).
		Str("tx_hash", result.TxHash).
		Int64("height", result.Height).
		Msg("Broadcast transaction")
	return result, nil
}
