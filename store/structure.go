package store

import (
	"encoding/json"
	"reflect"
	"strings"
	"time"

	gogoproto "github.com/cosmos/gogoproto/proto"

	"github.com/sei-protocol/sei-client-go/codec"
)

// Field describes one field of a message: its proto3 JSON name and the
// kind of JSON value it renders as.
type Field struct {
	Name string `json:"field"`
	Kind string `json:"type"`
}

type enum interface {
	EnumDescriptor() ([]byte, []int)
}

var (
	jsonMarshalerType = reflect.TypeOf((*json.Marshaler)(nil)).Elem()
	enumType          = reflect.TypeOf((*enum)(nil)).Elem()
	messageType       = reflect.TypeOf((*codec.Message)(nil)).Elem()
	timeType          = reflect.TypeOf(time.Time{})
	durationType      = reflect.TypeOf(time.Duration(0))
)

// Structure lists the fields of v, a generated message or a pointer to
// one. Fields without a protobuf tag are skipped.
func Structure(v any) []Field {
	typ := reflect.TypeOf(v)
	for typ != nil && typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	if typ == nil || typ.Kind() != reflect.Struct {
		return nil
	}

	fields := make([]Field, 0, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		if !f.IsExported() {
			continue
		}
		name, ok := protoName(f.Tag.Get("protobuf"))
		if !ok {
			continue
		}
		fields = append(fields, Field{Name: name, Kind: jsonKind(f.Type)})
	}
	return fields
}

// protoName returns the name= entry of a protobuf struct tag.
func protoName(tag string) (string, bool) {
	for _, part := range strings.Split(tag, ",") {
		if name, ok := strings.CutPrefix(part, "name="); ok {
			return name, true
		}
	}
	return "", false
}

func jsonKind(typ reflect.Type) string {
	for typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}

	switch {
	case typ == timeType, typ == durationType:
		return "string"
	case typ.Implements(enumType):
		return "string"
	case typ.Kind() == reflect.Slice || typ.Kind() == reflect.Array:
		if typ.Elem().Kind() == reflect.Uint8 {
			return "string"
		}
		return "array"
	case reflect.PointerTo(typ).Implements(messageType):
		return "object"
	case typ.Implements(jsonMarshalerType) || reflect.PointerTo(typ).Implements(jsonMarshalerType):
		// Decimals and big integers.
		return "string"
	}

	switch typ.Kind() {
	case reflect.String, reflect.Int64, reflect.Uint64:
		return "string"
	case reflect.Bool:
		return "boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32,
		reflect.Float32, reflect.Float64:
		return "number"
	default:
		return "object"
	}
}

// RegisterStructures records the structure of each message under its full
// proto name, e.g. "cosmos.distribution.v1beta1.Params".
func (s *Store) RegisterStructures(msgs ...codec.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, msg := range msgs {
		s.structures[gogoproto.MessageName(msg)] = Structure(msg)
	}
}

// TypeStructure returns the structure registered under name.
func (s *Store) TypeStructure(name string) ([]Field, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fields, ok := s.structures[name]
	return fields, ok
}
