package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// MarshalJSON renders m as proto3 JSON: snake_case field names, defaults
// emitted, 64-bit integers and decimals as strings, Any values as
// {"@type": url, ...fields}.
func (r *Registry) MarshalJSON(m Message) ([]byte, error) {
	return r.cdc.MarshalJSON(m)
}

// UnmarshalJSON decodes a proto3 JSON document into m. Unknown fields are
// rejected and "@type" objects are resolved through the registry.
func (r *Registry) UnmarshalJSON(bz []byte, m Message) error {
	if err := r.cdc.UnmarshalJSON(bz, m); err != nil {
		return fmt.Errorf("UnmarshalJSON: error decoding %T: %w", m, err)
	}
	return nil
}

// ToJSON renders m as a generic JSON object. Numbers are kept as
// json.Number.
func (r *Registry) ToJSON(m Message) (map[string]any, error) {
	bz, err := r.MarshalJSON(m)
	if err != nil {
		return nil, fmt.Errorf("ToJSON: error marshaling %T: %w", m, err)
	}

	dec := json.NewDecoder(bytes.NewReader(bz))
	dec.UseNumber()

	out := map[string]any{}
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("ToJSON: error decoding %T: %w", m, err)
	}
	return out, nil
}

// FromJSON decodes a generic JSON value, typically a partial object, into
// m. Missing fields keep their zero value. Integers may be given as numbers
// or strings, enums by name or number, decimals as strings.
func (r *Registry) FromJSON(in any, m Message) error {
	bz, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("FromJSON: error marshaling %T input: %w", m, err)
	}
	return r.UnmarshalJSON(bz, m)
}
