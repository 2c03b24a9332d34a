package dispatch

import (
	"bytes"
	"encoding/json"
)

// KeyErrorMessage is the bundle key that marks a halted dispatch.
const KeyErrorMessage = "error_message"

// Bundle is the ordered key/value context assembled while answering one
// question. Keys keep first-insertion order, which downstream consumers
// rely on when rendering the context.
type Bundle struct {
	keys   []string
	values map[string]any
}

// NewBundle returns an empty bundle.
func NewBundle() *Bundle {
	return &Bundle{values: make(map[string]any)}
}

// Set stores v under key. A repeated key overwrites in place and keeps its
// original position.
func (b *Bundle) Set(key string, v any) {
	if _, ok := b.values[key]; !ok {
		b.keys = append(b.keys, key)
	}
	b.values[key] = v
}

// Get returns the value stored under key.
func (b *Bundle) Get(key string) (any, bool) {
	v, ok := b.values[key]
	return v, ok
}

// Has reports whether key is present.
func (b *Bundle) Has(key string) bool {
	_, ok := b.values[key]
	return ok
}

// Keys returns the keys in insertion order. Callers must not mutate the
// returned slice.
func (b *Bundle) Keys() []string { return b.keys }

// Len returns the number of entries.
func (b *Bundle) Len() int { return len(b.keys) }

// ErrorMessage returns the halt message, or empty when the dispatch ran to
// completion.
func (b *Bundle) ErrorMessage() string {
	if v, ok := b.values[KeyErrorMessage]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// MarshalJSON renders the bundle as a JSON object in insertion order.
func (b *Bundle) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range b.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(b.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
