package record

import (
	"bytes"
	"encoding/json"
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Kind identifies which branch of the Value union is populated.
type Kind int

const (
	ScalarKind Kind = iota
	MappingKind
	SequenceKind
)

func (k Kind) String() string {
	switch k {
	case ScalarKind:
		return "scalar"
	case MappingKind:
		return "mapping"
	case SequenceKind:
		return "sequence"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Fields is an insertion-ordered mapping of record keys to values.
type Fields = orderedmap.OrderedMap[string, Value]

// Value is one node of a record: a scalar, an ordered mapping or a sequence.
// Scalars hold nil, bool, string or json.Number. The zero Value is a null scalar.
type Value struct {
	kind    Kind
	scalar  any
	mapping *Fields
	items   []Value
}

// Null returns the JSON null scalar.
func Null() Value { return Value{} }

// String returns a string scalar.
func String(s string) Value { return Value{kind: ScalarKind, scalar: s} }

// Bool returns a boolean scalar.
func Bool(b bool) Value { return Value{kind: ScalarKind, scalar: b} }

// Number returns a numeric scalar keeping the exact textual form of n.
func Number(n json.Number) Value { return Value{kind: ScalarKind, scalar: n} }

// NewMapping returns an empty mapping value.
func NewMapping() Value {
	return Value{kind: MappingKind, mapping: orderedmap.New[string, Value]()}
}

// NewSequence returns a sequence holding items.
func NewSequence(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{kind: SequenceKind, items: items}
}

func (v Value) Kind() Kind       { return v.kind }
func (v Value) IsScalar() bool   { return v.kind == ScalarKind }
func (v Value) IsMapping() bool  { return v.kind == MappingKind }
func (v Value) IsSequence() bool { return v.kind == SequenceKind }
func (v Value) IsNull() bool     { return v.kind == ScalarKind && v.scalar == nil }
func (v Value) Scalar() any      { return v.scalar }
func (v Value) Items() []Value   { return v.items }

// AsString reports the string held by a string scalar.
func (v Value) AsString() (string, bool) {
	s, ok := v.scalar.(string)
	return s, ok && v.kind == ScalarKind
}

// AsBool reports the boolean held by a boolean scalar.
func (v Value) AsBool() (bool, bool) {
	b, ok := v.scalar.(bool)
	return b, ok && v.kind == ScalarKind
}

// Len returns the number of entries of a mapping or items of a sequence, 0 for scalars.
func (v Value) Len() int {
	switch v.kind {
	case MappingKind:
		if v.mapping == nil {
			return 0
		}
		return v.mapping.Len()
	case SequenceKind:
		return len(v.items)
	default:
		return 0
	}
}

// Get looks up key in a mapping. It reports false for non-mappings.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != MappingKind || v.mapping == nil {
		return Value{}, false
	}
	return v.mapping.Get(key)
}

// Set stores key in a mapping. An existing key keeps its position.
// Set panics when v is not a mapping created by NewMapping or Parse.
func (v Value) Set(key string, val Value) {
	if v.kind != MappingKind || v.mapping == nil {
		panic("record: Set called on a " + v.kind.String())
	}
	v.mapping.Set(key, val)
}

// Keys returns the mapping keys in insertion order.
func (v Value) Keys() []string {
	if v.kind != MappingKind || v.mapping == nil {
		return nil
	}
	keys := make([]string, 0, v.mapping.Len())
	for pair := v.mapping.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Each calls fn for every mapping entry in insertion order.
func (v Value) Each(fn func(key string, val Value)) {
	if v.kind != MappingKind || v.mapping == nil {
		return
	}
	for pair := v.mapping.Oldest(); pair != nil; pair = pair.Next() {
		fn(pair.Key, pair.Value)
	}
}

// Clone returns a deep copy that shares no mapping or sequence storage with v.
func (v Value) Clone() Value {
	switch v.kind {
	case MappingKind:
		out := NewMapping()
		v.Each(func(key string, val Value) {
			out.mapping.Set(key, val.Clone())
		})
		return out
	case SequenceKind:
		items := make([]Value, len(v.items))
		for i, item := range v.items {
			items[i] = item.Clone()
		}
		return Value{kind: SequenceKind, items: items}
	default:
		return v
	}
}

// MarshalJSON encodes v keeping mapping key order. HTML characters are not
// escaped.
func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := v.encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (v Value) encode(buf *bytes.Buffer) error {
	switch v.kind {
	case MappingKind:
		buf.WriteByte('{')
		if v.mapping != nil {
			first := true
			for pair := v.mapping.Oldest(); pair != nil; pair = pair.Next() {
				if !first {
					buf.WriteByte(',')
				}
				first = false
				if err := encodeScalar(buf, pair.Key); err != nil {
					return err
				}
				buf.WriteByte(':')
				if err := pair.Value.encode(buf); err != nil {
					return err
				}
			}
		}
		buf.WriteByte('}')
	case SequenceKind:
		buf.WriteByte('[')
		for i, item := range v.items {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := item.encode(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	default:
		return encodeScalar(buf, v.scalar)
	}
	return nil
}

func encodeScalar(buf *bytes.Buffer, scalar any) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(scalar); err != nil {
		return err
	}
	// Encode terminates every value with a newline
	buf.Truncate(buf.Len() - 1)
	return nil
}

// UnmarshalJSON decodes any JSON document, keeping object key order and
// number text.
func (v *Value) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return fmt.Errorf("record: empty JSON value")
	}

	switch trimmed[0] {
	case '{':
		m := orderedmap.New[string, Value]()
		if err := m.UnmarshalJSON(trimmed); err != nil {
			return fmt.Errorf("record: decoding object: %w", err)
		}
		*v = Value{kind: MappingKind, mapping: m}
	case '[':
		var items []Value
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return err
		}
		*v = NewSequence(items...)
	default:
		dec := json.NewDecoder(bytes.NewReader(trimmed))
		dec.UseNumber()
		var scalar any
		if err := dec.Decode(&scalar); err != nil {
			return err
		}
		*v = Value{kind: ScalarKind, scalar: scalar}
	}
	return nil
}

// Parse decodes a JSON document into a Value.
func Parse(data []byte) (Value, error) {
	var v Value
	if err := json.Unmarshal(data, &v); err != nil {
		return Value{}, err
	}
	return v, nil
}

// MustParse is Parse for literals known to be valid.
func MustParse(doc string) Value {
	v, err := Parse([]byte(doc))
	if err != nil {
		panic(fmt.Sprintf("record: MustParse(%q): %v", doc, err))
	}
	return v
}

// Compact renders v as single-line JSON, or a placeholder if encoding fails.
func Compact(v Value) string {
	data, err := v.MarshalJSON()
	if err != nil {
		return fmt.Sprintf("<unencodable %s: %v>", v.kind, err)
	}
	return string(data)
}
