package record

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKeepsKeyOrder(t *testing.T) {
	v, err := Parse([]byte(`{"zeta": 1, "alpha": {"y": true, "b": null}, "mid": ["x", 2.50]}`))
	require.NoError(t, err)

	assert.Equal(t, MappingKind, v.Kind())
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, v.Keys())

	alpha, ok := v.Get("alpha")
	require.True(t, ok)
	assert.Equal(t, []string{"y", "b"}, alpha.Keys())

	b, ok := alpha.Get("b")
	require.True(t, ok)
	assert.True(t, b.IsNull())

	mid, _ := v.Get("mid")
	require.True(t, mid.IsSequence())
	assert.Len(t, mid.Items(), 2)
	assert.Equal(t, json.Number("2.50"), mid.Items()[1].Scalar())

	assert.Equal(t, `{"zeta":1,"alpha":{"y":true,"b":null},"mid":["x",2.50]}`, Compact(v))
}

func TestParseScalarsAndArrays(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		kind Kind
		want string
	}{
		{name: "bare array", doc: `[{"a":1},{"b":2}]`, kind: SequenceKind, want: `[{"a":1},{"b":2}]`},
		{name: "empty array", doc: `[]`, kind: SequenceKind, want: `[]`},
		{name: "empty object", doc: ` {} `, kind: MappingKind, want: `{}`},
		{name: "string", doc: `"Ada Lovelace"`, kind: ScalarKind, want: `"Ada Lovelace"`},
		{name: "large integer", doc: `12345678901234567890`, kind: ScalarKind, want: `12345678901234567890`},
		{name: "boolean", doc: `false`, kind: ScalarKind, want: `false`},
		{name: "null", doc: `null`, kind: ScalarKind, want: `null`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Parse([]byte(tt.doc))
			require.NoError(t, err)
			assert.Equal(t, tt.kind, v.Kind())
			assert.Equal(t, tt.want, Compact(v))
		})
	}
}

func TestParseRejectsMalformedJSON(t *testing.T) {
	for _, doc := range []string{``, `{"a":`, `<html>`, `[1,]`} {
		_, err := Parse([]byte(doc))
		assert.Error(t, err, "document %q", doc)
	}
}

func TestCloneSharesNoStorage(t *testing.T) {
	orig := MustParse(`{"member": {"name": "Ada Lovelace"}, "tags": ["a"]}`)
	cp := orig.Clone()

	member, _ := cp.Get("member")
	member.Set("name", String("Ada"))
	cp.Set("extra", Bool(true))

	assert.Equal(t, `{"member":{"name":"Ada Lovelace"},"tags":["a"]}`, Compact(orig))
	assert.Equal(t, `{"member":{"name":"Ada"},"tags":["a"],"extra":true}`, Compact(cp))
}

func TestSetKeepsPosition(t *testing.T) {
	m := NewMapping()
	m.Set("a", String("1"))
	m.Set("b", String("2"))
	m.Set("a", String("3"))

	assert.Equal(t, []string{"a", "b"}, m.Keys())
	assert.Equal(t, 2, m.Len())
	assert.Equal(t, `{"a":"3","b":"2"}`, Compact(m))
}

func TestSetPanicsOnNonMapping(t *testing.T) {
	assert.Panics(t, func() { String("x").Set("a", Null()) })
}

func TestAccessors(t *testing.T) {
	s, ok := String("hi").AsString()
	assert.True(t, ok)
	assert.Equal(t, "hi", s)

	_, ok = Bool(true).AsString()
	assert.False(t, ok)

	b, ok := Bool(true).AsBool()
	assert.True(t, ok)
	assert.True(t, b)

	_, ok = String("x").Get("a")
	assert.False(t, ok)
	assert.Nil(t, String("x").Keys())
	assert.Equal(t, 0, Number("1").Len())
	assert.Equal(t, "sequence", SequenceKind.String())
}
