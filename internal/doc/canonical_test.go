package doc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalCanonicalBasic(t *testing.T) {
	tests := []struct {
		name     string
		input    Value
		expected string
	}{
		{"string", String("hello"), `"hello"`},
		{"empty string", String(""), `""`},
		{"int", Int(42), "42"},
		{"negative int", Int(-100), "-100"},
		{"float", Float(2.5), "2.5"},
		{"integral float", Float(4), "4"},
		{"small float", Float(1e-7), "1e-07"},
		{"null", Null{}, "null"},
		{"bool", Bool(true), "true"},
		{"empty array", List{}, "[]"},
		{"empty object", NewMap(), "{}"},
		{"no html escaping", String("<a&b>"), `"<a&b>"`},
		{"time", Time{time.Date(2021, 7, 14, 10, 10, 10, 0, time.UTC)}, `"2021-07-14T10:10:10Z"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := MarshalCanonical(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, string(result))
		})
	}
}

func TestMarshalCanonicalSortedKeys(t *testing.T) {
	m := NewMap()
	m.Set("zebra", Int(1))
	m.Set("alpha", Int(2))
	inner := NewMap()
	inner.Set("b", Int(1))
	inner.Set("a", Int(2))
	m.Set("beta", inner)

	result, err := MarshalCanonical(m)
	require.NoError(t, err)
	assert.Equal(t, `{"alpha":2,"beta":{"a":2,"b":1},"zebra":1}`, string(result))
}

func TestMarshalCanonicalNFC(t *testing.T) {
	decomposed := String("e\u0301") // e + combining acute
	composed := String("\u00e9")

	a, err := MarshalCanonical(decomposed)
	require.NoError(t, err)
	b, err := MarshalCanonical(composed)
	require.NoError(t, err)
	assert.Equal(t, string(b), string(a))
}

func TestMarshalCanonicalLineSeparators(t *testing.T) {
	result, err := MarshalCanonical(String("a\u2028b"))
	require.NoError(t, err)
	assert.Equal(t, "\"a\u2028b\"", string(result))

	literal, err := MarshalCanonical(String(`a\u2028b`))
	require.NoError(t, err)
	assert.Equal(t, `"a\\u2028b"`, string(literal))
}

func TestMarshalCanonicalRejectsNaN(t *testing.T) {
	_, err := MarshalCanonical(List{Float(posInf())})
	require.Error(t, err)
}

func TestContentIDIgnoresKeyOrder(t *testing.T) {
	a := NewMap()
	a.Set("x", Int(1))
	a.Set("y", Int(2))
	b := NewMap()
	b.Set("y", Int(2))
	b.Set("x", Int(1))

	idA, err := ContentID(a)
	require.NoError(t, err)
	idB, err := ContentID(b)
	require.NoError(t, err)

	assert.Equal(t, idA, idB)
	assert.Len(t, idA, 64)

	b.Set("x", Int(3))
	idC, err := ContentID(b)
	require.NoError(t, err)
	assert.NotEqual(t, idA, idC)
}

func TestUnmarshalJSON(t *testing.T) {
	v, err := UnmarshalJSON([]byte(`{"b":[1,2.5,1e3],"a":{"s":"x","n":null,"t":true}}`))
	require.NoError(t, err)

	m := v.(*Map)
	assert.Equal(t, []string{"a", "b"}, m.Keys())
	b, _ := m.Get("b")
	assert.Equal(t, List{Int(1), Float(2.5), Float(1000)}, b)

	back, err := MarshalCanonical(v)
	require.NoError(t, err)
	assert.Equal(t, `{"a":{"n":null,"s":"x","t":true},"b":[1,2.5,1000]}`, string(back))
}
