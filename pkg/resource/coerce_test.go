package resource

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type address struct {
	Street string `mapstructure:"street" json:"street"`
	Zip    int    `mapstructure:"zip" json:"zip"`
}

func TestCoerce_Scalars(t *testing.T) {
	tests := []struct {
		name string
		tag  TypeTag
		raw  any
		want any
	}{
		// Integer
		{"integer from int", Integer, 5, int64(5)},
		{"integer from float", Integer, float64(5.9), int64(5)},
		{"integer from string", Integer, "42", int64(42)},
		{"integer from decimal string", Integer, "1.5", int64(1)},
		{"integer from json number", Integer, json.Number("7"), int64(7)},
		{"integer from garbage", Integer, "abc", nil},
		{"integer from blank", Integer, "  ", nil},
		{"integer from bool", Integer, true, nil},
		{"integer from map", Integer, map[string]any{"a": 1}, nil},
		{"integer from nil", Integer, nil, nil},

		// Float
		{"float from int", Float, 2, float64(2)},
		{"float from string", Float, "2.5", 2.5},
		{"float from garbage", Float, "x", nil},
		{"float from bool", Float, false, nil},
		{"float from nil", Float, nil, nil},

		// String
		{"string from string", String, "foo", "foo"},
		{"string from int", String, 12, "12"},
		{"string from float", String, 1.5, "1.5"},
		{"string from bool", String, true, "true"},
		{"string from symbol", String, Sym("foo"), "foo"},
		{"string from map", String, map[string]any{"a": 1}, nil},
		{"string from nil", String, nil, nil},

		// Symbol
		{"symbol from string", Symbol, "foo", Sym("foo")},
		{"symbol from symbol", Symbol, Sym("foo"), Sym("foo")},
		{"symbol from int", Symbol, 1, nil},
		{"symbol from nil", Symbol, nil, nil},

		// Boolean
		{"boolean from true", Boolean, true, true},
		{"boolean from string true", Boolean, "true", true},
		{"boolean from false", Boolean, false, false},
		{"boolean from string false", Boolean, "false", false},
		{"boolean from string TRUE", Boolean, "TRUE", false},
		{"boolean from one", Boolean, 1, false},
		{"boolean from nil", Boolean, nil, false},

		// ArrayOfRaw
		{"array from list", ArrayOfRaw, []any{1, "a"}, []any{1, "a"}},
		{"array from scalar", ArrayOfRaw, "a", nil},

		// Untyped
		{"untyped map", Untyped, map[string]any{"a": 1}, map[string]any{"a": 1}},
		{"untyped nil", Untyped, nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Coerce(tt.tag, tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCoerce_Idempotent(t *testing.T) {
	tags := []TypeTag{Integer, Float, String, Symbol, Boolean, ArrayOfRaw, Untyped}
	inputs := []any{"12", 3, 4.5, "true", true, "foo", []any{"x"}, nil}

	for _, tag := range tags {
		for _, in := range inputs {
			once, err := Coerce(tag, in)
			require.NoError(t, err)
			twice, err := Coerce(tag, once)
			require.NoError(t, err)
			assert.Equal(t, once, twice, "%s(%v)", tag, in)
		}
	}
}

func TestCoerce_InvalidTag(t *testing.T) {
	tests := []struct {
		name string
		tag  TypeTag
	}{
		{"zero tag", TypeTag{}},
		{"resource without kind", NestedResource(nil)},
		{"value object without constructor", ValueObject("Broken", nil, nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Coerce(tt.tag, "anything")
			require.Error(t, err)

			var invalid *InvalidAttributeSerializer
			require.ErrorAs(t, err, &invalid)
			assert.Contains(t, err.Error(), "is not a valid attribute serializer")
		})
	}
}

func TestCoerce_InvalidTagSurfacesOnFirstCoercion(t *testing.T) {
	// Declaring is fine, building is not.
	k := NewKind("Broken").Attribute("weird", Type(TypeTag{}))

	r, err := k.New(nil)
	require.NoError(t, err)
	assert.NotNil(t, r)

	_, err = k.New(map[string]any{"weird": []any{1}})
	var invalid *InvalidAttributeSerializer
	require.ErrorAs(t, err, &invalid)
}

func TestCoerce_NestedResource(t *testing.T) {
	child := NewKind("Child").Attribute("count", Type(Integer))
	tag := NestedResource(child)
	assert.Equal(t, "NestedResource(Child)", tag.String())

	got, err := Coerce(tag, map[string]any{"id": 3, "count": "2"})
	require.NoError(t, err)
	r, ok := got.(*Resource)
	require.True(t, ok)
	assert.Same(t, child, r.Kind())
	assert.Equal(t, int64(2), r.Get("count"))
	assert.Equal(t, 3, r.ID())

	again, err := Coerce(tag, r)
	require.NoError(t, err)
	assert.Same(t, r, again)

	none, err := Coerce(tag, nil)
	require.NoError(t, err)
	assert.Nil(t, none)

	_, err = Coerce(tag, "not a map")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot build Child from string")
}

func TestCoerce_NestedAttributeValueObject(t *testing.T) {
	tag := NestedAttributeValueObject[address]()
	assert.Equal(t, "NestedAttributeValueObject(address)", tag.String())

	got, err := Coerce(tag, map[string]any{"street": "Main", "zip": "12345"})
	require.NoError(t, err)
	assert.Equal(t, &address{Street: "Main", Zip: 12345}, got)

	again, err := Coerce(tag, got)
	require.NoError(t, err)
	assert.Same(t, got, again)

	_, err = Coerce(tag, map[string]any{"zip": map[string]any{"a": 1}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot build address")
}

func TestCoerceAttribute_Lists(t *testing.T) {
	t.Run("element-wise coercion", func(t *testing.T) {
		def := &AttributeDefinition{Name: "ids", Type: Integer}
		got, err := coerceAttribute(def, []any{"1", 2, int64(3), "x"})
		require.NoError(t, err)
		assert.Equal(t, []any{int64(1), int64(2), int64(3), nil}, got)
	})

	t.Run("typed slices", func(t *testing.T) {
		def := &AttributeDefinition{Name: "names", Type: String}
		got, err := coerceAttribute(def, []int{1, 2})
		require.NoError(t, err)
		assert.Equal(t, []any{"1", "2"}, got)
	})

	t.Run("elements already of the runtime type pass through", func(t *testing.T) {
		def := &AttributeDefinition{Name: "flags", Type: Boolean}
		got, err := coerceAttribute(def, []any{true, "true", "no"})
		require.NoError(t, err)
		assert.Equal(t, []any{true, true, false}, got)
	})

	t.Run("value objects", func(t *testing.T) {
		existing := &address{Street: "Elm"}
		def := &AttributeDefinition{Name: "addresses", Type: NestedAttributeValueObject[address]()}
		got, err := coerceAttribute(def, []any{existing, map[string]any{"street": "Oak"}})
		require.NoError(t, err)

		list := got.([]any)
		assert.Same(t, existing, list[0])
		assert.Equal(t, &address{Street: "Oak"}, list[1])
	})

	// Lists declared without an element type are kept verbatim, including
	// their concrete slice type. This is intentional compatibility behavior.
	t.Run("untyped list passthrough", func(t *testing.T) {
		def := &AttributeDefinition{Name: "raw", Type: Untyped}
		in := []string{"1", "2"}
		got, err := coerceAttribute(def, in)
		require.NoError(t, err)
		assert.Equal(t, in, got)
		assert.Equal(t, reflect.TypeOf(in), reflect.TypeOf(got))
	})

	t.Run("array of raw list passthrough", func(t *testing.T) {
		def := &AttributeDefinition{Name: "raw", Type: ArrayOfRaw}
		in := []any{"1", 2}
		got, err := coerceAttribute(def, in)
		require.NoError(t, err)
		assert.Equal(t, in, got)
	})

	t.Run("invalid tag fails even for lists", func(t *testing.T) {
		def := &AttributeDefinition{Name: "raw", Type: TypeTag{}}
		_, err := coerceAttribute(def, []any{1})
		var invalid *InvalidAttributeSerializer
		require.ErrorAs(t, err, &invalid)
	})

	t.Run("nested construction errors propagate", func(t *testing.T) {
		child := NewKind("Child")
		def := &AttributeDefinition{Name: "children", Type: NestedResource(child)}
		_, err := coerceAttribute(def, []any{map[string]any{}, "bad"})
		require.Error(t, err)
	})

	t.Run("bytes are scalar", func(t *testing.T) {
		def := &AttributeDefinition{Name: "blob", Type: String}
		got, err := coerceAttribute(def, []byte("abc"))
		require.NoError(t, err)
		assert.Equal(t, "abc", got)
	})
}
