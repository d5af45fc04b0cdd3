package resource

import (
	"fmt"
	"reflect"

	"github.com/mitchellh/mapstructure"
)

// Sym is the runtime type of Symbol attributes.
type Sym string

type typeKind int

const (
	invalidKind typeKind = iota
	untypedKind
	integerKind
	stringKind
	symbolKind
	floatKind
	arrayKind
	booleanKind
	resourceKind
	valueObjectKind
)

// TypeTag is the coercion target of an attribute. The zero value is not a
// valid target and fails with InvalidAttributeSerializer when coerced.
type TypeTag struct {
	kind typeKind
	name string

	runtime reflect.Type

	// set for nested tags only
	nested *Kind
	build  func(raw any) (any, error)
}

var (
	Untyped    = TypeTag{kind: untypedKind, name: "Untyped"}
	Integer    = TypeTag{kind: integerKind, name: "Integer", runtime: reflect.TypeOf(int64(0))}
	String     = TypeTag{kind: stringKind, name: "String", runtime: reflect.TypeOf("")}
	Symbol     = TypeTag{kind: symbolKind, name: "Symbol", runtime: reflect.TypeOf(Sym(""))}
	Float      = TypeTag{kind: floatKind, name: "Float", runtime: reflect.TypeOf(float64(0))}
	ArrayOfRaw = TypeTag{kind: arrayKind, name: "ArrayOfRaw"}
	Boolean    = TypeTag{kind: booleanKind, name: "Boolean", runtime: reflect.TypeOf(false)}
)

// NestedResource coerces raw maps into resources of kind k.
func NestedResource(k *Kind) TypeTag {
	tag := TypeTag{
		kind:    resourceKind,
		runtime: reflect.TypeOf((*Resource)(nil)),
		nested:  k,
	}
	if k == nil {
		return tag
	}
	tag.name = fmt.Sprintf("NestedResource(%s)", k.Name())
	tag.build = func(raw any) (any, error) {
		if r, ok := raw.(*Resource); ok && r.kind.IsA(k) {
			return r, nil
		}
		values, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("cannot build %s from %T", k.Name(), raw)
		}
		return k.build(values, false)
	}
	return tag
}

// NestedAttributeValueObject coerces raw maps into *T using mapstructure.
// Map keys are matched against `mapstructure` struct tags.
func NestedAttributeValueObject[T any]() TypeTag {
	rt := reflect.TypeOf((*T)(nil))
	return ValueObject(rt.Elem().Name(), rt, func(raw any) (any, error) {
		switch v := raw.(type) {
		case *T:
			return v, nil
		case T:
			return &v, nil
		}

		out := new(T)
		decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Result:           out,
			WeaklyTypedInput: true,
		})
		if err != nil {
			return nil, err
		}
		if err := decoder.Decode(raw); err != nil {
			return nil, fmt.Errorf("cannot build %s: %w", rt.Elem().Name(), err)
		}
		return out, nil
	})
}

// ValueObject builds a value-object tag from an explicit constructor.
// runtime is the type the constructor returns; values already of that type
// skip the constructor inside lists.
func ValueObject(name string, runtime reflect.Type, build func(raw any) (any, error)) TypeTag {
	return TypeTag{
		kind:    valueObjectKind,
		name:    fmt.Sprintf("NestedAttributeValueObject(%s)", name),
		build:   build,
		runtime: runtime,
	}
}

func (t TypeTag) String() string {
	if t.name == "" {
		return fmt.Sprintf("TypeTag(%d)", t.kind)
	}
	return t.name
}

// accepts reports whether v already has the tag's runtime type.
func (t TypeTag) accepts(v any) bool {
	if t.runtime == nil || v == nil {
		return false
	}
	if t.kind == resourceKind {
		r, ok := v.(*Resource)
		return ok && t.nested != nil && r.kind.IsA(t.nested)
	}
	return reflect.TypeOf(v) == t.runtime
}
