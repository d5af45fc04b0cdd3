package resource

import (
	"reflect"
	"strings"

	"github.com/spf13/cast"
)

// coercer converts one raw value to the target type.
type coercer func(raw any) (any, error)

// coercerFor returns the coercion function for a tag. Unsupported tags
// fail with InvalidAttributeSerializer.
func coercerFor(t TypeTag) (coercer, error) {
	switch t.kind {
	case untypedKind:
		return func(v any) (any, error) { return v, nil }, nil
	case integerKind:
		return lenient(toInteger), nil
	case stringKind:
		return lenient(toString), nil
	case symbolKind:
		return lenient(toSymbol), nil
	case floatKind:
		return lenient(toFloat), nil
	case arrayKind:
		return lenient(toArray), nil
	case booleanKind:
		return lenient(toBoolean), nil
	case resourceKind, valueObjectKind:
		if t.build == nil {
			break
		}
		return func(v any) (any, error) {
			if v == nil {
				return nil, nil
			}
			return t.build(v)
		}, nil
	}
	return nil, &InvalidAttributeSerializer{Type: t}
}

// Coerce converts raw to the target type. Scalar conversion failures yield
// nil rather than an error; only unsupported tags and nested constructors
// return errors.
func Coerce(t TypeTag, raw any) (any, error) {
	fn, err := coercerFor(t)
	if err != nil {
		return nil, err
	}
	return fn(raw)
}

// coerceAttribute applies the attribute's coercion to value, element-wise
// for lists.
func coerceAttribute(def *AttributeDefinition, value any) (any, error) {
	fn, err := coercerFor(def.Type)
	if err != nil {
		return nil, err
	}

	if !isList(value) {
		return fn(value)
	}

	// Lists of untyped or ArrayOfRaw attributes are kept as-is for
	// compatibility with payloads predating element coercion.
	if def.Type.kind == untypedKind || def.Type.kind == arrayKind {
		return value, nil
	}

	rv := reflect.ValueOf(value)
	out := make([]any, rv.Len())
	for i := range out {
		elem := rv.Index(i).Interface()
		if def.Type.accepts(elem) {
			out[i] = elem
			continue
		}
		if out[i], err = fn(elem); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func lenient(fn func(any) any) coercer {
	return func(v any) (any, error) { return fn(v), nil }
}

func isList(v any) bool {
	if v == nil {
		return false
	}
	if _, ok := v.([]byte); ok {
		return false
	}
	k := reflect.TypeOf(v).Kind()
	return k == reflect.Slice || k == reflect.Array
}

func toInteger(v any) any {
	switch t := v.(type) {
	case nil, bool:
		return nil
	case int64:
		return t
	case string:
		if strings.TrimSpace(t) == "" {
			return nil
		}
	}
	if i, err := cast.ToInt64E(v); err == nil {
		return i
	}
	// "1.5" and friends
	if s, ok := v.(string); ok {
		if f, err := cast.ToFloat64E(s); err == nil {
			return int64(f)
		}
	}
	return nil
}

func toFloat(v any) any {
	switch t := v.(type) {
	case nil, bool:
		return nil
	case float64:
		return t
	case string:
		if strings.TrimSpace(t) == "" {
			return nil
		}
	}
	if f, err := cast.ToFloat64E(v); err == nil {
		return f
	}
	return nil
}

func toString(v any) any {
	switch t := v.(type) {
	case nil:
		return nil
	case string:
		return t
	case Sym:
		return string(t)
	}
	if s, err := cast.ToStringE(v); err == nil {
		return s
	}
	return nil
}

func toSymbol(v any) any {
	switch t := v.(type) {
	case Sym:
		return t
	case string:
		return Sym(t)
	}
	return nil
}

func toArray(v any) any {
	if !isList(v) {
		return nil
	}
	return v
}

func toBoolean(v any) any {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return t == "true"
	}
	return false
}
