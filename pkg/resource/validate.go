package resource

import (
	"fmt"
	"math"
	"reflect"
	"regexp"
	"slices"
	"sort"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cast"
)

var (
	errBlank       = validation.NewError("validation_blank", "can't be blank")
	errNotANumber  = validation.NewError("validation_not_a_number", "is not a number")
	errInvalid     = validation.NewError("validation_invalid", "is invalid")
	errNotIncluded = validation.NewError("validation_inclusion", "is not included in the list")
)

// ValidationRule checks one attribute value.
type ValidationRule struct {
	name string
	rule validation.Rule
}

// Presence fails on nil, blank strings, empty collections and false.
func Presence() ValidationRule {
	return ValidationRule{
		name: "presence",
		rule: validation.By(func(value any) error {
			if isBlank(value) {
				return errBlank
			}
			return nil
		}),
	}
}

// Numericality fails unless the value is a number or parses as one.
func Numericality() ValidationRule {
	return ValidationRule{
		name: "numericality",
		rule: validation.By(func(value any) error {
			if !isNumeric(value) {
				return errNotANumber
			}
			return nil
		}),
	}
}

// Format fails unless the text form of the value matches pattern.
func Format(pattern *regexp.Regexp) ValidationRule {
	match := validation.Match(pattern).ErrorObject(errInvalid)
	return ValidationRule{
		name: "format",
		rule: validation.By(func(value any) error {
			text := textOf(value)
			// Match skips empty values; a blank value still has to match.
			if text == "" {
				if pattern.MatchString("") {
					return nil
				}
				return errInvalid
			}
			return match.Validate(text)
		}),
	}
}

// Inclusion fails unless the value is one of allowed. Numbers match across
// numeric types, so an Integer attribute holding int64(1) is included in
// Inclusion(1).
func Inclusion(allowed ...any) ValidationRule {
	in := validation.In(allowed...).ErrorObject(errNotIncluded)
	return ValidationRule{
		name: "inclusion",
		rule: validation.By(func(value any) error {
			if slices.ContainsFunc(allowed, func(a any) bool { return sameNumber(a, value) }) {
				return nil
			}
			// In skips empty values; they must be listed explicitly.
			if validation.IsEmpty(value) {
				if slices.ContainsFunc(allowed, func(a any) bool { return reflect.DeepEqual(a, value) }) {
					return nil
				}
				return errNotIncluded
			}
			return in.Validate(value)
		}),
	}
}

// Name returns the rule name, e.g. "presence".
func (r ValidationRule) Name() string {
	return r.name
}

// Check returns the violation messages for value.
func (r ValidationRule) Check(value any) []string {
	if r.rule == nil {
		return nil
	}
	if err := validation.Validate(value, r.rule); err != nil {
		return []string{err.Error()}
	}
	return nil
}

// Errors maps attribute names to violation messages. Attributes without
// violations have no entry.
type Errors map[string][]string

// On returns the messages for name.
func (e Errors) On(name string) []string {
	return e[name]
}

// Empty reports whether there are no violations.
func (e Errors) Empty() bool {
	return len(e) == 0
}

// FullMessages returns "<attribute> <message>" strings sorted by attribute.
func (e Errors) FullMessages() []string {
	names := make([]string, 0, len(e))
	for name := range e {
		names = append(names, name)
	}
	sort.Strings(names)

	var messages []string
	for _, name := range names {
		for _, msg := range e[name] {
			messages = append(messages, name+" "+msg)
		}
	}
	return messages
}

// Err returns the violations as a single error, or nil.
func (e Errors) Err() error {
	var result *multierror.Error
	for _, msg := range e.FullMessages() {
		result = multierror.Append(result, fmt.Errorf("%s", msg))
	}
	return result.ErrorOrNil()
}

// Validate runs every rule of every attribute and replaces r's errors with
// the result. It reports whether there were no violations.
func (r *Resource) Validate() bool {
	errs := make(Errors)
	for _, def := range r.kind.Attributes() {
		if len(def.Validations) == 0 {
			continue
		}
		value := r.Get(def.Name)
		for _, rule := range def.Validations {
			if messages := rule.Check(value); len(messages) > 0 {
				errs[def.Name] = append(errs[def.Name], messages...)
			}
		}
	}
	r.errors = errs
	return errs.Empty()
}

// Errors returns the result of the last Validate call.
func (r *Resource) Errors() Errors {
	return r.errors
}

func isBlank(value any) bool {
	if value == nil {
		return true
	}
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v) == ""
	case Sym:
		return strings.TrimSpace(string(v)) == ""
	case bool:
		return !v
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() == 0
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// isNumeric rejects NaN and infinities, including their string spellings.
func isNumeric(value any) bool {
	var (
		f   float64
		err error
	)
	switch v := value.(type) {
	case nil, bool:
		return false
	case string:
		f, err = strconv.ParseFloat(strings.TrimSpace(v), 64)
	default:
		f, err = cast.ToFloat64E(value)
	}
	return err == nil && !math.IsNaN(f) && !math.IsInf(f, 0)
}

// sameNumber reports whether a and b are numbers of equal value. Integers
// are compared as int64, anything involving a float as float64.
func sameNumber(a, b any) bool {
	ka, kb := numberKind(a), numberKind(b)
	if ka == notNumber || kb == notNumber {
		return false
	}
	if ka == integerNumber && kb == integerNumber {
		ai, errA := cast.ToInt64E(a)
		bi, errB := cast.ToInt64E(b)
		return errA == nil && errB == nil && ai == bi
	}
	af, errA := cast.ToFloat64E(a)
	bf, errB := cast.ToFloat64E(b)
	return errA == nil && errB == nil && af == bf
}

const (
	notNumber = iota
	integerNumber
	floatNumber
)

func numberKind(v any) int {
	if v == nil {
		return notNumber
	}
	switch reflect.TypeOf(v).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return integerNumber
	case reflect.Float32, reflect.Float64:
		return floatNumber
	}
	return notNumber
}

func textOf(value any) string {
	if value == nil {
		return ""
	}
	if s, err := cast.ToStringE(value); err == nil {
		return s
	}
	return fmt.Sprint(value)
}
