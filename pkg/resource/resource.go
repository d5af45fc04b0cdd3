package resource

import (
	"encoding/json"
	"fmt"
)

// Resource is an instance of a kind.
type Resource struct {
	kind   *Kind
	values map[string]any
	errors Errors
}

// New builds a resource from values, coercing each one to its declared type.
// Undeclared names fail with ErrUnknownAttribute.
func (k *Kind) New(values map[string]any) (*Resource, error) {
	return k.build(values, true)
}

func (k *Kind) build(values map[string]any, strict bool) (*Resource, error) {
	r := &Resource{
		kind:   k,
		values: make(map[string]any),
	}
	if err := r.assign(values, strict); err != nil {
		return nil, err
	}
	return r, nil
}

// assign coerces values into r. Undeclared names are an error when strict
// and dropped otherwise. r is left untouched unless every value coerces.
func (r *Resource) assign(values map[string]any, strict bool) error {
	staged := make(map[string]any, len(values))
	for name, value := range values {
		def, ok := r.kind.Definition(name)
		if !ok {
			if strict {
				return unknownAttribute(r.kind, name)
			}
			r.kind.logger.Trace("dropping undeclared attribute", "attribute", name)
			continue
		}

		coerced, err := coerceAttribute(def, value)
		if err != nil {
			return fmt.Errorf("attribute %q of %s: %w", name, r.kind.name, err)
		}
		staged[name] = coerced
	}

	for name, value := range staged {
		r.values[name] = value
	}
	return nil
}

// Kind returns the resource's kind.
func (r *Resource) Kind() *Kind {
	return r.kind
}

// Get returns the value of name, or its default when unset. It panics with
// ErrUnknownAttribute when name is not declared.
func (r *Resource) Get(name string) any {
	def := r.kind.mustDefinition(name)
	if v := r.values[name]; v != nil {
		return v
	}
	return def.DefaultValue()
}

// Set stores value for name without coercion. It panics with
// ErrUnknownAttribute when name is not declared.
func (r *Resource) Set(name string, value any) {
	r.kind.mustDefinition(name)
	r.values[name] = value
}

// ID returns the id attribute.
func (r *Resource) ID() any {
	return r.values[IDAttribute]
}

// IsNew reports whether the resource has no id yet.
func (r *Resource) IsNew() bool {
	return r.ID() == nil
}

// Attributes returns every effective attribute with defaults applied.
func (r *Resource) Attributes() map[string]any {
	attrs := make(map[string]any)
	for _, def := range r.kind.Attributes() {
		attrs[def.Name] = r.Get(def.Name)
	}
	return attrs
}

// MarshalJSON encodes the attribute map without a root node so nested
// resources embed as plain objects.
func (r *Resource) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Attributes())
}

// MarshalYAML is the YAML counterpart of MarshalJSON.
func (r *Resource) MarshalYAML() (any, error) {
	return r.Attributes(), nil
}

func unknownAttribute(k *Kind, name string) error {
	return fmt.Errorf("%w %q on %s", ErrUnknownAttribute, name, k.name)
}
