package resource

// IDAttribute is declared on every root kind.
const IDAttribute = "id"

// AttributeDefinition describes one declared attribute of a kind.
type AttributeDefinition struct {
	Name        string
	Type        TypeTag
	Default     any
	DefaultFunc func() any
	Validations []ValidationRule
}

// DefaultValue returns the static default, or the result of DefaultFunc
// when set. DefaultFunc runs on every call.
func (d *AttributeDefinition) DefaultValue() any {
	if d.DefaultFunc != nil {
		return d.DefaultFunc()
	}
	return d.Default
}

// AttributeOption configures an attribute declaration.
type AttributeOption func(*AttributeDefinition)

// Type sets the coercion target. Attributes are Untyped by default.
func Type(t TypeTag) AttributeOption {
	return func(d *AttributeDefinition) {
		d.Type = t
	}
}

// Default sets a static default value.
func Default(v any) AttributeOption {
	return func(d *AttributeDefinition) {
		d.Default = v
		d.DefaultFunc = nil
	}
}

// DefaultFunc sets a default computed at read time.
func DefaultFunc(fn func() any) AttributeOption {
	return func(d *AttributeDefinition) {
		d.DefaultFunc = fn
	}
}

// Validates appends validation rules.
func Validates(rules ...ValidationRule) AttributeOption {
	return func(d *AttributeDefinition) {
		d.Validations = append(d.Validations, rules...)
	}
}

// Attribute declares an attribute on k, replacing an earlier declaration
// of the same name on k. It returns k for chaining.
func (k *Kind) Attribute(name string, opts ...AttributeOption) *Kind {
	def := &AttributeDefinition{Name: name, Type: Untyped}
	for _, opt := range opts {
		opt(def)
	}

	for i, existing := range k.attributes {
		if existing.Name == name {
			k.attributes[i] = def
			return k
		}
	}
	k.attributes = append(k.attributes, def)
	return k
}

// Attributes returns the effective attribute definitions of k: ancestors
// first, in declaration order. A redeclared name keeps its original
// position and takes the most derived definition.
func (k *Kind) Attributes() []*AttributeDefinition {
	var chain []*Kind
	for cur := k; cur != nil; cur = cur.parent {
		chain = append(chain, cur)
	}

	var defs []*AttributeDefinition
	index := make(map[string]int)
	for i := len(chain) - 1; i >= 0; i-- {
		for _, def := range chain[i].attributes {
			if pos, ok := index[def.Name]; ok {
				defs[pos] = def
				continue
			}
			index[def.Name] = len(defs)
			defs = append(defs, def)
		}
	}
	return defs
}

// Definition returns the effective definition of name.
func (k *Kind) Definition(name string) (*AttributeDefinition, bool) {
	for cur := k; cur != nil; cur = cur.parent {
		for _, def := range cur.attributes {
			if def.Name == name {
				return def, true
			}
		}
	}
	return nil, false
}

// DefaultFor returns the default of name. It panics with
// ErrUnknownAttribute when name is not declared.
func (k *Kind) DefaultFor(name string) any {
	return k.mustDefinition(name).DefaultValue()
}

func (k *Kind) mustDefinition(name string) *AttributeDefinition {
	def, ok := k.Definition(name)
	if !ok {
		panic(unknownAttribute(k, name))
	}
	return def
}
