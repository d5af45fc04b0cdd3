package resource

// Configuration is a per-kind option store. Lookups walk up to the nearest
// ancestor holding a value; writes always land on the receiver.
type Configuration struct {
	parent  *Configuration
	entries map[string]configEntry
}

type configEntry struct {
	value any
	lazy  func() any
}

func (e configEntry) get() any {
	if e.lazy != nil {
		return e.lazy()
	}
	return e.value
}

// NewConfiguration creates a configuration inheriting from parent, which
// may be nil.
func NewConfiguration(parent *Configuration) *Configuration {
	return &Configuration{
		parent:  parent,
		entries: make(map[string]configEntry),
	}
}

// Parent returns the configuration this one inherits from.
func (c *Configuration) Parent() *Configuration {
	return c.parent
}

// Set stores value for name on c.
func (c *Configuration) Set(name string, value any) {
	c.entries[name] = configEntry{value: value}
}

// SetFunc stores a lazy default for name on c. fn is invoked on every
// lookup, results are not cached.
func (c *Configuration) SetFunc(name string, fn func() any) {
	c.entries[name] = configEntry{lazy: fn}
}

// Lookup returns the value for name from c or its nearest ancestor.
func (c *Configuration) Lookup(name string) (any, bool) {
	for cur := c; cur != nil; cur = cur.parent {
		if e, ok := cur.entries[name]; ok {
			return e.get(), true
		}
	}
	return nil, false
}

// Get returns the value for name, or nil when no ancestor defines it.
func (c *Configuration) Get(name string) any {
	v, _ := c.Lookup(name)
	return v
}

// ConfigValue returns the value for name as T. The second result is false
// when name is unset or holds a value of another type.
func ConfigValue[T any](c *Configuration, name string) (T, bool) {
	v, ok := c.Lookup(name)
	if !ok {
		var zero T
		return zero, false
	}
	t, ok := v.(T)
	return t, ok
}
