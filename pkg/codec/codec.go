// Package codec defines the wire codecs used to encode and decode resource
// payloads.
//
// A codec only knows how to turn an attribute map into bytes and back. Root
// node wrapping, attribute coercion and error classification are handled by
// the resource package on top of this contract.
package codec

import (
	"fmt"
	"sort"
)

// Codec encodes attribute maps to wire bytes and decodes them back.
type Codec interface {
	// Format returns the codec identifier, also used as the path suffix
	// (e.g. "json" for "/users/1.json").
	Format() string

	// ContentType returns the MIME type sent in Content-Type and Accept headers.
	ContentType() string

	// Dump encodes values for the resource named name.
	Dump(name string, values map[string]any) ([]byte, error)

	// Load decodes data for the resource named name. A nil map with a nil
	// error means the payload decoded to nothing usable.
	Load(name string, data []byte) (map[string]any, error)
}

// Registry manages the available codecs by format.
type Registry struct {
	codecs map[string]Codec
}

// NewRegistry creates a registry holding the built-in JSON and YAML codecs.
func NewRegistry() *Registry {
	r := &Registry{
		codecs: make(map[string]Codec),
	}
	r.Register(JSON{})
	r.Register(YAML{})
	r.alias("yml", "yaml")
	return r
}

// Register adds or replaces a codec under its format.
func (r *Registry) Register(c Codec) {
	r.codecs[c.Format()] = c
}

func (r *Registry) alias(name, format string) {
	r.codecs[name] = r.codecs[format]
}

// Get returns a codec by name.
func (r *Registry) Get(name string) (Codec, error) {
	c, ok := r.codecs[name]
	if !ok {
		return nil, fmt.Errorf("unknown serializer %q", name)
	}
	return c, nil
}

// Formats returns the formats of all registered codecs, sorted.
func (r *Registry) Formats() []string {
	seen := make(map[string]bool)
	formats := make([]string, 0, len(r.codecs))

	for _, c := range r.codecs {
		// Avoid duplicates (e.g., yaml/yml alias)
		if !seen[c.Format()] {
			formats = append(formats, c.Format())
			seen[c.Format()] = true
		}
	}
	sort.Strings(formats)
	return formats
}
