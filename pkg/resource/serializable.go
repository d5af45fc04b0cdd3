package resource

import (
	"fmt"
)

// FromMap coerces every declared attribute present in values. Undeclared
// names are dropped.
func (k *Kind) FromMap(values map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(values))
	for name, value := range values {
		def, ok := k.Definition(name)
		if !ok {
			continue
		}
		coerced, err := coerceAttribute(def, value)
		if err != nil {
			return nil, fmt.Errorf("attribute %q of %s: %w", name, k.name, err)
		}
		out[name] = coerced
	}
	return out, nil
}

// Load decodes a wire payload with the kind's codec. Codec failures and
// empty results are reported as *ResponseInvalid.
func (k *Kind) Load(data []byte) (map[string]any, error) {
	decoded, err := k.Codec().Load(k.SingularName(), data)
	if err != nil {
		return nil, &ResponseInvalid{Kind: k.name, Err: err}
	}
	if decoded == nil {
		return nil, &ResponseInvalid{Kind: k.name}
	}
	return decoded, nil
}

// entity extracts the attribute map from a decoded payload, unwrapping the
// root node when enabled.
func (k *Kind) entity(decoded map[string]any) (map[string]any, error) {
	if !k.UseRootNode() {
		return decoded, nil
	}
	root := k.SingularName()
	entity, ok := decoded[root].(map[string]any)
	if !ok {
		return nil, &ResponseInvalid{
			Kind: k.name,
			Err:  fmt.Errorf("missing %q root node", root),
		}
	}
	return entity, nil
}

// Dump encodes the resource for the wire: every effective attribute,
// coerced, wrapped under the singular name when root node is enabled.
func (r *Resource) Dump() ([]byte, error) {
	k := r.kind
	values, err := k.FromMap(r.Attributes())
	if err != nil {
		return nil, err
	}

	payload := values
	if k.UseRootNode() {
		payload = map[string]any{k.SingularName(): values}
	}
	return k.Codec().Dump(k.SingularName(), payload)
}
