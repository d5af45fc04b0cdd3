package codec

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// YAML encodes payloads as YAML documents.
type YAML struct{}

var _ Codec = YAML{}

func (YAML) Format() string { return "yaml" }

func (YAML) ContentType() string { return "application/yaml" }

func (YAML) Dump(name string, values map[string]any) ([]byte, error) {
	data, err := yaml.Marshal(values)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", name, err)
	}
	return data, nil
}

func (YAML) Load(name string, data []byte) (map[string]any, error) {
	var decoded any
	if err := yaml.Unmarshal(data, &decoded); err != nil {
		return nil, fmt.Errorf("invalid YAML payload for %s: %w", name, err)
	}

	m, ok := decoded.(map[string]any)
	if !ok {
		return nil, nil
	}
	return m, nil
}
