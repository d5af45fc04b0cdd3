package codec

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// JSON is the default codec. Integer literals decode as int64 and every
// other number as float64.
type JSON struct{}

var _ Codec = JSON{}

func (JSON) Format() string { return "json" }

func (JSON) ContentType() string { return "application/json" }

func (JSON) Dump(name string, values map[string]any) ([]byte, error) {
	data, err := json.Marshal(values)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", name, err)
	}
	return data, nil
}

func (JSON) Load(name string, data []byte) (map[string]any, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("invalid JSON payload for %s", name)
	}

	// null, scalars and arrays decode to nothing usable
	m, ok := jsonValue(gjson.ParseBytes(data)).(map[string]any)
	if !ok {
		return nil, nil
	}
	return m, nil
}

func jsonValue(res gjson.Result) any {
	switch {
	case res.IsObject():
		m := make(map[string]any)
		res.ForEach(func(key, value gjson.Result) bool {
			m[key.String()] = jsonValue(value)
			return true
		})
		return m
	case res.IsArray():
		arr := res.Array()
		out := make([]any, len(arr))
		for i, elem := range arr {
			out[i] = jsonValue(elem)
		}
		return out
	case res.Type == gjson.Number:
		return jsonNumber(res)
	}
	return res.Value()
}

// jsonNumber keeps integer literals exact. Integers outside the int64 range
// fall back to float64.
func jsonNumber(res gjson.Result) any {
	raw := res.Raw
	if !strings.ContainsAny(raw, ".eE") {
		if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return i
		}
	}
	return res.Float()
}
