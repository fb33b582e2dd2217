package config

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Format is an on-disk config encoding
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

func decode(format Format, data []byte) (map[string]interface{}, error) {
	values := make(map[string]interface{})
	if len(bytes.TrimSpace(data)) == 0 {
		return values, nil
	}

	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &values)
	case FormatTOML:
		_, err = toml.Decode(string(data), &values)
	case FormatJSON:
		// numbers stay json.Number so large integers survive a save
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		err = dec.Decode(&values)
	default:
		return nil, fmt.Errorf("unsupported config format: %s", format)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse %s config", format)
	}

	return normalize(values), nil
}

func encode(format Format, values map[string]interface{}) ([]byte, error) {
	switch format {
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(values); err != nil {
			return nil, errors.Wrap(err, "failed to marshal yaml config")
		}
		if err := enc.Close(); err != nil {
			return nil, errors.Wrap(err, "failed to marshal yaml config")
		}
		return buf.Bytes(), nil
	case FormatTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(values); err != nil {
			return nil, errors.Wrap(err, "failed to marshal toml config")
		}
		return buf.Bytes(), nil
	case FormatJSON:
		data, err := json.MarshalIndent(values, "", "  ")
		if err != nil {
			return nil, errors.Wrap(err, "failed to marshal json config")
		}
		return append(data, '\n'), nil
	default:
		return nil, fmt.Errorf("unsupported config format: %s", format)
	}
}

// normalize converts nested maps with non-string keys into
// map[string]interface{} so every codec round-trips the same shape.
func normalize(values map[string]interface{}) map[string]interface{} {
	for k, v := range values {
		values[k] = normalizeValue(v)
	}
	return values
}

func normalizeValue(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		return normalize(t)
	case map[interface{}]interface{}:
		m := make(map[string]interface{}, len(t))
		for k, val := range t {
			m[fmt.Sprint(k)] = normalizeValue(val)
		}
		return m
	case []interface{}:
		for i := range t {
			t[i] = normalizeValue(t[i])
		}
		return t
	case []map[string]interface{}:
		out := make([]interface{}, len(t))
		for i := range t {
			out[i] = normalize(t[i])
		}
		return out
	default:
		return v
	}
}
