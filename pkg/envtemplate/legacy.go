package envtemplate

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/jaspreet-dot-casa/build-env/pkg/envfile"
	"github.com/jaspreet-dot-casa/build-env/pkg/environment"
)

// defaultEntry is the key holding the shared value in legacy per-environment objects.
const defaultEntry = "default"

var (
	// ErrNotLegacy is returned when data is not a legacy JSON object.
	ErrNotLegacy = errors.New("not a legacy JSON object")
	// ErrUnsupportedValue is returned for arrays and deeper nesting in legacy files.
	ErrUnsupportedValue = errors.New("unsupported legacy value")
)

// DecodeLegacy reads the deprecated .env.json format: a JSON object whose
// values are either scalars or objects keyed by "default" and environment names.
//
//	{"APP_NAME": "demo", "DB_HOST": {"default": "localhost", "production": "db.internal"}}
//
// Keys are ordered naturally since JSON objects carry no order.
func DecodeLegacy(data []byte) (*Model, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotLegacy, err)
	}
	if raw == nil {
		return nil, ErrNotLegacy
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data after JSON object", ErrNotLegacy)
	}

	keys := make([]string, 0, len(raw))
	for key := range raw {
		keys = append(keys, key)
	}

	var skipped []string
	entries := make([]Entry, 0, len(raw))

	for _, key := range envfile.SortKeys(keys) {
		lv, unknown, err := decodeLegacyValue(raw[key])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		for _, name := range unknown {
			skipped = append(skipped, key+"."+name)
		}
		entries = append(entries, Entry{Key: key, Value: lv})
	}

	m := NewModel(entries)
	m.skipped = skipped
	return m, nil
}

// decodeLegacyValue converts one JSON value. It also returns the names of
// per-environment entries that are not known environments.
func decodeLegacyValue(raw any) (LayeredValue, []string, error) {
	if obj, ok := raw.(map[string]any); ok {
		var def *envfile.Value
		var unknown []string
		overrides := make(map[environment.Environment]envfile.Value)

		for name, item := range obj {
			v, err := legacyScalar(item)
			if err != nil {
				return LayeredValue{}, nil, fmt.Errorf("%s: %w", name, err)
			}

			if name == defaultEntry {
				def = &v
				continue
			}

			env, err := environment.Parse(name)
			if err != nil {
				unknown = append(unknown, name)
				continue
			}
			overrides[env] = v
		}

		return ByEnvironment(def, overrides), envfile.SortKeys(unknown), nil
	}

	v, err := legacyScalar(raw)
	if err != nil {
		return LayeredValue{}, nil, err
	}
	return Scalar(v), nil, nil
}

func legacyScalar(raw any) (envfile.Value, error) {
	switch v := raw.(type) {
	case nil:
		return envfile.Null(), nil
	case string:
		return envfile.String(v), nil
	case bool:
		return envfile.Bool(v), nil
	case json.Number:
		return envfile.Number(v.String()), nil
	default:
		return envfile.Value{}, fmt.Errorf("%w: %T", ErrUnsupportedValue, raw)
	}
}
