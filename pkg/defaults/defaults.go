// Package defaults loads the optional defaults source whose values override
// the template when building a .env file.
package defaults

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/jaspreet-dot-casa/build-env/pkg/envfile"
	"github.com/jaspreet-dot-casa/build-env/pkg/envtemplate"
	"github.com/jaspreet-dot-casa/build-env/pkg/environment"
)

// Format identifies how a defaults source was read.
type Format int

const (
	// FormatNone means no defaults source was used.
	FormatNone Format = iota
	// FormatLegacyJSON is the deprecated .env.json object format.
	FormatLegacyJSON
	// FormatDotenv is a flat KEY=VALUE file.
	FormatDotenv
	// FormatUnreadable means the source was neither format and was ignored.
	FormatUnreadable
)

func (f Format) String() string {
	switch f {
	case FormatLegacyJSON:
		return "legacy JSON"
	case FormatDotenv:
		return "dotenv"
	case FormatUnreadable:
		return "unreadable"
	default:
		return "none"
	}
}

// Map holds default values by key.
type Map struct {
	values map[string]envfile.Value
}

// NewMap returns a Map holding a copy of values.
func NewMap(values map[string]envfile.Value) Map {
	m := Map{values: make(map[string]envfile.Value, len(values))}
	for k, v := range values {
		m.values[k] = v
	}
	return m
}

// Lookup returns the default for key. Null defaults count as absent.
func (m Map) Lookup(key string) (envfile.Value, bool) {
	v, ok := m.values[key]
	if !ok || v.IsNull() {
		return envfile.Value{}, false
	}
	return v, true
}

// Len returns the number of defaults.
func (m Map) Len() int {
	return len(m.values)
}

// Keys returns the keys in natural order.
func (m Map) Keys() []string {
	keys := make([]string, 0, len(m.values))
	for k := range m.values {
		keys = append(keys, k)
	}
	return envfile.SortKeys(keys)
}

// Source is a resolved defaults source.
type Source struct {
	Path        string // empty when no source was used
	Format      Format
	Values      Map
	Diagnostics []string
}

// Detect reads defaults in two stages: a legacy JSON object first, then a
// flat KEY=VALUE file. Legacy per-environment objects are collapsed for env.
// Data that is neither gives FormatUnreadable and an empty Map; the reasons
// are returned as diagnostics rather than errors.
func Detect(data []byte, env environment.Environment) (Map, Format, []string) {
	var diagnostics []string

	model, err := envtemplate.DecodeLegacy(data)
	if err == nil {
		for _, name := range model.Skipped() {
			diagnostics = append(diagnostics, fmt.Sprintf("ignoring unknown environment entry %s", name))
		}
		return collapse(model, env), FormatLegacyJSON, diagnostics
	}

	if !errors.Is(err, envtemplate.ErrNotLegacy) || bytes.HasPrefix(bytes.TrimSpace(data), []byte("{")) {
		diagnostics = append(diagnostics, fmt.Sprintf("not usable as legacy JSON (%v), reading as dotenv", err))
	}

	flat, err := envfile.Parse(data)
	if err != nil {
		diagnostics = append(diagnostics, fmt.Sprintf("ignoring defaults: %v", err))
		return Map{}, FormatUnreadable, diagnostics
	}

	values := make(map[string]envfile.Value, flat.Len())
	for _, key := range flat.Keys() {
		v, _ := flat.Get(key)
		values[key] = envfile.String(v)
	}

	return Map{values: values}, FormatDotenv, diagnostics
}

// collapse resolves each legacy entry for env.
func collapse(model *envtemplate.Model, env environment.Environment) Map {
	values := make(map[string]envfile.Value, model.Len())
	for _, key := range model.Keys() {
		lv, _ := model.Get(key)
		if v, ok := lv.Resolve(env); ok {
			values[key] = v
		}
	}
	return Map{values: values}
}
