// Package envtemplate parses and writes .env.example templates annotated with
// per-environment override blocks.
package envtemplate

import (
	"sort"

	"github.com/jaspreet-dot-casa/build-env/pkg/envfile"
	"github.com/jaspreet-dot-casa/build-env/pkg/environment"
)

// LayeredValue is either a single value shared by every environment or a set
// of per-environment values with an optional "default" entry.
type LayeredValue struct {
	scalar     envfile.Value
	layered    bool
	def        envfile.Value
	hasDefault bool
	overrides  map[environment.Environment]envfile.Value
}

// Scalar returns a value shared by every environment.
func Scalar(v envfile.Value) LayeredValue {
	return LayeredValue{scalar: v}
}

// ByEnvironment returns a per-environment value. def is the "default" entry,
// nil when there is none.
func ByEnvironment(def *envfile.Value, overrides map[environment.Environment]envfile.Value) LayeredValue {
	lv := LayeredValue{
		layered:   true,
		overrides: make(map[environment.Environment]envfile.Value, len(overrides)),
	}
	for env, v := range overrides {
		lv.overrides[env] = v
	}
	if def != nil {
		lv.def = *def
		lv.hasDefault = true
	}
	return lv
}

// IsScalar reports whether lv has a single value.
func (lv LayeredValue) IsScalar() bool {
	return !lv.layered
}

// Default returns the "default" entry, or the scalar itself.
func (lv LayeredValue) Default() (envfile.Value, bool) {
	if !lv.layered {
		return lv.scalar, true
	}
	return lv.def, lv.hasDefault
}

// For returns the entry written for env. Scalars have no entries.
func (lv LayeredValue) For(env environment.Environment) (envfile.Value, bool) {
	v, ok := lv.overrides[env]
	return v, ok
}

// Environments returns the environments with an entry, in canonical order.
func (lv LayeredValue) Environments() []environment.Environment {
	envs := make([]environment.Environment, 0, len(lv.overrides))
	for env := range lv.overrides {
		envs = append(envs, env)
	}
	sort.Slice(envs, func(i, j int) bool {
		return envs[i].Index() < envs[j].Index()
	})
	return envs
}

// Resolve picks the value used when building for env: the environment's
// entry when present and non-empty, else the default entry. Null entries
// count as absent. ok is false when nothing applies and the key is dropped.
func (lv LayeredValue) Resolve(env environment.Environment) (envfile.Value, bool) {
	if !lv.layered {
		return lv.scalar, true
	}

	if v, ok := lv.overrides[env]; ok && !v.IsNull() && !v.IsEmpty() {
		return v, true
	}

	if lv.hasDefault && !lv.def.IsNull() {
		return lv.def, true
	}

	return envfile.Value{}, false
}

// Entry pairs a key with its layered value.
type Entry struct {
	Key   string
	Value LayeredValue
}

// Model is the parsed template: keys in source order with their layered values.
// A Model is never modified after it is built.
type Model struct {
	keys    []string
	values  map[string]LayeredValue
	skipped []string
}

// NewModel builds a Model from entries. Later duplicates replace earlier ones.
func NewModel(entries []Entry) *Model {
	m := &Model{values: make(map[string]LayeredValue, len(entries))}
	for _, e := range entries {
		if _, exists := m.values[e.Key]; !exists {
			m.keys = append(m.keys, e.Key)
		}
		m.values[e.Key] = e.Value
	}
	return m
}

// Keys returns the keys in source order.
func (m *Model) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Get returns the layered value for key.
func (m *Model) Get(key string) (LayeredValue, bool) {
	lv, ok := m.values[key]
	return lv, ok
}

// Len returns the number of keys.
func (m *Model) Len() int {
	return len(m.keys)
}

// Skipped returns the names of override blocks that were ignored because
// they do not name a known environment.
func (m *Model) Skipped() []string {
	out := make([]string, len(m.skipped))
	copy(out, m.skipped)
	return out
}
