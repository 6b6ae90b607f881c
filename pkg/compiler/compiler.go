// Package compiler turns a parsed template into the .env file for one
// environment.
package compiler

import (
	"strings"

	"github.com/jaspreet-dot-casa/build-env/pkg/defaults"
	"github.com/jaspreet-dot-casa/build-env/pkg/envfile"
	"github.com/jaspreet-dot-casa/build-env/pkg/envtemplate"
	"github.com/jaspreet-dot-casa/build-env/pkg/environment"
	"github.com/jaspreet-dot-casa/build-env/pkg/pinned"
)

// Line is one compiled assignment.
type Line struct {
	Key    string
	Value  envfile.Value
	Text   string // rendered line, "#"-prefixed when pinned
	Pinned bool
}

// Body is the compiled assignments, grouped by key prefix.
type Body [][]Line

// Lines returns every line in order.
func (b Body) Lines() []Line {
	var out []Line
	for _, group := range b {
		out = append(out, group...)
	}
	return out
}

// Keys returns the emitted keys in order.
func (b Body) Keys() []string {
	var keys []string
	for _, line := range b.Lines() {
		keys = append(keys, line.Key)
	}
	return keys
}

// Compile resolves every template key for env.
//
// A value from defs always wins. Otherwise per-environment keys use the
// entry for env when it is set and non-empty, then the "default" entry; keys
// with neither are left out. Pinned keys are commented out so the pinned
// block takes effect.
func Compile(model *envtemplate.Model, defs defaults.Map, pins pinned.Set, env environment.Environment) Body {
	values := make(map[string]envfile.Value, model.Len())
	var keys []string

	for _, key := range model.Keys() {
		v, ok := defs.Lookup(key)
		if !ok {
			lv, _ := model.Get(key)
			if v, ok = lv.Resolve(env); !ok {
				continue
			}
		}
		values[key] = v
		keys = append(keys, key)
	}

	var body Body
	for _, group := range envfile.GroupKeys(envfile.SortKeys(keys)) {
		lines := make([]Line, 0, len(group))
		for _, key := range group {
			v := values[key]
			text := envfile.FormatAssignment(key, v, defs.Lookup)
			isPinned := pins.Has(key)
			if isPinned {
				text = envfile.CommentOut(text)
			}
			lines = append(lines, Line{Key: key, Value: v, Text: text, Pinned: isPinned})
		}
		body = append(body, lines)
	}

	return body
}

// String renders the body with a blank line before each group.
func (b Body) String() string {
	var sb strings.Builder
	for _, group := range b {
		sb.WriteString("\n")
		for _, line := range group {
			sb.WriteString(line.Text + "\n")
		}
	}
	return sb.String()
}
