package envtemplate

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/jaspreet-dot-casa/build-env/pkg/envfile"
	"github.com/jaspreet-dot-casa/build-env/pkg/environment"
)

const (
	// EnvironmentKey selects the running environment inside the application.
	EnvironmentKey = "APP_ENV"
	// DebugKey toggles application debugging.
	DebugKey = "APP_DEBUG"
)

// ErrMissingTemplate is returned when there is no template to read.
var ErrMissingTemplate = errors.New("template file not found")

// sectionTitle matches the title line of an override block.
var sectionTitle = regexp.MustCompile(`^#\s` + EnvironmentKey + `=(.*)$`)

// Section is the span of one "# APP_ENV=<name>" override block.
type Section struct {
	Name  string   // environment name as written
	Start int      // index of the first body line
	End   int      // index one past the last body line
	Body  []string // lines still carrying their leading "#"
}

// Sections splits template lines into override blocks. A block runs from
// its closing rule to the next block's opening rule, or to the end of file.
func Sections(lines []string) []Section {
	fences := envfile.FindFences(lines, sectionTitle)
	sections := make([]Section, 0, len(fences))

	for i, f := range fences {
		end := len(lines)
		if i+1 < len(fences) {
			end = fences[i+1].Line
		}

		sections = append(sections, Section{
			Name:  f.Title,
			Start: f.BodyStart,
			End:   end,
			Body:  lines[f.BodyStart:end],
		})
	}

	return sections
}

// Uncomment strips one leading "#" from each line.
func Uncomment(lines []string) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = strings.TrimPrefix(line, "#")
	}
	return strings.Join(out, "\n")
}

// layer holds the values of one override block.
type layer struct {
	env    environment.Environment
	values *envfile.Map
}

// Parse reads an annotated template.
//
// Uncommented assignments form the default layer. Each override block is
// parsed on its own, then all blocks are folded into the model in a single
// merge, so block order only matters when two blocks name the same
// environment (the later one wins).
func Parse(data []byte) (*Model, error) {
	base, err := envfile.Parse(data)
	if err != nil {
		return nil, err
	}

	var layers []layer
	var skipped []string

	for _, s := range Sections(envfile.SplitLines(string(data))) {
		env, err := environment.Parse(s.Name)
		if err != nil {
			skipped = append(skipped, s.Name)
			continue
		}

		values, err := envfile.Parse([]byte(Uncomment(s.Body)))
		if err != nil {
			var perr *envfile.ParseError
			if errors.As(err, &perr) {
				err = perr.Shift(s.Start)
			}
			return nil, fmt.Errorf("%s=%s block: %w", EnvironmentKey, s.Name, err)
		}

		layers = append(layers, layer{env: env, values: values})
	}

	m := merge(base, layers)
	m.skipped = skipped
	return m, nil
}

// merge folds the default layer and the override layers into a Model.
func merge(base *envfile.Map, layers []layer) *Model {
	overrides := make(map[string]map[environment.Environment]envfile.Value)
	order := base.Keys()
	seen := make(map[string]bool, len(order))
	for _, key := range order {
		seen[key] = true
	}

	for _, l := range layers {
		for _, key := range l.values.Keys() {
			v, _ := l.values.Get(key)
			if overrides[key] == nil {
				overrides[key] = make(map[environment.Environment]envfile.Value)
			}
			overrides[key][l.env] = envfile.String(v)

			if !seen[key] {
				seen[key] = true
				order = append(order, key)
			}
		}
	}

	entries := make([]Entry, 0, len(order))
	for _, key := range order {
		raw, inBase := base.Get(key)
		envs, layered := overrides[key]

		var lv LayeredValue
		switch {
		case !layered:
			lv = Scalar(envfile.String(raw))
		case inBase:
			def := envfile.String(raw)
			lv = ByEnvironment(&def, envs)
		default:
			lv = ByEnvironment(nil, envs)
		}

		entries = append(entries, Entry{Key: key, Value: preset(key, lv)})
	}

	return NewModel(entries)
}

// preset replaces single-valued APP_ENV and APP_DEBUG with their standard
// per-environment sets.
func preset(key string, lv LayeredValue) LayeredValue {
	if !lv.IsScalar() {
		return lv
	}

	switch key {
	case EnvironmentKey:
		def := envfile.String(string(environment.Local))
		return ByEnvironment(&def, map[environment.Environment]envfile.Value{
			environment.Testing:    envfile.String(string(environment.Testing)),
			environment.Staging:    envfile.String(string(environment.Staging)),
			environment.Production: envfile.String(string(environment.Production)),
		})
	case DebugKey:
		def := envfile.Bool(true)
		return ByEnvironment(&def, map[environment.Environment]envfile.Value{
			environment.Testing:    envfile.Bool(true),
			environment.Staging:    envfile.Bool(false),
			environment.Production: envfile.Bool(false),
		})
	}

	return lv
}
