package envtemplate

import (
	"fmt"
	"strings"

	"github.com/jaspreet-dot-casa/build-env/pkg/envfile"
	"github.com/jaspreet-dot-casa/build-env/pkg/environment"
)

// Marker identifies templates written by Render.
const Marker = `managed by "build-env"`

// RuleWidth is the width of the comment boxes written into generated files.
const RuleWidth = 64

// Rule returns a RuleWidth horizontal rule.
func Rule() string {
	return strings.Repeat("#", RuleWidth)
}

// BoxLine pads text into a "# ... #" line of RuleWidth characters.
// Longer text overflows the box rather than being cut.
func BoxLine(text string) string {
	return fmt.Sprintf("# %-*s #", RuleWidth-4, text)
}

var headerLines = []string{
	"This file is " + Marker,
	"",
	"IMPORTANT:",
	"Common values applicable to all environments are added to",
	"the top of the file to the common section.",
	"",
	"Environmental overrides are placed at the bottom of this",
	"file as commented out values in the designated blocks.",
	"",
	`After updating .env.example run "build-env" to`,
	"compile a new .env file.",
}

// IsManaged reports whether a template was written by Render.
func IsManaged(data []byte) bool {
	return strings.Contains(string(data), Marker)
}

// Render writes m back out as an annotated template: the shared values
// sorted and grouped at the top, then one commented block per environment.
func Render(m *Model) string {
	var b strings.Builder

	b.WriteString(Rule() + "\n")
	for _, line := range headerLines {
		b.WriteString(BoxLine(line) + "\n")
	}
	b.WriteString(Rule() + "\n")

	keys := envfile.SortKeys(m.Keys())
	sections := make(map[environment.Environment][]string)

	var common []string
	for _, key := range keys {
		lv, _ := m.Get(key)

		if _, ok := lv.Default(); ok {
			common = append(common, key)
		}

		for _, env := range lv.Environments() {
			v, _ := lv.For(env)
			sections[env] = append(sections[env], envfile.CommentOut(envfile.FormatAssignment(key, v, nil)))
		}
	}

	for _, group := range envfile.GroupKeys(common) {
		b.WriteString("\n")
		for _, key := range group {
			lv, _ := m.Get(key)
			def, _ := lv.Default()
			b.WriteString(envfile.FormatAssignment(key, def, nil) + "\n")
		}
	}

	for _, env := range environment.All() {
		lines := sections[env]
		if len(lines) == 0 {
			continue
		}

		b.WriteString("\n\n")
		b.WriteString(Rule() + "\n")
		b.WriteString("# " + EnvironmentKey + "=" + string(env) + "\n")
		b.WriteString(Rule() + "\n")
		for _, line := range lines {
			b.WriteString(line + "\n")
		}
	}

	return b.String()
}
