// Package pinned recovers the "Local pinned values" block of a generated .env
// file so it survives the next build.
package pinned

import (
	"regexp"
	"strings"

	"github.com/jaspreet-dot-casa/build-env/pkg/envfile"
)

// Title is the title line of the pinned block.
const Title = "Local pinned values"

// DefaultText is written when there is no previous pinned block.
const DefaultText = "#DB_USERNAME=\"root\"\n#DB_PASSWORD=\"\""

var titlePattern = regexp.MustCompile(`^#\s*Local\s+pinned\s+values\s*#?\s*$`)

// Set holds the pinned block of a previous build.
type Set struct {
	text string
	keys map[string]bool
}

// Empty returns a Set with the default example text and no keys.
func Empty() Set {
	return Set{text: DefaultText}
}

// Extract finds the pinned block in a previous output. previous is nil when
// there is no previous output. Everything after the block, trimmed, is kept
// verbatim; the keys are read from it with one leading "#" removed per line.
// Lines that are not assignments are ignored.
func Extract(previous []byte) Set {
	if previous == nil {
		return Empty()
	}

	lines := envfile.SplitLines(string(previous))
	fences := envfile.FindFences(lines, titlePattern)
	if len(fences) == 0 {
		return Empty()
	}

	text := strings.TrimSpace(strings.Join(lines[fences[0].BodyStart:], "\n"))

	uncommented := envfile.SplitLines(text)
	for i, line := range uncommented {
		uncommented[i] = strings.TrimPrefix(line, "#")
	}

	keys := make(map[string]bool)
	for _, key := range envfile.ParseLenient([]byte(strings.Join(uncommented, "\n"))).Keys() {
		keys[key] = true
	}

	return Set{text: text, keys: keys}
}

// Text returns the verbatim pinned text.
func (s Set) Text() string {
	return s.text
}

// Has reports whether key is pinned.
func (s Set) Has(key string) bool {
	return s.keys[key]
}

// Keys returns the pinned keys in natural order.
func (s Set) Keys() []string {
	keys := make([]string, 0, len(s.keys))
	for key := range s.keys {
		keys = append(keys, key)
	}
	return envfile.SortKeys(keys)
}
