package envfile

import (
	"regexp"
	"strings"
)

const (
	// MinRuleWidth and MaxRuleWidth bound the "#" rules that fence a block title.
	MinRuleWidth = 8
	MaxRuleWidth = 256
)

// Fence is a comment block of the form
//
//	########
//	# TITLE
//	########
//
// Line is the index of the opening rule and BodyStart the index of the first
// line after the closing rule.
type Fence struct {
	Title     string
	Line      int
	BodyStart int
}

// IsRule reports whether line is a horizontal rule of 8 to 256 "#" characters.
func IsRule(line string) bool {
	line = strings.TrimRight(line, " \t")
	if len(line) < MinRuleWidth || len(line) > MaxRuleWidth {
		return false
	}
	return strings.Trim(line, "#") == ""
}

// FindFences returns the non-overlapping fences whose title line matches
// title, in file order. When title has a capture group, Fence.Title holds
// the first group, trimmed; otherwise the whole title line.
func FindFences(lines []string, title *regexp.Regexp) []Fence {
	var fences []Fence

	for i := 0; i+2 < len(lines); i++ {
		if !IsRule(lines[i]) || !IsRule(lines[i+2]) {
			continue
		}

		m := title.FindStringSubmatch(lines[i+1])
		if m == nil {
			continue
		}

		name := m[0]
		if len(m) > 1 {
			name = m[1]
		}

		fences = append(fences, Fence{
			Title:     strings.TrimSpace(name),
			Line:      i,
			BodyStart: i + 3,
		})
		i += 2
	}

	return fences
}
