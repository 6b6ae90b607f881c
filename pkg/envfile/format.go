package envfile

import (
	"regexp"
	"strings"
)

var (
	// placeholderPattern matches a {{NAME}} substitution.
	placeholderPattern = regexp.MustCompile(`\{\{(.*?)\}\}`)

	// quotePattern matches characters that force a value into double quotes.
	quotePattern = regexp.MustCompile("[\\s=#\\\\$(){}\\[\\]`\"']")

	// numericPattern follows the usual "numeric string" rules: optional
	// surrounding whitespace, sign, decimal point and exponent.
	numericPattern = regexp.MustCompile(`^\s*[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?\s*$`)
)

// Lookup resolves a placeholder name to a substitution value.
type Lookup func(name string) (Value, bool)

// IsNumeric reports whether s reads as a number.
func IsNumeric(s string) bool {
	return numericPattern.MatchString(s)
}

// FormatAssignment renders KEY=value without a trailing newline.
func FormatAssignment(key string, v Value, lookup Lookup) string {
	return key + "=" + FormatValue(v, lookup)
}

// CommentOut prefixes every physical line of a rendered assignment with "#",
// so multi-line quoted values stay inside the comment.
func CommentOut(line string) string {
	return "#" + strings.ReplaceAll(line, "\n", "\n#")
}

// FormatValue renders v as it appears after "=".
//
// Empty strings render as nothing, null and "null" as null, numbers and
// booleans bare. Other strings get their first {{NAME}} placeholder
// substituted through lookup and are double-quoted when they contain
// whitespace or shell-significant characters. Values ending in a backslash
// are single-quoted instead, unless they also contain a single quote.
func FormatValue(v Value, lookup Lookup) string {
	switch {
	case v.IsEmpty():
		return ""
	case v.IsNull() || (v.kind == KindString && v.text == "null"):
		return "null"
	case v.kind == KindNumber || v.kind == KindBool:
		return v.text
	case IsNumeric(v.text):
		return v.text
	}

	s := v.text

	if m := placeholderPattern.FindStringSubmatch(s); m != nil && lookup != nil {
		if sub, ok := lookup(m[1]); ok && !sub.IsNull() {
			s = strings.ReplaceAll(s, m[0], sub.text)
		}
	}

	if quotePattern.MatchString(s) {
		// A trailing backslash would escape the closing double quote.
		if strings.HasSuffix(s, `\`) && !strings.Contains(s, "'") {
			return "'" + s + "'"
		}
		s = `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
	}

	return s
}
