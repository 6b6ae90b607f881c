// Package envfile provides utilities for parsing and rendering shell-style environment files.
package envfile

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

// keyPattern matches the bare identifiers accepted as variable names.
var keyPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.]*$`)

// inlineCommentPattern matches a comment trailing an unquoted value.
var inlineCommentPattern = regexp.MustCompile(`\s#`)

// Parse parses a shell-style env file and returns its assignments in order.
// It handles:
// - KEY=VALUE format, with an optional "export " prefix
// - KEY="VALUE" and KEY='VALUE' (quotes are stripped, \" is unescaped in double quotes)
// - Quoted values spanning several lines
// - Comments (lines starting with #, and " #" after unquoted values)
// - Empty lines (skipped)
// - Values containing = signs (only first = is used as delimiter)
//
// Values are never expanded; "$HOME" stays "$HOME".
func Parse(data []byte) (*Map, error) {
	return parse(data, false)
}

// ParseLenient is like Parse but skips malformed lines instead of failing.
func ParseLenient(data []byte) *Map {
	m, _ := parse(data, true)
	return m
}

// Read reads and parses the env file at path.
func Read(path string) (*Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

func parse(data []byte, lenient bool) (*Map, error) {
	lines := SplitLines(string(data))
	m := newMap()

	for i := 0; i < len(lines); i++ {
		lineNo := i + 1
		line := strings.TrimSpace(lines[i])

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, rest, ok := splitAssignment(line)
		if !ok {
			if lenient {
				continue
			}
			return nil, &ParseError{Line: lineNo, Text: lines[i], Err: ErrMissingSeparator}
		}

		if !keyPattern.MatchString(key) {
			if lenient {
				continue
			}
			return nil, &ParseError{Line: lineNo, Text: lines[i], Err: ErrInvalidKey}
		}

		value, consumed, err := parseValue(rest, lines[i+1:])
		if err != nil {
			if lenient {
				continue
			}
			return nil, &ParseError{Line: lineNo, Text: lines[i], Err: err}
		}

		m.set(key, value, lineNo)
		i += consumed
	}

	return m, nil
}

// SplitLines splits text on newlines, dropping carriage returns.
func SplitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")
	// A trailing newline does not start another line
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// splitAssignment splits a trimmed line into key and raw value.
func splitAssignment(line string) (string, string, bool) {
	if rest, found := strings.CutPrefix(line, "export "); found && strings.Contains(rest, "=") {
		line = strings.TrimSpace(rest)
	}

	key, rest, found := strings.Cut(line, "=")
	if !found {
		return "", "", false
	}

	return strings.TrimSpace(key), strings.TrimLeft(rest, " \t"), true
}

// parseValue decodes a raw value. It returns how many of the following
// lines were consumed by a multi-line quoted value.
func parseValue(raw string, following []string) (string, int, error) {
	if raw == "" {
		return "", 0, nil
	}

	switch raw[0] {
	case '"':
		return parseQuoted(raw[1:], following, '"')
	case '\'':
		return parseQuoted(raw[1:], following, '\'')
	}

	if loc := inlineCommentPattern.FindStringIndex(raw); loc != nil {
		raw = raw[:loc[0]]
	}
	return strings.TrimSpace(raw), 0, nil
}

func parseQuoted(text string, following []string, quote byte) (string, int, error) {
	var b strings.Builder
	consumed := 0

	for {
		for i := 0; i < len(text); i++ {
			c := text[i]

			if quote == '"' && c == '\\' && i+1 < len(text) && text[i+1] == '"' {
				b.WriteByte('"')
				i++
				continue
			}

			if c == quote {
				tail := strings.TrimSpace(text[i+1:])
				if tail != "" && !strings.HasPrefix(tail, "#") {
					return "", 0, ErrTrailingCharacters
				}
				return b.String(), consumed, nil
			}

			b.WriteByte(c)
		}

		if consumed >= len(following) {
			return "", 0, ErrUnterminatedQuote
		}

		b.WriteByte('\n')
		text = following[consumed]
		consumed++
	}
}
