package envfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("parses quoting styles", func(t *testing.T) {
		content := `
# Application
APP_NAME=MyApp
APP_URL="https://example.com"
APP_KEY='base64:abc=='
export MAIL_HOST=smtp.test
EMPTY=
SPACED = value with spaces # trailing comment
HASH="keep # this"
ESCAPED="say \"hi\""
DOLLAR='$HOME'
`
		m, err := Parse([]byte(content))
		require.NoError(t, err)

		want := map[string]string{
			"APP_NAME":  "MyApp",
			"APP_URL":   "https://example.com",
			"APP_KEY":   "base64:abc==",
			"MAIL_HOST": "smtp.test",
			"EMPTY":     "",
			"SPACED":    "value with spaces",
			"HASH":      "keep # this",
			"ESCAPED":   `say "hi"`,
			"DOLLAR":    "$HOME",
		}
		assert.Equal(t, want, m.ToMap())
	})

	t.Run("keeps first-seen order and last value", func(t *testing.T) {
		m, err := Parse([]byte("B=1\nA=2\nB=3\n"))
		require.NoError(t, err)

		assert.Equal(t, []string{"B", "A"}, m.Keys())
		v, ok := m.Get("B")
		assert.True(t, ok)
		assert.Equal(t, "3", v)
		assert.Equal(t, 1, m.Line("B"))
	})

	t.Run("boolean literals stay strings", func(t *testing.T) {
		m, err := Parse([]byte("APP_DEBUG=true\n"))
		require.NoError(t, err)

		v, _ := m.Get("APP_DEBUG")
		assert.Equal(t, "true", v)
	})

	t.Run("multi-line quoted value", func(t *testing.T) {
		m, err := Parse([]byte("CERT=\"line one\nline two\"\nNEXT=1\n"))
		require.NoError(t, err)

		v, _ := m.Get("CERT")
		assert.Equal(t, "line one\nline two", v)
		next, _ := m.Get("NEXT")
		assert.Equal(t, "1", next)
	})

	t.Run("handles CRLF", func(t *testing.T) {
		m, err := Parse([]byte("A=1\r\nB=\"two\"\r\n"))
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"A": "1", "B": "two"}, m.ToMap())
	})

	t.Run("empty input", func(t *testing.T) {
		m, err := Parse(nil)
		require.NoError(t, err)
		assert.Equal(t, 0, m.Len())
	})
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		line    int
		want    error
	}{
		{"missing separator", "A=1\nJUSTAKEY\n", 2, ErrMissingSeparator},
		{"invalid key", "1ABC=x\n", 1, ErrInvalidKey},
		{"unterminated quote", "A=\"open\nB=2\n", 1, ErrUnterminatedQuote},
		{"trailing characters", "A=\"x\"y\n", 1, ErrTrailingCharacters},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.content))
			require.Error(t, err)

			var perr *ParseError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, tt.line, perr.Line)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestParseErrorShift(t *testing.T) {
	perr := &ParseError{Line: 2, Text: "X", Err: ErrMissingSeparator}
	shifted := perr.Shift(10)

	assert.Equal(t, 12, shifted.Line)
	assert.Equal(t, 2, perr.Line)
	assert.Contains(t, shifted.Error(), "line 12")
}

func TestParseLenient(t *testing.T) {
	m := ParseLenient([]byte("A=1\n just a note\nB=\"unterminated\nC=3\n"))

	a, _ := m.Get("A")
	assert.Equal(t, "1", a)
	_, hasB := m.Get("B")
	assert.False(t, hasB)
	c, _ := m.Get("C")
	assert.Equal(t, "3", c)
}

func TestRead(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "defaults.env")
	require.NoError(t, os.WriteFile(path, []byte("DB_HOST=db\n"), 0644))

	m, err := Read(path)
	require.NoError(t, err)
	v, _ := m.Get("DB_HOST")
	assert.Equal(t, "db", v)

	_, err = Read(filepath.Join(tmpDir, "missing.env"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
