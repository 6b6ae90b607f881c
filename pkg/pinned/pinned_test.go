package pinned

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

var rule = strings.Repeat("#", 64)

func output(pinnedText string) string {
	return rule + "\n# Generated for environment local #\n" + rule + "\n\nAPP_NAME=demo\n#DB_HOST=db\n\n" +
		rule + "\n# Local pinned values                                          #\n" + rule + "\n" + pinnedText
}

func TestExtract(t *testing.T) {
	t.Run("no previous output", func(t *testing.T) {
		s := Extract(nil)

		assert.Equal(t, DefaultText, s.Text())
		assert.Empty(t, s.Keys())
		assert.False(t, s.Has("DB_USERNAME"))
	})

	t.Run("previous output without block", func(t *testing.T) {
		s := Extract([]byte("APP_NAME=demo\n"))

		assert.Equal(t, DefaultText, s.Text())
		assert.Empty(t, s.Keys())
	})

	t.Run("reads pinned keys and text", func(t *testing.T) {
		s := Extract([]byte(output("\nDB_HOST=127.0.0.1\n#MAIL_HOST=\"mail test\"\n\n")))

		assert.Equal(t, "DB_HOST=127.0.0.1\n#MAIL_HOST=\"mail test\"", s.Text())
		assert.Equal(t, []string{"DB_HOST", "MAIL_HOST"}, s.Keys())
		assert.True(t, s.Has("DB_HOST"))
		assert.False(t, s.Has("APP_NAME"))
	})

	t.Run("ignores free text", func(t *testing.T) {
		s := Extract([]byte(output("# remember to rotate\nAPI_KEY=abc\nnot an assignment\n")))

		assert.Equal(t, []string{"API_KEY"}, s.Keys())
		assert.Equal(t, "# remember to rotate\nAPI_KEY=abc\nnot an assignment", s.Text())
	})

	t.Run("default example lines become keys once written", func(t *testing.T) {
		s := Extract([]byte(output(DefaultText + "\n")))

		assert.Equal(t, []string{"DB_PASSWORD", "DB_USERNAME"}, s.Keys())
		assert.Equal(t, DefaultText, s.Text())
	})

	t.Run("empty block", func(t *testing.T) {
		s := Extract([]byte(output("")))

		assert.Equal(t, "", s.Text())
		assert.Empty(t, s.Keys())
	})
}
