package envfile

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

var testTitle = regexp.MustCompile(`^#\sAPP_ENV=(.*)$`)

func TestIsRule(t *testing.T) {
	assert.True(t, IsRule("########"))
	assert.True(t, IsRule(strings.Repeat("#", 64)+"  "))
	assert.True(t, IsRule(strings.Repeat("#", 256)))
	assert.False(t, IsRule("#######"))
	assert.False(t, IsRule(strings.Repeat("#", 257)))
	assert.False(t, IsRule("#### ####"))
	assert.False(t, IsRule(""))
}

func TestFindFences(t *testing.T) {
	rule := strings.Repeat("#", 16)

	t.Run("finds fences in order", func(t *testing.T) {
		lines := []string{
			"A=1",
			rule, "# APP_ENV=staging", rule,
			"#A=2",
			rule, "# APP_ENV=production", rule,
		}

		fences := FindFences(lines, testTitle)

		assert.Equal(t, []Fence{
			{Title: "staging", Line: 1, BodyStart: 4},
			{Title: "production", Line: 5, BodyStart: 8},
		}, fences)
	})

	t.Run("adjacent fences", func(t *testing.T) {
		lines := []string{rule, "# APP_ENV=a", rule, rule, "# APP_ENV=b", rule}

		fences := FindFences(lines, testTitle)

		assert.Len(t, fences, 2)
		assert.Equal(t, 3, fences[1].Line)
	})

	t.Run("ignores incomplete fences", func(t *testing.T) {
		lines := []string{rule, "# APP_ENV=staging"}
		assert.Empty(t, FindFences(lines, testTitle))

		lines = []string{"#####", "# APP_ENV=staging", rule}
		assert.Empty(t, FindFences(lines, testTitle))

		lines = []string{rule, "#APP_ENV=staging", rule}
		assert.Empty(t, FindFences(lines, testTitle))
	})
}
