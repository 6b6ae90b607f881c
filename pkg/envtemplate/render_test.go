package envtemplate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaspreet-dot-casa/build-env/pkg/environment"
)

func TestRender(t *testing.T) {
	text := "DB_PORT=3306\nAPP_NAME=\"My App\"\nDB_HOST=localhost\n" +
		block("production", "#DB_HOST=db.internal", "#NEW_KEY=only-prod") +
		block("staging", "#DB_HOST=staging.db")

	out := Render(mustParse(t, text))

	t.Run("header", func(t *testing.T) {
		lines := strings.Split(out, "\n")
		assert.Equal(t, Rule(), lines[0])
		assert.True(t, IsManaged([]byte(out)))
		for _, line := range lines[:13] {
			assert.Len(t, line, RuleWidth, line)
		}
	})

	t.Run("common section is sorted and grouped", func(t *testing.T) {
		assert.Contains(t, out, "\n\nAPP_NAME=\"My App\"\n\nDB_HOST=localhost\nDB_PORT=3306\n")
		assert.NotContains(t, out, "\nNEW_KEY=")
	})

	t.Run("blocks in environment order", func(t *testing.T) {
		staging := strings.Index(out, "# APP_ENV=staging")
		production := strings.Index(out, "# APP_ENV=production")
		require.NotEqual(t, -1, staging)
		require.NotEqual(t, -1, production)
		assert.Less(t, staging, production)

		assert.Contains(t, out, "# APP_ENV=production\n"+Rule()+"\n#DB_HOST=db.internal\n#NEW_KEY=only-prod\n")
		assert.NotContains(t, out, "APP_ENV=local")
	})
}

func TestRenderRoundTrip(t *testing.T) {
	text := "APP_ENV=local\nAPP_DEBUG=true\nAPP_URL=https://example.com\nDB_HOST=localhost\n" +
		block("testing", "#DB_HOST=127.0.0.1") +
		block("production", "#DB_HOST=db.internal", "#SENTRY_DSN=\"https://key@sentry.test/1\"")

	first := Render(mustParse(t, text))
	second := Render(mustParse(t, first))

	assert.Equal(t, first, second)
	assert.Contains(t, first, "#APP_DEBUG=false")
	assert.Contains(t, first, "#APP_ENV=production")
}

func TestRenderMultiLineSectionValue(t *testing.T) {
	text := "APP_NAME=demo\n" + block("production", "#CERT=\"line1", "#line2\"")

	out := Render(mustParse(t, text))

	assert.Contains(t, out, "\n#CERT=\"line1\n#line2\"\n")

	m, err := Parse([]byte(out))
	require.NoError(t, err)

	lv, ok := m.Get("CERT")
	require.True(t, ok)
	v, ok := lv.For(environment.Production)
	require.True(t, ok)
	assert.Equal(t, "line1\nline2", v.Text())
	assert.Equal(t, out, Render(m))
}

func TestIsManaged(t *testing.T) {
	assert.False(t, IsManaged([]byte("APP_NAME=demo\n")))
	assert.True(t, IsManaged([]byte("# This file is managed by \"build-env\"\n")))
}

func TestBoxLine(t *testing.T) {
	assert.Equal(t, "# abc"+strings.Repeat(" ", 57)+" #", BoxLine("abc"))
	assert.Len(t, BoxLine(""), RuleWidth)
}
