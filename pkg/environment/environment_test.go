package environment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Environment
	}{
		{"local", "local", Local},
		{"testing", "testing", Testing},
		{"test alias", "test", Testing},
		{"staging", "staging", Staging},
		{"stag alias", "stag", Staging},
		{"production", "production", Production},
		{"prod alias", "prod", Production},
		{"mixed case", " Prod ", Production},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseUnknown(t *testing.T) {
	for _, input := range []string{"", "qa", "default", "dev"} {
		_, err := Parse(input)
		assert.ErrorIs(t, err, ErrUnknown, input)
	}
}

func TestAllOrder(t *testing.T) {
	assert.Equal(t, []Environment{Local, Testing, Staging, Production}, All())
	assert.Equal(t, 2, Staging.Index())
	assert.Equal(t, -1, Environment("qa").Index())
}
