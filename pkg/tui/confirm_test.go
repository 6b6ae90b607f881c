package tui

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatic(t *testing.T) {
	for _, answer := range []bool{true, false} {
		s := Static{Answer: answer}

		got, err := s.Confirm(context.Background(), "Replace?", !answer)

		require.NoError(t, err)
		assert.True(t, s.Interactive())
		assert.Equal(t, answer, got)
	}
}

func TestKeyMap(t *testing.T) {
	km := keyMap()

	assert.Equal(t, []string{"y", "Y"}, km.Confirm.Accept.Keys())
	assert.Equal(t, []string{"n", "N"}, km.Confirm.Reject.Keys())
	assert.Contains(t, km.Quit.Keys(), "esc")
}

func TestTheme(t *testing.T) {
	assert.NotNil(t, Theme())
}
