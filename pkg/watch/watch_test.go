package watch

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	dir := t.TempDir()
	watched := filepath.Join(dir, ".env.example")
	other := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(watched, []byte("A=1\n"), 0644))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	w := New([]string{watched}, 20*time.Millisecond, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls atomic.Int32
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(context.Context) error {
			calls.Add(1)
			// writing the output must not trigger another run
			_ = os.WriteFile(other, []byte("generated\n"), 0644)
			return errors.New("ignored")
		})
	}()

	assert.Eventually(t, func() bool {
		_ = os.WriteFile(watched, []byte("A=2\n"), 0644)
		return calls.Load() > 0
	}, 5*time.Second, 100*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestRunMissingDirectory(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	w := New([]string{filepath.Join(t.TempDir(), "missing", ".env.example")}, 0, logger)

	err := w.Run(context.Background(), func(context.Context) error { return nil })

	assert.Error(t, err)
}
