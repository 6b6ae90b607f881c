package builder

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/natefinch/atomic"
)

// writeFile replaces path with content in one rename. New files get mode
// 0644; existing files keep their mode.
func writeFile(path, content string) error {
	_, statErr := os.Stat(path)
	isNew := errors.Is(statErr, fs.ErrNotExist)

	if err := atomic.WriteFile(path, strings.NewReader(content)); err != nil {
		return &WriteError{Path: path, Err: err}
	}

	if isNew {
		if err := os.Chmod(path, 0644); err != nil {
			return &WriteError{Path: path, Err: err}
		}
	}

	return nil
}

// readOptional returns the contents of path, or nil when it does not exist.
func readOptional(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	return data, nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
