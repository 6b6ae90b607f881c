// Package project locates the project directory build-env works in.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNotFound is returned when no ancestor directory looks like a project.
var ErrNotFound = errors.New("could not find project root")

// Markers are the files that identify a project directory, in the order
// they are checked.
var Markers = []string{".build-env.yaml", ".env.example", ".env.json"}

// FindRoot walks up from start to the nearest directory holding one of the
// Markers. An empty start means the current directory.
func FindRoot(start string) (string, error) {
	if start == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		start = cwd
	}

	dir, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}

	// Walk up the directory tree
	for {
		for _, marker := range Markers {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				return dir, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("%w (looked for %v from %s)", ErrNotFound, Markers, start)
}
