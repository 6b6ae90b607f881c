package defaults

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/jaspreet-dot-casa/build-env/pkg/environment"
)

var (
	// ErrInvalidSource is returned when an explicit defaults path does not exist.
	ErrInvalidSource = errors.New("defaults is not a valid file")
	// ErrPathRequired is returned when remembering defaults without a path.
	ErrPathRequired = errors.New("a defaults path must be provided to remember defaults")
)

// LinkError is returned when the remembered-defaults link cannot be created.
type LinkError struct {
	Link   string
	Target string
	Err    error
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("failed to create symlink %s -> %s: %v", e.Link, e.Target, e.Err)
}

func (e *LinkError) Unwrap() error {
	return e.Err
}

// Resolver finds the defaults source for an environment. Remembered sources
// are symlinks named .env.<environment>.defaults inside LinkDir.
type Resolver struct {
	LinkDir string
}

// NewResolver creates a resolver keeping remembered links in linkDir.
func NewResolver(linkDir string) *Resolver {
	return &Resolver{LinkDir: linkDir}
}

// LinkPath returns the remembered-defaults link for env.
func (r *Resolver) LinkPath(env environment.Environment) string {
	return filepath.Join(r.LinkDir, ".env."+string(env)+".defaults")
}

// Remember associates path with env, replacing any previous association.
// An empty path clears the association and returns ErrPathRequired.
func (r *Resolver) Remember(env environment.Environment, path string) error {
	if err := checkExists(path); err != nil {
		return err
	}

	link := r.LinkPath(env)
	if info, err := os.Lstat(link); err == nil && info.Mode()&fs.ModeSymlink != 0 {
		if err := os.Remove(link); err != nil {
			return &LinkError{Link: link, Target: path, Err: err}
		}
	}

	if path == "" {
		return ErrPathRequired
	}

	target, err := filepath.Abs(path)
	if err != nil {
		return &LinkError{Link: link, Target: path, Err: err}
	}

	if err := os.MkdirAll(r.LinkDir, 0755); err != nil {
		return &LinkError{Link: link, Target: target, Err: err}
	}

	if err := os.Symlink(target, link); err != nil {
		return &LinkError{Link: link, Target: target, Err: err}
	}

	return nil
}

// Remembered returns the source remembered for env. A regular file at the
// link location is used as is.
func (r *Resolver) Remembered(env environment.Environment) (string, bool, error) {
	link := r.LinkPath(env)

	info, err := os.Lstat(link)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, nil
		}
		return "", false, err
	}

	if info.Mode()&fs.ModeSymlink == 0 {
		return link, true, nil
	}

	target, err := os.Readlink(link)
	if err != nil {
		return "", false, err
	}
	if !filepath.IsAbs(target) {
		target = filepath.Join(filepath.Dir(link), target)
	}

	return target, true, nil
}

// Resolve returns the defaults for env: the explicit path when given,
// otherwise the remembered source, otherwise nothing.
func (r *Resolver) Resolve(env environment.Environment, explicit string) (*Source, error) {
	path := explicit

	if path != "" {
		if err := checkExists(path); err != nil {
			return nil, err
		}
	} else {
		remembered, ok, err := r.Remembered(env)
		if err != nil {
			return nil, fmt.Errorf("failed to read remembered defaults: %w", err)
		}
		if !ok {
			return &Source{Format: FormatNone}, nil
		}
		if _, err := os.Stat(remembered); err != nil {
			return &Source{
				Format:      FormatNone,
				Diagnostics: []string{fmt.Sprintf("remembered defaults %s is not available: %v", remembered, err)},
			}, nil
		}
		path = remembered
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read defaults: %w", err)
	}

	values, format, diagnostics := Detect(data, env)

	return &Source{
		Path:        path,
		Format:      format,
		Values:      values,
		Diagnostics: diagnostics,
	}, nil
}

// checkExists returns ErrInvalidSource when a non-empty path does not exist.
func checkExists(path string) error {
	if path == "" {
		return nil
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrInvalidSource, path)
		}
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", ErrInvalidSource, path)
	}

	return nil
}
