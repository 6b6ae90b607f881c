// Package builder runs the build-env flows: compiling .env for an
// environment and setting up the annotated template.
package builder

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/jaspreet-dot-casa/build-env/pkg/defaults"
	"github.com/jaspreet-dot-casa/build-env/pkg/envtemplate"
)

// Paths are the files a Builder reads and writes.
type Paths struct {
	Template string // annotated template, usually .env.example
	Legacy   string // deprecated JSON template, usually .env.json
	Output   string // generated file, usually .env
}

// DefaultPaths returns the conventional file names inside dir.
func DefaultPaths(dir string) Paths {
	return Paths{
		Template: filepath.Join(dir, ".env.example"),
		Legacy:   filepath.Join(dir, ".env.json"),
		Output:   filepath.Join(dir, ".env"),
	}
}

// Confirmer asks yes/no questions.
type Confirmer interface {
	// Interactive reports whether questions can be asked at all.
	Interactive() bool
	Confirm(ctx context.Context, question string, def bool) (bool, error)
}

type nonInteractive struct{}

func (nonInteractive) Interactive() bool { return false }

func (nonInteractive) Confirm(context.Context, string, bool) (bool, error) {
	return false, nil
}

// Builder compiles .env files and sets up templates.
type Builder struct {
	paths    Paths
	resolver *defaults.Resolver
	logger   *slog.Logger
	confirm  Confirmer
	now      func() time.Time
	out      io.Writer
}

// Option configures a Builder.
type Option func(*Builder)

// WithLogger sets the logger for progress messages.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) { b.logger = logger }
}

// WithConfirmer sets how questions are answered. Without one, no questions
// are asked.
func WithConfirmer(c Confirmer) Option {
	return func(b *Builder) { b.confirm = c }
}

// WithClock sets the clock used for the generation timestamp.
func WithClock(now func() time.Time) Option {
	return func(b *Builder) { b.now = now }
}

// WithOutput sets where dry-run diffs are written.
func WithOutput(w io.Writer) Option {
	return func(b *Builder) { b.out = w }
}

// New creates a Builder.
func New(paths Paths, resolver *defaults.Resolver, opts ...Option) *Builder {
	b := &Builder{
		paths:    paths,
		resolver: resolver,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		confirm:  nonInteractive{},
		now:      time.Now,
		out:      os.Stdout,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Paths returns the files the builder works on.
func (b *Builder) Paths() Paths {
	return b.paths
}

// Template is a loaded template.
type Template struct {
	Model   *envtemplate.Model
	Path    string
	Legacy  bool // read from the deprecated JSON template
	Managed bool // already written by setup
}

// ReadTemplate loads the template. The legacy JSON template takes priority
// when present. Hints about running setup are logged unless forSetup is set.
func (b *Builder) ReadTemplate(forSetup bool) (*Template, error) {
	if data, err := readOptional(b.paths.Legacy); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", b.paths.Legacy, err)
	} else if data != nil {
		return b.readLegacy(data, forSetup)
	}

	data, err := readOptional(b.paths.Template)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", b.paths.Template, err)
	}
	if data == nil {
		return nil, fmt.Errorf("%w: %s", envtemplate.ErrMissingTemplate, b.paths.Template)
	}

	managed := envtemplate.IsManaged(data)
	if !forSetup && !managed {
		b.logger.Info("Run `build-env --setup` to set up the template for multi-environment builds", "template", b.paths.Template)
	}

	model, err := envtemplate.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", b.paths.Template, err)
	}
	b.reportSkipped(model)

	return &Template{Model: model, Path: b.paths.Template, Managed: managed}, nil
}

func (b *Builder) readLegacy(data []byte, forSetup bool) (*Template, error) {
	b.logger.Info("Found deprecated legacy template", "path", b.paths.Legacy)
	if !forSetup {
		b.logger.Info("Run `build-env --setup` to create a new template from it")
	}

	model, err := envtemplate.DecodeLegacy(data)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", b.paths.Legacy, err)
	}
	b.reportSkipped(model)

	if exists(b.paths.Template) {
		b.logger.Warn("Project has both a legacy template and a template, reading values from the legacy one",
			"legacy", b.paths.Legacy, "template", b.paths.Template)
	}

	return &Template{Model: model, Path: b.paths.Legacy, Legacy: true}, nil
}

func (b *Builder) reportSkipped(model *envtemplate.Model) {
	for _, name := range model.Skipped() {
		b.logger.Warn("Ignoring values for unknown environment", "environment", name)
	}
}
