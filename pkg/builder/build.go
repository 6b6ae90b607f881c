package builder

import (
	"context"
	"fmt"

	"github.com/jaspreet-dot-casa/build-env/pkg/compiler"
	"github.com/jaspreet-dot-casa/build-env/pkg/defaults"
	"github.com/jaspreet-dot-casa/build-env/pkg/environment"
	"github.com/jaspreet-dot-casa/build-env/pkg/pinned"
)

// BuildOptions select what to build.
type BuildOptions struct {
	Environment environment.Environment
	// DefaultsPath is an explicit defaults source for this run.
	DefaultsPath string
	// RememberDefaults stores DefaultsPath as the source for Environment.
	RememberDefaults bool
	// DryRun prints a diff instead of writing. The defaults link is not
	// touched either.
	DryRun bool
}

// BuildResult describes a finished build.
type BuildResult struct {
	Path     string
	Content  string
	Defaults *defaults.Source
	Keys     int
	Pinned   []string
	Changed  bool
	Written  bool
}

// Build compiles the output file for opts.Environment. Everything is read
// and rendered before the output is touched; the write itself is atomic.
func (b *Builder) Build(ctx context.Context, opts BuildOptions) (*BuildResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tmpl, err := b.ReadTemplate(false)
	if err != nil {
		return nil, err
	}

	src, err := b.resolveDefaults(opts)
	if err != nil {
		return nil, err
	}

	previous, err := readOptional(b.paths.Output)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", b.paths.Output, err)
	}
	pins := pinned.Extract(previous)

	b.logger.Info("Building output", "environment", opts.Environment, "output", b.paths.Output)

	body := compiler.Compile(tmpl.Model, src.Values, pins, opts.Environment)
	content := compiler.Document{
		Environment:  opts.Environment,
		Generated:    b.now(),
		DefaultsPath: src.Path,
		Body:         body,
		Pinned:       pins,
	}.Render()

	result := &BuildResult{
		Path:     b.paths.Output,
		Content:  content,
		Defaults: src,
		Keys:     len(body.Lines()),
		Pinned:   pins.Keys(),
		Changed:  string(previous) != content,
	}

	if opts.DryRun {
		fmt.Fprint(b.out, Diff(string(previous), content))
		return result, nil
	}

	if err := writeFile(b.paths.Output, content); err != nil {
		return nil, err
	}
	result.Written = true

	b.logger.Info("Output file created", "path", b.paths.Output, "keys", result.Keys)

	return result, nil
}

func (b *Builder) resolveDefaults(opts BuildOptions) (*defaults.Source, error) {
	switch {
	case opts.RememberDefaults && opts.DryRun:
		if opts.DefaultsPath == "" {
			return nil, defaults.ErrPathRequired
		}
		b.logger.Info("Would remember defaults", "environment", opts.Environment,
			"defaults", opts.DefaultsPath, "link", b.resolver.LinkPath(opts.Environment))
	case opts.RememberDefaults:
		if err := b.resolver.Remember(opts.Environment, opts.DefaultsPath); err != nil {
			return nil, err
		}
		b.logger.Info("Remembered defaults", "environment", opts.Environment, "defaults", opts.DefaultsPath)
	}

	src, err := b.resolver.Resolve(opts.Environment, opts.DefaultsPath)
	if err != nil {
		return nil, err
	}

	if src.Path != "" {
		b.logger.Info("Reading defaults", "path", src.Path, "format", src.Format)
	}
	for _, msg := range src.Diagnostics {
		b.logger.Warn(msg)
	}

	return src, nil
}
