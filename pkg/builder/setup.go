package builder

import (
	"context"
	"fmt"
	"os"

	"github.com/jaspreet-dot-casa/build-env/pkg/envtemplate"
)

// SetupOptions control template setup.
type SetupOptions struct {
	DryRun bool
}

// SetupResult describes a finished setup.
type SetupResult struct {
	Path          string
	Content       string
	FromLegacy    bool
	LegacyRemoved bool
	Written       bool
}

// Setup rewrites the template in the annotated, managed layout. A legacy
// JSON template is migrated; it is removed afterwards only when the user
// agrees.
func (b *Builder) Setup(ctx context.Context, opts SetupOptions) (*SetupResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tmpl, err := b.ReadTemplate(true)
	if err != nil {
		return nil, err
	}

	if err := b.confirmReplace(ctx); err != nil {
		return nil, err
	}

	removeLegacy := false
	if tmpl.Legacy {
		b.logger.Info("Converting deprecated legacy template", "from", b.paths.Legacy, "to", b.paths.Template)

		if b.confirm.Interactive() && !opts.DryRun {
			removeLegacy, err = b.confirm.Confirm(ctx, fmt.Sprintf("Would you like to remove your old %s file?", b.paths.Legacy), true)
			if err != nil {
				return nil, err
			}
		}
	}

	content := envtemplate.Render(tmpl.Model)
	result := &SetupResult{
		Path:       b.paths.Template,
		Content:    content,
		FromLegacy: tmpl.Legacy,
	}

	if opts.DryRun {
		previous, err := readOptional(b.paths.Template)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", b.paths.Template, err)
		}
		fmt.Fprint(b.out, Diff(string(previous), content))
		return result, nil
	}

	if err := writeFile(b.paths.Template, content); err != nil {
		return nil, err
	}
	result.Written = true

	if removeLegacy {
		if err := os.Remove(b.paths.Legacy); err != nil {
			b.logger.Warn("Failed to remove legacy template", "path", b.paths.Legacy, "error", err)
		} else {
			result.LegacyRemoved = true
		}
	}

	b.logger.Info("Template updated", "path", b.paths.Template)

	return result, nil
}

// confirmReplace asks before overwriting a template that setup already wrote.
func (b *Builder) confirmReplace(ctx context.Context) error {
	data, err := readOptional(b.paths.Template)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", b.paths.Template, err)
	}
	if data == nil || !envtemplate.IsManaged(data) {
		return nil
	}

	b.logger.Info("Template already set up for multi-environment builds", "path", b.paths.Template)

	if !b.confirm.Interactive() {
		return nil
	}

	ok, err := b.confirm.Confirm(ctx, fmt.Sprintf("Would you like to replace your old %s file?", b.paths.Template), true)
	if err != nil {
		return err
	}
	if !ok {
		return ErrSetupDeclined
	}

	return nil
}
