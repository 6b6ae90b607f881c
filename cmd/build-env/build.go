package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jaspreet-dot-casa/build-env/pkg/builder"
	"github.com/jaspreet-dot-casa/build-env/pkg/logging"
	"github.com/jaspreet-dot-casa/build-env/pkg/tui"
	"github.com/jaspreet-dot-casa/build-env/pkg/watch"
)

func runBuildEnv(cmd *cobra.Command, opts *options, args []string) error {
	s, err := newSession(opts)
	if err != nil {
		return err
	}

	level, err := logging.Level(s.cfg.LogLevel, opts.verbose, opts.quiet)
	if err != nil {
		return err
	}
	logger := logging.New(cmd.ErrOrStderr(), level)

	b := builder.New(s.paths(), s.resolver(),
		builder.WithLogger(logger),
		builder.WithConfirmer(confirmer(opts)),
		builder.WithOutput(cmd.OutOrStdout()),
	)

	if opts.setup {
		if len(args) > 0 {
			logger.Warn("Ignoring arguments with --setup", "args", strings.Join(args, " "))
		}
		_, err := b.Setup(cmd.Context(), builder.SetupOptions{DryRun: opts.dryRun})
		return err
	}

	env, defaultsPath, err := parseArgs(s.cfg, args)
	if err != nil {
		return err
	}
	if opts.setDefaults && defaultsPath == "" {
		return fmt.Errorf("--set-defaults needs a defaults file argument")
	}

	buildOpts := builder.BuildOptions{
		Environment:      env,
		DefaultsPath:     defaultsPath,
		RememberDefaults: opts.setDefaults,
		DryRun:           opts.dryRun,
	}

	result, err := b.Build(cmd.Context(), buildOpts)
	if err != nil {
		return err
	}

	if !opts.watch {
		return nil
	}

	// The link is in place after the first build
	buildOpts.RememberDefaults = false

	return watchAndBuild(cmd.Context(), b, buildOpts, result, logger)
}

// watchAndBuild rebuilds whenever the template or the defaults file changes,
// until interrupted.
func watchAndBuild(ctx context.Context, b *builder.Builder, opts builder.BuildOptions, first *builder.BuildResult, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	paths := b.Paths()
	files := []string{paths.Template, paths.Legacy}
	if first.Defaults != nil && first.Defaults.Path != "" {
		files = append(files, first.Defaults.Path)
	}

	return watch.New(files, watch.DefaultDebounce, logger).Run(ctx, func(ctx context.Context) error {
		_, err := b.Build(ctx, opts)
		return err
	})
}

// confirmer answers setup questions: yes to everything with --yes,
// otherwise a terminal prompt when one is attached.
func confirmer(opts *options) builder.Confirmer {
	if opts.yes {
		return tui.Static{Answer: true}
	}
	return tui.NewPrompter()
}
