// Package main provides the build-env CLI tool for generating .env files.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jaspreet-dot-casa/build-env/pkg/builder"
	"github.com/jaspreet-dot-casa/build-env/pkg/config"
	"github.com/jaspreet-dot-casa/build-env/pkg/defaults"
	"github.com/jaspreet-dot-casa/build-env/pkg/environment"
	"github.com/jaspreet-dot-casa/build-env/pkg/project"
	"github.com/jaspreet-dot-casa/build-env/pkg/tui"
)

// version is set via -ldflags during build
var version = "dev"

func main() {
	rootCmd := newRootCmd()

	// Errors are printed below with the error style
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, tui.ErrorStyle.Render("Error: "+err.Error()))
		os.Exit(1)
	}
}

// options holds the root command flags.
type options struct {
	dir         string
	setDefaults bool
	setup       bool
	yes         bool
	dryRun      bool
	watch       bool
	verbose     bool
	quiet       bool
}

// newRootCmd creates the root command for build-env
func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "build-env [environment] [defaults]",
		Short: "Build .env files from an annotated .env.example",
		Long: `build-env compiles a .env file for one environment from .env.example.

Values shared by every environment sit at the top of .env.example. Overrides
for one environment go below in commented blocks:

  ################################################################
  # APP_ENV=production
  ################################################################
  #DB_HOST=db.internal

Environments: local (default), testing, staging, production. The aliases
test, stag and prod are accepted.

An optional defaults file (KEY=VALUE or legacy JSON) overrides template
values. Use --set-defaults to remember it for the environment.

Values placed under "Local pinned values" at the end of .env survive
rebuilds.`,
		Example: `  build-env                       # build .env for local
  build-env prod                  # build .env for production
  build-env staging ~/staging.env --set-defaults
  build-env --setup               # rewrite .env.example in the managed layout
  build-env testing --dry-run     # show what would change`,
		Args:    cobra.MaximumNArgs(2),
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuildEnv(cmd, opts, args)
		},
	}

	flags := rootCmd.Flags()
	flags.BoolVar(&opts.setDefaults, "set-defaults", false, "Remember the defaults file for this environment")
	flags.BoolVar(&opts.setup, "setup", false, "Set up .env.example for multi-environment builds")
	flags.BoolVarP(&opts.yes, "yes", "y", false, "Answer yes to all questions")
	flags.BoolVar(&opts.dryRun, "dry-run", false, "Print a diff instead of writing files")
	flags.BoolVarP(&opts.watch, "watch", "w", false, "Rebuild when the template or defaults change")

	persistent := rootCmd.PersistentFlags()
	persistent.StringVarP(&opts.dir, "dir", "C", "", "Project directory (defaults to the nearest directory with .env.example)")
	persistent.BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug output")
	persistent.BoolVarP(&opts.quiet, "quiet", "q", false, "Only show warnings and errors")

	rootCmd.MarkFlagsMutuallyExclusive("setup", "set-defaults")
	rootCmd.MarkFlagsMutuallyExclusive("setup", "watch")
	rootCmd.MarkFlagsMutuallyExclusive("dry-run", "watch")

	rootCmd.AddCommand(newConfigCmd(opts))

	return rootCmd
}

// session is what every command needs after flags are parsed.
type session struct {
	dir string
	cfg *config.Config
}

func newSession(opts *options) (*session, error) {
	dir, err := projectDir(opts.dir)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return &session{dir: dir, cfg: cfg}, nil
}

// projectDir returns the --dir flag, or the nearest project directory, or
// the current directory.
func projectDir(flag string) (string, error) {
	if flag != "" {
		dir, err := filepath.Abs(flag)
		if err != nil {
			return "", fmt.Errorf("failed to resolve %s: %w", flag, err)
		}
		info, err := os.Stat(dir)
		if err != nil {
			return "", fmt.Errorf("project directory: %w", err)
		}
		if !info.IsDir() {
			return "", fmt.Errorf("project directory %s is not a directory", dir)
		}
		return dir, nil
	}

	dir, err := project.FindRoot("")
	if errors.Is(err, project.ErrNotFound) {
		return os.Getwd()
	}
	return dir, err
}

// paths returns the builder paths from the config.
func (s *session) paths() builder.Paths {
	return builder.Paths{
		Template: config.Resolve(s.dir, s.cfg.Template),
		Legacy:   config.Resolve(s.dir, s.cfg.LegacyTemplate),
		Output:   config.Resolve(s.dir, s.cfg.Output),
	}
}

func (s *session) resolver() *defaults.Resolver {
	return defaults.NewResolver(config.Resolve(s.dir, s.cfg.DefaultsDir))
}

// parseArgs returns the target environment and the optional defaults path.
func parseArgs(cfg *config.Config, args []string) (environment.Environment, string, error) {
	env := cfg.DefaultEnvironment()
	if len(args) > 0 {
		var err error
		if env, err = environment.Parse(args[0]); err != nil {
			return "", "", err
		}
	}

	var defaultsPath string
	if len(args) > 1 {
		defaultsPath = args[1]
	}

	return env, defaultsPath, nil
}
