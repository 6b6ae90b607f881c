package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jaspreet-dot-casa/build-env/pkg/config"
	"github.com/jaspreet-dot-casa/build-env/pkg/tui"
)

func newConfigCmd(opts *options) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Show or initialize build-env configuration",
		Long: fmt.Sprintf(`Show the effective configuration for the project.

Settings are read from the user config file (%s),
then from %s in the project directory. Later files win.`, config.UserConfigPath(), config.ProjectFileName),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigShow(cmd, opts)
		},
	}

	configCmd.AddCommand(newConfigInitCmd(opts))

	return configCmd
}

func newConfigInitCmd(opts *options) *cobra.Command {
	var force bool

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a project config file",
		Long: fmt.Sprintf(`Write the effective configuration to %s in the project directory.

Examples:
  build-env config init              # current project
  build-env config init -C ../api    # another project`, config.ProjectFileName),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigInit(cmd, opts, force)
		},
	}

	initCmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing project config")

	return initCmd
}

func runConfigShow(cmd *cobra.Command, opts *options) error {
	s, err := newSession(opts)
	if err != nil {
		return err
	}

	out, err := s.cfg.Marshal()
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintln(w, tui.TitleStyle.Render("# project: "+s.dir))
	fmt.Fprintln(w, tui.SubtitleStyle.Render("# user config: "+config.UserConfigPath()))
	fmt.Fprint(w, out)
	return nil
}

func runConfigInit(cmd *cobra.Command, opts *options, force bool) error {
	s, err := newSession(opts)
	if err != nil {
		return err
	}

	target := filepath.Join(s.dir, config.ProjectFileName)
	if _, err := os.Stat(target); err == nil {
		if !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", target)
		}
		fmt.Fprintln(cmd.ErrOrStderr(), tui.WarningStyle.Render("Overwriting "+target))
	}

	path, err := s.cfg.Save(s.dir)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), tui.SuccessStyle.Render("Config saved to: "+path))
	return nil
}
