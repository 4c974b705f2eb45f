package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/arthur-debert/printdispatch/pkg/errors"
	"github.com/arthur-debert/printdispatch/pkg/paths"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func newSettingsCmd(a *app) *cobra.Command {
	var write, force bool

	cmd := &cobra.Command{
		Use:     "settings",
		Short:   MsgSettingsShort,
		Long:    MsgSettingsLong,
		GroupID: "config",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(cmd); err != nil {
				return a.fail(cmd, err)
			}
			data, err := a.settings.RenderTOML()
			if err != nil {
				return a.fail(cmd, errors.Wrap(err, errors.ErrInternal, "failed to render settings"))
			}

			if !write {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}

			target := a.paths.Resolve(paths.SettingsBaseName + ".toml")
			exists, err := afero.Exists(a.deps.Fs, target)
			if err != nil {
				return a.fail(cmd, errors.Wrap(err, errors.ErrInternal, "cannot inspect settings file"))
			}
			if exists && !force {
				return a.fail(cmd, errors.Newf(errors.ErrInvalidInput, MsgSettingsExists, target))
			}
			if err := a.deps.Fs.MkdirAll(filepath.Dir(target), 0755); err != nil {
				return a.fail(cmd, errors.Wrap(err, errors.ErrInternal, "cannot create settings directory"))
			}
			if err := afero.WriteFile(a.deps.Fs, target, data, os.FileMode(0644)); err != nil {
				return a.fail(cmd, errors.Wrapf(err, errors.ErrInternal, "cannot write %s", target))
			}
			fmt.Fprintf(cmd.OutOrStdout(), MsgSettingsWritten, target)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, MsgFlagWrite)
	cmd.Flags().BoolVar(&force, "force", false, MsgFlagForce)
	return cmd
}
