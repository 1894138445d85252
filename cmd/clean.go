package cmd

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/parallelbenchmark/build-tools/pkg"
)

func newCleanCmd(env *environment) *cobra.Command {
	var buildDirectory string

	cleanCmd := &cobra.Command{
		Use:   "clean",
		Short: "Removes the build directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := env.resolve(buildDirectory)
			if dir == "" {
				dir = filepath.Join(env.projectRoot, "build")
			}
			dir = filepath.Clean(dir)

			if containsProject(dir, env.projectRoot) {
				env.logger.Error().Str("path", dir).Msgf("Refusing to delete %s, it contains the project root", dir)
				return exitCode(-1)
			}

			info, err := os.Stat(dir)
			if err != nil {
				if eris.Is(err, os.ErrNotExist) {
					env.logger.Info().Str("path", dir).Msgf("%s doesn't exist, nothing to do", dir)
					return nil
				}

				env.logger.Error().Err(eris.Wrapf(err, "Could not stat %s", dir)).Msg("Fatal error")
				return exitCode(-1)
			}

			if !info.IsDir() {
				env.logger.Error().Str("path", dir).Msgf("%s is not a directory!", dir)
				return exitCode(-1)
			}

			if !env.useJSON() {
				pkg.PrintTask("Removing " + dir)
			}

			err = os.RemoveAll(dir)
			if err != nil {
				env.logger.Error().Err(eris.Wrapf(err, "Could not delete %s", dir)).Msg("Fatal error")
				return exitCode(-1)
			}

			env.logger.Info().Str("path", dir).Msg("Removed build directory")
			return nil
		},
	}

	cleanCmd.Flags().StringVar(&buildDirectory, "build-directory", "", "build directory (default: <project root>/build)")
	return cleanCmd
}

// containsProject reports whether dir is the project root or one of its parents.
func containsProject(dir, projectRoot string) bool {
	rel, err := filepath.Rel(dir, projectRoot)
	if err != nil {
		return false
	}

	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
