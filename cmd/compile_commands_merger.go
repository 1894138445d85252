package cmd

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/parallelbenchmark/build-tools/pkg/compiledb"
)

func newMergeCompileCommandsCmd(env *environment) *cobra.Command {
	return &cobra.Command{
		Use:   "merge-compile-commands [output file] [input files...]",
		Short: "Merges several compile_commands.json files. Assumes that only absolute paths are used.",
		Long: `Merges several compile_commands.json files into one. Without arguments,
<project root>/build/compile_commands.json is copied to <project root>/compile_commands.json.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := filepath.Join(env.projectRoot, "compile_commands.json")
			inputs := []string{filepath.Join(env.projectRoot, "build", "compile_commands.json")}

			switch len(args) {
			case 0:
			case 1:
				env.logger.Error().Msgf("Expected at least 2 arguments but got %d!", len(args))
				return exitCode(-1)
			default:
				output = args[0]
				inputs = args[1:]
			}

			count, err := compiledb.Merge(output, inputs...)
			if err != nil {
				env.logger.Error().Err(err).Msg("Fatal error")
				return exitCode(-1)
			}

			env.logger.Info().Str("path", output).Int("entries", count).Msgf("Wrote %s", output)
			return nil
		},
	}
}
