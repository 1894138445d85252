package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/parallelbenchmark/build-tools/pkg/presets"
)

func newPresetsCmd(env *environment) *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "Lists the build presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := env.resolve(env.config.PresetsFile)
			list, err := presets.Load(path)
			if err != nil {
				env.logger.Error().Err(err).Msg("Fatal error")
				return exitCode(-1)
			}

			out := cmd.OutOrStdout()
			if len(list) == 0 {
				fmt.Fprintf(out, "No presets found in %s\n", path)
				return nil
			}

			fmt.Fprintln(out, "Available presets:")
			maxNameLen := 0
			names := list.Names()
			for _, name := range names {
				if len(name) > maxNameLen {
					maxNameLen = len(name)
				}
			}

			lineFmt := fmt.Sprintf(" * %%-%ds %%s\n", maxNameLen+3)
			for _, name := range names {
				fmt.Fprintf(out, lineFmt, name+":", list[name].Desc)
			}

			return nil
		},
	}
}
