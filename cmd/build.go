package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/parallelbenchmark/build-tools/pkg/cmake"
	"github.com/parallelbenchmark/build-tools/pkg/presets"
)

type buildFlags struct {
	buildDirectory string
	jobs           int
	target         string
	buildType      string
	stackSize      int
	defines        []string
	preset         string
	dryRun         bool
	saveLogs       bool
}

func newBuildCmd(env *environment) *cobra.Command {
	flags := &buildFlags{}

	buildCmd := &cobra.Command{
		Use:   "build",
		Short: "Configures and builds the project with CMake",
		Long: `Runs "cmake -S <project root> -B <build directory>" followed by "cmake --build <build directory> --parallel".
The optional flags are passed through to CMake. Both commands run in the project root.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := env.buildOptions(flags)
			if err != nil {
				env.logger.Error().Err(err).Msg("Fatal error")
				return exitCode(-1)
			}

			code := cmake.Main(cmd.Context(), cmake.NewInvoker(), opts)
			if code != 0 {
				return exitCode(code)
			}

			return nil
		},
	}

	f := buildCmd.Flags()
	f.StringVar(&flags.buildDirectory, "build-directory", "", "build directory (default: <project root>/build)")
	f.IntVarP(&flags.jobs, "jobs", "j", 0, "number of parallel jobs to run")
	f.StringVarP(&flags.target, "target", "t", "", "target to build")
	f.StringVar(&flags.buildType, "build-type", "", "CMake build type to use")
	f.IntVar(&flags.stackSize, "stack-size", 0, "stack size passed to CMake as STACK_SIZE")
	f.StringArrayVarP(&flags.defines, "define", "D", nil, "additional KEY=VALUE definition for the configure step (repeatable)")
	f.StringVarP(&flags.preset, "preset", "p", "", "fill unset options from a preset")
	f.BoolVarP(&flags.dryRun, "dry", "n", false, "dry run; only print the commands, don't execute anything")
	f.BoolVar(&flags.saveLogs, "save-logs", false, "store the output of each phase in <build directory>/logs")

	return buildCmd
}

func (env *environment) buildOptions(flags *buildFlags) (cmake.Options, error) {
	opts := cmake.Options{
		ProjectRoot:    env.projectRoot,
		BuildDirectory: flags.buildDirectory,
		Jobs:           flags.jobs,
		Target:         flags.target,
		BuildType:      flags.buildType,
		StackSize:      flags.stackSize,
		Defines:        flags.defines,
		CMake:          env.config.CMake.Binary,
		Toolchain: cmake.Toolchain{
			C:   env.config.Toolchain.C,
			CXX: env.config.Toolchain.CXX,
		},
		DryRun:   flags.dryRun,
		SaveLogs: flags.saveLogs,
		Progress: env.showProgress(),
	}

	if flags.preset != "" {
		list, err := presets.Load(env.resolve(env.config.PresetsFile))
		if err != nil {
			return opts, err
		}

		preset, err := list.Get(flags.preset)
		if err != nil {
			return opts, err
		}

		preset.Apply(&opts)
		env.logger.Debug().Str("preset", flags.preset).Msg("Applied preset")
	}

	return opts, opts.Validate()
}

func (env *environment) showProgress() bool {
	if env.useJSON() || os.Getenv("CI") == "true" || env.out != os.Stderr {
		return false
	}

	return term.IsTerminal(int(os.Stderr.Fd()))
}
