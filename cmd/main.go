package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/aidarkhanov/nanoid"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/parallelbenchmark/build-tools/pkg"
	"github.com/parallelbenchmark/build-tools/pkg/cmake"
	"github.com/parallelbenchmark/build-tools/pkg/config"
)

// exitCode is returned by commands that already reported their failure
type exitCode int

func (e exitCode) Error() string {
	return fmt.Sprintf("exit code %d", int(e))
}

// environment is shared by all subcommands and filled in before any of them runs
type environment struct {
	out         io.Writer
	verbose     bool
	json        bool
	projectRoot string
	settings    string
	config      *config.Config
	logger      zerolog.Logger
}

func newRootCmd(out io.Writer) *cobra.Command {
	env := &environment{out: out}

	rootCmd := &cobra.Command{
		Use:   "tool",
		Short: "Build tools for the parallel benchmark",
		Long: `This command bundles the tools used to build the benchmark suite. The build command configures the
project with CMake and builds it in a single step.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return env.init(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&env.verbose, "verbose", "v", false, "show debug messages and error stack traces")
	flags.BoolVar(&env.json, "json", false, "output JSON lines instead of pretty console messages")
	flags.StringVar(&env.projectRoot, "project-root", "", "CMake project to operate on (default: detected from the tool location)")
	flags.StringVar(&env.settings, "settings", "", "settings file (default: <project root>/"+config.DefaultFile+")")

	rootCmd.AddCommand(newBuildCmd(env))
	rootCmd.AddCommand(newCleanCmd(env))
	rootCmd.AddCommand(newPresetsCmd(env))
	rootCmd.AddCommand(newMergeCompileCommandsCmd(env))
	return rootCmd
}

func (env *environment) init(cmd *cobra.Command) error {
	var err error
	if env.projectRoot == "" {
		env.projectRoot, err = pkg.GetProjectRoot()
		if err != nil {
			return err
		}
	} else {
		env.projectRoot, err = filepath.Abs(env.projectRoot)
		if err != nil {
			return eris.Wrapf(err, "Failed to resolve %s", env.projectRoot)
		}
	}

	if env.settings == "" {
		env.settings = filepath.Join(env.projectRoot, config.DefaultFile)
	} else {
		// only the default settings file is optional
		_, err = os.Stat(env.settings)
		if err != nil {
			return eris.Wrapf(err, "Could not read settings file %s", env.settings)
		}
	}

	env.config, err = config.Load(env.settings)
	if err != nil {
		return err
	}

	debug := env.verbose || os.Getenv("BUILDTOOLS_DEBUG") != ""
	zerolog.ErrorMarshalFunc = func(err error) interface{} {
		return eris.ToString(err, debug)
	}

	var writer io.Writer = env.out
	if !env.useJSON() {
		writer = NewConsoleWriter(env.out)
	}

	level := env.config.LogLevel()
	if env.verbose {
		level = zerolog.DebugLevel
	}

	env.logger = zerolog.New(writer).
		Level(level).
		With().
		Timestamp().
		Str("run", nanoid.New()).
		Logger()

	cmd.SetContext(cmake.WithLogger(cmd.Context(), &env.logger))
	return nil
}

func (env *environment) useJSON() bool {
	return env.json || env.config.Log.JSON
}

func (env *environment) resolve(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}

	return filepath.Join(env.projectRoot, path)
}

func run(ctx context.Context, rootCmd *cobra.Command, args []string) int {
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	var code exitCode
	if eris.As(err, &code) {
		return int(code)
	}

	// usage errors happen before the logger exists
	pkg.PrintError(strings.TrimSpace(err.Error()))
	return -1
}

// Execute runs the tool with the process arguments and returns the exit code
func Execute() int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	return run(ctx, newRootCmd(os.Stderr), os.Args[1:])
}
