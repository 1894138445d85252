package cmake

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rotisserie/eris"

	"github.com/parallelbenchmark/build-tools/pkg"
)

// Invoker runs the configure and build phases in order and stops at the first failure.
type Invoker struct {
	Shell Shell
	// Console receives the phase headers and the spinner when Options.Progress is set.
	Console io.Writer
}

// NewInvoker returns an Invoker backed by the portable shell interpreter
func NewInvoker() *Invoker {
	return &Invoker{Shell: NewShellRunner(), Console: os.Stderr}
}

// Build configures the project and then builds it.
func (inv *Invoker) Build(ctx context.Context, opts Options) error {
	opts = opts.WithDefaults()
	err := opts.Validate()
	if err != nil {
		return err
	}

	info, err := os.Stat(opts.ProjectRoot)
	if err != nil {
		return eris.Wrapf(err, "Could not find project root %s", opts.ProjectRoot)
	}

	if !info.IsDir() {
		return eris.Errorf("%s is not a directory!", opts.ProjectRoot)
	}

	err = inv.runPhase(ctx, opts, PhaseConfigure, ConfigureCommand(opts))
	if err != nil {
		return err
	}

	return inv.runPhase(ctx, opts, PhaseBuild, BuildCommand(opts))
}

func (inv *Invoker) runPhase(ctx context.Context, opts Options, phase Phase, cmd Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	cmdline, err := cmd.Line()
	if err != nil {
		return err
	}

	log(ctx).Info().
		Str("phase", string(phase)).
		Bool("command", true).
		Msg(cmdline)

	if opts.DryRun {
		return nil
	}

	stop := func() {}
	if opts.Progress {
		console := inv.Console
		if console == nil {
			console = os.Stderr
		}

		pkg.PrintSubtask(console, fmt.Sprintf("Running %s", phase))
		stop = startSpinner(console, string(phase))
	}

	output, runErr := inv.Shell.Run(ctx, opts.ProjectRoot, string(phase), cmdline)
	stop()

	log(ctx).Info().
		Str("phase", string(phase)).
		Msgf("CMake output:\n%s", output)

	if opts.SaveLogs {
		dest, err := writePhaseLog(opts.BuildPath(), phase, output)
		if err != nil {
			log(ctx).Warn().Err(err).Str("phase", string(phase)).Msg("Failed to save output")
		} else {
			log(ctx).Debug().Str("phase", string(phase)).Str("path", dest).Msg("Saved output")
		}
	}

	if runErr != nil {
		return eris.Wrapf(runErr, "%s phase failed", phase)
	}

	return nil
}

// Main runs both phases and converts the outcome into a process exit code: 0 on success, -1 on any error.
func Main(ctx context.Context, inv *Invoker, opts Options) int {
	opts = opts.WithDefaults()
	log(ctx).Debug().Interface("options", opts).Msg("Arguments")

	err := inv.Build(ctx, opts)
	if err != nil {
		log(ctx).Error().Err(err).Msg("Fatal error")
		return -1
	}

	return 0
}
