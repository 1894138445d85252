package cmake

import (
	"bytes"
	"context"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/rotisserie/eris"
	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// ErrCommandFailed is returned (wrapped) whenever a phase exits with a nonzero status.
var ErrCommandFailed = eris.New("command failed")

// Shell executes a command line inside dir and returns its combined stdout and stderr.
type Shell interface {
	Run(ctx context.Context, dir, name, cmdline string) (string, error)
}

// ShellRunner runs command lines with the portable shell interpreter from mvdan.cc/sh.
type ShellRunner struct {
	// Env is appended to the process environment.
	Env []string
}

// NewShellRunner returns a ShellRunner inheriting the current environment
func NewShellRunner() *ShellRunner {
	return &ShellRunner{}
}

type combinedOutput struct {
	buffer bytes.Buffer
	lock   sync.Mutex
}

func (o *combinedOutput) Write(p []byte) (int, error) {
	o.lock.Lock()
	defer o.lock.Unlock()

	return o.buffer.Write(p)
}

func (o *combinedOutput) String() string {
	o.lock.Lock()
	defer o.lock.Unlock()

	return o.buffer.String()
}

var defaultOpenHandler = interp.DefaultOpenHandler()

func openHandler(ctx context.Context, path string, flag int, perm os.FileMode) (io.ReadWriteCloser, error) {
	if path == "/dev/null" {
		path = os.DevNull
	}

	return defaultOpenHandler(ctx, path, flag, perm)
}

// Run parses cmdline and executes it with dir as the working directory. The returned output is complete even if
// the command failed.
func (s *ShellRunner) Run(ctx context.Context, dir, name, cmdline string) (string, error) {
	parser := syntax.NewParser()
	script, err := parser.Parse(strings.NewReader(cmdline), name)
	if err != nil {
		return "", eris.Wrapf(err, "failed to parse command %s", cmdline)
	}

	output := new(combinedOutput)
	runner, err := interp.New(
		interp.Dir(dir),
		interp.Env(expand.ListEnviron(append(os.Environ(), s.Env...)...)),
		interp.OpenHandler(openHandler),
		interp.StdIO(nil, output, output),
		interp.Params("-e"),
	)
	if err != nil {
		return "", eris.Wrap(err, "Failed to initialize runner")
	}

	err = runner.Run(ctx, script)
	if err != nil {
		var status interp.ExitStatus
		if eris.As(err, &status) {
			return output.String(), eris.Wrapf(ErrCommandFailed, "%s exited with status %d", name, uint8(status))
		}

		return output.String(), eris.Wrapf(err, "failed to run %s", name)
	}

	return output.String(), nil
}
