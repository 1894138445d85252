package cmake

import (
	"context"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type shellCall struct {
	dir     string
	name    string
	cmdline string
}

type fakeShell struct {
	calls   []shellCall
	outputs map[string]string
	fail    map[string]bool
}

func (s *fakeShell) Run(ctx context.Context, dir, name, cmdline string) (string, error) {
	s.calls = append(s.calls, shellCall{dir: dir, name: name, cmdline: cmdline})
	if s.fail[name] {
		return s.outputs[name], eris.Wrapf(ErrCommandFailed, "%s exited with status %d", name, 1)
	}

	return s.outputs[name], nil
}

func testContext(t *testing.T) context.Context {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	return WithLogger(context.Background(), &logger)
}

func testOptions(t *testing.T) Options {
	return Options{ProjectRoot: t.TempDir(), Platform: "linux"}
}

func TestMainRunsBothPhases(t *testing.T) {
	shell := &fakeShell{}
	opts := testOptions(t)
	opts.Jobs = 3

	code := Main(testContext(t), &Invoker{Shell: shell}, opts)

	assert.Equal(t, 0, code)
	require.Len(t, shell.calls, 2)
	assert.Equal(t, "configure", shell.calls[0].name)
	assert.Equal(t, "build", shell.calls[1].name)
	assert.Equal(t, opts.ProjectRoot, shell.calls[0].dir)
	assert.Equal(t, opts.ProjectRoot, shell.calls[1].dir)
	assert.Contains(t, shell.calls[1].cmdline, "--parallel 3")
}

func TestConfigureFailureSkipsBuild(t *testing.T) {
	shell := &fakeShell{fail: map[string]bool{"configure": true}}

	code := Main(testContext(t), &Invoker{Shell: shell}, testOptions(t))

	assert.Equal(t, -1, code)
	require.Len(t, shell.calls, 1)
	assert.Equal(t, "configure", shell.calls[0].name)
}

func TestBuildFailure(t *testing.T) {
	shell := &fakeShell{fail: map[string]bool{"build": true}}

	code := Main(testContext(t), &Invoker{Shell: shell}, testOptions(t))

	assert.Equal(t, -1, code)
	assert.Len(t, shell.calls, 2)
}

func TestBuildReturnsCommandFailed(t *testing.T) {
	shell := &fakeShell{fail: map[string]bool{"build": true}}

	err := (&Invoker{Shell: shell}).Build(testContext(t), testOptions(t))

	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrCommandFailed))
}

func TestInvalidOptionsRunNothing(t *testing.T) {
	shell := &fakeShell{}
	opts := testOptions(t)
	opts.Jobs = -2

	assert.Equal(t, -1, Main(testContext(t), &Invoker{Shell: shell}, opts))
	assert.Empty(t, shell.calls)
}

func TestMissingProjectRoot(t *testing.T) {
	shell := &fakeShell{}
	opts := Options{ProjectRoot: "/definitely/not/here"}

	assert.Equal(t, -1, Main(testContext(t), &Invoker{Shell: shell}, opts))
	assert.Empty(t, shell.calls)
}

func TestDryRun(t *testing.T) {
	shell := &fakeShell{}
	opts := testOptions(t)
	opts.DryRun = true

	assert.Equal(t, 0, Main(testContext(t), &Invoker{Shell: shell}, opts))
	assert.Empty(t, shell.calls)
}

func TestCancelledContext(t *testing.T) {
	shell := &fakeShell{}
	ctx, cancel := context.WithCancel(testContext(t))
	cancel()

	err := (&Invoker{Shell: shell}).Build(ctx, testOptions(t))

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, shell.calls)
}

func TestSaveLogs(t *testing.T) {
	shell := &fakeShell{
		outputs: map[string]string{
			"configure": "-- Configuring done\n",
			"build":     "error: undefined reference\n",
		},
		fail: map[string]bool{"build": true},
	}
	opts := testOptions(t)
	opts.SaveLogs = true

	assert.Equal(t, -1, Main(testContext(t), &Invoker{Shell: shell}, opts))

	buildPath := opts.WithDefaults().BuildPath()
	configureLog, err := ReadPhaseLog(buildPath, PhaseConfigure)
	require.NoError(t, err)
	assert.Equal(t, "-- Configuring done\n", configureLog)

	buildLog, err := ReadPhaseLog(buildPath, PhaseBuild)
	require.NoError(t, err)
	assert.Equal(t, "error: undefined reference\n", buildLog)
}
