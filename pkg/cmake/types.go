package cmake

import (
	"path/filepath"
	"runtime"
	"strings"

	"github.com/rotisserie/eris"
	"mvdan.cc/sh/v3/syntax"
)

// ToolchainPlatform is the OS on which the configure phase always pins the compilers from Toolchain.
const ToolchainPlatform = "darwin"

// Phase names one of the two steps performed by the Invoker.
type Phase string

const (
	PhaseConfigure Phase = "configure"
	PhaseBuild     Phase = "build"
)

// Toolchain holds the compilers pinned on ToolchainPlatform.
type Toolchain struct {
	C   string
	CXX string
}

// DefaultToolchain is used when no compilers were configured.
var DefaultToolchain = Toolchain{
	C:   "gcc-14",
	CXX: "g++-14",
}

// Options contains everything needed to configure and build a project. Zero values mean "not supplied".
type Options struct {
	ProjectRoot    string
	BuildDirectory string
	Jobs           int
	Target         string
	BuildType      string
	StackSize      int
	Defines        []string

	// CMake is the executable invoked by both phases.
	CMake     string
	Platform  string
	Toolchain Toolchain

	DryRun   bool
	SaveLogs bool
	Progress bool
}

// WithDefaults returns a copy of the options with every unset default filled in.
func (o Options) WithDefaults() Options {
	if o.BuildDirectory == "" && o.ProjectRoot != "" {
		o.BuildDirectory = filepath.Join(o.ProjectRoot, "build")
	}

	if o.CMake == "" {
		o.CMake = "cmake"
	}

	if o.Platform == "" {
		o.Platform = runtime.GOOS
	}

	if o.Toolchain.C == "" {
		o.Toolchain.C = DefaultToolchain.C
	}

	if o.Toolchain.CXX == "" {
		o.Toolchain.CXX = DefaultToolchain.CXX
	}

	return o
}

// Validate rejects options that can't produce a meaningful command line.
func (o Options) Validate() error {
	if o.ProjectRoot == "" {
		return eris.New("No project root set")
	}

	if o.Jobs < 0 {
		return eris.Errorf("Invalid job count %d", o.Jobs)
	}

	if o.StackSize < 0 {
		return eris.Errorf("Invalid stack size %d", o.StackSize)
	}

	for _, def := range o.Defines {
		pos := strings.Index(def, "=")
		if pos < 1 {
			return eris.Errorf("Invalid definition %q, expected KEY=VALUE", def)
		}
	}

	return nil
}

// BuildPath returns the build directory as seen from the project root.
func (o Options) BuildPath() string {
	if filepath.IsAbs(o.BuildDirectory) {
		return o.BuildDirectory
	}

	return filepath.Join(o.ProjectRoot, o.BuildDirectory)
}

// Command is an argument vector that is rendered into a shell command line.
type Command []string

func isPlainArg(arg string) bool {
	if arg == "" {
		return false
	}

	for _, r := range arg {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case strings.ContainsRune("-_./=:+,@%", r):
		default:
			return false
		}
	}

	return true
}

// Line quotes each argument as needed and joins them into a single command line.
func (c Command) Line() (string, error) {
	parts := make([]string, len(c))
	for idx, arg := range c {
		if isPlainArg(arg) {
			parts[idx] = arg
			continue
		}

		quoted, err := syntax.Quote(arg, syntax.LangPOSIX)
		if err != nil {
			return "", eris.Wrapf(err, "Failed to quote argument %q", arg)
		}

		parts[idx] = quoted
	}

	return strings.Join(parts, " "), nil
}
