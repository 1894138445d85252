package cmake

import (
	"strconv"
)

// ConfigureCommand returns the command line for the configure phase.
func ConfigureCommand(opts Options) Command {
	cmd := Command{opts.CMake, "-S", opts.ProjectRoot, "-B", opts.BuildDirectory}

	if opts.StackSize > 0 {
		cmd = append(cmd, "-DSTACK_SIZE="+strconv.Itoa(opts.StackSize))
	}

	for _, def := range opts.Defines {
		cmd = append(cmd, "-D"+def)
	}

	if opts.Platform == ToolchainPlatform {
		cmd = append(cmd,
			"-DCMAKE_C_COMPILER="+opts.Toolchain.C,
			"-DCMAKE_CXX_COMPILER="+opts.Toolchain.CXX,
		)
	}

	return cmd
}

// BuildCommand returns the command line for the build phase. --parallel is always passed; without a job count
// CMake leaves the choice to the native build tool.
func BuildCommand(opts Options) Command {
	cmd := Command{opts.CMake, "--build", opts.BuildDirectory, "--parallel"}

	if opts.Jobs > 0 {
		cmd = append(cmd, strconv.Itoa(opts.Jobs))
	}

	if opts.Target != "" {
		cmd = append(cmd, "--target", opts.Target)
	}

	if opts.BuildType != "" {
		cmd = append(cmd, "--config", opts.BuildType)
	}

	return cmd
}
