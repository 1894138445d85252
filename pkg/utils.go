package pkg

import (
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/mitchellh/colorstring"
	"github.com/rotisserie/eris"
)

const (
	projectMarker = "CMakeLists.txt"
	repoMarker    = ".git"
)

// GetProjectRoot returns the CMake project this tool belongs to. The search starts next to the tool's sources
// and falls back to the working directory when the binary was moved away from its checkout.
func GetProjectRoot() (string, error) {
	_, mypath, _, ok := runtime.Caller(0)
	if ok {
		if _, err := os.Stat(mypath); err == nil {
			root, err := FindProjectRoot(filepath.Dir(mypath))
			if err == nil {
				return root, nil
			}
		}
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", eris.Wrap(err, "Failed to determine the working directory")
	}

	return FindProjectRoot(wd)
}

// FindProjectRoot walks up from start and returns the top-most directory containing a CMakeLists.txt. The walk
// stops at the repository root (the first directory with a .git entry), which is also returned when no
// CMakeLists.txt was found below it. Without a repository the walk ends at the first directory above a CMake
// project that isn't part of it.
func FindProjectRoot(start string) (string, error) {
	path, err := filepath.Abs(start)
	if err != nil {
		return "", eris.Wrapf(err, "Failed to resolve %s", start)
	}

	project := ""
	for {
		hasProject, err := exists(filepath.Join(path, projectMarker))
		if err != nil {
			return "", err
		}

		if hasProject {
			project = path
		} else if project != "" && !insideRepo(path) {
			return project, nil
		}

		isRepo, err := exists(filepath.Join(path, repoMarker))
		if err != nil {
			return "", err
		}

		if isRepo {
			if project != "" {
				return project, nil
			}
			return path, nil
		}

		nextPath := filepath.Dir(path)
		if path == nextPath {
			break
		}
		path = nextPath
	}

	if project != "" {
		return project, nil
	}

	return "", eris.Errorf("Project root not found above %s", start)
}

// insideRepo reports whether path or one of its parents has a .git entry.
func insideRepo(path string) bool {
	for {
		if ok, _ := exists(filepath.Join(path, repoMarker)); ok {
			return true
		}

		nextPath := filepath.Dir(path)
		if path == nextPath {
			return false
		}
		path = nextPath
	}
}

func exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}

	if eris.Is(err, os.ErrNotExist) {
		return false, nil
	}

	return false, eris.Wrap(err, "Error ocurred while searching for project root")
}

func PrintTask(msg string) {
	colorstring.Fprintf(os.Stderr, "[blue][bold]==>[default] %s\n", msg)
}

func PrintSubtask(w io.Writer, msg string) {
	colorstring.Fprintf(w, "[green][bold]  ->[reset] %s\n", msg)
}

func PrintError(msg string) {
	colorstring.Fprintf(os.Stderr, "[red][bold]  ->[reset] %s\n", msg)
}
