package pkg

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindProjectRootPrefersCMakeLists(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "bench", "tools", "build-tools")
	require.NoError(t, os.MkdirAll(nested, 0770))
	require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0770))
	require.NoError(t, os.WriteFile(filepath.Join(root, "bench", "CMakeLists.txt"), nil, 0660))

	found, err := FindProjectRoot(nested)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "bench"), found)
}

func TestFindProjectRootFallsBackToGit(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "scripts")
	require.NoError(t, os.MkdirAll(nested, 0770))
	require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0770))

	found, err := FindProjectRoot(nested)
	require.NoError(t, err)
	assert.Equal(t, root, found)
}

func touch(t *testing.T, path string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0770))
	require.NoError(t, os.WriteFile(path, nil, 0660))
}

func TestFindProjectRootSkipsSubprojects(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0770))
	touch(t, filepath.Join(root, "CMakeLists.txt"))
	touch(t, filepath.Join(root, "tools", "CMakeLists.txt"))
	touch(t, filepath.Join(root, "src", "kernels", "CMakeLists.txt"))

	start := filepath.Join(root, "tools", "build-tools", "pkg")
	require.NoError(t, os.MkdirAll(start, 0770))

	found, err := FindProjectRoot(start)
	require.NoError(t, err)
	assert.Equal(t, root, found)

	// src has no CMakeLists.txt of its own
	found, err = FindProjectRoot(filepath.Join(root, "src", "kernels"))
	require.NoError(t, err)
	assert.Equal(t, root, found)
}

func TestFindProjectRootWithoutRepository(t *testing.T) {
	parent := t.TempDir()
	root := filepath.Join(parent, "bench")
	touch(t, filepath.Join(root, "CMakeLists.txt"))
	touch(t, filepath.Join(root, "tools", "CMakeLists.txt"))

	found, err := FindProjectRoot(filepath.Join(root, "tools"))
	require.NoError(t, err)
	assert.Equal(t, root, found)
}

func TestPrintSubtask(t *testing.T) {
	var out bytes.Buffer
	PrintSubtask(&out, "Running build")

	assert.Contains(t, out.String(), "->")
	assert.Contains(t, out.String(), "Running build")
}
