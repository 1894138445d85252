package cmake

import (
	"io"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"github.com/ulikunitz/xz"
)

// LogPath returns the location of the compressed output log for the given phase.
func LogPath(buildPath string, phase Phase) string {
	return filepath.Join(buildPath, "logs", string(phase)+".log.xz")
}

// writePhaseLog stores the captured output of a phase as an xz compressed file.
func writePhaseLog(buildPath string, phase Phase, output string) (string, error) {
	dest := LogPath(buildPath, phase)
	err := os.MkdirAll(filepath.Dir(dest), 0770)
	if err != nil {
		return "", eris.Wrapf(err, "Failed to create directory %s", filepath.Dir(dest))
	}

	handle, err := os.Create(dest)
	if err != nil {
		return "", eris.Wrapf(err, "Failed to create file %s", dest)
	}
	defer handle.Close()

	writer, err := xz.NewWriter(handle)
	if err != nil {
		return "", eris.Wrap(err, "Failed to initialize xz writer")
	}

	_, err = io.WriteString(writer, output)
	if err != nil {
		return "", eris.Wrapf(err, "Failed to write %s", dest)
	}

	err = writer.Close()
	if err != nil {
		return "", eris.Wrapf(err, "Failed to finish %s", dest)
	}

	return dest, nil
}

// ReadPhaseLog decompresses a log written by a previous run.
func ReadPhaseLog(buildPath string, phase Phase) (string, error) {
	src := LogPath(buildPath, phase)
	handle, err := os.Open(src)
	if err != nil {
		return "", eris.Wrapf(err, "Failed to open %s", src)
	}
	defer handle.Close()

	reader, err := xz.NewReader(handle)
	if err != nil {
		return "", eris.Wrapf(err, "Failed to decode %s", src)
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return "", eris.Wrapf(err, "Failed to read %s", src)
	}

	return string(data), nil
}
