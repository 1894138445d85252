// Package compiledb merges compile_commands.json files produced by several CMake build directories.
package compiledb

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
)

// Entry is a single compile_commands.json record. Unknown keys are kept as-is.
type Entry map[string]interface{}

// Merge concatenates the entries of all inputs and writes them to output. Assumes that only absolute paths are
// used.
func Merge(output string, inputs ...string) (int, error) {
	if len(inputs) == 0 {
		return 0, eris.New("No input files given")
	}

	result := make([]Entry, 0)
	for _, fpath := range inputs {
		data, err := os.ReadFile(fpath)
		if err != nil {
			return 0, eris.Wrapf(err, "failed to read %s", fpath)
		}

		var chunk []Entry
		err = json.Unmarshal(data, &chunk)
		if err != nil {
			return 0, eris.Wrapf(err, "failed to decode %s", fpath)
		}

		result = append(result, chunk...)
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return 0, eris.Wrap(err, "failed to encode output")
	}

	err = os.WriteFile(output, data, 0660)
	if err != nil {
		return 0, eris.Wrapf(err, "failed to write to %s", output)
	}

	return len(result), nil
}
