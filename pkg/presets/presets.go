// Package presets reads named sets of build options from a YAML file, e.g.
//
//	release:
//	  buildType: Release
//	  jobs: 8
//	debug-small-stack:
//	  buildDirectory: build-debug
//	  buildType: Debug
//	  stackSize: 65536
//	  defines:
//	    - ENABLE_ASAN=ON
package presets

import (
	"os"
	"sort"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/parallelbenchmark/build-tools/pkg/cmake"
)

// Preset mirrors the optional build flags.
type Preset struct {
	Desc           string   `yaml:"desc,omitempty"`
	BuildDirectory string   `yaml:"buildDirectory,omitempty"`
	Jobs           int      `yaml:"jobs,omitempty"`
	Target         string   `yaml:"target,omitempty"`
	BuildType      string   `yaml:"buildType,omitempty"`
	StackSize      int      `yaml:"stackSize,omitempty"`
	Defines        []string `yaml:"defines,omitempty"`
}

// PresetList maps preset names to their values
type PresetList map[string]Preset

// Load parses the presets file at path. A missing file yields an empty list.
func Load(path string) (PresetList, error) {
	list := PresetList{}
	data, err := os.ReadFile(path)
	if err != nil {
		if eris.Is(err, os.ErrNotExist) {
			return list, nil
		}

		return nil, eris.Wrapf(err, "Could not open file %s.", path)
	}

	err = yaml.Unmarshal(data, &list)
	if err != nil {
		return nil, eris.Wrapf(err, "Failed to parse %s.", path)
	}

	for name, preset := range list {
		if preset.Jobs < 0 || preset.StackSize < 0 {
			return nil, eris.Errorf("Preset %s contains a negative number", name)
		}
	}

	return list, nil
}

// Names returns the sorted preset names
func (l PresetList) Names() []string {
	names := make([]string, 0, len(l))
	for name := range l {
		names = append(names, name)
	}

	sort.Strings(names)
	return names
}

// Get looks up a preset by name
func (l PresetList) Get(name string) (Preset, error) {
	preset, ok := l[name]
	if !ok {
		return Preset{}, eris.Errorf("Preset %s not found", name)
	}

	return preset, nil
}

// Apply copies the preset's values into every option that is still unset. Defines are prepended so that
// definitions passed on the command line come last and win inside CMake.
func (p Preset) Apply(opts *cmake.Options) {
	if opts.BuildDirectory == "" {
		opts.BuildDirectory = p.BuildDirectory
	}

	if opts.Jobs == 0 {
		opts.Jobs = p.Jobs
	}

	if opts.Target == "" {
		opts.Target = p.Target
	}

	if opts.BuildType == "" {
		opts.BuildType = p.BuildType
	}

	if opts.StackSize == 0 {
		opts.StackSize = p.StackSize
	}

	if len(p.Defines) > 0 {
		opts.Defines = append(append([]string{}, p.Defines...), opts.Defines...)
	}
}
