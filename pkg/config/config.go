package config

import (
	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigtoml"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

// DefaultFile is looked up in the project root when no settings file was passed.
const DefaultFile = "build-tools.toml"

// Config describes all tool settings
type Config struct {
	Log struct {
		Level string `default:"info" usage:"Minimum level for log messages (debug, info, warn or error)"`
		JSON  bool   `toml:"json" env:"JSON" default:"false" usage:"Output JSONND instead of pretty console messages"`
	}
	CMake struct {
		Binary string `default:"cmake" usage:"CMake executable used for both phases"`
	} `toml:"cmake" env:"CMAKE"`
	Toolchain struct {
		C   string `toml:"c" env:"C" default:"gcc-14" usage:"C compiler pinned on macOS"`
		CXX string `toml:"cxx" env:"CXX" default:"g++-14" usage:"C++ compiler pinned on macOS"`
	}
	PresetsFile string `toml:"presets_file" env:"PRESETS_FILE" default:"build-presets.yml" usage:"YAML file with named build presets"`
}

var logLevels = map[string]zerolog.Level{
	"debug":   zerolog.DebugLevel,
	"info":    zerolog.InfoLevel,
	"warn":    zerolog.WarnLevel,
	"warning": zerolog.WarnLevel,
	"error":   zerolog.ErrorLevel,
}

// Loader initializes an empty config object and returns a new Loader for this object. A missing settings file is
// not an error; the defaults and BUILDTOOLS_* environment variables still apply.
func Loader(file string) (*Config, *aconfig.Loader) {
	cfg := Config{}
	return &cfg, aconfig.LoaderFor(&cfg, aconfig.Config{
		EnvPrefix: "BUILDTOOLS",
		SkipFlags: true,
		// BUILDTOOLS_DEBUG is read directly by the log writer
		AllowUnknownEnvs: true,
		Files:            []string{file},
		FileDecoders: map[string]aconfig.FileDecoder{
			".toml": aconfigtoml.New(),
		},
	})
}

// Load reads the settings from file and validates them
func Load(file string) (*Config, error) {
	cfg, loader := Loader(file)
	err := loader.Load()
	if err != nil {
		return nil, eris.Wrapf(err, "Failed to load settings from %s", file)
	}

	err = cfg.Validate()
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate verifies that all config fields have valid values
func (cfg *Config) Validate() error {
	_, ok := logLevels[cfg.Log.Level]
	if !ok {
		return eris.Errorf(`Invalid value for log.level: %s`, cfg.Log.Level)
	}

	if cfg.CMake.Binary == "" {
		return eris.New(`cmake.binary can't be empty`)
	}

	return nil
}

// LogLevel converts the .Log.Level field to a zerolog.Level
func (cfg *Config) LogLevel() zerolog.Level {
	return logLevels[cfg.Log.Level]
}
