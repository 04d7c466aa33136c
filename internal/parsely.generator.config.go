package internal

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// GeneratorConfig holds parsegen settings, read from .parsegen.yaml
type GeneratorConfig struct {
	// OutputSuffix is appended to the package name to form the output file name.
	OutputSuffix string `yaml:"output_suffix"`
	// ImportPath is the import path of the parsely runtime.
	ImportPath string `yaml:"import_path"`
	// Jobs bounds how many packages are generated concurrently.
	Jobs int `yaml:"jobs"`
	// BuildTags, if set, is emitted as a //go:build constraint.
	BuildTags string `yaml:"build_tags"`
	// Header is extra comment text placed below the generated-code marker.
	Header string `yaml:"header"`
}

// DefaultGeneratorConfig returns the default generator configuration
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		OutputSuffix: DefaultOutputSuffix,
		ImportPath:   DefaultImportPath,
		Jobs:         DefaultJobs,
	}
}

// Validate checks the configuration
func (c GeneratorConfig) Validate() error {
	switch {
	case !strings.HasSuffix(c.OutputSuffix, GoFileSuffix):
		return NewConfigError(ErrMsgConfigInvalid, "output_suffix", nil)
	case c.ImportPath == "":
		return NewConfigError(ErrMsgConfigInvalid, "import_path", nil)
	case c.Jobs < 1:
		return NewConfigError(ErrMsgConfigInvalid, "jobs", nil)
	}
	return nil
}

// LoadGeneratorConfig reads path over the defaults. A missing file yields
// the defaults when optional is true.
func LoadGeneratorConfig(path string, optional bool, logger *zap.Logger) (GeneratorConfig, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg := DefaultGeneratorConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, fs.ErrNotExist) {
			logger.Debug(LogMsgConfigDefault, zap.String(LogFieldPath, path))
			return cfg, nil
		}
		return cfg, NewConfigError(ErrMsgConfigRead, path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, NewConfigError(ErrMsgConfigParse, path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	logger.Debug(LogMsgConfigLoaded, zap.String(LogFieldPath, path))
	return cfg, nil
}
