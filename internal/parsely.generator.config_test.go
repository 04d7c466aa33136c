package internal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoadGeneratorConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultConfigFile)
	require.NoError(t, os.WriteFile(path, []byte(heredoc.Doc(`
		output_suffix: _gen.go
		jobs: 2
		build_tags: "!wasm"
		header: |
		  Grammar for the crane puzzle.
		  Regenerate with go generate.
	`)), 0o644))

	cfg, err := LoadGeneratorConfig(path, false, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, "_gen.go", cfg.OutputSuffix)
	assert.Equal(t, 2, cfg.Jobs)
	assert.Equal(t, "!wasm", cfg.BuildTags)
	assert.Equal(t, "Grammar for the crane puzzle.\nRegenerate with go generate.\n", cfg.Header)
	// unset fields keep their defaults
	assert.Equal(t, DefaultImportPath, cfg.ImportPath)
}

func TestLoadGeneratorConfig_Missing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.yaml")

	cfg, err := LoadGeneratorConfig(path, true, nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultGeneratorConfig(), cfg)

	_, err = LoadGeneratorConfig(path, false, nil)
	require.Error(t, err)
	assert.Equal(t, CategoryConfig, CategoryOf(err))
}

func TestLoadGeneratorConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		msg     string
	}{
		{name: "malformed yaml", content: "jobs: [", msg: ErrMsgConfigParse},
		{name: "bad suffix", content: "output_suffix: _gen.txt", msg: ErrMsgConfigInvalid},
		{name: "zero jobs", content: "jobs: 0", msg: ErrMsgConfigInvalid},
		{name: "empty import path", content: `import_path: ""`, msg: ErrMsgConfigInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), DefaultConfigFile)
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			_, err := LoadGeneratorConfig(path, false, nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestDefaultGeneratorConfig(t *testing.T) {
	cfg := DefaultGeneratorConfig()
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, DefaultOutputSuffix, cfg.OutputSuffix)
	assert.Equal(t, DefaultJobs, cfg.Jobs)
}
