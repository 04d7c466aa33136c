package internal

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// writePackage creates dir/name files and returns dir
func writePackage(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

const moveSource = `package crane

//parsely:derive
//parsely:(sep_by = " ")
type Move struct {
	//parsely:(before = "move ")
	Count uint32
	//parsely:(before = "from ")
	From uint32
	//parsely:(before = "to ")
	To uint32
}
`

func TestGenerator_GenerateDir(t *testing.T) {
	dir := writePackage(t, map[string]string{
		"move.go":          moveSource,
		"move_test.go":     "package crane\n\n//parsely:derive\ntype Ignored struct{}\n",
		"crane_parsely.go": "package crane\n\n//parsely:derive\ntype Stale struct{}\n",
		"README.md":        "not go",
	})

	gen := NewGenerator(DefaultGeneratorConfig(), zap.NewNop())
	res, err := gen.GenerateDir(dir, true)
	require.NoError(t, err)

	assert.Equal(t, "crane", res.Package)
	assert.Equal(t, 1, res.Types)
	assert.Equal(t, filepath.Join(dir, "crane_parsely.go"), res.Output)

	written, err := os.ReadFile(res.Output)
	require.NoError(t, err)
	assert.Equal(t, res.Source, written)
	assert.Contains(t, string(written), "func (Move) Parser() parsely.Parser[Move] {")
	assert.NotContains(t, string(written), "Ignored")
	assert.NotContains(t, string(written), "Stale")
}

func TestGenerator_GenerateDir_DryRun(t *testing.T) {
	dir := writePackage(t, map[string]string{"move.go": moveSource})

	res, err := NewGenerator(DefaultGeneratorConfig(), nil).GenerateDir(dir, false)
	require.NoError(t, err)
	assert.NotEmpty(t, res.Source)

	_, err = os.Stat(res.Output)
	assert.True(t, os.IsNotExist(err))
}

func TestGenerator_GenerateDir_NothingDerived(t *testing.T) {
	dir := writePackage(t, map[string]string{"plain.go": "package plain\n\ntype T struct{}\n"})

	res, err := NewGenerator(DefaultGeneratorConfig(), nil).GenerateDir(dir, true)
	require.NoError(t, err)
	assert.Empty(t, res.Output)
	assert.Zero(t, res.Types)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestGenerator_GenerateDir_CustomSuffix(t *testing.T) {
	dir := writePackage(t, map[string]string{"move.go": moveSource})
	cfg := DefaultGeneratorConfig()
	cfg.OutputSuffix = "_gen.go"

	res, err := NewGenerator(cfg, nil).GenerateDir(dir, true)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "crane_gen.go"), res.Output)
	assert.FileExists(t, res.Output)
}

func TestGenerator_GenerateDir_MissingDir(t *testing.T) {
	_, err := NewGenerator(DefaultGeneratorConfig(), nil).GenerateDir(filepath.Join(t.TempDir(), "nope"), true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgReadDirFailed)
	assert.False(t, IsDeclarationError(err))
}

func TestGenerator_GenerateAll(t *testing.T) {
	dirs := []string{
		writePackage(t, map[string]string{"move.go": moveSource}),
		writePackage(t, map[string]string{"plain.go": "package plain\n"}),
		writePackage(t, map[string]string{"unit.go": "package unit\n\n//parsely:derive\ntype Foo struct{}\n"}),
	}
	cfg := DefaultGeneratorConfig()
	cfg.Jobs = 2

	core, logs := observer.New(zap.InfoLevel)
	results, err := NewGenerator(cfg, zap.New(core)).GenerateAll(context.Background(), dirs, true)
	require.NoError(t, err)
	require.Len(t, results, 3)

	// results keep the order of the input directories
	assert.Equal(t, "crane", results[0].Package)
	assert.Equal(t, "plain", results[1].Package)
	assert.Equal(t, "unit", results[2].Package)
	assert.FileExists(t, filepath.Join(dirs[2], "unit_parsely.go"))

	assert.Equal(t, 3, logs.FilterMessage(LogMsgScanStart).Len())
	assert.Equal(t, 2, logs.FilterMessage(LogMsgFileWritten).Len())
	assert.Equal(t, 1, logs.FilterMessage(LogMsgNothingToDo).Len())
}

func TestGenerator_GenerateAll_FirstErrorWins(t *testing.T) {
	bad := writePackage(t, map[string]string{
		"bad.go": "package bad\n\n//parsely:derive\n//parsely:(bogus = \"x\")\ntype T struct{ A uint32 }\n",
	})
	good := writePackage(t, map[string]string{"move.go": moveSource})

	_, err := NewGenerator(DefaultGeneratorConfig(), nil).GenerateAll(context.Background(), []string{good, bad}, false)
	require.Error(t, err)
	assert.True(t, IsAnnotationError(err))
	assert.Contains(t, Location(err), "bad.go:4:")
}

func TestGenerator_GenerateAll_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	dir := writePackage(t, map[string]string{"move.go": moveSource})
	_, err := NewGenerator(DefaultGeneratorConfig(), nil).GenerateAll(ctx, []string{dir}, true)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGenerator_ExamplesUpToDate(t *testing.T) {
	for _, name := range []string{"basic", "crates", "packets"} {
		t.Run(name, func(t *testing.T) {
			dir := filepath.Join("..", "examples", name)
			res, err := NewGenerator(DefaultGeneratorConfig(), nil).GenerateDir(dir, false)
			require.NoError(t, err)
			require.NotEmpty(t, res.Output)

			checkedIn, err := os.ReadFile(res.Output)
			require.NoError(t, err)
			assert.Equal(t, string(res.Source), string(checkedIn), "regenerate with go generate ./examples/%s", name)
		})
	}
}
