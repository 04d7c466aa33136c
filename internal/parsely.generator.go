package internal

import (
	"context"
	"go/token"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// GenerateResult reports what was produced for one package directory
type GenerateResult struct {
	Dir     string
	Package string
	Output  string // path of the generated file; empty when nothing was derived
	Source  []byte
	Types   int
}

// Generator derives parsers for annotated types, one package directory at a time
type Generator struct {
	cfg    GeneratorConfig
	logger *zap.Logger
}

// NewGenerator creates a generator
func NewGenerator(cfg GeneratorConfig, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Debug(LogMsgGeneratorCreated, zap.Int(LogFieldJobs, cfg.Jobs))
	return &Generator{cfg: cfg, logger: logger}
}

// ScanDir reads the non-test Go files of dir, excluding the generated file.
func (g *Generator) ScanDir(dir string) (*PackageSpec, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, NewGenerateError(ErrMsgReadDirFailed, token.Position{Filename: dir}, "", err)
	}
	var files []SourceFile
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, GoFileSuffix) || strings.HasSuffix(name, GoTestFileSuffix) {
			continue
		}
		if strings.HasSuffix(name, g.cfg.OutputSuffix) {
			g.logger.Debug(LogMsgFileSkipped, zap.String(LogFieldFile, name))
			continue
		}
		content, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, NewGenerateError(ErrMsgReadDirFailed, token.Position{Filename: name}, "", err)
		}
		files = append(files, SourceFile{Name: name, Content: content})
	}
	return ScanSources(dir, files, g.cfg, g.logger)
}

// GenerateDir derives the parsers of one package. With write set, the
// output file is written next to the sources.
func (g *Generator) GenerateDir(dir string, write bool) (*GenerateResult, error) {
	pkg, err := g.ScanDir(dir)
	if err != nil {
		return nil, err
	}
	result := &GenerateResult{Dir: dir, Package: pkg.Name, Types: len(pkg.Types)}
	if len(pkg.Types) == 0 {
		g.logger.Info(LogMsgNothingToDo, zap.String(LogFieldDir, dir))
		return result, nil
	}

	g.logger.Debug(LogMsgRenderStart, zap.String(LogFieldPackage, pkg.Name), zap.Int(LogFieldTypes, len(pkg.Types)))
	src, err := Render(pkg, g.cfg)
	if err != nil {
		return nil, err
	}
	result.Source = src
	result.Output = filepath.Join(dir, pkg.Name+g.cfg.OutputSuffix)

	if write {
		if err := os.WriteFile(result.Output, src, 0o644); err != nil {
			return nil, NewGenerateError(ErrMsgWriteFailed, token.Position{Filename: result.Output}, pkg.Name, err)
		}
		g.logger.Info(LogMsgFileWritten,
			zap.String(LogFieldOutput, result.Output),
			zap.Int(LogFieldTypes, result.Types),
			zap.Int(LogFieldBytes, len(src)))
	}
	return result, nil
}

// GenerateAll runs GenerateDir over dirs with at most cfg.Jobs packages in
// flight. Results keep the order of dirs. The first error cancels the rest.
func (g *Generator) GenerateAll(ctx context.Context, dirs []string, write bool) ([]*GenerateResult, error) {
	results := make([]*GenerateResult, len(dirs))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(max(1, g.cfg.Jobs))

	for i, dir := range dirs {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			g.logger.Info(LogMsgScanStart, zap.String(LogFieldDir, dir))
			res, err := g.GenerateDir(dir, write)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
