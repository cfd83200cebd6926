// Package pipeline orchestrates formatting runs: whole-file collaborators
// first, then docstring rewriting, then write-back.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"go.uber.org/zap"

	"pydocfmt/internal/config"
	"pydocfmt/internal/docstring"
	"pydocfmt/internal/rewriter"
	"pydocfmt/internal/snippet"
	"pydocfmt/internal/storage"
)

// Pipeline formats Python files. The zero value is not usable; construct it
// with New and adjust the exported fields before the first Run.
type Pipeline struct {
	log      *zap.Logger
	schema   docstring.Schema
	rewriter *rewriter.Rewriter

	// Snippet formats fenced code examples inside docstrings.
	Snippet snippet.Formatter
	// WholeFile formatters run over the entire file, in order, before any
	// docstring work. A failure here aborts the file.
	WholeFile []snippet.Formatter
	// Cache, when non-nil, lets runs skip files whose content already matches
	// a recorded formatted state.
	Cache *storage.FormatCache
	// Check reports files that would change instead of writing them.
	Check bool
}

// Result summarizes one run.
type Result struct {
	// Changed lists files that were rewritten, or would be in check mode.
	Changed   []string
	Unchanged int
	Skipped   int
	Failed    int
}

// New builds a pipeline from configuration. The black and isort collaborators
// are wired unless the config skips them.
func New(cfg *config.Config, log *zap.Logger) (*Pipeline, error) {
	rw, err := rewriter.New()
	if err != nil {
		return nil, err
	}
	p := &Pipeline{
		log:      log,
		schema:   cfg.Schema(),
		rewriter: rw,
		Snippet:  snippet.NewBlack(cfg.Black.Path, cfg.Black.LineLength, cfg.Black.Args...),
	}
	if !cfg.Black.Skip {
		p.WholeFile = append(p.WholeFile, snippet.NewBlack(cfg.Black.Path, cfg.Black.LineLength, cfg.Black.Args...))
	}
	if !cfg.Isort.Skip {
		p.WholeFile = append(p.WholeFile, snippet.NewIsort(cfg.Isort.Path, cfg.Isort.Args...))
	}
	return p, nil
}

// Run formats every file and returns the aggregate result. Per-file failures
// are logged and counted; Run only errors when at least one file failed.
func (p *Pipeline) Run(ctx context.Context, files []string) (*Result, error) {
	res := &Result{}
	for _, file := range files {
		changed, skipped, err := p.processFile(ctx, file)
		switch {
		case err != nil:
			p.log.Error("formatting failed", zap.String("file", file), zap.Error(err))
			res.Failed++
		case skipped:
			p.log.Debug("cache hit, skipping", zap.String("file", file))
			res.Skipped++
		case changed:
			p.log.Info("formatted", zap.String("file", file), zap.Bool("check", p.Check))
			res.Changed = append(res.Changed, file)
		default:
			res.Unchanged++
		}
	}
	if res.Failed > 0 {
		return res, fmt.Errorf("%d of %d files failed", res.Failed, len(files))
	}
	return res, nil
}

func (p *Pipeline) processFile(ctx context.Context, path string) (changed, skipped bool, err error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return false, false, err
	}

	if p.Cache != nil {
		ok, err := p.Cache.IsFormatted(ctx, path, storage.Hash(content))
		if err != nil {
			p.log.Warn("cache lookup failed", zap.String("file", path), zap.Error(err))
		} else if ok {
			return false, true, nil
		}
	}

	text := string(content)
	for _, f := range p.WholeFile {
		out, err := f.Format(ctx, text)
		if errors.Is(err, snippet.ErrUnchanged) {
			continue
		}
		if err != nil {
			return false, false, fmt.Errorf("whole-file formatter: %w", err)
		}
		text = out
	}

	doc := p.docFormatter(ctx)
	rewritten, _, err := p.rewriter.Rewrite(ctx, []byte(text), doc.Format)
	if err != nil {
		return false, false, err
	}

	changed = string(rewritten) != string(content)
	if changed && !p.Check {
		if err := writeFile(path, rewritten); err != nil {
			return false, false, err
		}
	}
	if p.Cache != nil && !p.Check {
		if err := p.Cache.MarkFormatted(ctx, path, storage.Hash(rewritten)); err != nil {
			p.log.Warn("cache update failed", zap.String("file", path), zap.Error(err))
		}
	}
	return changed, false, nil
}

// docFormatter binds the run context into the core's snippet collaborator.
func (p *Pipeline) docFormatter(ctx context.Context) *docstring.Formatter {
	if p.Snippet == nil {
		return docstring.NewFormatter(p.schema, nil)
	}
	return docstring.NewFormatter(p.schema, func(src string) (string, error) {
		return p.Snippet.Format(ctx, src)
	})
}

// writeFile preserves the file's existing mode on rewrite.
func writeFile(path string, content []byte) error {
	mode := fs.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode()
	}
	return os.WriteFile(path, content, mode)
}
