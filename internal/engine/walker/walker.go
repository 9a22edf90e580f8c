// Package walker indexes the source tree of one module into an immutable batch.
package walker

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.trai.ch/autoload/internal/core/domain"
	"go.trai.ch/autoload/internal/core/ports"
	"go.trai.ch/autoload/internal/engine/scanner"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// DefaultMemoSize is the number of scanned files kept in memory between walks.
const DefaultMemoSize = 4096

// Options configures a Walker.
type Options struct {
	// Root is the project root. Defining files below it are stored relative to it.
	Root     string
	RootType string
	// Exempt lists the class names that may omit a superclass.
	Exempt   []string
	MemoSize int
	// Jobs bounds the number of files scanned at once. Zero means one per CPU.
	Jobs int
}

// Result is the outcome of walking one module.
type Result struct {
	Batch       domain.Batch
	Diagnostics []domain.Diagnostic
	// Files is the number of source files scanned.
	Files int
}

// Walker turns a module's folder tree into a batch of declarations.
type Walker struct {
	overrides ports.OverrideLoader
	opts      Options
	memo      *lru.Cache[memoKey, scanner.Result]
}

type memoKey struct {
	path string
	sum  uint64
}

// New creates a new Walker.
func New(overrides ports.OverrideLoader, opts Options) (*Walker, error) {
	if opts.MemoSize <= 0 {
		opts.MemoSize = DefaultMemoSize
	}
	if opts.Jobs <= 0 {
		opts.Jobs = runtime.GOMAXPROCS(0)
	}
	if opts.RootType == "" {
		opts.RootType = domain.DefaultRootType
	}
	memo, err := lru.New[memoKey, scanner.Result](opts.MemoSize)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to create scan memo")
	}
	return &Walker{overrides: overrides, opts: opts, memo: memo}, nil
}

// RootSettings returns the settings in effect at the module's source folder.
func (w *Walker) RootSettings(m domain.Module) (domain.Settings, error) {
	settings := m.Settings()
	override, err := w.overrides.Load(m.SourceDir())
	if err != nil {
		return settings, err
	}
	if override != nil {
		settings = override.Patch.Apply(settings)
	}
	return settings, nil
}

// Walk indexes the module. Anomalies are returned as diagnostics; only a
// missing source folder or cancellation is an error.
func (w *Walker) Walk(ctx context.Context, m domain.Module) (*Result, error) {
	dir := m.SourceDir()
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, zerr.With(zerr.Wrap(domain.ErrModuleNotFound, "module folder is not a directory"), "path", dir)
	}

	p := &plan{}
	w.visit(p, dir, m.Settings())

	scanned, err := w.scanAll(ctx, p.files())
	if err != nil {
		return nil, err
	}

	res := &Result{Batch: domain.NewBatch(), Diagnostics: p.diags}
	idx := 0
	for _, it := range p.items {
		if it.binding != nil {
			w.bind(res, *it.binding)
			continue
		}
		w.merge(res, it.file, scanned[idx])
		idx++
	}
	res.Files = idx
	return res, nil
}

// bind records an explicit name to file mapping from an override file.
func (w *Walker) bind(res *Result, b domain.Binding) {
	res.Batch.Classes[b.Name] = domain.Entry{File: w.relative(b.File)}
	delete(res.Batch.Interfaces, b.Name)
}

func (w *Walker) relative(path string) string {
	p := domain.Project{Root: w.opts.Root}
	return filepath.ToSlash(p.RelativePath(path))
}

// fileResult is the scan of one file plus its policy findings.
type fileResult struct {
	headers []domain.Header
	diags   []domain.Diagnostic
}

func (w *Walker) scanAll(ctx context.Context, files []*fileJob) ([]fileResult, error) {
	results := make([]fileResult, len(files))
	if len(files) == 0 {
		return results, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(w.opts.Jobs, len(files)))
	for i, job := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = w.scanFile(job)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, zerr.Wrap(err, "walk cancelled")
	}
	return results, nil
}

func (w *Walker) scanFile(job *fileJob) fileResult {
	rel := w.relative(job.path)
	src, err := os.ReadFile(job.path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return fileResult{diags: []domain.Diagnostic{{
			Code:    domain.CodeUnreadable,
			Message: fmt.Sprintf("failed to read file: %v", err),
			File:    rel,
		}}}
	}

	key := memoKey{path: job.path, sum: xxhash.Sum64(src)}
	res, ok := w.memo.Get(key)
	if !ok {
		res = scanner.Scan(src, scanner.Options{RootType: w.opts.RootType})
		w.memo.Add(key, res)
	}

	out := fileResult{headers: res.Headers}
	for _, d := range res.Diagnostics {
		out.diags = append(out.diags, d.WithFile(rel))
	}
	out.diags = append(out.diags, w.policy(job, rel, src, res.Headers)...)
	return out
}

var (
	commentBlockLF   = []byte("<?php\n/**\n *")
	commentBlockCRLF = []byte("<?php\r\n/**\r\n *")
)

// policy reports the per-file checks enabled by the folder settings.
//
//nolint:cyclop // one branch per setting
func (w *Walker) policy(job *fileJob, rel string, src []byte, headers []domain.Header) []domain.Diagnostic {
	var diags []domain.Diagnostic
	s := job.settings

	if s.MandatoryCommentBlock && !bytes.HasPrefix(src, commentBlockLF) && !bytes.HasPrefix(src, commentBlockCRLF) {
		diags = append(diags, domain.Diagnostic{
			Code:    domain.CodeMissingCommentBlock,
			Message: "invalid start of file",
			File:    rel,
			Context: map[string]any{"expecting": string(commentBlockLF)},
		})
	}

	base := strings.TrimSuffix(filepath.Base(job.path), domain.SourceExt)
	for _, h := range headers {
		if h.Kind != domain.KindClass {
			continue
		}
		if s.MandatorySuperclass && len(h.Supertypes) == 0 && !h.Rooted && !slices.Contains(w.opts.Exempt, h.Name) {
			diags = append(diags, domain.Diagnostic{
				Code:    domain.CodeMissingSuperclass,
				Message: fmt.Sprintf("class %q has no superclass, \"class X extends Y\" expected", h.QualifiedName()),
				File:    rel,
				Line:    h.Line,
			})
		}
		if s.MatchingFilename && base != h.Name {
			diags = append(diags, domain.Diagnostic{
				Code:    domain.CodeFilenameMismatch,
				Message: fmt.Sprintf("filename does not match classname %q", h.Name),
				File:    rel,
				Line:    h.Line,
			})
		}
	}

	switch {
	case len(headers) == 0:
		diags = append(diags, domain.Diagnostic{
			Code:    domain.CodeNoDeclarations,
			Message: "no classes or interfaces found",
			File:    rel,
		})
	case len(headers) > 1 && s.NotifyOnMultipleDefinitionsPerFile:
		found := make([]string, 0, len(headers))
		for _, h := range headers {
			found = append(found, h.QualifiedName())
		}
		diags = append(diags, domain.Diagnostic{
			Code:    domain.CodeMultipleDefinitions,
			Message: "multiple definitions per file is not recommended",
			File:    rel,
			Context: map[string]any{"definitions": found},
		})
	}
	return diags
}

// merge adds one file's headers to the module batch, in file order.
func (w *Walker) merge(res *Result, job *fileJob, fr fileResult) {
	res.Diagnostics = append(res.Diagnostics, fr.diags...)
	rel := w.relative(job.path)

	for _, h := range fr.headers {
		name := h.QualifiedName()
		entry := domain.Entry{
			File:       rel,
			Supertypes: h.Supertypes,
			Interfaces: h.Interfaces,
			Methods:    h.Methods,
		}

		prev, exists := res.Batch.Classes[name]
		if !exists {
			prev, exists = res.Batch.Interfaces[name]
		}
		if exists {
			if d, ok := conflict(name, h, prev.File, rel, job.settings); ok {
				res.Diagnostics = append(res.Diagnostics, d)
			}
		}

		if h.Kind == domain.KindInterface {
			delete(res.Batch.Classes, name)
			res.Batch.Interfaces[name] = entry
		} else {
			delete(res.Batch.Interfaces, name)
			res.Batch.Classes[name] = entry
		}
	}
}

// conflict reports a name seen twice in one module. A repeat within the same
// file is only reported when multiple definitions are being notified.
func conflict(name string, h domain.Header, prevFile, file string, s domain.Settings) (domain.Diagnostic, bool) {
	if prevFile != file {
		return domain.Diagnostic{
			Code:    domain.CodeAmbiguousName,
			Message: fmt.Sprintf("%s %q is ambiguous, it is found in multiple files", h.Kind, name),
			File:    file,
			Line:    h.Line,
			Context: map[string]any{"previous": prevFile, "current": file},
		}, true
	}
	return domain.Diagnostic{
		Code:    domain.CodeDuplicateInFile,
		Message: fmt.Sprintf("%s %q is declared multiple times", h.Kind, name),
		File:    file,
		Line:    h.Line,
	}, s.NotifyOnMultipleDefinitionsPerFile
}
