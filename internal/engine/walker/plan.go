package walker

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/autoload/internal/core/domain"
)

// fileJob is one source file and the settings of the folder holding it.
type fileJob struct {
	path     string
	settings domain.Settings
}

// item is one step of a walk, either an explicit binding or a file to scan.
type item struct {
	binding *domain.Binding
	file    *fileJob
}

// plan is the ordered list of steps produced by visiting the folder tree.
// Scanning may run in any order; merging follows the plan.
type plan struct {
	items []item
	diags []domain.Diagnostic
}

func (p *plan) files() []*fileJob {
	out := make([]*fileJob, 0, len(p.items))
	for _, it := range p.items {
		if it.file != nil {
			out = append(out, it.file)
		}
	}
	return out
}

func (p *plan) report(d domain.Diagnostic) {
	p.diags = append(p.diags, d)
}

// visit adds the steps for dir and its subfolders. settings are those
// inherited from the parent folder.
//
//nolint:cyclop // mirrors the folder rules one by one
func (w *Walker) visit(p *plan, dir string, settings domain.Settings) {
	if settings.IgnoresFolder(filepath.Base(dir)) {
		return
	}
	rel := w.relative(dir)

	override, err := w.overrides.Load(dir)
	if err != nil {
		p.report(domain.Diagnostic{
			Code:    domain.CodeUnreadable,
			Message: fmt.Sprintf("failed to read override file: %v", err),
			File:    rel,
		})
	}
	if override != nil {
		if override.Legacy {
			p.report(domain.Diagnostic{
				Code:    domain.CodeDeprecatedOverride,
				Message: fmt.Sprintf("rename %q to %q", domain.LegacyOverrideFileName, domain.OverrideFileName),
				File:    rel,
			})
		}
		for _, key := range override.Invalid {
			p.report(domain.Diagnostic{
				Code:    domain.CodeInvalidSetting,
				Message: fmt.Sprintf("invalid setting %q", key),
				File:    filepath.ToSlash(filepath.Join(rel, domain.OverrideFileName)),
				Context: map[string]any{"available settings": domain.SettingKeys},
			})
		}
		for _, b := range override.Bindings {
			b.File = filepath.Join(dir, b.File)
			p.items = append(p.items, item{binding: &b})
		}
		settings = override.Patch.Apply(settings)
		if settings.IgnoreAll {
			return
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		p.report(domain.Diagnostic{
			Code:    domain.CodeUnreadable,
			Message: fmt.Sprintf("failed to read folder: %v", err),
			File:    rel,
		})
		return
	}

	for _, entry := range entries {
		name := entry.Name()
		path := filepath.Join(dir, name)
		if entry.IsDir() {
			if !strings.HasPrefix(name, ".") {
				w.visit(p, path, settings)
			}
			continue
		}
		if settings.IgnoresFile(name) || name == domain.LegacyOverrideFileName {
			continue
		}
		if !strings.HasSuffix(name, domain.SourceExt) {
			if !settings.ToleratesExtension(name) {
				p.report(domain.Diagnostic{
					Code:    domain.CodeUnexpectedExtension,
					Message: fmt.Sprintf("unexpected extension, expecting %q", domain.SourceExt),
					File:    w.relative(path),
				})
			}
			continue
		}
		p.items = append(p.items, item{file: &fileJob{path: path, settings: settings}})
	}
}
