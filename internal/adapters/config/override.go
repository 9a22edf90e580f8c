package config

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"go.trai.ch/autoload/internal/core/domain"
	"go.trai.ch/autoload/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/ini.v1"
)

var _ ports.OverrideLoader = (*OverrideLoader)(nil)

// OverrideLoader implements ports.OverrideLoader for autoloader.ini files.
type OverrideLoader struct{}

// NewOverrideLoader creates a new OverrideLoader.
func NewOverrideLoader() *OverrideLoader {
	return &OverrideLoader{}
}

// Load parses dir/autoloader.ini. Root keys patch the folder settings,
// sections bind a type name to a file relative to dir.
func (l *OverrideLoader) Load(dir string) (*domain.Override, error) {
	legacy := exists(filepath.Join(dir, domain.LegacyOverrideFileName))
	path := filepath.Join(dir, domain.OverrideFileName)
	if !exists(path) {
		if legacy {
			return &domain.Override{Legacy: true}, nil
		}
		return nil, nil //nolint:nilnil // absence is not an error
	}

	file, err := ini.LoadSources(ini.LoadOptions{
		UnescapeValueDoubleQuotes: true,
	}, path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(errors.Join(domain.ErrInvalidConfig, err), "failed to parse override file"), "file", path)
	}

	override := &domain.Override{Legacy: legacy}
	for _, key := range file.Section(ini.DefaultSection).Keys() {
		if !applySetting(&override.Patch, key.Name(), key.Value()) {
			override.Invalid = append(override.Invalid, key.Name())
		}
	}
	for _, section := range file.Sections() {
		if section.Name() == ini.DefaultSection {
			continue
		}
		filename := section.Key("filename").String()
		if filename == "" {
			override.Invalid = append(override.Invalid, section.Name())
			continue
		}
		override.Bindings = append(override.Bindings, domain.Binding{
			Name: section.Name(),
			File: filepath.FromSlash(filename),
		})
	}
	return override, nil
}

// applySetting sets one recognized key on the patch. It reports false for
// unknown keys and for values that do not fit the key.
//
//nolint:cyclop // one case per setting
func applySetting(p *domain.SettingsPatch, key, value string) bool {
	switch key {
	case "mandatory_superclass":
		return setBool(&p.MandatorySuperclass, value)
	case "matching_filename":
		return setBool(&p.MatchingFilename, value)
	case "mandatory_comment_block":
		return setBool(&p.MandatoryCommentBlock, value)
	case "notify_on_multiple_definitions_per_file":
		return setBool(&p.NotifyOnMultipleDefinitionsPerFile, value)
	case "ignore_all":
		return setBool(&p.IgnoreAll, value)
	case "revalidate_cache_delay":
		delay, ok := parseDelay(value)
		if ok {
			p.RevalidateCacheDelay = &delay
		}
		return ok
	case "ignore_folders":
		list := splitList(value)
		p.IgnoreFolders = &list
		return true
	case "ignore_files":
		list := splitList(value)
		p.IgnoreFiles = &list
		return true
	case "ignore_extensions":
		if all, ok := parseBool(value); ok {
			p.TolerateAllExtensions = &all
			if !all {
				none := []string{}
				p.TolerateExtensions = &none
			}
			return true
		}
		no := false
		list := splitList(value)
		p.TolerateAllExtensions = &no
		p.TolerateExtensions = &list
		return true
	default:
		return false
	}
}

func setBool(dst **bool, value string) bool {
	b, ok := parseBool(value)
	if ok {
		*dst = &b
	}
	return ok
}

// parseBool accepts the boolean spellings of ini files. An empty value is false.
func parseBool(value string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "on", "yes":
		return true, true
	case "", "0", "false", "off", "no", "none":
		return false, true
	default:
		return false, false
	}
}

// parseDelay reads a delay in seconds. A false value disables revalidation.
func parseDelay(value string) (time.Duration, bool) {
	if seconds, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
		if seconds < 0 {
			return 0, false
		}
		return time.Duration(seconds) * time.Second, true
	}
	if b, ok := parseBool(value); ok && !b {
		return 0, true
	}
	return 0, false
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return slices.Clip(out)
}

func exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
