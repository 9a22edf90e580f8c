// Package config provides the project and override file loaders for autoload.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	"go.trai.ch/autoload/internal/core/domain"
	"go.trai.ch/autoload/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Environment variables that override the project file.
const (
	EnvRoot     = "AUTOLOAD_ROOT"
	EnvCacheDir = "AUTOLOAD_CACHE_DIR"
	EnvNoCache  = "AUTOLOAD_NO_CACHE"
)

var _ ports.ProjectLoader = (*Loader)(nil)

var validModuleNameRegex = regexp.MustCompile("^[a-zA-Z0-9_.-]+$")

// Loader implements ports.ProjectLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
	// Getenv reads environment overrides. Defaults to os.Getenv.
	Getenv func(string) string
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger, Getenv: os.Getenv}
}

// Load finds autoload.yaml in cwd or one of its parents and resolves it.
// cwd may also name the project file itself.
func (l *Loader) Load(cwd string) (*domain.Project, error) {
	configPath, err := l.findConfiguration(cwd)
	if err != nil {
		return nil, err
	}
	return l.loadProjectfile(configPath)
}

func (l *Loader) findConfiguration(cwd string) (string, error) {
	if info, err := os.Stat(cwd); err == nil && !info.IsDir() {
		return cwd, nil
	}

	currentDir := cwd
	for {
		candidate := filepath.Join(currentDir, domain.ProjectFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root
			break
		}
		currentDir = parentDir
	}

	return "", zerr.With(zerr.Wrap(domain.ErrConfigNotFound, "no "+domain.ProjectFileName+" found"), "cwd", cwd)
}

func (l *Loader) loadProjectfile(configPath string) (*domain.Project, error) {
	var pf Projectfile
	if err := readAndUnmarshalYAML(configPath, &pf); err != nil {
		return nil, err
	}
	l.applyEnv(&pf)

	root := resolvePath(filepath.Dir(configPath), pf.Root, ".")
	project := &domain.Project{
		Root:         root,
		CacheDir:     resolvePath(root, pf.CacheDir, domain.DefaultCacheDir),
		Database:     resolvePath(root, pf.Database, domain.DefaultDatabaseFile),
		RootType:     orDefault(pf.RootType, domain.DefaultRootType),
		Exempt:       pf.Exempt,
		Standalone:   pf.Standalone == nil || *pf.Standalone,
		CacheEnabled: pf.Cache == nil || *pf.Cache,
		Builtins:     domain.DefaultBuiltins(),
	}
	if project.Exempt == nil {
		project.Exempt = domain.DefaultExempt
	}

	for _, b := range pf.Builtins {
		info, err := buildBuiltin(b)
		if err != nil {
			return nil, zerr.With(err, "config", configPath)
		}
		project.Builtins = append(project.Builtins, info)
	}

	seen := make(map[string]bool, len(pf.Modules))
	for _, dto := range pf.Modules {
		if err := validateModule(dto, seen); err != nil {
			return nil, zerr.With(err, "config", configPath)
		}
		seen[dto.Name] = true
		project.Modules = append(project.Modules, buildModule(root, dto))
	}
	if len(project.Modules) == 0 {
		l.Logger.Warn(fmt.Sprintf("no modules configured in %s", configPath))
	}

	return project, nil
}

func (l *Loader) applyEnv(pf *Projectfile) {
	getenv := l.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	if v := getenv(EnvRoot); v != "" {
		pf.Root = v
	}
	if v := getenv(EnvCacheDir); v != "" {
		pf.CacheDir = v
	}
	if v := getenv(EnvNoCache); v != "" {
		noCache, err := strconv.ParseBool(v)
		if err != nil {
			l.Logger.Warn(fmt.Sprintf("ignoring %s=%q: not a boolean", EnvNoCache, v))
			return
		}
		enabled := !noCache
		pf.Cache = &enabled
	}
}

func validateModule(dto ModuleDTO, seen map[string]bool) error {
	if !validModuleNameRegex.MatchString(dto.Name) {
		return zerr.With(zerr.Wrap(domain.ErrInvalidConfig, "invalid module name"), "module", dto.Name)
	}
	if dto.Path == "" {
		return zerr.With(zerr.Wrap(domain.ErrInvalidConfig, "module path is required"), "module", dto.Name)
	}
	if seen[dto.Name] {
		return zerr.With(zerr.Wrap(domain.ErrInvalidConfig, "duplicate module name"), "module", dto.Name)
	}
	return nil
}

// buildModule resolves the module path and detects strict mode.
func buildModule(root string, dto ModuleDTO) domain.Module {
	m := domain.Module{
		Name: dto.Name,
		Path: resolvePath(root, dto.Path, "."),
	}
	if info, err := os.Stat(filepath.Join(m.Path, domain.StrictDirName)); err == nil && info.IsDir() {
		m.Strict = true
	}
	return m
}

func buildBuiltin(dto BuiltinDTO) (domain.TypeInfo, error) {
	if dto.Name == "" {
		return domain.TypeInfo{}, zerr.Wrap(domain.ErrInvalidConfig, "builtin type without a name")
	}
	kind := domain.KindClass
	if dto.Kind != "" {
		kind = domain.ParseKind(dto.Kind)
		if kind != domain.KindClass && kind != domain.KindInterface {
			return domain.TypeInfo{}, zerr.With(zerr.Wrap(domain.ErrInvalidConfig, "builtin kind must be class or interface"), "type", dto.Name)
		}
	}
	return domain.TypeInfo{
		Name:       dto.Name,
		Kind:       kind,
		Supertypes: dto.Extends,
		Interfaces: dto.Implements,
		Methods:    dto.Methods,
		Builtin:    true,
	}, nil
}

func resolvePath(base, configured, fallback string) string {
	if configured == "" {
		configured = fallback
	}
	if filepath.IsAbs(configured) {
		return filepath.Clean(configured)
	}
	return filepath.Clean(filepath.Join(base, configured))
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

// readAndUnmarshalYAML reads a YAML file and unmarshals it into the target struct.
func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath is validated by caller
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to read config file"), "config", configPath)
	}

	if parseErr := yaml.Unmarshal(configFile, target); parseErr != nil {
		return zerr.With(zerr.Wrap(errors.Join(domain.ErrInvalidConfig, parseErr), "failed to parse config file"), "config", configPath)
	}

	return nil
}
