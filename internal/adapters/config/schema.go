package config

// Projectfile represents the structure of the autoload.yaml configuration file.
type Projectfile struct {
	Version    string       `yaml:"version"`
	Root       string       `yaml:"root"`
	CacheDir   string       `yaml:"cache_dir"`
	Database   string       `yaml:"database"`
	RootType   string       `yaml:"root_type"`
	Exempt     []string     `yaml:"exempt"`
	Standalone *bool        `yaml:"standalone"`
	Cache      *bool        `yaml:"cache"`
	Builtins   []BuiltinDTO `yaml:"builtins"`
	Modules    []ModuleDTO  `yaml:"modules"`
}

// ModuleDTO represents a module entry in the configuration.
type ModuleDTO struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
}

// BuiltinDTO represents a type the runtime provides without a source file.
type BuiltinDTO struct {
	Name       string   `yaml:"name"`
	Kind       string   `yaml:"kind"`
	Extends    []string `yaml:"extends"`
	Implements []string `yaml:"implements"`
	Methods    []string `yaml:"methods"`
}
