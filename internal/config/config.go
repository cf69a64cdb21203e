package config

import (
	"os"
	"path/filepath"
	"strings"
)

// Config is the full cmq configuration. Values come from .cmq.kdl (or the
// .cmq.toml fallback) merged with CLI flag overrides applied by the caller.
type Config struct {
	Version int
	Project Project
	Build   Build
	Query   Query
}

type Project struct {
	Root string
	Name string
}

type Build struct {
	// Dir is the CMake build directory, absolute or relative to Project.Root
	Dir string
	// CacheFile is the cache file name inside Dir
	CacheFile string
}

type Query struct {
	// MaxWildcardResults caps how many names a * pattern may expand to
	MaxWildcardResults int
	// ExcludeSources drops matching source files from the target catalog
	// before ownership resolution (doublestar glob patterns, e.g.
	// "**/generated/**")
	ExcludeSources []string
}

// Default returns the built-in configuration anchored at the current
// working directory.
func Default() *Config {
	root, _ := os.Getwd()
	if root == "" {
		root = "."
	}
	return &Config{
		Version: 1,
		Project: Project{Root: root},
		Build: Build{
			Dir:       "build",
			CacheFile: "CMakeCache.txt",
		},
		Query: Query{
			MaxWildcardResults: 200,
		},
	}
}

// Load reads configuration from configPath. A missing file is not an error:
// defaults are returned so cmq works in an unconfigured tree. The format is
// chosen by extension; anything that is not .toml parses as KDL.
func Load(configPath string) (*Config, error) {
	cfg := Default()

	content, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			if err := NewValidator().ValidateAndSetDefaults(cfg); err != nil {
				return nil, err
			}
			return cfg, nil
		}
		return nil, err
	}

	if strings.EqualFold(filepath.Ext(configPath), ".toml") {
		err = parseTOML(cfg, content)
	} else {
		err = parseKDL(cfg, string(content))
	}
	if err != nil {
		return nil, err
	}

	resolveRoot(cfg, filepath.Dir(configPath))

	if err := NewValidator().ValidateAndSetDefaults(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// resolveRoot anchors a relative project root at the directory containing
// the config file so the loaded config behaves the same from any cwd.
func resolveRoot(cfg *Config, configDir string) {
	if cfg.Project.Root == "" {
		if abs, err := filepath.Abs(configDir); err == nil {
			cfg.Project.Root = abs
		} else {
			cfg.Project.Root = configDir
		}
		return
	}
	if !filepath.IsAbs(cfg.Project.Root) {
		cfg.Project.Root = filepath.Clean(filepath.Join(configDir, cfg.Project.Root))
	}
}

// BuildDir returns the absolute build directory.
func (c *Config) BuildDir() string {
	if filepath.IsAbs(c.Build.Dir) {
		return c.Build.Dir
	}
	return filepath.Join(c.Project.Root, c.Build.Dir)
}

// CachePath returns the absolute path of the cache file.
func (c *Config) CachePath() string {
	return filepath.Join(c.BuildDir(), c.Build.CacheFile)
}
