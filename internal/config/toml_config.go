package config

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"
)

// tomlConfig mirrors Config for the .cmq.toml fallback format.
type tomlConfig struct {
	Version int `toml:"version"`
	Project struct {
		Root string `toml:"root"`
		Name string `toml:"name"`
	} `toml:"project"`
	Build struct {
		Dir       string `toml:"dir"`
		CacheFile string `toml:"cache_file"`
	} `toml:"build"`
	Query struct {
		MaxWildcardResults int      `toml:"max_wildcard_results"`
		ExcludeSources     []string `toml:"exclude_sources"`
	} `toml:"query"`
}

// parseTOML applies a .cmq.toml document on top of cfg.
func parseTOML(cfg *Config, content []byte) error {
	var tc tomlConfig
	if err := toml.Unmarshal(content, &tc); err != nil {
		return fmt.Errorf("failed to parse TOML config: %w", err)
	}

	if tc.Version != 0 {
		cfg.Version = tc.Version
	}
	if tc.Project.Root != "" {
		cfg.Project.Root = tc.Project.Root
	}
	if tc.Project.Name != "" {
		cfg.Project.Name = tc.Project.Name
	}
	if tc.Build.Dir != "" {
		cfg.Build.Dir = tc.Build.Dir
	}
	if tc.Build.CacheFile != "" {
		cfg.Build.CacheFile = tc.Build.CacheFile
	}
	if tc.Query.MaxWildcardResults != 0 {
		cfg.Query.MaxWildcardResults = tc.Query.MaxWildcardResults
	}
	if len(tc.Query.ExcludeSources) > 0 {
		cfg.Query.ExcludeSources = tc.Query.ExcludeSources
	}
	return nil
}
