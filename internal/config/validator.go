package config

import (
	"fmt"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"

	cmqerrors "github.com/standardbeagle/cmq/internal/errors"
)

// Validator applies defaults and checks configuration invariants.
type Validator struct{}

// NewValidator creates a configuration validator
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateAndSetDefaults fills unset fields with defaults and rejects
// invalid values.
func (v *Validator) ValidateAndSetDefaults(cfg *Config) error {
	if cfg.Version == 0 {
		cfg.Version = 1
	}

	if cfg.Project.Root == "" {
		return cmqerrors.NewConfigError("", "project.root", fmt.Errorf("must not be empty"))
	}
	if !filepath.IsAbs(cfg.Project.Root) {
		abs, err := filepath.Abs(cfg.Project.Root)
		if err != nil {
			return cmqerrors.NewConfigError("", "project.root", err)
		}
		cfg.Project.Root = abs
	}
	if cfg.Project.Name == "" {
		cfg.Project.Name = filepath.Base(cfg.Project.Root)
	}

	if cfg.Build.Dir == "" {
		cfg.Build.Dir = "build"
	}
	if cfg.Build.CacheFile == "" {
		cfg.Build.CacheFile = "CMakeCache.txt"
	}

	if cfg.Query.MaxWildcardResults <= 0 {
		cfg.Query.MaxWildcardResults = 200
	}

	for _, pattern := range cfg.Query.ExcludeSources {
		if !doublestar.ValidatePattern(pattern) {
			return cmqerrors.NewConfigError("", "query.exclude_sources",
				fmt.Errorf("invalid glob pattern %q", pattern))
		}
	}

	return nil
}
