// Package fileapi reads a CMake build directory: the CMakeCache.txt text and
// the file-api codemodel-v2 reply. It is the boundary layer that acquires
// snapshots; the core packages (cachefile, namematch, ownership) only ever
// see the in-memory values produced here.
package fileapi

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"

	"github.com/standardbeagle/cmq/internal/codemodel"
	"github.com/standardbeagle/cmq/internal/debug"
	cmqerrors "github.com/standardbeagle/cmq/internal/errors"
)

// targetLoadWorkers bounds concurrent per-target JSON reads.
const targetLoadWorkers = 8

// LoadCache reads the raw cache text from cachePath. A missing build
// directory or cache file is a snapshot precondition failure, distinct from
// a cache that parses to zero entries.
func LoadCache(cachePath string) (string, error) {
	buildDir := filepath.Dir(cachePath)
	if _, err := os.Stat(buildDir); err != nil {
		return "", cmqerrors.NewSnapshotError(cmqerrors.ErrorTypeNoBuildDir, buildDir, err)
	}

	content, err := os.ReadFile(cachePath)
	if err != nil {
		return "", cmqerrors.NewSnapshotError(cmqerrors.ErrorTypeNoCache, buildDir, err)
	}
	return string(content), nil
}

// WriteQuery drops a codemodel-v2 query file into the build directory so the
// next CMake configure run produces a file-api reply. Running configure is
// the caller's business.
func WriteQuery(buildDir string) error {
	queryDir := filepath.Join(buildDir, ".cmake", "api", "v1", "query")
	if err := os.MkdirAll(queryDir, 0755); err != nil {
		return fmt.Errorf("failed to create file-api query directory: %w", err)
	}
	queryFile := filepath.Join(queryDir, "codemodel-v2")
	if err := os.WriteFile(queryFile, nil, 0644); err != nil {
		return fmt.Errorf("failed to write file-api query: %w", err)
	}
	return nil
}

// LoadCodemodel parses the file-api reply under buildDir into a Codemodel.
// Source files matching an excludeSources glob are dropped from the file
// groups before the model is returned. Per-target JSON files load
// concurrently.
func LoadCodemodel(ctx context.Context, buildDir string, excludeSources []string) (*codemodel.Codemodel, error) {
	replyDir := filepath.Join(buildDir, ".cmake", "api", "v1", "reply")

	indexPath, err := latestIndexFile(buildDir, replyDir)
	if err != nil {
		return nil, err
	}

	codemodelFile, err := codemodelFileFromIndex(indexPath)
	if err != nil {
		return nil, cmqerrors.NewSnapshotError(cmqerrors.ErrorTypeNoCodemodel, buildDir, err)
	}

	var cm cmCodemodel
	if err := readJSON(filepath.Join(replyDir, codemodelFile), &cm); err != nil {
		return nil, cmqerrors.NewSnapshotError(cmqerrors.ErrorTypeNoCodemodel, buildDir, err)
	}

	model := &codemodel.Codemodel{}
	for _, cfg := range cm.Configurations {
		configuration, err := loadConfiguration(ctx, replyDir, cfg, excludeSources)
		if err != nil {
			return nil, err
		}
		model.Configurations = append(model.Configurations, configuration)
	}

	debug.LogFileAPI("loaded codemodel: %d configuration(s) from %s\n",
		len(model.Configurations), indexPath)
	return model, nil
}

// latestIndexFile finds the newest index-*.json in the reply directory.
// CMake names index files so the lexicographically greatest is the latest.
func latestIndexFile(buildDir, replyDir string) (string, error) {
	if _, err := os.Stat(replyDir); err != nil {
		return "", cmqerrors.NewSnapshotError(cmqerrors.ErrorTypeNoCodemodel, buildDir, err)
	}

	matches, err := filepath.Glob(filepath.Join(replyDir, "index-*.json"))
	if err == nil && len(matches) == 0 {
		err = fmt.Errorf("no index-*.json in %s", replyDir)
	}
	if err != nil {
		return "", cmqerrors.NewSnapshotError(cmqerrors.ErrorTypeNoCodemodel, buildDir, err)
	}

	sort.Strings(matches)
	return matches[len(matches)-1], nil
}

func codemodelFileFromIndex(indexPath string) (string, error) {
	var index replyIndex
	if err := readJSON(indexPath, &index); err != nil {
		return "", err
	}
	for _, obj := range index.Objects {
		if obj.Kind == "codemodel" && obj.Version.Major == 2 {
			return obj.JSONFile, nil
		}
	}
	return "", fmt.Errorf("reply index %s has no codemodel-v2 object", indexPath)
}

// loadConfiguration reads every target JSON of one configuration and groups
// the targets under their projects in reply order.
func loadConfiguration(ctx context.Context, replyDir string, cfg cmConfiguration, excludeSources []string) (codemodel.Configuration, error) {
	targets := make([]codemodel.BuildTarget, len(cfg.Targets))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(targetLoadWorkers)
	for i, ref := range cfg.Targets {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			target, err := loadTarget(filepath.Join(replyDir, ref.JSONFile), excludeSources)
			if err != nil {
				return err
			}
			targets[i] = target
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return codemodel.Configuration{}, err
	}

	configuration := codemodel.Configuration{Name: cfg.Name}
	for pi, proj := range cfg.Projects {
		project := codemodel.Project{Name: proj.Name}
		for i, ref := range cfg.Targets {
			if ref.ProjectIndex == pi {
				project.Targets = append(project.Targets, targets[i])
			}
		}
		configuration.Projects = append(configuration.Projects, project)
	}
	return configuration, nil
}

// loadTarget parses one per-target reply file. Compile groups become file
// groups; sources outside every compile group (typically headers) land in a
// trailing group of their own so direct-membership queries still see them.
func loadTarget(path string, excludeSources []string) (codemodel.BuildTarget, error) {
	var ct cmTarget
	if err := readJSON(path, &ct); err != nil {
		return codemodel.BuildTarget{}, fmt.Errorf("failed to read target reply %s: %w", path, err)
	}

	target := codemodel.BuildTarget{
		Name:            ct.Name,
		Kind:            targetKind(ct.Type),
		SourceDirectory: ct.Paths.Source,
	}
	for _, artifact := range ct.Artifacts {
		target.Artifacts = append(target.Artifacts, artifact.Path)
	}

	grouped := make(map[int]bool, len(ct.Sources))
	for _, cg := range ct.CompileGroups {
		group := codemodel.FileGroup{Language: cg.Language}
		for _, inc := range cg.Includes {
			group.IncludePaths = append(group.IncludePaths, inc.Path)
		}
		for _, si := range cg.SourceIndexes {
			if si < 0 || si >= len(ct.Sources) {
				continue
			}
			grouped[si] = true
			if source := ct.Sources[si].Path; !excluded(source, excludeSources) {
				group.Sources = append(group.Sources, source)
			}
		}
		target.FileGroups = append(target.FileGroups, group)
	}

	var residual codemodel.FileGroup
	for si, source := range ct.Sources {
		if grouped[si] || excluded(source.Path, excludeSources) {
			continue
		}
		residual.Sources = append(residual.Sources, source.Path)
	}
	if len(residual.Sources) > 0 {
		target.FileGroups = append(target.FileGroups, residual)
	}

	return target, nil
}

func excluded(source string, patterns []string) bool {
	for _, pattern := range patterns {
		if ok, err := doublestar.Match(pattern, filepath.ToSlash(source)); err == nil && ok {
			return true
		}
	}
	return false
}

func targetKind(raw string) codemodel.TargetKind {
	switch codemodel.TargetKind(raw) {
	case codemodel.KindExecutable, codemodel.KindStaticLibrary, codemodel.KindSharedLibrary,
		codemodel.KindModuleLibrary, codemodel.KindObjectLibrary, codemodel.KindInterfaceLibrary,
		codemodel.KindUtility:
		return codemodel.TargetKind(raw)
	default:
		return codemodel.KindUnknown
	}
}

func readJSON(path string, v interface{}) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(content, v)
}
