// Package ownership maps a file path to the build target(s) that most
// plausibly own it. Three heuristic tiers run in strict priority order -
// direct source membership, include-path reachability, directory
// containment - and the first tier producing any match is final.
package ownership

import (
	"sort"

	"github.com/standardbeagle/cmq/internal/codemodel"
	"github.com/standardbeagle/cmq/internal/paths"
)

// ResultKind identifies which tier (if any) answered the query.
type ResultKind string

const (
	// Direct: exactly one target lists the file as a source.
	Direct ResultKind = "direct"
	// DirectMultiple: several targets list the file; all are equally
	// plausible owners, reported in discovery order.
	DirectMultiple ResultKind = "direct_multiple"
	// IncludeReachable: the file's directory sits under some target's
	// include search path.
	IncludeReachable ResultKind = "include_reachable"
	// DirectoryContained: the file sits under some target's source
	// directory.
	DirectoryContained ResultKind = "directory_contained"
	// Inconclusive: ownership could not be determined from the available
	// metadata. Not proof the file is unrelated to the project.
	Inconclusive ResultKind = "inconclusive"
)

// Result is the structured outcome of one ownership query.
//
//	Direct             -> Target set
//	DirectMultiple     -> Targets set
//	IncludeReachable   -> Likely optionally set, Candidates set
//	DirectoryContained -> Target set
//	Inconclusive       -> nothing set
type Result struct {
	Kind       ResultKind
	Target     *codemodel.BuildTarget
	Targets    []codemodel.BuildTarget
	Likely     *codemodel.BuildTarget
	Candidates []codemodel.BuildTarget
}

// Resolve canonicalizes query against root and evaluates the tiers over the
// catalog. Targets missing file groups, include paths, or a source directory
// are skipped by the tiers needing that data; absence of data is never an
// error.
func Resolve(query, root string, catalog codemodel.TargetCatalog) Result {
	canonQuery := paths.Canonicalize(query, root)

	if direct := directMatches(canonQuery, root, catalog); len(direct) > 0 {
		if len(direct) == 1 {
			return Result{Kind: Direct, Target: &direct[0]}
		}
		return Result{Kind: DirectMultiple, Targets: direct}
	}

	if likely, candidates, found := includeReachable(canonQuery, root, catalog); found {
		return Result{Kind: IncludeReachable, Likely: likely, Candidates: candidates}
	}

	if owner, found := directoryContained(canonQuery, root, catalog); found {
		return Result{Kind: DirectoryContained, Target: owner}
	}

	return Result{Kind: Inconclusive}
}

// directMatches returns every target listing the query path as a source of
// some file group, in discovery order.
func directMatches(canonQuery, root string, catalog codemodel.TargetCatalog) []codemodel.BuildTarget {
	var matched []codemodel.BuildTarget
	for _, target := range catalog {
		if listsSource(target, canonQuery, root) {
			matched = append(matched, target)
		}
	}
	return matched
}

func listsSource(target codemodel.BuildTarget, canonQuery, root string) bool {
	for _, group := range target.FileGroups {
		for _, source := range group.Sources {
			if paths.Canonicalize(source, root) == canonQuery {
				return true
			}
		}
	}
	return false
}

// reachableTarget records one include-path hit during tier 2.
type reachableTarget struct {
	target codemodel.BuildTarget
	// withinOwnSourceDir is true when a reaching include path lies inside
	// the target's own source directory - a strong sign the file is part
	// of that target rather than merely visible to it.
	withinOwnSourceDir bool
	canonSourceDir     string
}

// includeReachable implements tier 2. A target is reachable when the
// directory containing the query path equals or is nested beneath one of the
// target's include paths. If any reachable target's reaching include path is
// inside its own source directory, the most specific such target (longest
// source directory) becomes the likely owner and everything else reachable
// is a secondary candidate sorted by name. Otherwise all reachable targets
// are candidates with no likely owner.
func includeReachable(canonQuery, root string, catalog codemodel.TargetCatalog) (*codemodel.BuildTarget, []codemodel.BuildTarget, bool) {
	queryDir := paths.Dir(canonQuery)

	var reachable []reachableTarget
	for _, target := range catalog {
		entry, ok := reachability(target, queryDir, root)
		if ok {
			reachable = append(reachable, entry)
		}
	}
	if len(reachable) == 0 {
		return nil, nil, false
	}

	likelyIdx := -1
	for i, r := range reachable {
		if !r.withinOwnSourceDir {
			continue
		}
		if likelyIdx < 0 || len(r.canonSourceDir) > len(reachable[likelyIdx].canonSourceDir) {
			likelyIdx = i
		}
	}

	var likely *codemodel.BuildTarget
	var candidates []codemodel.BuildTarget
	for i := range reachable {
		if i == likelyIdx {
			likely = &reachable[i].target
			continue
		}
		candidates = append(candidates, reachable[i].target)
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].Name < candidates[j].Name
	})

	return likely, candidates, true
}

func reachability(target codemodel.BuildTarget, queryDir, root string) (reachableTarget, bool) {
	entry := reachableTarget{target: target}
	if target.SourceDirectory != "" {
		entry.canonSourceDir = paths.Canonicalize(target.SourceDirectory, root)
	}

	reached := false
	for _, group := range target.FileGroups {
		for _, include := range group.IncludePaths {
			canonInclude := paths.Canonicalize(include, root)
			if !paths.Within(queryDir, canonInclude) {
				continue
			}
			reached = true
			if entry.canonSourceDir != "" && paths.Within(canonInclude, entry.canonSourceDir) {
				entry.withinOwnSourceDir = true
			}
		}
	}
	return entry, reached
}

// directoryContained implements tier 3: among targets whose source directory
// contains the query path, the longest (most specific) directory wins, with
// ties broken by target name for reproducibility.
func directoryContained(canonQuery, root string, catalog codemodel.TargetCatalog) (*codemodel.BuildTarget, bool) {
	bestIdx := -1
	bestDir := ""
	for i, target := range catalog {
		if target.SourceDirectory == "" {
			continue
		}
		canonDir := paths.Canonicalize(target.SourceDirectory, root)
		if !paths.Within(canonQuery, canonDir) {
			continue
		}
		switch {
		case bestIdx < 0,
			len(canonDir) > len(bestDir),
			len(canonDir) == len(bestDir) && target.Name < catalog[bestIdx].Name:
			bestIdx = i
			bestDir = canonDir
		}
	}
	if bestIdx < 0 {
		return nil, false
	}
	return &catalog[bestIdx], true
}
