// Package codemodel holds the build-target model read from a CMake file-api
// reply: configurations contain projects, projects contain targets, targets
// carry source file groups. Flatten collapses the hierarchy into the ordered
// catalog the ownership resolver works over.
package codemodel

import "strings"

// TargetKind is the coarse categorical tag CMake assigns to a target.
type TargetKind string

const (
	KindExecutable       TargetKind = "EXECUTABLE"
	KindStaticLibrary    TargetKind = "STATIC_LIBRARY"
	KindSharedLibrary    TargetKind = "SHARED_LIBRARY"
	KindModuleLibrary    TargetKind = "MODULE_LIBRARY"
	KindObjectLibrary    TargetKind = "OBJECT_LIBRARY"
	KindInterfaceLibrary TargetKind = "INTERFACE_LIBRARY"
	KindUtility          TargetKind = "UTILITY"
	KindUnknown          TargetKind = "UNKNOWN"
)

// Title renders the upper-snake-case kind token for humans,
// e.g. STATIC_LIBRARY becomes "Static Library". Core comparisons always use
// the raw token; this is display only.
func (k TargetKind) Title() string {
	words := strings.Split(string(k), "_")
	for i, w := range words {
		w = strings.ToLower(w)
		if len(w) > 0 {
			w = strings.ToUpper(w[:1]) + w[1:]
		}
		words[i] = w
	}
	return strings.Join(words, " ")
}

// FileGroup is a set of source files within one target sharing a language
// and include-path configuration. Include paths are plain directory paths,
// absolute or relative to the project root.
type FileGroup struct {
	Language     string
	Sources      []string
	IncludePaths []string
}

// BuildTarget is one target in one configuration. SourceDirectory may be
// empty for targets the reply does not attribute to a directory.
type BuildTarget struct {
	Name            string
	Kind            TargetKind
	SourceDirectory string
	FileGroups      []FileGroup
	Artifacts       []string
}

// Project groups targets under a (sub)project name.
type Project struct {
	Name    string
	Targets []BuildTarget
}

// Configuration is one build configuration (Debug, Release, ...).
type Configuration struct {
	Name     string
	Projects []Project
}

// Codemodel is the full configuration/project/target hierarchy.
type Codemodel struct {
	Configurations []Configuration
}

// TargetCatalog is the flat ordered sequence of targets, one entry per
// target per configuration. The same logical target legitimately appears
// once per configuration; no deduplication happens here.
type TargetCatalog []BuildTarget

// Flatten collapses the hierarchy into a TargetCatalog, preserving each
// target's own fields and the discovery order while discarding the grouping.
// An empty or missing hierarchy yields an empty catalog.
func (c *Codemodel) Flatten() TargetCatalog {
	if c == nil {
		return nil
	}
	var catalog TargetCatalog
	for _, cfg := range c.Configurations {
		for _, proj := range cfg.Projects {
			catalog = append(catalog, proj.Targets...)
		}
	}
	return catalog
}

// Names returns the target names in catalog order, duplicates included.
func (c TargetCatalog) Names() []string {
	names := make([]string, len(c))
	for i, t := range c {
		names[i] = t.Name
	}
	return names
}
