// Package paths normalizes path spellings so unrelated spellings of the same
// location compare equal. Every path comparison in the resolver and codemodel
// layers goes through Canonicalize first; raw strings are never compared.
package paths

import (
	"path/filepath"
	"strings"
)

// Canonicalize resolves path against root and returns an absolute, cleaned,
// forward-slash form. Relative inputs are anchored at root. An empty or
// unresolvable input falls back to the canonical root itself; the function
// never fails.
func Canonicalize(path, root string) string {
	canonRoot := canonicalRoot(root)

	path = strings.TrimSpace(path)
	if path == "" {
		return canonRoot
	}

	if !filepath.IsAbs(filepath.FromSlash(path)) {
		path = filepath.Join(filepath.FromSlash(canonRoot), filepath.FromSlash(path))
	}

	return filepath.ToSlash(filepath.Clean(filepath.FromSlash(path)))
}

// Dir returns the canonical directory containing a canonical path.
func Dir(path string) string {
	return filepath.ToSlash(filepath.Dir(filepath.FromSlash(path)))
}

// Within reports whether child equals parent or is nested beneath it.
// Both arguments must already be canonical.
func Within(child, parent string) bool {
	if child == parent {
		return true
	}
	if !strings.HasSuffix(parent, "/") {
		parent += "/"
	}
	return strings.HasPrefix(child, parent)
}

func canonicalRoot(root string) string {
	root = strings.TrimSpace(root)
	if root == "" {
		root = "."
	}
	if !filepath.IsAbs(filepath.FromSlash(root)) {
		abs, err := filepath.Abs(filepath.FromSlash(root))
		if err == nil {
			root = abs
		}
	}
	return filepath.ToSlash(filepath.Clean(filepath.FromSlash(root)))
}
