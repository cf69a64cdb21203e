package config

import (
	"fmt"
	"strings"

	kdl "github.com/sblinch/kdl-go"
	"github.com/sblinch/kdl-go/document"
)

// parseKDL applies a .cmq.kdl document on top of cfg.
//
//	project {
//	    root "."
//	    name "my-project"
//	}
//	build {
//	    dir "out/debug"
//	    cache_file "CMakeCache.txt"
//	}
//	query {
//	    max_wildcard_results 200
//	    exclude_sources "**/generated/**" "**/.cmake/**"
//	}
func parseKDL(cfg *Config, content string) error {
	doc, err := kdl.Parse(strings.NewReader(content))
	if err != nil {
		return fmt.Errorf("failed to parse KDL config: %w", err)
	}

	for _, n := range doc.Nodes {
		switch nodeName(n) {
		case "version":
			if v, ok := firstIntArg(n); ok {
				cfg.Version = v
			}
		case "project":
			for _, cn := range n.Children {
				assignSimpleString(cn, "root", func(v string) { cfg.Project.Root = v })
				assignSimpleString(cn, "name", func(v string) { cfg.Project.Name = v })
			}
		case "build":
			for _, cn := range n.Children {
				assignSimpleString(cn, "dir", func(v string) { cfg.Build.Dir = v })
				assignSimpleString(cn, "cache_file", func(v string) { cfg.Build.CacheFile = v })
			}
		case "query":
			for _, cn := range n.Children {
				switch nodeName(cn) {
				case "max_wildcard_results":
					if v, ok := firstIntArg(cn); ok {
						cfg.Query.MaxWildcardResults = v
					}
				case "exclude_sources":
					cfg.Query.ExcludeSources = collectStringArgs(cn)
				}
			}
		}
	}
	return nil
}

// Helper functions leveraging the kdl-go document model
func nodeName(n *document.Node) string {
	if n == nil || n.Name == nil {
		return ""
	}
	return n.Name.NodeNameString()
}

func firstIntArg(n *document.Node) (int, bool) {
	if len(n.Arguments) == 0 {
		return 0, false
	}
	switch v := n.Arguments[0].Value.(type) {
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

func firstStringArg(n *document.Node) (string, bool) {
	if len(n.Arguments) == 0 {
		return "", false
	}
	if s, ok := n.Arguments[0].Value.(string); ok {
		return s, true
	}
	return "", false
}

func collectStringArgs(n *document.Node) []string {
	if n == nil {
		return nil
	}
	out := make([]string, 0, len(n.Arguments))
	for _, a := range n.Arguments {
		if s, ok := a.Value.(string); ok {
			out = append(out, s)
		}
	}

	// Block form: exclude_sources { "pattern" } puts strings in children,
	// where the node name itself is the string value.
	if len(out) == 0 && len(n.Children) > 0 {
		for _, child := range n.Children {
			if s, ok := firstStringArg(child); ok {
				out = append(out, s)
			} else if child.Name != nil {
				if s, ok := child.Name.Value.(string); ok {
					out = append(out, s)
				}
			}
		}
	}

	return out
}

func assignSimpleString(n *document.Node, target string, set func(string)) {
	if nodeName(n) == target {
		if s, ok := firstStringArg(n); ok {
			set(s)
		}
	}
}
