// Package mcp exposes cmq's project queries as MCP tools over stdio.
// Handlers acquire a fresh snapshot (cache text, target catalog) per call
// and hand plain values to the core packages; nothing is cached between
// calls.
package mcp

import (
	"context"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/standardbeagle/cmq/internal/cachefile"
	"github.com/standardbeagle/cmq/internal/codemodel"
	"github.com/standardbeagle/cmq/internal/config"
	"github.com/standardbeagle/cmq/internal/debug"
	"github.com/standardbeagle/cmq/internal/fileapi"
	"github.com/standardbeagle/cmq/internal/version"
)

// Server wraps an MCP server around one project configuration.
type Server struct {
	cfg    *config.Config
	server *mcp.Server
}

// NewServer creates the MCP server and registers all tools.
func NewServer(cfg *config.Config) *Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "cmq-mcp-server",
		Version: version.Version,
	}, nil)

	s := &Server{cfg: cfg, server: server}
	s.registerTools()
	return s
}

// Run serves MCP over stdio until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// loadSnapshot reads and parses the cache fresh for one query.
func (s *Server) loadSnapshot() (cachefile.Snapshot, error) {
	text, err := fileapi.LoadCache(s.cfg.CachePath())
	if err != nil {
		return nil, err
	}
	snapshot := cachefile.Parse(text)
	debug.LogCache("parsed %d entries from %s\n", len(snapshot), s.cfg.CachePath())
	return snapshot, nil
}

// loadCatalog reads the file-api reply fresh for one query.
func (s *Server) loadCatalog(ctx context.Context) (codemodel.TargetCatalog, error) {
	model, err := fileapi.LoadCodemodel(ctx, s.cfg.BuildDir(), s.cfg.Query.ExcludeSources)
	if err != nil {
		return nil, err
	}
	return model.Flatten(), nil
}

func (s *Server) registerTools() {
	s.server.AddTool(&mcp.Tool{
		Name:        "cache_variable",
		Description: "Look up CMake cache variables by name. Exact names return the variable; near-miss names return the closest known name; patterns with * expand to all matching variables.",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"name": {
					Type:        "string",
					Description: "Variable name (e.g. CMAKE_BUILD_TYPE) or wildcard pattern (e.g. MY_CUSTOM_*)",
				},
			},
			Required: []string{"name"},
		},
	}, s.handleCacheVariable)

	s.server.AddTool(&mcp.Tool{
		Name:        "list_targets",
		Description: "List all build targets from the CMake file-api reply: name, kind, source directory, sources and artifacts. One entry per target per configuration.",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"kind": {
					Type:        "string",
					Description: "Only list targets of this kind (e.g. EXECUTABLE, STATIC_LIBRARY)",
				},
			},
		},
	}, s.handleListTargets)

	s.server.AddTool(&mcp.Tool{
		Name:        "file_owner",
		Description: "Determine which build target(s) own a source file. Checks direct source membership first, then include-path reachability, then source-directory containment.",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"path": {
					Type:        "string",
					Description: "File path, absolute or relative to the project root",
				},
			},
			Required: []string{"path"},
		},
	}, s.handleFileOwner)

	s.server.AddTool(&mcp.Tool{
		Name:        "status",
		Description: "Report project snapshot status: build directory, cache variable count and fingerprint, target count.",
		InputSchema: &jsonschema.Schema{
			Type: "object",
		},
	}, s.handleStatus)
}
