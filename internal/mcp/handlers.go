package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/standardbeagle/cmq/internal/cachefile"
	"github.com/standardbeagle/cmq/internal/codemodel"
	"github.com/standardbeagle/cmq/internal/debug"
	cmqerrors "github.com/standardbeagle/cmq/internal/errors"
	"github.com/standardbeagle/cmq/internal/namematch"
	"github.com/standardbeagle/cmq/internal/ownership"
)

// CacheVariableParams are the arguments of the cache_variable tool
type CacheVariableParams struct {
	Name string `json:"name"`
}

// ListTargetsParams are the arguments of the list_targets tool
type ListTargetsParams struct {
	Kind string `json:"kind"`
}

// FileOwnerParams are the arguments of the file_owner tool
type FileOwnerParams struct {
	Path string `json:"path"`
}

// VariableEntry is one cache variable in tool output
type VariableEntry struct {
	Name          string `json:"name"`
	Type          string `json:"type"`
	Value         string `json:"value"`
	Documentation string `json:"documentation,omitempty"`
}

// CacheVariableResponse is the cache_variable tool output
type CacheVariableResponse struct {
	Found      bool            `json:"found"`
	Variable   *VariableEntry  `json:"variable,omitempty"`
	Suggestion string          `json:"suggestion,omitempty"`
	Matches    []VariableEntry `json:"matches,omitempty"`
	Truncated  bool            `json:"truncated,omitempty"`
}

// TargetEntry is one build target in tool output
type TargetEntry struct {
	Name            string   `json:"name"`
	Kind            string   `json:"kind"`
	KindDisplay     string   `json:"kind_display"`
	SourceDirectory string   `json:"source_directory,omitempty"`
	SourceCount     int      `json:"source_count"`
	Artifacts       []string `json:"artifacts,omitempty"`
}

// ListTargetsResponse is the list_targets tool output
type ListTargetsResponse struct {
	Count   int           `json:"count"`
	Targets []TargetEntry `json:"targets"`
}

// FileOwnerResponse is the file_owner tool output
type FileOwnerResponse struct {
	Path       string        `json:"path"`
	Resolution string        `json:"resolution"`
	Summary    string        `json:"summary"`
	Owner      *TargetEntry  `json:"owner,omitempty"`
	Owners     []TargetEntry `json:"owners,omitempty"`
	Likely     *TargetEntry  `json:"likely,omitempty"`
	Candidates []TargetEntry `json:"candidates,omitempty"`
}

// StatusResponse is the status tool output
type StatusResponse struct {
	ProjectName      string `json:"project_name"`
	ProjectRoot      string `json:"project_root"`
	BuildDir         string `json:"build_dir"`
	CachePresent     bool   `json:"cache_present"`
	VariableCount    int    `json:"variable_count"`
	CacheFingerprint string `json:"cache_fingerprint,omitempty"`
	CodemodelPresent bool   `json:"codemodel_present"`
	TargetCount      int    `json:"target_count"`
}

func (s *Server) handleCacheVariable(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params CacheVariableParams
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return createErrorResponse("cache_variable", fmt.Errorf("invalid parameters: %w", err))
	}
	name := strings.TrimSpace(params.Name)
	if name == "" {
		return createErrorResponse("cache_variable", fmt.Errorf("name must not be empty"))
	}

	snapshot, err := s.loadSnapshot()
	if err != nil {
		return snapshotErrorResponse("cache_variable", err)
	}
	debug.LogMCP("cache_variable %q over %d entries\n", name, len(snapshot))

	if namematch.IsPattern(name) {
		matches := namematch.Expand(name, snapshot.Names())
		response := CacheVariableResponse{Found: len(matches) > 0}
		limit := s.cfg.Query.MaxWildcardResults
		if len(matches) > limit {
			matches = matches[:limit]
			response.Truncated = true
		}
		for _, match := range matches {
			response.Matches = append(response.Matches, variableEntry(snapshot[match]))
		}
		return createJSONResponse(response)
	}

	if v, ok := snapshot[name]; ok {
		entry := variableEntry(v)
		return createJSONResponse(CacheVariableResponse{Found: true, Variable: &entry})
	}

	response := CacheVariableResponse{Found: false}
	if suggestion, ok := namematch.Nearest(name, snapshot.Names()); ok {
		response.Suggestion = suggestion
	}
	return createJSONResponse(response)
}

func (s *Server) handleListTargets(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params ListTargetsParams
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return createErrorResponse("list_targets", fmt.Errorf("invalid parameters: %w", err))
	}

	catalog, err := s.loadCatalog(ctx)
	if err != nil {
		return snapshotErrorResponse("list_targets", err)
	}

	kindFilter := strings.ToUpper(strings.TrimSpace(params.Kind))
	response := ListTargetsResponse{Targets: []TargetEntry{}}
	for _, target := range catalog {
		if kindFilter != "" && string(target.Kind) != kindFilter {
			continue
		}
		response.Targets = append(response.Targets, targetEntry(target))
	}
	response.Count = len(response.Targets)
	return createJSONResponse(response)
}

func (s *Server) handleFileOwner(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params FileOwnerParams
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return createErrorResponse("file_owner", fmt.Errorf("invalid parameters: %w", err))
	}
	if strings.TrimSpace(params.Path) == "" {
		return createErrorResponse("file_owner", fmt.Errorf("path must not be empty"))
	}

	catalog, err := s.loadCatalog(ctx)
	if err != nil {
		return snapshotErrorResponse("file_owner", err)
	}

	result := ownership.Resolve(params.Path, s.cfg.Project.Root, catalog)
	return createJSONResponse(renderOwnership(params.Path, result))
}

func (s *Server) handleStatus(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	response := StatusResponse{
		ProjectName: s.cfg.Project.Name,
		ProjectRoot: s.cfg.Project.Root,
		BuildDir:    s.cfg.BuildDir(),
	}

	if snapshot, err := s.loadSnapshot(); err == nil {
		response.CachePresent = true
		response.VariableCount = len(snapshot)
		response.CacheFingerprint = fmt.Sprintf("%016x", snapshot.Fingerprint())
	}
	if catalog, err := s.loadCatalog(ctx); err == nil {
		response.CodemodelPresent = true
		response.TargetCount = len(catalog)
	}

	return createJSONResponse(response)
}

// snapshotErrorResponse maps a snapshot precondition failure to an error
// response with a hint the model can act on.
func snapshotErrorResponse(operation string, err error) (*mcp.CallToolResult, error) {
	if typ, ok := cmqerrors.IsSnapshotError(err); ok {
		var hint string
		switch typ {
		case cmqerrors.ErrorTypeNoBuildDir:
			hint = "the configured build directory does not exist; configure the project first"
		case cmqerrors.ErrorTypeNoCache:
			hint = "no CMakeCache.txt found; run the CMake configure step"
		case cmqerrors.ErrorTypeNoCodemodel:
			hint = "no file-api reply found; run 'cmq query' and re-run the CMake configure step"
		}
		return createErrorResponse(operation, fmt.Errorf("%w (%s)", err, hint))
	}
	return createErrorResponse(operation, err)
}

func variableEntry(v cachefile.Variable) VariableEntry {
	return VariableEntry{
		Name:          v.Name,
		Type:          v.Type,
		Value:         v.Value,
		Documentation: v.Documentation,
	}
}

func targetEntry(t codemodel.BuildTarget) TargetEntry {
	entry := TargetEntry{
		Name:            t.Name,
		Kind:            string(t.Kind),
		KindDisplay:     t.Kind.Title(),
		SourceDirectory: t.SourceDirectory,
		Artifacts:       t.Artifacts,
	}
	for _, group := range t.FileGroups {
		entry.SourceCount += len(group.Sources)
	}
	return entry
}
