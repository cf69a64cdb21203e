package mcp

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/cmq/internal/config"
)

// testServer builds a project tree with a configured build directory: a
// cache file and a file-api reply describing an executable and a library.
func testServer(t *testing.T) *Server {
	t.Helper()

	root := t.TempDir()
	buildDir := filepath.Join(root, "build")
	replyDir := filepath.Join(buildDir, ".cmake", "api", "v1", "reply")
	require.NoError(t, os.MkdirAll(replyDir, 0755))

	cacheText := "# This is the CMakeCache file.\n" +
		"//Choose the type of build.\n" +
		"CMAKE_BUILD_TYPE:STRING=Debug\n" +
		"MY_CUSTOM_BOOLEAN:BOOL=ON\n" +
		"MY_CUSTOM_PATH:PATH=/opt/widget\n" +
		"MY_CUSTOM_BOOLEAN-ADVANCED:INTERNAL=1\n"
	require.NoError(t, os.WriteFile(filepath.Join(buildDir, "CMakeCache.txt"), []byte(cacheText), 0644))

	write := func(name, content string) {
		require.NoError(t, os.WriteFile(filepath.Join(replyDir, name), []byte(content), 0644))
	}
	write("index-2026-01-01T00-00-00-0000.json", `{
		"objects": [{"kind": "codemodel", "version": {"major": 2}, "jsonFile": "codemodel-v2.json"}]
	}`)
	write("codemodel-v2.json", `{
		"configurations": [{
			"name": "Debug",
			"projects": [{"name": "widget"}],
			"targets": [
				{"name": "app", "jsonFile": "target-app.json", "projectIndex": 0},
				{"name": "core", "jsonFile": "target-core.json", "projectIndex": 0}
			]
		}]
	}`)
	write("target-app.json", `{
		"name": "app", "type": "EXECUTABLE",
		"paths": {"source": "src/app"},
		"sources": [{"path": "src/app/main.cpp", "compileGroupIndex": 0}],
		"compileGroups": [{"sourceIndexes": [0], "language": "CXX", "includes": [{"path": "src/core/include"}]}]
	}`)
	write("target-core.json", `{
		"name": "core", "type": "STATIC_LIBRARY",
		"paths": {"source": "src/core"},
		"sources": [{"path": "src/core/core.cpp", "compileGroupIndex": 0}],
		"compileGroups": [{"sourceIndexes": [0], "language": "CXX", "includes": [{"path": "src/core/include"}]}],
		"artifacts": [{"path": "lib/libcore.a"}]
	}`)

	cfg := config.Default()
	cfg.Project.Root = root
	cfg.Project.Name = "widget"
	cfg.Build.Dir = "build"
	require.NoError(t, config.NewValidator().ValidateAndSetDefaults(cfg))

	return NewServer(cfg)
}

func callJSON(t *testing.T, s *Server, tool string, params map[string]interface{}, out interface{}) {
	t.Helper()
	text, isErr, err := s.CallTool(tool, params)
	require.NoError(t, err)
	require.False(t, isErr, "unexpected tool error: %s", text)
	require.NoError(t, json.Unmarshal([]byte(text), out))
}

func TestCacheVariableExactHit(t *testing.T) {
	s := testServer(t)

	var resp CacheVariableResponse
	callJSON(t, s, "cache_variable", map[string]interface{}{"name": "CMAKE_BUILD_TYPE"}, &resp)

	require.True(t, resp.Found)
	require.NotNil(t, resp.Variable)
	assert.Equal(t, "Debug", resp.Variable.Value)
	assert.Equal(t, "STRING", resp.Variable.Type)
	assert.Equal(t, "Choose the type of build.", resp.Variable.Documentation)
}

func TestCacheVariableMissSuggestsNearest(t *testing.T) {
	s := testServer(t)

	var resp CacheVariableResponse
	callJSON(t, s, "cache_variable", map[string]interface{}{"name": "MY_CUSTOM_BOOL"}, &resp)

	assert.False(t, resp.Found)
	assert.Equal(t, "MY_CUSTOM_BOOLEAN", resp.Suggestion)
}

func TestCacheVariableWildcard(t *testing.T) {
	s := testServer(t)

	var resp CacheVariableResponse
	callJSON(t, s, "cache_variable", map[string]interface{}{"name": "MY_CUSTOM_*"}, &resp)

	require.True(t, resp.Found)
	require.Len(t, resp.Matches, 2)
	assert.Equal(t, "MY_CUSTOM_BOOLEAN", resp.Matches[0].Name)
	assert.Equal(t, "MY_CUSTOM_PATH", resp.Matches[1].Name)
	assert.False(t, resp.Truncated)
}

func TestCacheVariableAdvancedNeverVisible(t *testing.T) {
	s := testServer(t)

	var resp CacheVariableResponse
	callJSON(t, s, "cache_variable", map[string]interface{}{"name": "*"}, &resp)

	for _, m := range resp.Matches {
		assert.NotContains(t, m.Name, "-ADVANCED")
	}
	assert.Len(t, resp.Matches, 3)
}

func TestCacheVariableEmptyNameIsToolError(t *testing.T) {
	s := testServer(t)

	_, isErr, err := s.CallTool("cache_variable", map[string]interface{}{"name": "  "})
	require.NoError(t, err)
	assert.True(t, isErr)
}

func TestListTargets(t *testing.T) {
	s := testServer(t)

	var resp ListTargetsResponse
	callJSON(t, s, "list_targets", map[string]interface{}{}, &resp)

	require.Equal(t, 2, resp.Count)
	assert.Equal(t, "app", resp.Targets[0].Name)
	assert.Equal(t, "EXECUTABLE", resp.Targets[0].Kind)
	assert.Equal(t, "Executable", resp.Targets[0].KindDisplay)
	assert.Equal(t, "core", resp.Targets[1].Name)
	assert.Equal(t, []string{"lib/libcore.a"}, resp.Targets[1].Artifacts)
}

func TestListTargetsKindFilter(t *testing.T) {
	s := testServer(t)

	var resp ListTargetsResponse
	callJSON(t, s, "list_targets", map[string]interface{}{"kind": "static_library"}, &resp)

	require.Equal(t, 1, resp.Count)
	assert.Equal(t, "core", resp.Targets[0].Name)
}

func TestFileOwnerDirect(t *testing.T) {
	s := testServer(t)

	var resp FileOwnerResponse
	callJSON(t, s, "file_owner", map[string]interface{}{"path": "src/app/main.cpp"}, &resp)

	assert.Equal(t, "direct", resp.Resolution)
	require.NotNil(t, resp.Owner)
	assert.Equal(t, "app", resp.Owner.Name)
	assert.Contains(t, resp.Summary, "app")
}

func TestFileOwnerIncludeReachable(t *testing.T) {
	s := testServer(t)

	var resp FileOwnerResponse
	callJSON(t, s, "file_owner", map[string]interface{}{"path": "src/core/include/core/api.h"}, &resp)

	assert.Equal(t, "include_reachable", resp.Resolution)
	require.NotNil(t, resp.Likely)
	assert.Equal(t, "core", resp.Likely.Name)
	require.Len(t, resp.Candidates, 1)
	assert.Equal(t, "app", resp.Candidates[0].Name)
}

func TestFileOwnerDirectoryContained(t *testing.T) {
	s := testServer(t)

	var resp FileOwnerResponse
	callJSON(t, s, "file_owner", map[string]interface{}{"path": "src/core/README.md"}, &resp)

	assert.Equal(t, "directory_contained", resp.Resolution)
	require.NotNil(t, resp.Owner)
	assert.Equal(t, "core", resp.Owner.Name)
}

func TestFileOwnerInconclusive(t *testing.T) {
	s := testServer(t)

	var resp FileOwnerResponse
	callJSON(t, s, "file_owner", map[string]interface{}{"path": "/somewhere/else.c"}, &resp)

	assert.Equal(t, "inconclusive", resp.Resolution)
	assert.Nil(t, resp.Owner)
	assert.Contains(t, resp.Summary, "could not be determined")
}

func TestStatus(t *testing.T) {
	s := testServer(t)

	var resp StatusResponse
	callJSON(t, s, "status", map[string]interface{}{}, &resp)

	assert.Equal(t, "widget", resp.ProjectName)
	assert.True(t, resp.CachePresent)
	assert.Equal(t, 3, resp.VariableCount)
	assert.Len(t, resp.CacheFingerprint, 16)
	assert.True(t, resp.CodemodelPresent)
	assert.Equal(t, 2, resp.TargetCount)
}

func TestSnapshotPreconditionsReportedAsToolErrors(t *testing.T) {
	cfg := config.Default()
	cfg.Project.Root = t.TempDir()
	cfg.Build.Dir = "missing-build"
	require.NoError(t, config.NewValidator().ValidateAndSetDefaults(cfg))
	s := NewServer(cfg)

	text, isErr, err := s.CallTool("cache_variable", map[string]interface{}{"name": "X"})
	require.NoError(t, err)
	assert.True(t, isErr)
	assert.Contains(t, text, "build directory")

	text, isErr, err = s.CallTool("file_owner", map[string]interface{}{"path": "a.c"})
	require.NoError(t, err)
	assert.True(t, isErr)
	assert.Contains(t, text, "file-api")

	// status degrades gracefully instead of erroring
	var status StatusResponse
	callJSON(t, s, "status", map[string]interface{}{}, &status)
	assert.False(t, status.CachePresent)
	assert.False(t, status.CodemodelPresent)
}
