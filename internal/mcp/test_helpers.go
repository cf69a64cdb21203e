package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// CallTool is a test helper that simulates an MCP tool call and returns the
// text content of the result plus its error flag.
func (s *Server) CallTool(toolName string, params map[string]interface{}) (string, bool, error) {
	ctx := context.Background()

	paramsJSON, err := json.Marshal(params)
	if err != nil {
		return "", false, fmt.Errorf("failed to marshal params: %w", err)
	}

	req := &mcp.CallToolRequest{
		Params: &mcp.CallToolParamsRaw{
			Name:      toolName,
			Arguments: paramsJSON,
		},
	}

	var result *mcp.CallToolResult
	switch toolName {
	case "cache_variable":
		result, err = s.handleCacheVariable(ctx, req)
	case "list_targets":
		result, err = s.handleListTargets(ctx, req)
	case "file_owner":
		result, err = s.handleFileOwner(ctx, req)
	case "status":
		result, err = s.handleStatus(ctx, req)
	default:
		return "", false, fmt.Errorf("unknown tool: %s", toolName)
	}
	if err != nil {
		return "", false, err
	}

	for _, content := range result.Content {
		if text, ok := content.(*mcp.TextContent); ok {
			return text.Text, result.IsError, nil
		}
	}
	return "", result.IsError, fmt.Errorf("no text content in result")
}
