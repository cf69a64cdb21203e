package debug

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// saveAndRestoreState saves the debug package state and returns a cleanup function
func saveAndRestoreState() func() {
	originalDebug := EnableDebug
	originalMode := MCPMode
	originalOutput := debugOutput
	originalFile := debugFile
	return func() {
		EnableDebug = originalDebug
		MCPMode = originalMode
		debugOutput = originalOutput
		debugFile = originalFile
	}
}

func TestIsDebugEnabled(t *testing.T) {
	defer saveAndRestoreState()()

	EnableDebug = "false"
	MCPMode = false
	assert.False(t, IsDebugEnabled())

	EnableDebug = "true"
	MCPMode = false
	assert.True(t, IsDebugEnabled())

	EnableDebug = "invalid"
	assert.False(t, IsDebugEnabled())
}

func TestLog(t *testing.T) {
	defer saveAndRestoreState()()

	var buf bytes.Buffer
	SetDebugOutput(&buf)
	EnableDebug = "true"
	MCPMode = false
	LogCache("parsed %d entries", 3)

	output := buf.String()
	assert.Contains(t, output, "[DEBUG:CACHE]")
	assert.Contains(t, output, "parsed 3 entries")
}

func TestLog_MCPModeSuppressesNonFileOutput(t *testing.T) {
	defer saveAndRestoreState()()

	var buf bytes.Buffer
	SetDebugOutput(&buf)
	EnableDebug = "true"
	MCPMode = true
	LogMCP("should not appear")

	assert.Empty(t, buf.String())
}

func TestLogFileSurvivesMCPMode(t *testing.T) {
	defer saveAndRestoreState()()

	EnableDebug = "true"
	MCPMode = true

	logPath, err := InitDebugLogFile()
	require.NoError(t, err)
	defer os.Remove(logPath)

	LogMCP("tool call %s", "status")
	require.NoError(t, CloseDebugLog())

	content, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "[DEBUG:MCP]")
	assert.Contains(t, string(content), "tool call status")
}

func TestCloseDebugLogWithoutFile(t *testing.T) {
	defer saveAndRestoreState()()

	debugFile = nil
	assert.NoError(t, CloseDebugLog())
}
