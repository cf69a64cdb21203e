package mcp

import (
	"testing"

	"go.uber.org/goleak"
)

// TestMain ensures no goroutines leak from any test in this package. The
// handlers themselves are synchronous, but the file-api loader fans out over
// worker goroutines that must all be joined before a query returns.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
