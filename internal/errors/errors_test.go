package errors

import (
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotErrorMessage(t *testing.T) {
	err := NewSnapshotError(ErrorTypeNoCache, "/proj/build", os.ErrNotExist)
	assert.Contains(t, err.Error(), "no CMake cache")
	assert.Contains(t, err.Error(), "/proj/build")

	bare := NewSnapshotError(ErrorTypeNoBuildDir, "/proj/build", nil)
	assert.Contains(t, bare.Error(), "build directory not found")
}

func TestSnapshotErrorUnwrap(t *testing.T) {
	underlying := os.ErrNotExist
	err := NewSnapshotError(ErrorTypeNoCodemodel, "/b", underlying)

	require.ErrorIs(t, err, os.ErrNotExist)

	typ, ok := IsSnapshotError(fmt.Errorf("loading snapshot: %w", err))
	require.True(t, ok)
	assert.Equal(t, ErrorTypeNoCodemodel, typ)
}

func TestIsSnapshotErrorRejectsOtherErrors(t *testing.T) {
	_, ok := IsSnapshotError(os.ErrPermission)
	assert.False(t, ok)

	_, ok = IsSnapshotError(nil)
	assert.False(t, ok)
}

func TestConfigError(t *testing.T) {
	err := NewConfigError(".cmq.kdl", "build_dir", fmt.Errorf("must not be empty"))
	assert.Contains(t, err.Error(), ".cmq.kdl")
	assert.Contains(t, err.Error(), "build_dir")
	assert.Equal(t, ErrorTypeConfig, err.Type)
}
