package paths

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalizeAnchorsRelativePaths(t *testing.T) {
	got := Canonicalize("src/main.c", "/proj")
	assert.Equal(t, "/proj/src/main.c", got)
}

func TestCanonicalizeKeepsAbsolutePaths(t *testing.T) {
	got := Canonicalize("/other/lib/a.c", "/proj")
	assert.Equal(t, "/other/lib/a.c", got)
}

func TestCanonicalizeCollapsesDotSegments(t *testing.T) {
	assert.Equal(t, "/proj/src/a.c", Canonicalize("src/./sub/../a.c", "/proj"))
	assert.Equal(t, "/proj/a.c", Canonicalize("/proj/x/../a.c", "/proj"))
}

func TestCanonicalizeSameLocationDifferentSpellings(t *testing.T) {
	a := Canonicalize("src/../src/main.c", "/proj")
	b := Canonicalize("/proj/src/main.c", "/proj")
	assert.Equal(t, a, b)
}

func TestCanonicalizeEmptyFallsBackToRoot(t *testing.T) {
	assert.Equal(t, "/proj", Canonicalize("", "/proj"))
	assert.Equal(t, "/proj", Canonicalize("   ", "/proj"))
}

func TestCanonicalizeTrailingSlash(t *testing.T) {
	assert.Equal(t, "/proj/src", Canonicalize("/proj/src/", "/proj"))
}

func TestDir(t *testing.T) {
	assert.Equal(t, "/proj/src", Dir("/proj/src/main.c"))
	assert.Equal(t, "/", Dir("/main.c"))
}

func TestWithin(t *testing.T) {
	assert.True(t, Within("/proj/src/a.c", "/proj/src"))
	assert.True(t, Within("/proj/src", "/proj/src"))
	assert.True(t, Within("/proj/src/deep/b.c", "/proj"))
	assert.False(t, Within("/proj/srcx/a.c", "/proj/src"))
	assert.False(t, Within("/proj", "/proj/src"))
	assert.True(t, Within("/any/file.c", "/"))
}
