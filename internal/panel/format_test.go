package panel

import (
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
)

func TestRelativePath(t *testing.T) {
	assert.Equal(t, "src/a.go", RelativePath("/repo", "/repo/src/a.go"))
	assert.Equal(t, "src/a.go", RelativePath("/repo/", "/repo/src/a.go"))
	assert.Equal(t, "src/a.go", RelativePath("/repo", "src/a.go"))
	assert.Equal(t, "/repository/a.go", RelativePath("/repo", "/repository/a.go"))
	assert.Equal(t, "a.go", RelativePath("", "a.go"))
}

func TestFitLeft(t *testing.T) {
	short := FitLeft("a.go:3", 10)
	assert.Equal(t, "a.go:3    ", short)

	long := "very/deep/path/to/some/file/in/the/project/main.go:120"
	got := FitLeft(long, 40)
	assert.Equal(t, 40, runewidth.StringWidth(got))
	assert.True(t, strings.HasPrefix(got, "..."))
	assert.True(t, strings.HasSuffix(got, "main.go:120"))
	assert.Equal(t, "..."+long[len(long)-37:], got)
}

func TestFitLeftWideRunes(t *testing.T) {
	got := FitLeft("日本語日本語日本語.go:1", 12)
	assert.Equal(t, 12, runewidth.StringWidth(got))
	assert.True(t, strings.HasSuffix(strings.TrimRight(got, " "), ".go:1"))
}

func TestFitRight(t *testing.T) {
	assert.Equal(t, "short", FitRight("short", 50))
	long := strings.Repeat("x", 60)
	got := FitRight(long, 50)
	assert.Equal(t, strings.Repeat("x", 47)+"...", got)
}
