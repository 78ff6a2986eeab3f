package panel

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

const ellipsis = "..."

// RelativePath strips the project root from path for display
func RelativePath(cwd, path string) string {
	if cwd == "" {
		return path
	}
	prefix := strings.TrimSuffix(cwd, "/") + "/"
	if strings.HasPrefix(path, prefix) {
		return path[len(prefix):]
	}
	return path
}

// FitLeft pads s to width columns, or keeps its tail behind "..." when it
// is too wide. Used for paths, where the end is the interesting part.
func FitLeft(s string, width int) string {
	if runewidth.StringWidth(s) <= width {
		return runewidth.FillRight(s, width)
	}
	keep := width - len(ellipsis)
	runes := []rune(s)
	w, i := 0, len(runes)
	for i > 0 {
		rw := runewidth.RuneWidth(runes[i-1])
		if w+rw > keep {
			break
		}
		w += rw
		i--
	}
	return runewidth.FillRight(ellipsis+string(runes[i:]), width)
}

// FitRight truncates s to width columns with a trailing "..."
func FitRight(s string, width int) string {
	return runewidth.Truncate(s, width, ellipsis)
}

// Separator is the horizontal rule drawn above panel help lines
var Separator = strings.Repeat("─", 79)
