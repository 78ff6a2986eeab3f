package replace

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"sort"
	"strings"

	"gitreplace/internal/domain"
)

var (
	// ErrNoSelection is returned when Apply is called with nothing selected
	ErrNoSelection = errors.New("no matches selected")
	// ErrInvalidPattern is returned for an empty pattern or a regex that does not compile
	ErrInvalidPattern = errors.New("invalid pattern")
)

// Files is the file access the engine needs
type Files interface {
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte) error
}

// Spec describes what to replace
type Spec struct {
	Pattern     string
	Replacement string
	Regex       bool
}

// Result aggregates a replacement run. Occurrences counts processed lines,
// not individual substrings.
type Result struct {
	FilesModified int
	Occurrences   int
	Errors        []string
}

// Engine rewrites the lines referenced by selected matches
type Engine struct {
	files Files
}

// NewEngine creates an engine over files
func NewEngine(files Files) *Engine {
	return &Engine{files: files}
}

// Apply rewrites every file touched by selected. Files are processed one at
// a time; a read or write failure is recorded and the next file is tried.
// Files written before a failure or cancellation stay written.
func (e *Engine) Apply(ctx context.Context, selected []*domain.SearchMatch, spec Spec) (Result, error) {
	var result Result
	if len(selected) == 0 {
		return result, ErrNoSelection
	}

	replaceLine, err := lineReplacer(spec)
	if err != nil {
		return result, err
	}

	files, byFile := groupByFile(selected)
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", file, err))
			continue
		}

		data, err := e.files.ReadFile(file)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", file, err))
			continue
		}

		lines := strings.Split(string(data), "\n")
		for _, m := range sortDescending(byFile[file]) {
			idx := m.Line - 1
			if idx < 0 || idx >= len(lines) {
				log.Printf("Skipping %s:%d: line out of range (%d lines)", file, m.Line, len(lines))
				continue
			}
			lines[idx] = replaceLine(lines[idx])
			result.Occurrences++
		}

		if err := e.files.WriteFile(file, []byte(strings.Join(lines, "\n"))); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", file, err))
			continue
		}
		result.FilesModified++
	}

	log.Printf("Replace finished: %d occurrences in %d files, %d errors",
		result.Occurrences, result.FilesModified, len(result.Errors))
	return result, nil
}

func lineReplacer(spec Spec) (func(string) string, error) {
	if spec.Pattern == "" {
		return nil, fmt.Errorf("%w: empty pattern", ErrInvalidPattern)
	}
	if !spec.Regex {
		return func(line string) string {
			return strings.ReplaceAll(line, spec.Pattern, spec.Replacement)
		}, nil
	}

	re, err := CompilePattern(spec.Pattern)
	if err != nil {
		return nil, err
	}
	template := NormalizeTemplate(spec.Replacement)
	return func(line string) string {
		return re.ReplaceAllString(line, template)
	}, nil
}

// CompilePattern compiles a regex search pattern the way Apply uses it.
// Matching is leftmost-longest like git grep -E; backreferences inside the
// pattern (such as \1) are not supported and fail here rather than after
// discovery.
func CompilePattern(pattern string) (*regexp.Regexp, error) {
	if pattern == "" {
		return nil, fmt.Errorf("%w: empty pattern", ErrInvalidPattern)
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPattern, err)
	}
	re.Longest()
	return re, nil
}

var captureRefRE = regexp.MustCompile(`\$(\$|&|\d+)`)

// NormalizeTemplate rewrites "$1" style references as "${1}" so that a
// reference followed by letters keeps its meaning. "$&" becomes the whole
// match and "$$" stays a literal dollar.
func NormalizeTemplate(replacement string) string {
	return captureRefRE.ReplaceAllStringFunc(replacement, func(ref string) string {
		switch ref[1:] {
		case "$":
			return "$$"
		case "&":
			return "${0}"
		default:
			return "${" + ref[1:] + "}"
		}
	})
}

// groupByFile keeps files in order of first appearance
func groupByFile(matches []*domain.SearchMatch) ([]string, map[string][]*domain.SearchMatch) {
	var files []string
	byFile := make(map[string][]*domain.SearchMatch)
	for _, m := range matches {
		if _, ok := byFile[m.File]; !ok {
			files = append(files, m.File)
		}
		byFile[m.File] = append(byFile[m.File], m)
	}
	return files, byFile
}

// sortDescending orders matches by line then column, last first
func sortDescending(matches []*domain.SearchMatch) []*domain.SearchMatch {
	sorted := make([]*domain.SearchMatch, len(matches))
	copy(sorted, matches)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Line != sorted[j].Line {
			return sorted[i].Line > sorted[j].Line
		}
		return sorted[i].Column > sorted[j].Column
	})
	return sorted
}
