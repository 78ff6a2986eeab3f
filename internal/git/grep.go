package git

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strconv"
	"strings"

	"gitreplace/internal/domain"
)

// MaxResults caps the number of matches a search exposes
const MaxResults = 200

// ErrDiscovery is returned when the search backend could not be invoked
var ErrDiscovery = errors.New("search backend failed")

// grepLineRE matches "<file>:<line>:<column>:<rest>"
var grepLineRE = regexp.MustCompile(`^([^:]+):(\d+):(\d+):(.*)$`)

// quotedTailRE matches what follows a quoted file name
var quotedTailRE = regexp.MustCompile(`^:(\d+):(\d+):(.*)$`)

// ParseGrepLine turns one line of git grep output into a match.
// Lines that do not follow the grammar are rejected. File names git
// C-quotes (those holding '"', '\' or control characters) are unquoted.
func ParseGrepLine(line string) (*domain.SearchMatch, bool) {
	var file string
	var parts []string
	if strings.HasPrefix(line, `"`) {
		end := closingQuote(line)
		if end < 0 {
			return nil, false
		}
		unquoted, err := strconv.Unquote(line[:end+1])
		if err != nil || unquoted == "" {
			return nil, false
		}
		file = unquoted
		parts = quotedTailRE.FindStringSubmatch(line[end+1:])
	} else if parts = grepLineRE.FindStringSubmatch(line); parts != nil {
		file = parts[1]
		parts = parts[1:]
	}
	if parts == nil {
		return nil, false
	}

	lineNo, err := strconv.Atoi(parts[1])
	if err != nil || lineNo < 1 {
		return nil, false
	}
	column, err := strconv.Atoi(parts[2])
	if err != nil || column < 1 {
		return nil, false
	}

	return &domain.SearchMatch{
		File:       file,
		Line:       lineNo,
		Column:     column,
		RawContent: parts[3],
		Selected:   true,
	}, true
}

// closingQuote returns the index of the quote ending a C-quoted name
// starting at s[0], or -1
func closingQuote(s string) int {
	for i := 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '"':
			return i
		}
	}
	return -1
}

// Options controls how the pattern is matched
type Options struct {
	Regex     bool // extended regex instead of fixed string
	WholeWord bool
}

// GrepService searches the tracked files of a working tree
type GrepService interface {
	Search(ctx context.Context, pattern string, opts Options) ([]*domain.SearchMatch, error)
}

// grepService is the concrete implementation
type grepService struct {
	runner     Runner
	dir        string
	binary     string
	maxResults int
}

// ServiceOption configures a GrepService
type ServiceOption func(*grepService)

// WithBinary overrides the git executable
func WithBinary(binary string) ServiceOption {
	return func(gs *grepService) {
		if binary != "" {
			gs.binary = binary
		}
	}
}

// WithMaxResults overrides MaxResults
func WithMaxResults(n int) ServiceOption {
	return func(gs *grepService) {
		if n > 0 {
			gs.maxResults = n
		}
	}
}

// NewGrepService creates a search service rooted at dir
func NewGrepService(runner Runner, dir string, opts ...ServiceOption) GrepService {
	gs := &grepService{
		runner:     runner,
		dir:        dir,
		binary:     "git",
		maxResults: MaxResults,
	}
	for _, opt := range opts {
		opt(gs)
	}
	return gs
}

// grepArgs builds the git grep command line. Paths are printed verbatim
// so they can be opened as they are.
func grepArgs(pattern string, opts Options) []string {
	args := []string{"-c", "core.quotePath=false", "grep", "-n", "--column", "-I"}
	if opts.Regex {
		args = append(args, "-E")
	} else {
		args = append(args, "-F")
	}
	if opts.WholeWord {
		args = append(args, "-w")
	}
	return append(args, "--", pattern)
}

// Search runs git grep and returns the first matches in backend order
func (gs *grepService) Search(ctx context.Context, pattern string, opts Options) ([]*domain.SearchMatch, error) {
	res, err := gs.runner.Run(ctx, gs.dir, gs.binary, grepArgs(pattern, opts)...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDiscovery, err)
	}

	// git grep exits 1 when nothing matched; any nonzero exit is an empty result
	if res.ExitCode != 0 {
		if strings.TrimSpace(res.Stderr) != "" {
			log.Printf("git grep exited %d: %s", res.ExitCode, strings.TrimSpace(res.Stderr))
		}
		return nil, nil
	}

	var matches []*domain.SearchMatch
	for _, line := range strings.Split(res.Stdout, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		match, ok := ParseGrepLine(line)
		if !ok {
			continue
		}
		matches = append(matches, match)
		if len(matches) >= gs.maxResults {
			break
		}
	}

	log.Printf("Search completed for '%s': found %d matches", pattern, len(matches))
	return matches, nil
}
