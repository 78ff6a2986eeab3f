package workflow

import (
	"github.com/google/uuid"

	"gitreplace/internal/domain"
)

// State is a step of the search and replace workflow
type State int

const (
	StateIdle State = iota
	StateAwaitingPattern
	StateAwaitingReplacement
	StateReviewing
	StateExecuting
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingPattern:
		return "awaiting-pattern"
	case StateAwaitingReplacement:
		return "awaiting-replacement"
	case StateReviewing:
		return "reviewing"
	case StateExecuting:
		return "executing"
	default:
		return "unknown"
	}
}

// Session is one search and replace run. It is created once both prompts
// are confirmed and dropped when the panel closes or a new search starts.
type Session struct {
	ID          string
	Pattern     string
	Replacement string
	Regex       bool
	Matches     []*domain.SearchMatch

	// busy is set while discovery or replacement runs off the event loop
	busy bool
}

func newSession(pattern, replacement string, regex bool) *Session {
	return &Session{
		ID:          uuid.NewString(),
		Pattern:     pattern,
		Replacement: replacement,
		Regex:       regex,
	}
}

// Busy reports whether work for this session is in flight
func (s *Session) Busy() bool {
	return s != nil && s.busy
}
