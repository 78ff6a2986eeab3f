package types

import (
	tea "github.com/charmbracelet/bubbletea"

	"gitreplace/internal/domain"
)

// Mode represents an input mode
type Mode int

const (
	ModeNormal Mode = iota // source split focused
	ModePanel              // a plugin panel focused
	ModePrompt             // the prompt line is active
)

// Action represents a command the model should execute
type Action interface {
	Type() string
}

// Context provides read-only access to model state needed for input handling
type Context interface {
	// PanelMode returns the plugin mode of the focused panel
	PanelMode() (domain.Mode, bool)
	HasPanel() bool
}

// ModeHandler handles input for a specific mode
type ModeHandler interface {
	// HandleKey processes a key message and returns actions and whether to consume the event
	HandleKey(msg tea.KeyMsg, ctx Context) ([]Action, bool)

	// Enter is called when entering this mode
	Enter(ctx Context) []Action

	// Exit is called when leaving this mode
	Exit(ctx Context) []Action

	// Name returns the mode name for display
	Name() string
}
