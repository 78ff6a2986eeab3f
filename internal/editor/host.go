package editor

import (
	"errors"

	"gitreplace/internal/domain"
)

// ErrPanelOpen is returned when opening a panel that is already open
var ErrPanelOpen = errors.New("panel already open")

// Host is the editor surface plugins talk to. Buffers, splits, prompts and
// rendering all belong to the host; plugins only hold opaque handles.
type Host interface {
	// SetStatus shows a one-line status message
	SetStatus(msg string)
	// Cwd returns the project root
	Cwd() string
	// StartPrompt asks the user for input; the answer arrives as a
	// prompt_confirmed or prompt_cancelled hook tagged with promptType
	StartPrompt(label, promptType string)
	// ActiveSplitID returns the focused split
	ActiveSplitID() domain.SplitID

	CreatePanel(opts domain.PanelOptions) (domain.BufferID, error)
	SetPanelContent(buf domain.BufferID, entries []domain.Entry) error
	SetPanelCursor(buf domain.BufferID, entry int) error
	CloseBuffer(buf domain.BufferID) error
	// PropertiesAtCursor returns the properties of the entry under the
	// panel's cursor
	PropertiesAtCursor(buf domain.BufferID) (domain.Properties, bool)

	OpenFileInSplit(split domain.SplitID, loc domain.Location) error
}
