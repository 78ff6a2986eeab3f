package domain

import "context"

// SearchMatch is one located occurrence of the search pattern
type SearchMatch struct {
	File       string
	Line       int // 1-based
	Column     int // 1-based
	RawContent string
	Selected   bool // whether this match will be replaced
}

// Location returns the jump target of the match
func (m *SearchMatch) Location() Location {
	return Location{File: m.File, Line: m.Line, Column: m.Column}
}

// Location points at a file position
type Location struct {
	File   string
	Line   int
	Column int
}

// SplitID identifies an editing view owned by the host
type SplitID int

// BufferID identifies a buffer owned by the host
type BufferID int

// NoSplit and NoBuffer mark the absence of a host handle
const (
	NoSplit  SplitID  = 0
	NoBuffer BufferID = 0
)

// EntryType tags a panel entry for rendering and activation
type EntryType string

const (
	EntryHeader    EntryType = "header"
	EntryInfo      EntryType = "info"
	EntrySpacer    EntryType = "spacer"
	EntryCount     EntryType = "count"
	EntryResult    EntryType = "result"
	EntryReference EntryType = "reference"
	EntrySeparator EntryType = "separator"
	EntryHelp      EntryType = "help"
	EntryEmpty     EntryType = "empty"
)

// Properties carries the metadata attached to a panel entry.
// Index and Location are only meaningful for result/reference entries.
type Properties struct {
	Type     EntryType
	Index    int
	Location *Location
}

// HasIndex reports whether the entry points into a match sequence
func (p Properties) HasIndex() bool {
	return p.Type == EntryResult || p.Type == EntryReference
}

// Entry is one line of panel content
type Entry struct {
	Text       string
	Properties Properties
}

// PanelState tracks a results split. BufferID != NoBuffer iff IsOpen.
type PanelState struct {
	IsOpen        bool
	BufferID      BufferID
	SourceSplitID SplitID
	CursorIndex   int
}

// PanelOptions describes a read-only panel buffer to create
type PanelOptions struct {
	Name     string
	Mode     string
	Entries  []Entry
	Ratio    float64 // share of the window kept by the source split
	ReadOnly bool
}

// KeyBinding maps a key name to a registered action
type KeyBinding struct {
	Key    string
	Action string
}

// Mode is a named set of keybindings applied to a buffer
type Mode struct {
	Name     string
	Bindings []KeyBinding
	ReadOnly bool
}

// ActionFor returns the action bound to key, if any
func (m Mode) ActionFor(key string) (string, bool) {
	for _, b := range m.Bindings {
		if b.Key == key {
			return b.Action, true
		}
	}
	return "", false
}

// Command is a discoverable entry of the command palette
type Command struct {
	Name        string
	Description string
	Action      string
	Context     string
}

// Task is blocking work run off the host event loop. The function it
// returns is applied back on the event loop once the work is done.
type Task func(ctx context.Context) func()
