package state

import (
	"unicode"

	"gitreplace/internal/domain"
)

// SourceSplit is the split that shows files
const SourceSplit domain.SplitID = 1

// Focus tells which split receives keys
type Focus int

const (
	FocusSource Focus = iota
	FocusPanel
)

// Panel is a read-only plugin buffer shown in its own split
type Panel struct {
	ID      domain.BufferID
	Split   domain.SplitID
	Name    string
	Mode    string
	Ratio   float64
	Entries []domain.Entry
	Cursor  int
	Offset  int // first visible entry
}

// AppState contains all the editor state
type AppState struct {
	Cwd string

	// Source split
	File           string
	Lines          []string
	CursorLine     int // 0-based
	CursorCol      int // 0-based, in runes
	ViewportOffset int
	ViewportHeight int

	// Panels in creation order; the last one is on top
	Panels      []*Panel
	FocusIndex  int // index into Panels when Focus is FocusPanel
	Focus       Focus
	nextBuffer  domain.BufferID
	PanelHeight int

	// Prompt
	PromptLabel string
	PromptType  string

	StatusMessage string
	InPagerMode   bool
}

// NewAppState creates a new editor state
func NewAppState(cwd string) *AppState {
	return &AppState{
		Cwd:            cwd,
		Panels:         make([]*Panel, 0),
		ViewportHeight: 20, // Default
		PanelHeight:    10,
	}
}

// Panel operations

// AddPanel creates a panel from opts and focuses it
func (s *AppState) AddPanel(opts domain.PanelOptions) *Panel {
	s.nextBuffer++
	p := &Panel{
		ID:      s.nextBuffer,
		Split:   SourceSplit + domain.SplitID(s.nextBuffer),
		Name:    opts.Name,
		Mode:    opts.Mode,
		Ratio:   opts.Ratio,
		Entries: opts.Entries,
	}
	s.Panels = append(s.Panels, p)
	s.Focus = FocusPanel
	s.FocusIndex = len(s.Panels) - 1
	return p
}

// Panel returns the panel with the given buffer id
func (s *AppState) Panel(id domain.BufferID) (*Panel, bool) {
	for _, p := range s.Panels {
		if p.ID == id {
			return p, true
		}
	}
	return nil, false
}

// RemovePanel drops a panel. Focus falls back to the source split when the
// focused panel goes away.
func (s *AppState) RemovePanel(id domain.BufferID) bool {
	for i, p := range s.Panels {
		if p.ID != id {
			continue
		}
		s.Panels = append(s.Panels[:i], s.Panels[i+1:]...)
		switch {
		case s.Focus != FocusPanel:
		case i == s.FocusIndex || len(s.Panels) == 0:
			s.Focus = FocusSource
			s.FocusIndex = 0
		case i < s.FocusIndex:
			s.FocusIndex--
		}
		return true
	}
	return false
}

// FocusedPanel returns the panel receiving keys, or nil
func (s *AppState) FocusedPanel() *Panel {
	if s.Focus != FocusPanel || s.FocusIndex >= len(s.Panels) {
		return nil
	}
	return s.Panels[s.FocusIndex]
}

// ActiveSplit returns the focused split id
func (s *AppState) ActiveSplit() domain.SplitID {
	if p := s.FocusedPanel(); p != nil {
		return p.Split
	}
	return SourceSplit
}

// FocusNext cycles focus source -> panels -> source
func (s *AppState) FocusNext() {
	switch {
	case len(s.Panels) == 0:
		s.Focus = FocusSource
	case s.Focus == FocusSource:
		s.Focus = FocusPanel
		s.FocusIndex = 0
	case s.FocusIndex+1 < len(s.Panels):
		s.FocusIndex++
	default:
		s.Focus = FocusSource
		s.FocusIndex = 0
	}
}

// SetEntries replaces the content of a panel and keeps the cursor in range
func (p *Panel) SetEntries(entries []domain.Entry) {
	p.Entries = entries
	if p.Cursor >= len(entries) {
		p.Cursor = 0
		p.Offset = 0
	}
}

// MoveCursor moves the panel cursor by delta, clamped to the entries
func (p *Panel) MoveCursor(delta int) {
	p.Cursor = clamp(p.Cursor+delta, 0, len(p.Entries)-1)
}

// EnsureVisible scrolls so the cursor is within height rows
func (p *Panel) EnsureVisible(height int) {
	p.Offset = scrollTo(p.Cursor, p.Offset, height)
}

// Source operations

// LoadSource shows a file in the source split
func (s *AppState) LoadSource(file string, lines []string) {
	s.File = file
	s.Lines = lines
	s.CursorLine = 0
	s.CursorCol = 0
	s.ViewportOffset = 0
}

// JumpTo places the source cursor at a 1-based line and column
func (s *AppState) JumpTo(line, col int) {
	s.CursorLine = clamp(line-1, 0, len(s.Lines)-1)
	s.CursorCol = max(col-1, 0)
	s.clampColumn()
	s.centerCursor()
}

// MoveCursor moves the source cursor
func (s *AppState) MoveCursor(dLine, dCol int) {
	s.CursorLine = clamp(s.CursorLine+dLine, 0, len(s.Lines)-1)
	s.CursorCol = max(s.CursorCol+dCol, 0)
	s.clampColumn()
	s.EnsureCursorVisible()
}

// EnsureCursorVisible scrolls the source split to the cursor line
func (s *AppState) EnsureCursorVisible() {
	s.ViewportOffset = scrollTo(s.CursorLine, s.ViewportOffset, s.ViewportHeight)
}

func (s *AppState) centerCursor() {
	s.ViewportOffset = max(s.CursorLine-s.ViewportHeight/2, 0)
}

func (s *AppState) clampColumn() {
	if s.CursorLine >= len(s.Lines) {
		s.CursorCol = 0
		return
	}
	s.CursorCol = clamp(s.CursorCol, 0, len([]rune(s.Lines[s.CursorLine])))
}

// WordAtCursor returns the identifier under the source cursor
func (s *AppState) WordAtCursor() string {
	if s.CursorLine >= len(s.Lines) {
		return ""
	}
	return WordAt(s.Lines[s.CursorLine], s.CursorCol)
}

// WordAt returns the identifier touching rune column col of line. A cursor
// just past the end of a word still picks that word.
func WordAt(line string, col int) string {
	runes := []rune(line)
	if len(runes) == 0 {
		return ""
	}
	col = clamp(col, 0, len(runes)-1)
	if !isWordRune(runes[col]) {
		if col > 0 && isWordRune(runes[col-1]) {
			col--
		} else {
			return ""
		}
	}
	start, end := col, col
	for start > 0 && isWordRune(runes[start-1]) {
		start--
	}
	for end < len(runes) && isWordRune(runes[end]) {
		end++
	}
	return string(runes[start:end])
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func scrollTo(cursor, offset, height int) int {
	if height <= 0 {
		return 0
	}
	if cursor < offset {
		return cursor
	}
	if cursor >= offset+height {
		return cursor - height + 1
	}
	return offset
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return min(max(v, lo), hi)
}
