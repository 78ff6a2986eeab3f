package ui

import (
	"fmt"
	"log"

	"gitreplace/internal/domain"
	"gitreplace/internal/editor"
	"gitreplace/internal/ui/state"
)

var _ editor.Host = (*Model)(nil)

func (m *Model) SetStatus(msg string) {
	m.state.StatusMessage = msg
}

func (m *Model) Cwd() string {
	return m.state.Cwd
}

func (m *Model) StartPrompt(label, promptType string) {
	m.state.PromptLabel = label
	m.state.PromptType = promptType
	m.syncMode()
}

func (m *Model) ActiveSplitID() domain.SplitID {
	return m.state.ActiveSplit()
}

// CreatePanel opens a read-only panel split below the source and focuses it
func (m *Model) CreatePanel(opts domain.PanelOptions) (domain.BufferID, error) {
	if opts.Name == "" {
		return domain.NoBuffer, fmt.Errorf("panel needs a name")
	}
	p := m.state.AddPanel(opts)
	log.Printf("Opened panel %s (buffer %d, split %d)", p.Name, p.ID, p.Split)
	m.syncMode()
	return p.ID, nil
}

func (m *Model) SetPanelContent(buf domain.BufferID, entries []domain.Entry) error {
	p, ok := m.state.Panel(buf)
	if !ok {
		return fmt.Errorf("no buffer %d", buf)
	}
	p.SetEntries(entries)
	return nil
}

func (m *Model) SetPanelCursor(buf domain.BufferID, entry int) error {
	p, ok := m.state.Panel(buf)
	if !ok {
		return fmt.Errorf("no buffer %d", buf)
	}
	if entry < 0 || entry >= len(p.Entries) {
		return fmt.Errorf("entry %d out of range", entry)
	}
	p.Cursor = entry
	return nil
}

func (m *Model) CloseBuffer(buf domain.BufferID) error {
	if !m.state.RemovePanel(buf) {
		return fmt.Errorf("no buffer %d", buf)
	}
	log.Printf("Closed buffer %d", buf)
	m.syncMode()
	return nil
}

func (m *Model) PropertiesAtCursor(buf domain.BufferID) (domain.Properties, bool) {
	p, ok := m.state.Panel(buf)
	if !ok || p.Cursor >= len(p.Entries) {
		return domain.Properties{}, false
	}
	return p.Entries[p.Cursor].Properties, true
}

// OpenFileInSplit shows loc in the source split. Panel splits are read-only,
// so a jump requested for one lands in the source split too. Focus stays
// where it is so a panel can keep previewing.
func (m *Model) OpenFileInSplit(split domain.SplitID, loc domain.Location) error {
	if split != state.SourceSplit {
		log.Printf("Split %d holds a panel, opening %s in the source split", split, loc.File)
	}
	lines, err := m.files.ReadLines(loc.File)
	if err != nil {
		return fmt.Errorf("opening %s: %w", loc.File, err)
	}
	if loc.File != m.state.File {
		m.state.LoadSource(loc.File, lines)
	} else {
		m.state.Lines = lines
	}
	m.state.JumpTo(loc.Line, loc.Column)
	return nil
}
