package panel

import (
	"fmt"
	"log"

	"gitreplace/internal/domain"
	"gitreplace/internal/editor"
)

// Presenter owns the lifecycle of one read-only results panel. It knows
// nothing about the entries it shows.
type Presenter struct {
	host  editor.Host
	name  string
	mode  string
	state domain.PanelState
}

// New creates a closed presenter whose buffer uses the given name and mode
func New(host editor.Host, name, mode string) *Presenter {
	return &Presenter{host: host, name: name, mode: mode}
}

// Open captures the focused split as the jump target and creates the panel
// buffer. Opening twice is a caller error.
func (p *Presenter) Open(entries []domain.Entry, ratio float64) error {
	if p.state.IsOpen {
		return editor.ErrPanelOpen
	}

	source := p.host.ActiveSplitID()
	buf, err := p.host.CreatePanel(domain.PanelOptions{
		Name:     p.name,
		Mode:     p.mode,
		Entries:  entries,
		Ratio:    ratio,
		ReadOnly: true,
	})
	if err != nil {
		return fmt.Errorf("create panel %s: %w", p.name, err)
	}

	p.state = domain.PanelState{
		IsOpen:        true,
		BufferID:      buf,
		SourceSplitID: source,
	}
	log.Printf("Panel %s opened: buffer=%d source split=%d", p.name, buf, source)
	return nil
}

// UpdateContent re-renders the panel in place; no-op when closed
func (p *Presenter) UpdateContent(entries []domain.Entry) {
	if !p.state.IsOpen {
		return
	}
	if err := p.host.SetPanelContent(p.state.BufferID, entries); err != nil {
		log.Printf("Panel %s: failed to update content: %v", p.name, err)
	}
}

// SetCursor moves the panel cursor to an entry
func (p *Presenter) SetCursor(entry int) {
	if !p.state.IsOpen {
		return
	}
	if err := p.host.SetPanelCursor(p.state.BufferID, entry); err != nil {
		log.Printf("Panel %s: failed to move cursor: %v", p.name, err)
		return
	}
	p.state.CursorIndex = entry
}

// Close destroys the panel buffer and forgets the source split
func (p *Presenter) Close() {
	if !p.state.IsOpen {
		return
	}
	if err := p.host.CloseBuffer(p.state.BufferID); err != nil {
		log.Printf("Panel %s: failed to close buffer %d: %v", p.name, p.state.BufferID, err)
	}
	p.state = domain.PanelState{}
}

// PropertiesAtCursor returns the metadata of the entry under the cursor
func (p *Presenter) PropertiesAtCursor() (domain.Properties, bool) {
	if !p.state.IsOpen {
		return domain.Properties{}, false
	}
	return p.host.PropertiesAtCursor(p.state.BufferID)
}

// JumpTo opens loc in the split that was focused when the panel opened
func (p *Presenter) JumpTo(loc domain.Location) error {
	if !p.state.IsOpen || p.state.SourceSplitID == domain.NoSplit {
		return fmt.Errorf("panel %s has no source split", p.name)
	}
	return p.host.OpenFileInSplit(p.state.SourceSplitID, loc)
}

// IsOpen reports whether the panel buffer exists
func (p *Presenter) IsOpen() bool {
	return p.state.IsOpen
}

// State returns a snapshot of the panel state
func (p *Presenter) State() domain.PanelState {
	return p.state
}
