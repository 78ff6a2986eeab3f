// Package editortest provides an in-memory editor.Host for plugin tests.
package editortest

import (
	"context"
	"errors"
	"fmt"

	"gitreplace/internal/domain"
	"gitreplace/internal/editor"
)

// RunTask runs a task to completion on the calling goroutine, the way the
// host does in two steps
func RunTask(ctx context.Context, t domain.Task) {
	if t == nil {
		return
	}
	if apply := t(ctx); apply != nil {
		apply()
	}
}

// Prompt records a StartPrompt call
type Prompt struct {
	Label string
	Type  string
}

// Panel is a panel created through the host
type Panel struct {
	Options domain.PanelOptions
	Entries []domain.Entry
	Cursor  int
}

// Jump records an OpenFileInSplit call
type Jump struct {
	Split    domain.SplitID
	Location domain.Location
}

// Host records every call made by a plugin
type Host struct {
	Dir      string
	Active   domain.SplitID
	Statuses []string
	Prompts  []Prompt
	Panels   map[domain.BufferID]*Panel
	Closed   []domain.BufferID
	Jumps    []Jump

	// CreateErr makes CreatePanel fail when set
	CreateErr error

	nextBuffer domain.BufferID
}

// New returns a host with split 1 focused
func New(dir string) *Host {
	return &Host{
		Dir:    dir,
		Active: 1,
		Panels: make(map[domain.BufferID]*Panel),
	}
}

func (h *Host) SetStatus(msg string) { h.Statuses = append(h.Statuses, msg) }

func (h *Host) Cwd() string { return h.Dir }

func (h *Host) StartPrompt(label, promptType string) {
	h.Prompts = append(h.Prompts, Prompt{Label: label, Type: promptType})
}

func (h *Host) ActiveSplitID() domain.SplitID { return h.Active }

func (h *Host) CreatePanel(opts domain.PanelOptions) (domain.BufferID, error) {
	if h.CreateErr != nil {
		return domain.NoBuffer, h.CreateErr
	}
	h.nextBuffer++
	h.Panels[h.nextBuffer] = &Panel{Options: opts, Entries: opts.Entries}
	// the new panel takes focus, like a real split would
	h.Active = domain.SplitID(100 + int(h.nextBuffer))
	return h.nextBuffer, nil
}

func (h *Host) SetPanelContent(buf domain.BufferID, entries []domain.Entry) error {
	p, ok := h.Panels[buf]
	if !ok {
		return fmt.Errorf("no buffer %d", buf)
	}
	p.Entries = entries
	if p.Cursor >= len(entries) {
		p.Cursor = 0
	}
	return nil
}

func (h *Host) SetPanelCursor(buf domain.BufferID, entry int) error {
	p, ok := h.Panels[buf]
	if !ok {
		return fmt.Errorf("no buffer %d", buf)
	}
	if entry < 0 || entry >= len(p.Entries) {
		return errors.New("cursor out of range")
	}
	p.Cursor = entry
	return nil
}

func (h *Host) CloseBuffer(buf domain.BufferID) error {
	if _, ok := h.Panels[buf]; !ok {
		return fmt.Errorf("no buffer %d", buf)
	}
	delete(h.Panels, buf)
	h.Closed = append(h.Closed, buf)
	return nil
}

func (h *Host) PropertiesAtCursor(buf domain.BufferID) (domain.Properties, bool) {
	p, ok := h.Panels[buf]
	if !ok || p.Cursor >= len(p.Entries) {
		return domain.Properties{}, false
	}
	return p.Entries[p.Cursor].Properties, true
}

func (h *Host) OpenFileInSplit(split domain.SplitID, loc domain.Location) error {
	h.Jumps = append(h.Jumps, Jump{Split: split, Location: loc})
	return nil
}

// LastStatus returns the most recent status message
func (h *Host) LastStatus() string {
	if len(h.Statuses) == 0 {
		return ""
	}
	return h.Statuses[len(h.Statuses)-1]
}

// Panel returns the only open panel, or nil
func (h *Host) Panel() *Panel {
	for _, p := range h.Panels {
		return p
	}
	return nil
}

// MoveCursorTo places the panel cursor on the first entry of type t whose
// index is idx
func (h *Host) MoveCursorTo(t domain.EntryType, idx int) bool {
	p := h.Panel()
	if p == nil {
		return false
	}
	for i, e := range p.Entries {
		if e.Properties.Type == t && e.Properties.Index == idx {
			p.Cursor = i
			return true
		}
	}
	return false
}

var _ editor.Host = (*Host)(nil)
