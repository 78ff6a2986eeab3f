package workflow

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"gitreplace/internal/domain"
	"gitreplace/internal/editor"
	"gitreplace/internal/eventbus"
	"gitreplace/internal/git"
	"gitreplace/internal/navigation"
	"gitreplace/internal/panel"
	"gitreplace/internal/replace"
	"gitreplace/internal/selection"
)

// Names the host can call into
const (
	ActionStart      = "start_search_replace"
	ActionPreview    = "search_replace_preview"
	ActionToggle     = "search_replace_toggle_item"
	ActionSelectAll  = "search_replace_select_all"
	ActionSelectNone = "search_replace_select_none"
	ActionExecute    = "search_replace_execute"
	ActionClose      = "search_replace_close"

	ModeName      = "search-replace-list"
	PanelName     = "*Search/Replace*"
	PromptSearch  = "search-replace-search"
	PromptReplace = "search-replace-replace"
)

// Config tunes the workflow
type Config struct {
	Regex      bool    // search with extended regex instead of fixed strings
	MaxResults int     // used for the "limited to" note
	SplitRatio float64 // share of the window kept by the source split
}

// DefaultConfig returns the stock settings
func DefaultConfig() Config {
	return Config{MaxResults: git.MaxResults, SplitRatio: 0.4}
}

// Replacer applies a replacement over selected matches
type Replacer interface {
	Apply(ctx context.Context, selected []*domain.SearchMatch, spec replace.Spec) (replace.Result, error)
}

// Machine sequences prompt, discovery, review and execution. It owns the
// current session and the results panel. All methods run on the host's
// event loop; blocking work is handed back as domain.Task.
type Machine struct {
	host     editor.Host
	bus      eventbus.EventBus
	grep     git.GrepService
	replacer Replacer
	cfg      Config

	panel     *panel.Presenter
	results   navigation.Store[*domain.SearchMatch]
	selection *selection.Model

	state   State
	pattern string // confirmed pattern while awaiting the replacement
	session *Session

	unsubscribe []func()
}

// New creates an idle machine
func New(host editor.Host, bus eventbus.EventBus, grep git.GrepService, replacer Replacer, cfg Config) *Machine {
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = git.MaxResults
	}
	if cfg.SplitRatio <= 0 || cfg.SplitRatio >= 1 {
		cfg.SplitRatio = DefaultConfig().SplitRatio
	}
	return &Machine{
		host:      host,
		bus:       bus,
		grep:      grep,
		replacer:  replacer,
		cfg:       cfg,
		panel:     panel.New(host, PanelName, ModeName),
		results:   navigation.New(navigation.Options[*domain.SearchMatch]{}),
		selection: selection.New(nil),
	}
}

// Register declares every action, hook, mode and command of the workflow
func (m *Machine) Register() {
	m.bus.RegisterAction(ActionStart, m.Start)
	m.bus.RegisterAction(ActionPreview, m.Preview)
	m.bus.RegisterAction(ActionToggle, m.Toggle)
	m.bus.RegisterAction(ActionSelectAll, m.SelectAll)
	m.bus.RegisterAction(ActionSelectNone, m.SelectNone)
	m.bus.RegisterAction(ActionExecute, m.Execute)
	m.bus.RegisterAction(ActionClose, m.Close)

	m.unsubscribe = append(m.unsubscribe,
		m.bus.Subscribe(eventbus.EventPromptConfirmed, m.onPromptConfirmed),
		m.bus.Subscribe(eventbus.EventPromptCancelled, m.onPromptCancelled),
	)

	m.bus.DefineMode(domain.Mode{
		Name: ModeName,
		Bindings: []domain.KeyBinding{
			{Key: "Return", Action: ActionPreview},
			{Key: "space", Action: ActionToggle},
			{Key: "a", Action: ActionSelectAll},
			{Key: "n", Action: ActionSelectNone},
			{Key: "r", Action: ActionExecute},
			{Key: "q", Action: ActionClose},
			{Key: "Escape", Action: ActionClose},
		},
		ReadOnly: true,
	})

	m.bus.RegisterCommand(domain.Command{
		Name:        "Search and Replace in Project",
		Description: "Search and replace text across all git-tracked files",
		Action:      ActionStart,
		Context:     "normal",
	})

	log.Printf("Search & Replace plugin loaded")
}

// Unregister drops the hook subscriptions
func (m *Machine) Unregister() {
	for _, unsub := range m.unsubscribe {
		unsub()
	}
	m.unsubscribe = nil
}

// State returns the current workflow step
func (m *Machine) State() State {
	return m.state
}

// Session returns the live session, or nil
func (m *Machine) Session() *Session {
	return m.session
}

// Panel returns the results panel state
func (m *Machine) Panel() domain.PanelState {
	return m.panel.State()
}

// Start discards any previous session and asks for a pattern
func (m *Machine) Start() domain.Task {
	if m.rejectBusy() {
		return nil
	}

	m.discard()
	m.state = StateAwaitingPattern
	m.host.StartPrompt("Search (in project): ", PromptSearch)
	m.host.SetStatus("Enter search pattern...")
	return nil
}

func (m *Machine) onPromptConfirmed(e eventbus.DomainEvent) domain.Task {
	event, ok := e.(eventbus.PromptConfirmedEvent)
	if !ok {
		return nil
	}

	switch event.PromptType {
	case PromptSearch:
		if m.state != StateAwaitingPattern {
			return nil
		}
		pattern := strings.TrimSpace(event.Input)
		if pattern == "" {
			m.state = StateIdle
			m.host.SetStatus("Search cancelled - empty pattern")
			return nil
		}
		if m.cfg.Regex {
			if _, err := replace.CompilePattern(pattern); err != nil {
				log.Printf("Rejected search pattern %q: %v", pattern, err)
				m.state = StateIdle
				m.host.SetStatus(fmt.Sprintf("Search cancelled - %v", err))
				return nil
			}
		}
		m.pattern = pattern
		m.state = StateAwaitingReplacement
		m.host.StartPrompt("Replace with: ", PromptReplace)
		return nil

	case PromptReplace:
		if m.state != StateAwaitingReplacement || m.session.Busy() {
			return nil
		}
		// an empty replacement deletes the matched text
		m.session = newSession(m.pattern, event.Input, m.cfg.Regex)
		m.pattern = ""
		return m.searchTask(m.session)
	}
	return nil
}

func (m *Machine) onPromptCancelled(e eventbus.DomainEvent) domain.Task {
	event, ok := e.(eventbus.PromptCancelledEvent)
	if !ok {
		return nil
	}
	if event.PromptType != PromptSearch && event.PromptType != PromptReplace {
		return nil
	}
	if m.state != StateAwaitingPattern && m.state != StateAwaitingReplacement {
		return nil
	}

	m.discard()
	m.host.SetStatus("Search/Replace cancelled")
	return nil
}

func (m *Machine) searchTask(s *Session) domain.Task {
	s.busy = true
	pattern, opts := s.Pattern, git.Options{Regex: s.Regex}
	log.Printf("Session %s: searching for %q (regex=%v)", s.ID, pattern, s.Regex)

	return func(ctx context.Context) func() {
		matches, err := m.grep.Search(ctx, pattern, opts)
		return func() { m.finishSearch(s, matches, err) }
	}
}

func (m *Machine) finishSearch(s *Session, matches []*domain.SearchMatch, err error) {
	if m.session != s {
		log.Printf("Session %s: dropping stale search results", s.ID)
		return
	}
	s.busy = false

	if err != nil {
		log.Printf("Session %s: search failed: %v", s.ID, err)
		m.discard()
		m.host.SetStatus(fmt.Sprintf("Search error: %v", err))
		return
	}

	s.Matches = matches
	m.results.SetItems(s.Matches)
	m.selection = selection.New(m.results.Items())

	if len(matches) == 0 {
		m.host.SetStatus(fmt.Sprintf("No matches found for \"%s\"", s.Pattern))
	} else {
		m.host.SetStatus(fmt.Sprintf("Found %d matches", len(matches)))
	}

	if err := m.panel.Open(m.entries(), m.cfg.SplitRatio); err != nil {
		log.Printf("Session %s: panel open failed: %v", s.ID, err)
		m.discard()
		m.host.SetStatus("Failed to open search/replace panel")
		return
	}
	m.state = StateReviewing
	log.Printf("Session %s: reviewing %d matches", s.ID, len(matches))
}

// Toggle flips the match under the panel cursor
func (m *Machine) Toggle() domain.Task {
	if !m.reviewing() || m.results.Len() == 0 {
		return nil
	}
	props, ok := m.panel.PropertiesAtCursor()
	if !ok || !props.HasIndex() {
		return nil
	}
	if m.selection.Toggle(props.Index) {
		m.refresh()
		m.host.SetStatus(fmt.Sprintf("%d/%d selected", m.selection.Count(), m.selection.Len()))
	}
	return nil
}

// SelectAll marks every match for replacement
func (m *Machine) SelectAll() domain.Task {
	if !m.reviewing() {
		return nil
	}
	m.selection.SelectAll()
	m.refresh()
	m.host.SetStatus(fmt.Sprintf("%d/%d selected", m.selection.Len(), m.selection.Len()))
	return nil
}

// SelectNone clears every selection
func (m *Machine) SelectNone() domain.Task {
	if !m.reviewing() {
		return nil
	}
	m.selection.SelectNone()
	m.refresh()
	m.host.SetStatus(fmt.Sprintf("0/%d selected", m.selection.Len()))
	return nil
}

// Preview opens the match under the cursor in the source split
func (m *Machine) Preview() domain.Task {
	if m.rejectBusy() || !m.panel.IsOpen() {
		return nil
	}
	props, ok := m.panel.PropertiesAtCursor()
	if !ok || props.Location == nil {
		return nil
	}
	loc := *props.Location
	if err := m.panel.JumpTo(loc); err != nil {
		log.Printf("Preview of %s:%d failed: %v", loc.File, loc.Line, err)
		return nil
	}
	m.host.SetStatus(fmt.Sprintf("Preview: %s:%d", panel.RelativePath(m.host.Cwd(), loc.File), loc.Line))
	return nil
}

// Execute replaces every selected match. With nothing selected the
// workflow stays in review.
func (m *Machine) Execute() domain.Task {
	if !m.reviewing() {
		return nil
	}
	selected := m.selection.Selected()
	if len(selected) == 0 {
		m.host.SetStatus("No items selected")
		return nil
	}

	s := m.session
	s.busy = true
	m.state = StateExecuting
	m.host.SetStatus(fmt.Sprintf("Replacing %d occurrences...", len(selected)))

	spec := replace.Spec{Pattern: s.Pattern, Replacement: s.Replacement, Regex: s.Regex}
	return func(ctx context.Context) func() {
		res, err := m.replacer.Apply(ctx, selected, spec)
		return func() { m.finishExecute(s, res, err) }
	}
}

func (m *Machine) finishExecute(s *Session, res replace.Result, err error) {
	s.busy = false
	if m.session != s {
		return
	}

	if err != nil {
		log.Printf("Session %s: replace rejected: %v", s.ID, err)
		m.state = StateReviewing
		switch {
		case errors.Is(err, replace.ErrNoSelection):
			m.host.SetStatus("No items selected")
		default:
			m.host.SetStatus(fmt.Sprintf("Replace failed: %v", err))
		}
		return
	}

	m.Close()

	if len(res.Errors) > 0 {
		m.host.SetStatus(fmt.Sprintf("Replaced in %d files (%d errors)", res.FilesModified, len(res.Errors)))
		log.Printf("Replacement errors: %s", strings.Join(res.Errors, ", "))
	} else {
		m.host.SetStatus(fmt.Sprintf("Replaced %d occurrences in %d files", res.Occurrences, res.FilesModified))
	}

	tasks := m.bus.Publish(eventbus.ReplaceCompletedEvent{
		SessionID:     s.ID,
		FilesModified: res.FilesModified,
		Occurrences:   res.Occurrences,
		Errors:        res.Errors,
	})
	if len(tasks) > 0 {
		log.Printf("Session %s: ignoring %d tasks returned by replace_completed handlers", s.ID, len(tasks))
	}
}

// Close drops the session and the panel
func (m *Machine) Close() domain.Task {
	if m.rejectBusy() || !m.panel.IsOpen() {
		return nil
	}
	m.discard()
	m.host.SetStatus("Search/Replace closed")
	return nil
}

// discard forgets the session, the selection and the panel
func (m *Machine) discard() {
	m.panel.Close()
	m.results.Reset()
	m.selection = selection.New(nil)
	m.session = nil
	m.pattern = ""
	m.state = StateIdle
}

func (m *Machine) reviewing() bool {
	if m.rejectBusy() {
		return false
	}
	return m.state == StateReviewing && m.session != nil
}

func (m *Machine) rejectBusy() bool {
	if !m.session.Busy() {
		return false
	}
	if m.state == StateExecuting {
		m.host.SetStatus("Replacement in progress...")
	} else {
		m.host.SetStatus("Search in progress...")
	}
	return true
}

func (m *Machine) refresh() {
	m.panel.UpdateContent(m.entries())
}

func (m *Machine) entries() []domain.Entry {
	return buildEntries(m.host.Cwd(), m.session, m.cfg.MaxResults)
}
