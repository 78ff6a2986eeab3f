package references

import (
	"context"
	"fmt"
	"log"
	"strings"

	"gitreplace/internal/domain"
	"gitreplace/internal/editor"
	"gitreplace/internal/eventbus"
	"gitreplace/internal/navigation"
	"gitreplace/internal/panel"
)

const (
	ActionGoto  = "references_goto"
	ActionNext  = "references_next"
	ActionPrev  = "references_prev"
	ActionClose = "references_close"
	ActionShow  = "show_references_panel"
	ActionHide  = "hide_references_panel"

	ModeName  = "references-list"
	PanelName = "*References*"

	// MaxResults caps the references shown in the panel
	MaxResults = 100

	locationWidth = 50
	previewWidth  = 60
	helpLine      = "[↑/↓/n/p] navigate  [RET] jump  [q/Esc] close"
)

// LineReader loads file content split into lines
type LineReader interface {
	ReadLines(path string) ([]string, error)
}

// Config tunes the plugin
type Config struct {
	MaxResults int
	SplitRatio float64
}

// DefaultConfig returns the stock settings
func DefaultConfig() Config {
	return Config{MaxResults: MaxResults, SplitRatio: 0.7}
}

// Reference is a location plus the text of its line
type Reference struct {
	domain.Location
	LineText string
}

// Plugin shows reference lookups in a read-only panel
type Plugin struct {
	host  editor.Host
	bus   eventbus.EventBus
	lines LineReader
	cfg   Config

	panel *panel.Presenter
	refs  *navigation.Controller[*Reference]

	symbol     string
	last       *eventbus.ReferencesFoundEvent
	generation int

	unsubscribe func()
}

// New creates the plugin
func New(host editor.Host, bus eventbus.EventBus, lines LineReader, cfg Config) *Plugin {
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = MaxResults
	}
	if cfg.SplitRatio <= 0 || cfg.SplitRatio >= 1 {
		cfg.SplitRatio = DefaultConfig().SplitRatio
	}
	return &Plugin{
		host:  host,
		bus:   bus,
		lines: lines,
		cfg:   cfg,
		panel: panel.New(host, PanelName, ModeName),
		refs: navigation.New(navigation.Options[*Reference]{
			Wrap: true,
			ItemLabel: func(r *Reference) string {
				return fmt.Sprintf("Reference %s:%d", r.File, r.Line)
			},
		}),
	}
}

// Register declares the hook, actions, mode and commands of the plugin
func (p *Plugin) Register() {
	p.unsubscribe = p.bus.Subscribe(eventbus.EventReferencesFound, p.onReferences)

	p.bus.RegisterAction(ActionGoto, p.Goto)
	p.bus.RegisterAction(ActionNext, p.Next)
	p.bus.RegisterAction(ActionPrev, p.Prev)
	p.bus.RegisterAction(ActionClose, p.Hide)
	p.bus.RegisterAction(ActionShow, p.Show)
	p.bus.RegisterAction(ActionHide, p.Hide)

	p.bus.DefineMode(domain.Mode{
		Name: ModeName,
		Bindings: []domain.KeyBinding{
			{Key: "Return", Action: ActionGoto},
			{Key: "n", Action: ActionNext},
			{Key: "p", Action: ActionPrev},
			{Key: "j", Action: ActionNext},
			{Key: "k", Action: ActionPrev},
			{Key: "Up", Action: ActionPrev},
			{Key: "Down", Action: ActionNext},
			{Key: "q", Action: ActionClose},
			{Key: "Escape", Action: ActionClose},
		},
		ReadOnly: true,
	})

	p.bus.RegisterCommand(domain.Command{
		Name:        "Show References Panel",
		Description: "Display current references",
		Action:      ActionShow,
		Context:     "normal",
	})
	p.bus.RegisterCommand(domain.Command{
		Name:        "Hide References Panel",
		Description: "Close the references panel",
		Action:      ActionHide,
		Context:     "normal",
	})

	log.Printf("Find References plugin initialized")
}

// Unregister drops the hook subscription
func (p *Plugin) Unregister() {
	if p.unsubscribe != nil {
		p.unsubscribe()
		p.unsubscribe = nil
	}
}

// References returns the references currently shown
func (p *Plugin) References() []*Reference {
	return p.refs.Items()
}

// Selected returns the index of the highlighted reference
func (p *Plugin) Selected() int {
	return p.refs.Index()
}

// Panel returns the panel state
func (p *Plugin) Panel() domain.PanelState {
	return p.panel.State()
}

func (p *Plugin) onReferences(e eventbus.DomainEvent) domain.Task {
	event, ok := e.(eventbus.ReferencesFoundEvent)
	if !ok {
		return nil
	}
	log.Printf("Received %d references for '%s'", len(event.Locations), event.Symbol)

	if len(event.Locations) == 0 {
		p.host.SetStatus(fmt.Sprintf("No references found for '%s'", event.Symbol))
		return nil
	}
	p.last = &event
	return p.load(event)
}

// load reads line previews off the event loop, then shows the panel
func (p *Plugin) load(event eventbus.ReferencesFoundEvent) domain.Task {
	p.generation++
	gen := p.generation

	locations := event.Locations
	if len(locations) > p.cfg.MaxResults {
		locations = locations[:p.cfg.MaxResults]
	}
	refs := make([]*Reference, len(locations))
	for i, loc := range locations {
		refs[i] = &Reference{Location: loc}
	}

	return func(ctx context.Context) func() {
		loadLineTexts(p.lines, refs)
		return func() {
			if gen != p.generation {
				return
			}
			p.show(event.Symbol, refs, len(event.Locations))
		}
	}
}

// loadLineTexts fills LineText from each file, reading every file once.
// Unreadable files leave their previews empty.
func loadLineTexts(lines LineReader, refs []*Reference) {
	cache := make(map[string][]string)
	failed := make(map[string]bool)
	for _, ref := range refs {
		if failed[ref.File] {
			continue
		}
		content, ok := cache[ref.File]
		if !ok {
			var err error
			content, err = lines.ReadLines(ref.File)
			if err != nil {
				log.Printf("References: cannot read %s: %v", ref.File, err)
				failed[ref.File] = true
				continue
			}
			cache[ref.File] = content
		}
		if idx := ref.Line - 1; idx >= 0 && idx < len(content) {
			ref.LineText = content[idx]
		}
	}
}

func (p *Plugin) show(symbol string, refs []*Reference, received int) {
	p.panel.Close()

	p.symbol = symbol
	p.refs.SetItems(refs)

	if err := p.panel.Open(p.entries(), p.cfg.SplitRatio); err != nil {
		log.Printf("ERROR: references panel open failed: %v", err)
		p.refs.Reset()
		p.host.SetStatus("Failed to open references panel")
		return
	}
	p.syncCursor()

	limitMsg := ""
	if received > p.cfg.MaxResults {
		limitMsg = fmt.Sprintf(" (showing first %d)", p.cfg.MaxResults)
	}
	p.host.SetStatus(fmt.Sprintf("Found %d reference(s)%s - ↑/↓ navigate, RET jump, q close", received, limitMsg))
}

// Show reopens the panel with the most recent lookup
func (p *Plugin) Show() domain.Task {
	if p.panel.IsOpen() {
		return nil
	}
	if p.last == nil {
		p.host.SetStatus("No references to show")
		return nil
	}
	return p.load(*p.last)
}

// Hide closes the panel
func (p *Plugin) Hide() domain.Task {
	if !p.panel.IsOpen() {
		return nil
	}
	p.generation++
	p.panel.Close()
	p.refs.Reset()
	p.symbol = ""
	p.host.SetStatus("References panel closed")
	return nil
}

// Next highlights the following reference, wrapping at the end
func (p *Plugin) Next() domain.Task {
	return p.move(p.refs.Next)
}

// Prev highlights the previous reference, wrapping at the start
func (p *Plugin) Prev() domain.Task {
	return p.move(p.refs.Prev)
}

func (p *Plugin) move(step func() int) domain.Task {
	if !p.panel.IsOpen() || p.refs.Len() == 0 {
		return nil
	}
	idx := step()
	log.Printf("References: %s (%d/%d)", p.refs.Label(), idx+1, p.refs.Len())
	p.panel.UpdateContent(p.entries())
	p.syncCursor()
	p.host.SetStatus(fmt.Sprintf("Reference %d/%d", idx+1, p.refs.Len()))
	return nil
}

// Goto opens the highlighted reference in the source split
func (p *Plugin) Goto() domain.Task {
	if p.refs.Len() == 0 {
		p.host.SetStatus("No references to jump to")
		return nil
	}
	if p.panel.State().SourceSplitID == domain.NoSplit {
		p.host.SetStatus("Source split not available")
		return nil
	}

	var loc domain.Location
	if props, ok := p.panel.PropertiesAtCursor(); ok {
		if props.Location == nil {
			p.host.SetStatus("No location info for this reference")
			return nil
		}
		loc = *props.Location
	} else {
		ref, _ := p.refs.Current()
		loc = ref.Location
	}

	if err := p.panel.JumpTo(loc); err != nil {
		log.Printf("References: jump to %s:%d failed: %v", loc.File, loc.Line, err)
		return nil
	}
	p.host.SetStatus(fmt.Sprintf("Jumped to %s:%d", panel.RelativePath(p.host.Cwd(), loc.File), loc.Line))
	return nil
}

// syncCursor puts the panel cursor on the highlighted reference line
func (p *Plugin) syncCursor() {
	if p.refs.Len() > 0 {
		p.panel.SetCursor(1 + p.refs.Index())
	}
}

func (p *Plugin) entries() []domain.Entry {
	limitNote := ""
	if p.refs.Len() >= p.cfg.MaxResults {
		limitNote = fmt.Sprintf(" (limited to %d)", p.cfg.MaxResults)
	}
	symbol := "symbol"
	if p.symbol != "" {
		symbol = "'" + p.symbol + "'"
	}

	entries := []domain.Entry{{
		Text:       fmt.Sprintf("═══ References to %s (%d%s) ═══", symbol, p.refs.Len(), limitNote),
		Properties: domain.Properties{Type: domain.EntryHeader},
	}}

	if p.refs.Len() == 0 {
		entries = append(entries, domain.Entry{
			Text:       "  No references found",
			Properties: domain.Properties{Type: domain.EntryEmpty},
		})
	}
	for i, ref := range p.refs.Items() {
		loc := ref.Location
		entries = append(entries, domain.Entry{
			Text: p.formatReference(ref, i),
			Properties: domain.Properties{
				Type:     domain.EntryReference,
				Index:    i,
				Location: &loc,
			},
		})
	}

	return append(entries,
		domain.Entry{Text: panel.Separator, Properties: domain.Properties{Type: domain.EntrySeparator}},
		domain.Entry{Text: helpLine, Properties: domain.Properties{Type: domain.EntryHelp}},
	)
}

func (p *Plugin) formatReference(ref *Reference, index int) string {
	marker := " "
	if index == p.refs.Index() {
		marker = ">"
	}
	location := fmt.Sprintf("%s:%d:%d", panel.RelativePath(p.host.Cwd(), ref.File), ref.Line, ref.Column)
	preview := panel.FitRight(strings.TrimSpace(ref.LineText), previewWidth)
	return fmt.Sprintf("%s %s │ %s", marker, panel.FitLeft(location, locationWidth), preview)
}
