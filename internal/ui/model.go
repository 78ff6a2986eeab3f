package ui

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"gitreplace/internal/domain"
	"gitreplace/internal/eventbus"
	"gitreplace/internal/fsio"
	"gitreplace/internal/git"
	"gitreplace/internal/panel"
	"gitreplace/internal/ui/input"
	inputtypes "gitreplace/internal/ui/input/types"
	"gitreplace/internal/ui/state"
	"gitreplace/internal/ui/views"
)

// Options configures the host
type Options struct {
	Cwd     string
	LogFile string
}

// Model represents the UI state
type Model struct {
	ctx   context.Context
	bus   eventbus.EventBus
	files *fsio.Store
	grep  git.GrepService
	state *state.AppState // centralized state

	// UI-specific state not in AppState
	width   int
	height  int
	help    help.Model
	keys    keyMap
	source  viewport.Model
	logFile string

	renderer     *views.Renderer
	styles       *views.Styles
	helpRenderer *HelpRenderer
	inputHandler *input.Handler
	pager        *Pager

	// commands queued by host calls made outside Update, flushed on return
	pending     []tea.Cmd
	unsubscribe func()

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates the editor host. Plugins register against bus before or
// after; the host only talks to them through it.
func NewModel(ctx context.Context, bus eventbus.EventBus, files *fsio.Store, grep git.GrepService, opts Options) *Model {
	styles := views.NewStyles()
	m := &Model{
		ctx:          ctx,
		bus:          bus,
		files:        files,
		grep:         grep,
		state:        state.NewAppState(opts.Cwd),
		help:         help.New(),
		keys:         newKeyMap(),
		source:       viewport.New(80, 20),
		logFile:      opts.LogFile,
		renderer:     views.NewRenderer(styles),
		styles:       styles,
		helpRenderer: NewHelpRenderer(),
		inputHandler: input.New(),
		pager:        &Pager{},
	}
	m.unsubscribe = bus.Subscribe(eventbus.EventReplaceCompleted, m.onReplaceCompleted)
	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.pager.program = p
}

// Close drops the host's bus subscriptions
func (m *Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
}

// State exposes the editor state to the program owner
func (m *Model) State() *state.AppState {
	return m.state
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.layout()
		return m, nil

	case tea.KeyMsg:
		if m.state.InPagerMode {
			return m, nil
		}

		actions, cmd := m.inputHandler.HandleKey(msg, m)
		cmds := []tea.Cmd{cmd}
		for _, action := range actions {
			cmds = append(cmds, m.processAction(action))
		}
		cmds = append(cmds, m.flush())
		return m, tea.Batch(cmds...)

	case taskDoneMsg:
		if msg.apply != nil {
			msg.apply()
		}
		return m, m.flush()

	default:
		if cmd := m.inputHandler.Update(msg); cmd != nil {
			return m, cmd
		}
		return m.handleNonKeyboardMsg(msg)
	}
}

func (m *Model) handleNonKeyboardMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case pagerMsg:
		if msg.err != nil {
			log.Printf("%s pager failed: %v", msg.what, msg.err)
			m.state.StatusMessage = fmt.Sprintf("Failed to open %s: %v", msg.what, msg.err)
			return m, tea.Tick(3*time.Second, func(t time.Time) tea.Msg { return clearStatusMsg{} })
		}
		// RestoreTerminal() has already restored the screen
		return m, nil

	case pauseRenderingMsg:
		m.state.InPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		m.state.InPagerMode = false
		return m, nil

	case clearStatusMsg:
		m.state.StatusMessage = ""
		return m, nil
	}
	return m, nil
}

// processAction processes an action from the input handler
func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	switch a := action.(type) {
	case inputtypes.NavigateAction:
		m.navigate(a.Direction)

	case inputtypes.InvokeAction:
		m.invoke(a.Name)

	case inputtypes.SubmitTextAction:
		m.submitPrompt(a.Text)

	case inputtypes.CancelTextAction:
		m.cancelPrompt()

	case inputtypes.FocusNextAction:
		m.state.FocusNext()
		m.syncMode()

	case inputtypes.FindReferencesAction:
		m.findReferences()

	case inputtypes.ToggleHelpAction:
		return m.showInPager("help", func() (string, error) {
			return m.helpRenderer.Render(m.keys, m.pluginModes(), m.bus.Commands()), nil
		})

	case inputtypes.OpenLogAction:
		return m.showInPager("log", func() (string, error) { return readLog(m.logFile) })

	case inputtypes.QuitAction:
		log.Printf("Quit requested (force=%v)", a.Force)
		return tea.Quit

	default:
		log.Printf("Unhandled action %s", action.Type())
	}
	return nil
}

func (m *Model) navigate(direction string) {
	page := max(m.state.ViewportHeight-1, 1)

	if p := m.state.FocusedPanel(); p != nil {
		switch direction {
		case "up":
			p.MoveCursor(-1)
		case "down":
			p.MoveCursor(1)
		case "pageup":
			p.MoveCursor(-page)
		case "pagedown":
			p.MoveCursor(page)
		case "home":
			p.MoveCursor(-len(p.Entries))
		case "end":
			p.MoveCursor(len(p.Entries))
		}
		return
	}

	switch direction {
	case "up":
		m.state.MoveCursor(-1, 0)
	case "down":
		m.state.MoveCursor(1, 0)
	case "left":
		m.state.MoveCursor(0, -1)
	case "right":
		m.state.MoveCursor(0, 1)
	case "pageup":
		m.state.MoveCursor(-page, 0)
	case "pagedown":
		m.state.MoveCursor(page, 0)
	case "home":
		m.state.MoveCursor(-len(m.state.Lines), 0)
	case "end":
		m.state.MoveCursor(len(m.state.Lines), 0)
	}
}

// invoke runs a registered plugin action
func (m *Model) invoke(name string) {
	task, err := m.bus.Invoke(name)
	if err != nil {
		log.Printf("Invoke %s: %v", name, err)
		m.SetStatus(fmt.Sprintf("Error: %v", err))
		return
	}
	m.schedule(task)
}

func (m *Model) submitPrompt(text string) {
	promptType := m.state.PromptType
	m.closePrompt()
	m.schedule(m.bus.Publish(eventbus.PromptConfirmedEvent{
		PromptType:    promptType,
		Input:         text,
		SelectedIndex: -1,
	})...)
}

func (m *Model) cancelPrompt() {
	promptType := m.state.PromptType
	m.closePrompt()
	m.schedule(m.bus.Publish(eventbus.PromptCancelledEvent{PromptType: promptType})...)
}

// closePrompt runs before the hooks fire so a handler can open the next prompt
func (m *Model) closePrompt() {
	m.state.PromptLabel = ""
	m.state.PromptType = ""
	m.syncMode()
}

// findReferences greps the word under the source cursor and hands the
// locations to lsp_references subscribers
func (m *Model) findReferences() {
	word := m.state.WordAtCursor()
	if word == "" {
		m.SetStatus("No word under cursor")
		return
	}
	m.SetStatus(fmt.Sprintf("Finding references to '%s'...", word))

	m.schedule(func(ctx context.Context) func() {
		matches, err := m.grep.Search(ctx, word, git.Options{WholeWord: true})
		return func() {
			if err != nil {
				log.Printf("Reference lookup for %q failed: %v", word, err)
				m.SetStatus(fmt.Sprintf("Reference lookup failed: %v", err))
				return
			}
			locations := make([]domain.Location, len(matches))
			for i, match := range matches {
				locations[i] = match.Location()
			}
			m.schedule(m.bus.Publish(eventbus.ReferencesFoundEvent{Symbol: word, Locations: locations})...)
		}
	})
}

// onReplaceCompleted reloads the file in the source split so it shows the
// replaced text
func (m *Model) onReplaceCompleted(e eventbus.DomainEvent) domain.Task {
	if m.state.File == "" {
		return nil
	}
	lines, err := m.files.ReadLines(m.state.File)
	if err != nil {
		log.Printf("Reloading %s: %v", m.state.File, err)
		return nil
	}
	line, col := m.state.CursorLine, m.state.CursorCol
	m.state.Lines = lines
	m.state.JumpTo(line+1, col+1)
	return nil
}

// schedule queues tasks to run off the Update loop
func (m *Model) schedule(tasks ...domain.Task) {
	for _, task := range tasks {
		if task == nil {
			continue
		}
		t := task
		ctx := m.ctx
		m.pending = append(m.pending, func() tea.Msg {
			return taskDoneMsg{apply: t(ctx)}
		})
	}
}

func (m *Model) flush() tea.Cmd {
	cmds := m.pending
	m.pending = nil
	return tea.Batch(cmds...)
}

// syncMode puts the input handler in the mode matching prompt and focus
func (m *Model) syncMode() {
	mode := inputtypes.ModeNormal
	switch {
	case m.state.PromptType != "":
		mode = inputtypes.ModePrompt
	case m.state.FocusedPanel() != nil:
		mode = inputtypes.ModePanel
	}
	if _, cmd := m.inputHandler.SetMode(mode, m); cmd != nil {
		m.pending = append(m.pending, cmd)
	}
}

// PanelMode implements inputtypes.Context
func (m *Model) PanelMode() (domain.Mode, bool) {
	p := m.state.FocusedPanel()
	if p == nil || p.Mode == "" {
		return domain.Mode{}, false
	}
	return m.bus.Mode(p.Mode)
}

// HasPanel implements inputtypes.Context
func (m *Model) HasPanel() bool {
	return len(m.state.Panels) > 0
}

func (m *Model) pluginModes() []domain.Mode {
	seen := make(map[string]bool)
	var modes []domain.Mode
	for _, p := range m.state.Panels {
		if seen[p.Mode] {
			continue
		}
		seen[p.Mode] = true
		if mode, ok := m.bus.Mode(p.Mode); ok {
			modes = append(modes, mode)
		}
	}
	return modes
}

// layout splits the window between the source split and the panels
func (m *Model) layout() (sourceHeight int, panelHeights []int) {
	avail := max(m.height-2, 1) // status and prompt/help lines
	if len(m.state.Panels) == 0 {
		sourceHeight = avail
	} else {
		top := m.state.Panels[len(m.state.Panels)-1]
		ratio := top.Ratio
		if ratio <= 0 || ratio >= 1 {
			ratio = 0.5
		}
		sourceHeight = max(int(float64(avail)*ratio), 3)
		rest := max(avail-sourceHeight, 2*len(m.state.Panels))
		panelHeights = make([]int, len(m.state.Panels))
		for i := range panelHeights {
			panelHeights[i] = rest / len(panelHeights)
		}
		panelHeights[len(panelHeights)-1] += rest % len(panelHeights)
	}

	m.state.ViewportHeight = max(sourceHeight-1, 1)
	m.source.Width = m.width
	m.source.Height = m.state.ViewportHeight
	for i, h := range panelHeights {
		m.state.Panels[i].EnsureVisible(h - 1)
	}
	return sourceHeight, panelHeights
}

// View renders the UI
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	sourceHeight, panelHeights := m.layout()
	focusedSource := m.state.Focus == state.FocusSource

	var parts []string
	if m.state.File == "" {
		parts = append(parts, m.renderer.RenderEmptySource(m.state.Cwd, m.width, sourceHeight))
	} else {
		title := fmt.Sprintf("%s:%d:%d",
			panel.RelativePath(m.state.Cwd, m.state.File), m.state.CursorLine+1, m.state.CursorCol+1)
		m.source.SetContent(m.renderer.SourceLines(m.state.Lines, m.state.CursorLine, m.width))
		m.source.SetYOffset(m.state.ViewportOffset)
		parts = append(parts, m.renderer.RenderTitle(title, focusedSource, m.width), m.source.View())
	}

	focused := m.state.FocusedPanel()
	for i, p := range m.state.Panels {
		parts = append(parts, m.renderer.RenderPanel(views.PanelView{
			Title:   p.Name,
			Entries: p.Entries,
			Cursor:  p.Cursor,
			Offset:  p.Offset,
			Focused: p == focused,
		}, m.width, panelHeights[i]))
	}

	parts = append(parts, m.renderer.RenderStatus(m.state.StatusMessage, m.width), m.bottomLine())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// bottomLine is the prompt while one is active, otherwise the key help
func (m *Model) bottomLine() string {
	if ti := m.inputHandler.TextInput(); ti != nil {
		return m.styles.Prompt.Render(m.state.PromptLabel) + ti.View()
	}
	var bindings []key.Binding
	if mode, ok := m.PanelMode(); ok {
		bindings = modeBindings(mode)
	} else {
		bindings = m.keys.ShortHelp()
	}
	return m.help.ShortHelpView(bindings)
}
