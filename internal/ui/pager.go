package ui

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/noborus/ov/oviewer"

	"gitreplace/internal/domain"
)

var errNoProgram = errors.New("program not set")

// Pager shows long text in ov while the Bubble Tea program is suspended
type Pager struct {
	program *tea.Program // reference to Bubble Tea program for terminal management
}

// Show hands the terminal to ov until the user quits it
func (p *Pager) Show(content string) error {
	if p == nil || p.program == nil {
		return errNoProgram
	}

	if err := p.program.ReleaseTerminal(); err != nil {
		return err
	}

	// Ensure terminal is restored even if ov fails
	defer func() {
		// Small delay to ensure ov has fully exited before restoring terminal
		time.Sleep(100 * time.Millisecond)
		_ = p.program.RestoreTerminal()
	}()

	root, err := oviewer.NewRoot(strings.NewReader(content))
	if err != nil {
		return err
	}

	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}

// showInPager returns a command that renders content and shows it in ov
func (m *Model) showInPager(what string, content func() (string, error)) tea.Cmd {
	return func() tea.Msg {
		text, err := content()
		if err != nil {
			return pagerMsg{what: what, err: err}
		}

		m.send(pauseRenderingMsg{})
		err = m.pager.Show(text)
		m.send(resumeRenderingMsg{})

		return pagerMsg{what: what, err: err}
	}
}

func (m *Model) send(msg tea.Msg) {
	if m.program != nil {
		m.program.Send(msg)
	}
}

// readLog loads the diagnostic log for the pager
func readLog(path string) (string, error) {
	if path == "" {
		return "", errors.New("no log file configured")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading log: %w", err)
	}
	if len(data) == 0 {
		return "(log is empty)\n", nil
	}
	return string(data), nil
}

// HelpRenderer renders the help page shown in the pager
type HelpRenderer struct {
	title   lipgloss.Style
	section lipgloss.Style
	key     lipgloss.Style
	desc    lipgloss.Style
	note    lipgloss.Style
}

// NewHelpRenderer creates a new help renderer
func NewHelpRenderer() *HelpRenderer {
	return &HelpRenderer{
		title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			MarginBottom(1),
		section: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			MarginTop(1),
		key:  lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		desc: lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		note: lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241")),
	}
}

// Render builds the help page from the host keys, the plugin modes and the
// registered commands
func (r *HelpRenderer) Render(keys keyMap, modes []domain.Mode, commands []domain.Command) string {
	var help strings.Builder

	help.WriteString(r.title.Render("gitreplace Help"))
	help.WriteString("\n")

	sections := []string{"Navigation", "Plugins", "Other"}
	for i, group := range keys.FullHelp() {
		r.writeSection(&help, sections[i], group)
	}

	for _, mode := range modes {
		r.writeSection(&help, fmt.Sprintf("Panel keys (%s)", mode.Name), modeBindings(mode))
	}

	if len(commands) > 0 {
		sorted := append([]domain.Command(nil), commands...)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

		help.WriteString(r.section.Render("Commands"))
		help.WriteString("\n")
		for _, c := range sorted {
			help.WriteString(fmt.Sprintf("  %s %s\n", r.key.Render(fmt.Sprintf("%-24s", c.Name)), r.desc.Render(c.Description)))
		}
		help.WriteString("\n")
	}

	help.WriteString(r.note.Render("  Replacement templates accept $1, ${name} and $& in regex mode; $$ is a literal $."))
	help.WriteString("\n")
	return help.String()
}

func (r *HelpRenderer) writeSection(b *strings.Builder, name string, bindings []key.Binding) {
	b.WriteString(r.section.Render(name))
	b.WriteString("\n")
	for _, kb := range bindings {
		h := kb.Help()
		b.WriteString(fmt.Sprintf("  %s %s\n", r.key.Render(fmt.Sprintf("%-16s", h.Key)), r.desc.Render(h.Desc)))
	}
	b.WriteString("\n")
}
