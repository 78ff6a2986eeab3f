package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"gitreplace/internal/domain"
)

// PanelView is what the renderer needs to draw a panel split
type PanelView struct {
	Title   string
	Entries []domain.Entry
	Cursor  int
	Offset  int
	Focused bool
}

// Renderer draws the splits of the editor
type Renderer struct {
	styles *Styles
}

// NewRenderer creates a renderer
func NewRenderer(styles *Styles) *Renderer {
	return &Renderer{styles: styles}
}

// RenderTitle draws the one-line title bar of a split
func (r *Renderer) RenderTitle(title string, focused bool, width int) string {
	style := r.styles.Title
	if focused {
		style = r.styles.TitleFocused
	}
	return style.Render(runewidth.Truncate("── "+title+" ", width, ""))
}

// RenderPanel draws height lines of a panel, starting at Offset
func (r *Renderer) RenderPanel(p PanelView, width, height int) string {
	lines := make([]string, 0, height)
	lines = append(lines, r.RenderTitle(p.Title, p.Focused, width))

	for i := p.Offset; i < len(p.Entries) && len(lines) < height; i++ {
		e := p.Entries[i]
		text := runewidth.Truncate(e.Text, width, "")
		style := r.styles.ForEntry(e.Properties.Type)
		if i == p.Cursor && p.Focused {
			text = runewidth.FillRight(text, width)
			style = style.Inherit(r.styles.SelectionBg).Background(r.styles.SelectionBg.GetBackground())
		}
		lines = append(lines, style.Render(text))
	}
	return padLines(lines, height)
}

// SourceLines formats file lines with a line number gutter and marks the
// cursor line
func (r *Renderer) SourceLines(lines []string, cursor int, width int) string {
	gutter := len(fmt.Sprint(len(lines)))
	var b strings.Builder
	for i, line := range lines {
		num := r.styles.LineNumber.Render(fmt.Sprintf("%*d ", gutter, i+1))
		text := strings.ReplaceAll(line, "\t", "    ")
		text = runewidth.Truncate(text, max(width-gutter-1, 1), "")
		if i == cursor {
			text = r.styles.CursorLine.Render(runewidth.FillRight(text, max(width-gutter-1, 1)))
		}
		b.WriteString(num)
		b.WriteString(text)
		if i < len(lines)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// RenderStatus draws the status line
func (r *Renderer) RenderStatus(msg string, width int) string {
	return r.styles.ForStatus(msg).Render(runewidth.Truncate(msg, width, "…"))
}

// RenderEmptySource is shown before any file was opened
func (r *Renderer) RenderEmptySource(cwd string, width, height int) string {
	lines := []string{
		"",
		r.styles.TitleFocused.Render("gitreplace"),
		r.styles.Dim.Render(runewidth.Truncate(cwd, width, "…")),
		"",
		r.styles.Help.Render("ctrl+r  search and replace in project"),
		r.styles.Help.Render("ctrl+f  find references of the word under the cursor"),
		r.styles.Help.Render("?       help"),
	}
	block := lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(strings.Join(lines, "\n"))
	return padLines(strings.Split(block, "\n"), height)
}

func padLines(lines []string, height int) string {
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
