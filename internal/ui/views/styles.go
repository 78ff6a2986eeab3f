package views

import (
	"github.com/charmbracelet/lipgloss"

	"gitreplace/internal/domain"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title         lipgloss.Style
	TitleFocused  lipgloss.Style
	Dim           lipgloss.Style
	Status        lipgloss.Style
	StatusError   lipgloss.Style
	StatusSuccess lipgloss.Style
	StatusLoading lipgloss.Style
	Prompt        lipgloss.Style
	Help          lipgloss.Style
	LineNumber    lipgloss.Style
	CursorLine    lipgloss.Style
	SelectionBg   lipgloss.Style
	Empty         lipgloss.Style

	// Panel entries by type
	Header    lipgloss.Style
	Info      lipgloss.Style
	Count     lipgloss.Style
	Result    lipgloss.Style
	Separator lipgloss.Style
	EntryHelp lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		TitleFocused: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Dim:           lipgloss.NewStyle().Faint(true),
		Status:        lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		StatusSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
		StatusLoading: lipgloss.NewStyle().Foreground(lipgloss.Color("241")), // gray
		Prompt:        lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		Help:          lipgloss.NewStyle().Faint(true),
		LineNumber:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		CursorLine:    lipgloss.NewStyle().Background(lipgloss.Color("236")),
		SelectionBg:   lipgloss.NewStyle().Background(lipgloss.Color("238")),
		Empty:         lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),

		Header:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")),
		Info:      lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		Count:     lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		Result:    lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Separator: lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		EntryHelp: lipgloss.NewStyle().Faint(true),
	}
}

// ForEntry returns the style of a panel entry type
func (s *Styles) ForEntry(t domain.EntryType) lipgloss.Style {
	switch t {
	case domain.EntryHeader:
		return s.Header
	case domain.EntryInfo:
		return s.Info
	case domain.EntryCount:
		return s.Count
	case domain.EntryResult, domain.EntryReference:
		return s.Result
	case domain.EntrySeparator:
		return s.Separator
	case domain.EntryHelp:
		return s.EntryHelp
	case domain.EntryEmpty:
		return s.Empty
	default:
		return lipgloss.NewStyle()
	}
}

// ForStatus picks a status style from the message wording
func (s *Styles) ForStatus(msg string) lipgloss.Style {
	switch {
	case containsAny(msg, "error", "Error", "Failed", "failed"):
		return s.StatusError
	case containsAny(msg, "Replaced", "Found"):
		return s.StatusSuccess
	case containsAny(msg, "...", "in progress"):
		return s.StatusLoading
	default:
		return s.Status
	}
}
