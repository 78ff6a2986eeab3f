package workflow

import (
	"fmt"
	"strings"

	"gitreplace/internal/domain"
	"gitreplace/internal/panel"
)

const (
	locationWidth = 40
	contentWidth  = 50

	helpLine = "[SPC] toggle  [a] all  [n] none  [r] REPLACE  [RET] preview  [q] close"
)

// buildEntries renders the panel for a session
func buildEntries(cwd string, s *Session, maxResults int) []domain.Entry {
	regexNote := ""
	if s.Regex {
		regexNote = " (regex)"
	}

	entries := []domain.Entry{
		{Text: "═══ Search & Replace ═══", Properties: domain.Properties{Type: domain.EntryHeader}},
		{Text: fmt.Sprintf("Search:  \"%s\"%s", s.Pattern, regexNote), Properties: domain.Properties{Type: domain.EntryInfo}},
		{Text: fmt.Sprintf("Replace: \"%s\"", s.Replacement), Properties: domain.Properties{Type: domain.EntryInfo}},
		{Properties: domain.Properties{Type: domain.EntrySpacer}},
	}

	if len(s.Matches) == 0 {
		entries = append(entries, domain.Entry{
			Text:       "  No matches found",
			Properties: domain.Properties{Type: domain.EntryEmpty},
		})
	} else {
		selected := 0
		for _, m := range s.Matches {
			if m.Selected {
				selected++
			}
		}
		limitNote := ""
		if len(s.Matches) >= maxResults {
			limitNote = fmt.Sprintf(" (limited to %d)", maxResults)
		}
		entries = append(entries,
			domain.Entry{
				Text:       fmt.Sprintf("Results: %d%s (%d selected)", len(s.Matches), limitNote, selected),
				Properties: domain.Properties{Type: domain.EntryCount},
			},
			domain.Entry{Properties: domain.Properties{Type: domain.EntrySpacer}},
		)

		for i, m := range s.Matches {
			loc := m.Location()
			entries = append(entries, domain.Entry{
				Text: formatResult(cwd, m),
				Properties: domain.Properties{
					Type:     domain.EntryResult,
					Index:    i,
					Location: &loc,
				},
			})
		}
	}

	return append(entries,
		domain.Entry{Text: panel.Separator, Properties: domain.Properties{Type: domain.EntrySeparator}},
		domain.Entry{Text: helpLine, Properties: domain.Properties{Type: domain.EntryHelp}},
	)
}

func formatResult(cwd string, m *domain.SearchMatch) string {
	checkbox := "[ ]"
	if m.Selected {
		checkbox = "[x]"
	}
	location := fmt.Sprintf("%s:%d", panel.RelativePath(cwd, m.File), m.Line)
	content := panel.FitRight(strings.TrimSpace(m.RawContent), contentWidth)
	return fmt.Sprintf("%s %s  %s", checkbox, panel.FitLeft(location, locationWidth), content)
}
