package selection

import "gitreplace/internal/domain"

// Model flips the "will be replaced" flag on a borrowed match sequence.
// It never copies the matches, so changes are visible to every holder.
type Model struct {
	matches []*domain.SearchMatch
}

// New wraps matches
func New(matches []*domain.SearchMatch) *Model {
	return &Model{matches: matches}
}

// Toggle flips the selection at index; out of range is a no-op
func (m *Model) Toggle(index int) bool {
	if index < 0 || index >= len(m.matches) {
		return false
	}
	m.matches[index].Selected = !m.matches[index].Selected
	return true
}

// SelectAll marks every match selected
func (m *Model) SelectAll() {
	for _, match := range m.matches {
		match.Selected = true
	}
}

// SelectNone clears every selection
func (m *Model) SelectNone() {
	for _, match := range m.matches {
		match.Selected = false
	}
}

// Selected returns the selected matches in original order
func (m *Model) Selected() []*domain.SearchMatch {
	var selected []*domain.SearchMatch
	for _, match := range m.matches {
		if match.Selected {
			selected = append(selected, match)
		}
	}
	return selected
}

// Count returns the number of selected matches
func (m *Model) Count() int {
	count := 0
	for _, match := range m.matches {
		if match.Selected {
			count++
		}
	}
	return count
}

// Len returns the total number of matches
func (m *Model) Len() int {
	return len(m.matches)
}
