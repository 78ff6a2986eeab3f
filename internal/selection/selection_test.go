package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitreplace/internal/domain"
)

func newMatches(n int) []*domain.SearchMatch {
	matches := make([]*domain.SearchMatch, n)
	for i := range matches {
		matches[i] = &domain.SearchMatch{File: "f.go", Line: i + 1, Column: 1, Selected: true}
	}
	return matches
}

func TestSelectAllAndNone(t *testing.T) {
	matches := newMatches(4)
	m := New(matches)

	m.SelectNone()
	assert.Empty(t, m.Selected())
	assert.Zero(t, m.Count())

	m.SelectAll()
	assert.Len(t, m.Selected(), len(matches))
	assert.Equal(t, 4, m.Count())
}

func TestToggleFlipsOnlyIndex(t *testing.T) {
	matches := newMatches(3)
	m := New(matches)

	require.True(t, m.Toggle(1))
	assert.True(t, matches[0].Selected)
	assert.False(t, matches[1].Selected)
	assert.True(t, matches[2].Selected)

	require.True(t, m.Toggle(1))
	assert.True(t, matches[1].Selected)
}

func TestToggleOutOfRange(t *testing.T) {
	matches := newMatches(2)
	m := New(matches)

	assert.False(t, m.Toggle(-1))
	assert.False(t, m.Toggle(2))
	assert.Equal(t, 2, m.Count())
}

func TestSelectedPreservesOrder(t *testing.T) {
	matches := newMatches(5)
	m := New(matches)
	m.Toggle(0)
	m.Toggle(3)

	selected := m.Selected()
	require.Len(t, selected, 3)
	assert.Equal(t, []int{2, 3, 5}, []int{selected[0].Line, selected[1].Line, selected[2].Line})
	assert.Same(t, matches[1], selected[0], "selection borrows the session's matches")
	assert.LessOrEqual(t, m.Count(), m.Len())
}

func TestEmptyModel(t *testing.T) {
	m := New(nil)
	m.SelectAll()
	m.SelectNone()
	assert.False(t, m.Toggle(0))
	assert.Equal(t, 0, m.Len())
	assert.Empty(t, m.Selected())
}
