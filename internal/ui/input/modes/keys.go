package modes

import tea "github.com/charmbracelet/bubbletea"

// KeyName converts a key message to the name used by mode keybindings
func KeyName(msg tea.KeyMsg) string {
	switch msg.Type {
	case tea.KeyEnter:
		return "Return"
	case tea.KeySpace:
		return "space"
	case tea.KeyEsc:
		return "Escape"
	case tea.KeyUp:
		return "Up"
	case tea.KeyDown:
		return "Down"
	case tea.KeyLeft:
		return "Left"
	case tea.KeyRight:
		return "Right"
	}
	if s := msg.String(); s != " " {
		return s
	}
	return "space"
}
