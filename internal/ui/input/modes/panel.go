package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"gitreplace/internal/ui/input/types"
)

// PanelMode handles keys while a plugin panel is focused. Keys bound by the
// panel's buffer mode win over the built-in navigation.
type PanelMode struct{}

func NewPanelMode() *PanelMode {
	return &PanelMode{}
}

func (m *PanelMode) Name() string {
	return "panel"
}

func (m *PanelMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *PanelMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *PanelMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	if mode, ok := ctx.PanelMode(); ok {
		if action, bound := mode.ActionFor(KeyName(msg)); bound {
			return []types.Action{types.InvokeAction{Name: action}}, true
		}
	}

	if actions, ok := globalKey(msg, ctx); ok {
		return actions, true
	}

	switch msg.Type {
	case tea.KeyUp:
		return navigate("up"), true
	case tea.KeyDown:
		return navigate("down"), true
	case tea.KeyPgUp:
		return navigate("pageup"), true
	case tea.KeyPgDown:
		return navigate("pagedown"), true
	case tea.KeyHome:
		return navigate("home"), true
	case tea.KeyEnd:
		return navigate("end"), true
	}

	switch msg.String() {
	case "j":
		return navigate("down"), true
	case "k":
		return navigate("up"), true
	case "g":
		return navigate("home"), true
	case "G":
		return navigate("end"), true
	}
	return nil, false
}
