package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"gitreplace/internal/ui/input/types"
	"gitreplace/internal/workflow"
)

// NormalMode handles keys while the source split is focused
type NormalMode struct{}

func NewNormalMode() *NormalMode {
	return &NormalMode{}
}

func (m *NormalMode) Name() string {
	return "normal"
}

func (m *NormalMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	if actions, ok := globalKey(msg, ctx); ok {
		return actions, true
	}

	switch msg.Type {
	case tea.KeyUp:
		return navigate("up"), true
	case tea.KeyDown:
		return navigate("down"), true
	case tea.KeyLeft:
		return navigate("left"), true
	case tea.KeyRight:
		return navigate("right"), true
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
	case "h":
		return navigate("left"), true
	case "l":
		return navigate("right"), true
	case "g":
		return navigate("home"), true
	case "G":
		return navigate("end"), true
	case "q":
		return []types.Action{types.QuitAction{}}, true
	}
	return nil, false
}

// globalKey handles the keys that work in both the source split and panels
func globalKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "ctrl+c", "Q":
		return []types.Action{types.QuitAction{Force: true}}, true
	case "ctrl+r":
		return []types.Action{types.InvokeAction{Name: workflow.ActionStart}}, true
	case "ctrl+f":
		return []types.Action{types.FindReferencesAction{}}, true
	case "tab":
		if ctx.HasPanel() {
			return []types.Action{types.FocusNextAction{}}, true
		}
	case "?":
		return []types.Action{types.ToggleHelpAction{}}, true
	case "L":
		return []types.Action{types.OpenLogAction{}}, true
	}
	return nil, false
}

func navigate(direction string) []types.Action {
	return []types.Action{types.NavigateAction{Direction: direction}}
}
