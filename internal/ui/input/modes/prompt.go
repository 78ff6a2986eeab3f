package modes

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"gitreplace/internal/ui/input/types"
)

// PromptMode reads one line of text for a plugin prompt
type PromptMode struct {
	textInput *textinput.Model
}

func NewPromptMode(ti *textinput.Model) *PromptMode {
	return &PromptMode{textInput: ti}
}

func (m *PromptMode) Name() string {
	return "prompt"
}

func (m *PromptMode) Enter(ctx types.Context) []types.Action {
	if m.textInput != nil {
		m.textInput.Reset()
		m.textInput.Focus()
		m.textInput.Prompt = "" // label is drawn by the model
	}
	return nil
}

func (m *PromptMode) Exit(ctx types.Context) []types.Action {
	if m.textInput != nil {
		m.textInput.Blur()
		m.textInput.Reset()
	}
	return nil
}

func (m *PromptMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "ctrl+c":
		return []types.Action{types.QuitAction{Force: true}}, true
	case "esc":
		return []types.Action{types.CancelTextAction{}}, true
	case "enter":
		text := ""
		if m.textInput != nil {
			text = m.textInput.Value()
		}
		return []types.Action{types.SubmitTextAction{Text: text}}, true
	default:
		// handler feeds the key to the text input
		return nil, false
	}
}
