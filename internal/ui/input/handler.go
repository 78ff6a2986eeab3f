package input

import (
	"log"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"gitreplace/internal/ui/input/modes"
	"gitreplace/internal/ui/input/types"
)

type Handler struct {
	currentMode types.Mode
	modes       map[types.Mode]types.ModeHandler
	textInput   *textinput.Model // shared by the prompt mode
}

func New() *Handler {
	ti := textinput.New()
	ti.Prompt = ""

	h := &Handler{
		currentMode: types.ModeNormal,
		textInput:   &ti,
		modes:       make(map[types.Mode]types.ModeHandler),
	}

	h.modes[types.ModeNormal] = modes.NewNormalMode()
	h.modes[types.ModePanel] = modes.NewPanelMode()
	h.modes[types.ModePrompt] = modes.NewPromptMode(h.textInput)

	return h
}

// HandleKey routes a key to the current mode. Keys the prompt mode does not
// consume are fed to the text input.
func (h *Handler) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, tea.Cmd) {
	handler := h.modes[h.currentMode]
	if handler == nil {
		return nil, nil
	}

	actions, consumed := handler.HandleKey(msg, ctx)
	if consumed {
		return actions, nil
	}

	if h.currentMode == types.ModePrompt {
		var cmd tea.Cmd
		*h.textInput, cmd = h.textInput.Update(msg)
		return nil, cmd
	}
	return nil, nil
}

// SetMode switches modes, running the exit and enter hooks
func (h *Handler) SetMode(mode types.Mode, ctx types.Context) ([]types.Action, tea.Cmd) {
	if mode == h.currentMode {
		return nil, nil
	}

	var actions []types.Action
	from, to := "none", "none"
	if old := h.modes[h.currentMode]; old != nil {
		from = old.Name()
		actions = append(actions, old.Exit(ctx)...)
	}
	h.currentMode = mode
	if next := h.modes[mode]; next != nil {
		to = next.Name()
		actions = append(actions, next.Enter(ctx)...)
	}
	log.Printf("Input mode %s -> %s", from, to)

	if mode == types.ModePrompt {
		return actions, textinput.Blink
	}
	return actions, nil
}

func (h *Handler) CurrentMode() types.Mode {
	if h == nil {
		return types.ModeNormal
	}
	return h.currentMode
}

// TextInput returns the prompt input while the prompt is active
func (h *Handler) TextInput() *textinput.Model {
	if h.currentMode == types.ModePrompt {
		return h.textInput
	}
	return nil
}

// Update handles non-keyboard messages for the text input
func (h *Handler) Update(msg tea.Msg) tea.Cmd {
	if h.currentMode == types.ModePrompt {
		var cmd tea.Cmd
		*h.textInput, cmd = h.textInput.Update(msg)
		return cmd
	}
	return nil
}
