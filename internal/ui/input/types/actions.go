package types

// Navigation actions
type NavigateAction struct {
	Direction string // "up", "down", "pageup", "pagedown", "home", "end", "left", "right"
}

func (a NavigateAction) Type() string { return "navigate" }

// InvokeAction runs a registered plugin action
type InvokeAction struct {
	Name string
}

func (a InvokeAction) Type() string { return "invoke" }

// Text input actions
type SubmitTextAction struct {
	Text string
}

func (a SubmitTextAction) Type() string { return "submit_text" }

type CancelTextAction struct{}

func (a CancelTextAction) Type() string { return "cancel_text" }

// Editor actions
type FocusNextAction struct{}

func (a FocusNextAction) Type() string { return "focus_next" }

type FindReferencesAction struct{}

func (a FindReferencesAction) Type() string { return "find_references" }

type ToggleHelpAction struct{}

func (a ToggleHelpAction) Type() string { return "toggle_help" }

type OpenLogAction struct{}

func (a OpenLogAction) Type() string { return "open_log" }

type QuitAction struct {
	Force bool
}

func (a QuitAction) Type() string { return "quit" }

