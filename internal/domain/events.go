package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventPromptConfirmed  EventType = "prompt_confirmed"
	EventPromptCancelled  EventType = "prompt_cancelled"
	EventReferencesFound  EventType = "lsp_references"
	EventReplaceCompleted EventType = "replace_completed"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// PromptConfirmedEvent is emitted when the user confirms a prompt
type PromptConfirmedEvent struct {
	PromptType    string
	Input         string
	SelectedIndex int // -1 when no suggestion was picked
}

func (e PromptConfirmedEvent) Type() EventType { return EventPromptConfirmed }

// PromptCancelledEvent is emitted when the user dismisses a prompt
type PromptCancelledEvent struct {
	PromptType string
}

func (e PromptCancelledEvent) Type() EventType { return EventPromptCancelled }

// ReferencesFoundEvent is emitted when a reference lookup has results
type ReferencesFoundEvent struct {
	Symbol    string
	Locations []Location
}

func (e ReferencesFoundEvent) Type() EventType { return EventReferencesFound }

// ReplaceCompletedEvent is emitted after a replacement run has finished
type ReplaceCompletedEvent struct {
	SessionID     string
	FilesModified int
	Occurrences   int
	Errors        []string
}

func (e ReplaceCompletedEvent) Type() EventType { return EventReplaceCompleted }
