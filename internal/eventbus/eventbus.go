package eventbus

import (
	"errors"
	"fmt"
	"log"
	"runtime/debug"
	"sort"
	"sync"

	"gitreplace/internal/domain"
)

// Re-export domain types for convenience
type DomainEvent = domain.DomainEvent
type EventType = domain.EventType

// Event type constants
const (
	EventPromptConfirmed  = domain.EventPromptConfirmed
	EventPromptCancelled  = domain.EventPromptCancelled
	EventReferencesFound  = domain.EventReferencesFound
	EventReplaceCompleted = domain.EventReplaceCompleted
)

// Re-export domain event types
type PromptConfirmedEvent = domain.PromptConfirmedEvent
type PromptCancelledEvent = domain.PromptCancelledEvent
type ReferencesFoundEvent = domain.ReferencesFoundEvent
type ReplaceCompletedEvent = domain.ReplaceCompletedEvent

// ErrUnknownAction is returned when invoking an action nobody registered
var ErrUnknownAction = errors.New("unknown action")

// EventHandler handles a hook and may hand blocking work back to the host
type EventHandler func(DomainEvent) domain.Task

// ActionHandler handles a named action (keybinding or command)
type ActionHandler func() domain.Task

// EventBus is the declared surface the host can call into: named actions,
// hook subscriptions, buffer modes and palette commands.
type EventBus interface {
	Publish(event DomainEvent) []domain.Task
	Subscribe(eventType EventType, handler EventHandler) func()
	RegisterAction(name string, handler ActionHandler)
	Invoke(name string) (domain.Task, error)
	Actions() []string
	DefineMode(mode domain.Mode)
	Mode(name string) (domain.Mode, bool)
	RegisterCommand(cmd domain.Command)
	Commands() []domain.Command
}

type subscription struct {
	id      int
	handler EventHandler
}

// bus is the concrete implementation of EventBus. Dispatch is synchronous:
// handlers run to completion on the caller's goroutine in subscription order.
type bus struct {
	mu       sync.RWMutex
	nextID   int
	handlers map[EventType][]subscription
	actions  map[string]ActionHandler
	modes    map[string]domain.Mode
	commands []domain.Command
}

// New creates a new event bus
func New() EventBus {
	return &bus{
		handlers: make(map[EventType][]subscription),
		actions:  make(map[string]ActionHandler),
		modes:    make(map[string]domain.Mode),
	}
}

// Publish delivers an event to all subscribers and collects their tasks
func (b *bus) Publish(event DomainEvent) []domain.Task {
	log.Printf("EventBus: Publishing event %s", event.Type())

	b.mu.RLock()
	subs := make([]subscription, len(b.handlers[event.Type()]))
	copy(subs, b.handlers[event.Type()])
	b.mu.RUnlock()

	var tasks []domain.Task
	for _, sub := range subs {
		if task := b.callEvent(sub.handler, event); task != nil {
			tasks = append(tasks, task)
		}
	}
	return tasks
}

// Subscribe subscribes to events of a specific type
// Returns an unsubscribe function
func (b *bus) Subscribe(eventType EventType, handler EventHandler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.handlers[eventType] = append(b.handlers[eventType], subscription{id: id, handler: handler})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		subs := b.handlers[eventType]
		for i, s := range subs {
			if s.id == id {
				b.handlers[eventType] = append(subs[:i:i], subs[i+1:]...)
				break
			}
		}
	}
}

// RegisterAction binds a name to a handler, replacing any previous binding
func (b *bus) RegisterAction(name string, handler ActionHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.actions[name] = handler
}

// Invoke runs a named action
func (b *bus) Invoke(name string) (domain.Task, error) {
	b.mu.RLock()
	handler, ok := b.actions[name]
	b.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownAction, name)
	}
	return b.callAction(name, handler), nil
}

// Actions lists every registered action name in sorted order
func (b *bus) Actions() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	names := make([]string, 0, len(b.actions))
	for name := range b.actions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefineMode registers a keybinding mode
func (b *bus) DefineMode(mode domain.Mode) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.modes[mode.Name] = mode
}

// Mode looks up a keybinding mode by name
func (b *bus) Mode(name string) (domain.Mode, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	m, ok := b.modes[name]
	return m, ok
}

// RegisterCommand adds a palette command
func (b *bus) RegisterCommand(cmd domain.Command) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.commands = append(b.commands, cmd)
}

// Commands returns the palette commands in registration order
func (b *bus) Commands() []domain.Command {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]domain.Command, len(b.commands))
	copy(out, b.commands)
	return out
}

func (b *bus) callEvent(h EventHandler, event DomainEvent) (task domain.Task) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Event handler panic for %s: %v\nStack: %s", event.Type(), r, debug.Stack())
			task = nil
		}
	}()
	return h(event)
}

func (b *bus) callAction(name string, h ActionHandler) (task domain.Task) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Action handler panic for %s: %v\nStack: %s", name, r, debug.Stack())
			task = nil
		}
	}()
	return h()
}
