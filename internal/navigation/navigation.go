package navigation

// Store exposes the ordered sequence held by a controller
type Store[T any] interface {
	SetItems(items []T)
	Items() []T
	Len() int
	Reset()
}

// Cursor exposes movement over the sequence
type Cursor interface {
	Index() int
	Next() int
	Prev() int
	MoveTo(index int) int
}

// Options configures a Controller
type Options[T any] struct {
	Wrap bool // wrap around the ends instead of clamping

	// ItemLabel names an item in diagnostic log lines
	ItemLabel func(T) string
}

// Controller holds an ordered sequence and a cursor into it. The cursor is
// always a valid index into a non-empty sequence, or 0 when empty.
type Controller[T any] struct {
	items  []T
	cursor int
	opts   Options[T]
}

// New creates an empty controller
func New[T any](opts Options[T]) *Controller[T] {
	return &Controller[T]{opts: opts}
}

// SetItems replaces the sequence and resets the cursor to 0
func (c *Controller[T]) SetItems(items []T) {
	c.items = items
	c.cursor = 0
}

// Items returns the live sequence, not a copy
func (c *Controller[T]) Items() []T {
	return c.items
}

// Len returns the number of items
func (c *Controller[T]) Len() int {
	return len(c.items)
}

// Reset clears both the sequence and the cursor
func (c *Controller[T]) Reset() {
	c.items = nil
	c.cursor = 0
}

// Index returns the cursor position
func (c *Controller[T]) Index() int {
	return c.cursor
}

// Current returns the item under the cursor
func (c *Controller[T]) Current() (T, bool) {
	var zero T
	if len(c.items) == 0 {
		return zero, false
	}
	return c.items[c.cursor], true
}

// Label describes the item under the cursor
func (c *Controller[T]) Label() string {
	item, ok := c.Current()
	if !ok || c.opts.ItemLabel == nil {
		return ""
	}
	return c.opts.ItemLabel(item)
}

// Next moves the cursor forward by one
func (c *Controller[T]) Next() int {
	n := len(c.items)
	if n == 0 {
		return 0
	}
	switch {
	case c.cursor < n-1:
		c.cursor++
	case c.opts.Wrap:
		c.cursor = 0
	}
	return c.cursor
}

// Prev moves the cursor back by one
func (c *Controller[T]) Prev() int {
	n := len(c.items)
	if n == 0 {
		return 0
	}
	switch {
	case c.cursor > 0:
		c.cursor--
	case c.opts.Wrap:
		c.cursor = n - 1
	}
	return c.cursor
}

// MoveTo places the cursor at index, clamped to the sequence bounds
func (c *Controller[T]) MoveTo(index int) int {
	c.cursor = c.clampIndex(index)
	return c.cursor
}

func (c *Controller[T]) clampIndex(index int) int {
	if len(c.items) == 0 || index < 0 {
		return 0
	}
	if index >= len(c.items) {
		return len(c.items) - 1
	}
	return index
}

var (
	_ Store[int] = (*Controller[int])(nil)
	_ Cursor     = (*Controller[int])(nil)
)
