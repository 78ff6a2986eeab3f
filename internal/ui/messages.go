package ui

// taskDoneMsg carries the completion of a plugin task back to the Update loop
type taskDoneMsg struct {
	apply func()
}

// pagerMsg reports the end of a pager session
type pagerMsg struct {
	what string
	err  error
}

// clearStatusMsg clears the status line
type clearStatusMsg struct{}

// pauseRenderingMsg signals to pause Bubble Tea rendering
type pauseRenderingMsg struct{}

// resumeRenderingMsg signals to resume Bubble Tea rendering
type resumeRenderingMsg struct{}
