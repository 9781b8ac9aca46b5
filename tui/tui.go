// Package tui provides the primary terminal user interface implementation.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Options controls how the interface starts.
type Options struct {
	// Continue opens the history instead of the backend picker.
	Continue bool
}

// Run drives the interface until the user quits or an error escapes.
func Run(options *Options) error {
	bubble := newBubble(options)

	start := sourcesState
	if options.Continue {
		start = historyState
	}
	bubble.newState(start)

	_, err := tea.NewProgram(bubble, tea.WithAltScreen()).Run()
	return err
}
