// Package tui provides the primary terminal user interface implementation.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Options encapsulates the runtime configuration for the terminal user interface.
type Options struct {
	// Title skips the search screen and resolves immediately.
	Title string
}

// Run initializes and executes the primary Bubble Tea application loop.
func Run(options *Options) error {
	bubble := newBubble(options)
	bubble.newState(searchState)

	_, err := tea.NewProgram(bubble, tea.WithAltScreen()).Run()

	bubble.closePlayer()
	return err
}
