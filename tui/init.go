// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Init initializes the terminal user interface, optionally skipping straight
// into stream resolution when a title was supplied on the command line.
func (b *statefulBubble) Init() tea.Cmd {
	background := tea.Batch(b.waitForSession(), b.waitForAlert())

	if title := b.options.Title; title != "" {
		b.inputC.SetValue(title)
		b.progressStatus = fmt.Sprintf("Resolving %s...", title)
		b.newState(loadingState)
		return tea.Batch(background, b.startLoading(), b.fetchStream(title))
	}

	return tea.Batch(background, textinput.Blink)
}
