// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"fmt"

	bubblesKey "github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/mo"
	"github.com/spf13/viper"
	"github.com/streamplay-cli/streamplay/key"
	"github.com/streamplay-cli/streamplay/playback"
	"github.com/streamplay-cli/streamplay/query"
)

func (b *statefulBubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	// Process Ephemeral UI Notifications (captures `string` and `ui.ClearNotificationMsg`)
	if uiCmd := b.notifier.Update(msg); uiCmd != nil {
		cmd = tea.Batch(cmd, uiCmd)
	}

	switch msg := msg.(type) {
	case error:
		b.raiseError(msg)
	case string:
		// An alert was consumed by the notifier; keep listening for the next one.
		return b, tea.Batch(cmd, b.waitForAlert())
	case sessionMsg:
		b.session = playback.Session(msg)
		return b, tea.Batch(cmd, b.waitForSession())
	case tea.WindowSizeMsg:
		b.resize(msg.Width, msg.Height)
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.forceQuit):
			b.closePlayer()
			return b, tea.Quit
		}
	}

	switch b.state {
	case loadingState:
		return b.updateLoading(msg)
	case searchState:
		return b.updateSearch(msg)
	case watchState:
		return b.updateWatch(msg)
	case errorState:
		return b.updateError(msg)
	}

	return b, cmd
}

func (b *statefulBubble) updateLoading(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case fetchDoneMsg:
		b.newState(watchState)
		return b, tea.Batch(b.stopLoading(), b.waitForPlayerExit())
	case fetchFailedMsg:
		b.stopLoading()
		b.raiseError(msg.err)
		return b, nil
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.back):
			// The fetch keeps running; a stale result is discarded by the controller.
			b.stopLoading()
			b.previousState()
			return b, nil
		}
	}

	b.spinnerC, cmd = b.spinnerC.Update(msg)
	return b, cmd
}

func (b *statefulBubble) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.confirm) && b.inputC.Value() != "":
			title := b.inputC.Value()
			b.progressStatus = fmt.Sprintf("Resolving %s...", title)
			go func() {
				_ = query.Remember(title, 1)
			}()
			b.newState(loadingState)
			return b, tea.Batch(b.startLoading(), b.fetchStream(title))
		case bubblesKey.Matches(msg, b.keymap.acceptSearchSuggestion) && b.searchSuggestion.IsPresent():
			b.inputC.SetValue(b.searchSuggestion.MustGet())
			b.searchSuggestion = mo.None[string]()
			b.inputC.SetCursor(len(b.inputC.Value()))
			return b, nil
		case bubblesKey.Matches(msg, b.keymap.back):
			b.inputC.SetValue("")
			return b, nil
		}
	}

	b.inputC, cmd = b.inputC.Update(msg)

	if b.inputC.Value() != "" {
		if suggestion, ok := query.Suggest(b.inputC.Value()).Get(); ok && suggestion != b.inputC.Value() {
			b.searchSuggestion = mo.Some(suggestion)
		} else {
			b.searchSuggestion = mo.None[string]()
		}
	} else if b.searchSuggestion.IsPresent() {
		b.searchSuggestion = mo.None[string]()
	}

	return b, cmd
}

func (b *statefulBubble) updateWatch(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case playerExitMsg:
		b.closePlayer()
		b.previousState()
		return b, nil
	case tea.KeyMsg:
		if b.controller == nil {
			break
		}

		switch {
		case bubblesKey.Matches(msg, b.keymap.playPause):
			_ = b.controller.TogglePause()
			return b, nil
		case bubblesKey.Matches(msg, b.keymap.seekBack):
			_ = b.controller.SeekBy(-viper.GetFloat64(key.PlayerSeekStep))
			return b, nil
		case bubblesKey.Matches(msg, b.keymap.seekForward):
			_ = b.controller.SeekBy(viper.GetFloat64(key.PlayerSeekStep))
			return b, nil
		case bubblesKey.Matches(msg, b.keymap.replay):
			_ = b.controller.Replay()
			return b, nil
		case bubblesKey.Matches(msg, b.keymap.fullscreen):
			_ = b.controller.ToggleFullscreen()
			return b, nil
		case bubblesKey.Matches(msg, b.keymap.clear):
			b.closePlayer()
			b.inputC.SetValue("")
			b.setState(searchState)
			b.statesHistory.Clear()
			return b, nil
		case bubblesKey.Matches(msg, b.keymap.back):
			b.closePlayer()
			b.previousState()
			return b, nil
		}
	}

	b.spinnerC, cmd = b.spinnerC.Update(msg)
	return b, cmd
}

func (b *statefulBubble) updateError(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.quit):
			b.closePlayer()
			return b, tea.Quit
		case bubblesKey.Matches(msg, b.keymap.back):
			b.previousState()
			return b, nil
		}
	}
	return b, nil
}
