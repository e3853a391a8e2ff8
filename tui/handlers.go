// Package tui provides the primary terminal user interface implementation.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/streamplay-cli/streamplay/history"
	"github.com/streamplay-cli/streamplay/log"
	"github.com/streamplay-cli/streamplay/playback"
	"github.com/streamplay-cli/streamplay/player"
	"github.com/streamplay-cli/streamplay/stream"
)

type (
	sessionMsg playback.Session

	fetchDoneMsg struct{}

	fetchFailedMsg struct {
		err error
	}

	playerExitMsg struct{}
)

// ensureSession lazily creates the playback backend and its controller. The
// backend survives across fetches so a follow-up title reuses the player
// window instead of spawning a new process.
func (b *statefulBubble) ensureSession(title string) {
	if b.backend != nil && b.backend.Running() {
		return
	}

	b.backend = player.New(title)
	b.controller = playback.NewController(stream.NewClient(""), b.backend)
	b.controller.OnChange(func(session playback.Session) {
		b.sessionChannel <- session
	})
	b.controller.OnAlert(func(message string) {
		b.alertChannel <- message
	})
}

// fetchStream resolves the title and hands the stream to the player.
func (b *statefulBubble) fetchStream(title string) tea.Cmd {
	return func() tea.Msg {
		b.ensureSession(title)

		if err := b.controller.FetchStream(title); err != nil {
			return fetchFailedMsg{err: err}
		}

		// Only mpv reports playback events back over IPC
		if mpv, ok := b.backend.(*player.MPV); ok {
			listener, err := player.Bridge(mpv, b.controller)
			if err != nil {
				log.Warnf("playback events unavailable: %v", err)
			} else {
				b.listener = listener
			}
		}

		if position, ok := history.Position(title).Get(); ok {
			if err := b.controller.Seek(position); err != nil {
				log.Warnf("could not resume at %v: %v", position, err)
			}
		}

		return fetchDoneMsg{}
	}
}

// waitForSession re-arms the subscription to controller snapshots.
func (b *statefulBubble) waitForSession() tea.Cmd {
	return func() tea.Msg {
		return sessionMsg(<-b.sessionChannel)
	}
}

// waitForAlert re-arms the subscription to user-facing playback alerts.
// The notifier consumes the raw string message.
func (b *statefulBubble) waitForAlert() tea.Cmd {
	return func() tea.Msg {
		return <-b.alertChannel
	}
}

// waitForPlayerExit resolves once the player process terminates.
func (b *statefulBubble) waitForPlayerExit() tea.Cmd {
	wait := b.backend.Wait()
	return func() tea.Msg {
		<-wait
		return playerExitMsg{}
	}
}

// closePlayer tears the playback session down and resets its state.
// Playback progress is recorded so a later fetch of the same title resumes.
func (b *statefulBubble) closePlayer() {
	if b.session.Active() && b.session.CurrentTime > 0 {
		if err := history.Save(b.session); err != nil {
			log.Warnf("could not save watch history: %v", err)
		}
	}

	if b.listener != nil {
		b.listener.Stop()
		b.listener = nil
	}

	if b.backend != nil {
		if err := b.backend.Close(); err != nil {
			log.Error(err)
		}
		b.backend = nil
	}

	if b.controller != nil {
		b.controller.ClearAll()
		b.controller = nil
	}

	b.session = playback.Session{}
}
