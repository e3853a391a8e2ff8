// Package player provides the media playback backends. The primary backend
// drives 'mpv' over its JSON-IPC socket and feeds its property changes back
// into the playback state machine; a macOS-native IINA fallback launches
// fire-and-forget without event reporting.
package player

import (
	"github.com/spf13/viper"
	"github.com/streamplay-cli/streamplay/key"
	"github.com/streamplay-cli/streamplay/playback"
)

// Backend extends the rendering widget with process lifecycle control.
type Backend interface {
	playback.Widget

	// Running reports whether the backend process is alive and responsive.
	Running() bool

	// Wait returns a channel closed when the backend process exits.
	Wait() <-chan struct{}

	// Close shuts the backend down and releases its resources.
	Close() error
}

// New returns the configured playback backend.
func New(title string) Backend {
	switch viper.GetString(key.Player) {
	case "iina":
		return NewIINA(title)
	default:
		return NewMPV(title)
	}
}
