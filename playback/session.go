package playback

import "github.com/streamplay-cli/streamplay/stream"

// Session is a snapshot of everything the UI needs to render the player.
// Controller hands out copies; the UI never mutates one.
type Session struct {
	Title      string
	Descriptor *stream.Descriptor
	State      State

	CurrentTime float64
	Duration    float64

	Loading    bool
	Buffering  bool
	Fullscreen bool

	Err string
}

// Active reports whether the session has a playable descriptor loaded.
func (s Session) Active() bool {
	return s.Descriptor != nil && s.Descriptor.Success
}
