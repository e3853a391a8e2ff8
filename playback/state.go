// Package playback holds the transport state machine that sits between
// the stream-resolution client and a video-rendering widget.
package playback

// State is the playback phase of the active session.
type State int

const (
	// Paused is the initial state and the state after a user pause.
	Paused State = iota

	// Playing follows a successful fetch, a user resume, or a replay.
	Playing

	// Ended is reached when the widget reports end-of-stream.
	// Only a replay leaves it.
	Ended
)

func (s State) String() string {
	switch s {
	case Paused:
		return "paused"
	case Playing:
		return "playing"
	case Ended:
		return "ended"
	default:
		return "unknown"
	}
}
