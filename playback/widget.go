package playback

// Source is what a widget needs to open a manifest from its origin server.
type Source struct {
	URI     string
	Headers map[string]string
}

// Widget is the rendering side of a playback session. Implementations report
// back through Controller.Dispatch with the Event types in events.go.
type Widget interface {
	// Load opens the given source and begins buffering.
	Load(source Source) error

	// Seek moves playback to an absolute position in seconds.
	Seek(seconds float64) error

	// SetPaused suspends or resumes playback.
	SetPaused(paused bool) error
}

// Fullscreener is implemented by widgets that can switch display modes.
type Fullscreener interface {
	SetFullscreen(enabled bool) error
}
