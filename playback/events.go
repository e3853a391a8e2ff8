package playback

// Event is an inbound notification from the video widget. Events are applied
// to the session synchronously, one at a time, via Controller.Dispatch.
type Event interface {
	isEvent()
}

// LoadStarted signals that the widget began loading a new source.
type LoadStarted struct{}

// Loaded signals that the source finished loading and its length is known.
type Loaded struct {
	Duration float64
}

// Progressed carries the current playback position. It is ignored while a
// fetch is in flight and after the session has ended.
type Progressed struct {
	CurrentTime float64
}

// Finished signals end-of-stream.
type Finished struct{}

// Buffered signals a change of the widget's buffering indicator.
type Buffered struct {
	Buffering bool
}

// Failed carries a playback error. It is surfaced to the user but causes no
// state transition; the session stays in its last known state.
type Failed struct {
	Err error
}

func (LoadStarted) isEvent() {}
func (Loaded) isEvent()      {}
func (Progressed) isEvent()  {}
func (Finished) isEvent()    {}
func (Buffered) isEvent()    {}
func (Failed) isEvent()      {}
