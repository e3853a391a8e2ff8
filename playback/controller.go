package playback

import (
	"errors"
	"strings"
	"sync"

	"github.com/streamplay-cli/streamplay/log"
	"github.com/streamplay-cli/streamplay/stream"
)

// ErrTitleRequired blocks a fetch before any network call is made.
var ErrTitleRequired = errors.New("please enter a title")

// Controller owns the playback session and applies every user action and
// widget event to it under a single lock. Snapshots go out through OnChange;
// user-facing error text goes out through OnAlert.
//
// Overlapping fetches follow a latest-request-wins policy: each fetch bumps a
// generation counter and a response is discarded unless its generation is
// still current. ClearAll bumps the counter too, so a response arriving after
// a clear is dropped as well.
type Controller struct {
	mu         sync.Mutex
	resolver   stream.Resolver
	widget     Widget
	session    Session
	generation uint64

	alert    func(message string)
	onChange func(session Session)
}

// NewController wires a resolver and a widget into a fresh session.
func NewController(resolver stream.Resolver, widget Widget) *Controller {
	return &Controller{
		resolver: resolver,
		widget:   widget,
	}
}

// OnAlert registers the callback for user-facing error messages.
func (c *Controller) OnAlert(fn func(message string)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.alert = fn
}

// OnChange registers the callback invoked with a session snapshot after
// every mutation.
func (c *Controller) OnChange(fn func(session Session)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onChange = fn
}

// Session returns a snapshot of the current session.
func (c *Controller) Session() Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

// FetchStream resolves a title and, on success, loads the stream into the
// widget and moves the session to Playing. The loading flag is cleared on
// every path. An empty or whitespace title never reaches the network.
func (c *Controller) FetchStream(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		c.alertf(ErrTitleRequired.Error())
		return ErrTitleRequired
	}

	gen := c.beginFetch(title)

	// The network call runs outside the lock; stale results are discarded
	// by generation in completeFetch.
	descriptor, err := c.resolver.Resolve(title)

	return c.completeFetch(gen, descriptor, err)
}

// beginFetch marks a new fetch as current and resets prior results.
func (c *Controller) beginFetch(title string) uint64 {
	c.mu.Lock()
	c.generation++
	gen := c.generation

	c.session.Title = title
	c.session.Loading = true
	c.session.Descriptor = nil
	c.session.Err = ""
	snapshot := c.session
	notify := c.onChange
	c.mu.Unlock()

	emit(notify, snapshot)
	return gen
}

// completeFetch applies a fetch result if the fetch is still current.
func (c *Controller) completeFetch(gen uint64, descriptor *stream.Descriptor, err error) error {
	c.mu.Lock()
	if gen != c.generation {
		c.mu.Unlock()
		log.Warnf("discarding stale fetch result for generation %d", gen)
		return nil
	}

	c.session.Loading = false

	if err == nil && descriptor != nil && descriptor.Success {
		if vErr := descriptor.Validate(); vErr != nil {
			err = vErr
		}
	}

	switch {
	case err != nil:
		c.session.Err = err.Error()
		return c.failLocked(err)

	case descriptor == nil || !descriptor.Success:
		message := "failed to resolve stream"
		if descriptor != nil && descriptor.Error != "" {
			message = descriptor.Error
		}
		c.session.Err = message
		return c.failLocked(errors.New(message))
	}

	if loadErr := c.widget.Load(Source{
		URI:     descriptor.M3U8URL,
		Headers: descriptor.Headers,
	}); loadErr != nil {
		c.session.Err = loadErr.Error()
		return c.failLocked(loadErr)
	}
	_ = c.widget.SetPaused(false)

	c.session.Descriptor = descriptor
	c.session.State = Playing
	c.session.CurrentTime = 0
	c.session.Duration = 0
	c.session.Buffering = false

	snapshot := c.session
	notify := c.onChange
	c.mu.Unlock()

	emit(notify, snapshot)
	return nil
}

// failLocked surfaces an error and releases the lock. Callers must hold mu
// and must have already recorded the session error.
func (c *Controller) failLocked(err error) error {
	snapshot := c.session
	notify := c.onChange
	alert := c.alert
	c.mu.Unlock()

	log.Error(err)
	if alert != nil {
		alert(err.Error())
	}
	emit(notify, snapshot)
	return err
}

// TogglePause flips between Playing and Paused. It does nothing without an
// active stream or after the stream has ended; an ended session is only
// revived by Replay.
func (c *Controller) TogglePause() error {
	c.mu.Lock()
	if !c.session.Active() || c.session.State == Ended {
		c.mu.Unlock()
		return nil
	}

	pause := c.session.State == Playing
	if err := c.widget.SetPaused(pause); err != nil {
		c.mu.Unlock()
		c.alertf(err.Error())
		return err
	}

	if pause {
		c.session.State = Paused
	} else {
		c.session.State = Playing
	}

	snapshot := c.session
	notify := c.onChange
	c.mu.Unlock()

	emit(notify, snapshot)
	return nil
}

// Seek forwards an absolute position to the widget. No state transition, but
// the position is clamped to the known duration.
func (c *Controller) Seek(seconds float64) error {
	c.mu.Lock()
	if !c.session.Active() {
		c.mu.Unlock()
		return nil
	}

	if seconds < 0 {
		seconds = 0
	}
	if c.session.Duration > 0 && seconds > c.session.Duration {
		seconds = c.session.Duration
	}

	if err := c.widget.Seek(seconds); err != nil {
		c.mu.Unlock()
		c.alertf(err.Error())
		return err
	}

	c.session.CurrentTime = seconds
	snapshot := c.session
	notify := c.onChange
	c.mu.Unlock()

	emit(notify, snapshot)
	return nil
}

// SeekBy seeks relative to the current position.
func (c *Controller) SeekBy(delta float64) error {
	c.mu.Lock()
	target := c.session.CurrentTime + delta
	c.mu.Unlock()
	return c.Seek(target)
}

// Replay restarts the stream from zero and moves to Playing.
func (c *Controller) Replay() error {
	c.mu.Lock()
	if !c.session.Active() {
		c.mu.Unlock()
		return nil
	}

	if err := c.widget.Seek(0); err != nil {
		c.mu.Unlock()
		c.alertf(err.Error())
		return err
	}
	_ = c.widget.SetPaused(false)

	c.session.State = Playing
	c.session.CurrentTime = 0

	snapshot := c.session
	notify := c.onChange
	c.mu.Unlock()

	emit(notify, snapshot)
	return nil
}

// ToggleFullscreen flips the display mode on widgets that support it.
func (c *Controller) ToggleFullscreen() error {
	c.mu.Lock()
	enabled := !c.session.Fullscreen

	if f, ok := c.widget.(Fullscreener); ok {
		if err := f.SetFullscreen(enabled); err != nil {
			c.mu.Unlock()
			c.alertf(err.Error())
			return err
		}
	}

	c.session.Fullscreen = enabled
	snapshot := c.session
	notify := c.onChange
	c.mu.Unlock()

	emit(notify, snapshot)
	return nil
}

// ClearAll resets the session to its initial values. A fetch still in flight
// is orphaned: its result arrives with a stale generation and is dropped.
func (c *Controller) ClearAll() {
	c.mu.Lock()
	c.generation++
	fullscreen := c.session.Fullscreen
	c.session = Session{Fullscreen: fullscreen}

	snapshot := c.session
	notify := c.onChange
	c.mu.Unlock()

	emit(notify, snapshot)
}

// Dispatch applies a single widget event to the session.
func (c *Controller) Dispatch(event Event) {
	c.mu.Lock()

	switch e := event.(type) {
	case LoadStarted:
		c.session.Buffering = true

	case Loaded:
		c.session.Duration = e.Duration
		c.session.Buffering = false

	case Progressed:
		if c.session.Loading || c.session.State == Ended {
			c.mu.Unlock()
			return
		}
		// mpv's time-pos can overshoot the reported duration near the end
		// of a stream; the clock never runs past the known duration.
		position := e.CurrentTime
		if position < 0 {
			position = 0
		}
		if c.session.Duration > 0 && position > c.session.Duration {
			position = c.session.Duration
		}
		c.session.CurrentTime = position

	case Finished:
		c.session.State = Ended
		if c.session.Duration > 0 {
			c.session.CurrentTime = c.session.Duration
		}

	case Buffered:
		c.session.Buffering = e.Buffering

	case Failed:
		// Alert only. The session keeps its last known state.
		c.session.Loading = false
		snapshot := c.session
		notify := c.onChange
		alert := c.alert
		c.mu.Unlock()

		log.Error(e.Err)
		if alert != nil {
			alert(e.Err.Error())
		}
		emit(notify, snapshot)
		return

	default:
		c.mu.Unlock()
		return
	}

	snapshot := c.session
	notify := c.onChange
	c.mu.Unlock()

	emit(notify, snapshot)
}

// alertf surfaces a message through the registered alert callback.
func (c *Controller) alertf(message string) {
	c.mu.Lock()
	alert := c.alert
	c.mu.Unlock()

	if alert != nil {
		alert(message)
	}
}

func emit(notify func(Session), snapshot Session) {
	if notify != nil {
		notify(snapshot)
	}
}
