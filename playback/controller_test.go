package playback

import (
	"errors"
	"runtime"
	"sync"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/streamplay-cli/streamplay/stream"
)

type fakeResolver struct {
	mu      sync.Mutex
	calls   int
	resolve func(title string) (*stream.Descriptor, error)
}

func (r *fakeResolver) Resolve(title string) (*stream.Descriptor, error) {
	r.mu.Lock()
	r.calls++
	r.mu.Unlock()
	return r.resolve(title)
}

func (r *fakeResolver) callCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

type fakeWidget struct {
	mu         sync.Mutex
	loaded     []Source
	seeks      []float64
	pauses     []bool
	fullscreen []bool
	loadErr    error
	seekErr    error
	pauseErr   error
}

func (w *fakeWidget) Load(source Source) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.loadErr != nil {
		return w.loadErr
	}
	w.loaded = append(w.loaded, source)
	return nil
}

func (w *fakeWidget) Seek(seconds float64) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.seekErr != nil {
		return w.seekErr
	}
	w.seeks = append(w.seeks, seconds)
	return nil
}

func (w *fakeWidget) SetPaused(paused bool) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.pauseErr != nil {
		return w.pauseErr
	}
	w.pauses = append(w.pauses, paused)
	return nil
}

func (w *fakeWidget) SetFullscreen(enabled bool) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.fullscreen = append(w.fullscreen, enabled)
	return nil
}

func okDescriptor() *stream.Descriptor {
	return &stream.Descriptor{
		Success: true,
		VideoID: "abc",
		M3U8URL: "https://x/y.m3u8",
		Headers: map[string]string{
			stream.HeaderReferer:   "r",
			stream.HeaderUserAgent: "u",
		},
	}
}

func okResolver() *fakeResolver {
	return &fakeResolver{resolve: func(string) (*stream.Descriptor, error) {
		return okDescriptor(), nil
	}}
}

func TestFetchStream(t *testing.T) {
	Convey("FetchStream", t, func() {
		widget := &fakeWidget{}

		Convey("Rejects empty and whitespace titles without a network call", func() {
			resolver := okResolver()
			controller := NewController(resolver, widget)

			var alerted string
			controller.OnAlert(func(message string) { alerted = message })

			for _, title := range []string{"", "   ", "\t\n"} {
				err := controller.FetchStream(title)
				So(err, ShouldEqual, ErrTitleRequired)
			}

			So(resolver.callCount(), ShouldEqual, 0)
			So(alerted, ShouldNotBeEmpty)
			So(controller.Session().Loading, ShouldBeFalse)
		})

		Convey("Stores the descriptor and starts playing on success", func() {
			controller := NewController(okResolver(), widget)

			err := controller.FetchStream("wednesday.s01e03")
			So(err, ShouldBeNil)

			session := controller.Session()
			So(session.State, ShouldEqual, Playing)
			So(session.Loading, ShouldBeFalse)
			So(session.Err, ShouldBeEmpty)
			So(session.Title, ShouldEqual, "wednesday.s01e03")
			So(session.Descriptor, ShouldNotBeNil)
			So(session.Descriptor.VideoID, ShouldEqual, "abc")
			So(session.Descriptor.M3U8URL, ShouldEqual, "https://x/y.m3u8")

			So(widget.loaded, ShouldHaveLength, 1)
			So(widget.loaded[0].URI, ShouldEqual, "https://x/y.m3u8")
			So(widget.loaded[0].Headers[stream.HeaderReferer], ShouldEqual, "r")
			So(widget.loaded[0].Headers[stream.HeaderUserAgent], ShouldEqual, "u")
		})

		Convey("Stores the upstream message on a resolution failure", func() {
			resolver := &fakeResolver{resolve: func(string) (*stream.Descriptor, error) {
				return &stream.Descriptor{Success: false, Error: "title not found"}, nil
			}}
			controller := NewController(resolver, widget)

			var alerted string
			controller.OnAlert(func(message string) { alerted = message })

			err := controller.FetchStream("nope")
			So(err, ShouldNotBeNil)

			session := controller.Session()
			So(session.Err, ShouldEqual, "title not found")
			So(alerted, ShouldEqual, "title not found")
			So(session.Descriptor, ShouldBeNil)
			So(session.State, ShouldEqual, Paused)
			So(session.Loading, ShouldBeFalse)
			So(widget.loaded, ShouldBeEmpty)
		})

		Convey("Clears the loading flag on a transport failure", func() {
			resolver := &fakeResolver{resolve: func(string) (*stream.Descriptor, error) {
				return nil, errors.New("connection refused")
			}}
			controller := NewController(resolver, widget)

			err := controller.FetchStream("anything")
			So(err, ShouldNotBeNil)

			session := controller.Session()
			So(session.Loading, ShouldBeFalse)
			So(session.Err, ShouldNotBeEmpty)
			So(session.Descriptor, ShouldBeNil)
		})

		Convey("Refuses a success payload missing playback headers", func() {
			resolver := &fakeResolver{resolve: func(string) (*stream.Descriptor, error) {
				return &stream.Descriptor{Success: true, M3U8URL: "https://x/y.m3u8"}, nil
			}}
			controller := NewController(resolver, widget)

			err := controller.FetchStream("anything")
			So(err, ShouldNotBeNil)

			session := controller.Session()
			So(session.Descriptor, ShouldBeNil)
			So(session.State, ShouldEqual, Paused)
			So(widget.loaded, ShouldBeEmpty)
		})

		Convey("Applies the newest of two overlapping fetches", func() {
			gate := make(chan struct{})
			first := true
			resolver := &fakeResolver{resolve: func(title string) (*stream.Descriptor, error) {
				if first {
					first = false
					<-gate
					return &stream.Descriptor{Success: false, Error: "stale"}, nil
				}
				d := okDescriptor()
				d.VideoID = title
				return d, nil
			}}
			controller := NewController(resolver, widget)

			done := make(chan struct{})
			go func() {
				_ = controller.FetchStream("slow")
				close(done)
			}()

			// Wait for the slow fetch to claim its generation.
			for resolver.callCount() == 0 {
				runtime.Gosched()
			}

			So(controller.FetchStream("fast"), ShouldBeNil)

			close(gate)
			<-done

			session := controller.Session()
			So(session.State, ShouldEqual, Playing)
			So(session.Err, ShouldBeEmpty)
			So(session.Descriptor.VideoID, ShouldEqual, "fast")
		})

		Convey("Drops a fetch result arriving after a clear", func() {
			gate := make(chan struct{})
			resolver := &fakeResolver{resolve: func(string) (*stream.Descriptor, error) {
				<-gate
				return okDescriptor(), nil
			}}
			controller := NewController(resolver, widget)

			done := make(chan struct{})
			go func() {
				_ = controller.FetchStream("orphaned")
				close(done)
			}()

			for resolver.callCount() == 0 {
				runtime.Gosched()
			}

			controller.ClearAll()
			close(gate)
			<-done

			session := controller.Session()
			So(session.Descriptor, ShouldBeNil)
			So(session.State, ShouldEqual, Paused)
			So(widget.loaded, ShouldBeEmpty)
		})
	})
}

func TestTransportControls(t *testing.T) {
	Convey("With an active stream", t, func() {
		widget := &fakeWidget{}
		controller := NewController(okResolver(), widget)
		So(controller.FetchStream("wednesday.s01e03"), ShouldBeNil)

		Convey("TogglePause flips between playing and paused", func() {
			So(controller.TogglePause(), ShouldBeNil)
			So(controller.Session().State, ShouldEqual, Paused)
			So(widget.pauses[len(widget.pauses)-1], ShouldBeTrue)

			So(controller.TogglePause(), ShouldBeNil)
			So(controller.Session().State, ShouldEqual, Playing)
			So(widget.pauses[len(widget.pauses)-1], ShouldBeFalse)
		})

		Convey("TogglePause does nothing once playback has ended", func() {
			controller.Dispatch(Finished{})
			So(controller.Session().State, ShouldEqual, Ended)

			pausesBefore := len(widget.pauses)
			So(controller.TogglePause(), ShouldBeNil)
			So(controller.Session().State, ShouldEqual, Ended)
			So(widget.pauses, ShouldHaveLength, pausesBefore)
		})

		Convey("Seek forwards to the widget and clamps to the duration", func() {
			controller.Dispatch(Loaded{Duration: 120})

			So(controller.Seek(30), ShouldBeNil)
			So(widget.seeks[len(widget.seeks)-1], ShouldEqual, 30)
			So(controller.Session().CurrentTime, ShouldEqual, 30)

			So(controller.Seek(-5), ShouldBeNil)
			So(widget.seeks[len(widget.seeks)-1], ShouldEqual, 0)

			So(controller.Seek(500), ShouldBeNil)
			So(widget.seeks[len(widget.seeks)-1], ShouldEqual, 120)
		})

		Convey("SeekBy moves relative to the current position", func() {
			controller.Dispatch(Loaded{Duration: 120})
			controller.Dispatch(Progressed{CurrentTime: 60})

			So(controller.SeekBy(10), ShouldBeNil)
			So(controller.Session().CurrentTime, ShouldEqual, 70)

			So(controller.SeekBy(-100), ShouldBeNil)
			So(controller.Session().CurrentTime, ShouldEqual, 0)
		})

		Convey("Replay restarts an ended stream from zero", func() {
			controller.Dispatch(Loaded{Duration: 120})
			controller.Dispatch(Finished{})
			So(controller.Session().State, ShouldEqual, Ended)

			So(controller.Replay(), ShouldBeNil)

			session := controller.Session()
			So(session.State, ShouldEqual, Playing)
			So(session.CurrentTime, ShouldEqual, 0)
			So(widget.seeks[len(widget.seeks)-1], ShouldEqual, 0)
		})

		Convey("ToggleFullscreen flips the display mode", func() {
			So(controller.ToggleFullscreen(), ShouldBeNil)
			So(controller.Session().Fullscreen, ShouldBeTrue)
			So(widget.fullscreen, ShouldResemble, []bool{true})

			So(controller.ToggleFullscreen(), ShouldBeNil)
			So(controller.Session().Fullscreen, ShouldBeFalse)
		})

		Convey("ClearAll resets the session to its initial values", func() {
			controller.Dispatch(Loaded{Duration: 120})
			controller.Dispatch(Progressed{CurrentTime: 42})

			controller.ClearAll()

			session := controller.Session()
			So(session.Title, ShouldBeEmpty)
			So(session.Descriptor, ShouldBeNil)
			So(session.Err, ShouldBeEmpty)
			So(session.State, ShouldEqual, Paused)
			So(session.CurrentTime, ShouldEqual, 0)
			So(session.Duration, ShouldEqual, 0)
			So(session.Loading, ShouldBeFalse)
		})
	})

	Convey("Without an active stream the controls are inert", t, func() {
		widget := &fakeWidget{}
		controller := NewController(okResolver(), widget)

		So(controller.TogglePause(), ShouldBeNil)
		So(controller.Seek(10), ShouldBeNil)
		So(controller.Replay(), ShouldBeNil)

		So(widget.pauses, ShouldBeEmpty)
		So(widget.seeks, ShouldBeEmpty)
	})
}

func TestDispatch(t *testing.T) {
	Convey("Dispatch", t, func() {
		widget := &fakeWidget{}
		controller := NewController(okResolver(), widget)
		So(controller.FetchStream("wednesday.s01e03"), ShouldBeNil)

		Convey("LoadStarted and Loaded drive the buffering indicator", func() {
			controller.Dispatch(LoadStarted{})
			So(controller.Session().Buffering, ShouldBeTrue)

			controller.Dispatch(Loaded{Duration: 95.5})
			session := controller.Session()
			So(session.Buffering, ShouldBeFalse)
			So(session.Duration, ShouldEqual, 95.5)
		})

		Convey("Progressed updates the position", func() {
			controller.Dispatch(Progressed{CurrentTime: 12.25})
			So(controller.Session().CurrentTime, ShouldEqual, 12.25)
		})

		Convey("Progressed never runs the clock past the known duration", func() {
			controller.Dispatch(Loaded{Duration: 100})

			controller.Dispatch(Progressed{CurrentTime: 150})
			session := controller.Session()
			So(session.CurrentTime, ShouldEqual, 100)
			So(session.CurrentTime, ShouldBeLessThanOrEqualTo, session.Duration)

			controller.Dispatch(Progressed{CurrentTime: -3})
			So(controller.Session().CurrentTime, ShouldEqual, 0)
		})

		Convey("Progressed is ignored while a fetch is in flight", func() {
			gate := make(chan struct{})
			gated := &fakeResolver{resolve: func(string) (*stream.Descriptor, error) {
				<-gate
				return okDescriptor(), nil
			}}
			inFlight := NewController(gated, &fakeWidget{})

			done := make(chan struct{})
			go func() {
				_ = inFlight.FetchStream("slow")
				close(done)
			}()

			for gated.callCount() == 0 {
				runtime.Gosched()
			}

			inFlight.Dispatch(Progressed{CurrentTime: 7})
			So(inFlight.Session().CurrentTime, ShouldEqual, 0)

			close(gate)
			<-done
		})

		Convey("Progressed is ignored after the stream has ended", func() {
			controller.Dispatch(Loaded{Duration: 100})
			controller.Dispatch(Finished{})

			controller.Dispatch(Progressed{CurrentTime: 3})
			So(controller.Session().CurrentTime, ShouldEqual, 100)
		})

		Convey("Buffered toggles the indicator", func() {
			controller.Dispatch(Buffered{Buffering: true})
			So(controller.Session().Buffering, ShouldBeTrue)

			controller.Dispatch(Buffered{Buffering: false})
			So(controller.Session().Buffering, ShouldBeFalse)
		})

		Convey("Finished moves to Ended", func() {
			controller.Dispatch(Finished{})
			So(controller.Session().State, ShouldEqual, Ended)
		})

		Convey("Failed alerts without a state transition", func() {
			var alerted string
			controller.OnAlert(func(message string) { alerted = message })

			before := controller.Session()
			controller.Dispatch(Failed{Err: errors.New("decoder stalled")})

			after := controller.Session()
			So(alerted, ShouldEqual, "decoder stalled")
			So(after.State, ShouldEqual, before.State)
			So(after.Descriptor, ShouldResemble, before.Descriptor)
			So(after.Loading, ShouldBeFalse)
		})
	})
}
