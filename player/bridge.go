package player

import (
	"errors"
	"fmt"

	"github.com/streamplay-cli/streamplay/playback"
)

// Bridge attaches an EventListener to the mpv instance and feeds every
// relevant notification into the controller as a playback event. The caller
// owns the returned listener and must Stop it when the session ends.
func Bridge(m *MPV, controller *playback.Controller) (*EventListener, error) {
	listener := NewEventListener(m.Socket(), func(name string, data interface{}) {
		if event := translate(name, data); event != nil {
			controller.Dispatch(event)
		}
	})

	if err := listener.Start(); err != nil {
		return nil, err
	}

	return listener, nil
}

// translate maps an mpv notification onto a playback event. Notifications
// with no counterpart return nil and are dropped.
func translate(name string, data interface{}) playback.Event {
	switch name {
	case "start-file":
		return playback.LoadStarted{}

	case "duration":
		if d, ok := data.(float64); ok && d > 0 {
			return playback.Loaded{Duration: d}
		}

	case "time-pos":
		if t, ok := data.(float64); ok {
			return playback.Progressed{CurrentTime: t}
		}

	case "paused-for-cache":
		if b, ok := data.(bool); ok {
			return playback.Buffered{Buffering: b}
		}

	case "eof-reached":
		if b, ok := data.(bool); ok && b {
			return playback.Finished{}
		}

	case "end-file":
		event, ok := data.(map[string]interface{})
		if !ok {
			return nil
		}
		reason, _ := event["reason"].(string)
		if reason != "error" {
			return nil
		}
		if fileError, _ := event["file_error"].(string); fileError != "" {
			return playback.Failed{Err: fmt.Errorf("playback failed: %s", fileError)}
		}
		return playback.Failed{Err: errors.New("playback failed")}
	}

	return nil
}
