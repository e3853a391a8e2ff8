package history

import (
	"fmt"
	"strings"

	"github.com/streamplay-cli/streamplay/playback"
	"github.com/streamplay-cli/streamplay/util"
)

// SavedStream represents a single playback entry preserved in the user's history.
type SavedStream struct {
	Title             string  `json:"title"`
	Position          float64 `json:"position"`
	Duration          float64 `json:"duration"`
	WatchedPercentage float64 `json:"watched_percentage"`
}

func (s *SavedStream) encode() string {
	return strings.ToLower(strings.TrimSpace(s.Title))
}

func (s *SavedStream) String() string {
	return fmt.Sprintf("%s : %s / %s", s.Title, util.FormatClock(s.Position), util.FormatClock(s.Duration))
}

func newSavedStream(session playback.Session) *SavedStream {
	record := &SavedStream{
		Title:    session.Title,
		Position: session.CurrentTime,
		Duration: session.Duration,
	}

	if session.Duration > 0 {
		record.WatchedPercentage = session.CurrentTime / session.Duration * 100
	}

	return record
}
