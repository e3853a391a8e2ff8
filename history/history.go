// Package history tracks and persists playback progress across sessions.
package history

import (
	"github.com/metafates/gache"
	"github.com/samber/mo"
	"github.com/streamplay-cli/streamplay/filesystem"
	"github.com/streamplay-cli/streamplay/playback"
	"github.com/streamplay-cli/streamplay/where"
)

// resumeCutoff is the watched percentage past which a stream counts as
// finished and no longer offers a resume point.
const resumeCutoff = 95

// cacher provides an abstracted, disk-backed registry for playback progress records.
var cacher = gache.New[map[string]*SavedStream](
	&gache.Options{
		Path:       where.History(),
		FileSystem: &filesystem.GacheFs{},
	},
)

// Get returns the complete collection of historical playback records from the persistent store.
func Get() (map[string]*SavedStream, error) {
	cached, expired, err := cacher.Get()
	if err != nil {
		return nil, err
	}
	if expired || cached == nil {
		return make(map[string]*SavedStream), nil
	}
	return cached, nil
}

// Save persists the playback progress of a session to the history registry.
func Save(session playback.Session) error {
	saved, err := Get()
	if err != nil {
		return err
	}

	record := newSavedStream(session)

	// The resume point always moves to the latest position, but the watched
	// percentage only ever grows so a re-watch cannot demote a finished stream.
	if existing, exists := saved[record.encode()]; exists {
		if record.WatchedPercentage < existing.WatchedPercentage {
			record.WatchedPercentage = existing.WatchedPercentage
		}
	}

	saved[record.encode()] = record
	return cacher.Set(saved)
}

// Position returns the resume point for a title, if one is worth offering.
func Position(title string) mo.Option[float64] {
	record := &SavedStream{Title: title}

	saved, err := Get()
	if err != nil {
		return mo.None[float64]()
	}

	existing, exists := saved[record.encode()]
	if !exists || existing.Position <= 0 || existing.WatchedPercentage >= resumeCutoff {
		return mo.None[float64]()
	}

	return mo.Some(existing.Position)
}

// Remove permanently deletes a title's playback record from the history registry.
func Remove(title string) error {
	saved, err := Get()
	if err != nil {
		return err
	}

	record := &SavedStream{Title: title}
	delete(saved, record.encode())
	return cacher.Set(saved)
}
