// Package cache prunes stale entries from the application's on-disk caches.
package cache

import (
	"os"
	"path/filepath"
	"time"

	"github.com/streamplay-cli/streamplay/filesystem"
	"github.com/streamplay-cli/streamplay/where"
)

// TTL is the maximum age of a cache entry before it is eligible for removal.
const TTL = 30 * 24 * time.Hour

// CollectGarbage removes cache files that have not been touched within the TTL.
// The query and watch-history registries are exempt since their relevance
// does not decay with age.
func CollectGarbage() {
	api := filesystem.API()
	exempt := map[string]struct{}{
		filepath.Clean(where.Queries()): {},
		filepath.Clean(where.History()): {},
	}

	_ = api.Walk(where.Cache(), func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return nil
		}

		if _, ok := exempt[filepath.Clean(path)]; ok {
			return nil
		}

		if time.Since(info.ModTime()) > TTL {
			_ = api.Remove(path)
		}

		return nil
	})
}
