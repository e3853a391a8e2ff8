package cache

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/streamplay-cli/streamplay/filesystem"
	"github.com/streamplay-cli/streamplay/where"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestCollectGarbage(t *testing.T) {
	Convey("Given expired and fresh cache entries", t, func() {
		api := filesystem.API()
		expired := time.Now().Add(-TTL - time.Hour)

		stale := filepath.Join(where.Cache(), "releases.json")
		for _, path := range []string{stale, where.Queries(), where.History()} {
			So(api.WriteFile(path, []byte("{}"), 0644), ShouldBeNil)
			So(api.Chtimes(path, expired, expired), ShouldBeNil)
		}

		fresh := filepath.Join(where.Cache(), "fresh.json")
		So(api.WriteFile(fresh, []byte("{}"), 0644), ShouldBeNil)

		Convey("When collecting garbage", func() {
			CollectGarbage()

			Convey("Then expired entries are removed", func() {
				So(lo.Must(api.Exists(stale)), ShouldBeFalse)
			})

			Convey("Then fresh entries survive", func() {
				So(lo.Must(api.Exists(fresh)), ShouldBeTrue)
			})

			Convey("Then the query and watch-history registries survive regardless of age", func() {
				So(lo.Must(api.Exists(where.Queries())), ShouldBeTrue)
				So(lo.Must(api.Exists(where.History())), ShouldBeTrue)
			})
		})
	})
}
