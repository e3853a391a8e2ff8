package history

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/streamplay-cli/streamplay/filesystem"
	"github.com/streamplay-cli/streamplay/playback"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestHistory(t *testing.T) {
	Convey("Given a playback session", t, func() {
		session := playback.Session{
			Title:       "Wednesday S01E03",
			CurrentTime: 312,
			Duration:    1440,
		}

		Convey("When saving the session", func() {
			err := Save(session)
			So(err, ShouldBeNil)

			Convey("Then it should appear in the registry", func() {
				saved, err := Get()
				So(err, ShouldBeNil)
				So(saved, ShouldContainKey, "wednesday s01e03")
				So(saved["wednesday s01e03"].Position, ShouldEqual, 312)
			})

			Convey("Then it should offer a resume point", func() {
				So(Position("Wednesday S01E03").MustGet(), ShouldEqual, 312)
				So(Position("wednesday s01e03").MustGet(), ShouldEqual, 312)
			})

			Convey("When the session finishes", func() {
				session.CurrentTime = session.Duration
				So(Save(session), ShouldBeNil)

				Convey("Then no resume point is offered", func() {
					So(Position("Wednesday S01E03").IsAbsent(), ShouldBeTrue)
				})

				Convey("Then a re-watch cannot demote the watched percentage", func() {
					session.CurrentTime = 10
					So(Save(session), ShouldBeNil)

					saved, err := Get()
					So(err, ShouldBeNil)
					So(saved["wednesday s01e03"].WatchedPercentage, ShouldEqual, 100)
					So(Position("Wednesday S01E03").IsAbsent(), ShouldBeTrue)
				})
			})

			Convey("When removing the record", func() {
				So(Remove("Wednesday S01E03"), ShouldBeNil)

				saved, err := Get()
				So(err, ShouldBeNil)
				So(saved, ShouldNotContainKey, "wednesday s01e03")
			})
		})

		Convey("When no record exists", func() {
			So(Position("unknown title").IsAbsent(), ShouldBeTrue)
		})
	})
}
