package player

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/streamplay-cli/streamplay/playback"
)

func TestTranslate(t *testing.T) {
	Convey("translate", t, func() {
		Convey("Maps start-file to a load start", func() {
			So(translate("start-file", map[string]interface{}{}), ShouldResemble, playback.LoadStarted{})
		})

		Convey("Maps duration to a load completion", func() {
			So(translate("duration", 95.5), ShouldResemble, playback.Loaded{Duration: 95.5})
			So(translate("duration", nil), ShouldBeNil)
			So(translate("duration", float64(0)), ShouldBeNil)
		})

		Convey("Maps time-pos to progress", func() {
			So(translate("time-pos", 12.25), ShouldResemble, playback.Progressed{CurrentTime: 12.25})
			So(translate("time-pos", nil), ShouldBeNil)
		})

		Convey("Maps paused-for-cache to buffering", func() {
			So(translate("paused-for-cache", true), ShouldResemble, playback.Buffered{Buffering: true})
			So(translate("paused-for-cache", false), ShouldResemble, playback.Buffered{Buffering: false})
		})

		Convey("Maps eof-reached true to a finish", func() {
			So(translate("eof-reached", true), ShouldResemble, playback.Finished{})
			So(translate("eof-reached", false), ShouldBeNil)
		})

		Convey("Maps end-file errors to a failure", func() {
			event := translate("end-file", map[string]interface{}{
				"reason":     "error",
				"file_error": "unrecognized format",
			})
			failed, ok := event.(playback.Failed)
			So(ok, ShouldBeTrue)
			So(failed.Err.Error(), ShouldContainSubstring, "unrecognized format")
		})

		Convey("Drops a regular end-file", func() {
			So(translate("end-file", map[string]interface{}{"reason": "eof"}), ShouldBeNil)
		})

		Convey("Drops unknown notifications", func() {
			So(translate("client-message", nil), ShouldBeNil)
		})
	})
}
