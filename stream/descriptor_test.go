package stream

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestDescriptor(t *testing.T) {
	Convey("Descriptor", t, func() {
		d := &Descriptor{
			Success: true,
			VideoID: "abc",
			M3U8URL: "https://x/y.m3u8",
			Headers: map[string]string{
				HeaderReferer:   "r",
				HeaderUserAgent: "u",
			},
		}

		Convey("Header accessors", func() {
			So(d.Referer(), ShouldEqual, "r")
			So(d.UserAgent(), ShouldEqual, "u")
		})

		Convey("Validate accepts a complete descriptor", func() {
			So(d.Validate(), ShouldBeNil)
		})

		Convey("Validate rejects a failed resolution", func() {
			f := &Descriptor{Success: false, Error: "not found"}
			err := f.Validate()
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldEqual, "not found")
		})

		Convey("Validate rejects a missing manifest url", func() {
			d.M3U8URL = ""
			So(d.Validate(), ShouldNotBeNil)
		})

		Convey("Validate rejects missing required headers", func() {
			d.Headers = map[string]string{HeaderReferer: "r"}
			So(d.Validate(), ShouldNotBeNil)

			d.Headers = map[string]string{HeaderUserAgent: "u"}
			So(d.Validate(), ShouldNotBeNil)

			d.Headers = nil
			So(d.Validate(), ShouldNotBeNil)
		})

		Convey("String returns the manifest url", func() {
			So(d.String(), ShouldEqual, "https://x/y.m3u8")
		})
	})
}
