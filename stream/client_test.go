package stream

import (
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestClient(t *testing.T) {
	Convey("Client", t, func() {
		Convey("Resolves a title against the API", func() {
			var gotPath, gotTitle string
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				gotTitle = r.URL.Query().Get("title")
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{
					"success": true,
					"video_id": "abc",
					"m3u8_url": "https://x/y.m3u8",
					"headers": {"Referer": "r", "User-Agent": "u"}
				}`))
			}))
			defer server.Close()

			client := NewClient(server.URL)
			descriptor, err := client.Resolve("wednesday.s01e03")

			So(err, ShouldBeNil)
			So(gotPath, ShouldEqual, ResolvePath)
			So(gotTitle, ShouldEqual, "wednesday.s01e03")
			So(descriptor.Success, ShouldBeTrue)
			So(descriptor.VideoID, ShouldEqual, "abc")
			So(descriptor.M3U8URL, ShouldEqual, "https://x/y.m3u8")
			So(descriptor.Referer(), ShouldEqual, "r")
			So(descriptor.UserAgent(), ShouldEqual, "u")
			So(descriptor.Validate(), ShouldBeNil)
		})

		Convey("URL-encodes the title", func() {
			var rawQuery string
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				rawQuery = r.URL.RawQuery
				_, _ = w.Write([]byte(`{"success": false, "error": "not found"}`))
			}))
			defer server.Close()

			_, err := NewClient(server.URL).Resolve("breaking bad s01")
			So(err, ShouldBeNil)
			So(rawQuery, ShouldEqual, "title=breaking+bad+s01")
		})

		Convey("Returns the descriptor for an upstream failure body", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"success": false, "error": "title not found"}`))
			}))
			defer server.Close()

			descriptor, err := NewClient(server.URL).Resolve("nope")
			So(err, ShouldBeNil)
			So(descriptor.Success, ShouldBeFalse)
			So(descriptor.Error, ShouldEqual, "title not found")
		})

		Convey("Errors on a non-JSON body", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("<html>service unavailable</html>"))
			}))
			defer server.Close()

			_, err := NewClient(server.URL).Resolve("anything")
			So(err, ShouldNotBeNil)
		})

		Convey("Errors on a transport failure", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
			server.Close() // refuse connections

			_, err := NewClient(server.URL).Resolve("anything")
			So(err, ShouldNotBeNil)
		})
	})
}
