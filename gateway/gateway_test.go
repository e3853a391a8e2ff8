package gateway

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/streamplay-cli/streamplay/network"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testApp(upstream string) App {
	return App{
		upstreamBase: upstream,
		staticDir:    "testdata-missing",
		httpClient:   network.Client,
	}
}

func get(router *gin.Engine, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, target, nil)
	router.ServeHTTP(w, req)
	return w
}

func TestHealthRoute(t *testing.T) {
	router := testApp("http://unused").Router()

	w := get(router, "/health")

	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "OK", body["status"])
	assert.Equal(t, "Video Player Web", body["service"])
}

func TestProxyRelaysUpstreamBodyVerbatim(t *testing.T) {
	upstreamBody := `{"success":true,"video_id":"v1","m3u8_url":"https://cdn/x.m3u8","headers":{"Referer":"r","User-Agent":"u"}}`

	var gotPath, gotTitle string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotTitle = r.URL.Query().Get("title")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(upstreamBody))
	}))
	defer upstream.Close()

	router := testApp(upstream.URL).Router()

	w := get(router, "/api/proxy-get-stream?title=wednesday.s01e03")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "/api/get-stream", gotPath)
	assert.Equal(t, "wednesday.s01e03", gotTitle)
	assert.Equal(t, upstreamBody, w.Body.String())
}

func TestProxyRelaysUpstreamFailureBody(t *testing.T) {
	upstreamBody := `{"success":false,"error":"title not found"}`
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(upstreamBody))
	}))
	defer upstream.Close()

	router := testApp(upstream.URL).Router()

	w := get(router, "/api/proxy-get-stream?title=nope")

	// the upstream's own envelope passes through untouched
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, upstreamBody, w.Body.String())
}

func TestProxyRejectsMissingTitle(t *testing.T) {
	called := false
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer upstream.Close()

	router := testApp(upstream.URL).Router()

	for _, target := range []string{
		"/api/proxy-get-stream",
		"/api/proxy-get-stream?title=",
		"/api/proxy-get-stream?title=%20%20",
	} {
		w := get(router, target)

		assert.Equal(t, http.StatusBadRequest, w.Code, target)

		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, false, body["success"])
		assert.Equal(t, "Title parameter required", body["error"])
	}

	assert.False(t, called, "upstream must not be contacted without a title")
}

func TestProxyNormalizesTransportFailure(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	upstream.Close() // refuse connections

	router := testApp(upstream.URL).Router()

	w := get(router, "/api/proxy-get-stream?title=anything")

	assert.Equal(t, http.StatusBadGateway, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.NotEmpty(t, body["error"])
}

func TestProxyNormalizesMalformedUpstreamBody(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>gateway timeout</html>"))
	}))
	defer upstream.Close()

	router := testApp(upstream.URL).Router()

	w := get(router, "/api/proxy-get-stream?title=anything")

	assert.Equal(t, http.StatusBadGateway, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "upstream returned malformed response", body["error"])
}

func TestProxyEncodesTitle(t *testing.T) {
	var rawQuery string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`{"success":false,"error":"x"}`))
	}))
	defer upstream.Close()

	router := testApp(upstream.URL).Router()

	w := get(router, "/api/proxy-get-stream?title=breaking%20bad%20s01%2Fe01")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "title=breaking+bad+s01%2Fe01", rawQuery)
}

func TestLandingPageFallback(t *testing.T) {
	router := testApp("http://unused").Router()

	w := get(router, "/")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Video Player Web")
}
