package gateway

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/streamplay-cli/streamplay/constant"
	"github.com/streamplay-cli/streamplay/log"
	"github.com/streamplay-cli/streamplay/stream"
)

// errTitleRequired is the message clients receive when the title query parameter is absent.
const errTitleRequired = "Title parameter required"

// errorBody builds the failure envelope every gateway error resolves to.
func errorBody(message string) gin.H {
	return gin.H{"success": false, "error": message}
}

// GET /api/proxy-get-stream?title=
//
// Relays the upstream resolution response verbatim on success. Every failure,
// whatever its origin, is flattened into the same {success, error} envelope so
// browser clients have a single shape to handle.
func (a App) proxyGetStreamHandler(c *gin.Context) {
	title := strings.TrimSpace(c.Query("title"))
	if title == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, errorBody(errTitleRequired))
		return
	}

	endpoint := fmt.Sprintf("%s%s?title=%s", a.upstreamBase, stream.ResolvePath, url.QueryEscape(title))

	resp, err := a.httpClient.Get(endpoint)
	if err != nil {
		log.Error(err)
		c.AbortWithStatusJSON(http.StatusBadGateway, errorBody(err.Error()))
		return
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error(err)
		c.AbortWithStatusJSON(http.StatusBadGateway, errorBody(err.Error()))
		return
	}

	if !json.Valid(body) {
		log.Errorf("upstream returned a non-JSON body for %q", title)
		c.AbortWithStatusJSON(http.StatusBadGateway, errorBody("upstream returned malformed response"))
		return
	}

	c.Data(http.StatusOK, gin.MIMEJSON, body)
}

// GET /health
func (a App) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "OK",
		"service": constant.ServiceName,
	})
}
