// Package gateway runs the HTTP relay that fronts the stream-resolution API
// for browser clients, sidestepping its CORS restrictions.
package gateway

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"github.com/streamplay-cli/streamplay/filesystem"
	"github.com/streamplay-cli/streamplay/key"
	"github.com/streamplay-cli/streamplay/log"
	"github.com/streamplay-cli/streamplay/network"
	"github.com/streamplay-cli/streamplay/where"
)

// App carries the gateway's resolved configuration.
type App struct {
	upstreamBase string
	port         int
	staticDir    string
	httpClient   *http.Client
}

// Setup initializes the gateway from the active configuration.
func Setup() App {
	staticDir := viper.GetString(key.GatewayStaticDir)
	if staticDir == "" {
		staticDir = where.Static()
	}

	return App{
		upstreamBase: strings.TrimSuffix(viper.GetString(key.UpstreamBaseURL), "/"),
		port:         viper.GetInt(key.GatewayPort),
		staticDir:    staticDir,
		httpClient:   network.Client,
	}
}

// Router builds the gin engine with all gateway routes attached.
func (a App) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), a.accessLog())

	r.GET("/api/proxy-get-stream", a.proxyGetStreamHandler)
	r.GET("/health", a.healthHandler)
	r.GET("/", a.landingHandler)

	if exists, err := filesystem.API().DirExists(a.staticDir); err == nil && exists {
		r.Static("/static", a.staticDir)
	}

	return r
}

// Run serves the gateway until the listener fails.
func (a App) Run() error {
	log.Infof("gateway listening on :%d, relaying to %s", a.port, a.upstreamBase)
	return a.Router().Run(fmt.Sprintf(":%d", a.port))
}

// accessLog routes gin request logs through the application logger.
func (a App) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		log.Infof("%s %s %d", c.Request.Method, c.Request.URL.Path, c.Writer.Status())
	}
}

// GET /
func (a App) landingHandler(c *gin.Context) {
	index := filepath.Join(a.staticDir, "index.html")
	if exists, err := filesystem.API().Exists(index); err == nil && exists {
		c.File(index)
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(landingPage))
}

// landingPage is served when no static directory has been provisioned.
const landingPage = `<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><title>Video Player Web</title></head>
<body>
<h1>Video Player Web</h1>
<p>The proxy gateway is running. Query <code>/api/proxy-get-stream?title=&lt;title&gt;</code> to resolve a stream.</p>
</body>
</html>
`
