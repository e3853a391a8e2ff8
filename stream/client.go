package stream

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/spf13/viper"
	"github.com/streamplay-cli/streamplay/key"
	"github.com/streamplay-cli/streamplay/log"
	"github.com/streamplay-cli/streamplay/network"
)

// ResolvePath is the upstream endpoint that maps a title to a stream descriptor.
const ResolvePath = "/api/get-stream"

// Resolver maps a media title onto a playable stream descriptor.
type Resolver interface {
	Resolve(title string) (*Descriptor, error)
}

// Client resolves titles against the remote stream-resolution API.
// One outbound GET per call; no retries, no caching.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient returns a Client bound to the given API base URL.
// An empty base falls back to the configured upstream.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = viper.GetString(key.UpstreamBaseURL)
	}

	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: network.Client,
	}
}

// Resolve issues GET {base}/api/get-stream?title=<urlencoded> and decodes the descriptor.
// Transport and decode failures are returned as errors; an upstream "success": false
// body is returned as a descriptor so the caller can surface its message.
func (c *Client) Resolve(title string) (*Descriptor, error) {
	endpoint := fmt.Sprintf("%s%s?title=%s", c.baseURL, ResolvePath, url.QueryEscape(title))

	log.Infof("resolving stream for %q", title)
	resp, err := c.httpClient.Get(endpoint)
	if err != nil {
		log.Error(err)
		return nil, err
	}
	defer resp.Body.Close()

	var descriptor Descriptor
	if err := json.NewDecoder(resp.Body).Decode(&descriptor); err != nil {
		log.Error(err)
		return nil, fmt.Errorf("decode upstream response: %w", err)
	}

	if descriptor.Success {
		log.Infof("resolved %q to video %s", title, descriptor.VideoID)
	} else {
		log.Warnf("upstream failed to resolve %q: %s", title, descriptor.Error)
	}

	return &descriptor, nil
}
