// Package stream defines the domain model and resolver client for title-to-manifest resolution.
package stream

import "errors"

// Header names the origin server requires on manifest and segment requests.
const (
	HeaderReferer   = "Referer"
	HeaderUserAgent = "User-Agent"
)

// Descriptor represents a playable stream resource as returned by the resolution API.
type Descriptor struct {
	// Whether the upstream resolved the title.
	Success bool `json:"success"`
	// Opaque identifier of the resolved video.
	VideoID string `json:"video_id"`
	// URL of the playable HLS manifest.
	M3U8URL string `json:"m3u8_url"`
	// HTTP headers required to stream from the origin.
	Headers map[string]string `json:"headers"`
	// Failure message, present only when Success is false.
	Error string `json:"error,omitempty"`
}

// Referer returns the Referer header required by the origin server.
func (d *Descriptor) Referer() string {
	return d.Headers[HeaderReferer]
}

// UserAgent returns the User-Agent header required by the origin server.
func (d *Descriptor) UserAgent() string {
	return d.Headers[HeaderUserAgent]
}

// Validate verifies that a successful descriptor carries everything playback needs:
// a manifest URL plus non-empty Referer and User-Agent headers.
// Playback must not be attempted on a descriptor that fails validation.
func (d *Descriptor) Validate() error {
	if !d.Success {
		if d.Error != "" {
			return errors.New(d.Error)
		}
		return errors.New("upstream did not resolve the title")
	}
	if d.M3U8URL == "" {
		return errors.New("descriptor is missing the manifest url")
	}
	if d.Referer() == "" {
		return errors.New("descriptor is missing the Referer header")
	}
	if d.UserAgent() == "" {
		return errors.New("descriptor is missing the User-Agent header")
	}
	return nil
}

// String returns the manifest URL for display.
func (d *Descriptor) String() string {
	return d.M3U8URL
}
