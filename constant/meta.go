// Package constant defines immutable application-level identifiers and configuration defaults.
package constant

const (
	// Streamplay is the canonical application identifier used for filesystem paths and CLI branding.
	Streamplay = "streamplay"

	// Version is the current application semantic version string.
	Version = "0.1.0"

	// ServiceName identifies the gateway in its liveness payload.
	ServiceName = "Video Player Web"

	// UserAgent is the default HTTP User-Agent string used for network requests to external services.
	UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// Build metadata, injected at link time.
var (
	BuiltAt  = "unknown"
	BuiltBy  = "unknown"
	Revision = "unknown"
)
