// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Upstream Stream-Resolution API - these keys locate the third-party service that maps titles to playable streams.
const (
	UpstreamBaseURL = "upstream.base_url"
)

// Proxy Gateway - these keys configure the HTTP relay that fronts the upstream API for browser clients.
const (
	GatewayPort      = "gateway.port"
	GatewayStaticDir = "gateway.static_dir"
)

// Media Playback - these keys maintain the state and configuration for the external video widget.
const (
	Player           = "player.default"
	PlayerFullscreen = "player.start_fullscreen"
	PlayerSeekStep   = "player.seek_step"
)

// Search Interaction - these keys define the UI/UX parameters for title discovery.
const (
	SearchShowQuerySuggestions = "search.show_query_suggestions"
)

// Terminal User Interface (TUI) - these keys define the interactive environment's styling and logic.
const (
	TUISearchPromptString = "tui.search_prompt"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics and auditing system.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these flags and settings govern the non-TUI application behavior.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)
