// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Backend Selection - these keys manage the registration and selection of media backends.
const (
	DefaultSources = "sources.default"
)

// YouTube Backend - these keys configure the yt-dlp based backend.
const (
	YouTubeChannels       = "youtube.channels"
	YouTubeMaxRes         = "youtube.max_res"
	YouTubeStartStreaming = "youtube.start_streaming"
	YouTubeDownloadDir    = "youtube.download_dir"
)

// Local Files Backend - these keys configure the local directory backend.
const (
	FilesDir = "files.dir"
)

// Media Playback - these keys maintain the configuration for the external player process.
const (
	Player           = "player.default"
	PlayerFullscreen = "player.fullscreen"
	PlayerExtraArgs  = "player.extra_args"
)

// Queue Server Synchronization - these keys configure the connection to a shared queue server.
const (
	ServerAddress = "server.address"
	ServerRoom    = "server.room"
)

// History Tracking - these keys configure the persistence of performed songs.
const (
	HistorySaveOnPlay = "history.save_on_play"
)

// Search Interaction - these keys define the UI/UX parameters for search discovery.
const (
	SearchShowQuerySuggestions = "search.show_query_suggestions"
	SearchLimit                = "search.limit"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Terminal User Interface (TUI) - these keys define the primary interactive environment's styling and logic.
const (
	TUIItemSpacing        = "tui.item_spacing"
	TUISearchPromptString = "tui.search_prompt"
	TUIShowIdents         = "tui.show_idents"
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
