package ui

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconFolder   = "📁"
)

// Text fragments
const (
	FolderLabelFormat = "%s: %s"
	URLSchemeHTTP     = "http"
	URLSchemeHTTPS    = "https"
)

// Layout sizing
const (
	LogoSize        float32 = 32
	SettingsWidth   float32 = 420
	SettingsHeight  float32 = 300
	ProgressBarMax          = 1.0
	HeaderTextScale         = 1.3
)
