package config

import (
	"fyne.io/fyne/v2"

	"github.com/ytget/ytfetch/internal/model"
	"github.com/ytget/ytfetch/internal/platform"
)

// Settings keys for Fyne preferences
const (
	KeyDownloadDir        = "download_directory"
	KeyOutputFormat       = "output_format"
	KeyDownloadKind       = "download_kind"
	KeyProbeCache         = "probe_cache"
	KeyTagAudio           = "tag_audio"
	KeyLanguage           = "app_language"
	KeyAutoRevealComplete = "auto_reveal_on_complete"
)

// Default values
const (
	DefaultOutputFormat       = model.FormatMuxed
	DefaultDownloadKind       = model.KindSingleItem
	DefaultProbeCache         = false
	DefaultTagAudio           = true
	DefaultLanguage           = "system"
	DefaultAutoRevealComplete = false
	FallbackDownloadDir       = "/tmp/downloads"
)

// Settings manages application configuration
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetDownloadDirectory returns the configured download directory
func (s *Settings) GetDownloadDirectory() string {
	dir := s.app.Preferences().String(KeyDownloadDir)
	if dir == "" {
		// Use system default Downloads directory
		defaultDir, err := platform.GetHomeDownloadsDir()
		if err != nil {
			defaultDir = FallbackDownloadDir
		}
		s.SetDownloadDirectory(defaultDir)
		return defaultDir
	}
	return dir
}

// SetDownloadDirectory sets the download directory
func (s *Settings) SetDownloadDirectory(dir string) {
	s.app.Preferences().SetString(KeyDownloadDir, dir)
}

// GetOutputFormat returns the last chosen output format
func (s *Settings) GetOutputFormat() model.OutputFormat {
	f, err := model.ParseOutputFormat(s.app.Preferences().String(KeyOutputFormat))
	if err != nil {
		return DefaultOutputFormat
	}
	return f
}

// SetOutputFormat stores the output format
func (s *Settings) SetOutputFormat(f model.OutputFormat) {
	s.app.Preferences().SetString(KeyOutputFormat, f.String())
}

// GetDownloadKind returns the last chosen download kind
func (s *Settings) GetDownloadKind() model.Kind {
	k, err := model.ParseKind(s.app.Preferences().String(KeyDownloadKind))
	if err != nil {
		return DefaultDownloadKind
	}
	return k
}

// SetDownloadKind stores the download kind
func (s *Settings) SetDownloadKind(k model.Kind) {
	s.app.Preferences().SetString(KeyDownloadKind, k.String())
}

// GetProbeCache returns whether probe results are cached between runs
func (s *Settings) GetProbeCache() bool {
	return s.app.Preferences().BoolWithFallback(KeyProbeCache, DefaultProbeCache)
}

// SetProbeCache enables or disables the probe cache
func (s *Settings) SetProbeCache(enabled bool) {
	s.app.Preferences().SetBool(KeyProbeCache, enabled)
}

// GetTagAudio returns whether extracted playlist audio gets ID3 tags
func (s *Settings) GetTagAudio() bool {
	return s.app.Preferences().BoolWithFallback(KeyTagAudio, DefaultTagAudio)
}

// SetTagAudio enables or disables audio tagging
func (s *Settings) SetTagAudio(enabled bool) {
	s.app.Preferences().SetBool(KeyTagAudio, enabled)
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.app.Preferences().String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetAutoRevealOnComplete returns whether to reveal finished downloads in the file manager
func (s *Settings) GetAutoRevealOnComplete() bool {
	return s.app.Preferences().BoolWithFallback(KeyAutoRevealComplete, DefaultAutoRevealComplete)
}

// SetAutoRevealOnComplete sets whether to reveal finished downloads
func (s *Settings) SetAutoRevealOnComplete(autoReveal bool) {
	s.app.Preferences().SetBool(KeyAutoRevealComplete, autoReveal)
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"ru":     "Русский",
		"pt":     "Português",
	}
}
