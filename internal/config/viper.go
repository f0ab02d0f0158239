package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/viper"

	"github.com/ytget/ytfetch/internal/enumerate"
	"github.com/ytget/ytfetch/internal/platform"
)

// AppName names config, cache and state directories
const AppName = "ytfetch"

// EnvConfigPath overrides the configuration directory
const EnvConfigPath = "YTFETCH_CONFIG_PATH"

// Configuration keys
const (
	KeyCLIDownloadDir   = "download.dir"
	KeyCLIFormat        = "download.format"
	KeyCLIProbeCache    = "probe.cache"
	KeyCLICacheLifetime = "probe.cache_lifetime"
	KeyCLITagAudio      = "audio.tag"
	KeyCLIHistory       = "history.enabled"
	KeyCLILogsLevel     = "logs.level"
	KeyCLILogsJSON      = "logs.json"
	KeyCLILogsWrite     = "logs.write"
	KeyCLIColored       = "cli.colored"
)

// EnvKeyReplacer maps keys to environment variable names (download.dir -> YTFETCH_DOWNLOAD_DIR)
var EnvKeyReplacer = strings.NewReplacer(".", "_")

// Defaults returns the factory values of every key
func Defaults() map[string]any {
	downloads, err := platform.GetHomeDownloadsDir()
	if err != nil {
		downloads = FallbackDownloadDir
	}
	return map[string]any{
		KeyCLIDownloadDir:   downloads,
		KeyCLIFormat:        DefaultOutputFormat.String(),
		KeyCLIProbeCache:    DefaultProbeCache,
		KeyCLICacheLifetime: enumerate.DefaultCacheLifetime,
		KeyCLITagAudio:      DefaultTagAudio,
		KeyCLIHistory:       true,
		KeyCLILogsLevel:     "info",
		KeyCLILogsJSON:      false,
		KeyCLILogsWrite:     false,
		KeyCLIColored:       true,
	}
}

// NewViper builds the CLI configuration: defaults, then <configDir>/ytfetch.toml,
// then YTFETCH_* environment variables. A missing config file is not an error.
func NewViper(fs afero.Fs, configDir string) (*viper.Viper, error) {
	v := viper.New()
	v.SetFs(fs)
	v.SetConfigName(AppName)
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)

	v.SetEnvPrefix(AppName)
	v.SetEnvKeyReplacer(EnvKeyReplacer)
	v.AutomaticEnv()

	v.SetTypeByDefaultValue(true)
	for key, value := range Defaults() {
		v.SetDefault(key, value)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, err
	}
	return v, nil
}

// CacheLifetime returns the probe cache lifetime, or the default when unset or invalid
func CacheLifetime(v *viper.Viper) time.Duration {
	if d := v.GetDuration(KeyCLICacheLifetime); d > 0 {
		return d
	}
	return enumerate.DefaultCacheLifetime
}

// ConfigDir returns the configuration directory
func ConfigDir() string {
	if custom, ok := os.LookupEnv(EnvConfigPath); ok && custom != "" {
		return custom
	}
	base, err := os.UserConfigDir()
	if err != nil {
		base = "."
	}
	return filepath.Join(base, AppName)
}

// CacheDir returns the directory of the probe cache
func CacheDir() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = filepath.Join(".", "cache")
	}
	return filepath.Join(base, AppName)
}

// LogsDir returns the directory of log files
func LogsDir() string {
	return filepath.Join(ConfigDir(), "logs")
}

// HistoryDir returns the directory of the history database
func HistoryDir() string {
	return ConfigDir()
}
