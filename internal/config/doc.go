package config

// Package config holds the application settings. The desktop window stores
// its choices in Fyne preferences (Settings); the command line reads defaults,
// YTFETCH_* environment variables and an optional TOML file through viper.
