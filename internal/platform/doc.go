package platform

// Package platform contains OS integration and external tooling glue:
// filesystem helpers, the yt-dlp engine adapter, the native YouTube playlist
// lister, media type detection and OS reveal.
