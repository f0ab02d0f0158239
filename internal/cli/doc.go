package cli

// Package cli implements the ytfetch command line: `get` downloads a video or
// playlist with a terminal progress view, `history` lists previous requests,
// and the persistent --install-ytdlp flag fetches the yt-dlp binary.
// Configuration comes from ytfetch.toml and YTFETCH_* environment variables.
