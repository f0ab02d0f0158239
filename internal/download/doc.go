package download

// Package download implements the download orchestrator. It validates a
// request, probes the URL, resolves the destination and format, drives the
// fetch engine (sequentially for collections) and reports progress to an
// observer. The yt-dlp engine is reached through the Fetcher interface; the
// real adapter lives in internal/platform.
