package ui

// Package ui contains the Fyne desktop window: URL entry, download type and
// format choice, folder picker, a progress label with bar, and the start
// button. It builds a DownloadRequest and renders the events of the download
// service. All UI strings are localized via Localization.
