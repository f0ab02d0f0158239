package model

// Package model defines domain data structures shared by the download core:
// requests, collection metadata, progress events, phases, summaries and the
// error kinds surfaced to callers. Values are plain structs so presentation
// layers can bind them directly.
