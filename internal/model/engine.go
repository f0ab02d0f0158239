package model

import (
	"strconv"
	"strings"

	"github.com/samber/mo"
)

// PostProcessKind names the conversion step applied after extraction
type PostProcessKind string

const (
	PostProcessNone         PostProcessKind = "none"
	PostProcessExtractAudio PostProcessKind = "extract-audio"
)

// PostProcess describes the optional conversion step
type PostProcess struct {
	Kind    PostProcessKind
	Codec   string // e.g. "mp3"
	Quality string // engine quality hint, e.g. "192"
}

// FormatSpec is the stream selection handed to the fetch engine
type FormatSpec struct {
	Selection      string
	MergeContainer string // empty when nothing is merged
	PostProcess    PostProcess
}

// HasPostProcess reports whether a conversion step is declared
func (f FormatSpec) HasPostProcess() bool {
	return f.PostProcess.Kind != "" && f.PostProcess.Kind != PostProcessNone
}

// StreamCount returns how many streams the preferred selection downloads
// ("bestvideo+bestaudio/best" downloads two). Never less than 1.
func (f FormatSpec) StreamCount() int {
	preferred, _, _ := strings.Cut(f.Selection, "/")
	return strings.Count(preferred, "+") + 1
}

// OrdinalPlaceholder is replaced by the member ordinal in collection templates
const OrdinalPlaceholder = "%(playlist_index)s"

// ResolvedTarget is where one request writes its files
type ResolvedTarget struct {
	Root           string
	OutputTemplate string
	CollectionDir  mo.Option[string]
}

// TemplateFor returns the output template of the member at index (1-based).
// The ordinal is zero-padded to the width of total so names sort lexicographically.
func (t ResolvedTarget) TemplateFor(index, total int) string {
	if !strings.Contains(t.OutputTemplate, OrdinalPlaceholder) {
		return t.OutputTemplate
	}
	return strings.ReplaceAll(t.OutputTemplate, OrdinalPlaceholder, FormatOrdinal(index, total))
}

// FormatOrdinal zero-pads index to the number of digits in total
func FormatOrdinal(index, total int) string {
	width := len(strconv.Itoa(max(total, 1)))
	s := strconv.Itoa(index)
	if len(s) < width {
		s = strings.Repeat("0", width-len(s)) + s
	}
	return s
}

// RawStatus is the engine-reported status of a raw progress event
type RawStatus string

const (
	RawDownloading RawStatus = "downloading"
	RawFinalizing  RawStatus = "finalizing"
	RawFinished    RawStatus = "finished"
	RawError       RawStatus = "error"
)

// RawEvent is an unnormalized progress event from the fetch engine
type RawEvent struct {
	Status          RawStatus
	DownloadedBytes int64 // 0 when unknown
	TotalBytes      int64 // 0 when unknown
	SpeedText       string
	ETAText         string
	Filename        string
	Message         string
}

// Metadata is the engine's metadata-only answer for a URL
type Metadata struct {
	ID            string
	Title         string
	URL           string
	IsCollection  bool
	PlaylistCount mo.Option[int]
	Entries       []Metadata
}

// FetchRequest is one engine invocation for one item
type FetchRequest struct {
	URL            string
	Format         FormatSpec
	OutputTemplate string
}

// FetchResult is what the engine reports after a successful fetch
type FetchResult struct {
	OutputPath string // empty when the engine could not tell
	Title      string
}
