package model

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Kind is the caller-declared shape of a download request
type Kind string

const (
	// KindSingleItem downloads exactly one media item
	KindSingleItem Kind = "single"

	// KindCollection downloads every member of a playlist
	KindCollection Kind = "collection"
)

// String returns the string representation of Kind
func (k Kind) String() string {
	return string(k)
}

// ParseKind converts user input into a Kind
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "single", "video", "item":
		return KindSingleItem, nil
	case "collection", "playlist":
		return KindCollection, nil
	default:
		return "", fmt.Errorf("unknown download kind: %q", s)
	}
}

// OutputFormat selects the produced container
type OutputFormat string

const (
	// FormatMuxed produces a single mp4 with video and audio
	FormatMuxed OutputFormat = "mp4"

	// FormatAudioOnly produces an mp3 extracted from the best audio stream
	FormatAudioOnly OutputFormat = "mp3"
)

// String returns the string representation of OutputFormat
func (f OutputFormat) String() string {
	return string(f)
}

// ParseOutputFormat converts user input into an OutputFormat
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mp4", "video", "muxed":
		return FormatMuxed, nil
	case "mp3", "audio":
		return FormatAudioOnly, nil
	default:
		return "", fmt.Errorf("unknown output format: %q", s)
	}
}

// DownloadRequest is everything the orchestrator needs for one run.
// It is passed by value and never mutated after submission.
type DownloadRequest struct {
	ID              string
	URL             string
	Kind            Kind
	Format          OutputFormat
	DestinationRoot string
}

// NewDownloadRequest builds a request with a fresh time-ordered ID
func NewDownloadRequest(url string, kind Kind, format OutputFormat, destinationRoot string) DownloadRequest {
	return DownloadRequest{
		ID:              generateRequestID(),
		URL:             strings.TrimSpace(url),
		Kind:            kind,
		Format:          format,
		DestinationRoot: destinationRoot,
	}
}

// generateRequestID returns a UUIDv7 based ID, falling back to v4
func generateRequestID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return RequestIDPrefix + uuid.NewString()
	}
	return RequestIDPrefix + id.String()
}

// RequestIDPrefix prefixes every generated request ID
const RequestIDPrefix = "req-"
