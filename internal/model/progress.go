package model

import (
	"fmt"
	"strings"

	"github.com/samber/mo"
)

// Placeholder shown for unknown rate/eta values
const UnknownPlaceholder = "?"

// ProgressEvent is one normalized progress notification.
// Index and Total give the aggregate position inside a collection
// (1 of 1 for single items).
type ProgressEvent struct {
	RequestID string
	Phase     Phase
	Fraction  mo.Option[float64] // 0.0 to 1.0 when known
	Rate      mo.Option[string]  // human readable speed (e.g., "1.2 MB/s")
	ETA       mo.Option[string]  // formatted as mm:ss or hh:mm:ss
	Message   string
	Index     int
	Total     int
	ItemID    string
	ErrorKind ErrorKind // set on Failed and on member failures
}

// IsTerminal reports whether the event ends the request
func (e ProgressEvent) IsTerminal() bool {
	return e.Phase.IsTerminal()
}

// Percent returns the fraction as 0..100, or -1 when unknown
func (e ProgressEvent) Percent() int {
	f, ok := e.Fraction.Get()
	if !ok {
		return -1
	}
	return int(f * 100)
}

// Label renders a one-line status suitable for a progress label
func (e ProgressEvent) Label() string {
	var b strings.Builder
	if e.Total > 1 {
		b.WriteString(fmt.Sprintf("[%d/%d] ", e.Index, e.Total))
	}

	switch e.Phase {
	case PhaseDownloading:
		percent := UnknownPlaceholder
		if p := e.Percent(); p >= 0 {
			percent = fmt.Sprintf("%d%%", p)
		}
		b.WriteString(fmt.Sprintf("Progress: %s at %s ETA %s",
			percent, e.Rate.OrElse(UnknownPlaceholder), e.ETA.OrElse(UnknownPlaceholder)))
	default:
		if e.Message != "" {
			b.WriteString(e.Message)
		} else {
			b.WriteString(e.Phase.String())
		}
	}
	return b.String()
}

// FormatETA returns seconds formatted as hh:mm:ss or mm:ss, or "" if unknown
func FormatETA(etaSec int) string {
	if etaSec <= 0 {
		return ""
	}

	hours := etaSec / 3600
	minutes := (etaSec % 3600) / 60
	seconds := etaSec % 60

	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
