package model

import (
	"fmt"
	"time"

	"github.com/samber/lo"
)

// ItemResult is the outcome of fetching one item
type ItemResult struct {
	Index      int
	ID         string
	Title      string
	URL        string
	OutputPath string
	MediaType  string // detected MIME type of the produced file, if any
	Err        error
}

// Summary is the final report of one request
type Summary struct {
	RequestID  string
	URL        string
	Kind       Kind
	Format     OutputFormat
	Target     ResolvedTarget
	Collection string // collection title, empty for single items
	Succeeded  []ItemResult
	Failed     []ItemResult
	StartedAt  time.Time
	FinishedAt time.Time
}

// Total returns the number of attempted items
func (s Summary) Total() int {
	return len(s.Succeeded) + len(s.Failed)
}

// SucceededIDs returns identifiers of succeeded items in fetch order
func (s Summary) SucceededIDs() []string {
	return lo.Map(s.Succeeded, func(r ItemResult, _ int) string { return r.ID })
}

// FailedIDs returns identifiers of failed items in fetch order
func (s Summary) FailedIDs() []string {
	return lo.Map(s.Failed, func(r ItemResult, _ int) string { return r.ID })
}

// OutputPaths returns the produced file paths that are known
func (s Summary) OutputPaths() []string {
	paths := lo.Map(s.Succeeded, func(r ItemResult, _ int) string { return r.OutputPath })
	return lo.Filter(paths, func(p string, _ int) bool { return p != "" })
}

// IsPartial reports whether some but not all items failed
func (s Summary) IsPartial() bool {
	return len(s.Failed) > 0 && len(s.Succeeded) > 0
}

// String renders "N of M succeeded"
func (s Summary) String() string {
	return fmt.Sprintf("%d of %d succeeded", len(s.Succeeded), s.Total())
}

// Duration returns how long the request ran
func (s Summary) Duration() time.Duration {
	if s.FinishedAt.IsZero() || s.StartedAt.IsZero() {
		return 0
	}
	return s.FinishedAt.Sub(s.StartedAt)
}
