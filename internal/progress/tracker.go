// Package progress normalizes raw engine events into ProgressEvents and
// guarantees a single terminal event per request.
package progress

import (
	"sync"

	"github.com/samber/mo"

	"github.com/ytget/ytfetch/internal/model"
)

// Messages attached to phase changes
const (
	FinalizingMessage = "Finalizing download..."
	StartingMessage   = "Starting download..."
)

// Emitter receives every event the tracker produces
type Emitter func(model.ProgressEvent)

// Tracker is the per-request progress state machine.
// It is safe for concurrent use.
type Tracker struct {
	mu        sync.Mutex
	requestID string
	emit      Emitter

	phase     model.Phase
	fraction  mo.Option[float64]
	rate      mo.Option[string]
	eta       mo.Option[string]
	message   string
	lastError string
	index     int
	total     int
	itemID    string
	finished  bool

	// per-item stream progress keyed by engine filename
	streams  map[string]float64
	done     map[string]bool
	expected int
}

// NewTracker creates an idle tracker for one request
func NewTracker(requestID string, emit Emitter) *Tracker {
	if emit == nil {
		emit = func(model.ProgressEvent) {}
	}
	return &Tracker{
		requestID: requestID,
		emit:      emit,
		phase:     model.PhaseIdle,
		index:     1,
		total:     1,
		streams:   make(map[string]float64),
		done:      make(map[string]bool),
		expected:  1,
	}
}

// SetStreams sets how many streams each item downloads, e.g. 2 for a
// video+audio pair that is merged afterwards. Values below 1 count as 1.
func (t *Tracker) SetStreams(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.expected = max(n, 1)
}

// BeginItem starts a new item at index of total. Fraction resets to 0.
func (t *Tracker) BeginItem(index, total int, itemID string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.finished {
		return
	}

	t.index, t.total, t.itemID = index, total, itemID
	t.fraction = mo.Some(0.0)
	t.rate = mo.None[string]()
	t.eta = mo.None[string]()
	t.lastError = ""
	clear(t.streams)
	clear(t.done)
	t.message = StartingMessage
	t.phase = model.PhaseIdle
	t.emitLocked(model.KindNone)

	t.phase = model.PhaseDownloading
	t.message = ""
	t.emitLocked(model.KindNone)
}

// Handle folds one raw engine event into the state and emits the result.
// Raw errors are only recorded; the caller decides whether they end the request.
func (t *Tracker) Handle(raw model.RawEvent) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.finished {
		return
	}

	switch raw.Status {
	case model.RawDownloading:
		if t.phase == model.PhaseFinalizing {
			// late updates of an already finished stream
			return
		}
		t.phase = model.PhaseDownloading
		t.message = ""
		if raw.TotalBytes > 0 && raw.DownloadedBytes >= 0 {
			f := min(float64(raw.DownloadedBytes)/float64(raw.TotalBytes), 1)
			t.streams[raw.Filename] = max(t.streams[raw.Filename], f)
			t.advance(t.streamFraction())
		}
		if raw.SpeedText != "" {
			t.rate = mo.Some(raw.SpeedText)
		}
		if raw.ETAText != "" {
			t.eta = mo.Some(raw.ETAText)
		}
	case model.RawFinished:
		// one stream is complete; more may follow before the merge
		t.streams[raw.Filename] = 1
		t.done[raw.Filename] = true
		if len(t.done) < t.expected {
			t.advance(t.streamFraction())
			break
		}
		t.finalize()
	case model.RawFinalizing:
		t.finalize()
	case model.RawError:
		t.lastError = raw.Message
		return
	default:
		return
	}

	t.emitLocked(model.KindNone)
}

func (t *Tracker) finalize() {
	t.phase = model.PhaseFinalizing
	t.message = FinalizingMessage
	t.advance(1)
}

// streamFraction averages stream progress over the expected streams
func (t *Tracker) streamFraction() float64 {
	var sum float64
	for _, f := range t.streams {
		sum += f
	}
	return sum / float64(max(t.expected, len(t.streams)))
}

// advance raises the fraction, never lowering it within an item
func (t *Tracker) advance(f float64) {
	f = min(max(f, 0), 1)
	if current, ok := t.fraction.Get(); ok && current >= f {
		return
	}
	t.fraction = mo.Some(f)
}

// MemberFailed reports a failed collection member without ending the request
func (t *Tracker) MemberFailed(kind model.ErrorKind, message string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.finished {
		return
	}

	t.phase = model.PhaseIdle
	t.message = message
	t.emitLocked(kind)
}

// Complete emits the terminal Completed event. Only the first terminal call counts.
func (t *Tracker) Complete(message string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.finished {
		return false
	}

	t.finished = true
	t.phase = model.PhaseCompleted
	t.fraction = mo.Some(1.0)
	t.message = message
	t.emitLocked(model.KindNone)
	return true
}

// Fail emits the terminal Failed event. Only the first terminal call counts.
func (t *Tracker) Fail(kind model.ErrorKind, message string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.finished {
		return false
	}

	t.finished = true
	t.phase = model.PhaseFailed
	t.message = message
	t.emitLocked(kind)
	return true
}

// Phase returns the current phase
func (t *Tracker) Phase() model.Phase {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.phase
}

// Finished reports whether a terminal event was emitted
func (t *Tracker) Finished() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.finished
}

// LastError returns the message of the last raw error of the current item
func (t *Tracker) LastError() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lastError
}

// emitLocked must be called with mu held so events leave in order
func (t *Tracker) emitLocked(kind model.ErrorKind) {
	t.emit(model.ProgressEvent{
		RequestID: t.requestID,
		Phase:     t.phase,
		Fraction:  t.fraction,
		Rate:      t.rate,
		ETA:       t.eta,
		Message:   t.message,
		Index:     t.index,
		Total:     t.total,
		ItemID:    t.itemID,
		ErrorKind: kind,
	})
}
