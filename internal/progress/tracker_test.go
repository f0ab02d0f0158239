package progress

import (
	"math"
	"sync"
	"testing"

	"github.com/ytget/ytfetch/internal/model"
)

type recorder struct {
	mu     sync.Mutex
	events []model.ProgressEvent
}

func (r *recorder) emit(e model.ProgressEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) terminals() int {
	n := 0
	for _, e := range r.events {
		if e.IsTerminal() {
			n++
		}
	}
	return n
}

func (r *recorder) last() model.ProgressEvent {
	return r.events[len(r.events)-1]
}

func TestBeginItem(t *testing.T) {
	rec := &recorder{}
	tr := NewTracker("req-1", rec.emit)

	tr.BeginItem(2, 5, "B")

	if len(rec.events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(rec.events))
	}
	if rec.events[0].Phase != model.PhaseIdle || rec.events[1].Phase != model.PhaseDownloading {
		t.Errorf("expected Idle then Downloading, got %s then %s", rec.events[0].Phase, rec.events[1].Phase)
	}

	last := rec.last()
	if last.Index != 2 || last.Total != 5 || last.ItemID != "B" || last.RequestID != "req-1" {
		t.Errorf("unexpected position: %+v", last)
	}
	if f, ok := last.Fraction.Get(); !ok || f != 0 {
		t.Errorf("expected fraction 0, got %v (%v)", f, ok)
	}
}

func TestHandle_FractionNeverDecreases(t *testing.T) {
	rec := &recorder{}
	tr := NewTracker("req", rec.emit)
	tr.BeginItem(1, 1, "video")

	raws := []model.RawEvent{
		{Status: model.RawDownloading, DownloadedBytes: 10, TotalBytes: 100},
		{Status: model.RawDownloading, DownloadedBytes: 50, TotalBytes: 100},
		{Status: model.RawDownloading, DownloadedBytes: 20, TotalBytes: 100}, // new stream restarts
		{Status: model.RawDownloading},                                       // unknown sizes
		{Status: model.RawDownloading, DownloadedBytes: 80, TotalBytes: 100},
		{Status: model.RawFinished},
	}
	for _, raw := range raws {
		tr.Handle(raw)
	}

	prev := 0.0
	for i, e := range rec.events {
		f, ok := e.Fraction.Get()
		if !ok {
			continue
		}
		if f < prev {
			t.Errorf("event %d: fraction decreased from %v to %v", i, prev, f)
		}
		prev = f
	}

	if f, _ := rec.events[4].Fraction.Get(); f != 0.5 {
		t.Errorf("expected lower raw fraction to be clamped at 0.5, got %v", f)
	}
	if f, _ := rec.events[5].Fraction.Get(); f != 0.5 {
		t.Errorf("expected unknown sizes to retain 0.5, got %v", f)
	}
	if rec.last().Phase != model.PhaseFinalizing || rec.last().Message != FinalizingMessage {
		t.Errorf("expected finalizing, got %s %q", rec.last().Phase, rec.last().Message)
	}
}

func TestHandle_TwoStreamItem(t *testing.T) {
	tests := []struct {
		name string
		last model.RawEvent
	}{
		{"merge reported", model.RawEvent{Status: model.RawFinalizing}},
		{"second stream finished", model.RawEvent{Status: model.RawFinished, Filename: "v.f140.m4a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			tr := NewTracker("req", rec.emit)
			tr.SetStreams(2)
			tr.BeginItem(1, 1, "video")
			start := len(rec.events)

			tr.Handle(model.RawEvent{Status: model.RawDownloading, DownloadedBytes: 50, TotalBytes: 100, Filename: "v.f137.mp4"})
			tr.Handle(model.RawEvent{Status: model.RawFinished, Filename: "v.f137.mp4"})
			tr.Handle(model.RawEvent{Status: model.RawDownloading, DownloadedBytes: 10, TotalBytes: 100, Filename: "v.f140.m4a"})
			tr.Handle(tt.last)

			got := rec.events[start:]
			if len(got) != 4 {
				t.Fatalf("expected 4 events, got %d", len(got))
			}

			wantPhases := []model.Phase{model.PhaseDownloading, model.PhaseDownloading, model.PhaseDownloading, model.PhaseFinalizing}
			wantFractions := []float64{0.25, 0.5, 0.55, 1}
			for i, e := range got {
				if e.Phase != wantPhases[i] {
					t.Errorf("event %d: expected phase %s, got %s", i, wantPhases[i], e.Phase)
				}
				if f, _ := e.Fraction.Get(); math.Abs(f-wantFractions[i]) > 1e-9 {
					t.Errorf("event %d: expected fraction %v, got %v", i, wantFractions[i], f)
				}
			}
		})
	}
}

func TestHandle_NoDownloadingAfterFinalizing(t *testing.T) {
	rec := &recorder{}
	tr := NewTracker("req", rec.emit)
	tr.BeginItem(1, 1, "video")

	tr.Handle(model.RawEvent{Status: model.RawDownloading, DownloadedBytes: 100, TotalBytes: 100})
	tr.Handle(model.RawEvent{Status: model.RawFinished})
	before := len(rec.events)
	tr.Handle(model.RawEvent{Status: model.RawDownloading, DownloadedBytes: 100, TotalBytes: 100})

	if len(rec.events) != before {
		t.Errorf("expected no event after finalizing, got %d", len(rec.events)-before)
	}
	if tr.Phase() != model.PhaseFinalizing {
		t.Errorf("expected finalizing, got %s", tr.Phase())
	}
}

func TestHandle_RateAndETA(t *testing.T) {
	rec := &recorder{}
	tr := NewTracker("req", rec.emit)
	tr.BeginItem(1, 1, "video")

	tr.Handle(model.RawEvent{Status: model.RawDownloading, SpeedText: "1.0 MB/s", ETAText: "00:10"})
	tr.Handle(model.RawEvent{Status: model.RawDownloading})

	last := rec.last()
	if last.Rate.OrEmpty() != "1.0 MB/s" || last.ETA.OrEmpty() != "00:10" {
		t.Errorf("expected rate and eta to be retained, got %q %q", last.Rate.OrEmpty(), last.ETA.OrEmpty())
	}
}

func TestFractionResetsPerMember(t *testing.T) {
	rec := &recorder{}
	tr := NewTracker("req", rec.emit)

	tr.BeginItem(1, 2, "A")
	tr.Handle(model.RawEvent{Status: model.RawDownloading, DownloadedBytes: 90, TotalBytes: 100})
	tr.BeginItem(2, 2, "B")

	if f, _ := rec.last().Fraction.Get(); f != 0 {
		t.Errorf("expected fraction reset to 0, got %v", f)
	}
	if rec.last().Rate.IsPresent() {
		t.Error("expected rate to reset for a new member")
	}
}

func TestRawErrorIsRecordedOnly(t *testing.T) {
	rec := &recorder{}
	tr := NewTracker("req", rec.emit)
	tr.BeginItem(1, 1, "video")
	before := len(rec.events)

	tr.Handle(model.RawEvent{Status: model.RawError, Message: "HTTP 403"})

	if len(rec.events) != before {
		t.Errorf("raw error must not emit, got %d new events", len(rec.events)-before)
	}
	if tr.LastError() != "HTTP 403" {
		t.Errorf("expected last error to be recorded, got %q", tr.LastError())
	}
	if tr.Finished() {
		t.Error("raw error must not finish the request")
	}
}

func TestTerminalIsIdempotent(t *testing.T) {
	tests := []struct {
		name  string
		first func(*Tracker) bool
		phase model.Phase
	}{
		{"complete first", func(tr *Tracker) bool { return tr.Complete("done") }, model.PhaseCompleted},
		{"fail first", func(tr *Tracker) bool { return tr.Fail(model.KindFetch, "boom") }, model.PhaseFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			tr := NewTracker("req", rec.emit)
			tr.BeginItem(1, 1, "video")

			if !tt.first(tr) {
				t.Fatal("first terminal call should count")
			}
			if tr.Complete("again") || tr.Fail(model.KindCancelled, "again") {
				t.Error("second terminal call should be ignored")
			}

			tr.Handle(model.RawEvent{Status: model.RawDownloading, DownloadedBytes: 1, TotalBytes: 2})
			tr.BeginItem(2, 2, "other")
			tr.MemberFailed(model.KindFetch, "late")

			if rec.terminals() != 1 {
				t.Errorf("expected exactly one terminal event, got %d", rec.terminals())
			}
			if rec.last().Phase != tt.phase {
				t.Errorf("expected last phase %s, got %s", tt.phase, rec.last().Phase)
			}
		})
	}
}

func TestFailCarriesKind(t *testing.T) {
	rec := &recorder{}
	tr := NewTracker("req", rec.emit)

	tr.Fail(model.KindShape, "URL is a collection")

	last := rec.last()
	if last.ErrorKind != model.KindShape || last.Message != "URL is a collection" {
		t.Errorf("unexpected terminal event: %+v", last)
	}
}

func TestMemberFailedIsNotTerminal(t *testing.T) {
	rec := &recorder{}
	tr := NewTracker("req", rec.emit)
	tr.BeginItem(2, 3, "B")

	tr.MemberFailed(model.KindFetch, "video unavailable")

	last := rec.last()
	if last.IsTerminal() {
		t.Error("member failure must not be terminal")
	}
	if last.ErrorKind != model.KindFetch || last.Index != 2 {
		t.Errorf("unexpected member failure event: %+v", last)
	}
}
