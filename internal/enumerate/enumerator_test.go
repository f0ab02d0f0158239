package enumerate

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/samber/mo"
	"github.com/sirupsen/logrus"

	"github.com/ytget/ytfetch/internal/destination"
	"github.com/ytget/ytfetch/internal/model"
)

type stubProber struct {
	meta  model.Metadata
	err   error
	calls int
}

func (s *stubProber) Probe(ctx context.Context, url string) (model.Metadata, error) {
	s.calls++
	return s.meta, s.err
}

type stubLister struct {
	members []model.Member
	err     error
	calls   int
}

func (s *stubLister) Supports(url string) bool { return true }

func (s *stubLister) List(ctx context.Context, url string) ([]model.Member, error) {
	s.calls++
	return s.members, s.err
}

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func collection(title string, ids ...string) model.Metadata {
	meta := model.Metadata{IsCollection: true, Title: title, PlaylistCount: mo.Some(len(ids))}
	for _, id := range ids {
		meta.Entries = append(meta.Entries, model.Metadata{ID: id, Title: "Title " + id, URL: "https://example.com/" + id})
	}
	return meta
}

func TestProbe_Single(t *testing.T) {
	prober := &stubProber{meta: model.Metadata{ID: "video", Title: "A video"}}
	e := NewEnumerator(prober, quietLogger())

	shape, err := e.Probe(context.Background(), "https://example.com/v")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if shape.Kind != model.ShapeSingle {
		t.Fatalf("expected single shape, got %s", shape.Kind)
	}
	if shape.Item.ID != "video" || shape.Item.Index != 1 {
		t.Errorf("unexpected item: %+v", shape.Item)
	}
	if shape.Item.URL != "https://example.com/v" {
		t.Errorf("expected request url as item url, got %q", shape.Item.URL)
	}
}

func TestProbe_CollectionOrder(t *testing.T) {
	prober := &stubProber{meta: collection("My List", "A", "B", "C")}
	e := NewEnumerator(prober, quietLogger())

	shape, err := e.Probe(context.Background(), "https://example.com/list")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if shape.Kind != model.ShapeCollection {
		t.Fatalf("expected collection shape, got %s", shape.Kind)
	}
	if shape.Collection.Title != "My List" || shape.Collection.TitleFallback {
		t.Errorf("unexpected title %q (fallback %v)", shape.Collection.Title, shape.Collection.TitleFallback)
	}

	for i, id := range []string{"A", "B", "C"} {
		m := shape.Collection.Members[i]
		if m.ID != id || m.Index != i+1 {
			t.Errorf("member %d: expected %s/%d, got %s/%d", i, id, i+1, m.ID, m.Index)
		}
	}
	if n, _ := shape.Collection.MemberCount.Get(); n != 3 {
		t.Errorf("expected member count 3, got %d", n)
	}
}

func TestProbe_TitleFallback(t *testing.T) {
	tests := []struct {
		name  string
		title string
	}{
		{"empty title", ""},
		{"whitespace title", "   "},
		{"dots only", ".."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEnumerator(&stubProber{meta: collection(tt.title, "A")}, quietLogger())

			shape, err := e.Probe(context.Background(), "https://example.com/list")
			if err != nil {
				t.Fatalf("fallback must not be fatal: %v", err)
			}
			if shape.Collection.Title != destination.DefaultCollectionTitle {
				t.Errorf("expected fallback title, got %q", shape.Collection.Title)
			}
			if !shape.Collection.TitleFallback {
				t.Error("expected fallback to be flagged")
			}
			if e.Fallbacks() != 1 {
				t.Errorf("expected 1 fallback, got %d", e.Fallbacks())
			}
		})
	}
}

func TestProbe_EngineFailure(t *testing.T) {
	e := NewEnumerator(&stubProber{err: errors.New("unsupported url")}, quietLogger())

	_, err := e.Probe(context.Background(), "https://example.com/bad")
	if !errors.Is(err, model.ErrProbe) {
		t.Fatalf("expected ProbeError, got %v", err)
	}
}

func TestProbe_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e := NewEnumerator(&stubProber{err: context.Canceled}, quietLogger())

	_, err := e.Probe(ctx, "https://example.com/v")
	if model.KindOf(err) != model.KindCancelled {
		t.Fatalf("expected Cancelled, got %v", err)
	}
}

func TestProbe_ListerFillsEmptyCollection(t *testing.T) {
	lister := &stubLister{members: []model.Member{
		{ID: "x", Title: "X", URL: "https://example.com/x"},
		{ID: "y", Title: "Y", URL: "https://example.com/y"},
	}}
	e := NewEnumerator(&stubProber{meta: collection("Radio")}, quietLogger())
	e.SetLister(lister)

	shape, err := e.Probe(context.Background(), "https://example.com/watch?list=RD1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if lister.calls != 1 {
		t.Errorf("expected lister to be called once, got %d", lister.calls)
	}
	if shape.Collection.Len() != 2 || shape.Collection.Members[1].Index != 2 {
		t.Errorf("unexpected members: %+v", shape.Collection.Members)
	}
}

func TestProbe_ListerNotUsedWhenEntriesPresent(t *testing.T) {
	lister := &stubLister{}
	e := NewEnumerator(&stubProber{meta: collection("My List", "A")}, quietLogger())
	e.SetLister(lister)

	if _, err := e.Probe(context.Background(), "https://example.com/list"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lister.calls != 0 {
		t.Errorf("expected lister not to be called, got %d calls", lister.calls)
	}
}

func TestProbe_ListerFailure(t *testing.T) {
	e := NewEnumerator(&stubProber{meta: collection("Radio")}, quietLogger())
	e.SetLister(&stubLister{err: errors.New("quota")})

	_, err := e.Probe(context.Background(), "https://example.com/watch?list=RD1")
	if !errors.Is(err, model.ErrProbe) {
		t.Fatalf("expected ProbeError, got %v", err)
	}
}

func TestProbe_SkipsEntriesWithoutURL(t *testing.T) {
	meta := collection("My List", "A")
	meta.Entries = append(meta.Entries, model.Metadata{Title: "ghost"})

	e := NewEnumerator(&stubProber{meta: meta}, quietLogger())

	shape, err := e.Probe(context.Background(), "https://example.com/list")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if shape.Collection.Len() != 1 {
		t.Errorf("expected 1 member, got %d", shape.Collection.Len())
	}
}
