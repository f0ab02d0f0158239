package download

import (
	"context"

	"github.com/samber/mo"

	"github.com/ytget/ytfetch/internal/audio"
	"github.com/ytget/ytfetch/internal/model"
)

// Observer receives progress events in chronological order
type Observer func(model.ProgressEvent)

// ShapeProber resolves a URL into an item shape (see enumerate.Enumerator)
type ShapeProber interface {
	Probe(ctx context.Context, url string) (model.ItemShape, error)
}

// Fetcher downloads one item, reporting raw progress through onRaw
type Fetcher interface {
	Fetch(ctx context.Context, req model.FetchRequest, onRaw func(model.RawEvent)) (model.FetchResult, error)
}

// TargetResolver computes and prepares the output location (see destination.Resolver)
type TargetResolver interface {
	Resolve(root string, kind model.Kind, collectionTitle mo.Option[string]) (model.ResolvedTarget, error)
}

// Tagger writes metadata into produced audio files (see audio.Tagger)
type Tagger interface {
	Tag(path string, info audio.TrackInfo) error
}

// Recorder persists request outcomes (see history.Store)
type Recorder interface {
	Record(ctx context.Context, summary model.Summary, runErr error) error
}

// Downloader defines the interface for the download service.
type Downloader interface {
	// Execute runs the request to completion
	Execute(ctx context.Context, req model.DownloadRequest, observer Observer) (model.Summary, error)

	// Start runs the request in the background
	Start(ctx context.Context, req model.DownloadRequest, observer Observer) *Run
}
