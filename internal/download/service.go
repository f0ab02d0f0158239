package download

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/samber/mo"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"github.com/ytget/ytfetch/internal/audio"
	"github.com/ytget/ytfetch/internal/format"
	"github.com/ytget/ytfetch/internal/model"
	"github.com/ytget/ytfetch/internal/platform"
	"github.com/ytget/ytfetch/internal/progress"
)

// Event pump and bookkeeping
const (
	EventBufferSize = 64
	RecordTimeout   = 5 * time.Second
)

// User facing messages
const (
	MsgEmptyURL          = "Please enter a URL."
	MsgNoDestination     = "Please select a download folder."
	MsgUnknownKind       = "Unknown download type %q."
	MsgExpectedSingle    = "URL appears to be a playlist. Please use the playlist option."
	MsgExpectedPlaylist  = "URL appears to be a single item. Please use the single video option."
	MsgEmptyCollection   = "The playlist has no downloadable items."
	MsgCancelled         = "Download cancelled."
	MsgAllFailed         = "All %d playlist items failed."
	MsgItemFailed        = "%s failed: %v"
	MsgCompleted         = "Download completed as %s!"
	MsgPlaylistCompleted = "Playlist download completed as %s! %s"
)

// Service orchestrates download requests
type Service struct {
	enumerator ShapeProber
	fetcher    Fetcher
	resolver   TargetResolver
	tagger     Tagger
	recorder   Recorder
	fs         afero.Fs
	log        logrus.FieldLogger
	now        func() time.Time
}

// NewService creates a new download service
func NewService(enumerator ShapeProber, fetcher Fetcher, resolver TargetResolver, log logrus.FieldLogger) *Service {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Service{
		enumerator: enumerator,
		fetcher:    fetcher,
		resolver:   resolver,
		fs:         afero.NewOsFs(),
		log:        log,
		now:        time.Now,
	}
}

// SetTagger enables ID3 tagging of audio-only collection members
func (s *Service) SetTagger(tagger Tagger) {
	s.tagger = tagger
}

// SetRecorder sets where request outcomes are persisted
func (s *Service) SetRecorder(recorder Recorder) {
	s.recorder = recorder
}

// SetFilesystem sets the filesystem used to inspect produced files
func (s *Service) SetFilesystem(fs afero.Fs) {
	s.fs = fs
}

// Execute runs req to completion. Every event, including the single terminal
// one, has been delivered to observer when Execute returns.
func (s *Service) Execute(ctx context.Context, req model.DownloadRequest, observer Observer) (model.Summary, error) {
	return s.Start(ctx, req, observer).Wait()
}

// Start runs req on a worker goroutine. Events reach observer from a
// separate goroutine in the order they were produced.
func (s *Service) Start(ctx context.Context, req model.DownloadRequest, observer Observer) *Run {
	ctx, cancel := context.WithCancel(ctx)
	run := &Run{
		RequestID: req.ID,
		cancel:    cancel,
		done:      make(chan struct{}),
	}

	events := make(chan model.ProgressEvent, EventBufferSize)
	tracker := progress.NewTracker(req.ID, func(e model.ProgressEvent) {
		events <- e
	})

	var g errgroup.Group

	// worker
	g.Go(func() error {
		defer close(events)
		run.summary, run.err = s.execute(ctx, req, tracker)
		s.record(run.summary, run.err)
		return nil
	})

	// pump
	g.Go(func() error {
		for e := range events {
			if observer != nil {
				observer(e)
			}
		}
		return nil
	})

	go func() {
		_ = g.Wait()
		cancel()
		close(run.done)
	}()

	return run
}

// execute is the orchestration pipeline; tracker receives exactly one terminal call
func (s *Service) execute(ctx context.Context, req model.DownloadRequest, tracker *progress.Tracker) (model.Summary, error) {
	summary := model.Summary{
		RequestID: req.ID,
		URL:       req.URL,
		Kind:      req.Kind,
		Format:    req.Format,
		StartedAt: s.now(),
	}
	log := s.log.WithFields(logrus.Fields{"request": req.ID, "url": req.URL})

	fail := func(err error) (model.Summary, error) {
		summary.FinishedAt = s.now()
		kind := model.KindOf(err)
		if kind == model.KindNone {
			kind = model.KindFetch
			err = model.NewError(kind, err, "download failed")
		}
		log.WithError(err).Warn("request failed")
		tracker.Fail(kind, failureMessage(err))
		return summary, err
	}

	if err := validate(req); err != nil {
		return fail(err)
	}
	if ctx.Err() != nil {
		return fail(model.NewError(model.KindCancelled, ctx.Err(), MsgCancelled))
	}

	shape, err := s.enumerator.Probe(ctx, req.URL)
	if err != nil {
		if model.KindOf(err) == model.KindNone {
			err = model.NewError(model.KindProbe, err, "cannot inspect %s", req.URL)
		}
		return fail(err)
	}
	log.WithField("shape", shape.String()).Debug("probed")

	if !shape.Matches(req.Kind) {
		msg := MsgExpectedSingle
		if req.Kind == model.KindCollection {
			msg = MsgExpectedPlaylist
		}
		return fail(model.NewError(model.KindShape, nil, "%s", msg))
	}

	members := []model.Member{shape.Item}
	title := mo.None[string]()
	if shape.Kind == model.ShapeCollection {
		if shape.Collection.Len() == 0 {
			return fail(model.NewError(model.KindProbe, nil, MsgEmptyCollection))
		}
		members = shape.Collection.Members
		title = mo.Some(shape.Collection.Title)
		summary.Collection = shape.Collection.Title
	}

	target, err := s.resolver.Resolve(req.DestinationRoot, req.Kind, title)
	if err != nil {
		if model.KindOf(err) == model.KindNone {
			err = model.NewError(model.KindFilesystem, err, "cannot prepare %s", req.DestinationRoot)
		}
		return fail(err)
	}
	summary.Target = target

	spec := format.Resolve(req.Format)
	tracker.SetStreams(spec.StreamCount())
	total := len(members)

	for _, m := range members {
		if ctx.Err() != nil {
			return fail(model.NewError(model.KindCancelled, ctx.Err(), MsgCancelled))
		}

		itemLog := log.WithFields(logrus.Fields{"index": m.Index, "item": m.Identifier()})
		tracker.BeginItem(m.Index, total, m.Identifier())

		item := s.fetchItem(ctx, req, m, total, target, spec, summary.Collection, tracker, itemLog)
		if item.Err == nil {
			summary.Succeeded = append(summary.Succeeded, item)
			itemLog.WithField("path", item.OutputPath).Info("item downloaded")
			continue
		}

		summary.Failed = append(summary.Failed, item)
		itemLog.WithError(item.Err).Warn("item failed")

		if model.KindOf(item.Err) == model.KindCancelled {
			return fail(item.Err)
		}
		if req.Kind == model.KindSingleItem {
			return fail(item.Err)
		}
		tracker.MemberFailed(model.KindFetch, fmt.Sprintf(MsgItemFailed, m.Identifier(), failureMessage(item.Err)))
	}

	if len(summary.Succeeded) == 0 {
		return fail(model.NewError(model.KindFetch, nil, MsgAllFailed, total))
	}

	summary.FinishedAt = s.now()
	tracker.Complete(completionMessage(req, summary))
	log.WithField("result", summary.String()).Info("request completed")
	return summary, nil
}

// fetchItem downloads one member and runs the post-fetch steps
func (s *Service) fetchItem(ctx context.Context, req model.DownloadRequest, m model.Member, total int,
	target model.ResolvedTarget, spec model.FormatSpec, collection string,
	tracker *progress.Tracker, log logrus.FieldLogger) model.ItemResult {

	item := model.ItemResult{
		Index: m.Index,
		ID:    m.Identifier(),
		Title: m.Title,
		URL:   m.URL,
	}

	res, err := s.fetcher.Fetch(ctx, model.FetchRequest{
		URL:            m.URL,
		Format:         spec,
		OutputTemplate: target.TemplateFor(m.Index, total),
	}, tracker.Handle)
	if err != nil {
		if ctx.Err() != nil {
			item.Err = model.NewError(model.KindCancelled, err, MsgCancelled)
			return item
		}
		detail := tracker.LastError()
		if detail == "" {
			detail = "engine error"
		}
		item.Err = model.NewError(model.KindFetch, err, "%s", detail)
		return item
	}

	if item.Title == "" {
		item.Title = res.Title
	}
	item.OutputPath = res.OutputPath
	if item.OutputPath == "" {
		return item
	}

	if mediaType, err := platform.DetectMediaType(s.fs, item.OutputPath); err != nil {
		log.WithError(err).Debug("media type detection skipped")
	} else {
		item.MediaType = mediaType
	}

	if s.tagger != nil && req.Kind == model.KindCollection && req.Format == model.FormatAudioOnly {
		info := audio.TrackInfo{Title: item.Title, Album: collection, Track: m.Index, Total: total}
		if err := s.tagger.Tag(item.OutputPath, info); err != nil {
			log.WithError(err).Warn("failed to tag audio file")
		}
	}

	return item
}

// record persists the outcome; failures are logged only
func (s *Service) record(summary model.Summary, runErr error) {
	if s.recorder == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), RecordTimeout)
	defer cancel()
	if err := s.recorder.Record(ctx, summary, runErr); err != nil {
		s.log.WithError(err).WithField("request", summary.RequestID).Warn("failed to record history")
	}
}

func validate(req model.DownloadRequest) error {
	if strings.TrimSpace(req.URL) == "" {
		return model.NewError(model.KindValidation, nil, MsgEmptyURL)
	}
	if strings.TrimSpace(req.DestinationRoot) == "" {
		return model.NewError(model.KindValidation, nil, MsgNoDestination)
	}
	if req.Kind != model.KindSingleItem && req.Kind != model.KindCollection {
		return model.NewError(model.KindValidation, nil, MsgUnknownKind, req.Kind)
	}
	return nil
}

// failureMessage prefers the human readable part of a DownloadError
func failureMessage(err error) string {
	var de *model.DownloadError
	if errors.As(err, &de) && de.Message != "" {
		if de.Err != nil && de.Kind == model.KindFetch {
			return fmt.Sprintf("%s (%v)", de.Message, de.Err)
		}
		return de.Message
	}
	return err.Error()
}

func completionMessage(req model.DownloadRequest, summary model.Summary) string {
	name := strings.ToUpper(req.Format.String())
	if req.Kind == model.KindCollection {
		return fmt.Sprintf(MsgPlaylistCompleted, name, summary.String())
	}
	return fmt.Sprintf(MsgCompleted, name)
}
