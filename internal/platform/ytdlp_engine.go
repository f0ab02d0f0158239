package platform

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/lrstanley/go-ytdlp"
	"github.com/samber/mo"

	"github.com/ytget/ytfetch/internal/model"
)

// Engine tuning
const (
	DefaultProbeTimeout   = 60 * time.Second
	ProgressInterval      = 500 * time.Millisecond
	SpeedSuffix           = "/s"
	collectionMetaType    = "playlist"
	multiVideoMetaType    = "multi_video"
	engineFailureFallback = "yt-dlp exited with an error"
)

// YTDLPEngine probes and fetches media through the yt-dlp binary
type YTDLPEngine struct {
	probeTimeout time.Duration
}

// NewYTDLPEngine creates an engine with default timeouts
func NewYTDLPEngine() *YTDLPEngine {
	return &YTDLPEngine{probeTimeout: DefaultProbeTimeout}
}

// SetProbeTimeout sets the timeout of metadata probes
func (e *YTDLPEngine) SetProbeTimeout(timeout time.Duration) {
	e.probeTimeout = timeout
}

// InstallEngine downloads the yt-dlp binary when it is not available
func InstallEngine(ctx context.Context) error {
	if _, err := ytdlp.Install(ctx, nil); err != nil {
		return fmt.Errorf("failed to install yt-dlp: %w", err)
	}
	return nil
}

// probeInfo is the subset of yt-dlp's JSON dump the probe needs
type probeInfo struct {
	Type          string      `json:"_type"`
	ID            string      `json:"id"`
	Title         string      `json:"title"`
	URL           string      `json:"url"`
	WebpageURL    string      `json:"webpage_url"`
	PlaylistCount *int        `json:"playlist_count"`
	Entries       []probeInfo `json:"entries"`
}

// Probe asks yt-dlp for metadata only, without downloading anything
func (e *YTDLPEngine) Probe(ctx context.Context, url string) (model.Metadata, error) {
	if e.probeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.probeTimeout)
		defer cancel()
	}

	dl := ytdlp.New().
		FlatPlaylist().
		DumpSingleJSON().
		SkipDownload().
		NoWarnings()

	result, err := dl.Run(ctx, url)
	if err != nil {
		return model.Metadata{}, fmt.Errorf("probe %s: %w", url, engineError(result, err))
	}

	return ParseProbeOutput(result.Stdout)
}

// ParseProbeOutput converts yt-dlp's single JSON dump into Metadata
func ParseProbeOutput(stdout string) (model.Metadata, error) {
	var info probeInfo
	if err := json.Unmarshal([]byte(strings.TrimSpace(stdout)), &info); err != nil {
		return model.Metadata{}, fmt.Errorf("failed to parse probe output: %w", err)
	}
	return info.toMetadata(), nil
}

func (p probeInfo) toMetadata() model.Metadata {
	meta := model.Metadata{
		ID:           p.ID,
		Title:        p.Title,
		URL:          p.WebpageURL,
		IsCollection: p.Type == collectionMetaType || p.Type == multiVideoMetaType,
	}
	if meta.URL == "" {
		meta.URL = p.URL
	}
	if p.PlaylistCount != nil {
		meta.PlaylistCount = mo.Some(*p.PlaylistCount)
	}
	for _, entry := range p.Entries {
		meta.Entries = append(meta.Entries, entry.toMetadata())
	}
	return meta
}

// Fetch downloads one item, reporting raw progress through onRaw
func (e *YTDLPEngine) Fetch(ctx context.Context, req model.FetchRequest, onRaw func(model.RawEvent)) (model.FetchResult, error) {
	dl := ytdlp.New().
		NoPlaylist().
		Format(req.Format.Selection).
		Output(req.OutputTemplate)

	if req.Format.MergeContainer != "" {
		dl = dl.MergeOutputFormat(req.Format.MergeContainer)
	}
	if req.Format.PostProcess.Kind == model.PostProcessExtractAudio {
		dl = dl.ExtractAudio().
			AudioFormat(req.Format.PostProcess.Codec).
			AudioQuality(req.Format.PostProcess.Quality)
	}

	var (
		mu       sync.Mutex
		lastFile string
		title    string
	)

	dl.ProgressFunc(ProgressInterval, func(update ytdlp.ProgressUpdate) {
		mu.Lock()
		if update.Filename != "" {
			lastFile = update.Filename
		}
		if title == "" && update.Info != nil && update.Info.Title != nil {
			title = *update.Info.Title
		}
		mu.Unlock()

		if onRaw != nil {
			onRaw(ConvertProgress(update, time.Now()))
		}
	})

	result, err := dl.Run(ctx, req.URL)
	if err != nil {
		return model.FetchResult{}, engineError(result, err)
	}

	mu.Lock()
	defer mu.Unlock()

	out := model.FetchResult{OutputPath: lastFile, Title: title}
	if info, err := result.GetExtractedInfo(); err == nil && len(info) > 0 {
		if info[0].Filename != nil && *info[0].Filename != "" {
			out.OutputPath = *info[0].Filename
		}
		if out.Title == "" && info[0].Title != nil {
			out.Title = *info[0].Title
		}
	}
	out.OutputPath = finalPath(out.OutputPath, req.Format)

	return out, nil
}

// ConvertProgress maps a go-ytdlp progress update to a raw engine event
func ConvertProgress(update ytdlp.ProgressUpdate, now time.Time) model.RawEvent {
	raw := model.RawEvent{
		DownloadedBytes: int64(update.DownloadedBytes),
		TotalBytes:      int64(update.TotalBytes),
		Filename:        update.Filename,
	}

	switch update.Status {
	case ytdlp.ProgressStatusPostProcessing:
		raw.Status = model.RawFinalizing
	case ytdlp.ProgressStatusFinished:
		raw.Status = model.RawFinished
	case ytdlp.ProgressStatusError:
		raw.Status = model.RawError
		raw.Message = engineFailureFallback
	default:
		raw.Status = model.RawDownloading
	}

	if !update.Started.IsZero() {
		if elapsed := now.Sub(update.Started).Seconds(); elapsed > 0 && update.DownloadedBytes > 0 {
			raw.SpeedText = humanize.Bytes(uint64(float64(update.DownloadedBytes)/elapsed)) + SpeedSuffix
		}
	}

	if eta := update.ETA(); eta > 0 {
		raw.ETAText = model.FormatETA(int(eta.Seconds()))
	}

	return raw
}

// finalPath predicts the file left on disk after post-processing
func finalPath(path string, spec model.FormatSpec) string {
	if path == "" {
		return ""
	}
	ext := ""
	switch {
	case spec.PostProcess.Kind == model.PostProcessExtractAudio:
		ext = spec.PostProcess.Codec
	case spec.MergeContainer != "":
		ext = spec.MergeContainer
	default:
		return path
	}
	return strings.TrimSuffix(path, filepath.Ext(path)) + "." + ext
}

// engineError keeps the most useful part of a failed run
func engineError(result *ytdlp.Result, err error) error {
	if result == nil {
		return err
	}
	stderr := strings.TrimSpace(result.Stderr)
	if stderr == "" {
		return err
	}
	lines := strings.Split(stderr, "\n")
	return fmt.Errorf("%w: %s", err, strings.TrimSpace(lines[len(lines)-1]))
}
