package download

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/ytget/ytfetch/internal/audio"
	"github.com/ytget/ytfetch/internal/destination"
	"github.com/ytget/ytfetch/internal/enumerate"
	"github.com/ytget/ytfetch/internal/platform"
)

// Options configures a service backed by the yt-dlp engine
type Options struct {
	Fs            afero.Fs // OS filesystem when nil
	ProbeCacheDir string   // probe results are cached here when set
	CacheLifetime time.Duration
	TagAudio      bool
	Recorder      Recorder
	Logger        logrus.FieldLogger
}

// NewYTDLPService wires the enumerator, resolver and tagger around the yt-dlp engine
func NewYTDLPService(opts Options) *Service {
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}

	engine := platform.NewYTDLPEngine()

	var prober enumerate.Prober = engine
	if opts.ProbeCacheDir != "" {
		prober = enumerate.NewCachedProber(engine, opts.Fs, opts.ProbeCacheDir, opts.CacheLifetime, opts.Logger)
	}

	enumerator := enumerate.NewEnumerator(prober, opts.Logger)
	enumerator.SetLister(platform.NewYouTubeLister())

	s := NewService(enumerator, engine, destination.NewResolver(opts.Fs), opts.Logger)
	s.SetFilesystem(opts.Fs)
	if opts.TagAudio {
		s.SetTagger(audio.NewTagger())
	}
	if opts.Recorder != nil {
		s.SetRecorder(opts.Recorder)
	}
	return s
}
