package enumerate

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/metafates/gache"
	"github.com/samber/mo"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/ytget/ytfetch/internal/model"
)

// Probe cache defaults
const (
	DefaultCacheLifetime = 10 * time.Minute
	CacheFileName        = "probe_cache.json"
)

// GacheFs adapts an afero filesystem to the gache.FileSystem interface
type GacheFs struct {
	Fs afero.Fs
}

// OpenFile opens a file on the wrapped filesystem
func (g GacheFs) OpenFile(name string, flag int, perm os.FileMode) (io.ReadWriteCloser, error) {
	return g.Fs.OpenFile(name, flag, perm)
}

// MkdirAll creates a directory on the wrapped filesystem
func (g GacheFs) MkdirAll(path string, perm os.FileMode) error {
	return g.Fs.MkdirAll(path, perm)
}

// cachedMetadata is the on-disk form of model.Metadata
type cachedMetadata struct {
	ID            string           `json:"id"`
	Title         string           `json:"title"`
	URL           string           `json:"url"`
	IsCollection  bool             `json:"is_collection"`
	PlaylistCount *int             `json:"playlist_count,omitempty"`
	Entries       []cachedMetadata `json:"entries,omitempty"`
}

type cacheData struct {
	Probes map[string]cachedMetadata `json:"probes"`
}

// CachedProber remembers probe results per URL for a short lifetime.
// Fetching always goes to the engine.
type CachedProber struct {
	next     Prober
	internal *gache.Cache[*cacheData]
	log      logrus.FieldLogger
	mu       sync.Mutex
}

// NewCachedProber wraps next with an on-disk cache in dir on fs.
// A zero lifetime means DefaultCacheLifetime.
func NewCachedProber(next Prober, fs afero.Fs, dir string, lifetime time.Duration, log logrus.FieldLogger) *CachedProber {
	if lifetime <= 0 {
		lifetime = DefaultCacheLifetime
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &CachedProber{
		next: next,
		internal: gache.New[*cacheData](&gache.Options{
			Path:       filepath.Join(dir, CacheFileName),
			Lifetime:   lifetime,
			FileSystem: GacheFs{Fs: fs},
		}),
		log: log,
	}
}

// Probe returns the cached metadata for url, probing on a miss
func (c *CachedProber) Probe(ctx context.Context, url string) (model.Metadata, error) {
	if meta, ok := c.lookup(url).Get(); ok {
		c.log.WithField("url", url).Debug("probe cache hit")
		return meta, nil
	}

	meta, err := c.next.Probe(ctx, url)
	if err != nil {
		return model.Metadata{}, err
	}

	if err := c.store(url, meta); err != nil {
		c.log.WithError(err).WithField("url", url).Warn("failed to write probe cache")
	}
	return meta, nil
}

func (c *CachedProber) lookup(url string) mo.Option[model.Metadata] {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, expired, err := c.internal.Get()
	if err != nil || expired || data == nil {
		return mo.None[model.Metadata]()
	}

	cached, ok := data.Probes[url]
	if !ok {
		return mo.None[model.Metadata]()
	}
	return mo.Some(cached.toMetadata())
}

func (c *CachedProber) store(url string, meta model.Metadata) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, expired, err := c.internal.Get()
	if err != nil || expired || data == nil || data.Probes == nil {
		data = &cacheData{Probes: make(map[string]cachedMetadata)}
	}

	data.Probes[url] = fromMetadata(meta)
	return c.internal.Set(data)
}

func fromMetadata(m model.Metadata) cachedMetadata {
	c := cachedMetadata{
		ID:           m.ID,
		Title:        m.Title,
		URL:          m.URL,
		IsCollection: m.IsCollection,
	}
	if count, ok := m.PlaylistCount.Get(); ok {
		c.PlaylistCount = &count
	}
	for _, e := range m.Entries {
		c.Entries = append(c.Entries, fromMetadata(e))
	}
	return c
}

func (c cachedMetadata) toMetadata() model.Metadata {
	m := model.Metadata{
		ID:           c.ID,
		Title:        c.Title,
		URL:          c.URL,
		IsCollection: c.IsCollection,
	}
	if c.PlaylistCount != nil {
		m.PlaylistCount = mo.Some(*c.PlaylistCount)
	}
	for _, e := range c.Entries {
		m.Entries = append(m.Entries, e.toMetadata())
	}
	return m
}
