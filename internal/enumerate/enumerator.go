// Package enumerate turns a URL into an ItemShape by asking the engine for
// metadata only. Nothing is downloaded here.
package enumerate

import (
	"context"
	"strings"
	"sync/atomic"

	"github.com/samber/mo"
	"github.com/sirupsen/logrus"

	"github.com/ytget/ytfetch/internal/destination"
	"github.com/ytget/ytfetch/internal/model"
)

// Prober returns metadata for a URL without downloading media
type Prober interface {
	Probe(ctx context.Context, url string) (model.Metadata, error)
}

// Lister enumerates collection members for URLs the flat probe left empty
type Lister interface {
	Supports(url string) bool
	List(ctx context.Context, url string) ([]model.Member, error)
}

// Enumerator resolves URLs into item shapes
type Enumerator struct {
	prober    Prober
	lister    Lister
	log       logrus.FieldLogger
	fallbacks atomic.Int64
}

// NewEnumerator creates an enumerator on top of a prober.
// A nil logger means the standard logrus logger.
func NewEnumerator(prober Prober, log logrus.FieldLogger) *Enumerator {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Enumerator{prober: prober, log: log}
}

// SetLister sets the lister used when a collection probe lists no entries
func (e *Enumerator) SetLister(lister Lister) {
	e.lister = lister
}

// Fallbacks returns how many collections received the fallback title
func (e *Enumerator) Fallbacks() int64 {
	return e.fallbacks.Load()
}

// Probe inspects url. Any engine failure is returned as a ProbeError.
func (e *Enumerator) Probe(ctx context.Context, url string) (model.ItemShape, error) {
	log := e.log.WithField("url", url)

	meta, err := e.prober.Probe(ctx, url)
	if err != nil {
		if ctx.Err() != nil {
			return model.ItemShape{}, model.NewError(model.KindCancelled, ctx.Err(), "probe cancelled")
		}
		return model.ItemShape{}, model.NewError(model.KindProbe, err, "cannot inspect %s", url)
	}

	if !meta.IsCollection {
		// the engine fetches exactly what the user entered
		item := memberFrom(meta)
		item.URL = url
		log.WithField("id", item.ID).Debug("probed single item")
		return model.SingleShape(item), nil
	}

	info := &model.CollectionInfo{Title: strings.TrimSpace(meta.Title)}
	if destination.SanitizeTitle(info.Title) == "" {
		e.fallbacks.Add(1)
		log.WithField("title", meta.Title).Warnf("collection has no usable title, using %q", destination.DefaultCollectionTitle)
		info.Title = destination.DefaultCollectionTitle
		info.TitleFallback = true
	}

	for _, entry := range meta.Entries {
		m := memberFrom(entry)
		if m.URL == "" {
			log.WithField("entry", entry.Title).Warn("skipping collection entry without url or id")
			continue
		}
		info.AddMember(m)
	}

	if info.Len() == 0 && e.lister != nil && e.lister.Supports(url) {
		members, err := e.lister.List(ctx, url)
		if err != nil {
			return model.ItemShape{}, model.NewError(model.KindProbe, err, "cannot list members of %s", url)
		}
		for _, m := range members {
			info.AddMember(m)
		}
		log.WithField("members", info.Len()).Debug("collection listed natively")
	}

	info.MemberCount = mo.Some(info.Len())
	if declared, ok := meta.PlaylistCount.Get(); ok && declared != info.Len() {
		log.WithFields(logrus.Fields{"declared": declared, "listed": info.Len()}).Debug("collection size differs from declared count")
	}

	log.WithFields(logrus.Fields{"title": info.Title, "members": info.Len()}).Debug("probed collection")
	return model.CollectionShape(info), nil
}

// memberFrom builds a member; for collection entries the id doubles as url when the entry has none
func memberFrom(meta model.Metadata) model.Member {
	m := model.Member{ID: meta.ID, Title: meta.Title, URL: meta.URL}
	if m.URL == "" {
		m.URL = meta.ID
	}
	return m
}
