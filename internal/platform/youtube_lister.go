package platform

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/ytget/ytdlp/v2"

	"github.com/ytget/ytfetch/internal/model"
)

// Timeout constants
const (
	DefaultListTimeout = 60 * time.Second
)

// URL parameters and templates
const (
	PlaylistQueryKey        = "list"
	PlaylistParam           = PlaylistQueryKey + "="
	ParamSeparator          = "&"
	YouTubeVideoURLTemplate = "https://www.youtube.com/watch?v=%s"
)

// YouTubeLister enumerates YouTube playlists natively, without the yt-dlp binary
type YouTubeLister struct {
	timeout time.Duration
}

// NewYouTubeLister creates a new lister with the default timeout
func NewYouTubeLister() *YouTubeLister {
	return &YouTubeLister{
		timeout: DefaultListTimeout,
	}
}

// SetTimeout sets the timeout for listing operations
func (y *YouTubeLister) SetTimeout(timeout time.Duration) {
	y.timeout = timeout
}

// Supports reports whether the URL carries a playlist id
func (y *YouTubeLister) Supports(rawURL string) bool {
	return ExtractPlaylistID(rawURL) != ""
}

// List returns the playlist members in playlist order
func (y *YouTubeLister) List(ctx context.Context, rawURL string) ([]model.Member, error) {
	playlistID := ExtractPlaylistID(rawURL)
	if playlistID == "" {
		return nil, fmt.Errorf("could not extract playlist ID from URL: %s", rawURL)
	}

	if y.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, y.timeout)
		defer cancel()
	}

	d := ytdlp.New()
	items, err := d.GetPlaylistItemsAll(ctx, playlistID, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to get playlist items: %w", err)
	}

	members := make([]model.Member, 0, len(items))
	for i, it := range items {
		members = append(members, model.Member{
			Index: i + 1,
			ID:    it.VideoID,
			Title: it.Title,
			URL:   fmt.Sprintf(YouTubeVideoURLTemplate, it.VideoID),
		})
	}
	return members, nil
}

// ExtractPlaylistID extracts the playlist id from the supported URL formats:
//   - https://www.youtube.com/playlist?list=PLAYLIST_ID
//   - https://www.youtube.com/watch?v=VIDEO_ID&list=PLAYLIST_ID&start_radio=1
func ExtractPlaylistID(rawURL string) string {
	if u, err := url.Parse(rawURL); err == nil {
		if id := u.Query().Get(PlaylistQueryKey); id != "" {
			return id
		}
	}

	// Not a parseable URL; fall back to a plain substring scan
	_, after, found := strings.Cut(rawURL, PlaylistParam)
	if !found {
		return ""
	}
	id, _, _ := strings.Cut(after, ParamSeparator)
	return id
}
