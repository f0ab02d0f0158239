// Package audio writes ID3 metadata into extracted mp3 files so collection
// members keep their order and album in media players.
package audio

import (
	"fmt"

	"github.com/bogem/id3v2"
)

// ID3 frame ids without a dedicated setter
const (
	FrameTrack = "TRCK"
)

// TrackInfo is the metadata written into one file
type TrackInfo struct {
	Title string
	Album string // collection title
	Track int    // 1-based ordinal, 0 to skip
	Total int    // collection size, 0 when unknown
}

// Tagger writes ID3v2 tags
type Tagger struct {
	version byte
}

// NewTagger creates a tagger writing ID3v2.4 tags
func NewTagger() *Tagger {
	return &Tagger{version: 4}
}

// Tag writes info into the file at path, creating a tag when none exists.
// Empty fields leave the existing frames untouched.
func (t *Tagger) Tag(path string, info TrackInfo) error {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		// an empty tag has no backing file to save into
		return fmt.Errorf("read tag %s: %w", path, err)
	}
	defer tag.Close()

	tag.SetVersion(t.version)
	tag.SetDefaultEncoding(id3v2.EncodingUTF8)

	if info.Title != "" {
		tag.SetTitle(info.Title)
	}
	if info.Album != "" {
		tag.SetAlbum(info.Album)
	}
	if track := TrackNumber(info.Track, info.Total); track != "" {
		tag.AddTextFrame(FrameTrack, id3v2.EncodingUTF8, track)
	}

	if err := tag.Save(); err != nil {
		return fmt.Errorf("save tag %s: %w", path, err)
	}
	return nil
}

// TrackNumber renders a TRCK value: "3/12", "3" or "" when track is unknown
func TrackNumber(track, total int) string {
	switch {
	case track <= 0:
		return ""
	case total > 0:
		return fmt.Sprintf("%d/%d", track, total)
	default:
		return fmt.Sprintf("%d", track)
	}
}
