package audio

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bogem/id3v2"
)

func writeFakeMP3(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "01 - song.mp3")
	// MPEG frame sync followed by padding; no ID3 tag yet
	data := append([]byte{0xFF, 0xFB, 0x90, 0x00}, make([]byte, 256)...)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}
	return path
}

func TestTag(t *testing.T) {
	path := writeFakeMP3(t)

	err := NewTagger().Tag(path, TrackInfo{Title: "Song B", Album: "My List", Track: 2, Total: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		t.Fatalf("failed to reopen: %v", err)
	}
	defer tag.Close()

	if tag.Title() != "Song B" {
		t.Errorf("expected title 'Song B', got %q", tag.Title())
	}
	if tag.Album() != "My List" {
		t.Errorf("expected album 'My List', got %q", tag.Album())
	}
	if got := tag.GetTextFrame(FrameTrack).Text; got != "2/3" {
		t.Errorf("expected track '2/3', got %q", got)
	}
}

func TestTag_MissingFile(t *testing.T) {
	err := NewTagger().Tag(filepath.Join(t.TempDir(), "missing.mp3"), TrackInfo{Title: "x"})
	if err == nil {
		t.Error("expected error for missing file")
	}
}

func TestTag_UnreadableFile(t *testing.T) {
	// a directory opens but cannot be parsed as audio
	dir := t.TempDir()

	err := NewTagger().Tag(dir, TrackInfo{Title: "x"})
	if err == nil {
		t.Fatal("expected error for unreadable file")
	}
	if !strings.HasPrefix(err.Error(), "read tag ") {
		t.Errorf("expected the read error to be returned, got %q", err)
	}
}

func TestTrackNumber(t *testing.T) {
	tests := []struct {
		track, total int
		expected     string
	}{
		{3, 12, "3/12"},
		{3, 0, "3"},
		{0, 12, ""},
	}

	for _, tt := range tests {
		if got := TrackNumber(tt.track, tt.total); got != tt.expected {
			t.Errorf("TrackNumber(%d, %d) = %q, want %q", tt.track, tt.total, got, tt.expected)
		}
	}
}
