package model

import "testing"

func TestPhase_IsActive(t *testing.T) {
	tests := []struct {
		phase    Phase
		expected bool
	}{
		{PhaseIdle, false},
		{PhaseDownloading, true},
		{PhaseFinalizing, true},
		{PhaseCompleted, false},
		{PhaseFailed, false},
	}

	for _, test := range tests {
		result := test.phase.IsActive()
		if result != test.expected {
			t.Errorf("Phase(%s).IsActive() = %v, expected %v", test.phase, result, test.expected)
		}
	}
}

func TestPhase_IsTerminal(t *testing.T) {
	tests := []struct {
		phase    Phase
		expected bool
	}{
		{PhaseIdle, false},
		{PhaseDownloading, false},
		{PhaseFinalizing, false},
		{PhaseCompleted, true},
		{PhaseFailed, true},
	}

	for _, test := range tests {
		result := test.phase.IsTerminal()
		if result != test.expected {
			t.Errorf("Phase(%s).IsTerminal() = %v, expected %v", test.phase, result, test.expected)
		}
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		input    string
		expected Kind
		wantErr  bool
	}{
		{"single", KindSingleItem, false},
		{"Video", KindSingleItem, false},
		{"playlist", KindCollection, false},
		{" collection ", KindCollection, false},
		{"album", "", true},
	}

	for _, test := range tests {
		kind, err := ParseKind(test.input)
		if (err != nil) != test.wantErr {
			t.Errorf("ParseKind(%q) error = %v, wantErr %v", test.input, err, test.wantErr)
			continue
		}
		if kind != test.expected {
			t.Errorf("ParseKind(%q) = %s, expected %s", test.input, kind, test.expected)
		}
	}
}

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected OutputFormat
		wantErr  bool
	}{
		{"mp4", FormatMuxed, false},
		{"MP3", FormatAudioOnly, false},
		{"audio", FormatAudioOnly, false},
		{"flac", "", true},
	}

	for _, test := range tests {
		format, err := ParseOutputFormat(test.input)
		if (err != nil) != test.wantErr {
			t.Errorf("ParseOutputFormat(%q) error = %v, wantErr %v", test.input, err, test.wantErr)
			continue
		}
		if format != test.expected {
			t.Errorf("ParseOutputFormat(%q) = %s, expected %s", test.input, format, test.expected)
		}
	}
}

func TestNewDownloadRequest(t *testing.T) {
	req1 := NewDownloadRequest("  https://example/video ", KindSingleItem, FormatMuxed, "/tmp/out")
	req2 := NewDownloadRequest("https://example/video", KindSingleItem, FormatMuxed, "/tmp/out")

	if req1.URL != "https://example/video" {
		t.Errorf("Expected trimmed URL, got '%s'", req1.URL)
	}
	if req1.ID == req2.ID {
		t.Error("Expected different request IDs")
	}
	if len(req1.ID) != len(RequestIDPrefix)+36 {
		t.Errorf("Expected ID length %d, got %d for ID: %s", len(RequestIDPrefix)+36, len(req1.ID), req1.ID)
	}
}
