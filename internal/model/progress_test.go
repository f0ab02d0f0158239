package model

import (
	"testing"

	"github.com/samber/mo"
)

func TestFormatETA(t *testing.T) {
	tests := []struct {
		etaSec   int
		expected string
	}{
		{-1, ""},
		{0, ""},
		{30, "00:30"},
		{90, "01:30"},
		{3600, "01:00:00"},
		{3661, "01:01:01"},
		{7323, "02:02:03"},
	}

	for _, test := range tests {
		result := FormatETA(test.etaSec)
		if result != test.expected {
			t.Errorf("FormatETA(%d) = %s, expected %s", test.etaSec, result, test.expected)
		}
	}
}

func TestProgressEvent_Label(t *testing.T) {
	tests := []struct {
		name     string
		event    ProgressEvent
		expected string
	}{
		{
			name: "downloading with all values",
			event: ProgressEvent{
				Phase:    PhaseDownloading,
				Fraction: mo.Some(0.5),
				Rate:     mo.Some("1.2 MB/s"),
				ETA:      mo.Some("00:30"),
				Index:    1,
				Total:    1,
			},
			expected: "Progress: 50% at 1.2 MB/s ETA 00:30",
		},
		{
			name:     "downloading with unknown values inside collection",
			event:    ProgressEvent{Phase: PhaseDownloading, Index: 2, Total: 3},
			expected: "[2/3] Progress: ? at ? ETA ?",
		},
		{
			name:     "finalizing message",
			event:    ProgressEvent{Phase: PhaseFinalizing, Message: "Finalizing download...", Index: 1, Total: 1},
			expected: "Finalizing download...",
		},
		{
			name:     "phase name without message",
			event:    ProgressEvent{Phase: PhaseCompleted},
			expected: "Completed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.event.Label(); got != tt.expected {
				t.Errorf("Label() = %q, expected %q", got, tt.expected)
			}
		})
	}
}

func TestProgressEvent_Percent(t *testing.T) {
	if p := (ProgressEvent{}).Percent(); p != -1 {
		t.Errorf("Expected -1 for unknown fraction, got %d", p)
	}
	if p := (ProgressEvent{Fraction: mo.Some(0.25)}).Percent(); p != 25 {
		t.Errorf("Expected 25, got %d", p)
	}
}
