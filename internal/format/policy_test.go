package format

import (
	"strings"
	"testing"

	"github.com/ytget/ytfetch/internal/model"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name            string
		format          model.OutputFormat
		selection       string
		merge           string
		postProcessKind model.PostProcessKind
	}{
		{
			name:            "muxed mp4",
			format:          model.FormatMuxed,
			selection:       MuxedSelection,
			merge:           "mp4",
			postProcessKind: model.PostProcessNone,
		},
		{
			name:            "audio only mp3",
			format:          model.FormatAudioOnly,
			selection:       AudioSelection,
			merge:           "",
			postProcessKind: model.PostProcessExtractAudio,
		},
		{
			name:            "unknown falls back to muxed",
			format:          model.OutputFormat("webm"),
			selection:       MuxedSelection,
			merge:           "mp4",
			postProcessKind: model.PostProcessNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := Resolve(tt.format)
			if spec.Selection != tt.selection {
				t.Errorf("expected selection %q, got %q", tt.selection, spec.Selection)
			}
			if spec.MergeContainer != tt.merge {
				t.Errorf("expected merge container %q, got %q", tt.merge, spec.MergeContainer)
			}
			if spec.PostProcess.Kind != tt.postProcessKind {
				t.Errorf("expected post-process %q, got %q", tt.postProcessKind, spec.PostProcess.Kind)
			}
		})
	}
}

func TestResolve_MuxedFallbackChain(t *testing.T) {
	alternatives := strings.Split(Resolve(model.FormatMuxed).Selection, "/")
	if len(alternatives) != 3 {
		t.Fatalf("expected 3 alternatives, got %d", len(alternatives))
	}
	if alternatives[len(alternatives)-1] != "best" {
		t.Errorf("last alternative must be unconstrained best, got %q", alternatives[len(alternatives)-1])
	}
}

func TestResolve_AudioPostProcess(t *testing.T) {
	spec := Resolve(model.FormatAudioOnly)
	if !strings.HasPrefix(spec.Selection, "bestaudio") {
		t.Errorf("audio selection should start with bestaudio, got %q", spec.Selection)
	}
	if spec.PostProcess.Codec != "mp3" || spec.PostProcess.Quality != "192" {
		t.Errorf("unexpected post-process %+v", spec.PostProcess)
	}
}

func TestExtension(t *testing.T) {
	if Extension(model.FormatMuxed) != ".mp4" {
		t.Errorf("expected .mp4, got %s", Extension(model.FormatMuxed))
	}
	if Extension(model.FormatAudioOnly) != ".mp3" {
		t.Errorf("expected .mp3, got %s", Extension(model.FormatAudioOnly))
	}
}
