// Package format maps a user-selected output format to the stream selection
// expression and post-processing step handed to the fetch engine.
package format

import "github.com/ytget/ytfetch/internal/model"

// Stream selection expressions
const (
	// MuxedSelection prefers an mp4 video + m4a audio pair, then any mp4, then anything
	MuxedSelection = "bestvideo[ext=mp4]+bestaudio[ext=m4a]/best[ext=mp4]/best"

	// AudioSelection picks the best audio-only stream, then anything
	AudioSelection = "bestaudio/best"
)

// Container and conversion settings
const (
	MuxedContainer = "mp4"
	AudioCodec     = "mp3"
	AudioQuality   = "192"
)

// Resolve returns the FormatSpec for an output format.
// Unknown values resolve as FormatMuxed.
func Resolve(f model.OutputFormat) model.FormatSpec {
	switch f {
	case model.FormatAudioOnly:
		return model.FormatSpec{
			Selection: AudioSelection,
			PostProcess: model.PostProcess{
				Kind:    model.PostProcessExtractAudio,
				Codec:   AudioCodec,
				Quality: AudioQuality,
			},
		}
	default:
		return model.FormatSpec{
			Selection:      MuxedSelection,
			MergeContainer: MuxedContainer,
			PostProcess:    model.PostProcess{Kind: model.PostProcessNone},
		}
	}
}

// Extension returns the file extension produced for an output format
func Extension(f model.OutputFormat) string {
	if f == model.FormatAudioOnly {
		return "." + AudioCodec
	}
	return "." + MuxedContainer
}
