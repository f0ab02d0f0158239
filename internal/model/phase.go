package model

// Phase is the normalized state of one download as reported to observers
type Phase string

const (
	// PhaseIdle means nothing has been fetched for the current item yet
	PhaseIdle Phase = "Idle"

	// PhaseDownloading means media bytes are being transferred
	PhaseDownloading Phase = "Downloading"

	// PhaseFinalizing means the engine is merging or post-processing
	PhaseFinalizing Phase = "Finalizing"

	// PhaseCompleted means the request finished successfully
	PhaseCompleted Phase = "Completed"

	// PhaseFailed means the request finished with an error
	PhaseFailed Phase = "Failed"
)

// String returns the string representation of Phase
func (p Phase) String() string {
	return string(p)
}

// IsActive returns true while an item is being fetched
func (p Phase) IsActive() bool {
	return p == PhaseDownloading || p == PhaseFinalizing
}

// IsTerminal returns true for Completed and Failed
func (p Phase) IsTerminal() bool {
	return p == PhaseCompleted || p == PhaseFailed
}
