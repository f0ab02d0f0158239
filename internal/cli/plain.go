package cli

import (
	"fmt"
	"io"

	"github.com/ytget/ytfetch/internal/model"
)

// PercentStep is the minimum progress change printed in plain mode
const PercentStep = 10

// linePrinter writes progress events as plain lines, skipping small steps
type linePrinter struct {
	out       io.Writer
	lastPhase model.Phase
	lastIndex int
	lastPct   int
}

func newLinePrinter(out io.Writer) *linePrinter {
	return &linePrinter{out: out, lastPct: -1}
}

// Print writes the event when it changes item or phase, or moves by PercentStep
func (p *linePrinter) Print(event model.ProgressEvent) {
	pct := event.Percent()
	changed := event.Phase != p.lastPhase || event.Index != p.lastIndex
	if !changed && event.Phase == model.PhaseDownloading && pct >= 0 && pct-p.lastPct < PercentStep && pct < 100 {
		return
	}
	if !changed && event.Phase != model.PhaseDownloading && event.ErrorKind == model.KindNone {
		return
	}

	p.lastPhase, p.lastIndex, p.lastPct = event.Phase, event.Index, pct

	switch {
	case event.Phase == model.PhaseCompleted:
		fmt.Fprintf(p.out, "%s %s\n", DoneMark, event.Label())
	case event.Phase == model.PhaseFailed || event.ErrorKind != model.KindNone:
		fmt.Fprintf(p.out, "%s %s\n", FailMark, event.Label())
	default:
		fmt.Fprintln(p.out, event.Label())
	}
}
