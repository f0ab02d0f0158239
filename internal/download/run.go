package download

import (
	"context"

	"github.com/ytget/ytfetch/internal/model"
)

// Run is a request executing in the background
type Run struct {
	RequestID string

	cancel  context.CancelFunc
	done    chan struct{}
	summary model.Summary
	err     error
}

// Wait blocks until the request finished and every event was delivered
func (r *Run) Wait() (model.Summary, error) {
	<-r.done
	return r.summary, r.err
}

// Cancel asks the request to stop. The current item is interrupted on a best
// effort basis and no further items are started.
func (r *Run) Cancel() {
	r.cancel()
}

// Done is closed once Wait would return
func (r *Run) Done() <-chan struct{} {
	return r.done
}
