package usecase

import (
	"context"

	"github.com/m-mizutani/commet/pkg/domain/interfaces"
	"github.com/m-mizutani/commet/pkg/domain/model"
)

// ProgressTracker drives one AnalysisSession and publishes a snapshot to
// every observer after each transition. It is owned by a single
// submission and is not safe for concurrent use.
type ProgressTracker struct {
	session   model.AnalysisSession
	observers []interfaces.ProgressObserver
}

// NewProgressTracker starts tracking session. The initial state is not published.
func NewProgressTracker(session model.AnalysisSession, observers ...interfaces.ProgressObserver) *ProgressTracker {
	return &ProgressTracker{
		session:   session,
		observers: observers,
	}
}

// Session returns the current snapshot
func (t *ProgressTracker) Session() model.AnalysisSession {
	return t.session
}

// Advance completes the active step and activates the next one
func (t *ProgressTracker) Advance(ctx context.Context) error {
	next, err := t.session.Advance()
	if err != nil {
		return err
	}
	t.publish(ctx, next)
	return nil
}

// CompleteAll marks the session as finished successfully
func (t *ProgressTracker) CompleteAll(ctx context.Context) {
	t.publish(ctx, t.session.CompleteAll())
}

// Reset returns the session to its initial state
func (t *ProgressTracker) Reset(ctx context.Context) {
	t.publish(ctx, t.session.Reset())
}

func (t *ProgressTracker) publish(ctx context.Context, next model.AnalysisSession) {
	t.session = next
	for _, observe := range t.observers {
		observe(ctx, next)
	}
}
