package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/commet/pkg/domain/interfaces"
	"github.com/m-mizutani/commet/pkg/domain/model"
	"github.com/m-mizutani/commet/pkg/domain/types"
)

type analysisUseCase struct {
	backend     interfaces.AnalysisBackend
	phaseDelays []time.Duration
	newID       func() string
}

// AnalysisOption configures the analysis use case
type AnalysisOption func(*analysisUseCase)

// WithPhaseDelays sets how long the connecting and commit analysis phases
// stay visible before the next phase starts. Zero by default.
func WithPhaseDelays(connect, commits time.Duration) AnalysisOption {
	return func(uc *analysisUseCase) {
		uc.phaseDelays = []time.Duration{connect, commits}
	}
}

// WithSessionIDGenerator replaces the session ID generator
func WithSessionIDGenerator(f func() string) AnalysisOption {
	return func(uc *analysisUseCase) {
		uc.newID = f
	}
}

// NewAnalysis creates an AnalysisUseCase dispatching to backend
func NewAnalysis(backend interfaces.AnalysisBackend, opts ...AnalysisOption) interfaces.AnalysisUseCase {
	uc := &analysisUseCase{
		backend:     backend,
		phaseDelays: []time.Duration{0, 0},
		newID:       uuid.NewString,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Submit validates sub, walks the session through its phases and calls the
// backend in the last one. Every returned error carries a classification.
func (uc *analysisUseCase) Submit(ctx context.Context, sub *model.Submission, observers ...interfaces.ProgressObserver) (*model.AnalysisResult, error) {
	if err := sub.Validate(); err != nil {
		return nil, classified(err)
	}

	mode := sub.Mode
	if mode == "" {
		mode = types.ModeSingle
	}

	session := model.NewAnalysisSession(uc.newID(), mode)
	logger := ctxlog.From(ctx).With("session_id", session.ID, "mode", mode)
	ctx = ctxlog.With(ctx, logger)

	tracker := NewProgressTracker(session, observers...)
	connections := model.InferConnections(sub.RepositoryRefs())

	logger.Info("Analysis started",
		"repositories", sub.Repositories,
		"branch", sub.Branch,
		"authenticated", sub.Credential() != "",
	)

	result, err := uc.run(ctx, tracker, sub, mode)
	if err != nil {
		tracker.Reset(ctx)
		err = classified(err)
		logger.Warn("Analysis failed",
			"kind", types.KindOf(err),
			"error", err,
		)
		return nil, err
	}

	tracker.CompleteAll(ctx)
	result.Connections = connections
	result.Session = tracker.Session()

	logger.Info("Analysis completed", "model", result.ModelUsed())
	return result, nil
}

func (uc *analysisUseCase) run(ctx context.Context, tracker *ProgressTracker, sub *model.Submission, mode types.Mode) (*model.AnalysisResult, error) {
	for _, delay := range uc.phaseDelays {
		if err := tracker.Advance(ctx); err != nil {
			return nil, err
		}
		if err := wait(ctx, delay); err != nil {
			return nil, err
		}
	}

	if err := tracker.Advance(ctx); err != nil {
		return nil, err
	}

	switch mode {
	case types.ModeMulti:
		resp, err := uc.backend.ChatMultiProject(ctx, sub.MultiProjectChatRequest())
		if err != nil {
			return nil, err
		}
		return &model.AnalysisResult{Mode: mode, Multi: resp}, nil

	default:
		resp, err := uc.backend.Chat(ctx, sub.ChatRequest())
		if err != nil {
			return nil, err
		}
		return &model.AnalysisResult{Mode: mode, Single: resp}, nil
	}
}

func wait(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// classified makes sure err carries a kind. Caller cancellation is reported
// as a timeout when a deadline was hit and as unknown otherwise.
func classified(err error) error {
	// Tags merge down the wrap chain, so an outer tag cannot replace an
	// inner one. Only untagged errors may be tagged here.
	if types.HasKnownKind(err) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return goerr.Wrap(err, "request timeout - please try again", goerr.T(types.ErrTagTimeout))
	}
	return goerr.Wrap(err, "an unexpected error occurred", goerr.T(types.ErrTagUnknown))
}
