package interfaces

import (
	"context"

	"github.com/m-mizutani/commet/pkg/domain/model"
)

// ProgressObserver receives a snapshot after every progress transition
type ProgressObserver func(ctx context.Context, session model.AnalysisSession)

// AnalysisUseCase validates and dispatches analysis submissions
type AnalysisUseCase interface {
	// Submit runs one analysis session. Validation failures are returned
	// before any remote call is made.
	Submit(ctx context.Context, sub *model.Submission, observers ...ProgressObserver) (*model.AnalysisResult, error)
}

// BranchUseCase resolves branch lists for branch selection
type BranchUseCase interface {
	// ResolveBranches never fails; a fallback set is returned instead
	ResolveBranches(ctx context.Context, repo model.RepositoryRef, credential string) *model.BranchSet

	// LookupRepository fills RepositoryRef metadata for a full name. When
	// the lookup fails only FullName is set.
	LookupRepository(ctx context.Context, fullName, credential string) model.RepositoryRef
}
