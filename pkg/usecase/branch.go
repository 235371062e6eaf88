package usecase

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/commet/pkg/domain/interfaces"
	"github.com/m-mizutani/commet/pkg/domain/model"
	"github.com/m-mizutani/commet/pkg/domain/types"
)

type branchUseCase struct {
	source interfaces.RepositorySource
}

// NewBranch creates a BranchUseCase reading from source
func NewBranch(source interfaces.RepositorySource) interfaces.BranchUseCase {
	return &branchUseCase{
		source: source,
	}
}

// ResolveBranches fetches the live branch list of repo. Any failure is
// logged and replaced by a fallback set.
func (uc *branchUseCase) ResolveBranches(ctx context.Context, repo model.RepositoryRef, credential string) *model.BranchSet {
	logger := ctxlog.From(ctx)

	branches, err := uc.source.ListBranches(ctx, repo.FullName, credential)
	if err != nil {
		reason := types.KindOf(err)
		set := model.NewFallbackBranchSet(repo.DefaultBranch, reason)
		logger.Warn("Failed to fetch branches, using fallback list",
			"repository", repo.FullName,
			"reason", reason,
			"branches", set.Names,
			"error", err,
		)
		return set
	}

	logger.Debug("Fetched branches",
		"repository", repo.FullName,
		"count", len(branches),
	)
	return model.NewLiveBranchSet(branches)
}

// LookupRepository returns metadata of fullName, or a bare ref when the
// repository cannot be read.
func (uc *branchUseCase) LookupRepository(ctx context.Context, fullName, credential string) model.RepositoryRef {
	logger := ctxlog.From(ctx)

	info, err := uc.source.GetRepository(ctx, fullName, credential)
	if err != nil {
		logger.Warn("Failed to fetch repository metadata",
			"repository", fullName,
			"reason", types.KindOf(err),
			"error", err,
		)
		return model.RepositoryRef{FullName: fullName}
	}

	ref := info.Ref()
	if ref.FullName == "" {
		ref.FullName = fullName
	}
	return ref
}
