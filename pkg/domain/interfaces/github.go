package interfaces

import (
	"context"

	"github.com/m-mizutani/commet/pkg/domain/model"
)

// RepositorySource reads repository metadata and branch lists from a
// hosting API. Returned errors carry a classification tag from types.
// An empty credential means an unauthenticated call.
type RepositorySource interface {
	// ListBranches returns the live branch list of a repository
	ListBranches(ctx context.Context, fullName, credential string) ([]model.Branch, error)

	// GetRepository returns repository metadata
	GetRepository(ctx context.Context, fullName, credential string) (*model.RepositoryInfo, error)
}

// CommitSource reads recent commits of a repository
type CommitSource interface {
	ListCommits(ctx context.Context, fullName, branch string, limit int, credential string) ([]model.Commit, error)
}
