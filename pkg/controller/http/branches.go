package http

import (
	"net/http"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/commet/pkg/domain/interfaces"
	"github.com/m-mizutani/commet/pkg/domain/model"
	"github.com/m-mizutani/commet/pkg/domain/types"
)

// BranchHandler serves branch lists for branch selection
type BranchHandler struct {
	branchUC interfaces.BranchUseCase
}

// NewBranchHandler creates a new BranchHandler
func NewBranchHandler(branchUC interfaces.BranchUseCase) *BranchHandler {
	return &BranchHandler{
		branchUC: branchUC,
	}
}

// List resolves the branches of ?repo=. When ?default_branch= is omitted
// the repository metadata is looked up first.
func (h *BranchHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()
	credential := bearerToken(r)

	fullName := strings.TrimSpace(query.Get("repo"))
	if fullName == "" {
		writeError(w, goerr.New("repo parameter is required", goerr.T(types.ErrTagMissingRepository)), http.StatusBadRequest)
		return
	}
	if !model.IsValidFullName(fullName) {
		writeError(w, goerr.New("please enter a valid repository format (owner/repo)",
			goerr.T(types.ErrTagInvalidRepositoryFormat),
			goerr.V("repo", fullName)), http.StatusBadRequest)
		return
	}

	repo := model.RepositoryRef{
		FullName:      fullName,
		DefaultBranch: strings.TrimSpace(query.Get("default_branch")),
	}
	if repo.DefaultBranch == "" {
		repo = h.branchUC.LookupRepository(ctx, fullName, credential)
	}

	writeJSON(ctx, w, http.StatusOK, h.branchUC.ResolveBranches(ctx, repo, credential))
}
