package http_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"
	controller "github.com/m-mizutani/commet/pkg/controller/http"
	"github.com/m-mizutani/commet/pkg/domain/interfaces"
	"github.com/m-mizutani/commet/pkg/domain/model"
)

type analysisUseCaseMock struct {
	SubmitFunc func(ctx context.Context, sub *model.Submission, observers ...interfaces.ProgressObserver) (*model.AnalysisResult, error)
}

func (m *analysisUseCaseMock) Submit(ctx context.Context, sub *model.Submission, observers ...interfaces.ProgressObserver) (*model.AnalysisResult, error) {
	return m.SubmitFunc(ctx, sub, observers...)
}

type branchUseCaseMock struct {
	ResolveBranchesFunc  func(ctx context.Context, repo model.RepositoryRef, credential string) *model.BranchSet
	LookupRepositoryFunc func(ctx context.Context, fullName, credential string) model.RepositoryRef
}

func (m *branchUseCaseMock) ResolveBranches(ctx context.Context, repo model.RepositoryRef, credential string) *model.BranchSet {
	return m.ResolveBranchesFunc(ctx, repo, credential)
}

func (m *branchUseCaseMock) LookupRepository(ctx context.Context, fullName, credential string) model.RepositoryRef {
	return m.LookupRepositoryFunc(ctx, fullName, credential)
}

func newTestServer(t *testing.T, analysisUC interfaces.AnalysisUseCase, branchUC interfaces.BranchUseCase) *controller.Server {
	t.Helper()
	server, err := controller.NewServer(context.Background(), analysisUC, branchUC)
	gt.NoError(t, err)
	return server
}
