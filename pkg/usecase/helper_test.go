package usecase_test

import (
	"context"
	"sync"

	"github.com/m-mizutani/commet/pkg/domain/model"
)

type repositorySourceMock struct {
	ListBranchesFunc  func(ctx context.Context, fullName, credential string) ([]model.Branch, error)
	GetRepositoryFunc func(ctx context.Context, fullName, credential string) (*model.RepositoryInfo, error)
}

func (m *repositorySourceMock) ListBranches(ctx context.Context, fullName, credential string) ([]model.Branch, error) {
	return m.ListBranchesFunc(ctx, fullName, credential)
}

func (m *repositorySourceMock) GetRepository(ctx context.Context, fullName, credential string) (*model.RepositoryInfo, error) {
	return m.GetRepositoryFunc(ctx, fullName, credential)
}

type commitSourceMock struct {
	ListCommitsFunc func(ctx context.Context, fullName, branch string, limit int, credential string) ([]model.Commit, error)
}

func (m *commitSourceMock) ListCommits(ctx context.Context, fullName, branch string, limit int, credential string) ([]model.Commit, error) {
	return m.ListCommitsFunc(ctx, fullName, branch, limit, credential)
}

type analysisBackendMock struct {
	mu                   sync.Mutex
	chatCalls            []*model.ChatRequest
	multiCalls           []*model.MultiProjectChatRequest
	ChatFunc             func(ctx context.Context, req *model.ChatRequest) (*model.ChatResponse, error)
	ChatMultiProjectFunc func(ctx context.Context, req *model.MultiProjectChatRequest) (*model.MultiProjectChatResponse, error)
}

func (m *analysisBackendMock) Chat(ctx context.Context, req *model.ChatRequest) (*model.ChatResponse, error) {
	m.mu.Lock()
	m.chatCalls = append(m.chatCalls, req)
	m.mu.Unlock()
	return m.ChatFunc(ctx, req)
}

func (m *analysisBackendMock) ChatMultiProject(ctx context.Context, req *model.MultiProjectChatRequest) (*model.MultiProjectChatResponse, error) {
	m.mu.Lock()
	m.multiCalls = append(m.multiCalls, req)
	m.mu.Unlock()
	return m.ChatMultiProjectFunc(ctx, req)
}

func (m *analysisBackendMock) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.chatCalls) + len(m.multiCalls)
}
