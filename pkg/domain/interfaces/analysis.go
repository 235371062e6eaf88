package interfaces

import (
	"context"

	"github.com/m-mizutani/commet/pkg/domain/model"
)

// AnalysisBackend answers questions about repositories. Returned errors
// carry a classification tag from types.
type AnalysisBackend interface {
	// Chat analyzes a single repository
	Chat(ctx context.Context, req *model.ChatRequest) (*model.ChatResponse, error)

	// ChatMultiProject analyzes up to five connected repositories
	ChatMultiProject(ctx context.Context, req *model.MultiProjectChatRequest) (*model.MultiProjectChatResponse, error)
}
