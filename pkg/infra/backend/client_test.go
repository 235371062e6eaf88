package backend_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/commet/pkg/domain/model"
	"github.com/m-mizutani/commet/pkg/domain/types"
	"github.com/m-mizutani/commet/pkg/infra/backend"
)

func TestClient_Chat(t *testing.T) {
	var got model.ChatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gt.Equal(t, r.URL.Path, "/api/chat")
		gt.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(model.ChatResponse{
			Question:   got.Question,
			Repository: got.Repository,
			Branch:     "main",
			ModelUsed:  "gpt-4o",
			AIResponse: "It prints cats.",
		})
	}))
	defer server.Close()

	client := backend.NewClient(server.URL + "/")
	resp, err := client.Chat(context.Background(), &model.ChatRequest{
		Question:     "What does this do?",
		Repository:   "octo/cat",
		CommitsLimit: 10,
		Token:        "secret-token",
	})
	gt.NoError(t, err)
	gt.Equal(t, resp.AIResponse, "It prints cats.")
	gt.Equal(t, got.Repository, "octo/cat")
	gt.Equal(t, got.Token, "secret-token")
	gt.Equal(t, got.CommitsLimit, 10)
}

func TestClient_ChatMultiProject(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gt.Equal(t, r.URL.Path, "/api/chat/multi-project")
		var req model.MultiProjectChatRequest
		gt.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		_ = json.NewEncoder(w).Encode(model.MultiProjectChatResponse{
			Question:     req.Question,
			Repositories: req.Repositories,
			ModelUsed:    "gpt-4o",
			AnalysisData: model.MultiProjectAnalysisData{
				TotalCommitsAnalyzed: 20,
				ProjectConnections:   []string{model.ConnFrontendBackend},
			},
			AIResponse: "They talk over REST.",
		})
	}))
	defer server.Close()

	client := backend.NewClient(server.URL)
	resp, err := client.ChatMultiProject(context.Background(), &model.MultiProjectChatRequest{
		Question:     "How do they connect?",
		Repositories: []string{"org/frontend", "org/backend"},
		CommitsLimit: 10,
	})
	gt.NoError(t, err)
	gt.Equal(t, resp.AnalysisData.TotalCommitsAnalyzed, 20)
	gt.Equal(t, resp.Repositories, []string{"org/frontend", "org/backend"})
}

func TestClient_StatusClassification(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		want    types.ErrorKind
		message string
	}{
		{
			name:    "not found",
			status:  http.StatusNotFound,
			want:    types.KindNotFound,
			message: "repository not found or not accessible",
		},
		{
			name:    "unauthorized",
			status:  http.StatusUnauthorized,
			want:    types.KindUnauthorized,
			message: "invalid or expired GitHub token",
		},
		{
			name:    "forbidden is rate limited",
			status:  http.StatusForbidden,
			want:    types.KindRateLimited,
			message: "rate limit exceeded",
		},
		{
			name:    "service unavailable",
			status:  http.StatusServiceUnavailable,
			want:    types.KindServiceUnavailable,
			message: "AI service not available",
		},
		{
			name:    "server message passes through",
			status:  http.StatusInternalServerError,
			body:    `{"error":"OpenAI quota exhausted"}`,
			want:    types.KindUnknown,
			message: "OpenAI quota exhausted",
		},
		{
			name:    "server message keeps classification",
			status:  http.StatusNotFound,
			body:    `{"error":"Repository octo/cat not found"}`,
			want:    types.KindNotFound,
			message: "Repository octo/cat not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := backend.NewClient(server.URL)
			_, err := client.Chat(context.Background(), &model.ChatRequest{Question: "q", Repository: "octo/cat"})
			gt.Error(t, err)
			gt.Equal(t, types.KindOf(err), tt.want)
			gt.True(t, strings.Contains(err.Error(), tt.message))
		})
	}
}

func TestClient_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	client := backend.NewClient(server.URL,
		backend.WithTimeout(50*time.Millisecond),
		backend.WithMultiProjectTimeout(50*time.Millisecond),
	)

	_, err := client.Chat(context.Background(), &model.ChatRequest{Question: "q", Repository: "octo/cat"})
	gt.Equal(t, types.KindOf(err), types.KindTimeout)

	_, err = client.ChatMultiProject(context.Background(), &model.MultiProjectChatRequest{Question: "q", Repositories: []string{"o/a"}})
	gt.Equal(t, types.KindOf(err), types.KindTimeout)
	gt.True(t, strings.Contains(err.Error(), "fewer repositories"))
}

func TestClient_ListBranches(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gt.Equal(t, r.URL.Path, "/api/git/branches")
		gt.Equal(t, r.URL.Query().Get("repo"), "octo/cat")
		gt.Equal(t, r.URL.Query().Get("token"), "")
		_, _ = w.Write([]byte(`[{"name":"main","protected":true},{"name":"dev","protected":false}]`))
	}))
	defer server.Close()

	client := backend.NewClient(server.URL)
	branches, err := client.ListBranches(context.Background(), "octo/cat", "")
	gt.NoError(t, err)
	gt.A(t, branches).Length(2)
	gt.Equal(t, branches[1].Name, "dev")
}

func TestClient_GetRepository(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gt.Equal(t, r.URL.Path, "/api/git/repo")
		gt.Equal(t, r.URL.Query().Get("token"), "tok")
		_, _ = w.Write([]byte(`{"name":"cat","full_name":"octo/cat","default_branch":"trunk","is_private":true}`))
	}))
	defer server.Close()

	client := backend.NewClient(server.URL)
	info, err := client.GetRepository(context.Background(), "octo/cat", "tok")
	gt.NoError(t, err)
	gt.Equal(t, info.DefaultBranch, "trunk")
	gt.True(t, info.IsPrivate)
}
