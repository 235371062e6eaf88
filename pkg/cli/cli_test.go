package cli_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/commet/pkg/cli"
	"github.com/m-mizutani/commet/pkg/domain/model"
)

func newBackendServer(t *testing.T, calls *atomic.Int32, got *model.MultiProjectChatRequest) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		switch r.URL.Path {
		case "/api/chat":
			_ = json.NewEncoder(w).Encode(model.ChatResponse{ModelUsed: "gpt-4o", AIResponse: "single answer"})
		case "/api/chat/multi-project":
			gt.NoError(t, json.NewDecoder(r.Body).Decode(got))
			_ = json.NewEncoder(w).Encode(model.MultiProjectChatResponse{ModelUsed: "gpt-4o", AIResponse: "multi answer"})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func TestRun_Ask(t *testing.T) {
	ctx := context.Background()

	t.Run("multi mode through remote backend", func(t *testing.T) {
		var calls atomic.Int32
		var got model.MultiProjectChatRequest
		server := newBackendServer(t, &calls, &got)

		err := cli.Run(ctx, []string{
			"commet", "ask",
			"--backend-url", server.URL,
			"--pace-connect", "0s",
			"--pace-commits", "0s",
			"--mode", "multi",
			"-q", "How do they connect?",
			"-r", "org/frontend",
			"-r", "org/backend",
			"--commits", "7",
			"--token", "manual-token",
		})
		gt.NoError(t, err)
		gt.Equal(t, calls.Load(), int32(1))
		gt.Equal(t, got.Repositories, []string{"org/frontend", "org/backend"})
		gt.Equal(t, got.CommitsLimit, 7)
		gt.Equal(t, got.Token, "manual-token")
	})

	t.Run("too many repositories never reach the backend", func(t *testing.T) {
		var calls atomic.Int32
		var got model.MultiProjectChatRequest
		server := newBackendServer(t, &calls, &got)

		args := []string{
			"commet", "ask",
			"--backend-url", server.URL,
			"--pace-connect", "0s",
			"--pace-commits", "0s",
			"--mode", "multi",
			"-q", "q",
		}
		for _, repo := range []string{"o/a", "o/b", "o/c", "o/d", "o/e", "o/f"} {
			args = append(args, "-r", repo)
		}

		err := cli.Run(ctx, args)
		gt.Error(t, err)
		gt.Equal(t, calls.Load(), int32(0))
	})

	t.Run("invalid log level", func(t *testing.T) {
		err := cli.Run(ctx, []string{"commet", "--log-level", "loud", "ask", "--examples"})
		gt.Error(t, err)
	})

	t.Run("examples", func(t *testing.T) {
		err := cli.Run(ctx, []string{"commet", "ask", "--examples", "--mode", "multi"})
		gt.NoError(t, err)
	})
}
