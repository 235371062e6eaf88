package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/commet/pkg/domain/interfaces"
	"github.com/m-mizutani/commet/pkg/domain/model"
	"github.com/m-mizutani/commet/pkg/domain/types"
	"github.com/m-mizutani/commet/pkg/utils/async"
)

// analysisRequest is the body of the analysis endpoints. The bearer
// credential of the request takes precedence over Token.
type analysisRequest struct {
	Mode         string                `json:"mode"`
	Question     string                `json:"question"`
	Repositories []string              `json:"repositories"`
	Selected     []model.RepositoryRef `json:"selected,omitempty"`
	Branch       string                `json:"branch,omitempty"`
	CommitsLimit int                   `json:"commits_limit,omitempty"`
	Token        string                `json:"token,omitempty" masq:"secret"`
}

// AnalysisHandler serves analysis submissions
type AnalysisHandler struct {
	analysisUC interfaces.AnalysisUseCase
}

// NewAnalysisHandler creates a new AnalysisHandler
func NewAnalysisHandler(analysisUC interfaces.AnalysisUseCase) *AnalysisHandler {
	return &AnalysisHandler{
		analysisUC: analysisUC,
	}
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(auth, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}

func (h *AnalysisHandler) decode(r *http.Request) (*model.Submission, error) {
	var req analysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, goerr.Wrap(err, "invalid JSON body")
	}

	mode, err := types.ParseMode(req.Mode)
	if err != nil {
		return nil, err
	}

	return &model.Submission{
		Mode:         mode,
		Question:     req.Question,
		Repositories: req.Repositories,
		Selected:     req.Selected,
		Branch:       req.Branch,
		CommitsLimit: req.CommitsLimit,
		OAuthToken:   bearerToken(r),
		ManualToken:  req.Token,
	}, nil
}

// Submit runs an analysis and writes the result as JSON
func (h *AnalysisHandler) Submit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sub, err := h.decode(r)
	if err != nil {
		writeError(w, err, http.StatusBadRequest)
		return
	}

	result, err := h.analysisUC.Submit(ctx, sub)
	if err != nil {
		writeKindError(w, r, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, result)
}

// streamEvent is one line of the NDJSON progress stream
type streamEvent struct {
	Type    string                 `json:"type"`
	Session *model.AnalysisSession `json:"session,omitempty"`
	Result  *model.AnalysisResult  `json:"result,omitempty"`
	Error   *errorResponse         `json:"error,omitempty"`
}

const (
	eventProgress = "progress"
	eventResult   = "result"
	eventError    = "error"
)

// Stream runs an analysis and writes progress snapshots as NDJSON,
// followed by a result or error event. The analysis keeps running when
// the client goes away.
func (h *AnalysisHandler) Stream(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := ctxlog.From(ctx)

	sub, err := h.decode(r)
	if err != nil {
		writeError(w, err, http.StatusBadRequest)
		return
	}

	events := make(chan streamEvent, 8)
	done := make(chan struct{})
	defer close(done)

	async.Dispatch(ctx, func(ctx context.Context) error {
		defer close(events)
		send := func(ev streamEvent) {
			select {
			case events <- ev:
			case <-done:
			}
		}

		result, err := h.analysisUC.Submit(ctx, sub, func(ctx context.Context, s model.AnalysisSession) {
			send(streamEvent{Type: eventProgress, Session: &s})
		})
		if err != nil {
			if statusOf(types.KindOf(err)) >= http.StatusInternalServerError {
				captureError(ctx, err)
			}
			send(streamEvent{Type: eventError, Error: &errorResponse{
				Error: err.Error(),
				Kind:  types.KindOf(err),
			}})
			return nil
		}

		send(streamEvent{Type: eventResult, Result: result})
		return nil
	})

	w.Header().Set("Content-Type", "application/x-ndjson")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)

	flusher, _ := w.(http.Flusher)
	encoder := json.NewEncoder(w)

	for {
		select {
		case <-ctx.Done():
			logger.Info("Client disconnected from analysis stream")
			return

		case ev, ok := <-events:
			if !ok {
				return
			}
			if err := encoder.Encode(ev); err != nil {
				logger.Warn("Failed to write stream event", "error", err)
				return
			}
			if flusher != nil {
				flusher.Flush()
			}
		}
	}
}
