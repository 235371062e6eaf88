package http

import (
	"encoding/json"
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/commet/pkg/domain/model"
)

type connectionsRequest struct {
	Repositories []model.RepositoryRef `json:"repositories"`
}

type projectSummary struct {
	FullName string            `json:"full_name"`
	Type     model.ProjectType `json:"type"`
}

type connectionsResponse struct {
	Projects    []projectSummary   `json:"projects"`
	Connections []model.Connection `json:"connections"`
}

// handleConnections classifies the posted repositories and infers how
// they relate to each other
func handleConnections(w http.ResponseWriter, r *http.Request) {
	var req connectionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, goerr.Wrap(err, "invalid JSON body"), http.StatusBadRequest)
		return
	}

	resp := connectionsResponse{
		Projects:    make([]projectSummary, 0, len(req.Repositories)),
		Connections: model.InferConnections(req.Repositories),
	}
	if resp.Connections == nil {
		resp.Connections = []model.Connection{}
	}
	for _, repo := range req.Repositories {
		resp.Projects = append(resp.Projects, projectSummary{
			FullName: repo.FullName,
			Type:     model.ClassifyProject(repo),
		})
	}

	writeJSON(r.Context(), w, http.StatusOK, resp)
}
