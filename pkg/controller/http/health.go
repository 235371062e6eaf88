package http

import (
	"net/http"

	"github.com/m-mizutani/commet/pkg/domain/model"
	"github.com/m-mizutani/commet/pkg/domain/types"
)

// healthHandler reports service status and the analysis backend in use
func healthHandler(backend string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(r.Context(), w, http.StatusOK, &model.HealthStatus{
			Status:  "healthy",
			Service: types.ServiceName,
			Version: types.Version,
			Backend: backend,
		})
	}
}
