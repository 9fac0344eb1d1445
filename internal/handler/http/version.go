package http

import (
	"net/http"

	"github.com/pollivu/pollivu/internal/utils"
	"github.com/pollivu/pollivu/models"
)

// getServerVersion handles GET /api/server/version with the build metadata
// stamped at compile time.
func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, models.ServerVersion{
		Version:     h.buildInfo.BuildVersion(),
		BuildDate:   h.buildInfo.BuildDate(),
		BuildCommit: h.buildInfo.BuildCommit(),
	}, http.StatusOK)
}
