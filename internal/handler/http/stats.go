package http

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pollivu/pollivu/internal/utils"
)

// getResults handles GET /api/poll/{pollID}/results.
func (h *Handler) getResults(w http.ResponseWriter, r *http.Request) {
	results, err := h.services.StatsService.Results(r.Context(), chi.URLParam(r, "pollID"))
	if err != nil {
		respondServiceError(w, r, err, "results read failed")
		return
	}

	utils.WriteJSON(w, results, http.StatusOK)
}

// getLiveStats handles GET /api/poll/{pollID}/live_stats, the payload live
// result pages poll on an interval.
func (h *Handler) getLiveStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.services.StatsService.LiveStats(r.Context(), chi.URLParam(r, "pollID"))
	if err != nil {
		respondServiceError(w, r, err, "live stats read failed")
		return
	}

	utils.WriteJSON(w, stats, http.StatusOK)
}

// getStatus handles GET /api/poll/{pollID}/status.
func (h *Handler) getStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.services.StatsService.Status(r.Context(), chi.URLParam(r, "pollID"))
	if err != nil {
		respondServiceError(w, r, err, "status read failed")
		return
	}

	utils.WriteJSON(w, status, http.StatusOK)
}

// getAnalytics handles GET /api/poll/{pollID}/analytics: the hourly vote
// timeline and the word-cloud weights. Access follows the poll's insight
// sharing preference.
func (h *Handler) getAnalytics(w http.ResponseWriter, r *http.Request) {
	analytics, err := h.services.StatsService.Analytics(r.Context(), chi.URLParam(r, "pollID"), actorFromRequest(r))
	if err != nil {
		respondServiceError(w, r, err, "analytics read failed")
		return
	}

	utils.WriteJSON(w, analytics, http.StatusOK)
}

// exportCSV handles GET /api/poll/{pollID}/export/csv. Creator or owner
// only; the response is served as a file download.
func (h *Handler) exportCSV(w http.ResponseWriter, r *http.Request) {
	pollID := chi.URLParam(r, "pollID")

	document, err := h.services.StatsService.ExportCSV(r.Context(), pollID, actorFromRequest(r))
	if err != nil {
		respondServiceError(w, r, err, "CSV export failed")
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "poll_"+pollID+".csv"))
	w.WriteHeader(http.StatusOK)
	w.Write(document) //nolint:errcheck
}
