package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pollivu/pollivu/internal/app"
	"github.com/pollivu/pollivu/internal/logger"
	"github.com/pollivu/pollivu/internal/service"
	"github.com/pollivu/pollivu/internal/utils"
	"github.com/pollivu/pollivu/models"
)

// castVote handles POST /api/poll/{pollID}/vote.
//
// The voter's identity material is the anonymous session identifier issued
// by the session middleware; the body carries only the chosen option. A
// successful response includes the updated per-option results so the page
// can render them without a second round trip.
func (h *Handler) castVote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var input models.VoteRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		log.Err(err).Msg(app.MsgInvalidJSON)
		http.Error(w, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}

	sessionID, ok := utils.GetSessionIDFromContext(ctx)
	if !ok {
		log.Error().Msg(app.MsgNoSessionProvided)
		http.Error(w, app.MsgNoSessionProvided, http.StatusBadRequest)
		return
	}

	pollID := chi.URLParam(r, "pollID")
	outcome, err := h.services.VotingService.CastVote(ctx, pollID, input.OptionID, sessionID)
	if err != nil {
		respondServiceError(w, r, err, "vote cast failed")
		return
	}

	// A repeated ballot for the same option is a no-op and counts as neither.
	switch outcome.Message {
	case service.MsgVoteChanged:
		h.metrics.VotesChanged.Inc()
	case service.MsgVoteRecorded:
		h.metrics.VotesCast.Inc()
	}

	utils.WriteJSON(w, outcome, http.StatusOK)
}
