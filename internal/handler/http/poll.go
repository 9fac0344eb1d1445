package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/pollivu/pollivu/internal/app"
	"github.com/pollivu/pollivu/internal/logger"
	"github.com/pollivu/pollivu/internal/utils"
	"github.com/pollivu/pollivu/models"
)

// createPoll handles POST /api/poll. Anyone may create a poll; when the
// caller carries a valid bearer token the new poll also records the account
// as its owner. The response is the only place the raw creator token ever
// appears.
func (h *Handler) createPoll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var input models.CreatePollInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		log.Err(err).Msg(app.MsgInvalidJSON)
		http.Error(w, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}

	// Ownership comes from the verified token, never from the body.
	input.OwnerID = nil
	if userID, ok := utils.GetUserIDFromContext(ctx); ok {
		input.OwnerID = &userID
	}

	created, err := h.services.PollService.CreatePoll(ctx, input)
	if err != nil {
		respondServiceError(w, r, err, "poll creation failed")
		return
	}

	h.metrics.PollsCreated.Inc()
	utils.WriteJSON(w, created, http.StatusCreated)
}

// getPoll handles GET /api/poll/{pollID}: the poll with its options plus
// the visitor's own voting state derived from the anonymous session.
func (h *Handler) getPoll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	pollID := chi.URLParam(r, "pollID")
	sessionID, _ := utils.GetSessionIDFromContext(ctx)

	view, err := h.services.StatsService.View(ctx, pollID, sessionID, actorFromRequest(r))
	if err != nil {
		respondServiceError(w, r, err, "poll view failed")
		return
	}

	utils.WriteJSON(w, view, http.StatusOK)
}

// editPoll handles PUT /api/poll/{pollID}. Owner only.
func (h *Handler) editPoll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var input models.EditPollInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		log.Err(err).Msg(app.MsgInvalidJSON)
		http.Error(w, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}

	poll, err := h.services.PollService.EditPoll(ctx, chi.URLParam(r, "pollID"), actorFromRequest(r), input)
	if err != nil {
		respondServiceError(w, r, err, "poll edit failed")
		return
	}

	utils.WriteJSON(w, poll, http.StatusOK)
}

// addOption handles POST /api/poll/{pollID}/options. Owner only.
func (h *Handler) addOption(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var input models.AddOptionRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		log.Err(err).Msg(app.MsgInvalidJSON)
		http.Error(w, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}

	option, err := h.services.PollService.AddOption(ctx, chi.URLParam(r, "pollID"), actorFromRequest(r), input.OptionText)
	if err != nil {
		respondServiceError(w, r, err, "option append failed")
		return
	}

	utils.WriteJSON(w, option, http.StatusCreated)
}

// deleteOption handles DELETE /api/poll/{pollID}/options/{optionID}.
// Owner only; refused when the poll would drop below two options.
func (h *Handler) deleteOption(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	optionID, err := strconv.ParseInt(chi.URLParam(r, "optionID"), 10, 64)
	if err != nil {
		log.Err(err).Msg("malformed option ID")
		http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}

	if err := h.services.PollService.DeleteOption(ctx, chi.URLParam(r, "pollID"), actorFromRequest(r), optionID); err != nil {
		respondServiceError(w, r, err, "option delete failed")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// togglePublic handles POST /api/poll/{pollID}/toggle_public. Owner only.
func (h *Handler) togglePublic(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	public, err := h.services.PollService.TogglePublic(ctx, chi.URLParam(r, "pollID"), actorFromRequest(r))
	if err != nil {
		respondServiceError(w, r, err, "public flag toggle failed")
		return
	}

	utils.WriteJSON(w, map[string]bool{"is_public": public}, http.StatusOK)
}

// closePoll handles POST /api/poll/{pollID}/close. Creator or owner.
func (h *Handler) closePoll(w http.ResponseWriter, r *http.Request) {
	if err := h.services.PollService.ClosePoll(r.Context(), chi.URLParam(r, "pollID"), actorFromRequest(r)); err != nil {
		respondServiceError(w, r, err, "poll close failed")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// reopenPoll handles POST /api/poll/{pollID}/reopen. Creator or owner.
func (h *Handler) reopenPoll(w http.ResponseWriter, r *http.Request) {
	if err := h.services.PollService.ReopenPoll(r.Context(), chi.URLParam(r, "pollID"), actorFromRequest(r)); err != nil {
		respondServiceError(w, r, err, "poll reopen failed")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// deletePoll handles DELETE /api/poll/{pollID}. Creator or owner; options
// and votes cascade with the poll.
func (h *Handler) deletePoll(w http.ResponseWriter, r *http.Request) {
	if err := h.services.PollService.DeletePoll(r.Context(), chi.URLParam(r, "pollID"), actorFromRequest(r)); err != nil {
		respondServiceError(w, r, err, "poll delete failed")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// dashboard handles GET /api/dashboard: the authenticated account's polls,
// newest first.
func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg(app.MsgNoUserIDProvided)
		http.Error(w, app.MsgNoUserIDProvided, http.StatusUnauthorized)
		return
	}

	polls, err := h.services.PollService.ListPolls(ctx, models.PollFilter{OwnerID: &userID})
	if err != nil {
		respondServiceError(w, r, err, "dashboard listing failed")
		return
	}

	utils.WriteJSON(w, polls, http.StatusOK)
}
