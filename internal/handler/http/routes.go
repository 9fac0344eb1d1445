package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(withGZip)

	// account routes, no session needed
	router.Group(func(r chi.Router) {
		r.Post("/api/user/register", h.register)
		r.Post("/api/user/login", h.login)
	})

	// poll routes open to anonymous voters; a bearer token only adds the
	// owner authorization path, so auth here is optional
	router.Group(func(r chi.Router) {
		r.Use(h.withSession)
		r.Use(h.optionalAuth)

		r.Post("/api/poll", h.createPoll)
		r.Get("/api/poll/{pollID}", h.getPoll)
		r.Post("/api/poll/{pollID}/vote", h.castVote)
		r.Get("/api/poll/{pollID}/results", h.getResults)
		r.Get("/api/poll/{pollID}/live_stats", h.getLiveStats)
		r.Get("/api/poll/{pollID}/status", h.getStatus)
		r.Get("/api/poll/{pollID}/analytics", h.getAnalytics)
		r.Get("/api/poll/{pollID}/export/csv", h.exportCSV)
		r.Post("/api/poll/{pollID}/close", h.closePoll)
		r.Post("/api/poll/{pollID}/reopen", h.reopenPoll)
		r.Delete("/api/poll/{pollID}", h.deletePoll)
	})

	// owner-only routes require a valid account token
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Put("/api/poll/{pollID}", h.editPoll)
		r.Post("/api/poll/{pollID}/options", h.addOption)
		r.Delete("/api/poll/{pollID}/options/{optionID}", h.deleteOption)
		r.Post("/api/poll/{pollID}/toggle_public", h.togglePublic)
		r.Get("/api/dashboard", h.dashboard)
	})

	router.Get("/api/server/version", h.getServerVersion)
	router.Method("GET", "/metrics", h.metrics.Handler())

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
