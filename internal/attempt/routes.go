package attempt

import "github.com/go-chi/chi/v5"

// RegisterRoutes attaches attempt endpoints to the shared quiz subtree.
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Post("/{quizID}/attempt", h.Start)
	r.Get("/{quizID}/leaderboard", h.Leaderboard)
	r.Get("/{quizID}/progress", h.Progress)
	r.Get("/student/{userID}/attempts", h.ListByStudent)

	r.Route("/attempt/{attemptID}", func(r chi.Router) {
		r.Get("/", h.Get)
		r.Get("/answers", h.ListAnswers)
		r.Post("/answer", h.SubmitAnswer)
		r.Post("/complete", h.Complete)
		r.Get("/results", h.Results)
	})
}
