package quiz

import "github.com/go-chi/chi/v5"

// RegisterRoutes attaches the catalog routes onto the shared /quiz subtree.
// The attempt package registers its own routes on the same subtree.
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Post("/", h.CreateQuiz)
	r.Get("/active", h.ListActive)
	r.Get("/course/{courseID}", h.ListByCourse)
	r.Get("/{quizID}", h.GetQuiz)
	r.Put("/{quizID}", h.UpdateQuiz)
	r.Delete("/{quizID}", h.DeleteQuiz)
}
