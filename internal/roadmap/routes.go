package roadmap

import "github.com/go-chi/chi/v5"

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Generate)
	r.Get("/{userID}", h.ListByUser)
	r.Delete("/id/{roadmapID}", h.Delete)

	return r
}
