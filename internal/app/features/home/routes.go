package home

import "github.com/go-chi/chi/v5"

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeRoot)
	r.Get("/products", h.ServeProducts)
	r.Get("/live", h.ServeLive)
	return r
}
