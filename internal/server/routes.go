package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"ah_market/pkg/httpx/reply"
)

func (s Server) RegisterRoutes(r chi.Router) {
	r.Route("/v1", func(r chi.Router) {
		r.Route("/auctions", func(r chi.Router) {
			r.Get("/current/{itemName}", handler(s.getCurrentItem))
			r.Get("/attribute/{attribute}", handler(s.getByAttribute))
			r.Get("/pets", handler(s.getPets))
			r.Get("/averages", handler(s.getAverages))
			r.Get("/raw/{itemName}", handler(s.getRaw))
		})

		r.Get("/status", handler(s.getStatus))
	})
}

func handler(f func(http.ResponseWriter, *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := f(w, r); err != nil {
			reply.Error(r.Context(), w, err)
		}
	}
}
