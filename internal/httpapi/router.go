package httpapi

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// NewRouter assembles the chi.Router exposing every endpoint in
// spec.md §6, CORS-gated to allowedOrigins.
func NewRouter(s *Server, allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))

	r.Get("/api/lines", s.handleListLines)
	r.Get("/api/lines/{line_id}", s.handleGetLine)
	r.Get("/api/stations", s.handleStations)
	r.Get("/api/stations/search", s.handleSearchStations)
	r.Get("/api/shapes", s.handleShapes)
	r.Get("/api/trains/{line_id}/positions/v4", s.handlePositions)
	r.Put("/api/stations/{station_id}/rank", s.handleUpsertRank)

	return r
}
