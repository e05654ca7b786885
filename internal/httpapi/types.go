// Package httpapi assembles the chi.Router and request handlers that
// expose the core to map clients (spec.md §4.8, §6): line/station/shape
// lookups, the primary live-position endpoint, and the dwell-upsert
// write path.
package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/yamanote-live/trainpos/internal/clock"
	"github.com/yamanote-live/trainpos/internal/config"
	"github.com/yamanote-live/trainpos/internal/realtime"
	"github.com/yamanote-live/trainpos/internal/snap"
	"github.com/yamanote-live/trainpos/internal/staticdata"
	"github.com/yamanote-live/trainpos/internal/store"
)

// LineRuntime bundles one configured line with the geometry and
// stop-resolution inputs built for it at startup.
type LineRuntime struct {
	Config            config.LineConfig
	Geometry          snap.LineGeometry
	OrderedStationIDs []string // ascending physical order, for stop-resolution strategy 4
}

// StationStore is the narrow slice of store.Store the HTTP layer
// needs, letting handlers be tested against a hand-built fake instead
// of a live Postgres connection.
type StationStore interface {
	StationsByLine(ctx context.Context, lineID string) ([]store.StationWithDwell, error)
	SearchStations(ctx context.Context, q string, limit int) ([]store.StationWithDwell, error)
	UpsertDwell(ctx context.Context, stationID, rank string, dwellSeconds int) error
	Dwell(stationID string) int
}

// FeedFetcher is the narrow slice of realtime.Fetcher the HTTP layer
// needs.
type FeedFetcher interface {
	FetchAndNormalize(ctx context.Context, p realtime.NormalizeParams) ([]realtime.TrainSchedule, error)
}

// Server holds every process-wide dependency a handler needs. Built
// once at startup by cmd/server and never mutated except through
// the store's own internal dwell cache.
type Server struct {
	Clock       *clock.Clock
	Corpus      *staticdata.Corpus
	Store       StationStore
	Fetcher     FeedFetcher
	Lines       map[string]LineRuntime // keyed by short line id
	FeedTimeout time.Duration
}

// ErrorResponse is the JSON error shape every handler uses on failure.
type ErrorResponse struct {
	Error   string         `json:"error"`
	Details map[string]any `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string, details map[string]any) {
	writeJSON(w, status, ErrorResponse{Error: message, Details: details})
}

func decodeJSONBody(r *http.Request, dst any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}

// round rounds v to the given number of decimal places.
func round(v float64, places int) float64 {
	scale := 1.0
	for i := 0; i < places; i++ {
		scale *= 10
	}
	return float64(int64(v*scale+sign(v)*0.5)) / scale
}

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}
