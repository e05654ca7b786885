package httpapi

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/yamanote-live/trainpos/internal/store"
)

// StationView is the JSON shape one station is rendered as, carrying
// its coordinates and current dwell metadata.
type StationView struct {
	StationID     string  `json:"station_id"`
	LineID        string  `json:"line_id"`
	NameLocalized string  `json:"name_localized"`
	NameLatin     string  `json:"name_latin"`
	Longitude     float64 `json:"longitude"`
	Latitude      float64 `json:"latitude"`
	Rank          string  `json:"rank"`
	DwellSeconds  int     `json:"dwell_seconds"`
}

func toStationView(st store.StationWithDwell) StationView {
	return StationView{
		StationID:     st.ID,
		LineID:        st.LineID,
		NameLocalized: st.NameLocalized,
		NameLatin:     st.NameLatin,
		Longitude:     round(st.Longitude, 6),
		Latitude:      round(st.Latitude, 6),
		Rank:          st.Rank,
		DwellSeconds:  st.DwellSeconds,
	}
}

// handleStations serves GET /api/stations?lineId=...
func (s *Server) handleStations(w http.ResponseWriter, r *http.Request) {
	lineID := r.URL.Query().Get("lineId")
	if lineID == "" {
		writeError(w, http.StatusBadRequest, "lineId query parameter is required", nil)
		return
	}
	lr, ok := s.findLine(lineID)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown line", map[string]any{"line_id": lineID})
		return
	}

	stations, err := s.Store.StationsByLine(r.Context(), lr.Config.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load stations", map[string]any{"internal": err.Error()})
		return
	}

	views := make([]StationView, 0, len(stations))
	for _, st := range stations {
		views = append(views, toStationView(st))
	}
	writeJSON(w, http.StatusOK, map[string]any{"stations": views, "count": len(views)})
}

const defaultSearchLimit = 20

// handleSearchStations serves GET /api/stations/search?q=...&limit=...
func (s *Server) handleSearchStations(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeError(w, http.StatusBadRequest, "q query parameter is required", nil)
		return
	}

	limit := defaultSearchLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	stations, err := s.Store.SearchStations(r.Context(), q, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to search stations", map[string]any{"internal": err.Error()})
		return
	}

	views := make([]StationView, 0, len(stations))
	for _, st := range stations {
		views = append(views, toStationView(st))
	}
	writeJSON(w, http.StatusOK, map[string]any{"stations": views, "count": len(views)})
}

// rankUpdateRequest is the PUT /api/stations/{station_id}/rank body.
type rankUpdateRequest struct {
	Rank       string `json:"rank"`
	DwellTime  int    `json:"dwell_time"`
}

// handleUpsertRank serves PUT /api/stations/{station_id}/rank.
func (s *Server) handleUpsertRank(w http.ResponseWriter, r *http.Request) {
	stationID := chi.URLParam(r, "station_id")
	if stationID == "" {
		writeError(w, http.StatusBadRequest, "station_id path parameter is required", nil)
		return
	}

	var req rankUpdateRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body", map[string]any{"internal": err.Error()})
		return
	}

	if err := s.Store.UpsertDwell(r.Context(), stationID, req.Rank, req.DwellTime); err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"station_id":    stationID,
		"rank":          req.Rank,
		"dwell_seconds": req.DwellTime,
	})
}
