package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// LineSummary is the JSON shape returned for one line.
type LineSummary struct {
	LineID      string `json:"line_id"`
	DisplayName string `json:"display_name"`
	GTFSRouteID string `json:"gtfs_route_id"`
	IsLoop      bool   `json:"is_loop"`
}

// findLine resolves id against both the short identifier and the
// internal GTFS route / polyline identifier, per spec.md §6's
// "supports both the short identifier and the internal identifier".
func (s *Server) findLine(id string) (LineRuntime, bool) {
	if lr, ok := s.Lines[id]; ok {
		return lr, true
	}
	for _, lr := range s.Lines {
		if lr.Config.GTFSRouteID == id || lr.Config.InternalPolylineID == id {
			return lr, true
		}
	}
	return LineRuntime{}, false
}

func toSummary(lr LineRuntime) LineSummary {
	return LineSummary{
		LineID:      lr.Config.ID,
		DisplayName: lr.Config.DisplayName,
		GTFSRouteID: lr.Config.GTFSRouteID,
		IsLoop:      lr.Config.IsLoop,
	}
}

// handleListLines serves GET /api/lines[?operator=X]. operator is
// accepted for forward-compatibility with a multi-operator deployment
// but this corpus has a single operator, so it's currently unused as a
// filter.
func (s *Server) handleListLines(w http.ResponseWriter, r *http.Request) {
	summaries := make([]LineSummary, 0, len(s.Lines))
	for _, lr := range s.Lines {
		summaries = append(summaries, toSummary(lr))
	}
	writeJSON(w, http.StatusOK, map[string]any{"lines": summaries})
}

// handleGetLine serves GET /api/lines/{line_id}.
func (s *Server) handleGetLine(w http.ResponseWriter, r *http.Request) {
	lineID := chi.URLParam(r, "line_id")
	lr, ok := s.findLine(lineID)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown line", map[string]any{"line_id": lineID})
		return
	}
	writeJSON(w, http.StatusOK, toSummary(lr))
}
