package httpapi

import "net/http"

// geoJSONFeatureCollection is the minimal GeoJSON shape spec.md §6
// asks for: one LineString feature carrying the merged polyline.
type geoJSONFeatureCollection struct {
	Type     string          `json:"type"`
	Features []geoJSONFeature `json:"features"`
}

type geoJSONFeature struct {
	Type       string         `json:"type"`
	Properties map[string]any `json:"properties"`
	Geometry   geoJSONLineString `json:"geometry"`
}

type geoJSONLineString struct {
	Type        string       `json:"type"`
	Coordinates [][2]float64 `json:"coordinates"`
}

// handleShapes serves GET /api/shapes?lineId=...
func (s *Server) handleShapes(w http.ResponseWriter, r *http.Request) {
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

	coords := make([][2]float64, len(lr.Geometry.Polyline))
	for i, p := range lr.Geometry.Polyline {
		coords[i] = [2]float64{round(p[0], 6), round(p[1], 6)}
	}

	writeJSON(w, http.StatusOK, geoJSONFeatureCollection{
		Type: "FeatureCollection",
		Features: []geoJSONFeature{
			{
				Type:       "Feature",
				Properties: map[string]any{"line_id": lr.Config.ID},
				Geometry:   geoJSONLineString{Type: "LineString", Coordinates: coords},
			},
		},
	})
}
