// Package snap maps a computed SegmentProgress onto a latitude/longitude
// on a line's physical track polyline (spec.md §4.7).
package snap

// Point is a resolved geographic position, optionally carrying the
// bearing of travel at that point.
type Point struct {
	Longitude float64
	Latitude  float64
	Bearing   *float64
}

// LineGeometry is the per-line geometry a Snap call needs: the merged
// polyline built at startup, each station's nearest-vertex index into
// it, each station's own coordinate, and whether the line loops.
type LineGeometry struct {
	Polyline      [][2]float64
	StationIndex  map[string]int
	StationCoords map[string][2]float64
	IsLoop        bool
}
