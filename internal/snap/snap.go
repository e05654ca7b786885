package snap

import (
	"github.com/yamanote-live/trainpos/internal/geo"
	"github.com/yamanote-live/trainpos/internal/position"
)

const polylineSnapThresholdMeters = 500.0

// Snap maps a SegmentProgress onto a point on the line's polyline.
// Invalid entries have no defined position and are rejected; callers
// are expected to have already dropped them per spec.md §4.8 step 4.
func Snap(sp position.SegmentProgress, g LineGeometry) (Point, bool) {
	switch sp.Status {
	case position.StatusInvalid:
		return Point{}, false
	case position.StatusStopped, position.StatusUnknown:
		return stationPoint(g, sp.PrevStationID, sp.NextStationID)
	default:
		return snapRunning(sp, g)
	}
}

// stationPoint returns prevID's coordinate, falling back to nextID's.
func stationPoint(g LineGeometry, prevID, nextID string) (Point, bool) {
	if c, ok := g.StationCoords[prevID]; ok {
		return Point{Longitude: c[0], Latitude: c[1]}, true
	}
	if c, ok := g.StationCoords[nextID]; ok {
		return Point{Longitude: c[0], Latitude: c[1]}, true
	}
	return Point{}, false
}

func snapRunning(sp position.SegmentProgress, g LineGeometry) (Point, bool) {
	prevCoord, prevOK := g.StationCoords[sp.PrevStationID]
	nextCoord, nextOK := g.StationCoords[sp.NextStationID]
	if !prevOK || !nextOK {
		return Point{}, false
	}

	progress := 0.0
	if sp.Progress != nil {
		progress = *sp.Progress
	}

	straightLine := func() (Point, bool) {
		p := geo.Interpolate(prevCoord, nextCoord, progress)
		bearing := geo.Bearing(prevCoord[0], prevCoord[1], nextCoord[0], nextCoord[1])
		return Point{Longitude: p[0], Latitude: p[1], Bearing: &bearing}, true
	}

	s, sOK := g.StationIndex[sp.PrevStationID]
	e, eOK := g.StationIndex[sp.NextStationID]
	if !sOK || !eOK || s == e || len(g.Polyline) == 0 {
		return straightLine()
	}

	sVertex, eVertex := g.Polyline[s], g.Polyline[e]
	if geo.Haversine(prevCoord[0], prevCoord[1], sVertex[0], sVertex[1]) > polylineSnapThresholdMeters ||
		geo.Haversine(nextCoord[0], nextCoord[1], eVertex[0], eVertex[1]) > polylineSnapThresholdMeters {
		return straightLine()
	}

	sub := subPath(g.Polyline, s, e, g.IsLoop)
	if len(sub) < 2 {
		return straightLine()
	}

	return pointAtFraction(sub, progress), true
}

// subPath extracts the polyline slice between vertex indices s and e,
// per spec.md §4.7: the forward slice when s < e; otherwise, on a loop
// line, the wraparound path `P[s..N-1] + P[0..e]` (spec.md §8 scenario
// 4); on a non-loop line, the reverse of the direct slice from e to s.
func subPath(polyline [][2]float64, s, e int, isLoop bool) [][2]float64 {
	if s < e {
		return polyline[s : e+1]
	}
	if isLoop {
		wrapped := make([][2]float64, 0, len(polyline)-s+e+1)
		wrapped = append(wrapped, polyline[s:]...)
		wrapped = append(wrapped, polyline[:e+1]...)
		return wrapped
	}
	direct := polyline[e : s+1]
	reversed := make([][2]float64, len(direct))
	for i, p := range direct {
		reversed[len(direct)-1-i] = p
	}
	return reversed
}

// pointAtFraction walks sub's cumulative great-circle length and
// linearly interpolates within the segment containing the target
// arc-length fraction.
func pointAtFraction(sub [][2]float64, progress float64) Point {
	if progress <= 0 {
		bearing := segmentBearing(sub, 0)
		return Point{Longitude: sub[0][0], Latitude: sub[0][1], Bearing: &bearing}
	}
	if progress >= 1 {
		last := len(sub) - 1
		bearing := segmentBearing(sub, last-1)
		return Point{Longitude: sub[last][0], Latitude: sub[last][1], Bearing: &bearing}
	}

	total := geo.LineLength(sub)
	if total <= 0 {
		bearing := segmentBearing(sub, 0)
		return Point{Longitude: sub[0][0], Latitude: sub[0][1], Bearing: &bearing}
	}
	target := progress * total

	var covered float64
	for i := 0; i < len(sub)-1; i++ {
		segLen := geo.Haversine(sub[i][0], sub[i][1], sub[i+1][0], sub[i+1][1])
		if covered+segLen >= target || i == len(sub)-2 {
			var frac float64
			if segLen > 0 {
				frac = (target - covered) / segLen
			}
			p := geo.Interpolate(sub[i], sub[i+1], geo.Clamp(frac, 0, 1))
			bearing := segmentBearing(sub, i)
			return Point{Longitude: p[0], Latitude: p[1], Bearing: &bearing}
		}
		covered += segLen
	}

	bearing := segmentBearing(sub, len(sub)-2)
	last := sub[len(sub)-1]
	return Point{Longitude: last[0], Latitude: last[1], Bearing: &bearing}
}

func segmentBearing(sub [][2]float64, i int) float64 {
	if i < 0 {
		i = 0
	}
	if i >= len(sub)-1 {
		i = len(sub) - 2
	}
	return geo.Bearing(sub[i][0], sub[i][1], sub[i+1][0], sub[i+1][1])
}
