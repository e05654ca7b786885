package sublines

// BuildStationIndex maps each station to the index of the polyline
// vertex nearest it, by squared Euclidean distance in lon/lat space
// (not great-circle — this only needs a cheap nearest-vertex pick, not
// a true distance, and avoids a trig call per vertex per station).
func BuildStationIndex(polyline [][2]float64, stations map[string][2]float64) map[string]int {
	index := make(map[string]int, len(stations))

	for stationID, coord := range stations {
		minDistSq := -1.0
		minIdx := 0
		for i, v := range polyline {
			dLon := coord[0] - v[0]
			dLat := coord[1] - v[1]
			distSq := dLon*dLon + dLat*dLat
			if minDistSq < 0 || distSq < minDistSq {
				minDistSq = distSq
				minIdx = i
			}
		}
		index[stationID] = minIdx
	}

	return index
}

// Dedup removes adjacent duplicate vertices from coords, matching the
// source track-loading step that collapses repeated coordinates
// before building the station index.
func Dedup(coords [][2]float64) [][2]float64 {
	out := make([][2]float64, 0, len(coords))
	for _, c := range coords {
		if len(out) == 0 || out[len(out)-1] != c {
			out = append(out, c)
		}
	}
	return out
}
