// Package geodata loads the three source files the sublines merger and
// the station seed import need: railways.json (the closed set of known
// line identifiers, used as a startup sanity check), coordinates.json
// (polyline fragments grouped by line, feeding sublines.Merge), and
// stations.json (the one-time station seed, feeding the persistent
// store's initial population).
package geodata

import "encoding/json"

// railwayEntry is one element of railways.json: just enough to confirm
// a configured line's internal polyline identifier actually exists in
// the deployed data bundle.
type railwayEntry struct {
	ID string `json:"id"`
}

// coordinatesFile is coordinates.json's top-level shape: a flat list of
// railways, each carrying its own ordered sub-segments.
type coordinatesFile struct {
	Railways []coordinateRailway `json:"railways"`
}

type coordinateRailway struct {
	ID       string               `json:"id"`
	Segments []coordinateSegment  `json:"segments"`
}

// coordinateSegment mirrors sublines.Segment field-for-field so the
// conversion is a straight copy: "main" segments carry their own
// coordinates, "sub" segments instead reference a range of another
// line's already-resolved polyline.
type coordinateSegment struct {
	Type     string       `json:"type"`
	Coords   [][2]float64 `json:"coords"`
	RefLine  string       `json:"ref_line"`
	RefStart [2]float64   `json:"ref_start"`
	RefEnd   [2]float64   `json:"ref_end"`
}

// stationEntry is one element of stations.json. Railway is either a
// bare string or a one-element array in the source data; a station
// belonging to more than one line records only the first, matching the
// single-line-per-station assumption the rest of the system makes.
type stationEntry struct {
	ID      string          `json:"id"`
	Railway json.RawMessage `json:"railway"`
	Coord   [2]float64      `json:"coord"`
	Title   struct {
		JA string `json:"ja"`
		EN string `json:"en"`
	} `json:"title"`
}
