// Package sublines assembles a line's disjoint, possibly reversed or
// cross-referenced polyline fragments into one continuous ordered
// polyline, and maps each station onto the nearest vertex of the
// result.
package sublines

// Segment is one fragment of a line's polyline as read from the
// coordinates source. A "main" segment carries its own coordinates; a
// "sub" segment instead references a range of another (already
// resolved) line's polyline by anchor point, letting e.g. a branch
// line reuse track shared with its trunk line.
type Segment struct {
	Type     string // "main" or "sub"
	Coords   [][2]float64
	RefLine  string
	RefStart [2]float64
	RefEnd   [2]float64
}
