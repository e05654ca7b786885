package sublines

import (
	"fmt"
	"math"

	"github.com/yamanote-live/trainpos/internal/geo"
)

// roundedVertex rounds a [lon, lat] pair to 8 decimal places so that
// equality comparisons between independently-sourced coordinates
// tolerate floating point noise.
func roundedVertex(p [2]float64) [2]float64 {
	const scale = 1e8
	return [2]float64{
		math.Round(p[0]*scale) / scale,
		math.Round(p[1]*scale) / scale,
	}
}

// resolveSegment turns a "sub" segment into concrete coordinates by
// locating the referenced line's nearest vertices to the anchor
// points and slicing that range, reversing when the end index
// precedes the start index.
func resolveSegment(seg Segment, resolved map[string][][2]float64) ([][2]float64, error) {
	if seg.Type != "sub" {
		return seg.Coords, nil
	}

	refCoords, ok := resolved[seg.RefLine]
	if !ok {
		return nil, fmt.Errorf("sub-segment references unresolved line %q", seg.RefLine)
	}
	if len(refCoords) == 0 {
		return nil, fmt.Errorf("referenced line %q has no coordinates", seg.RefLine)
	}

	startIdx := geo.ClosestPointIndex(refCoords, seg.RefStart)
	endIdx := geo.ClosestPointIndex(refCoords, seg.RefEnd)

	if startIdx <= endIdx {
		return append([][2]float64(nil), refCoords[startIdx:endIdx+1]...), nil
	}

	sliced := refCoords[endIdx : startIdx+1]
	reversed := make([][2]float64, len(sliced))
	for i, p := range sliced {
		reversed[len(sliced)-1-i] = p
	}
	return reversed, nil
}

// Merge assembles a line's segments into one ordered polyline.
// resolved holds the already-merged polylines of other lines, needed
// to satisfy any "sub" segment referencing them; lines with no such
// cross-references may pass a nil map.
func Merge(segments []Segment, resolved map[string][][2]float64, isLoop bool) ([][2]float64, error) {
	if len(segments) == 0 {
		return nil, fmt.Errorf("no segments to merge")
	}

	fragments := make([][][2]float64, len(segments))
	for i, seg := range segments {
		coords, err := resolveSegment(seg, resolved)
		if err != nil {
			return nil, fmt.Errorf("resolving segment %d: %w", i, err)
		}
		if len(coords) == 0 {
			return nil, fmt.Errorf("segment %d resolved to zero coordinates", i)
		}
		fragments[i] = coords
	}

	order := orderFragments(fragments, isLoop)
	if len(order) == 0 {
		order = greedyOrder(fragments)
	}

	merged := concatenate(fragments, order)
	if len(merged) == 0 {
		return nil, fmt.Errorf("merged polyline is empty")
	}
	return merged, nil
}

// orderFragments builds a directed graph over fragments (edge a->b iff
// the last vertex of a equals the first vertex of b, after rounding)
// and returns a traversal order starting from an in-degree-zero
// fragment (or fragment 0 for loop lines). Fragments the depth-first
// walk never reaches are appended in index order so disjoint pieces
// are never silently dropped; concatenate is what actually reverses a
// fragment found stored back-to-front relative to its neighbor.
func orderFragments(fragments [][][2]float64, isLoop bool) []int {
	n := len(fragments)
	adj := make(map[int][]int)
	inDegree := make([]int, n)

	for a := 0; a < n; a++ {
		lastA := roundedVertex(fragments[a][len(fragments[a])-1])
		for b := 0; b < n; b++ {
			if a == b {
				continue
			}
			firstB := roundedVertex(fragments[b][0])
			if lastA == firstB {
				adj[a] = append(adj[a], b)
				inDegree[b]++
			}
		}
	}

	start := -1
	if isLoop {
		start = 0
	} else {
		for i := 0; i < n; i++ {
			if inDegree[i] == 0 {
				start = i
				break
			}
		}
	}
	if start == -1 {
		return nil
	}

	visited := make([]bool, n)
	var order []int
	var dfs func(i int)
	dfs = func(i int) {
		if visited[i] {
			return
		}
		visited[i] = true
		order = append(order, i)
		for _, next := range adj[i] {
			dfs(next)
		}
	}
	dfs(start)

	for i := 0; i < n; i++ {
		if !visited[i] {
			order = append(order, i)
			visited[i] = true
		}
	}

	return order
}

// greedyOrder is the fallback when graph ordering finds no starting
// fragment: start with fragment 0, then repeatedly attach whichever
// unused fragment has an endpoint nearest the current tail, reversing
// it first if its far endpoint is the closer one.
func greedyOrder(fragments [][][2]float64) []int {
	n := len(fragments)
	used := make([]bool, n)
	order := make([]int, 0, n)

	order = append(order, 0)
	used[0] = true
	tail := fragments[0][len(fragments[0])-1]

	for len(order) < n {
		best := -1
		bestReverse := false
		bestDist := math.MaxFloat64

		for i := 0; i < n; i++ {
			if used[i] {
				continue
			}
			head := fragments[i][0]
			foot := fragments[i][len(fragments[i])-1]

			dHead := geo.Haversine(tail[0], tail[1], head[0], head[1])
			dFoot := geo.Haversine(tail[0], tail[1], foot[0], foot[1])

			if dHead < bestDist {
				bestDist = dHead
				best = i
				bestReverse = false
			}
			if dFoot < bestDist {
				bestDist = dFoot
				best = i
				bestReverse = true
			}
		}

		if best == -1 {
			break
		}

		used[best] = true
		order = append(order, best)
		if bestReverse {
			fragments[best] = reverseCoords(fragments[best])
		}
		tail = fragments[best][len(fragments[best])-1]
	}

	return order
}

func reverseCoords(coords [][2]float64) [][2]float64 {
	out := make([][2]float64, len(coords))
	for i, p := range coords {
		out[len(coords)-1-i] = p
	}
	return out
}

// concatenate joins fragments in the given order. A fragment whose
// first vertex duplicates the merged path's current last vertex has
// that vertex dropped before appending; a fragment stored
// back-to-front — its *last* vertex is the one matching the tail
// instead — is reversed first, then handled the same way.
func concatenate(fragments [][][2]float64, order []int) [][2]float64 {
	var merged [][2]float64
	for _, idx := range order {
		frag := fragments[idx]
		if len(merged) == 0 {
			merged = append(merged, frag...)
			continue
		}

		tail := roundedVertex(merged[len(merged)-1])
		switch {
		case roundedVertex(frag[0]) == tail:
			merged = append(merged, frag[1:]...)
		case roundedVertex(frag[len(frag)-1]) == tail:
			reversedFrag := reverseCoords(frag)
			merged = append(merged, reversedFrag[1:]...)
		default:
			merged = append(merged, frag...)
		}
	}
	return merged
}
