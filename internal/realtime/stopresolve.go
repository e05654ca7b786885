package realtime

import "strings"

// knownOperatorPrefix is the feed's own stop id namespace; a stop id
// already carrying it is used verbatim (strategy 1).
const knownOperatorPrefix = "JR-East."

// SequenceStationMap looks up the sequence->station_id map for a
// (train_number, service_type, direction) triple, matching
// staticdata.Corpus.SeqToStation's signature so callers can pass the
// corpus method directly.
type SequenceStationMap func(trainNumber, serviceType, direction string) (map[int]string, bool)

// StopResolver carries the per-line inputs strategies 2-4 need. All
// fields are optional except the ones a given strategy actually
// reaches; a zero-value resolver falls through to "unresolved" once
// strategy 1 fails.
type StopResolver struct {
	// LinePrefix is prepended to a raw stop id lacking the known
	// operator prefix (strategy 2), e.g. "JR-East.Yamanote".
	LinePrefix string

	// SeqToStation backs strategy 3.
	SeqToStation SequenceStationMap

	// OrderedStations is the line's station list in ascending
	// physical order, backing strategy 4.
	OrderedStations []string

	// Ascending decides, for a given trip direction, whether
	// strategy 4 indexes OrderedStations forward (stop_sequence-1)
	// or backward (len-stop_sequence).
	Ascending func(direction string) bool
}

// Resolve applies the four stop-resolution strategies in priority
// order (spec.md §4.5) and reports whether any of them produced a
// station id.
func (r StopResolver) Resolve(rawStopID string, stopSequence int, trainNumber, serviceType, direction string) (string, bool) {
	if rawStopID != "" && strings.HasPrefix(rawStopID, knownOperatorPrefix) {
		return rawStopID, true
	}

	if rawStopID != "" && r.LinePrefix != "" {
		return r.LinePrefix + "." + rawStopID, true
	}

	if r.SeqToStation != nil {
		if seqMap, ok := r.SeqToStation(trainNumber, serviceType, direction); ok {
			if stationID, ok := seqMap[stopSequence]; ok {
				return stationID, true
			}
		}
	}

	if len(r.OrderedStations) > 0 && stopSequence > 0 {
		ascending := r.Ascending == nil || r.Ascending(direction)
		var idx int
		if ascending {
			idx = stopSequence - 1
		} else {
			idx = len(r.OrderedStations) - stopSequence
		}
		if idx >= 0 && idx < len(r.OrderedStations) {
			return r.OrderedStations[idx], true
		}
	}

	return "", false
}
