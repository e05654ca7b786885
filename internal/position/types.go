// Package position determines, for one trip's real-time schedule and a
// reference instant, whether the train is dwelling at a station or
// running between two stations, and its fractional progress through
// that segment under a trapezoidal speed profile (spec.md §4.6).
package position

// Status is the coarse state a SegmentProgress reports.
type Status string

const (
	StatusRunning Status = "running"
	StatusStopped Status = "stopped"
	StatusUnknown Status = "unknown"
	StatusInvalid Status = "invalid"
)

// SegmentProgress is the computed position-in-time for one trip.
type SegmentProgress struct {
	TripID        string
	TrainNumber   string
	Direction     string
	PrevStationID string
	NextStationID string
	PrevSequence  int
	NextSequence  int
	NowTimestamp  int64
	T0Departure   int64
	T1Arrival     int64
	Progress      *float64
	Status        Status
	DelaySeconds  int
	FeedTimestamp int64
}

// DwellLookup resolves a station's configured dwell seconds (rank S/A/B
// per spec.md §3), defaulting to the B-rank value for an unranked
// station.
type DwellLookup func(stationID string) int
