// Package realtime fetches the GTFS-RT TripUpdate feed for a line,
// filters it to that line's trips, resolves each stop-time update's
// foreign stop identifier to an internal station identifier, and
// emits one TrainSchedule per surviving trip (spec.md §4.5). Real-time
// schedules are never cached: a fresh fetch and normalization pass
// runs on every position request.
package realtime

// RealtimeStationSchedule is one resolved stop within a trip's
// real-time schedule.
type RealtimeStationSchedule struct {
	StopSequence  int
	StationID     string // empty when unresolved
	RawStopID     string
	ArrivalTime   *int64 // unix seconds
	DepartureTime *int64 // unix seconds
	DelaySeconds  int
	Resolved      bool
}

// TrainSchedule is the normalized real-time timetable for one active
// trip, keyed by trip id.
type TrainSchedule struct {
	TripID           string
	TrainNumber      string
	ServiceDate      string
	Direction        string
	FeedTimestamp    int64 // unix seconds, from the feed header
	SchedulesBySeq   map[int]RealtimeStationSchedule
	OrderedSequences []int // ascending, len >= 2
}

// scheduleRelationship mirrors the subset of the GTFS-RT
// TripDescriptor.ScheduleRelationship enum this normalizer cares
// about. Kept as a local int32 constant table (matching the feed's
// wire values) rather than importing the generated enum type, since
// only CANCELED needs to be recognized here.
const tripScheduleRelationshipCanceled = 3

// stopScheduleRelationship mirrors the subset of
// StopTimeUpdate.ScheduleRelationship this normalizer cares about.
const stopScheduleRelationshipSkipped = 1
