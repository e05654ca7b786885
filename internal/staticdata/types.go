// Package staticdata loads the slow-changing timetable corpus (per-train
// stop sequences with scheduled times) and exposes lookup indices the
// real-time layer needs per request: train number -> scheduled stops,
// and stop sequence -> station id.
package staticdata

// StopTime is one scheduled stop, with times normalized to seconds past
// the start of the train's service day. A nil ArrivalSec/DepartureSec
// means the source timetable carried no time for that stop.
type StopTime struct {
	StationID     string
	ArrivalSec    *int
	DepartureSec  *int
}

// Train is one scheduled run, keyed for lookup by (Number, ServiceType,
// Direction).
type Train struct {
	BaseID               string // e.g. "JR-East.Yamanote.400G"
	ServiceType          string // e.g. "Weekday", "SaturdayHoliday", "Unknown"
	LineID               string // e.g. "JR-East.Yamanote"
	Number               string // e.g. "400G"
	TrainType            string // e.g. "JR-East.Local"
	Direction            string // e.g. "InnerLoop", "OuterLoop", "Outbound"
	OriginStations       []string
	DestinationStations  []string
	Stops                []StopTime
}

// rawStop mirrors one entry of a timetable file's "tt" array:
// {"s": station_id, "d": "HH:MM[:SS]", "a": "HH:MM[:SS]"}.
type rawStop struct {
	Station   string `json:"s"`
	Departure string `json:"d"`
	Arrival   string `json:"a"`
}

// rawTrain mirrors one entry of a timetable file's top-level array.
type rawTrain struct {
	ID          string    `json:"id"`
	BaseID      string    `json:"t"`
	LineID      string    `json:"r"`
	Number      string    `json:"n"`
	TrainType   string    `json:"y"`
	Direction   string    `json:"d"`
	Origins     []string  `json:"os"`
	Destinations []string `json:"ds"`
	Stops       []rawStop `json:"tt"`
}
