package position

// Dwell ranks and their default seconds (spec.md §3, ported from
// station_ranks.py's STATION_RANKS/get_station_dwell_time): S is a
// major terminal, A a principal station, B an ordinary one. B is also
// the fallback for a station with no recorded rank.
const (
	DwellRankS = "S"
	DwellRankA = "A"
	DwellRankB = "B"

	DwellSecondsS       = 50
	DwellSecondsA       = 35
	DwellSecondsB       = 20
	DwellSecondsDefault = DwellSecondsB
)

// DwellSecondsForRank maps a rank letter to its default dwell seconds,
// falling back to the B-rank value for an unrecognized rank.
func DwellSecondsForRank(rank string) int {
	switch rank {
	case DwellRankS:
		return DwellSecondsS
	case DwellRankA:
		return DwellSecondsA
	case DwellRankB:
		return DwellSecondsB
	default:
		return DwellSecondsDefault
	}
}
