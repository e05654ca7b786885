package staticdata

import (
	"fmt"
	"log"
	"strconv"
	"strings"
)

// parseTimeToSeconds converts "HH:MM" or "HH:MM:SS" into 0..86399
// seconds past midnight. "24:00" and any other out-of-range hour is
// rejected rather than wrapped, matching the source timetable's own
// convention of never emitting 24:00 for a valid stop.
func parseTimeToSeconds(s string) (int, error) {
	if s == "" {
		return 0, fmt.Errorf("empty time string")
	}

	parts := strings.Split(s, ":")
	var hStr, mStr, sStr string
	switch len(parts) {
	case 2:
		hStr, mStr, sStr = parts[0], parts[1], "0"
	case 3:
		hStr, mStr, sStr = parts[0], parts[1], parts[2]
	default:
		return 0, fmt.Errorf("invalid time format %q (expected HH:MM or HH:MM:SS)", s)
	}

	hour, err := strconv.Atoi(hStr)
	if err != nil {
		return 0, fmt.Errorf("invalid hour in %q: %w", s, err)
	}
	minute, err := strconv.Atoi(mStr)
	if err != nil {
		return 0, fmt.Errorf("invalid minute in %q: %w", s, err)
	}
	second, err := strconv.Atoi(sStr)
	if err != nil {
		return 0, fmt.Errorf("invalid second in %q: %w", s, err)
	}

	if hour < 0 || hour > 23 {
		return 0, fmt.Errorf("invalid hour %d in %q (must be 0-23)", hour, s)
	}
	if minute < 0 || minute > 59 {
		return 0, fmt.Errorf("invalid minute %d in %q (must be 0-59)", minute, s)
	}
	if second < 0 || second > 59 {
		return 0, fmt.Errorf("invalid second %d in %q (must be 0-59)", second, s)
	}

	return hour*3600 + minute*60 + second, nil
}

// normalizeStopTimes converts a timetable's raw "tt" array into
// StopTimes with day-rollover correction: the representative time of a
// stop is its departure when present, else its arrival. Whenever the
// representative time goes backwards relative to the previous stop
// that had one, every subsequent time gets +24h added. Stops with
// neither arrival nor departure do not participate in that comparison.
// A stop whose given times all fail to parse is dropped.
func normalizeStopTimes(raw []rawStop, trainID string) []StopTime {
	result := make([]StopTime, 0, len(raw))

	dayOffset := 0
	var prevRepSec *int

	for i, row := range raw {
		if row.Station == "" {
			log.Printf("staticdata: train %s stop %d has no station id, skipping", trainID, i)
			continue
		}

		if row.Departure == "" && row.Arrival == "" {
			result = append(result, StopTime{StationID: row.Station})
			continue
		}

		var depSec, arrSec *int
		if row.Departure != "" {
			if v, err := parseTimeToSeconds(row.Departure); err == nil {
				depSec = &v
			} else {
				log.Printf("staticdata: train %s stop %d (%s) bad departure time: %v", trainID, i, row.Station, err)
			}
		}
		if row.Arrival != "" {
			if v, err := parseTimeToSeconds(row.Arrival); err == nil {
				arrSec = &v
			} else {
				log.Printf("staticdata: train %s stop %d (%s) bad arrival time: %v", trainID, i, row.Station, err)
			}
		}
		if depSec == nil && arrSec == nil {
			log.Printf("staticdata: train %s stop %d (%s) has no usable time, skipping", trainID, i, row.Station)
			continue
		}

		var repSec *int
		if depSec != nil {
			repSec = depSec
		} else {
			repSec = arrSec
		}

		if repSec != nil && prevRepSec != nil && *repSec < *prevRepSec {
			dayOffset += 24 * 3600
		}

		if depSec != nil {
			v := *depSec + dayOffset
			depSec = &v
		}
		if arrSec != nil {
			v := *arrSec + dayOffset
			arrSec = &v
		}
		if repSec != nil {
			prevRepSec = repSec
		}

		result = append(result, StopTime{StationID: row.Station, ArrivalSec: arrSec, DepartureSec: depSec})
	}

	return result
}
