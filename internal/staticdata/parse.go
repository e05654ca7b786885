package staticdata

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
)

// parseTimetableFile loads one line's timetable JSON file (an array of
// raw train records) and converts it into Trains, skipping malformed
// entries with a warning rather than failing the whole file.
func parseTimetableFile(path string) ([]Train, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read timetable file %s: %w", path, err)
	}

	var rows []rawTrain
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("parse timetable file %s: %w", path, err)
	}

	trains := make([]Train, 0, len(rows))
	skipped := 0

	for idx, row := range rows {
		if row.ID == "" {
			log.Printf("staticdata: %s train at index %d has no id, skipping", path, idx)
			skipped++
			continue
		}

		baseID := row.BaseID
		if baseID == "" {
			baseID = row.ID
		}

		serviceType := "Unknown"
		if dot := strings.LastIndex(row.ID, "."); dot >= 0 {
			switch suffix := row.ID[dot+1:]; suffix {
			case "Weekday", "SaturdayHoliday":
				serviceType = suffix
			}
		}

		var destinations []string
		if len(row.Stops) > 0 {
			last := row.Stops[len(row.Stops)-1]
			if last.Station != "" {
				destinations = []string{last.Station}
			}
		}
		if len(row.Destinations) > 0 {
			destinations = row.Destinations
		}

		stops := normalizeStopTimes(row.Stops, row.ID)
		if len(stops) == 0 {
			log.Printf("staticdata: train %s has no valid stops, skipping", row.ID)
			skipped++
			continue
		}

		train := Train{
			BaseID:              baseID,
			ServiceType:         serviceType,
			LineID:              row.LineID,
			Number:              row.Number,
			TrainType:           row.TrainType,
			Direction:           row.Direction,
			OriginStations:      row.Origins,
			DestinationStations: destinations,
			Stops:               stops,
		}

		if warnings := validateTrain(train); len(warnings) > 0 {
			log.Printf("staticdata: train %s validation warnings: %s", row.ID, strings.Join(warnings, "; "))
		}

		trains = append(trains, train)
	}

	if skipped > 0 {
		log.Printf("staticdata: skipped %d trains in %s due to errors", skipped, path)
	}

	return trains, nil
}

// validateTrain runs the same light sanity checks the source
// timetables are validated with: at least two stops, monotonically
// increasing scheduled times, and the first stop belonging to the
// declared origin set when one is given.
func validateTrain(t Train) []string {
	var warnings []string

	if len(t.Stops) < 2 {
		warnings = append(warnings, fmt.Sprintf("too few stops: %d", len(t.Stops)))
	}

	var prev *int
	for i, stop := range t.Stops {
		sec := stop.DepartureSec
		if sec == nil {
			sec = stop.ArrivalSec
		}
		if sec == nil {
			continue
		}
		if prev != nil && *sec < *prev {
			warnings = append(warnings, fmt.Sprintf("non-monotonic time at stop index %d (%s)", i, stop.StationID))
			break
		}
		prev = sec
	}

	if len(t.OriginStations) > 0 && len(t.Stops) > 0 {
		first := t.Stops[0].StationID
		found := false
		for _, o := range t.OriginStations {
			if o == first {
				found = true
				break
			}
		}
		if !found {
			warnings = append(warnings, fmt.Sprintf("first stop %s not in origin stations %v", first, t.OriginStations))
		}
	}

	return warnings
}
