package staticdata

import (
	"fmt"
	"path/filepath"

	"github.com/yamanote-live/trainpos/internal/apierr"
)

// lookupKey indexes a scheduled train by its public train number,
// service type (Weekday/SaturdayHoliday/Unknown), and direction.
type lookupKey struct {
	number      string
	serviceType string
	direction   string
}

// Corpus is the loaded static timetable data for every configured
// line, with the indices the real-time path needs for O(1) lookup.
type Corpus struct {
	trainsByLine map[string][]Train

	lookup    map[lookupKey]Train
	seqToStop map[lookupKey]map[int]string
}

// LoadDir reads one timetable JSON file per line from dir, named
// "<lineID>.json", and builds the lookup indices. A configured line
// whose file is missing, unreadable, or not valid JSON fails the whole
// load with a DataCorruption error.
func LoadDir(dir string, lineIDs []string) (*Corpus, error) {
	c := &Corpus{
		trainsByLine: make(map[string][]Train),
		lookup:       make(map[lookupKey]Train),
		seqToStop:    make(map[lookupKey]map[int]string),
	}

	for _, lineID := range lineIDs {
		path := filepath.Join(dir, lineID+".json")
		trains, err := parseTimetableFile(path)
		if err != nil {
			return nil, apierr.NewDataCorruption("loading timetable for line %s: %v", lineID, err)
		}
		c.trainsByLine[lineID] = trains
	}

	c.buildIndex()
	return c, nil
}

// buildIndex builds the (train number, service type, direction) ->
// Train lookup and the parallel stop-sequence -> station id map. The
// first train seen for a duplicate key wins, matching the source
// corpus's dedup-by-first-insert behavior.
func (c *Corpus) buildIndex() {
	for _, trains := range c.trainsByLine {
		for _, train := range trains {
			key := lookupKey{number: train.Number, serviceType: train.ServiceType, direction: train.Direction}
			if _, exists := c.lookup[key]; exists {
				continue
			}
			c.lookup[key] = train

			seqMap := make(map[int]string, len(train.Stops))
			for i, stop := range train.Stops {
				seqMap[i+1] = stop.StationID
			}
			c.seqToStop[key] = seqMap
		}
	}
}

// GetStaticTrain resolves a train by number: try the exact
// (number, serviceType, direction) triple, then fall back to scanning
// for the same number under any service type and/or direction.
func (c *Corpus) GetStaticTrain(trainNumber, serviceType, direction string) (Train, bool) {
	if trainNumber == "" {
		return Train{}, false
	}

	if serviceType != "" && direction != "" {
		if t, ok := c.lookup[lookupKey{number: trainNumber, serviceType: serviceType, direction: direction}]; ok {
			return t, true
		}
	}

	for key, t := range c.lookup {
		if key.number == trainNumber {
			return t, true
		}
	}

	return Train{}, false
}

// SeqToStation returns the stop_sequence -> station_id map for the
// given train, with the same exact-then-any-fallback as GetStaticTrain.
func (c *Corpus) SeqToStation(trainNumber, serviceType, direction string) (map[int]string, bool) {
	if trainNumber == "" {
		return nil, false
	}

	if serviceType != "" && direction != "" {
		if m, ok := c.seqToStop[lookupKey{number: trainNumber, serviceType: serviceType, direction: direction}]; ok {
			return m, true
		}
	}

	for key, m := range c.seqToStop {
		if key.number == trainNumber {
			return m, true
		}
	}

	return nil, false
}

// TrainsForLine returns every scheduled train for the given line id,
// in file order.
func (c *Corpus) TrainsForLine(lineID string) []Train {
	return c.trainsByLine[lineID]
}

// Stats reports a short human-readable summary, used for the startup
// log line.
func (c *Corpus) Stats() string {
	total := 0
	for _, trains := range c.trainsByLine {
		total += len(trains)
	}
	return fmt.Sprintf("%d lines, %d trains, %d lookup entries", len(c.trainsByLine), total, len(c.lookup))
}
