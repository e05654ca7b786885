package geodata

import (
	"encoding/json"
	"log"
	"os"

	"github.com/yamanote-live/trainpos/internal/apierr"
	"github.com/yamanote-live/trainpos/internal/geo"
	"github.com/yamanote-live/trainpos/internal/store"
	"github.com/yamanote-live/trainpos/internal/sublines"
)

// LoadRailwayIDs reads railways.json and returns the set of known
// internal polyline identifiers, so the caller can confirm every
// configured line is actually present in the deployed data bundle
// before serving traffic. An unreadable or malformed file is fatal;
// a configured line missing from the set is the caller's concern, not
// this loader's.
func LoadRailwayIDs(path string) (map[string]bool, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, apierr.NewDataCorruption("reading railways file %s: %v", path, err)
	}

	var rows []railwayEntry
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, apierr.NewDataCorruption("parsing railways file %s: %v", path, err)
	}

	ids := make(map[string]bool, len(rows))
	for _, r := range rows {
		if r.ID != "" {
			ids[r.ID] = true
		}
	}
	return ids, nil
}

// LoadSegments reads coordinates.json and returns each line's ordered
// sub-segment list, ready for sublines.Merge. A railway entry with no
// segments is skipped with a warning rather than failing the load.
func LoadSegments(path string) (map[string][]sublines.Segment, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, apierr.NewDataCorruption("reading coordinates file %s: %v", path, err)
	}

	var doc coordinatesFile
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, apierr.NewDataCorruption("parsing coordinates file %s: %v", path, err)
	}

	out := make(map[string][]sublines.Segment, len(doc.Railways))
	for _, r := range doc.Railways {
		if r.ID == "" || len(r.Segments) == 0 {
			log.Printf("geodata: railway entry %q in %s has no segments, skipping", r.ID, path)
			continue
		}
		segs := make([]sublines.Segment, len(r.Segments))
		for i, s := range r.Segments {
			segs[i] = sublines.Segment{
				Type:     s.Type,
				Coords:   s.Coords,
				RefLine:  s.RefLine,
				RefStart: s.RefStart,
				RefEnd:   s.RefEnd,
			}
		}
		out[r.ID] = segs
	}
	return out, nil
}

// LoadStationSeeds reads stations.json and returns the station records
// suitable for seeding the persistent store. Stations with a missing
// id, no coordinate, or a coordinate outside geo.IsValidCoordinate's
// bounding box are dropped with a warning, per the station record's
// load-time validation contract.
func LoadStationSeeds(path string) ([]store.Station, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, apierr.NewDataCorruption("reading stations file %s: %v", path, err)
	}

	var rows []stationEntry
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, apierr.NewDataCorruption("parsing stations file %s: %v", path, err)
	}

	stations := make([]store.Station, 0, len(rows))
	dropped := 0
	for _, row := range rows {
		if row.ID == "" {
			dropped++
			continue
		}

		lineID := firstRailway(row.Railway)
		lon, lat := row.Coord[0], row.Coord[1]
		if !geo.IsValidCoordinate(lon, lat) {
			log.Printf("geodata: station %s coordinate (%g, %g) outside bounding box, dropping", row.ID, lon, lat)
			dropped++
			continue
		}

		stations = append(stations, store.Station{
			ID:            row.ID,
			LineID:        lineID,
			NameLocalized: row.Title.JA,
			NameLatin:     row.Title.EN,
			Longitude:     lon,
			Latitude:      lat,
		})
	}

	if dropped > 0 {
		log.Printf("geodata: dropped %d of %d stations in %s", dropped, len(rows), path)
	}
	return stations, nil
}

// firstRailway unwraps stations.json's "railway" field, which is a
// bare string for most stations and a one-element array for a handful
// of shared-platform stations; only the first line is kept.
func firstRailway(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err == nil && len(list) > 0 {
		return list[0]
	}

	return ""
}
