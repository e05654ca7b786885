package geodata

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/yamanote-live/trainpos/internal/apierr"
)

func writeTemp(t *testing.T, name string, v any) string {
	t.Helper()
	raw, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal fixture: %v", err)
	}
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestLoadRailwayIDs(t *testing.T) {
	path := writeTemp(t, "railways.json", []railwayEntry{
		{ID: "JR-East.Yamanote"},
		{ID: "JR-East.ChuoRapid"},
	})
	ids, err := LoadRailwayIDs(path)
	if err != nil {
		t.Fatalf("LoadRailwayIDs: %v", err)
	}
	if !ids["JR-East.Yamanote"] || !ids["JR-East.ChuoRapid"] {
		t.Errorf("ids = %v, missing expected entries", ids)
	}
	if ids["nope"] {
		t.Errorf("unexpected id present")
	}
}

func TestLoadRailwayIDsMissingFileIsDataCorruption(t *testing.T) {
	_, err := LoadRailwayIDs(filepath.Join(t.TempDir(), "missing.json"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if _, ok := err.(*apierr.DataCorruption); !ok {
		t.Errorf("error type = %T, want *apierr.DataCorruption", err)
	}
}

func TestLoadSegments(t *testing.T) {
	path := writeTemp(t, "coordinates.json", coordinatesFile{
		Railways: []coordinateRailway{
			{
				ID: "JR-East.Yamanote",
				Segments: []coordinateSegment{
					{Type: "main", Coords: [][2]float64{{139.0, 35.0}, {139.1, 35.1}}},
					{Type: "sub", RefLine: "JR-East.ChuoRapid", RefStart: [2]float64{139.1, 35.1}, RefEnd: [2]float64{139.2, 35.2}},
				},
			},
			{ID: "empty-line"},
		},
	})

	segs, err := LoadSegments(path)
	if err != nil {
		t.Fatalf("LoadSegments: %v", err)
	}
	yamanote, ok := segs["JR-East.Yamanote"]
	if !ok || len(yamanote) != 2 {
		t.Fatalf("segments[JR-East.Yamanote] = %+v, want 2 entries", yamanote)
	}
	if yamanote[0].Type != "main" || len(yamanote[0].Coords) != 2 {
		t.Errorf("unexpected main segment: %+v", yamanote[0])
	}
	if yamanote[1].Type != "sub" || yamanote[1].RefLine != "JR-East.ChuoRapid" {
		t.Errorf("unexpected sub segment: %+v", yamanote[1])
	}
	if _, ok := segs["empty-line"]; ok {
		t.Errorf("empty-line should have been skipped, not included")
	}
}

func TestLoadStationSeedsDropsOutOfBoundsAndMissingID(t *testing.T) {
	path := writeTemp(t, "stations.json", []map[string]any{
		{"id": "shinjuku", "railway": "JR-East.Yamanote", "coord": []float64{139.70, 35.69}, "title": map[string]string{"ja": "新宿", "en": "Shinjuku"}},
		{"id": "", "railway": "JR-East.Yamanote", "coord": []float64{139.70, 35.69}},
		{"id": "bad-coord", "railway": "JR-East.Yamanote", "coord": []float64{0, 0}},
		{"id": "multi-line", "railway": []string{"JR-East.Yamanote", "JR-East.ChuoRapid"}, "coord": []float64{139.77, 35.68}},
	})

	stations, err := LoadStationSeeds(path)
	if err != nil {
		t.Fatalf("LoadStationSeeds: %v", err)
	}
	if len(stations) != 2 {
		t.Fatalf("len(stations) = %d, want 2 (dropping missing-id and out-of-bounds)", len(stations))
	}

	byID := make(map[string]string)
	for _, s := range stations {
		byID[s.ID] = s.LineID
	}
	if byID["shinjuku"] != "JR-East.Yamanote" {
		t.Errorf("shinjuku line = %q", byID["shinjuku"])
	}
	if byID["multi-line"] != "JR-East.Yamanote" {
		t.Errorf("multi-line station should keep only the first railway, got %q", byID["multi-line"])
	}
}
