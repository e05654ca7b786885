package staticdata

import "testing"

func TestParseTimeToSeconds(t *testing.T) {
	cases := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"04:05", 4*3600 + 5*60, false},
		{"04:05:30", 4*3600 + 5*60 + 30, false},
		{"24:00", 0, true},
		{"25:10", 0, true},
		{"4:5:5", 4*3600 + 5*60 + 5, false},
		{"", 0, true},
		{"garbage", 0, true},
	}

	for _, tc := range cases {
		got, err := parseTimeToSeconds(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("parseTimeToSeconds(%q): expected error, got %d", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseTimeToSeconds(%q): unexpected error %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("parseTimeToSeconds(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func intp(v int) *int { return &v }

func TestNormalizeStopTimesDayRollover(t *testing.T) {
	raw := []rawStop{
		{Station: "A", Departure: "23:50"},
		{Station: "B", Departure: "23:58"},
		{Station: "C", Departure: "00:05"}, // rolls into next day
		{Station: "D", Departure: "00:12"},
	}

	stops := normalizeStopTimes(raw, "test-train")
	if len(stops) != 4 {
		t.Fatalf("got %d stops, want 4", len(stops))
	}

	want := []int{23*3600 + 50*60, 23*3600 + 58*60, 24*3600 + 5*60, 24*3600 + 12*60}
	for i, stop := range stops {
		if stop.DepartureSec == nil {
			t.Fatalf("stop %d: DepartureSec is nil", i)
		}
		if *stop.DepartureSec != want[i] {
			t.Errorf("stop %d departure = %d, want %d", i, *stop.DepartureSec, want[i])
		}
	}
}

func TestNormalizeStopTimesSkipsStationlessRows(t *testing.T) {
	raw := []rawStop{
		{Station: "", Departure: "10:00"},
		{Station: "A", Departure: "10:05"},
	}
	stops := normalizeStopTimes(raw, "test-train")
	if len(stops) != 1 {
		t.Fatalf("got %d stops, want 1", len(stops))
	}
	if stops[0].StationID != "A" {
		t.Errorf("StationID = %q, want A", stops[0].StationID)
	}
}

func TestNormalizeStopTimesTimelessStopDoesNotAnchorRollover(t *testing.T) {
	raw := []rawStop{
		{Station: "A", Departure: "23:50"},
		{Station: "B"}, // no time at all
		{Station: "C", Departure: "23:55"},
	}
	stops := normalizeStopTimes(raw, "test-train")
	if len(stops) != 3 {
		t.Fatalf("got %d stops, want 3", len(stops))
	}
	if stops[1].DepartureSec != nil || stops[1].ArrivalSec != nil {
		t.Errorf("expected stop B to carry no times")
	}
	if *stops[2].DepartureSec != 23*3600+55*60 {
		t.Errorf("stop C departure = %d, want no rollover applied", *stops[2].DepartureSec)
	}
}

func TestCorpusGetStaticTrainFallback(t *testing.T) {
	c := &Corpus{
		trainsByLine: map[string][]Train{},
		lookup:       map[lookupKey]Train{},
		seqToStop:    map[lookupKey]map[int]string{},
	}
	c.lookup[lookupKey{number: "301G", serviceType: "Weekday", direction: "OuterLoop"}] = Train{Number: "301G", ServiceType: "Weekday", Direction: "OuterLoop"}

	if _, ok := c.GetStaticTrain("301G", "SaturdayHoliday", "InnerLoop"); !ok {
		t.Error("expected fallback to any service type/direction to succeed")
	}
	if _, ok := c.GetStaticTrain("999X", "Weekday", "OuterLoop"); ok {
		t.Error("expected unknown train number to fail resolution")
	}
	if _, ok := c.GetStaticTrain("", "Weekday", "OuterLoop"); ok {
		t.Error("expected empty train number to fail resolution")
	}
}
