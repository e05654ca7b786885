package realtime

import (
	"testing"

	gtfs "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"

	"github.com/yamanote-live/trainpos/internal/config"
)

func strPtr(s string) *string  { return &s }
func u32Ptr(v uint32) *uint32  { return &v }
func i64Ptr(v int64) *int64    { return &v }
func i32Ptr(v int32) *int32    { return &v }
func u64Ptr(v uint64) *uint64  { return &v }

func tripRel(v gtfs.TripDescriptor_ScheduleRelationship) *gtfs.TripDescriptor_ScheduleRelationship {
	return &v
}

func stopRel(v gtfs.TripUpdate_StopTimeUpdate_ScheduleRelationship) *gtfs.TripUpdate_StopTimeUpdate_ScheduleRelationship {
	return &v
}

func yamanoteConfig() config.LineConfig {
	lc, _ := config.GetLineConfig("yamanote")
	return lc
}

func TestNormalizeDropsCanceledTrip(t *testing.T) {
	feed := &gtfs.FeedMessage{
		Header: &gtfs.FeedHeader{Timestamp: u64Ptr(1000)},
		Entity: []*gtfs.FeedEntity{
			{
				Id: strPtr("e1"),
				TripUpdate: &gtfs.TripUpdate{
					Trip: &gtfs.TripDescriptor{
						TripId:               strPtr("4201301G"),
						ScheduleRelationship: tripRel(gtfs.TripDescriptor_CANCELED),
					},
					StopTimeUpdate: []*gtfs.TripUpdate_StopTimeUpdate{
						{StopSequence: u32Ptr(1), StopId: strPtr("JR-East.Yamanote.Tokyo"), Arrival: &gtfs.TripUpdate_StopTimeEvent{Time: i64Ptr(1000)}},
						{StopSequence: u32Ptr(2), StopId: strPtr("JR-East.Yamanote.Kanda"), Arrival: &gtfs.TripUpdate_StopTimeEvent{Time: i64Ptr(1100)}},
					},
				},
			},
		},
	}

	got := Normalize(feed, NormalizeParams{TargetRouteID: "JR-East.Yamanote", LineConfig: yamanoteConfig()})
	if len(got) != 0 {
		t.Fatalf("expected canceled trip to be dropped, got %d schedules", len(got))
	}
}

func TestNormalizeDropsNonMatchingRoute(t *testing.T) {
	feed := &gtfs.FeedMessage{
		Header: &gtfs.FeedHeader{Timestamp: u64Ptr(1000)},
		Entity: []*gtfs.FeedEntity{
			{
				Id: strPtr("e1"),
				TripUpdate: &gtfs.TripUpdate{
					Trip: &gtfs.TripDescriptor{TripId: strPtr("123M701H")},
					StopTimeUpdate: []*gtfs.TripUpdate_StopTimeUpdate{
						{StopSequence: u32Ptr(1), Arrival: &gtfs.TripUpdate_StopTimeEvent{Time: i64Ptr(1000)}},
						{StopSequence: u32Ptr(2), Arrival: &gtfs.TripUpdate_StopTimeEvent{Time: i64Ptr(1100)}},
					},
				},
			},
		},
	}

	got := Normalize(feed, NormalizeParams{TargetRouteID: "JR-East.Yamanote", LineConfig: yamanoteConfig()})
	if len(got) != 0 {
		t.Fatalf("expected non-matching-suffix trip to be dropped, got %d schedules", len(got))
	}
}

func TestNormalizeSkipsSkippedStopAndKeepsTrip(t *testing.T) {
	feed := &gtfs.FeedMessage{
		Header: &gtfs.FeedHeader{Timestamp: u64Ptr(5000)},
		Entity: []*gtfs.FeedEntity{
			{
				Id: strPtr("e1"),
				TripUpdate: &gtfs.TripUpdate{
					Trip: &gtfs.TripDescriptor{TripId: strPtr("4201301G")},
					StopTimeUpdate: []*gtfs.TripUpdate_StopTimeUpdate{
						{
							StopSequence: u32Ptr(1),
							StopId:       strPtr("JR-East.Yamanote.Tokyo"),
							Arrival:      &gtfs.TripUpdate_StopTimeEvent{Time: i64Ptr(1000), Delay: i32Ptr(30)},
						},
						{
							StopSequence:          u32Ptr(2),
							StopId:                strPtr("JR-East.Yamanote.Kanda"),
							ScheduleRelationship:  stopRel(gtfs.TripUpdate_StopTimeUpdate_SKIPPED),
							Arrival:               &gtfs.TripUpdate_StopTimeEvent{Time: i64Ptr(1100)},
						},
						{
							StopSequence: u32Ptr(3),
							StopId:       strPtr("JR-East.Yamanote.Akihabara"),
							Arrival:      &gtfs.TripUpdate_StopTimeEvent{Time: i64Ptr(1200)},
						},
						{
							// neither arrival nor departure: always dropped
							StopSequence: u32Ptr(4),
							StopId:       strPtr("JR-East.Yamanote.Okachimachi"),
						},
					},
				},
			},
		},
	}

	got := Normalize(feed, NormalizeParams{TargetRouteID: "JR-East.Yamanote", LineConfig: yamanoteConfig()})
	if len(got) != 1 {
		t.Fatalf("expected 1 surviving trip, got %d", len(got))
	}
	sched := got[0]
	if len(sched.OrderedSequences) != 2 {
		t.Fatalf("expected 2 kept stops (seq 1,3), got %v", sched.OrderedSequences)
	}
	if sched.OrderedSequences[0] != 1 || sched.OrderedSequences[1] != 3 {
		t.Errorf("ordered sequences = %v, want [1 3]", sched.OrderedSequences)
	}
	if sched.Direction != "OuterLoop" {
		t.Errorf("direction = %q, want OuterLoop", sched.Direction)
	}
	if sched.SchedulesBySeq[1].DelaySeconds != 30 {
		t.Errorf("delay = %d, want 30", sched.SchedulesBySeq[1].DelaySeconds)
	}
}

func TestNormalizeDiscardsTripWithFewerThanTwoStops(t *testing.T) {
	feed := &gtfs.FeedMessage{
		Header: &gtfs.FeedHeader{Timestamp: u64Ptr(1000)},
		Entity: []*gtfs.FeedEntity{
			{
				Id: strPtr("e1"),
				TripUpdate: &gtfs.TripUpdate{
					Trip: &gtfs.TripDescriptor{TripId: strPtr("4201301G")},
					StopTimeUpdate: []*gtfs.TripUpdate_StopTimeUpdate{
						{StopSequence: u32Ptr(1), StopId: strPtr("JR-East.Yamanote.Tokyo"), Arrival: &gtfs.TripUpdate_StopTimeEvent{Time: i64Ptr(1000)}},
					},
				},
			},
		},
	}

	got := Normalize(feed, NormalizeParams{TargetRouteID: "JR-East.Yamanote", LineConfig: yamanoteConfig()})
	if len(got) != 0 {
		t.Fatalf("expected single-stop trip to be discarded, got %d", len(got))
	}
}

func TestNormalizeDelayPrefersArrivalOverDeparture(t *testing.T) {
	feed := &gtfs.FeedMessage{
		Header: &gtfs.FeedHeader{Timestamp: u64Ptr(1000)},
		Entity: []*gtfs.FeedEntity{
			{
				Id: strPtr("e1"),
				TripUpdate: &gtfs.TripUpdate{
					Trip: &gtfs.TripDescriptor{TripId: strPtr("4201301G")},
					StopTimeUpdate: []*gtfs.TripUpdate_StopTimeUpdate{
						{
							StopSequence: u32Ptr(1),
							StopId:       strPtr("JR-East.Yamanote.Tokyo"),
							Arrival:      &gtfs.TripUpdate_StopTimeEvent{Time: i64Ptr(1000), Delay: i32Ptr(0)},
							Departure:    &gtfs.TripUpdate_StopTimeEvent{Time: i64Ptr(1010), Delay: i32Ptr(45)},
						},
						{StopSequence: u32Ptr(2), StopId: strPtr("JR-East.Yamanote.Kanda"), Arrival: &gtfs.TripUpdate_StopTimeEvent{Time: i64Ptr(1100)}},
					},
				},
			},
		},
	}

	got := Normalize(feed, NormalizeParams{TargetRouteID: "JR-East.Yamanote", LineConfig: yamanoteConfig()})
	if len(got) != 1 {
		t.Fatalf("expected 1 schedule, got %d", len(got))
	}
	if d := got[0].SchedulesBySeq[1].DelaySeconds; d != 0 {
		t.Errorf("delay = %d, want 0 (arrival.delay present takes priority even when zero)", d)
	}
}

func TestStopResolverStrategyPriority(t *testing.T) {
	r := StopResolver{
		LinePrefix: "JR-East.Yamanote",
		SeqToStation: func(trainNumber, serviceType, direction string) (map[int]string, bool) {
			return map[int]string{5: "JR-East.Yamanote.Ueno"}, true
		},
		OrderedStations: []string{"A", "B", "C", "D"},
		Ascending:       func(direction string) bool { return direction == "OuterLoop" },
	}

	if got, ok := r.Resolve("JR-East.Yamanote.Tokyo", 1, "301G", "Weekday", "OuterLoop"); !ok || got != "JR-East.Yamanote.Tokyo" {
		t.Errorf("strategy 1 (verbatim) = %q, %v", got, ok)
	}
	if got, ok := r.Resolve("Ueno", 2, "301G", "Weekday", "OuterLoop"); !ok || got != "JR-East.Yamanote.Ueno" {
		t.Errorf("strategy 2 (prefix prepend) = %q, %v", got, ok)
	}

	r2 := StopResolver{
		SeqToStation: func(trainNumber, serviceType, direction string) (map[int]string, bool) {
			return map[int]string{5: "JR-East.Yamanote.Ueno"}, true
		},
		OrderedStations: []string{"A", "B", "C", "D"},
	}
	if got, ok := r2.Resolve("", 5, "301G", "Weekday", "OuterLoop"); !ok || got != "JR-East.Yamanote.Ueno" {
		t.Errorf("strategy 3 (sequence map) = %q, %v", got, ok)
	}

	r3 := StopResolver{
		OrderedStations: []string{"A", "B", "C", "D"},
		Ascending:       func(direction string) bool { return direction == "OuterLoop" },
	}
	if got, ok := r3.Resolve("", 2, "301G", "Weekday", "OuterLoop"); !ok || got != "B" {
		t.Errorf("strategy 4 ascending = %q, %v, want B", got, ok)
	}
	if got, ok := r3.Resolve("", 2, "301G", "Weekday", "InnerLoop"); !ok || got != "C" {
		t.Errorf("strategy 4 descending = %q, %v, want C", got, ok)
	}
}

func TestStopResolverUnresolved(t *testing.T) {
	r := StopResolver{}
	if _, ok := r.Resolve("", 1, "301G", "Weekday", "OuterLoop"); ok {
		t.Error("expected unresolved with no strategy able to fire")
	}
}
