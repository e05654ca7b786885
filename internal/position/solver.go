package position

import "github.com/yamanote-live/trainpos/internal/realtime"

// Solve computes the SegmentProgress for one trip's normalized
// real-time schedule at instant now (unix seconds). now is clamped to
// be no earlier than the feed's own header timestamp, so a caller
// passing a stale wall clock can never walk the computed state
// backwards relative to the data it was computed from.
func Solve(schedule realtime.TrainSchedule, now int64, dwell DwellLookup) SegmentProgress {
	sp := SegmentProgress{
		TripID:        schedule.TripID,
		TrainNumber:   schedule.TrainNumber,
		Direction:     schedule.Direction,
		FeedTimestamp: schedule.FeedTimestamp,
	}

	if now < schedule.FeedTimestamp {
		now = schedule.FeedTimestamp
	}
	sp.NowTimestamp = now

	if len(schedule.OrderedSequences) < 2 {
		sp.Status = StatusInvalid
		return sp
	}

	if stopped, ok := findStopped(schedule, now, dwell); ok {
		stopped.NowTimestamp = now
		stopped.FeedTimestamp = schedule.FeedTimestamp
		return stopped
	}

	if running, ok := findRunning(schedule, now, dwell); ok {
		running.NowTimestamp = now
		running.FeedTimestamp = schedule.FeedTimestamp
		return running
	}

	sp.Status = StatusUnknown
	return sp
}

// findStopped iterates stops in sequence order looking for one whose
// [arrival, effective_departure] interval contains now.
func findStopped(schedule realtime.TrainSchedule, now int64, dwell DwellLookup) (SegmentProgress, bool) {
	for _, seq := range schedule.OrderedSequences {
		stop := schedule.SchedulesBySeq[seq]
		if stop.ArrivalTime == nil {
			continue
		}
		effDep, ok := effectiveDeparture(stop, dwell)
		if !ok {
			continue
		}
		if *stop.ArrivalTime <= now && now <= effDep {
			progress := 0.0
			return SegmentProgress{
				TripID:        schedule.TripID,
				TrainNumber:   schedule.TrainNumber,
				Direction:     schedule.Direction,
				PrevStationID: stop.StationID,
				NextStationID: stop.StationID,
				PrevSequence:  seq,
				NextSequence:  seq,
				T0Departure:   *stop.ArrivalTime,
				T1Arrival:     effDep,
				Progress:      &progress,
				Status:        StatusStopped,
				DelaySeconds:  stop.DelaySeconds,
			}, true
		}
	}
	return SegmentProgress{}, false
}

// findRunning scans consecutive stop pairs for the one now falls
// within, and computes trapezoidal progress across it.
func findRunning(schedule realtime.TrainSchedule, now int64, dwell DwellLookup) (SegmentProgress, bool) {
	seqs := schedule.OrderedSequences
	for i := 0; i < len(seqs)-1; i++ {
		a := schedule.SchedulesBySeq[seqs[i]]
		b := schedule.SchedulesBySeq[seqs[i+1]]

		t0, ok := effectiveDeparture(a, dwell)
		if !ok {
			continue
		}
		t1, ok := arrivalOrDeparture(b)
		if !ok {
			continue
		}
		if t1 <= t0 {
			continue
		}
		if now < t0 || now > t1 {
			continue
		}

		elapsed := float64(now - t0)
		duration := float64(t1 - t0)
		progress := trapezoidalProgress(elapsed, duration)

		return SegmentProgress{
			TripID:        schedule.TripID,
			TrainNumber:   schedule.TrainNumber,
			Direction:     schedule.Direction,
			PrevStationID: a.StationID,
			NextStationID: b.StationID,
			PrevSequence:  seqs[i],
			NextSequence:  seqs[i+1],
			T0Departure:   t0,
			T1Arrival:     t1,
			Progress:      &progress,
			Status:        StatusRunning,
			DelaySeconds:  b.DelaySeconds,
		}, true
	}
	return SegmentProgress{}, false
}

// effectiveDeparture implements spec.md §4.6's single-time-entry
// convention: when arrival and departure are both present and equal,
// the train is assumed to actually leave dwell-seconds later.
func effectiveDeparture(stop realtime.RealtimeStationSchedule, dwell DwellLookup) (int64, bool) {
	if stop.ArrivalTime != nil && stop.DepartureTime != nil && *stop.ArrivalTime == *stop.DepartureTime {
		return *stop.ArrivalTime + int64(dwell(stop.StationID)), true
	}
	if stop.DepartureTime != nil {
		return *stop.DepartureTime, true
	}
	if stop.ArrivalTime != nil {
		return *stop.ArrivalTime + int64(dwell(stop.StationID)), true
	}
	return 0, false
}

// arrivalOrDeparture returns a stop's arrival time, falling back to
// its departure time when arrival is absent.
func arrivalOrDeparture(stop realtime.RealtimeStationSchedule) (int64, bool) {
	if stop.ArrivalTime != nil {
		return *stop.ArrivalTime, true
	}
	if stop.DepartureTime != nil {
		return *stop.DepartureTime, true
	}
	return 0, false
}
