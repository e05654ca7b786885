package httpapi

import (
	"context"
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"

	"github.com/yamanote-live/trainpos/internal/config"
	"github.com/yamanote-live/trainpos/internal/position"
	"github.com/yamanote-live/trainpos/internal/realtime"
	"github.com/yamanote-live/trainpos/internal/snap"
)

// positionsResponse is the GET /api/trains/{line_id}/positions/v4 body
// (spec.md §6).
type positionsResponse struct {
	Source      string           `json:"source"`
	LineID      string           `json:"line_id"`
	LineName    string           `json:"line_name"`
	Status      string           `json:"status"`
	Timestamp   int64            `json:"timestamp"`
	TotalTrains int              `json:"total_trains"`
	Positions   []positionEntry  `json:"positions"`
}

type positionEntry struct {
	TripID      string       `json:"trip_id"`
	TrainNumber string       `json:"train_number"`
	Direction   string       `json:"direction"`
	Status      string       `json:"status"`
	Progress    *float64     `json:"progress"`
	Delay       int          `json:"delay"`
	Location    locationView `json:"location"`
	Segment     segmentView  `json:"segment"`
	Times       timesView    `json:"times"`
	Debug       debugView    `json:"debug"`
}

type locationView struct {
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	Bearing   *float64 `json:"bearing,omitempty"`
}

type segmentView struct {
	PrevSequence  int    `json:"prev_seq"`
	NextSequence  int    `json:"next_seq"`
	PrevStationID string `json:"prev_station_id"`
	NextStationID string `json:"next_station_id"`
}

type timesView struct {
	NowTimestamp int64 `json:"now_ts"`
	T0Departure  int64 `json:"t0_departure"`
	T1Arrival    int64 `json:"t1_arrival"`
}

type debugView struct {
	FeedTimestamp int64 `json:"feed_timestamp"`
}

// handlePositions serves GET /api/trains/{line_id}/positions/v4, the
// primary output: resolve line -> normalize feed -> solve progress ->
// snap to polyline -> sort -> serialize (spec.md §4.8).
func (s *Server) handlePositions(w http.ResponseWriter, r *http.Request) {
	lineID := chi.URLParam(r, "line_id")
	lr, ok := s.findLine(lineID)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown line", map[string]any{"line_id": lineID})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.FeedTimeout)
	defer cancel()

	now := s.Clock.Now()
	serviceType := string(s.Clock.ServiceTypeAt(now))
	serviceDate := s.Clock.ServiceDate(now).Format("2006-01-02")

	resolver := realtime.StopResolver{
		LinePrefix:      lr.Config.GTFSRouteID,
		SeqToStation:    s.Corpus.SeqToStation,
		OrderedStations: lr.OrderedStationIDs,
		Ascending:       lineAscending(lr.Config),
	}

	schedules, err := s.Fetcher.FetchAndNormalize(ctx, realtime.NormalizeParams{
		TargetRouteID: lr.Config.GTFSRouteID,
		LineConfig:    lr.Config,
		ServiceType:   serviceType,
		ServiceDate:   serviceDate,
		Resolver:      resolver,
	})
	if err != nil {
		// Any fetch/parse failure degrades to status=error with empty
		// positions rather than surfacing as an HTTP 5xx (spec.md §7).
		writeJSON(w, http.StatusOK, positionsResponse{
			Source:    lr.Config.GTFSRouteID,
			LineID:    lr.Config.ID,
			LineName:  lr.Config.DisplayName,
			Status:    "error",
			Timestamp: now.Unix(),
			Positions: []positionEntry{},
		})
		return
	}

	if len(schedules) == 0 {
		writeJSON(w, http.StatusOK, positionsResponse{
			Source:    lr.Config.GTFSRouteID,
			LineID:    lr.Config.ID,
			LineName:  lr.Config.DisplayName,
			Status:    "no_data",
			Timestamp: now.Unix(),
			Positions: []positionEntry{},
		})
		return
	}

	entries := make([]positionEntry, 0, len(schedules))
	for _, sched := range schedules {
		sp := position.Solve(sched, now.Unix(), s.Store.Dwell)
		if sp.Status == position.StatusInvalid {
			continue
		}

		entry := positionEntry{
			TripID:      sp.TripID,
			TrainNumber: sp.TrainNumber,
			Direction:   sp.Direction,
			Status:      string(sp.Status),
			Delay:       sp.DelaySeconds,
			Segment: segmentView{
				PrevSequence:  sp.PrevSequence,
				NextSequence:  sp.NextSequence,
				PrevStationID: sp.PrevStationID,
				NextStationID: sp.NextStationID,
			},
			Times: timesView{
				NowTimestamp: sp.NowTimestamp,
				T0Departure:  sp.T0Departure,
				T1Arrival:    sp.T1Arrival,
			},
			Debug: debugView{FeedTimestamp: sp.FeedTimestamp},
		}
		if sp.Progress != nil {
			p := round(*sp.Progress, 4)
			entry.Progress = &p
		}

		if pt, ok := snap.Snap(sp, lr.Geometry); ok {
			entry.Location = locationView{
				Latitude:  round(pt.Latitude, 6),
				Longitude: round(pt.Longitude, 6),
				Bearing:   pt.Bearing,
			}
		}

		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Direction != entries[j].Direction {
			return entries[i].Direction < entries[j].Direction
		}
		return entries[i].TrainNumber < entries[j].TrainNumber
	})

	writeJSON(w, http.StatusOK, positionsResponse{
		Source:      lr.Config.GTFSRouteID,
		LineID:      lr.Config.ID,
		LineName:    lr.Config.DisplayName,
		Status:      "success",
		Timestamp:   now.Unix(),
		TotalTrains: len(entries),
		Positions:   entries,
	})
}

// lineAscending returns the stop-resolution strategy 4 direction
// predicate for a line: loop lines index forward for OuterLoop only,
// non-loop lines index forward for the configured outbound name.
func lineAscending(cfg config.LineConfig) func(direction string) bool {
	if cfg.IsLoop {
		return func(direction string) bool { return direction == cfg.OuterLoopName }
	}
	outbound := cfg.OutboundName
	if outbound == "" {
		outbound = "Outbound"
	}
	return func(direction string) bool { return direction == outbound }
}
