package httpapi

import (
	"context"

	"github.com/yamanote-live/trainpos/internal/realtime"
	"github.com/yamanote-live/trainpos/internal/store"
)

type fakeStore struct {
	stationsByLine map[string][]store.StationWithDwell
	searchResults  []store.StationWithDwell
	dwell          map[string]int
	upsertErr      error
	lastUpsert     struct {
		stationID string
		rank      string
		seconds   int
	}
}

func (f *fakeStore) StationsByLine(ctx context.Context, lineID string) ([]store.StationWithDwell, error) {
	return f.stationsByLine[lineID], nil
}

func (f *fakeStore) SearchStations(ctx context.Context, q string, limit int) ([]store.StationWithDwell, error) {
	if limit < len(f.searchResults) {
		return f.searchResults[:limit], nil
	}
	return f.searchResults, nil
}

func (f *fakeStore) UpsertDwell(ctx context.Context, stationID, rank string, dwellSeconds int) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.lastUpsert.stationID = stationID
	f.lastUpsert.rank = rank
	f.lastUpsert.seconds = dwellSeconds
	return nil
}

func (f *fakeStore) Dwell(stationID string) int {
	if f.dwell == nil {
		return 20
	}
	if v, ok := f.dwell[stationID]; ok {
		return v
	}
	return 20
}

type fakeFetcher struct {
	schedules []realtime.TrainSchedule
	err       error
}

func (f *fakeFetcher) FetchAndNormalize(ctx context.Context, p realtime.NormalizeParams) ([]realtime.TrainSchedule, error) {
	return f.schedules, f.err
}
