package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/yamanote-live/trainpos/internal/store"
)

func TestHandleStationsRequiresLineID(t *testing.T) {
	s := newTestServer(&fakeStore{}, &fakeFetcher{})
	req := httptest.NewRequest(http.MethodGet, "/api/stations", nil)
	rec := httptest.NewRecorder()
	s.handleStations(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestHandleStationsUnknownLine(t *testing.T) {
	s := newTestServer(&fakeStore{}, &fakeFetcher{})
	req := httptest.NewRequest(http.MethodGet, "/api/stations?lineId=nope", nil)
	rec := httptest.NewRecorder()
	s.handleStations(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestHandleStationsReturnsRoundedCoordinates(t *testing.T) {
	fs := &fakeStore{
		stationsByLine: map[string][]store.StationWithDwell{
			"testline": {
				{
					Station: store.Station{
						ID: "A", LineID: "testline",
						NameLocalized: "あ", NameLatin: "A",
						Longitude: 1.123456789, Latitude: 2.987654321,
					},
					Rank: "S", DwellSeconds: 50,
				},
			},
		},
	}
	s := newTestServer(fs, &fakeFetcher{})
	req := httptest.NewRequest(http.MethodGet, "/api/stations?lineId=testline", nil)
	rec := httptest.NewRecorder()
	s.handleStations(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	stations := body["stations"].([]any)
	if len(stations) != 1 {
		t.Fatalf("len(stations) = %d, want 1", len(stations))
	}
	st := stations[0].(map[string]any)
	if st["longitude"].(float64) != 1.123457 {
		t.Errorf("longitude = %v, want 1.123457 (rounded to 6 places)", st["longitude"])
	}
}

func TestHandleSearchStationsRequiresQuery(t *testing.T) {
	s := newTestServer(&fakeStore{}, &fakeFetcher{})
	req := httptest.NewRequest(http.MethodGet, "/api/stations/search", nil)
	rec := httptest.NewRecorder()
	s.handleSearchStations(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestHandleUpsertRankSuccess(t *testing.T) {
	fs := &fakeStore{}
	s := newTestServer(fs, &fakeFetcher{})

	body, _ := json.Marshal(map[string]any{"rank": "S", "dwell_time": 50})
	req := httptest.NewRequest(http.MethodPut, "/api/stations/A/rank", bytes.NewReader(body))

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("station_id", "A")
	req = req.WithContext(contextWithChiRouteContext(req, rctx))

	rec := httptest.NewRecorder()
	s.handleUpsertRank(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body=%s", rec.Code, rec.Body.String())
	}
	if fs.lastUpsert.stationID != "A" || fs.lastUpsert.rank != "S" || fs.lastUpsert.seconds != 50 {
		t.Errorf("upsert args = %+v, want A/S/50", fs.lastUpsert)
	}
}

func TestHandleUpsertRankPropagatesStoreValidationError(t *testing.T) {
	fs := &fakeStore{upsertErr: &badRankError{}}
	s := newTestServer(fs, &fakeFetcher{})

	body, _ := json.Marshal(map[string]any{"rank": "Z", "dwell_time": 50})
	req := httptest.NewRequest(http.MethodPut, "/api/stations/A/rank", bytes.NewReader(body))
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("station_id", "A")
	req = req.WithContext(contextWithChiRouteContext(req, rctx))

	rec := httptest.NewRecorder()
	s.handleUpsertRank(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

type badRankError struct{}

func (e *badRankError) Error() string { return "invalid dwell rank" }
