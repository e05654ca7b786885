package httpapi

import (
	"time"

	"github.com/yamanote-live/trainpos/internal/clock"
	"github.com/yamanote-live/trainpos/internal/config"
	"github.com/yamanote-live/trainpos/internal/snap"
	"github.com/yamanote-live/trainpos/internal/staticdata"
)

func testClock() *clock.Clock {
	c, err := clock.New("UTC")
	if err != nil {
		panic(err)
	}
	return c
}

func testLineRuntime() LineRuntime {
	return LineRuntime{
		Config: config.LineConfig{
			ID:           "testline",
			DisplayName:  "Test Line",
			GTFSRouteID:  "JR-East.TestLine",
			OutboundName: "Outbound",
			InboundName:  "Inbound",
		},
		Geometry: snap.LineGeometry{
			Polyline:     [][2]float64{{0, 0}, {1, 0}, {2, 0}, {3, 0}},
			StationIndex: map[string]int{"A": 0, "B": 3},
			StationCoords: map[string][2]float64{
				"A": {0, 0},
				"B": {3, 0},
			},
		},
		OrderedStationIDs: []string{"A", "B"},
	}
}

func newTestServer(st *fakeStore, fe *fakeFetcher) *Server {
	return &Server{
		Clock:       testClock(),
		Corpus:      &staticdata.Corpus{},
		Store:       st,
		Fetcher:     fe,
		Lines:       map[string]LineRuntime{"testline": testLineRuntime()},
		FeedTimeout: 5 * time.Second,
	}
}
