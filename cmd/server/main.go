package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"syscall"
	"time"

	"github.com/yamanote-live/trainpos/internal/clock"
	"github.com/yamanote-live/trainpos/internal/config"
	"github.com/yamanote-live/trainpos/internal/geodata"
	"github.com/yamanote-live/trainpos/internal/httpapi"
	"github.com/yamanote-live/trainpos/internal/realtime"
	"github.com/yamanote-live/trainpos/internal/snap"
	"github.com/yamanote-live/trainpos/internal/staticdata"
	"github.com/yamanote-live/trainpos/internal/store"
	"github.com/yamanote-live/trainpos/internal/sublines"
)

func main() {
	log.Println("Starting trainpos server...")

	cfg := config.Load()

	// ═══════════════════════════════════════════════════════
	// PHASE 1: Clock and static corpus (fatal on failure)
	// ═══════════════════════════════════════════════════════
	clk, err := clock.New(cfg.ServiceTimezone)
	if err != nil {
		log.Fatalf("invalid service timezone %q: %v", cfg.ServiceTimezone, err)
	}

	lineIDs := make([]string, 0, len(config.SupportedLines))
	for id := range config.SupportedLines {
		lineIDs = append(lineIDs, id)
	}
	sort.Strings(lineIDs)

	corpus, err := staticdata.LoadDir(cfg.StaticDataDir, lineIDs)
	if err != nil {
		log.Fatalf("loading static timetable corpus: %v", err)
	}
	log.Printf("static corpus loaded: %s", corpus.Stats())

	// ═══════════════════════════════════════════════════════
	// PHASE 2: Persistent store (fatal on failure)
	// ═══════════════════════════════════════════════════════
	ctx, cancelStartup := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelStartup()

	st, err := store.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("opening persistent store: %v", err)
	}
	defer st.Close()

	if err := st.EnsureSchema(ctx); err != nil {
		log.Fatalf("ensuring store schema: %v", err)
	}

	// ═══════════════════════════════════════════════════════
	// PHASE 3: Line geometry (railways + coordinates, fatal on failure)
	// ═══════════════════════════════════════════════════════
	railwayIDs, err := geodata.LoadRailwayIDs(filepath.Join(cfg.StaticDataDir, "railways.json"))
	if err != nil {
		log.Fatalf("loading railways file: %v", err)
	}

	segmentsByLine, err := geodata.LoadSegments(filepath.Join(cfg.StaticDataDir, "coordinates.json"))
	if err != nil {
		log.Fatalf("loading coordinates file: %v", err)
	}

	lines := make(map[string]httpapi.LineRuntime, len(lineIDs))
	resolvedPolylines := make(map[string][][2]float64, len(lineIDs))

	for remaining := buildMergeOrder(lineIDs, segmentsByLine); len(remaining) > 0; {
		progressed := false
		var stillRemaining []string

		for _, lineID := range remaining {
			lc, ok := config.GetLineConfig(lineID)
			if !ok {
				continue
			}
			if !railwayIDs[lc.InternalPolylineID] {
				log.Printf("warning: line %s (%s) not present in railways.json", lineID, lc.InternalPolylineID)
			}

			segs := segmentsByLine[lc.InternalPolylineID]
			if len(segs) == 0 {
				log.Fatalf("no coordinate segments found for line %s (%s)", lineID, lc.InternalPolylineID)
			}

			polyline, err := sublines.Merge(segs, resolvedPolylines, lc.IsLoop)
			if err != nil {
				stillRemaining = append(stillRemaining, lineID)
				continue
			}
			polyline = sublines.Dedup(polyline)
			resolvedPolylines[lc.InternalPolylineID] = polyline
			progressed = true

			stationCoords := lineStationCoords(ctx, st, lineID)
			stationIndex := sublines.BuildStationIndex(polyline, stationCoords)
			orderedIDs := orderStationsByPolylineIndex(stationCoords, stationIndex)

			lines[lineID] = httpapi.LineRuntime{
				Config: lc,
				Geometry: snap.LineGeometry{
					Polyline:      polyline,
					StationIndex:  stationIndex,
					StationCoords: stationCoords,
					IsLoop:        lc.IsLoop,
				},
				OrderedStationIDs: orderedIDs,
			}
		}

		if !progressed {
			log.Fatalf("could not resolve polylines for lines (circular or missing cross-references): %v", stillRemaining)
		}
		remaining = stillRemaining
	}
	log.Printf("merged polylines for %d lines", len(lines))

	// ═══════════════════════════════════════════════════════
	// PHASE 4: Real-time fetcher and HTTP surface
	// ═══════════════════════════════════════════════════════
	httpClient := &http.Client{Timeout: cfg.FeedTimeout}
	fetcher := realtime.NewFetcher(httpClient, cfg.GTFSRTBaseURL, cfg.APIKey)

	srv := &httpapi.Server{
		Clock:       clk,
		Corpus:      corpus,
		Store:       st,
		Fetcher:     fetcher,
		Lines:       lines,
		FeedTimeout: cfg.FeedTimeout,
	}

	router := httpapi.NewRouter(srv, cfg.CORSAllowedOrigins)
	httpServer := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: router,
	}

	go func() {
		log.Printf("listening on %s", cfg.ListenAddr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http server error: %v", err)
		}
	}()

	// ═══════════════════════════════════════════════════════
	// PHASE 5: Graceful shutdown
	// ═══════════════════════════════════════════════════════
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	log.Println("shutting down...")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("http server shutdown error: %v", err)
	}
	httpClient.CloseIdleConnections()
	log.Println("goodbye")
}

// buildMergeOrder is just the configured line ids in a stable order;
// cross-line "sub" segment references are resolved by retrying
// unresolved lines across passes, not by a precomputed topological
// order, since the reference graph is small and rarely more than one
// level deep.
func buildMergeOrder(lineIDs []string, _ map[string][]sublines.Segment) []string {
	out := make([]string, len(lineIDs))
	copy(out, lineIDs)
	return out
}

// lineStationCoords pulls the line's stations from the persistent
// store into the coordinate map the sublines station index needs.
func lineStationCoords(ctx context.Context, st *store.Store, lineID string) map[string][2]float64 {
	stations, err := st.StationsByLine(ctx, lineID)
	if err != nil {
		log.Printf("warning: loading stations for line %s: %v", lineID, err)
		return map[string][2]float64{}
	}

	coords := make(map[string][2]float64, len(stations))
	for _, s := range stations {
		coords[s.ID] = [2]float64{s.Longitude, s.Latitude}
	}
	return coords
}

// orderStationsByPolylineIndex derives the physically-ordered station
// id list the real-time stop resolver's fallback strategy needs, by
// sorting on each station's nearest-polyline-vertex index.
func orderStationsByPolylineIndex(coords map[string][2]float64, index map[string]int) []string {
	ordered := make([]string, 0, len(coords))
	for id := range coords {
		ordered = append(ordered, id)
	}
	sort.Slice(ordered, func(i, j int) bool { return index[ordered[i]] < index[ordered[j]] })
	return ordered
}
