// Command seed is the one-time station import tool: it reads
// stations.json into the persistent store's stations table, mirroring
// the station half of the original prototype's import_data.py. It
// writes no station_ranks rows.
// It is never invoked by the request-serving process.
package main

import (
	"context"
	"flag"
	"log"
	"path/filepath"
	"time"

	"github.com/yamanote-live/trainpos/internal/config"
	"github.com/yamanote-live/trainpos/internal/geodata"
	"github.com/yamanote-live/trainpos/internal/store"
)

func main() {
	dataDir := flag.String("data-dir", "", "directory containing stations.json (defaults to STATIC_DATA_DIR)")
	flag.Parse()

	cfg := config.Load()
	dir := *dataDir
	if dir == "" {
		dir = cfg.StaticDataDir
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	st, err := store.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("opening store: %v", err)
	}
	defer st.Close()

	if err := st.EnsureSchema(ctx); err != nil {
		log.Fatalf("ensuring schema: %v", err)
	}

	stations, err := geodata.LoadStationSeeds(filepath.Join(dir, "stations.json"))
	if err != nil {
		log.Fatalf("loading station seeds: %v", err)
	}

	if err := st.SeedStations(ctx, stations); err != nil {
		log.Fatalf("seeding stations: %v", err)
	}
	log.Printf("seeded %d stations", len(stations))
}
