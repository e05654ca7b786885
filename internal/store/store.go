package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yamanote-live/trainpos/internal/apierr"
	"github.com/yamanote-live/trainpos/internal/position"
)

// Store wraps a pgx connection pool over the stations/station_ranks
// tables and keeps an in-process dwell cache so the progress solver
// never touches the database on the request path.
type Store struct {
	pool *pgxpool.Pool

	mu    sync.RWMutex
	dwell map[string]DwellRecord
}

// Open parses databaseURL, tunes the pool for the read-heavy,
// occasional-write workload this service has, pings it, and primes the
// dwell cache.
func Open(ctx context.Context, databaseURL string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing database url: %w", err)
	}

	cfg.MaxConns = 10
	cfg.MinConns = 2
	cfg.MaxConnLifetime = time.Hour
	cfg.MaxConnIdleTime = 5 * time.Minute
	cfg.HealthCheckPeriod = 30 * time.Second

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	s := &Store{pool: pool, dwell: make(map[string]DwellRecord)}
	if err := s.reloadDwellCache(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

// Close releases the pool. Called once at shutdown.
func (s *Store) Close() {
	s.pool.Close()
}

// EnsureSchema creates the stations/station_ranks tables if they don't
// already exist, per spec.md §6's exact column list. Safe to call on
// every startup.
func (s *Store) EnsureSchema(ctx context.Context) error {
	const schema = `
	CREATE TABLE IF NOT EXISTS stations (
		id TEXT PRIMARY KEY,
		line_id TEXT NOT NULL,
		name_localized TEXT NOT NULL,
		name_latin TEXT NOT NULL,
		longitude DOUBLE PRECISION NOT NULL,
		latitude DOUBLE PRECISION NOT NULL
	);

	CREATE TABLE IF NOT EXISTS station_ranks (
		station_id TEXT PRIMARY KEY REFERENCES stations(id),
		rank TEXT NOT NULL,
		dwell_seconds INTEGER NOT NULL
	);
	`
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensuring schema: %w", err)
	}
	return nil
}

// SeedStations upserts the given station records. Used only by the
// one-time station import tool, never by the request-serving process:
// per spec.md §6 the server's only write path at runtime is the dwell
// upsert.
func (s *Store) SeedStations(ctx context.Context, stations []Station) error {
	const query = `
		INSERT INTO stations (id, line_id, name_localized, name_latin, longitude, latitude)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE
		SET line_id = EXCLUDED.line_id,
		    name_localized = EXCLUDED.name_localized,
		    name_latin = EXCLUDED.name_latin,
		    longitude = EXCLUDED.longitude,
		    latitude = EXCLUDED.latitude
	`
	for _, st := range stations {
		if _, err := s.pool.Exec(ctx, query, st.ID, st.LineID, st.NameLocalized, st.NameLatin, st.Longitude, st.Latitude); err != nil {
			return fmt.Errorf("seeding station %s: %w", st.ID, err)
		}
	}
	return nil
}

func (s *Store) reloadDwellCache(ctx context.Context) error {
	rows, err := s.pool.Query(ctx, `SELECT station_id, rank, dwell_seconds FROM station_ranks`)
	if err != nil {
		return fmt.Errorf("loading dwell cache: %w", err)
	}
	defer rows.Close()

	next := make(map[string]DwellRecord)
	for rows.Next() {
		var rec DwellRecord
		if err := rows.Scan(&rec.StationID, &rec.Rank, &rec.DwellSeconds); err != nil {
			return fmt.Errorf("scanning dwell row: %w", err)
		}
		next[rec.StationID] = rec
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating dwell rows: %w", err)
	}

	s.mu.Lock()
	s.dwell = next
	s.mu.Unlock()
	return nil
}

// Dwell implements position.DwellLookup: it returns a station's
// configured dwell seconds, falling back to the B-rank default for a
// station with no recorded rank.
func (s *Store) Dwell(stationID string) int {
	s.mu.RLock()
	rec, ok := s.dwell[stationID]
	s.mu.RUnlock()
	if !ok {
		return position.DwellSecondsDefault
	}
	return rec.DwellSeconds
}

var _ position.DwellLookup = (*Store)(nil).Dwell

// UpsertDwell persists a station's dwell rank and seconds, then
// updates the in-process cache. Per spec.md §5 this is the only write
// path: persist first, update cache second, so a reader can at worst
// observe a stale cache value for the single in-flight request racing
// the write.
func (s *Store) UpsertDwell(ctx context.Context, stationID, rank string, dwellSeconds int) error {
	if !ValidRank(rank) {
		return apierr.NewConfigError("invalid dwell rank %q", rank)
	}
	if dwellSeconds < 0 {
		return apierr.NewConfigError("dwell seconds must be >= 0, got %d", dwellSeconds)
	}

	const query = `
		INSERT INTO station_ranks (station_id, rank, dwell_seconds)
		VALUES ($1, $2, $3)
		ON CONFLICT (station_id) DO UPDATE
		SET rank = EXCLUDED.rank, dwell_seconds = EXCLUDED.dwell_seconds
	`
	if _, err := s.pool.Exec(ctx, query, stationID, rank, dwellSeconds); err != nil {
		return fmt.Errorf("upserting dwell record: %w", err)
	}

	s.mu.Lock()
	s.dwell[stationID] = DwellRecord{StationID: stationID, Rank: rank, DwellSeconds: dwellSeconds}
	s.mu.Unlock()
	return nil
}

// StationsByLine returns every station belonging to lineID, joined
// with its current dwell record (B-rank default when unranked).
func (s *Store) StationsByLine(ctx context.Context, lineID string) ([]StationWithDwell, error) {
	const query = `
		SELECT s.id, s.line_id, s.name_localized, s.name_latin, s.longitude, s.latitude,
		       COALESCE(r.rank, $2), COALESCE(r.dwell_seconds, $3)
		FROM stations s
		LEFT JOIN station_ranks r ON r.station_id = s.id
		WHERE s.line_id = $1
		ORDER BY s.id
	`
	rows, err := s.pool.Query(ctx, query, lineID, RankB, position.DwellSecondsDefault)
	if err != nil {
		return nil, fmt.Errorf("querying stations by line: %w", err)
	}
	defer rows.Close()
	return scanStationsWithDwell(rows)
}

// SearchStations does a case-insensitive substring match across
// localized and latin names, ranking exact matches (either name)
// first, then returns up to limit results.
func (s *Store) SearchStations(ctx context.Context, q string, limit int) ([]StationWithDwell, error) {
	const query = `
		SELECT s.id, s.line_id, s.name_localized, s.name_latin, s.longitude, s.latitude,
		       COALESCE(r.rank, $4), COALESCE(r.dwell_seconds, $5)
		FROM stations s
		LEFT JOIN station_ranks r ON r.station_id = s.id
		WHERE s.name_localized ILIKE '%' || $1 || '%' OR s.name_latin ILIKE '%' || $1 || '%'
		ORDER BY
			CASE WHEN s.name_localized ILIKE $1 OR s.name_latin ILIKE $1 THEN 0 ELSE 1 END,
			s.id
		LIMIT $2 OFFSET $3
	`
	rows, err := s.pool.Query(ctx, query, q, limit, 0, RankB, position.DwellSecondsDefault)
	if err != nil {
		return nil, fmt.Errorf("searching stations: %w", err)
	}
	defer rows.Close()
	return scanStationsWithDwell(rows)
}

func scanStationsWithDwell(rows pgx.Rows) ([]StationWithDwell, error) {
	var out []StationWithDwell
	for rows.Next() {
		var st StationWithDwell
		if err := rows.Scan(
			&st.ID, &st.LineID, &st.NameLocalized, &st.NameLatin, &st.Longitude, &st.Latitude,
			&st.Rank, &st.DwellSeconds,
		); err != nil {
			return nil, fmt.Errorf("scanning station row: %w", err)
		}
		out = append(out, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating station rows: %w", err)
	}
	return out, nil
}
