// Package storage provides SQLite-based persistence for saved poses and
// benchmark runs. Uses the pure-Go modernc.org/sqlite driver to avoid
// CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-raycaster/internal/raycast"
)

// ErrNoPose is returned when a map has no saved pose.
var ErrNoPose = errors.New("storage: no saved pose")

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// PoseEntry is a bookmarked player pose on a map.
type PoseEntry struct {
	ID        int64
	MapID     string
	Label     string
	Pose      raycast.Pose
	CreatedAt time.Time
}

// BenchRun records one timing run of the renderer.
type BenchRun struct {
	ID        int64
	MapID     string
	Width     int
	Height    int
	Frames    int
	Rays      int
	Elapsed   time.Duration
	CreatedAt time.Time
}

// FPS returns frames per second for the run.
func (b BenchRun) FPS() float64 {
	if b.Elapsed <= 0 {
		return 0
	}
	return float64(b.Frames) / b.Elapsed.Seconds()
}

// MapStats aggregates what is stored for one map.
type MapStats struct {
	MapID      string
	Poses      int
	BenchRuns  int
	BestFPS    float64
	LastPoseAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS poses (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			map_id TEXT NOT NULL,
			label TEXT NOT NULL DEFAULT '',
			x REAL NOT NULL,
			y REAL NOT NULL,
			angle REAL NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_poses_map_id ON poses(map_id, id DESC);

		CREATE TABLE IF NOT EXISTS bench_runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			map_id TEXT NOT NULL,
			width INTEGER NOT NULL,
			height INTEGER NOT NULL,
			frames INTEGER NOT NULL,
			rays INTEGER NOT NULL,
			elapsed_ns INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_bench_runs_map_id ON bench_runs(map_id, id DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SavePose bookmarks a pose on the given map.
// Returns the ID of the inserted record.
func (s *Store) SavePose(mapID, label string, pose raycast.Pose) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO poses (map_id, label, x, y, angle) VALUES (?, ?, ?, ?, ?)",
		mapID, label, pose.X, pose.Y, pose.Angle,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save pose: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// LastPose returns the most recently saved pose for the map, or ErrNoPose.
func (s *Store) LastPose(mapID string) (PoseEntry, error) {
	var (
		e         PoseEntry
		createdAt any
	)
	err := s.db.QueryRow(
		`SELECT id, map_id, label, x, y, angle, created_at
		 FROM poses
		 WHERE map_id = ?
		 ORDER BY id DESC
		 LIMIT 1`,
		mapID,
	).Scan(&e.ID, &e.MapID, &e.Label, &e.Pose.X, &e.Pose.Y, &e.Pose.Angle, &createdAt)

	if errors.Is(err, sql.ErrNoRows) {
		return PoseEntry{}, fmt.Errorf("%w for map %q", ErrNoPose, mapID)
	}
	if err != nil {
		return PoseEntry{}, fmt.Errorf("storage: cannot query pose: %w", err)
	}
	e.CreatedAt = parseTime(createdAt)
	return e, nil
}

// ListPoses retrieves the newest saved poses for the map.
// An empty mapID lists poses of every map.
func (s *Store) ListPoses(mapID string, limit int) ([]PoseEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, map_id, label, x, y, angle, created_at
		 FROM poses
		 WHERE ? = '' OR map_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		mapID, mapID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query poses: %w", err)
	}
	defer rows.Close()

	var entries []PoseEntry
	for rows.Next() {
		var (
			e         PoseEntry
			createdAt any
		)
		if err := rows.Scan(&e.ID, &e.MapID, &e.Label, &e.Pose.X, &e.Pose.Y, &e.Pose.Angle, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// DeletePose removes one saved pose.
func (s *Store) DeletePose(id int64) error {
	_, err := s.db.Exec("DELETE FROM poses WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("storage: cannot delete pose: %w", err)
	}
	return nil
}

// ClearPoses deletes all saved poses for the given map.
func (s *Store) ClearPoses(mapID string) error {
	_, err := s.db.Exec("DELETE FROM poses WHERE map_id = ?", mapID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear poses: %w", err)
	}
	return nil
}

// SaveBench records a benchmark run.
func (s *Store) SaveBench(run BenchRun) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO bench_runs (map_id, width, height, frames, rays, elapsed_ns)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		run.MapID, run.Width, run.Height, run.Frames, run.Rays, run.Elapsed.Nanoseconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save bench run: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// RecentBench retrieves the newest benchmark runs for the map.
func (s *Store) RecentBench(mapID string, limit int) ([]BenchRun, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, map_id, width, height, frames, rays, elapsed_ns, created_at
		 FROM bench_runs
		 WHERE map_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		mapID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query bench runs: %w", err)
	}
	defer rows.Close()

	var runs []BenchRun
	for rows.Next() {
		var (
			r         BenchRun
			elapsed   int64
			createdAt any
		)
		if err := rows.Scan(&r.ID, &r.MapID, &r.Width, &r.Height, &r.Frames, &r.Rays, &elapsed, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Elapsed = time.Duration(elapsed)
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// AllMapStats aggregates poses and bench runs per map.
func (s *Store) AllMapStats() (map[string]*MapStats, error) {
	stats := make(map[string]*MapStats)
	get := func(id string) *MapStats {
		st, ok := stats[id]
		if !ok {
			st = &MapStats{MapID: id}
			stats[id] = st
		}
		return st
	}

	rows, err := s.db.Query(`SELECT map_id, COUNT(*), MAX(created_at) FROM poses GROUP BY map_id`)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get pose stats: %w", err)
	}
	for rows.Next() {
		var (
			id   string
			n    int
			last any
		)
		if err := rows.Scan(&id, &n, &last); err != nil {
			rows.Close()
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st := get(id)
		st.Poses = n
		st.LastPoseAt = parseTime(last)
	}
	rows.Close()

	rows, err = s.db.Query(
		`SELECT map_id, COUNT(*), MAX(CAST(frames AS REAL) * 1e9 / elapsed_ns)
		 FROM bench_runs
		 WHERE elapsed_ns > 0
		 GROUP BY map_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get bench stats: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			id  string
			n   int
			fps float64
		)
		if err := rows.Scan(&id, &n, &fps); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st := get(id)
		st.BenchRuns = n
		st.BestFPS = fps
	}
	return stats, rows.Err()
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
