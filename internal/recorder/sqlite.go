package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists historical data to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs
// migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so dashboard reads stay cheap while refreshes write.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS metrics_snapshots (
			id                INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp         INTEGER NOT NULL,
			current_yield     REAL,
			two_ten_spread    REAL,
			volatility_bps    REAL,
			observation_count INTEGER,
			session_count     INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_metrics_ts ON metrics_snapshots(timestamp)`,

		`CREATE TABLE IF NOT EXISTS session_summaries (
			id                 INTEGER PRIMARY KEY AUTOINCREMENT,
			session_date       TEXT NOT NULL UNIQUE,
			open_yield         REAL,
			close_yield        REAL,
			min_relative_yield REAL,
			max_relative_yield REAL,
			observation_count  INTEGER,
			updated_at         INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_summary_date ON session_summaries(session_date)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordSnapshot(snap *MetricsSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO metrics_snapshots
		(timestamp, current_yield, two_ten_spread, volatility_bps, observation_count, session_count)
		VALUES (?,?,?,?,?,?)`,
		time.Now().Unix(), snap.CurrentYield, snap.TwoTenSpread,
		snap.VolatilityBps, snap.ObservationCount, snap.SessionCount,
	)
	return err
}

func (r *SQLiteRecorder) RecordSessionSummaries(summaries []SessionSummary) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().Unix()
	for _, s := range summaries {
		_, err := r.db.Exec(`INSERT INTO session_summaries
			(session_date, open_yield, close_yield, min_relative_yield, max_relative_yield, observation_count, updated_at)
			VALUES (?,?,?,?,?,?,?)
			ON CONFLICT(session_date) DO UPDATE SET
				open_yield=excluded.open_yield,
				close_yield=excluded.close_yield,
				min_relative_yield=excluded.min_relative_yield,
				max_relative_yield=excluded.max_relative_yield,
				observation_count=excluded.observation_count,
				updated_at=excluded.updated_at`,
			s.SessionDate.Format("2006-01-02"), s.OpenYield, s.CloseYield,
			s.MinRelativeYield, s.MaxRelativeYield, s.ObservationCount, now,
		)
		if err != nil {
			return fmt.Errorf("upsert session %s: %w", s.SessionDate.Format("2006-01-02"), err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
