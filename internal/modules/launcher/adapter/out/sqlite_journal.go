package out

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"threadsuite/internal/modules/launcher/domain"
	launcherout "threadsuite/internal/modules/launcher/port/out"

	_ "modernc.org/sqlite"
)

const timeLayout = "2006-01-02T15:04:05.000Z07:00"

type SQLiteLaunchJournal struct {
	db *sql.DB
}

func NewSQLiteLaunchJournal(dbPath string) (launcherout.LaunchJournal, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	// Both stores share one database file; wait out the other writer.
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}
	journal := &SQLiteLaunchJournal{db: db}
	if err := journal.ensureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return journal, nil
}

func (j *SQLiteLaunchJournal) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS launches (
  id TEXT PRIMARY KEY,
  target TEXT NOT NULL,
  resolved_path TEXT,
  started INTEGER NOT NULL,
  pid INTEGER,
  error TEXT,
  at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_launches_at ON launches(at);
`
	if _, err := j.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create launches table: %w", err)
	}
	return nil
}

func (j *SQLiteLaunchJournal) Record(ctx context.Context, r domain.LaunchRecord) error {
	const stmt = `
INSERT INTO launches (id, target, resolved_path, started, pid, error, at)
VALUES (?, ?, ?, ?, ?, ?, ?);
`
	started := 0
	if r.Started {
		started = 1
	}
	_, err := j.db.ExecContext(ctx, stmt,
		r.ID,
		r.Target,
		r.ResolvedPath,
		started,
		r.PID,
		r.Error,
		r.At.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("insert launch: %w", err)
	}
	return nil
}

func (j *SQLiteLaunchJournal) Recent(ctx context.Context, limit int) ([]domain.LaunchRecord, error) {
	const q = `
SELECT id, target, COALESCE(resolved_path, ''), started, COALESCE(pid, 0), COALESCE(error, ''), at
FROM launches
ORDER BY at DESC, rowid DESC
LIMIT ?;
`
	rows, err := j.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("query launches: %w", err)
	}
	defer rows.Close()

	var out []domain.LaunchRecord
	for rows.Next() {
		var (
			r       domain.LaunchRecord
			started int
			at      string
		)
		if err := rows.Scan(&r.ID, &r.Target, &r.ResolvedPath, &started, &r.PID, &r.Error, &at); err != nil {
			return nil, fmt.Errorf("scan launch: %w", err)
		}
		r.Started = started != 0
		if r.At, err = time.Parse(timeLayout, at); err != nil {
			return nil, fmt.Errorf("parse launch time: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate launches: %w", err)
	}
	return out, nil
}
