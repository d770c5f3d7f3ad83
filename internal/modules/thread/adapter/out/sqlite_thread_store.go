package out

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"threadsuite/internal/modules/thread/domain"
	threadout "threadsuite/internal/modules/thread/port/out"
	apperrors "threadsuite/internal/platform/errors"

	_ "modernc.org/sqlite"
)

const timeLayout = "2006-01-02T15:04:05Z07:00"

type SQLiteThreadStore struct {
	db *sql.DB
}

func NewSQLiteThreadStore(dbPath string) (threadout.ThreadStore, error) {
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
	store := &SQLiteThreadStore{db: db}
	if err := store.ensureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLiteThreadStore) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS threads (
  id TEXT PRIMARY KEY,
  title TEXT NOT NULL,
  slug TEXT NOT NULL,
  max_length INTEGER NOT NULL,
  numbered INTEGER NOT NULL,
  hashtags TEXT NOT NULL,
  created_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS thread_segments (
  thread_id TEXT NOT NULL REFERENCES threads(id) ON DELETE CASCADE,
  idx INTEGER NOT NULL,
  text TEXT NOT NULL,
  body TEXT NOT NULL,
  is_final INTEGER NOT NULL,
  hard_break INTEGER NOT NULL,
  PRIMARY KEY (thread_id, idx)
);
CREATE INDEX IF NOT EXISTS idx_threads_created ON threads(created_at);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create thread tables: %w", err)
	}
	return nil
}

func (s *SQLiteThreadStore) Save(ctx context.Context, thread domain.Thread) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin thread tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const insertThread = `
INSERT INTO threads (id, title, slug, max_length, numbered, hashtags, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?);
`
	if _, err := tx.ExecContext(ctx, insertThread,
		thread.ID,
		thread.Title,
		thread.Slug,
		thread.MaxLength,
		boolInt(thread.Numbered),
		strings.Join(thread.Hashtags, " "),
		thread.CreatedAt.UTC().Format(timeLayout),
	); err != nil {
		return fmt.Errorf("insert thread: %w", err)
	}

	const insertSegment = `
INSERT INTO thread_segments (thread_id, idx, text, body, is_final, hard_break)
VALUES (?, ?, ?, ?, ?, ?);
`
	for _, seg := range thread.Segments {
		if _, err := tx.ExecContext(ctx, insertSegment,
			thread.ID,
			seg.Index,
			seg.Text,
			seg.Body,
			boolInt(seg.IsFinal),
			boolInt(seg.HardBreak),
		); err != nil {
			return fmt.Errorf("insert segment %d: %w", seg.Index, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit thread: %w", err)
	}
	return nil
}

func (s *SQLiteThreadStore) Get(ctx context.Context, id string) (domain.Thread, error) {
	const qThread = `SELECT id, title, slug, max_length, numbered, hashtags, created_at FROM threads WHERE id = ?`
	var (
		thread    domain.Thread
		numbered  int
		hashtags  string
		createdAt string
	)
	err := s.db.QueryRowContext(ctx, qThread, id).Scan(
		&thread.ID, &thread.Title, &thread.Slug, &thread.MaxLength, &numbered, &hashtags, &createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Thread{}, fmt.Errorf("thread %s: %w", id, apperrors.ErrNotFound)
	}
	if err != nil {
		return domain.Thread{}, fmt.Errorf("query thread: %w", err)
	}
	thread.Numbered = numbered != 0
	thread.Hashtags = strings.Fields(hashtags)
	if thread.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
		return domain.Thread{}, fmt.Errorf("parse created_at: %w", err)
	}

	const qSegments = `SELECT idx, text, body, is_final, hard_break FROM thread_segments WHERE thread_id = ? ORDER BY idx`
	rows, err := s.db.QueryContext(ctx, qSegments, id)
	if err != nil {
		return domain.Thread{}, fmt.Errorf("query segments: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var seg domain.Segment
		var isFinal, hardBreak int
		if err := rows.Scan(&seg.Index, &seg.Text, &seg.Body, &isFinal, &hardBreak); err != nil {
			return domain.Thread{}, fmt.Errorf("scan segment: %w", err)
		}
		seg.IsFinal = isFinal != 0
		seg.HardBreak = hardBreak != 0
		thread.Segments = append(thread.Segments, seg)
	}
	if err := rows.Err(); err != nil {
		return domain.Thread{}, fmt.Errorf("iterate segments: %w", err)
	}
	return thread, nil
}

func (s *SQLiteThreadStore) Recent(ctx context.Context, limit int) ([]domain.ThreadSummary, error) {
	const q = `
SELECT t.id, t.title, t.slug, t.created_at,
  (SELECT COUNT(*) FROM thread_segments s WHERE s.thread_id = t.id)
FROM threads t
ORDER BY t.created_at DESC, t.rowid DESC
LIMIT ?;
`
	rows, err := s.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("query threads: %w", err)
	}
	defer rows.Close()

	var out []domain.ThreadSummary
	for rows.Next() {
		var item domain.ThreadSummary
		var createdAt string
		if err := rows.Scan(&item.ID, &item.Title, &item.Slug, &createdAt, &item.SegmentCount); err != nil {
			return nil, fmt.Errorf("scan thread: %w", err)
		}
		if item.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
			return nil, fmt.Errorf("parse created_at: %w", err)
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate threads: %w", err)
	}
	return out, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
