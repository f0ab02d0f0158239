// Package history records request outcomes in a local SQLite database.
// Only results are stored; nothing here allows resuming a download.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/samber/lo"
	_ "modernc.org/sqlite"

	"github.com/ytget/ytfetch/internal/model"
	"github.com/ytget/ytfetch/internal/platform"
)

// Database defaults
const (
	DriverName     = "sqlite"
	DatabaseFile   = "history.db"
	DefaultLimit   = 20
	pathsSeparator = "\n"
)

const schema = `
CREATE TABLE IF NOT EXISTS requests (
	id          TEXT PRIMARY KEY,
	url         TEXT NOT NULL,
	kind        TEXT NOT NULL,
	format      TEXT NOT NULL,
	collection  TEXT NOT NULL DEFAULT '',
	succeeded   INTEGER NOT NULL,
	failed      INTEGER NOT NULL,
	error_kind  TEXT NOT NULL DEFAULT '',
	error       TEXT NOT NULL DEFAULT '',
	paths       TEXT NOT NULL DEFAULT '',
	started_at  INTEGER NOT NULL,
	finished_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS requests_finished_at ON requests (finished_at);
`

// Entry is one recorded request
type Entry struct {
	RequestID  string
	URL        string
	Kind       model.Kind
	Format     model.OutputFormat
	Collection string
	Succeeded  int
	Failed     int
	ErrorKind  model.ErrorKind
	Error      string
	Paths      []string
	StartedAt  time.Time
	FinishedAt time.Time
}

// Outcome returns a short status for listings
func (e Entry) Outcome() string {
	switch {
	case e.ErrorKind != model.KindNone && e.Succeeded == 0:
		return string(e.ErrorKind)
	case e.Failed > 0:
		return fmt.Sprintf("%d of %d succeeded", e.Succeeded, e.Succeeded+e.Failed)
	default:
		return "ok"
	}
}

// Store persists entries in SQLite
type Store struct {
	db *sql.DB
}

// Open opens (and migrates) the database in dir
func Open(dir string) (*Store, error) {
	if err := platform.CreateDirectoryIfNotExists(dir); err != nil {
		return nil, err
	}
	return OpenDSN(filepath.Join(dir, DatabaseFile))
}

// OpenDSN opens a database by DSN, e.g. ":memory:" in tests
func OpenDSN(dsn string) (*Store, error) {
	db, err := sql.Open(DriverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}
	// a single connection keeps ":memory:" databases alive and writes serialized
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate history: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}

// Record stores the outcome of one request
func (s *Store) Record(ctx context.Context, summary model.Summary, runErr error) error {
	var errText string
	if runErr != nil {
		errText = runErr.Error()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO requests
			(id, url, kind, format, collection, succeeded, failed, error_kind, error, paths, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		summary.RequestID,
		summary.URL,
		string(summary.Kind),
		string(summary.Format),
		summary.Collection,
		len(summary.Succeeded),
		len(summary.Failed),
		string(model.KindOf(runErr)),
		errText,
		strings.Join(summary.OutputPaths(), pathsSeparator),
		summary.StartedAt.UnixMilli(),
		summary.FinishedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("record %s: %w", summary.RequestID, err)
	}
	return nil
}

// Recent returns up to limit entries, newest first
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, url, kind, format, collection, succeeded, failed, error_kind, error, paths, started_at, finished_at
		FROM requests
		ORDER BY finished_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e                 Entry
			kind, format      string
			errKind, paths    string
			started, finished int64
		)
		if err := rows.Scan(&e.RequestID, &e.URL, &kind, &format, &e.Collection,
			&e.Succeeded, &e.Failed, &errKind, &e.Error, &paths, &started, &finished); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		e.Kind = model.Kind(kind)
		e.Format = model.OutputFormat(format)
		e.ErrorKind = model.ErrorKind(errKind)
		e.Paths = lo.Compact(strings.Split(paths, pathsSeparator))
		e.StartedAt = time.UnixMilli(started)
		e.FinishedAt = time.UnixMilli(finished)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
