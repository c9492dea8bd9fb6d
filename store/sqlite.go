package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/foomo/exporter/vo"
	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore persists a crawl, so that it can be exported later on
type SQLiteStore struct {
	db     *sql.DB
	insert *sql.Stmt
}

const schema = `
CREATE TABLE IF NOT EXISTS visited_resources (
	seq          INTEGER PRIMARY KEY AUTOINCREMENT,
	uq_id        TEXT NOT NULL UNIQUE,
	url          TEXT NOT NULL,
	status_code  INTEGER NOT NULL,
	content_type INTEGER NOT NULL,
	is_external  INTEGER NOT NULL DEFAULT 0,
	source_uq_id TEXT NOT NULL DEFAULT '',
	source_attr  INTEGER NOT NULL DEFAULT 0,
	size         INTEGER NOT NULL DEFAULT 0,
	duration_ns  INTEGER NOT NULL DEFAULT 0,
	body         TEXT
)`

// OpenSQLite opens or creates a crawl database file
func OpenSQLite(dsn string) (*SQLiteStore, error) {
	db, errOpen := sql.Open("sqlite3", dsn)
	if errOpen != nil {
		return nil, fmt.Errorf("open %s: %w", dsn, errOpen)
	}
	s, errStore := NewSQLiteStore(db)
	if errStore != nil {
		db.Close()
		return nil, errStore
	}
	return s, nil
}

func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("create schema: %w", err)
	}
	insert, errPrepare := db.Prepare(`
		INSERT INTO visited_resources
			(uq_id, url, status_code, content_type, is_external, source_uq_id, source_attr, size, duration_ns, body)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(uq_id) DO UPDATE SET
			url = excluded.url,
			status_code = excluded.status_code,
			content_type = excluded.content_type,
			is_external = excluded.is_external,
			source_uq_id = excluded.source_uq_id,
			source_attr = excluded.source_attr,
			size = excluded.size,
			duration_ns = excluded.duration_ns,
			body = excluded.body
	`)
	if errPrepare != nil {
		return nil, fmt.Errorf("prepare statements: %w", errPrepare)
	}
	return &SQLiteStore{db: db, insert: insert}, nil
}

// Save a resource, a nil body means there was none
func (s *SQLiteStore) Save(ctx context.Context, res vo.VisitedResource, body *string) error {
	nullBody := sql.NullString{}
	if body != nil {
		nullBody = sql.NullString{String: *body, Valid: true}
	}
	_, err := s.insert.ExecContext(
		ctx,
		res.UqID,
		res.URL,
		res.StatusCode,
		int(res.ContentType),
		res.IsExternal,
		res.SourceUqID,
		int(res.SourceAttr),
		res.Size,
		int64(res.Duration),
		nullBody,
	)
	if err != nil {
		return fmt.Errorf("save %s: %w", res.URL, err)
	}
	return nil
}

// Load reads the whole crawl into memory, keeping the crawl order
func (s *SQLiteStore) Load(ctx context.Context) (*MemoryStore, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT uq_id, url, status_code, content_type, is_external, source_uq_id, source_attr, size, duration_ns, body
		FROM visited_resources ORDER BY seq
	`)
	if err != nil {
		return nil, fmt.Errorf("load resources: %w", err)
	}
	defer rows.Close()

	m := NewMemoryStore()
	for rows.Next() {
		var (
			res         vo.VisitedResource
			contentType int
			sourceAttr  int
			durationNs  int64
			body        sql.NullString
		)
		if err := rows.Scan(
			&res.UqID,
			&res.URL,
			&res.StatusCode,
			&contentType,
			&res.IsExternal,
			&res.SourceUqID,
			&sourceAttr,
			&res.Size,
			&durationNs,
			&body,
		); err != nil {
			return nil, fmt.Errorf("scan resource: %w", err)
		}
		res.ContentType = vo.ContentType(contentType)
		res.SourceAttr = vo.SourceAttr(sourceAttr)
		res.Duration = time.Duration(durationNs)
		m.Add(res, body.String, body.Valid)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load resources: %w", err)
	}
	return m, nil
}

func (s *SQLiteStore) Close() error {
	if s.insert != nil {
		s.insert.Close()
	}
	return s.db.Close()
}
