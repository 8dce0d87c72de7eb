// Package sqlite provides a SQLite-backed implementation of the print-job
// log.
//
// WAL mode is enabled on Open so that readers never block writers and vice
// versa — the dispatcher goroutines write while the HTTP jobs endpoint may
// be reading.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/timlee789/pos-system/internal/dispatch/joblog"

	// Register the pure-Go SQLite driver.
	// modernc.org/sqlite avoids CGO, which keeps the service trivially
	// cross-compilable for the shop's till hardware.
	_ "modernc.org/sqlite"
)

// schema is the DDL executed once on startup.
// The table is append-only: each row is an immutable event in a print
// job's lifecycle (QUEUED, then SENT or FAILED).
const schema = `
CREATE TABLE IF NOT EXISTS print_jobs (
    -- Surrogate primary key — auto-incremented by SQLite.
    id          INTEGER PRIMARY KEY AUTOINCREMENT,

    -- One rendered buffer sent to one printer.
    job_id      TEXT    NOT NULL,

    -- Groups the jobs of a single /print request.
    request_id  TEXT    NOT NULL DEFAULT '',

    -- Job label: Kitchen, Shake, Receipt(POS), Receipt(Kiosk), CashDrawer.
    target      TEXT    NOT NULL,

    -- Printer address the job was sent to.
    ip          TEXT    NOT NULL,

    -- Rendered payload size in bytes.
    bytes       INTEGER NOT NULL DEFAULT 0,

    -- Lifecycle state at the time this row was written.
    status      TEXT    NOT NULL,

    -- Transport failure detail for FAILED rows.
    error       TEXT    NOT NULL DEFAULT '',

    -- W3C trace/span ids from the active OTel span, for jumping from a
    -- failed job straight to its trace.
    trace_id    TEXT    NOT NULL DEFAULT '',
    span_id     TEXT    NOT NULL DEFAULT '',

    -- Wall-clock timestamp (RFC3339 stored as TEXT, SQLite idiom).
    created_at  TEXT    NOT NULL
);

-- The common operator query: "what happened to request X".
CREATE INDEX IF NOT EXISTS idx_print_jobs_request_id ON print_jobs(request_id, created_at);

-- Lifecycle rows for one job.
CREATE INDEX IF NOT EXISTS idx_print_jobs_job_id ON print_jobs(job_id);
`

// Repository is the SQLite implementation of joblog.Repository and
// joblog.Reader.
type Repository struct {
	db *sql.DB
}

// Open opens (or creates) the SQLite database at the given path and applies
// the schema.
//
//	repo, err := sqlite.Open("./data/print-jobs.db")
func Open(path string) (*Repository, error) {
	// The pure-Go driver uses _pragma query parameters to configure
	// connection state. busy_timeout waits for locks instead of failing.
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)

	// Use "sqlite", not "sqlite3", for the modernc driver.
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %q: %w", path, err)
	}

	// SQLite performs best with a single writer connection.
	db.SetMaxOpenConns(1)

	if err := applySchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Repository{db: db}, nil
}

// Close releases the database connection. Call it with defer in main().
func (r *Repository) Close() error {
	return r.db.Close()
}

// Save inserts a new job log entry. Safe to call concurrently.
func (r *Repository) Save(ctx context.Context, entry *joblog.Entry) error {
	const q = `
		INSERT INTO print_jobs
			(job_id, request_id, target, ip, bytes, status, error, trace_id, span_id, created_at)
		VALUES
			(?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, q,
		entry.JobID,
		entry.RequestID,
		entry.Target,
		entry.IP,
		entry.Bytes,
		string(entry.Status),
		entry.Error,
		entry.TraceID,
		entry.SpanID,
		entry.CreatedAt.UTC().Format("2006-01-02T15:04:05.999999999Z"),
	)
	if err != nil {
		return fmt.Errorf("sqlite: save job log for %q: %w", entry.JobID, err)
	}
	return nil
}

// ListByRequest returns every entry for one print request, oldest first.
func (r *Repository) ListByRequest(ctx context.Context, requestID string) ([]joblog.Entry, error) {
	const q = `
		SELECT job_id, request_id, target, ip, bytes, status, error,
		       trace_id, span_id, created_at
		FROM   print_jobs
		WHERE  request_id = ?
		ORDER  BY created_at ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, q, requestID)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list jobs for %q: %w", requestID, err)
	}
	defer rows.Close()

	var entries []joblog.Entry
	for rows.Next() {
		var e joblog.Entry
		var createdAt string
		if err := rows.Scan(
			&e.JobID,
			&e.RequestID,
			&e.Target,
			&e.IP,
			&e.Bytes,
			&e.Status,
			&e.Error,
			&e.TraceID,
			&e.SpanID,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scan job row: %w", err)
		}
		if e.CreatedAt, err = parseRFC3339(createdAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: list jobs for %q: %w", requestID, err)
	}
	return entries, nil
}

// applySchema runs the DDL statements once. Idempotent due to IF NOT EXISTS.
func applySchema(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("sqlite: apply schema: %w", err)
	}
	return nil
}
