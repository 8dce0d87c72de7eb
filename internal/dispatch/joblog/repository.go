package joblog

import "context"

// Repository is the port for persisting job log entries. The dispatcher
// depends on this abstraction, not on SQLite directly, so tests can use an
// in-memory fake and deployments without a writable disk can pass nil.
type Repository interface {
	// Save appends one entry. The log is append-only, never an upsert.
	Save(ctx context.Context, entry *Entry) error
}

// Reader is the query side, used by the HTTP jobs endpoint.
type Reader interface {
	// ListByRequest returns every entry recorded for one print request,
	// oldest first.
	ListByRequest(ctx context.Context, requestID string) ([]Entry, error)
}
