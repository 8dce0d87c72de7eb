// Package joblog defines the domain types for the print-job log.
//
// The job log is a durable audit trail of every job the dispatcher fires.
// The POS always sees success — hardware faults are absorbed by design —
// so this log is the only place an operator can see that the kitchen
// printer has been timing out all evening, and correlate a missed ticket
// with its trace.
package joblog

import "time"

// Status is the lifecycle state of one print job.
type Status string

const (
	StatusQueued Status = "QUEUED"
	StatusSent   Status = "SENT"
	StatusFailed Status = "FAILED"
)

// Entry is a single row in the print_jobs table. It captures one job at
// one point in its lifecycle; the table is append-only.
type Entry struct {
	// JobID uniquely identifies one rendered buffer sent to one printer.
	JobID string

	// RequestID groups the jobs of a single /print request so the
	// per-request status vector can be queried back.
	RequestID string

	// Target is the job label ("Kitchen", "Shake", "Receipt(POS)",
	// "Receipt(Kiosk)", "CashDrawer").
	Target string

	// IP is the printer address the job was sent to.
	IP string

	// Bytes is the rendered payload size.
	Bytes int

	// Status is the lifecycle state at the time this row was written.
	Status Status

	// Error holds the transport failure detail for FAILED rows.
	Error string

	// TraceID/SpanID come from the OpenTelemetry span active when the row
	// was written, so a log row links straight to the distributed trace.
	TraceID string
	SpanID  string

	// CreatedAt is the wall-clock time of this log entry.
	CreatedAt time.Time
}
