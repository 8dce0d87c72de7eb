package ports

import "context"

// Sender delivers one rendered print job to a printer identified by IP.
//
// Implementations log their own lifecycle; the returned error exists so the
// dispatcher can record per-job outcomes, and must never be surfaced to the
// POS/kiosk caller — a dead printer does not fail a sale.
type Sender interface {
	Send(ctx context.Context, ip string, payload []byte, label string) error
}
