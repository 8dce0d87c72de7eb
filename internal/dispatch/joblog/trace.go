package joblog

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/trace"
)

// TraceInfo holds the OTel identifiers extracted from a context.
type TraceInfo struct {
	TraceID string
	SpanID  string
}

// ExtractTraceInfo reads the active OpenTelemetry span from ctx and returns
// its trace_id and span_id as hex strings. Both are empty when no span is
// active (e.g. in unit tests); callers store them as-is.
func ExtractTraceInfo(ctx context.Context) TraceInfo {
	sc := trace.SpanFromContext(ctx).SpanContext()
	if !sc.IsValid() {
		return TraceInfo{}
	}
	return TraceInfo{
		TraceID: sc.TraceID().String(),
		SpanID:  sc.SpanID().String(),
	}
}

// NewEntry builds an Entry with trace info extracted from ctx and the
// current UTC timestamp.
func NewEntry(ctx context.Context, jobID, requestID, target, ip string, bytes int, status Status, err error) *Entry {
	ti := ExtractTraceInfo(ctx)

	errMsg := ""
	if err != nil {
		errMsg = err.Error()
	}

	return &Entry{
		JobID:     jobID,
		RequestID: requestID,
		Target:    target,
		IP:        ip,
		Bytes:     bytes,
		Status:    status,
		Error:     errMsg,
		TraceID:   ti.TraceID,
		SpanID:    ti.SpanID,
		CreatedAt: time.Now().UTC(),
	}
}
