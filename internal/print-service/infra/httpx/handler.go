package httpx

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/timlee789/pos-system/internal/dispatch"
	"github.com/timlee789/pos-system/internal/dispatch/joblog"
	"github.com/timlee789/pos-system/internal/pkg/cache"
	"github.com/timlee789/pos-system/internal/print-service/infra/httpx/middlewares"
)

// idempotencyTTL is how long a seen idempotency key suppresses a repeat
// print. Long enough to swallow any double-tap or client retry, short
// enough that tomorrow's reuse of a key prints normally.
const idempotencyTTL = 10 * time.Minute

// Handler handles incoming HTTP requests from the POS and kiosk clients.
type Handler struct {
	dispatcher *dispatch.Dispatcher
	jobs       joblog.Reader // nil-safe: jobs endpoint 404s if nil
	cache      cache.Cache   // nil-safe: idempotency check skipped if nil
}

// NewHandler initializes the handler. jobs and idem may be nil — the job
// query endpoint and the duplicate guard are then disabled, printing works
// regardless.
func NewHandler(d *dispatch.Dispatcher, jobs joblog.Reader, idem cache.Cache) *Handler {
	return &Handler{
		dispatcher: d,
		jobs:       jobs,
		cache:      idem,
	}
}

// Print receives one print request, fans it out to the printers and waits
// for every send to settle.
//
// This endpoint never returns a non-2xx and never reports failure: a till
// must be able to finish a sale with every printer in the building on
// fire. Whatever goes wrong is logged, recorded in the job log, and
// answered with success.
func (h *Handler) Print(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	defer func() {
		if rec := recover(); rec != nil {
			slog.ErrorContext(ctx, "print handler panic", "panic", rec)
			writeJSON(w, http.StatusOK, PrintResponse{
				Success: true,
				Message: "Error handled",
				Error:   fmt.Sprint(rec),
			})
		}
	}()

	var dto PrintRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		slog.ErrorContext(ctx, "print request body unreadable", "error", err)
		writeJSON(w, http.StatusOK, PrintResponse{
			Success: true,
			Message: "Error handled",
			Error:   err.Error(),
		})
		return
	}

	requestID := middlewares.RequestIDFromContext(ctx)

	if h.duplicate(r) {
		slog.InfoContext(ctx, "duplicate print request ignored", "request_id", requestID)
		writeJSON(w, http.StatusOK, PrintResponse{Success: true, Message: "Duplicate request ignored"})
		return
	}

	req := dto.toEntity()
	slog.InfoContext(ctx, "print request received",
		"request_id", requestID,
		"table", req.TableNumber,
		"source", req.Source,
		"items", len(req.Items),
		"kitchen", req.PrintKitchen,
		"receipt", req.PrintReceipt,
	)

	results := h.dispatcher.Dispatch(ctx, requestID, req)

	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
		}
	}
	slog.InfoContext(ctx, "print request processed",
		"request_id", requestID, "jobs", len(results), "failed", failed)

	writeJSON(w, http.StatusOK, PrintResponse{Success: true, Message: "Processed successfully"})
}

// OpenDrawer fires the drawer-kick pulse at the POS receipt printer.
// The transport absorbs hardware faults, so the only failure this reports
// is one raised before the send was issued.
func (h *Handler) OpenDrawer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	defer func() {
		if rec := recover(); rec != nil {
			slog.ErrorContext(ctx, "open-drawer panic", "panic", rec)
			writeJSON(w, http.StatusOK, DrawerResponse{Success: false, Error: fmt.Sprint(rec)})
		}
	}()

	requestID := middlewares.RequestIDFromContext(ctx)
	slog.InfoContext(ctx, "open-drawer requested", "request_id", requestID)

	h.dispatcher.OpenDrawer(ctx, requestID)

	writeJSON(w, http.StatusOK, DrawerResponse{Success: true})
}

// ListJobs returns the job-log rows recorded for one print request.
// Unlike /print this is an operator surface and uses normal HTTP errors.
func (h *Handler) ListJobs(w http.ResponseWriter, r *http.Request) {
	requestID := chi.URLParam(r, "requestID")
	if requestID == "" {
		writeError(w, http.StatusBadRequest, "request_id_required", "")
		return
	}
	if h.jobs == nil {
		writeError(w, http.StatusNotFound, "job_log_disabled", "the job log is not configured")
		return
	}

	entries, err := h.jobs.ListByRequest(r.Context(), requestID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "job_log_error", err.Error())
		return
	}
	if len(entries) == 0 {
		writeError(w, http.StatusNotFound, "request_not_found", "")
		return
	}

	out := make([]JobResponse, len(entries))
	for i, e := range entries {
		out[i] = JobResponse{
			JobID:     e.JobID,
			Target:    e.Target,
			IP:        e.IP,
			Bytes:     e.Bytes,
			Status:    string(e.Status),
			Error:     e.Error,
			TraceID:   e.TraceID,
			CreatedAt: e.CreatedAt.Format(time.RFC3339Nano),
		}
	}
	writeJSON(w, http.StatusOK, out)
}

// Ping is the liveness probe the POS UI polls to show the "printer agent
// online" badge.
func (h *Handler) Ping(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// duplicate reports whether this request's idempotency key was already
// seen. Redis being down or unset counts as "not a duplicate" — the guard
// is best-effort and printing never depends on it.
func (h *Handler) duplicate(r *http.Request) bool {
	if h.cache == nil {
		return false
	}
	key := middlewares.IdempotencyKeyFromContext(r.Context())
	if key == "" {
		return false
	}

	ctx := r.Context()
	ck := h.cache.GenerateKey("print", key)
	seen, err := h.cache.Get(ctx, ck)
	if err != nil {
		slog.WarnContext(ctx, "idempotency check unavailable", "error", err)
		return false
	}
	if seen != "" {
		return true
	}

	if err := h.cache.Set(ctx, ck, middlewares.RequestIDFromContext(ctx), idempotencyTTL); err != nil {
		slog.WarnContext(ctx, "idempotency key not stored", "error", err)
	}
	return false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, ErrorResponse{
		Error:   code,
		Message: msg,
	})
}
