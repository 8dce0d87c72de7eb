// Package dispatch turns one print request into independent printer jobs
// and fires them concurrently.
//
// The cardinal rule of this package: a printer problem never fails the
// request. Jobs target physically distinct devices, so one unreachable
// printer must neither block nor roll back another; outcomes are logged
// and recorded in the job log, and the caller always gets the full result
// vector with no error return.
package dispatch

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/timlee789/pos-system/internal/dispatch/joblog"
	"github.com/timlee789/pos-system/internal/print-service/core/domain/entity"
	"github.com/timlee789/pos-system/internal/print-service/core/ports"
	"github.com/timlee789/pos-system/internal/ticket"
)

// Job labels, used in logs and the job log. Fixed strings — the ops
// runbook greps for them.
const (
	LabelKitchen      = "Kitchen"
	LabelShake        = "Shake"
	LabelReceiptPOS   = "Receipt(POS)"
	LabelReceiptKiosk = "Receipt(Kiosk)"
	LabelCashDrawer   = "CashDrawer"
)

// Printers holds the four configured printer addresses.
type Printers struct {
	Kitchen      string
	Milkshake    string
	ReceiptPOS   string
	ReceiptKiosk string
}

// Result is the outcome of one job. Err is informational: it is never
// propagated as a request failure.
type Result struct {
	JobID string
	Label string
	IP    string
	Bytes int
	Err   error
}

// Dispatcher renders and delivers print jobs.
type Dispatcher struct {
	sender   ports.Sender
	printers Printers
	jobs     joblog.Repository // nil-safe: job logging skipped if nil
}

// New builds a Dispatcher. jobs may be nil — the per-job audit log is then
// skipped and outcomes are observable via slog only.
func New(sender ports.Sender, printers Printers, jobs joblog.Repository) *Dispatcher {
	return &Dispatcher{
		sender:   sender,
		printers: printers,
		jobs:     jobs,
	}
}

type job struct {
	label   string
	ip      string
	payload []byte
}

// Dispatch splits the request into kitchen/shake/receipt jobs, sends them
// all concurrently and waits for every send to settle. requestID groups
// the jobs in the job log.
func (d *Dispatcher) Dispatch(ctx context.Context, requestID string, req entity.PrintRequest) []Result {
	kitchenItems, shakeItems := splitItems(req.Items)
	now := time.Now()

	var jobs []job

	if req.PrintKitchen {
		if len(kitchenItems) > 0 {
			jobs = append(jobs, job{
				label:   LabelKitchen,
				ip:      d.printers.Kitchen,
				payload: ticket.Kitchen(kitchenItems, req.TableNumber, "KITCHEN", true, req.EmployeeName, now),
			})
		}
		if len(shakeItems) > 0 {
			jobs = append(jobs, job{
				label:   LabelShake,
				ip:      d.printers.Milkshake,
				payload: ticket.Kitchen(shakeItems, req.TableNumber, "MILKSHAKE", true, req.EmployeeName, now),
			})
		}
	}

	// A receipt needs a total; the clients omit it for kitchen-only
	// reprints.
	if req.PrintReceipt && req.TotalAmount != nil {
		label, ip := LabelReceiptPOS, d.printers.ReceiptPOS
		if req.Source == entity.SourceKiosk {
			label, ip = LabelReceiptKiosk, d.printers.ReceiptKiosk
		}
		jobs = append(jobs, job{label: label, ip: ip, payload: ticket.Receipt(req, now)})
	}

	results := make([]Result, len(jobs))
	var wg sync.WaitGroup
	for i, j := range jobs {
		wg.Add(1)
		go func(i int, j job) {
			defer wg.Done()
			results[i] = d.run(ctx, requestID, j)
		}(i, j)
	}
	wg.Wait()

	return results
}

// OpenDrawer sends the drawer-kick pulse to the POS receipt printer — the
// drawer is wired behind that printer, not a network endpoint of its own.
func (d *Dispatcher) OpenDrawer(ctx context.Context, requestID string) Result {
	return d.run(ctx, requestID, job{
		label:   LabelCashDrawer,
		ip:      d.printers.ReceiptPOS,
		payload: ticket.DrawerKick(),
	})
}

// run executes one job end to end: record QUEUED, send, record SENT or
// FAILED. The send error ends up in the Result and the logs, nowhere else.
func (d *Dispatcher) run(ctx context.Context, requestID string, j job) Result {
	id := uuid.NewString()
	d.record(ctx, joblog.NewEntry(ctx, id, requestID, j.label, j.ip, len(j.payload), joblog.StatusQueued, nil))

	err := d.sender.Send(ctx, j.ip, j.payload, j.label)
	if err != nil {
		slog.ErrorContext(ctx, "print job failed", "job_id", id, "label", j.label, "ip", j.ip, "error", err)
		d.record(ctx, joblog.NewEntry(ctx, id, requestID, j.label, j.ip, len(j.payload), joblog.StatusFailed, err))
	} else {
		d.record(ctx, joblog.NewEntry(ctx, id, requestID, j.label, j.ip, len(j.payload), joblog.StatusSent, nil))
	}

	return Result{JobID: id, Label: j.label, IP: j.ip, Bytes: len(j.payload), Err: err}
}

func (d *Dispatcher) record(ctx context.Context, entry *joblog.Entry) {
	if d.jobs == nil {
		return
	}
	if err := d.jobs.Save(ctx, entry); err != nil {
		slog.WarnContext(ctx, "job log write failed", "job_id", entry.JobID, "error", err)
	}
}

// splitItems partitions items between the kitchen and milkshake printers.
// Anything with "shake" in the name belongs to the shake station.
func splitItems(items []entity.LineItem) (kitchen, shakes []entity.LineItem) {
	for _, it := range items {
		if it.IsShake() {
			shakes = append(shakes, it)
		} else {
			kitchen = append(kitchen, it)
		}
	}
	return kitchen, shakes
}
