package dispatch

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timlee789/pos-system/internal/dispatch/joblog"
	"github.com/timlee789/pos-system/internal/print-service/core/domain/entity"
)

type sentJob struct {
	ip      string
	label   string
	payload []byte
}

// fakeSender records every send and can be told to fail per IP.
type fakeSender struct {
	mu     sync.Mutex
	sent   []sentJob
	failIP map[string]error
}

func (f *fakeSender) Send(_ context.Context, ip string, payload []byte, label string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentJob{ip: ip, label: label, payload: payload})
	if err, ok := f.failIP[ip]; ok {
		return err
	}
	return nil
}

func (f *fakeSender) byLabel(label string) (sentJob, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, j := range f.sent {
		if j.label == label {
			return j, true
		}
	}
	return sentJob{}, false
}

type memJobLog struct {
	mu      sync.Mutex
	entries []*joblog.Entry
}

func (m *memJobLog) Save(_ context.Context, e *joblog.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, e)
	return nil
}

func (m *memJobLog) byStatus(status joblog.Status) []*joblog.Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*joblog.Entry
	for _, e := range m.entries {
		if e.Status == status {
			out = append(out, e)
		}
	}
	return out
}

var testPrinters = Printers{
	Kitchen:      "192.168.50.3",
	Milkshake:    "192.168.50.19",
	ReceiptPOS:   "192.168.50.201",
	ReceiptKiosk: "192.168.50.202",
}

func f64(v float64) *float64 { return &v }

func TestDispatchRoutesKitchenAndShake(t *testing.T) {
	sender := &fakeSender{}
	d := New(sender, testPrinters, nil)

	req := entity.PrintRequest{
		PrintKitchen: true,
		TableNumber:  "5",
		Items: []entity.LineItem{
			{Name: "Burger", Quantity: 1},
			{Name: "Vanilla Milkshake", Quantity: 1},
		},
	}

	results := d.Dispatch(context.Background(), "req-1", req)
	require.Len(t, results, 2)

	kitchen, ok := sender.byLabel(LabelKitchen)
	require.True(t, ok)
	assert.Equal(t, testPrinters.Kitchen, kitchen.ip)
	assert.Contains(t, string(kitchen.payload), "KITCHEN\n")
	assert.Contains(t, string(kitchen.payload), "Burger\n")
	assert.NotContains(t, string(kitchen.payload), "Milkshake")

	shake, ok := sender.byLabel(LabelShake)
	require.True(t, ok)
	assert.Equal(t, testPrinters.Milkshake, shake.ip)
	assert.Contains(t, string(shake.payload), "MILKSHAKE\n")
	assert.Contains(t, string(shake.payload), "Vanilla Milkshake\n")
}

func TestDispatchNoFlagsSendsNothing(t *testing.T) {
	sender := &fakeSender{}
	d := New(sender, testPrinters, nil)

	req := entity.PrintRequest{
		TableNumber: "5",
		Items:       []entity.LineItem{{Name: "Burger", Quantity: 1}},
		TotalAmount: f64(10),
	}

	results := d.Dispatch(context.Background(), "req-1", req)
	assert.Empty(t, results)
	assert.Empty(t, sender.sent)
}

func TestDispatchReceiptRouting(t *testing.T) {
	tests := []struct {
		name      string
		source    entity.Source
		wantLabel string
		wantIP    string
	}{
		{"pos order", entity.SourcePOS, LabelReceiptPOS, testPrinters.ReceiptPOS},
		{"kiosk order", entity.SourceKiosk, LabelReceiptKiosk, testPrinters.ReceiptKiosk},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sender := &fakeSender{}
			d := New(sender, testPrinters, nil)

			req := entity.PrintRequest{
				PrintReceipt: true,
				Source:       tc.source,
				TableNumber:  "5",
				OrderType:    entity.OrderTypeDineIn,
				Items:        []entity.LineItem{{Name: "Burger", Quantity: 1, Price: 10}},
				Subtotal:     10,
				TotalAmount:  f64(10),
			}

			results := d.Dispatch(context.Background(), "req-1", req)
			require.Len(t, results, 1)
			assert.Equal(t, tc.wantLabel, results[0].Label)
			assert.Equal(t, tc.wantIP, results[0].IP)

			job, ok := sender.byLabel(tc.wantLabel)
			require.True(t, ok)
			assert.Contains(t, string(job.payload), "TOTAL: $10.00\n")
		})
	}
}

func TestDispatchReceiptRequiresTotal(t *testing.T) {
	sender := &fakeSender{}
	d := New(sender, testPrinters, nil)

	req := entity.PrintRequest{
		PrintReceipt: true,
		TableNumber:  "5",
		Items:        []entity.LineItem{{Name: "Burger", Quantity: 1}},
	}

	results := d.Dispatch(context.Background(), "req-1", req)
	assert.Empty(t, results)
	assert.Empty(t, sender.sent)
}

func TestDispatchFailureIsolation(t *testing.T) {
	sender := &fakeSender{
		failIP: map[string]error{testPrinters.Kitchen: errors.New("connection refused")},
	}
	log := &memJobLog{}
	d := New(sender, testPrinters, log)

	req := entity.PrintRequest{
		PrintKitchen: true,
		PrintReceipt: true,
		TableNumber:  "5",
		OrderType:    entity.OrderTypeDineIn,
		Items:        []entity.LineItem{{Name: "Burger", Quantity: 1, Price: 10}},
		Subtotal:     10,
		TotalAmount:  f64(10),
	}

	results := d.Dispatch(context.Background(), "req-7", req)
	require.Len(t, results, 2)

	byLabel := map[string]Result{}
	for _, r := range results {
		byLabel[r.Label] = r
	}
	assert.Error(t, byLabel[LabelKitchen].Err)
	assert.NoError(t, byLabel[LabelReceiptPOS].Err)

	// Both jobs were attempted; the dead kitchen printer did not block
	// the receipt.
	assert.Len(t, sender.sent, 2)

	queued := log.byStatus(joblog.StatusQueued)
	assert.Len(t, queued, 2)
	failed := log.byStatus(joblog.StatusFailed)
	require.Len(t, failed, 1)
	assert.Equal(t, LabelKitchen, failed[0].Target)
	assert.Equal(t, "connection refused", failed[0].Error)
	sent := log.byStatus(joblog.StatusSent)
	require.Len(t, sent, 1)
	assert.Equal(t, LabelReceiptPOS, sent[0].Target)
	assert.Equal(t, "req-7", sent[0].RequestID)
}

func TestOpenDrawer(t *testing.T) {
	sender := &fakeSender{}
	d := New(sender, testPrinters, nil)

	res := d.OpenDrawer(context.Background(), "req-1")
	assert.Equal(t, LabelCashDrawer, res.Label)
	assert.Equal(t, testPrinters.ReceiptPOS, res.IP)
	assert.NoError(t, res.Err)

	job, ok := sender.byLabel(LabelCashDrawer)
	require.True(t, ok)
	assert.True(t, bytes.Equal(job.payload, []byte{0x1b, 0x70, 0x00, 0x19, 0xfa}))
}

func TestSplitItems(t *testing.T) {
	items := []entity.LineItem{
		{Name: "Burger"},
		{Name: "Chocolate Shake"},
		{Name: "MILKSHAKE deluxe"},
		{Name: "Fries"},
	}
	kitchen, shakes := splitItems(items)
	require.Len(t, kitchen, 2)
	require.Len(t, shakes, 2)
	assert.Equal(t, "Burger", kitchen[0].Name)
	assert.Equal(t, "Chocolate Shake", shakes[0].Name)
}

func TestDispatchSettlesWithinTimeout(t *testing.T) {
	sender := &fakeSender{}
	d := New(sender, testPrinters, nil)

	req := entity.PrintRequest{
		PrintKitchen: true,
		TableNumber:  "5",
		Items:        []entity.LineItem{{Name: "Burger", Quantity: 1}},
	}

	done := make(chan struct{})
	go func() {
		d.Dispatch(context.Background(), "req-1", req)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("dispatch did not settle")
	}
}
