package httpx

import (
	"encoding/json"

	"github.com/timlee789/pos-system/internal/print-service/core/domain/entity"
)

// The POS terminal, the kiosk and the admin screens were written at
// different times and serialize the same order three different ways. This
// file is the one place that heterogeneity is allowed to exist: the DTOs
// accept every historical shape, and toEntity resolves them into the
// canonical model before any formatting logic runs.

// PrintRequestDTO is the wire shape of POST /print.
type PrintRequestDTO struct {
	Items       []LineItemDTO `json:"items"`
	TableNumber string        `json:"tableNumber"`

	// TotalAmount stays a pointer: the clients distinguish "absent"
	// (no receipt wanted even with printReceipt set) from zero.
	TotalAmount *float64 `json:"totalAmount"`
	Subtotal    float64  `json:"subtotal"`
	Tax         float64  `json:"tax"`
	TipAmount   float64  `json:"tipAmount"`
	CardFee     float64  `json:"cardFee"`

	OrderType     string `json:"orderType"`
	EmployeeName  string `json:"employeeName"`
	PaymentMethod string `json:"paymentMethod"`

	PrintKitchen bool   `json:"printKitchen"`
	PrintReceipt bool   `json:"printReceipt"`
	Source       string `json:"source"`
	Date         string `json:"date"`
}

// LineItemDTO accepts the three name fields and the three modifier fields.
type LineItemDTO struct {
	Name         string  `json:"name"`
	PosName      string  `json:"posName"`  // POS menu editor
	PosNameSnake string  `json:"pos_name"` // admin/DB rows
	Quantity     int     `json:"quantity"`
	Price        float64 `json:"price"`
	TotalPrice   float64 `json:"totalPrice"`

	SelectedModifiers []ModifierDTO `json:"selectedModifiers"` // POS
	Options           []ModifierDTO `json:"options"`           // admin/DB
	Modifiers         []ModifierDTO `json:"modifiers"`         // legacy

	Notes string `json:"notes"`
}

// ModifierDTO is a tagged union: legacy clients send a bare string, newer
// ones an object with name/label/price.
type ModifierDTO struct {
	Name  string
	Price float64
}

func (m *ModifierDTO) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		m.Name = s
		m.Price = 0
		return nil
	}

	var obj struct {
		Name  string  `json:"name"`
		Label string  `json:"label"`
		Price float64 `json:"price"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	m.Name = obj.Name
	if m.Name == "" {
		m.Name = obj.Label
	}
	m.Price = obj.Price
	return nil
}

// toEntity normalizes the wire shape into the canonical model.
func (d PrintRequestDTO) toEntity() entity.PrintRequest {
	items := make([]entity.LineItem, 0, len(d.Items))
	for _, it := range d.Items {
		items = append(items, it.toEntity())
	}

	orderType := entity.OrderTypeToGo
	if d.OrderType == string(entity.OrderTypeDineIn) {
		orderType = entity.OrderTypeDineIn
	}

	source := entity.SourcePOS
	if d.Source == string(entity.SourceKiosk) {
		source = entity.SourceKiosk
	}

	return entity.PrintRequest{
		Items:         items,
		TableNumber:   d.TableNumber,
		TotalAmount:   d.TotalAmount,
		Subtotal:      d.Subtotal,
		Tax:           d.Tax,
		TipAmount:     d.TipAmount,
		CardFee:       d.CardFee,
		OrderType:     orderType,
		EmployeeName:  d.EmployeeName,
		PaymentMethod: d.PaymentMethod,
		PrintKitchen:  d.PrintKitchen,
		PrintReceipt:  d.PrintReceipt,
		Source:        source,
		Date:          d.Date,
	}
}

func (it LineItemDTO) toEntity() entity.LineItem {
	// Name priority: posName, pos_name, name — first non-empty wins.
	name := it.PosName
	if name == "" {
		name = it.PosNameSnake
	}
	if name == "" {
		name = it.Name
	}
	if name == "" {
		name = "Unknown"
	}

	qty := it.Quantity
	if qty <= 0 {
		qty = 1
	}

	// totalPrice wins unless it is absent or zero — zero means the client
	// never computed it and the unit price is the usable figure.
	price := it.TotalPrice
	if price == 0 {
		price = it.Price
	}

	// Modifier-field priority: first non-empty list wins.
	mods := it.SelectedModifiers
	if len(mods) == 0 {
		mods = it.Options
	}
	if len(mods) == 0 {
		mods = it.Modifiers
	}

	modifiers := make([]entity.Modifier, 0, len(mods))
	for _, m := range mods {
		modifiers = append(modifiers, entity.Modifier{Name: m.Name, Price: m.Price})
	}

	return entity.LineItem{
		Name:      name,
		Quantity:  qty,
		Price:     price,
		Modifiers: modifiers,
		Notes:     it.Notes,
	}
}

// PrintResponse is the body of POST /print. Success is always true — a
// printer-side fault must never read as a failed sale; Error carries the
// detail informationally.
type PrintResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// DrawerResponse is the body of POST /open-drawer.
type DrawerResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// JobResponse is one job-log row in GET /jobs/{requestID}.
type JobResponse struct {
	JobID     string `json:"job_id"`
	Target    string `json:"target"`
	IP        string `json:"ip"`
	Bytes     int    `json:"bytes"`
	Status    string `json:"status"`
	Error     string `json:"error,omitempty"`
	TraceID   string `json:"trace_id,omitempty"`
	CreatedAt string `json:"created_at"`
}

// ErrorResponse is the body of non-2xx answers (never used by /print).
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
