// Package entity holds the canonical order model used by the ticket
// formatters and the dispatcher.
//
// The POS and kiosk clients send the same order under several historical
// JSON shapes (three possible name fields, three possible modifier fields,
// modifiers as strings or objects). All of that is resolved at the HTTP
// boundary; from here on there is exactly one name per item and one
// modifier list per item.
package entity

import "strings"

// OrderType distinguishes an eat-in order from a to-go order.
type OrderType string

const (
	OrderTypeDineIn OrderType = "dine_in"
	OrderTypeToGo   OrderType = "to_go"
)

// Source is the client channel a print request came from. It selects which
// physical receipt printer the receipt is sent to.
type Source string

const (
	SourcePOS   Source = "pos"
	SourceKiosk Source = "kiosk"
)

// TableToGo is the sentinel table value meaning "no table, to-go order".
const TableToGo = "To Go"

// Modifier is a named price adjustment attached to a line item.
// Name may be empty (a nameless legacy modifier); the kitchen formatter
// substitutes a placeholder, the receipt prints it as-is.
type Modifier struct {
	Name  string
	Price float64
}

// LineItem is one purchased product, already normalized: Name is the
// resolved display name, Quantity is at least 1, Price is the resolved
// line total.
type LineItem struct {
	Name      string
	Quantity  int
	Price     float64
	Modifiers []Modifier
	Notes     string
}

// IsShake reports whether the item belongs on the milkshake printer.
// The menu names these "Milkshake ..." or "... Shake"; match both.
func (it LineItem) IsShake() bool {
	name := strings.ToLower(it.Name)
	return strings.Contains(name, "milkshake") || strings.Contains(name, "shake")
}

// PrintRequest is one unit of work for the dispatcher.
type PrintRequest struct {
	Items       []LineItem
	TableNumber string

	// TotalAmount is a pointer because the clients distinguish "absent"
	// from zero: a receipt is only printed when the total was sent.
	TotalAmount *float64
	Subtotal    float64
	Tax         float64
	TipAmount   float64
	CardFee     float64

	OrderType     OrderType
	EmployeeName  string
	PaymentMethod string

	PrintKitchen bool
	PrintReceipt bool
	Source       Source

	// Date is an optional pre-formatted date string; empty means
	// "format the current time at render time".
	Date string
}

// OrderNumber returns the ticket order number: the table number when one
// is set, "00" for to-go orders (no table).
func (r PrintRequest) OrderNumber() string {
	if r.TableNumber != "" && r.TableNumber != TableToGo {
		return r.TableNumber
	}
	return "00"
}

// IsDineIn reports whether a real table number is attached. Kitchen
// tickets derive Dine In / To Go from the table, not from OrderType.
func (r PrintRequest) IsDineIn() bool {
	return r.TableNumber != "" && r.TableNumber != TableToGo
}
