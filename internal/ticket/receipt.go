package ticket

import (
	"fmt"
	"time"

	"github.com/timlee789/pos-system/internal/print-service/core/domain/entity"
)

const (
	storeName      = "COLLEGIATE GRILL"
	receiptDivider = "--------------------------------"
)

// Receipt renders the full itemized customer receipt for a print request.
// All amounts arrive pre-computed; missing ones print as 0.00 rather than
// failing — a formatting nuance must never hold up a sale.
func Receipt(r entity.PrintRequest, now time.Time) []byte {
	orderNum := entity.TableToGo
	if r.IsDineIn() {
		orderNum = r.TableNumber
	}
	orderType := "To Go"
	if r.OrderType == entity.OrderTypeDineIn {
		orderType = "Dine In"
	}
	server := r.EmployeeName
	if server == "" {
		server = "Kiosk"
	}
	date := r.Date
	if date == "" {
		date = formatTicketDate(now)
	}

	b := &Builder{}

	b.Raw(escInit).Raw(escAlignCenter)
	b.Raw(escBoldOn).Line(storeName).Raw(escBoldOff).Raw(escNormal)
	b.Line("Customer Receipt")
	b.Raw(escDoubleHeight).Line("[ " + orderType + " ]").Raw(escNormal)
	b.Line("Date: " + date)
	b.Line("Server: " + server)
	b.Line(receiptDivider)

	b.Raw(escAlignLeft).Raw(escDoubleHeight).Raw(escBoldOn)
	if orderNum == entity.TableToGo {
		b.Line("Order Type: To Go")
	} else {
		b.Line("Order #: " + orderNum)
	}
	b.Raw(escNormal).Raw(escBoldOff).Line(receiptDivider)

	for _, item := range r.Items {
		b.Raw(escBoldOn).Text(fmt.Sprintf("%d %s", item.Quantity, item.Name)).Raw(escBoldOff).Text("\n")
		for _, mod := range item.Modifiers {
			b.Line(fmt.Sprintf("   + %s ($%.2f)", mod.Name, mod.Price))
		}
		b.Raw(escAlignRight).Line(fmt.Sprintf("$%.2f", item.Price)).Raw(escAlignLeft)
	}

	b.Line(receiptDivider)
	b.Raw(escAlignRight)
	b.Line(fmt.Sprintf("Subtotal: $%.2f", r.Subtotal))
	b.Line(fmt.Sprintf("Tax: $%.2f", r.Tax))
	if r.CardFee > 0 {
		b.Line(fmt.Sprintf("Card Fee (3%%): $%.2f", r.CardFee))
	}
	if r.TipAmount > 0 {
		b.Raw(escBoldOn).Line(fmt.Sprintf("Tip: $%.2f", r.TipAmount)).Raw(escBoldOff)
	}
	b.Line(receiptDivider)

	total := 0.0
	if r.TotalAmount != nil {
		total = *r.TotalAmount
	}
	b.Raw(escDoubleHeight).Raw(escBoldOn).Line(fmt.Sprintf("TOTAL: $%.2f", total)).Raw(escNormal).Raw(escBoldOff)

	if r.PaymentMethod != "" {
		b.Raw(escAlignLeft).Raw(escNormal).Line("Payment: " + r.PaymentMethod).Raw(escAlignCenter)
	}

	b.Raw(escAlignCenter).Text("\n\nThank You!\n\n\n\n\n")
	b.Raw(escCutPartial)

	return b.Bytes()
}
