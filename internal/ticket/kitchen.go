package ticket

import (
	"fmt"
	"strings"
	"time"

	"github.com/timlee789/pos-system/internal/print-service/core/domain/entity"
)

const kitchenDivider = "----------------"

// Kitchen renders a kitchen or shake ticket for the given items.
//
// title is the printer line ("KITCHEN" or "MILKSHAKE"). The order number is
// the table number when one is set; to-go orders print as "00". The header
// and modifiers use the printer's red ribbon so they stand out on the line.
func Kitchen(items []entity.LineItem, tableNumber, title string, useAbbreviations bool, employeeName string, now time.Time) []byte {
	orderNum := "00"
	orderType := "To Go"
	if tableNumber != "" && tableNumber != entity.TableToGo {
		orderNum = tableNumber
		orderType = "Dine In"
	}
	server := employeeName
	if server == "" {
		server = "Kiosk"
	}

	b := &Builder{}

	b.Raw(starInit).Raw(starAlignCenter).Raw(starBlack).Raw(starBigFont)
	b.Line(title)
	b.Line("ORDER: " + orderNum)
	b.Raw(starRed).Line(orderType)

	b.Raw(starAlignLeft).Raw(starBlack)
	b.Line(formatTicketDate(now) + " " + formatTicketClock(now))
	b.Line("Server: " + server)
	b.Line(kitchenDivider)

	for i, item := range items {
		name := item.Name
		if item.Quantity > 1 {
			name = fmt.Sprintf("%d %s", item.Quantity, name)
		}

		b.Raw(starAlignLeft).Raw(starBlack).Line(name)
		if item.Notes != "" {
			b.Raw(starRed).Line("  * " + item.Notes + " *").Raw(starBlack)
		}

		if len(item.Modifiers) > 0 {
			b.Raw(starAlignRight).Raw(starRed)
			for _, mod := range item.Modifiers {
				modName := mod.Name
				if modName == "" {
					modName = "Option"
				}
				if useAbbreviations {
					modName = Abbreviate(modName)
				}
				b.Line(modName)
			}
			b.Raw(starAlignLeft).Raw(starBlack)
		}

		if i < len(items)-1 {
			b.Line(kitchenDivider)
		}
	}

	b.Line(kitchenDivider)
	b.Line("ID: " + orderNum)
	b.Text("\n\n\n")
	b.Raw(starCut)

	return b.Bytes()
}

// formatTicketDate renders e.g. "28-Aug-2026".
func formatTicketDate(t time.Time) string {
	return t.Format("02-Jan-2006")
}

// formatTicketClock renders a 12-hour clock with a single trailing A/P,
// e.g. "08:15P" — the narrow column leaves no room for "PM".
func formatTicketClock(t time.Time) string {
	s := t.Format("03:04 PM")
	s = strings.Replace(s, " PM", "P", 1)
	return strings.Replace(s, " AM", "A", 1)
}
