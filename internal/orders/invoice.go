package orders

import (
	"fmt"
	"strings"
)

// RenderInvoice formats an order as a printable plain-text invoice.
func RenderInvoice(order *Order, shopName string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s Invoice\n", shopName)
	fmt.Fprintf(&b, "Order %s\n", order.ID)
	fmt.Fprintf(&b, "Date: %s\n\n", order.CreatedAt.Format("02 Jan 2006 15:04"))

	for _, li := range order.Items {
		fmt.Fprintf(&b, "%s %s%s - ₹%s\n", li.Name, formatQty(li.Qty), li.Unit, formatAmount(li.Subtotal()))
	}

	fmt.Fprintf(&b, "\nTotal: ₹%s\n", formatAmount(order.Total))

	return b.String()
}
