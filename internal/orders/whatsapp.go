package orders

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// BuildMessage renders the checkout text handed to WhatsApp: one line per
// item as "Name - QtyUnit", then the total.
func BuildMessage(items []LineItem, total float64) string {
	var b strings.Builder
	b.WriteString("Order:")
	for _, li := range items {
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("%s - %s%s", li.Name, formatQty(li.Qty), li.Unit))
	}
	b.WriteString(fmt.Sprintf("\nTotal: ₹%s", formatAmount(total)))
	return b.String()
}

// BuildURL composes the wa.me deep link that opens a chat with the shop,
// pre-filled with the checkout message.
func BuildURL(phone, message string) string {
	return fmt.Sprintf("https://wa.me/%s?text=%s", phone, url.QueryEscape(message))
}

func formatQty(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}

func formatAmount(a float64) string {
	// Two decimals for fractional totals, bare integers otherwise.
	if a == float64(int64(a)) {
		return strconv.FormatInt(int64(a), 10)
	}
	return strconv.FormatFloat(a, 'f', 2, 64)
}
