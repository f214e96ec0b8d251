package settlement

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/gearmart/checkout/internal/domain/model"
)

// Message is the serialized settlement handed to the order-intake channel.
// Delivery (and the matching ledger commit) is the caller's responsibility;
// this package only formats.
type Message struct {
	Destination string
	Body        string
	Link        string
}

// Handoff builds order-intake messages for a configured destination.
type Handoff struct {
	destination string
}

// NewHandoff constructs a Handoff. An empty destination produces messages
// without a prefilled link.
func NewHandoff(destination string) *Handoff {
	return &Handoff{destination: destination}
}

// Build serializes the priced cart into an intake message. destination
// overrides the configured one when non-empty.
func (h *Handoff) Build(totals *model.CartTotals, destination string) Message {
	if destination == "" {
		destination = h.destination
	}
	body := BuildMessage(totals)
	msg := Message{Destination: destination, Body: body}
	if destination != "" {
		msg.Link = fmt.Sprintf("https://wa.me/%s?text=%s", url.PathEscape(destination), url.QueryEscape(body))
	}
	return msg
}

// BuildMessage formats the priced cart as plain text: one row per line,
// then the aggregated totals, stating whether coins were earned or redeemed.
func BuildMessage(totals *model.CartTotals) string {
	var b strings.Builder
	b.WriteString("New order\n")

	for i, line := range totals.Lines {
		fmt.Fprintf(&b, "%d. %s x%d - %s", i+1, line.Name, line.Quantity, formatMoney(line.DiscountedAmount))
		if line.DiscountAmount > 0 {
			fmt.Fprintf(&b, " (save %s)", formatMoney(line.DiscountAmount))
		}
		if line.CoinsApplied > 0 {
			fmt.Fprintf(&b, " [%d coins applied]", line.CoinsApplied)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "Subtotal: %s\n", formatMoney(totals.Subtotal))
	if totals.TotalDiscount > 0 {
		fmt.Fprintf(&b, "Discount: -%s\n", formatMoney(totals.TotalDiscount))
	}
	if totals.CoinsRedeemed && totals.CoinsApplied > 0 {
		fmt.Fprintf(&b, "Coins redeemed: %d (-%s)\n", totals.CoinsApplied, formatMoney(totals.CoinsDiscount))
	} else {
		fmt.Fprintf(&b, "Coins to earn: %d\n", totals.CoinsEarned)
	}
	if totals.ShippingFee > 0 {
		fmt.Fprintf(&b, "Shipping: %s\n", formatMoney(totals.ShippingFee))
	} else {
		b.WriteString("Shipping: free\n")
	}
	fmt.Fprintf(&b, "Total: %s", formatMoney(totals.GrandTotal))
	if totals.InstallmentAmount > 0 {
		fmt.Fprintf(&b, " (12x %s)", formatMoney(totals.InstallmentAmount))
	}
	b.WriteString("\n")

	return b.String()
}

func formatMoney(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}
