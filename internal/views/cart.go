package views

import (
	"fmt"
	"strings"
)

// RenderCart renders the shopping cart with its derived total.
func (p *Pages) RenderCart() string {
	lines := p.store.Cart.Lines()

	var b strings.Builder
	b.WriteString("== Shopping Cart ==\n")
	if len(lines) == 0 {
		b.WriteString("Your cart is empty\n")
		return b.String()
	}

	for _, line := range lines {
		fmt.Fprintf(&b, "  %s x%d - $%.2f\n", line.Name, line.Quantity, line.Price*float64(line.Quantity))
	}
	fmt.Fprintf(&b, "Total: $%.2f\n", p.store.Cart.Total())
	b.WriteString("[Proceed to Checkout] [Clear Cart]\n")
	return b.String()
}

// RenderHeader renders the persistent header with the cart badge.
func (p *Pages) RenderHeader() string {
	var b strings.Builder
	b.WriteString("Storefront")
	if count := p.store.Cart.ItemCount(); count > 0 {
		fmt.Fprintf(&b, " | Cart (%d)", count)
	}
	if sess, ok := p.store.Auth.Session(); ok {
		fmt.Fprintf(&b, " | %s", sess.FirstName)
	} else {
		b.WriteString(" | Login")
	}
	b.WriteString("\n")
	return b.String()
}
