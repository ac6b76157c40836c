package views

import (
	"fmt"
	"strings"

	"storefront/internal/store"
)

// RenderOrders renders the order history, most recent first.
func (p *Pages) RenderOrders() string {
	state := p.store.Orders.Snapshot()

	var b strings.Builder
	b.WriteString("== My Orders ==\n")
	if state.Status == store.StatusPending {
		b.WriteString("[loading...]\n")
	}
	if state.Err != "" {
		fmt.Fprintf(&b, "error: %s\n", state.Err)
	}
	if len(state.Orders) == 0 && state.Status == store.StatusSucceeded {
		b.WriteString("No orders yet\n")
		return b.String()
	}

	for _, order := range state.Orders {
		fmt.Fprintf(&b, "  #%s - %s - $%.2f (%s)\n",
			order.ID, order.CreatedAt.Format("2006-01-02"), order.TotalAmount, order.Status)
	}
	return b.String()
}

// RenderOrderDetail renders the current-order slot with its frozen items.
func (p *Pages) RenderOrderDetail() string {
	state := p.store.Orders.Snapshot()

	var b strings.Builder
	b.WriteString("== Order ==\n")
	if state.Err != "" {
		fmt.Fprintf(&b, "error: %s\n", state.Err)
	}
	if state.Current == nil {
		return b.String()
	}

	order := state.Current
	fmt.Fprintf(&b, "Order #%s - %s\n", order.ID, order.Status)
	fmt.Fprintf(&b, "Ship to: %s\n", order.ShippingAddress)
	for _, item := range order.Items {
		fmt.Fprintf(&b, "  %s x%d - $%.2f\n", item.ProductName, item.Quantity, item.Price*float64(item.Quantity))
	}
	fmt.Fprintf(&b, "Total: $%.2f\n", order.TotalAmount)
	return b.String()
}
