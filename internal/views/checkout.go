package views

import (
	"context"
	"fmt"
	"strings"

	"storefront/internal/models"
	"storefront/internal/store"
)

// ShippingForm is the checkout page's address input.
type ShippingForm struct {
	FullName     string `validate:"required"`
	AddressLine1 string `validate:"required"`
	AddressLine2 string
	City         string `validate:"required"`
	State        string `validate:"required"`
	ZipCode      string `validate:"required"`
	Country      string
}

// Address formats the shipping address into the single string the API
// expects.
func (f ShippingForm) Address() string {
	return fmt.Sprintf("%s, %s, %s, %s %s", f.FullName, f.AddressLine1, f.City, f.State, f.ZipCode)
}

// SubmitCheckout freezes the cart into order items and places the order.
// The cart is cleared only after the create succeeds; a failed or pending
// create leaves every line in place so the user can retry.
func (p *Pages) SubmitCheckout(ctx context.Context, form ShippingForm) (map[string]string, error) {
	if err := p.validate.Struct(form); err != nil {
		return fieldErrors(err), nil
	}

	lines := p.store.Cart.Lines()
	if len(lines) == 0 {
		return map[string]string{"form": "cart is empty"}, nil
	}

	req := models.CreateOrderRequest{
		Items:           models.OrderItemsFromCart(lines),
		ShippingAddress: form.Address(),
	}
	if _, err := p.store.Orders.CreateOrder(ctx, req); err != nil {
		return nil, err
	}

	// Order placed; only now does the cart go away.
	p.store.Cart.ClearCart()
	p.Navigate("/orders")
	return nil, nil
}

// RenderCheckout renders the checkout page: the form plus an order summary
// from the live cart.
func (p *Pages) RenderCheckout(form ShippingForm) string {
	orderState := p.store.Orders.Snapshot()
	lines := p.store.Cart.Lines()

	var b strings.Builder
	b.WriteString("== Checkout ==\n")
	if orderState.Err != "" {
		fmt.Fprintf(&b, "error: %s\n", orderState.Err)
	}
	fmt.Fprintf(&b, "Ship to: %s\n", form.Address())
	b.WriteString("Order Summary:\n")
	for _, line := range lines {
		fmt.Fprintf(&b, "  %s x%d - $%.2f\n", line.Name, line.Quantity, line.Price*float64(line.Quantity))
	}
	fmt.Fprintf(&b, "Total: $%.2f\n", p.store.Cart.Total())
	if orderState.Status == store.StatusPending {
		b.WriteString("[Placing Order...]\n")
	} else {
		b.WriteString("[Place Order]\n")
	}
	return b.String()
}
