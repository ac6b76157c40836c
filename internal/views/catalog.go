package views

import (
	"fmt"
	"strings"

	"storefront/internal/store"
)

// RenderHome renders the landing page: categories plus featured products.
func (p *Pages) RenderHome() string {
	state := p.store.Products.Snapshot()

	var b strings.Builder
	b.WriteString("== Home ==\n")
	if len(state.Categories) > 0 {
		b.WriteString("Shop by Category:\n")
		for _, cat := range state.Categories {
			fmt.Fprintf(&b, "  [%s] %s\n", cat.Slug, cat.Name)
		}
	}
	b.WriteString("Featured Products:\n")
	b.WriteString(renderProductRows(state))
	return b.String()
}

// RenderProductList renders one catalog page with pagination. Previous
// results stay on screen during a reload; only the loading line signals it.
// An empty succeeded result renders as "no products found".
func (p *Pages) RenderProductList() string {
	state := p.store.Products.Snapshot()

	var b strings.Builder
	b.WriteString("== Products ==\n")
	if state.Status == store.StatusPending {
		b.WriteString("[loading...]\n")
	}
	if state.Err != "" {
		fmt.Fprintf(&b, "error: %s\n", state.Err)
	}
	b.WriteString(renderProductRows(state))
	if state.Total > 0 {
		fmt.Fprintf(&b, "Page %d (%d products)\n", state.Page, state.Total)
	}
	return b.String()
}

func renderProductRows(state store.ProductState) string {
	if len(state.Items) == 0 && state.Status == store.StatusSucceeded {
		return "No products found\n"
	}

	var b strings.Builder
	for _, product := range state.Items {
		fmt.Fprintf(&b, "  %s - $%.2f (stock: %d, rating: %.1f)\n",
			product.Name, product.Price, product.Stock, product.Rating)
	}
	return b.String()
}

// RenderProductDetail renders the current-product slot.
func (p *Pages) RenderProductDetail() string {
	state := p.store.Products.Snapshot()

	var b strings.Builder
	b.WriteString("== Product ==\n")
	if state.Status == store.StatusPending {
		b.WriteString("[loading...]\n")
	}
	if state.Err != "" {
		fmt.Fprintf(&b, "error: %s\n", state.Err)
	}
	if state.Current == nil {
		return b.String()
	}

	product := state.Current
	fmt.Fprintf(&b, "%s\n%s\n$%.2f\n", product.Name, product.Description, product.Price)
	if product.Stock > 0 {
		b.WriteString("[Add to Cart]\n")
	} else {
		b.WriteString("Out of stock\n")
	}
	return b.String()
}

// AddCurrentToCart adds the product on the detail page to the cart.
func (p *Pages) AddCurrentToCart() {
	state := p.store.Products.Snapshot()
	if state.Current == nil {
		return
	}
	p.store.Cart.AddToCart(*state.Current)
}
