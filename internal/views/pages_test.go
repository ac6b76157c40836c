package views_test

import (
	"context"
	"fmt"
	"net"
	"testing"

	"storefront/internal/gateway"
	"storefront/internal/models"
	"storefront/internal/session"
	"storefront/internal/store"
	"storefront/internal/stubapi"
	"storefront/internal/views"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var flowCounter int

// startStub serves the stub backend on a loopback port and returns the API
// base URL.
func startStub(t *testing.T, seed bool) string {
	t.Helper()
	flowCounter++
	srv, err := stubapi.New(stubapi.Config{
		DBPath: fmt.Sprintf("file:viewstest%d?mode=memory&cache=shared", flowCounter),
		Quiet:  true,
	})
	require.NoError(t, err)

	if seed {
		srv.Seed([]models.Product{
			{ID: "prod-1", Name: "Laptop", Description: "High performance laptop", Price: 1200.00, Category: "electronics", Stock: 10, Rating: 4.5},
			{ID: "prod-2", Name: "Mouse", Description: "Ergonomic wireless mouse", Price: 25.00, Category: "electronics", Stock: 50, Rating: 4.0},
		}, []models.Category{
			{ID: "cat-1", Name: "Electronics", Slug: "electronics"},
		})
	}

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go srv.App().Listener(ln)
	t.Cleanup(func() { srv.Shutdown() })

	return "http://" + ln.Addr().String() + "/api/v1"
}

// newClient wires a complete client (session, gateway, store, pages)
// against the given API base URL.
func newClient(t *testing.T, baseURL string) (*store.Store, *session.Manager, *views.Pages) {
	t.Helper()

	sessions, err := session.NewManager(session.NewMemoryTokenStore())
	require.NoError(t, err)

	var pages *views.Pages
	api, err := gateway.New(gateway.Config{
		BaseURL: baseURL,
		OnUnauthorized: func() {
			if pages != nil {
				pages.ForceLogin()
			}
		},
	}, sessions)
	require.NoError(t, err)

	st := store.New(api, sessions)
	pages = views.New(st, "/login")
	return st, sessions, pages
}

func registerShopper(t *testing.T, pages *views.Pages, email string) {
	t.Helper()
	fields, err := pages.SubmitRegister(context.Background(), views.RegisterForm{
		FirstName:       "Demo",
		LastName:        "Shopper",
		Email:           email,
		Password:        "password123",
		ConfirmPassword: "password123",
	})
	require.NoError(t, err)
	require.Nil(t, fields)
}

func TestShoppingFlow(t *testing.T) {
	baseURL := startStub(t, true)
	st, sessions, pages := newClient(t, baseURL)
	ctx := context.Background()

	registerShopper(t, pages, "flow@example.com")
	assert.NotEmpty(t, sessions.Token())
	assert.Equal(t, "/", pages.Path())

	require.NoError(t, st.Products.FetchCategories(ctx))
	require.NoError(t, st.Products.FetchProducts(ctx, models.ProductQuery{Page: 1, Limit: 12}))
	home := pages.RenderHome()
	assert.Contains(t, home, "Electronics")
	assert.Contains(t, home, "Laptop")

	require.NoError(t, st.Products.FetchProductByID(ctx, "prod-2"))
	pages.AddCurrentToCart()
	pages.AddCurrentToCart()

	cartPage := pages.RenderCart()
	assert.Contains(t, cartPage, "Mouse x2")
	assert.Contains(t, cartPage, "Total: $50.00")

	fields, err := pages.SubmitCheckout(ctx, views.ShippingForm{
		FullName:     "Demo Shopper",
		AddressLine1: "1 Main St",
		City:         "Springfield",
		State:        "IL",
		ZipCode:      "62701",
	})
	require.NoError(t, err)
	require.Nil(t, fields)

	// The cart goes away only after the order succeeded.
	assert.Empty(t, st.Cart.Lines())
	assert.Equal(t, "/orders", pages.Path())

	orderState := st.Orders.Snapshot()
	require.Len(t, orderState.Orders, 1)
	assert.Equal(t, orderState.Orders[0].ID, orderState.Current.ID)
	assert.Equal(t, 50.00, orderState.Orders[0].TotalAmount)
	assert.Equal(t, "Demo Shopper, 1 Main St, Springfield, IL 62701", orderState.Orders[0].ShippingAddress)

	// The order items are a frozen snapshot of the cart lines.
	require.Len(t, orderState.Orders[0].Items, 1)
	assert.Equal(t, "Mouse", orderState.Orders[0].Items[0].ProductName)
	assert.Equal(t, 2, orderState.Orders[0].Items[0].Quantity)

	require.NoError(t, st.Orders.FetchOrders(ctx))
	ordersPage := pages.RenderOrders()
	assert.Contains(t, ordersPage, "$50.00")
	assert.Contains(t, ordersPage, "pending")
}

func TestCheckoutFailureKeepsCart(t *testing.T) {
	// Nothing listens here: every call fails without a response.
	st, _, pages := newClient(t, "http://127.0.0.1:1/api/v1")

	st.Cart.AddToCart(models.Product{ID: "p1", Name: "Widget", Price: 10})

	fields, err := pages.SubmitCheckout(context.Background(), views.ShippingForm{
		FullName:     "Demo",
		AddressLine1: "1 Main St",
		City:         "Springfield",
		State:        "IL",
		ZipCode:      "62701",
	})
	assert.Error(t, err)
	assert.Nil(t, fields)

	assert.Len(t, st.Cart.Lines(), 1, "cart must survive a failed order")
	assert.Equal(t, store.StatusFailed, st.Orders.Status())
	assert.Empty(t, st.Orders.Snapshot().Orders)
}

func TestCheckoutRejectsEmptyCart(t *testing.T) {
	st, _, pages := newClient(t, "http://127.0.0.1:1/api/v1")

	fields, err := pages.SubmitCheckout(context.Background(), views.ShippingForm{
		FullName:     "Demo",
		AddressLine1: "1 Main St",
		City:         "Springfield",
		State:        "IL",
		ZipCode:      "62701",
	})
	require.NoError(t, err)
	require.NotNil(t, fields)
	assert.Contains(t, fields["form"], "cart is empty")
	assert.Equal(t, store.StatusIdle, st.Orders.Status(), "no request is dispatched for an empty cart")
}

func TestUnauthorizedRedirectsToLogin(t *testing.T) {
	baseURL := startStub(t, true)
	st, sessions, pages := newClient(t, baseURL)

	require.NoError(t, sessions.Write(models.Session{UserID: "ghost", AuthToken: "not-a-valid-token"}))
	pages.Navigate("/orders")

	err := st.Orders.FetchOrders(context.Background())
	require.Error(t, err)
	assert.True(t, gateway.IsUnauthorized(err))

	assert.Equal(t, "/login", pages.Path(), "401 must force the login entry point")
	assert.Empty(t, sessions.Token())
}

func TestEmptyCatalogRendersNoProductsFound(t *testing.T) {
	baseURL := startStub(t, false)
	st, _, pages := newClient(t, baseURL)
	ctx := context.Background()

	registerShopper(t, pages, "empty@example.com")
	require.NoError(t, st.Products.FetchProducts(ctx, models.ProductQuery{Page: 1, Limit: 12}))

	assert.Equal(t, store.StatusSucceeded, st.Products.Status(), "an empty page is a success")
	assert.Contains(t, pages.RenderProductList(), "No products found")
}

func TestRegisterFormRequiresMatchingPasswords(t *testing.T) {
	_, sessions, pages := newClient(t, "http://127.0.0.1:1/api/v1")

	fields, err := pages.SubmitRegister(context.Background(), views.RegisterForm{
		FirstName:       "Demo",
		LastName:        "Shopper",
		Email:           "demo@example.com",
		Password:        "password123",
		ConfirmPassword: "different",
	})
	require.NoError(t, err)
	require.NotNil(t, fields, "mismatched passwords are rejected before any dispatch")
	assert.Contains(t, fields, "ConfirmPassword")
	assert.Empty(t, sessions.Token())
}

func TestLoginFormValidation(t *testing.T) {
	_, _, pages := newClient(t, "http://127.0.0.1:1/api/v1")

	fields, err := pages.SubmitLogin(context.Background(), views.LoginForm{Email: "not-an-email", Password: ""})
	require.NoError(t, err)
	require.NotNil(t, fields)
	assert.Contains(t, fields, "Email")
	assert.Contains(t, fields, "Password")
}

func TestHeaderShowsCartBadgeAndUser(t *testing.T) {
	baseURL := startStub(t, true)
	st, _, pages := newClient(t, baseURL)

	assert.Contains(t, pages.RenderHeader(), "Login")

	registerShopper(t, pages, "header@example.com")
	st.Cart.AddToCart(models.Product{ID: "p1", Name: "Widget", Price: 10})
	st.Cart.AddToCart(models.Product{ID: "p1", Name: "Widget", Price: 10})

	header := pages.RenderHeader()
	assert.Contains(t, header, "Cart (2)")
	assert.Contains(t, header, "Demo")
}

func TestLogoutReturnsToLogin(t *testing.T) {
	baseURL := startStub(t, true)
	_, sessions, pages := newClient(t, baseURL)

	registerShopper(t, pages, "logout@example.com")
	require.NotEmpty(t, sessions.Token())

	pages.Logout()
	assert.Empty(t, sessions.Token())
	assert.Equal(t, "/login", pages.Path())
	assert.Contains(t, pages.RenderProfile(), "Not logged in")
}
