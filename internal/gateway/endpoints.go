package gateway

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"storefront/internal/models"
)

// Login authenticates with email and password. No bearer token is attached.
func (c *Client) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/users/login", nil, req, &resp, false); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register creates an account. On success the backend returns a session and
// token just like login. No bearer token is attached.
func (c *Client) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/users/register", nil, req, &resp, false); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CurrentUser returns the identity behind the current token.
func (c *Client) CurrentUser(ctx context.Context) (*models.Session, error) {
	var sess models.Session
	if err := c.do(ctx, http.MethodGet, "/users/me", nil, nil, &sess, true); err != nil {
		return nil, err
	}
	return &sess, nil
}

// ListProducts fetches one catalog page. Unset query fields are omitted.
func (c *Client) ListProducts(ctx context.Context, q models.ProductQuery) (*models.ProductPage, error) {
	params := url.Values{}
	if q.Page > 0 {
		params.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Category != "" {
		params.Set("category", q.Category)
	}
	if q.Search != "" {
		params.Set("search", q.Search)
	}

	var page models.ProductPage
	if err := c.do(ctx, http.MethodGet, "/products", params, nil, &page, true); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetProduct fetches a single product by ID.
func (c *Client) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	if err := c.do(ctx, http.MethodGet, "/products/"+url.PathEscape(id), nil, nil, &product, true); err != nil {
		return nil, err
	}
	return &product, nil
}

// SearchProducts runs a free-text search over the catalog.
func (c *Client) SearchProducts(ctx context.Context, query string) (*models.SearchResult, error) {
	params := url.Values{}
	params.Set("q", query)

	var result models.SearchResult
	if err := c.do(ctx, http.MethodGet, "/products/search", params, nil, &result, true); err != nil {
		return nil, err
	}
	return &result, nil
}

// ListCategories fetches the category reference data.
func (c *Client) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := c.do(ctx, http.MethodGet, "/products/categories", nil, nil, &categories, true); err != nil {
		return nil, err
	}
	return categories, nil
}

// CreateOrder submits the cart snapshot plus shipping address.
func (c *Client) CreateOrder(ctx context.Context, req models.CreateOrderRequest) (*models.Order, error) {
	var order models.Order
	if err := c.do(ctx, http.MethodPost, "/orders", nil, req, &order, true); err != nil {
		return nil, err
	}
	return &order, nil
}

// ListOrders fetches the current user's order history, most recent first.
func (c *Client) ListOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := c.do(ctx, http.MethodGet, "/orders/user/me", nil, nil, &orders, true); err != nil {
		return nil, err
	}
	return orders, nil
}

// GetOrder fetches a single order by ID.
func (c *Client) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	if err := c.do(ctx, http.MethodGet, "/orders/"+url.PathEscape(id), nil, nil, &order, true); err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateOrderStatus sets an order's status label.
func (c *Client) UpdateOrderStatus(ctx context.Context, id, status string) (*models.Order, error) {
	req := models.UpdateOrderStatusRequest{Status: status}
	var order models.Order
	if err := c.do(ctx, http.MethodPut, "/orders/"+url.PathEscape(id)+"/status", nil, req, &order, true); err != nil {
		return nil, err
	}
	return &order, nil
}

// GetCart fetches the server-side cart variant for a user.
func (c *Client) GetCart(ctx context.Context, userID string) (*models.Cart, error) {
	var cart models.Cart
	if err := c.do(ctx, http.MethodGet, "/cart/"+url.PathEscape(userID), nil, nil, &cart, true); err != nil {
		return nil, err
	}
	return &cart, nil
}

// AddCartItem adds a product to the server-side cart variant.
func (c *Client) AddCartItem(ctx context.Context, req models.CartItemRequest) (*models.Cart, error) {
	var cart models.Cart
	if err := c.do(ctx, http.MethodPost, "/cart/items", nil, req, &cart, true); err != nil {
		return nil, err
	}
	return &cart, nil
}

// RemoveCartItem removes a product from the server-side cart variant.
func (c *Client) RemoveCartItem(ctx context.Context, userID, productID string) (*models.Cart, error) {
	path := "/cart/" + url.PathEscape(userID) + "/items/" + url.PathEscape(productID)
	var cart models.Cart
	if err := c.do(ctx, http.MethodDelete, path, nil, nil, &cart, true); err != nil {
		return nil, err
	}
	return &cart, nil
}

// ClearServerCart empties the server-side cart variant.
func (c *Client) ClearServerCart(ctx context.Context, userID string) error {
	return c.do(ctx, http.MethodDelete, "/cart/"+url.PathEscape(userID), nil, nil, nil, true)
}
