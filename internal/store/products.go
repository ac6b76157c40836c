package store

import (
	"context"

	"storefront/internal/gateway"
	"storefront/internal/models"
)

// ProductSlice holds the catalog state: the current list page, the
// current-product slot, category reference data and pagination metadata.
//
// Fetches follow replace semantics: every list fetch replaces the whole
// page. During a pending fetch the previous data stays visible; only the
// status signals the reload ("stale while revalidate" via the loading flag,
// never via data clearing). Each fetch target carries its own request-id
// guard, so a completion that has been superseded by a later request for
// the same target is discarded.
type ProductSlice struct {
	base

	listGuard     requestGuard
	currentGuard  requestGuard
	categoryGuard requestGuard

	items      []models.Product
	current    *models.Product
	categories []models.Category
	total      int64
	page       int
}

// ProductState is an atomic snapshot of the slice for rendering.
type ProductState struct {
	Items      []models.Product
	Current    *models.Product
	Categories []models.Category
	Total      int64
	Page       int
	Status     RequestStatus
	Err        string
}

// NewProductSlice creates an idle product slice bound to the gateway.
func NewProductSlice(api *gateway.Client, notify func()) *ProductSlice {
	return &ProductSlice{base: newBase(api, notify)}
}

// Snapshot returns a copy of the current state.
func (s *ProductSlice) Snapshot() ProductState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state := ProductState{
		Items:      append([]models.Product(nil), s.items...),
		Categories: append([]models.Category(nil), s.categories...),
		Total:      s.total,
		Page:       s.page,
		Status:     s.status,
		Err:        s.err,
	}
	if s.current != nil {
		current := *s.current
		state.Current = &current
	}
	return state
}

// FetchProducts replaces the product list with the page the backend
// returns and records total count and page for pagination. An empty result
// is a valid succeeded state.
func (s *ProductSlice) FetchProducts(ctx context.Context, q models.ProductQuery) error {
	id := s.begin(&s.listGuard)

	page, err := s.api.ListProducts(ctx, q)
	if err != nil {
		s.fail(&s.listGuard, id, err)
		return err
	}

	s.succeed(&s.listGuard, id, func() {
		s.items = page.Products
		s.total = page.Total
		s.page = page.Page
	})
	return nil
}

// FetchProductByID fills the current-product slot. The list is untouched.
func (s *ProductSlice) FetchProductByID(ctx context.Context, id string) error {
	reqID := s.begin(&s.currentGuard)

	product, err := s.api.GetProduct(ctx, id)
	if err != nil {
		s.fail(&s.currentGuard, reqID, err)
		return err
	}

	s.succeed(&s.currentGuard, reqID, func() {
		s.current = product
	})
	return nil
}

// SearchProducts replaces the list with free-text search results. The
// stored page number is left untouched; combining search with a category
// filter is caller discipline, not enforced here.
func (s *ProductSlice) SearchProducts(ctx context.Context, query string) error {
	id := s.begin(&s.listGuard)

	result, err := s.api.SearchProducts(ctx, query)
	if err != nil {
		s.fail(&s.listGuard, id, err)
		return err
	}

	s.succeed(&s.listGuard, id, func() {
		s.items = result.Products
		s.total = result.Total
	})
	return nil
}

// FetchCategories loads the category reference data.
func (s *ProductSlice) FetchCategories(ctx context.Context) error {
	id := s.begin(&s.categoryGuard)

	categories, err := s.api.ListCategories(ctx)
	if err != nil {
		s.fail(&s.categoryGuard, id, err)
		return err
	}

	s.succeed(&s.categoryGuard, id, func() {
		s.categories = categories
	})
	return nil
}

// ClearError resets a recorded error without touching data or status.
func (s *ProductSlice) ClearError() {
	s.mu.Lock()
	s.err = ""
	s.mu.Unlock()
	s.changed()
}
