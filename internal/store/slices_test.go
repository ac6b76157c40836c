package store_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"storefront/internal/gateway"
	"storefront/internal/models"
	"storefront/internal/session"
	"storefront/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestStore wires a store and session manager against the given handler.
// The returned flag observes the gateway's unauthorized hook.
func newTestStore(t *testing.T, handler http.Handler) (*store.Store, *session.Manager, *bool) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	sessions, err := session.NewManager(session.NewMemoryTokenStore())
	require.NoError(t, err)

	redirected := false
	api, err := gateway.New(gateway.Config{
		BaseURL:        srv.URL,
		OnUnauthorized: func() { redirected = true },
	}, sessions)
	require.NoError(t, err)

	return store.New(api, sessions), sessions, &redirected
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func TestAuthSlice_LoginStoresSessionAndToken(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/login", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"), "login must not carry a bearer token")
		writeJSON(w, http.StatusOK, models.AuthResponse{
			User:  models.Session{UserID: "u1", FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"},
			Token: "tok-123",
		})
	})
	st, sessions, _ := newTestStore(t, handler)

	err := st.Auth.Login(context.Background(), "ada@example.com", "secret")
	assert.NoError(t, err)
	assert.Equal(t, store.StatusSucceeded, st.Auth.Status())

	sess, ok := st.Auth.Session()
	assert.True(t, ok)
	assert.Equal(t, "u1", sess.UserID)
	assert.Equal(t, "Ada", sess.FirstName)
	assert.Equal(t, "tok-123", sessions.Token())
}

func TestAuthSlice_FailedLoginLeavesNoSession(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Authentication failed", "error": "invalid credentials"})
	})
	st, sessions, _ := newTestStore(t, handler)

	err := st.Auth.Login(context.Background(), "ada@example.com", "wrong")
	assert.Error(t, err)
	assert.Equal(t, store.StatusFailed, st.Auth.Status())
	assert.Contains(t, st.Auth.Err(), "invalid credentials")

	_, ok := st.Auth.Session()
	assert.False(t, ok)
	assert.Empty(t, sessions.Token())
}

func TestAuthSlice_RetryClearsPriorError(t *testing.T) {
	attempts := 0
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid credentials"})
			return
		}
		writeJSON(w, http.StatusOK, models.AuthResponse{
			User:  models.Session{UserID: "u1", Email: "ada@example.com"},
			Token: "tok",
		})
	})
	st, _, _ := newTestStore(t, handler)

	assert.Error(t, st.Auth.Login(context.Background(), "ada@example.com", "wrong"))
	assert.NotEmpty(t, st.Auth.Err())

	assert.NoError(t, st.Auth.Login(context.Background(), "ada@example.com", "right"))
	assert.Equal(t, store.StatusSucceeded, st.Auth.Status())
	assert.Empty(t, st.Auth.Err())
}

func TestAuthSlice_LogoutIsLocalOnly(t *testing.T) {
	calls := 0
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		writeJSON(w, http.StatusOK, models.AuthResponse{
			User:  models.Session{UserID: "u1"},
			Token: "tok",
		})
	})
	st, sessions, _ := newTestStore(t, handler)

	require.NoError(t, st.Auth.Login(context.Background(), "a@b.c", "pw"))
	require.Equal(t, 1, calls)

	st.Auth.Logout()
	assert.Equal(t, 1, calls, "logout must not hit the network")
	assert.Empty(t, sessions.Token())
	assert.Equal(t, store.StatusIdle, st.Auth.Status())

	_, ok := st.Auth.Session()
	assert.False(t, ok)
}

func TestProductSlice_EmptyResultIsSucceeded(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, models.ProductPage{Products: []models.Product{}, Total: 0, Page: 1})
	})
	st, _, _ := newTestStore(t, handler)

	err := st.Products.FetchProducts(context.Background(), models.ProductQuery{Page: 1, Limit: 12})
	assert.NoError(t, err)

	state := st.Products.Snapshot()
	assert.Equal(t, store.StatusSucceeded, state.Status)
	assert.Empty(t, state.Items)
	assert.Equal(t, int64(0), state.Total)
	assert.Empty(t, state.Err)
}

func TestProductSlice_FetchReplacesListAndPagination(t *testing.T) {
	page := models.ProductPage{
		Products: []models.Product{{ID: "p1", Name: "Widget", Price: 10}},
		Total:    42,
		Page:     3,
	}
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "3", r.URL.Query().Get("page"))
		assert.Equal(t, "12", r.URL.Query().Get("limit"))
		writeJSON(w, http.StatusOK, page)
	})
	st, _, _ := newTestStore(t, handler)

	require.NoError(t, st.Products.FetchProducts(context.Background(), models.ProductQuery{Page: 3, Limit: 12}))

	state := st.Products.Snapshot()
	assert.Len(t, state.Items, 1)
	assert.Equal(t, int64(42), state.Total)
	assert.Equal(t, 3, state.Page)
}

func TestProductSlice_FailureKeepsStaleData(t *testing.T) {
	fail := false
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "database down"})
			return
		}
		writeJSON(w, http.StatusOK, models.ProductPage{
			Products: []models.Product{{ID: "p1", Name: "Widget", Price: 10}},
			Total:    1, Page: 1,
		})
	})
	st, _, _ := newTestStore(t, handler)

	require.NoError(t, st.Products.FetchProducts(context.Background(), models.ProductQuery{}))
	fail = true
	assert.Error(t, st.Products.FetchProducts(context.Background(), models.ProductQuery{}))

	state := st.Products.Snapshot()
	assert.Equal(t, store.StatusFailed, state.Status)
	assert.Contains(t, state.Err, "database down")
	assert.Len(t, state.Items, 1, "a failed refetch must not blank the list")
}

func TestProductSlice_FetchByIDLeavesListUntouched(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/products":
			writeJSON(w, http.StatusOK, models.ProductPage{
				Products: []models.Product{{ID: "p1"}, {ID: "p2"}},
				Total:    2, Page: 1,
			})
		case "/products/p2":
			writeJSON(w, http.StatusOK, models.Product{ID: "p2", Name: "Gadget", Price: 5})
		default:
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
		}
	})
	st, _, _ := newTestStore(t, handler)

	require.NoError(t, st.Products.FetchProducts(context.Background(), models.ProductQuery{}))
	require.NoError(t, st.Products.FetchProductByID(context.Background(), "p2"))

	state := st.Products.Snapshot()
	assert.Len(t, state.Items, 2)
	require.NotNil(t, state.Current)
	assert.Equal(t, "Gadget", state.Current.Name)
}

func TestProductSlice_OverlappingSearchesLatestWins(t *testing.T) {
	release := make(chan struct{})
	firstStarted := make(chan struct{})
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("q")
		if q == "slow" {
			close(firstStarted)
			<-release
		}
		writeJSON(w, http.StatusOK, models.SearchResult{
			Products: []models.Product{{ID: q, Name: q}},
			Total:    1,
		})
	})
	st, _, _ := newTestStore(t, handler)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		st.Products.SearchProducts(context.Background(), "slow")
	}()

	<-firstStarted
	require.NoError(t, st.Products.SearchProducts(context.Background(), "fast"))
	close(release)
	wg.Wait()

	state := st.Products.Snapshot()
	require.Len(t, state.Items, 1)
	assert.Equal(t, "fast", state.Items[0].ID, "superseded completion must be discarded")
	assert.Equal(t, store.StatusSucceeded, state.Status)
}

func TestOrderSlice_CreatePrependsToHistory(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/orders/user/me":
			writeJSON(w, http.StatusOK, []models.Order{{ID: "old-1"}, {ID: "old-2"}})
		case r.URL.Path == "/orders" && r.Method == http.MethodPost:
			var req models.CreateOrderRequest
			json.NewDecoder(r.Body).Decode(&req)
			writeJSON(w, http.StatusCreated, models.Order{
				ID:              "new-1",
				Items:           req.Items,
				TotalAmount:     20,
				Status:          "pending",
				ShippingAddress: req.ShippingAddress,
			})
		}
	})
	st, _, _ := newTestStore(t, handler)

	require.NoError(t, st.Orders.FetchOrders(context.Background()))

	order, err := st.Orders.CreateOrder(context.Background(), models.CreateOrderRequest{
		Items:           []models.OrderItem{{ProductID: "p1", ProductName: "Widget", Quantity: 2, Price: 10}},
		ShippingAddress: "Ada, 1 Main St, Springfield, IL 62701",
	})
	require.NoError(t, err)
	assert.Equal(t, "new-1", order.ID)

	state := st.Orders.Snapshot()
	require.Len(t, state.Orders, 3)
	assert.Equal(t, "new-1", state.Orders[0].ID, "new order must be at index 0")
	require.NotNil(t, state.Current)
	assert.Equal(t, "new-1", state.Current.ID)
}

func TestOrderSlice_FailedCreateRecordsError(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "payment rejected"})
	})
	st, _, _ := newTestStore(t, handler)

	_, err := st.Orders.CreateOrder(context.Background(), models.CreateOrderRequest{
		Items:           []models.OrderItem{{ProductID: "p1", ProductName: "W", Quantity: 1, Price: 10}},
		ShippingAddress: "somewhere",
	})
	assert.Error(t, err)

	state := st.Orders.Snapshot()
	assert.Equal(t, store.StatusFailed, state.Status)
	assert.Contains(t, state.Err, "payment rejected")
	assert.Empty(t, state.Orders)
}

func TestAny401ClearsTokenAndRedirects(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid or expired token"})
	})
	st, sessions, redirected := newTestStore(t, handler)

	require.NoError(t, sessions.Write(models.Session{UserID: "u1", AuthToken: "stale-token"}))

	// The order slice triggers it, but the effect is global.
	err := st.Orders.FetchOrders(context.Background())
	assert.Error(t, err)
	assert.True(t, gateway.IsUnauthorized(err))

	assert.True(t, *redirected, "401 must redirect to the login entry point")
	assert.Empty(t, sessions.Token(), "401 must clear the persisted token")
	_, ok := st.Auth.Session()
	assert.False(t, ok)
}

func TestStore_ChangeSignalCoalesces(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, models.ProductPage{})
	})
	st, _, _ := newTestStore(t, handler)

	st.Cart.AddToCart(models.Product{ID: "p1", Price: 1})
	st.Cart.AddToCart(models.Product{ID: "p2", Price: 2})

	select {
	case <-st.Changes():
	default:
		t.Fatal("expected a pending change signal")
	}
}
