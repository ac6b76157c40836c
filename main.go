package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront/internal/config"
	"storefront/internal/gateway"
	"storefront/internal/models"
	"storefront/internal/session"
	"storefront/internal/store"
	"storefront/internal/stubapi"
	"storefront/internal/views"
)

func main() {
	// --- Configuration ---
	cfg := config.Load()

	// --- Embedded stub backend ---
	// The demo is self-contained: it serves the REST API in-process and
	// points the client at it. Against a real deployment, set API_BASE_URL
	// and skip the stub.
	stub, err := stubapi.New(stubapi.Config{})
	if err != nil {
		log.Fatalf("Failed to initialize stub API: %v", err)
	}
	stub.Seed(seedProducts(), seedCategories())

	go func() {
		if err := stub.Listen(cfg.AppPort); err != nil {
			log.Fatalf("Stub API failed to start: %v", err)
		}
	}()
	time.Sleep(200 * time.Millisecond) // Give the listener a moment

	// --- Session manager over the persisted token store ---
	tokenStore, err := session.NewGORMTokenStore(cfg.SessionDBPath)
	if err != nil {
		log.Fatalf("Failed to open session store: %v", err)
	}
	sessions, err := session.NewManager(tokenStore)
	if err != nil {
		log.Fatalf("Failed to restore session: %v", err)
	}

	// --- Gateway, store and pages ---
	var pages *views.Pages
	api, err := gateway.New(gateway.Config{
		BaseURL: cfg.APIBaseURL,
		Timeout: cfg.RequestTimeout,
		OnUnauthorized: func() {
			if pages != nil {
				pages.ForceLogin()
			}
		},
	}, sessions)
	if err != nil {
		log.Fatalf("Failed to initialize gateway: %v", err)
	}

	st := store.New(api, sessions)
	pages = views.New(st, cfg.LoginPath)

	// --- Scripted shopping session ---
	ctx := context.Background()
	runDemo(ctx, st, pages, cfg.DefaultPageLimit)

	// Wait for interrupt, then stop the stub
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down...")
	if err := stub.Shutdown(); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
	log.Println("Stopped")
}

// runDemo walks the storefront flow: restore or create a session, browse
// the catalog, fill the cart and place an order, rendering each page.
func runDemo(ctx context.Context, st *store.Store, pages *views.Pages, pageLimit int) {
	if err := st.Auth.LoadCurrentUser(ctx); err != nil {
		log.Printf("No restorable session: %v", err)
	}
	if _, ok := st.Auth.Session(); !ok {
		form := views.RegisterForm{
			FirstName:       "Demo",
			LastName:        "Shopper",
			Email:           fmt.Sprintf("demo-%d@example.com", time.Now().Unix()),
			Password:        "password123",
			ConfirmPassword: "password123",
		}
		if fields, err := pages.SubmitRegister(ctx, form); err != nil || fields != nil {
			log.Fatalf("Registration failed: fields=%v err=%v", fields, err)
		}
	}
	fmt.Print(pages.RenderHeader())

	if err := st.Products.FetchCategories(ctx); err != nil {
		log.Printf("Failed to fetch categories: %v", err)
	}
	if err := st.Products.FetchProducts(ctx, models.ProductQuery{Page: 1, Limit: pageLimit}); err != nil {
		log.Printf("Failed to fetch products: %v", err)
	}
	fmt.Print(pages.RenderHome())

	state := st.Products.Snapshot()
	if len(state.Items) > 0 {
		if err := st.Products.FetchProductByID(ctx, state.Items[0].ID); err == nil {
			fmt.Print(pages.RenderProductDetail())
			pages.AddCurrentToCart()
			pages.AddCurrentToCart()
		}
	}
	fmt.Print(pages.RenderCart())

	shipping := views.ShippingForm{
		FullName:     "Demo Shopper",
		AddressLine1: "1 Main St",
		City:         "Springfield",
		State:        "IL",
		ZipCode:      "62701",
	}
	if fields, err := pages.SubmitCheckout(ctx, shipping); err != nil {
		log.Printf("Checkout failed: %v", err)
	} else if fields != nil {
		log.Printf("Checkout rejected: %v", fields)
	}

	if err := st.Orders.FetchOrders(ctx); err != nil {
		log.Printf("Failed to fetch orders: %v", err)
	}
	fmt.Print(pages.RenderOrders())
	fmt.Print(pages.RenderProfile())
}

// seedProducts builds the demo catalog.
func seedProducts() []models.Product {
	return []models.Product{
		{ID: "prod-1", Name: "Laptop", Description: "High performance laptop", Price: 1200.00, Category: "electronics", Stock: 10, Rating: 4.5},
		{ID: "prod-2", Name: "Keyboard", Description: "Mechanical keyboard", Price: 75.00, Category: "electronics", Stock: 25, Rating: 4.2},
		{ID: "prod-3", Name: "Mouse", Description: "Ergonomic wireless mouse", Price: 25.00, Category: "electronics", Stock: 50, Rating: 4.0},
		{ID: "prod-4", Name: "Desk Lamp", Description: "Adjustable LED lamp", Price: 35.00, Category: "home", Stock: 30, Rating: 4.1},
	}
}

// seedCategories builds the demo category reference data.
func seedCategories() []models.Category {
	return []models.Category{
		{ID: "cat-1", Name: "Electronics", Slug: "electronics", Description: "Devices and accessories"},
		{ID: "cat-2", Name: "Home", Slug: "home", Description: "Everything for the house"},
	}
}
