// Package stubapi is an in-process implementation of the storefront REST
// API, backed by SQLite. It exists so the client can run self-contained in
// demos and so integration tests exercise the gateway against a real HTTP
// server, including auth and error behavior. The production backend is an
// external service with the same surface.
package stubapi

import (
	"fmt"
	"log"
	"time"

	"storefront/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// orderRecord is the persisted form of an order; items are stored as a
// JSON blob since the stub never queries into them.
type orderRecord struct {
	ID              string `gorm:"primaryKey;type:varchar(36)"`
	UserID          string `gorm:"index;type:varchar(36)"`
	ItemsJSON       string `gorm:"type:text"`
	TotalAmount     float64
	Status          string `gorm:"type:varchar(32)"`
	ShippingAddress string `gorm:"type:varchar(500)"`
	CreatedAt       time.Time
}

// cartItemRecord is one line of the server-side cart variant.
type cartItemRecord struct {
	UserID    string `gorm:"primaryKey;type:varchar(36)"`
	ProductID string `gorm:"primaryKey;type:varchar(36)"`
	Quantity  int
}

// Server is the stub backend: a Fiber app over a SQLite database.
type Server struct {
	app      *fiber.App
	db       *gorm.DB
	auth     *AuthService
	validate *validator.Validate
}

// Config carries the stub settings.
type Config struct {
	// DBPath is the SQLite file; "file::memory:?cache=shared" keeps the
	// stub fully in-process.
	DBPath string
	// JWTSecret signs issued tokens.
	JWTSecret string
	// Quiet disables the request logger middleware (used by tests).
	Quiet bool
}

// New builds the stub server, migrates the schema and registers all routes
// under /api/v1.
func New(cfg Config) (*Server, error) {
	if cfg.DBPath == "" {
		cfg.DBPath = "file::memory:?cache=shared"
	}
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "storefront_stub_secret"
	}

	db, err := gorm.Open(sqlite.Open(cfg.DBPath), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open stub database: %w", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Product{}, &models.Category{}, &orderRecord{}, &cartItemRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate stub database: %w", err)
	}

	s := &Server{
		app:      fiber.New(fiber.Config{DisableStartupMessage: true}),
		db:       db,
		auth:     NewAuthService(db, cfg.JWTSecret),
		validate: validator.New(),
	}
	if !cfg.Quiet {
		s.app.Use(logger.New()) // Request logger
	}
	s.registerRoutes()
	return s, nil
}

func (s *Server) registerRoutes() {
	apiV1 := s.app.Group("/api/v1")

	// Public auth routes
	apiV1.Post("/users/login", s.handleLogin)
	apiV1.Post("/users/register", s.handleRegister)

	// Everything else requires a valid bearer token
	protected := apiV1.Group("", AuthRequired(s.auth))
	protected.Get("/users/me", s.handleCurrentUser)

	// Static product routes must precede the id route
	protected.Get("/products/search", s.handleSearchProducts)
	protected.Get("/products/categories", s.handleListCategories)
	protected.Get("/products", s.handleListProducts)
	protected.Get("/products/:id", s.handleGetProduct)

	protected.Post("/orders", s.handleCreateOrder)
	protected.Get("/orders/user/me", s.handleListOrders)
	protected.Get("/orders/:id", s.handleGetOrder)
	protected.Put("/orders/:id/status", s.handleUpdateOrderStatus)

	protected.Post("/cart/items", s.handleAddCartItem)
	protected.Get("/cart/:userId", s.handleGetCart)
	protected.Delete("/cart/:userId/items/:productId", s.handleRemoveCartItem)
	protected.Delete("/cart/:userId", s.handleClearCart)

	s.app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})
}

// App exposes the Fiber app for in-process testing via app.Test.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen serves the stub on the given address until Shutdown.
func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// Seed populates the catalog with products and categories. Existing rows
// with the same ids are left untouched.
func (s *Server) Seed(products []models.Product, categories []models.Category) {
	for i := range products {
		if err := s.db.FirstOrCreate(&products[i], "id = ?", products[i].ID).Error; err != nil {
			log.Printf("Error seeding product %s: %v", products[i].Name, err)
		}
	}
	for i := range categories {
		if err := s.db.FirstOrCreate(&categories[i], "id = ?", categories[i].ID).Error; err != nil {
			log.Printf("Error seeding category %s: %v", categories[i].Name, err)
		}
	}
}
