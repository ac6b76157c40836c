package stubapi

import (
	"strconv"

	"storefront/internal/models"

	"github.com/gofiber/fiber/v2"
)

// handleListProducts returns one catalog page filtered by the optional
// category and search parameters.
func (s *Server) handleListProducts(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.Query("limit", "12"))
	if limit < 1 {
		limit = 12
	}

	query := s.db.Model(&models.Product{})
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if search := c.Query("search"); search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not count products",
			"error":   err.Error(),
		})
	}

	var products []models.Product
	if err := query.Offset((page - 1) * limit).Limit(limit).Find(&products).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not list products",
			"error":   err.Error(),
		})
	}

	return c.JSON(models.ProductPage{Products: products, Total: total, Page: page})
}

// handleGetProduct returns a single product by id.
func (s *Server) handleGetProduct(c *fiber.Ctx) error {
	var product models.Product
	if err := s.db.First(&product, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Product not found",
			"error":   err.Error(),
		})
	}
	return c.JSON(product)
}

// handleSearchProducts runs a free-text search keyed by the q parameter.
func (s *Server) handleSearchProducts(c *fiber.Ctx) error {
	q := c.Query("q")

	query := s.db.Model(&models.Product{}).
		Where("name LIKE ? OR description LIKE ?", "%"+q+"%", "%"+q+"%")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Search failed",
			"error":   err.Error(),
		})
	}

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Search failed",
			"error":   err.Error(),
		})
	}

	return c.JSON(models.SearchResult{Products: products, Total: total})
}

// handleListCategories returns the category reference data.
func (s *Server) handleListCategories(c *fiber.Ctx) error {
	var categories []models.Category
	if err := s.db.Find(&categories).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not list categories",
			"error":   err.Error(),
		})
	}
	return c.JSON(categories)
}
