package stubapi

import (
	"log"

	"storefront/internal/models"

	"github.com/gofiber/fiber/v2"
)

// cartForUser assembles the cart response for a user, joining the stored
// quantities with the current catalog for name, price and image.
func (s *Server) cartForUser(userID string) (models.Cart, error) {
	var recs []cartItemRecord
	if err := s.db.Where("user_id = ?", userID).Find(&recs).Error; err != nil {
		return models.Cart{}, err
	}

	cart := models.Cart{UserID: userID, Items: make([]models.CartLine, 0, len(recs))}
	for _, rec := range recs {
		var product models.Product
		if err := s.db.First(&product, "id = ?", rec.ProductID).Error; err != nil {
			log.Printf("Cart references unknown product %s: %v", rec.ProductID, err)
			continue
		}
		cart.Items = append(cart.Items, models.CartLine{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			ImageURL:  product.ImageURL,
			Quantity:  rec.Quantity,
		})
	}
	return cart, nil
}

// handleGetCart returns the server-side cart for a user.
func (s *Server) handleGetCart(c *fiber.Ctx) error {
	cart, err := s.cartForUser(c.Params("userId"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not load cart",
			"error":   err.Error(),
		})
	}
	return c.JSON(cart)
}

// handleAddCartItem adds quantity to a user's cart line, creating it if
// absent.
func (s *Server) handleAddCartItem(c *fiber.Ctx) error {
	var req models.CartItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := s.validate.Struct(req); err != nil {
		return validationResponse(c, err)
	}

	var rec cartItemRecord
	err := s.db.First(&rec, "user_id = ? AND product_id = ?", req.UserID, req.ProductID).Error
	if err == nil {
		rec.Quantity += req.Quantity
		err = s.db.Save(&rec).Error
	} else {
		rec = cartItemRecord{UserID: req.UserID, ProductID: req.ProductID, Quantity: req.Quantity}
		err = s.db.Create(&rec).Error
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update cart",
			"error":   err.Error(),
		})
	}

	cart, err := s.cartForUser(req.UserID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not load cart",
			"error":   err.Error(),
		})
	}
	return c.JSON(cart)
}

// handleRemoveCartItem deletes one line from a user's cart.
func (s *Server) handleRemoveCartItem(c *fiber.Ctx) error {
	userID := c.Params("userId")
	err := s.db.Delete(&cartItemRecord{}, "user_id = ? AND product_id = ?", userID, c.Params("productId")).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update cart",
			"error":   err.Error(),
		})
	}

	cart, err := s.cartForUser(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not load cart",
			"error":   err.Error(),
		})
	}
	return c.JSON(cart)
}

// handleClearCart empties a user's cart.
func (s *Server) handleClearCart(c *fiber.Ctx) error {
	userID := c.Params("userId")
	if err := s.db.Delete(&cartItemRecord{}, "user_id = ?", userID).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not clear cart",
			"error":   err.Error(),
		})
	}
	return c.JSON(models.Cart{UserID: userID, Items: []models.CartLine{}})
}
