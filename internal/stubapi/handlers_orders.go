package stubapi

import (
	"encoding/json"
	"log"
	"time"

	"storefront/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// toOrder converts a persisted record into the API shape.
func toOrder(rec orderRecord) models.Order {
	var items []models.OrderItem
	if err := json.Unmarshal([]byte(rec.ItemsJSON), &items); err != nil {
		log.Printf("Corrupt items blob for order %s: %v", rec.ID, err)
	}
	return models.Order{
		ID:              rec.ID,
		UserID:          rec.UserID,
		Items:           items,
		TotalAmount:     rec.TotalAmount,
		Status:          rec.Status,
		ShippingAddress: rec.ShippingAddress,
		CreatedAt:       rec.CreatedAt,
	}
}

// handleCreateOrder accepts the cart snapshot and shipping address, prices
// the order from the submitted snapshot and persists it with an initial
// "pending" status.
func (s *Server) handleCreateOrder(c *fiber.Ctx) error {
	var req models.CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing create-order request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := s.validate.Struct(req); err != nil {
		return validationResponse(c, err)
	}

	var totalAmount float64
	for _, item := range req.Items {
		totalAmount += item.Price * float64(item.Quantity)
	}

	itemsJSON, err := json.Marshal(req.Items)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not encode order items",
			"error":   err.Error(),
		})
	}

	userID, _ := c.Locals("user_id").(string)
	rec := orderRecord{
		ID:              uuid.New().String(),
		UserID:          userID,
		ItemsJSON:       string(itemsJSON),
		TotalAmount:     totalAmount,
		Status:          "pending", // Initial status
		ShippingAddress: req.ShippingAddress,
		CreatedAt:       time.Now(),
	}
	if err := s.db.Create(&rec).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create order",
			"error":   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(toOrder(rec))
}

// handleListOrders returns the caller's orders, most recent first.
func (s *Server) handleListOrders(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)

	var recs []orderRecord
	if err := s.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&recs).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not list orders",
			"error":   err.Error(),
		})
	}

	orders := make([]models.Order, 0, len(recs))
	for _, rec := range recs {
		orders = append(orders, toOrder(rec))
	}
	return c.JSON(orders)
}

// handleGetOrder returns a single order; callers can only read their own.
func (s *Server) handleGetOrder(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)

	var rec orderRecord
	if err := s.db.First(&rec, "id = ? AND user_id = ?", c.Params("id"), userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Order not found",
			"error":   err.Error(),
		})
	}
	return c.JSON(toOrder(rec))
}

// handleUpdateOrderStatus sets an order's status label.
func (s *Server) handleUpdateOrderStatus(c *fiber.Ctx) error {
	var req models.UpdateOrderStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := s.validate.Struct(req); err != nil {
		return validationResponse(c, err)
	}

	userID, _ := c.Locals("user_id").(string)
	var rec orderRecord
	if err := s.db.First(&rec, "id = ? AND user_id = ?", c.Params("id"), userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Order not found",
			"error":   err.Error(),
		})
	}

	rec.Status = req.Status
	if err := s.db.Save(&rec).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update order status",
			"error":   err.Error(),
		})
	}
	return c.JSON(toOrder(rec))
}
