package handlers

import (
	"fmt"
	"log"

	"warung/internal/middleware"
	"warung/internal/models"
	"warung/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for checkout and order management.
type OrderHandler struct {
	orderService *services.OrderService
	validate     *validator.Validate
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(orderService *services.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		validate:     validator.New(),
	}
}

// RegisterRoutes registers the order routes. The router passed in must
// already require authentication.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Post("/", h.HandleCheckout)
	orderRoutes.Get("/my", h.HandleMyOrders)
	orderRoutes.Get("/", middleware.RequireRoles(models.RoleAdmin), h.HandleGetOrders)
	orderRoutes.Get("/:id", h.HandleGetOrderByID)
	orderRoutes.Patch("/:id/status", middleware.RequireRoles(models.RoleAdmin), h.HandleUpdateOrderStatus)
}

// HandleCheckout places a new order for the authenticated customer.
func (h *OrderHandler) HandleCheckout(c *fiber.Ctx) error {
	var req services.CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing checkout request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": validationMessage(err),
		})
	}

	order, err := h.orderService.Checkout(middleware.AccountID(c), req)
	if err != nil {
		log.Printf("Error creating order: %v", err)
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(order)
}

// HandleMyOrders returns the authenticated customer's own orders.
func (h *OrderHandler) HandleMyOrders(c *fiber.Ctx) error {
	orders, err := h.orderService.GetOrdersForUser(middleware.AccountID(c))
	if err != nil {
		log.Printf("Error getting orders: %v", err)
		return serviceError(c, err)
	}
	return c.JSON(orders)
}

// HandleGetOrders retrieves all orders for staff.
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	orders, err := h.orderService.GetAllOrders()
	if err != nil {
		log.Printf("Error getting all orders: %v", err)
		return serviceError(c, err)
	}
	return c.JSON(orders)
}

// HandleGetOrderByID retrieves a single order. Customers may only read
// their own orders; admins may read any.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	orderID := c.Params("id")
	order, err := h.orderService.GetOrderByID(orderID)
	if err != nil {
		log.Printf("Error getting order by ID %s: %v", orderID, err)
		return serviceError(c, err)
	}

	role, _ := c.Locals("role").(string)
	if role != models.RoleAdmin && order.UserID != middleware.AccountID(c) {
		return serviceError(c, fmt.Errorf("this order does not belong to you: %w", models.ErrForbidden))
	}

	return c.JSON(order)
}

// HandleUpdateOrderStatus applies a staff-triggered status transition.
func (h *OrderHandler) HandleUpdateOrderStatus(c *fiber.Ctx) error {
	orderID := c.Params("id")
	var updateData struct {
		Status string `json:"status" validate:"required,oneof=pending preparing onTheWay delivered cancelled"`
	}

	if err := c.BodyParser(&updateData); err != nil {
		log.Printf("Error parsing request body for status update: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body for status update",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(updateData); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": validationMessage(err),
		})
	}

	if err := h.orderService.UpdateOrderStatus(orderID, updateData.Status); err != nil {
		log.Printf("Error updating order status for order %s: %v", orderID, err)
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Order status updated to " + updateData.Status,
	})
}
