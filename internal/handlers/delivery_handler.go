package handlers

import (
	"log"

	"warung/internal/middleware"
	"warung/internal/models"
	"warung/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// DeliveryHandler handles HTTP requests for the order-delivery workflow.
type DeliveryHandler struct {
	deliveryService *services.DeliveryService
	validate        *validator.Validate
}

// NewDeliveryHandler creates a new DeliveryHandler.
func NewDeliveryHandler(deliveryService *services.DeliveryService) *DeliveryHandler {
	return &DeliveryHandler{
		deliveryService: deliveryService,
		validate:        validator.New(),
	}
}

// RegisterRoutes registers the delivery routes. The router passed in must
// already require authentication.
func (h *DeliveryHandler) RegisterRoutes(router fiber.Router) {
	deliveryRoutes := router.Group("/delivery")

	adminOnly := middleware.RequireRoles(models.RoleAdmin)
	deliveryOnly := middleware.RequireRoles(models.RoleDeliveryMan)
	deliveryOrAdmin := middleware.RequireRoles(models.RoleDeliveryMan, models.RoleAdmin)

	deliveryRoutes.Post("/add", adminOnly, h.HandleCreateDeliveryMan)
	deliveryRoutes.Get("/", adminOnly, h.HandleListDeliveryMen)
	deliveryRoutes.Get("/pending", deliveryOrAdmin, h.HandlePendingOrders)
	deliveryRoutes.Post("/accept/:orderId", deliveryOnly, h.HandleAcceptOrder)
	deliveryRoutes.Post("/delivered/:orderId", deliveryOnly, h.HandleMarkDelivered)
	deliveryRoutes.Get("/active", deliveryOnly, h.HandleActiveOrder)
	deliveryRoutes.Post("/assign/:orderId", adminOnly, h.HandleAssignDelivery)
	deliveryRoutes.Post("/complete/:orderId", adminOnly, h.HandleCompleteDelivery)
}

// CreateDeliveryManRequest is the request body for adding a delivery man.
type CreateDeliveryManRequest struct {
	Name            string `json:"name" validate:"required,min=3"`
	Email           string `json:"email" validate:"required,email"`
	Phone           string `json:"phone" validate:"required,len=11,numeric"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
}

// HandleCreateDeliveryMan creates a new delivery-person account.
func (h *DeliveryHandler) HandleCreateDeliveryMan(c *fiber.Ctx) error {
	var req CreateDeliveryManRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing delivery man request body: %v", err)
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

	man := models.DeliveryMan{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
	}
	if err := h.deliveryService.CreateDeliveryMan(&man); err != nil {
		log.Printf("Error creating delivery man: %v", err)
		return serviceError(c, err)
	}

	man.Password = "" // belt and braces; the field has no json tag anyway
	return c.Status(fiber.StatusCreated).JSON(man)
}

// HandleListDeliveryMen returns all delivery-person accounts.
func (h *DeliveryHandler) HandleListDeliveryMen(c *fiber.Ctx) error {
	men, err := h.deliveryService.ListDeliveryMen()
	if err != nil {
		log.Printf("Error listing delivery men: %v", err)
		return serviceError(c, err)
	}
	return c.JSON(men)
}

// HandlePendingOrders returns pending orders, oldest first.
func (h *DeliveryHandler) HandlePendingOrders(c *fiber.Ctx) error {
	orders, err := h.deliveryService.PendingOrders()
	if err != nil {
		log.Printf("Error listing pending orders: %v", err)
		return serviceError(c, err)
	}
	return c.JSON(orders)
}

// HandleAcceptOrder lets the authenticated delivery man claim an order.
func (h *DeliveryHandler) HandleAcceptOrder(c *fiber.Ctx) error {
	orderID := c.Params("orderId")
	order, err := h.deliveryService.AcceptOrder(middleware.AccountID(c), orderID)
	if err != nil {
		log.Printf("Error accepting order %s: %v", orderID, err)
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Order accepted",
		"order":   order,
	})
}

// HandleMarkDelivered completes the authenticated delivery man's own order.
func (h *DeliveryHandler) HandleMarkDelivered(c *fiber.Ctx) error {
	orderID := c.Params("orderId")
	order, err := h.deliveryService.MarkDelivered(middleware.AccountID(c), orderID)
	if err != nil {
		log.Printf("Error marking order %s delivered: %v", orderID, err)
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Order marked as delivered",
		"order":   order,
	})
}

// HandleActiveOrder returns the caller's current onTheWay order, if any.
func (h *DeliveryHandler) HandleActiveOrder(c *fiber.Ctx) error {
	order, err := h.deliveryService.ActiveOrder(middleware.AccountID(c))
	if err != nil {
		log.Printf("Error fetching active order: %v", err)
		return serviceError(c, err)
	}
	return c.JSON(order)
}

// HandleAssignDelivery auto-assigns any available delivery man to the order.
func (h *DeliveryHandler) HandleAssignDelivery(c *fiber.Ctx) error {
	orderID := c.Params("orderId")
	order, man, err := h.deliveryService.AssignDelivery(orderID)
	if err != nil {
		log.Printf("Error assigning delivery for order %s: %v", orderID, err)
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"message":      "Delivery assigned",
		"order":        order,
		"delivery_man": man,
	})
}

// HandleCompleteDelivery force-completes a delivery on behalf of an admin.
func (h *DeliveryHandler) HandleCompleteDelivery(c *fiber.Ctx) error {
	orderID := c.Params("orderId")
	order, err := h.deliveryService.CompleteDelivery(orderID)
	if err != nil {
		log.Printf("Error completing delivery for order %s: %v", orderID, err)
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Order delivered successfully",
		"order":   order,
	})
}
