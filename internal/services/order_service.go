package services

import (
	"fmt"
	"log"

	"warung/internal/models"
	"warung/internal/repositories"
	"warung/pkg/rabbitmq"

	"github.com/google/uuid"
)

// CheckoutItem is one requested line in a checkout.
type CheckoutItem struct {
	MenuItemID string `json:"menu_item_id" validate:"required"`
	Quantity   int    `json:"quantity" validate:"required,min=1"`
}

// CheckoutRequest is the request body for placing an order.
type CheckoutRequest struct {
	Items           []CheckoutItem `json:"items" validate:"required,min=1,dive"`
	DeliveryAddress string         `json:"delivery_address" validate:"required"`
	PaymentMethod   string         `json:"payment_method" validate:"omitempty,oneof=Cash Card"`
}

// OrderService handles checkout and staff-driven order status management.
type OrderService struct {
	orderRepo repositories.OrderRepository
	menuRepo  repositories.MenuRepository
	mqClient  *rabbitmq.Client
}

// NewOrderService creates a new OrderService. mqClient may be nil, in which
// case event publication is skipped.
func NewOrderService(orderRepo repositories.OrderRepository, menuRepo repositories.MenuRepository, mqClient *rabbitmq.Client) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		menuRepo:  menuRepo,
		mqClient:  mqClient,
	}
}

// Checkout creates a pending order for the user. Each requested menu item is
// resolved against the menu and its name and price are snapshotted onto the
// line item, so later menu edits do not change order history.
func (s *OrderService) Checkout(userID string, req CheckoutRequest) (*models.Order, error) {
	var totalAmount float64
	var items []models.OrderItem

	for _, reqItem := range req.Items {
		menuItem, err := s.menuRepo.GetByID(reqItem.MenuItemID)
		if err != nil {
			return nil, fmt.Errorf("menu item %s: %w", reqItem.MenuItemID, err)
		}
		if !menuItem.Available {
			return nil, fmt.Errorf("menu item %s is not available: %w", menuItem.Name, models.ErrConflict)
		}

		items = append(items, models.OrderItem{
			MenuItemID: menuItem.ID,
			Name:       menuItem.Name,
			Price:      menuItem.Price,
			Quantity:   reqItem.Quantity,
		})
		totalAmount += menuItem.Price * float64(reqItem.Quantity)
	}

	method := req.PaymentMethod
	if method == "" {
		method = models.PaymentCash
	}

	order := &models.Order{
		ID:              uuid.New().String(),
		UserID:          userID,
		Items:           items,
		TotalAmount:     totalAmount,
		DeliveryAddress: req.DeliveryAddress,
		Payment: models.Payment{
			Method: method,
			Status: models.PaymentPending,
		},
		Status: models.OrderPending,
	}

	if err := s.orderRepo.Create(order); err != nil {
		return nil, fmt.Errorf("failed to create order in repository: %w", err)
	}

	if s.mqClient != nil {
		err := s.mqClient.PublishOrderEvent(rabbitmq.OrderEvent{
			Event:       rabbitmq.EventOrderCreated,
			OrderID:     order.ID,
			Status:      order.Status,
			TotalAmount: order.TotalAmount,
		})
		if err != nil {
			log.Printf("Warning: Failed to publish order created event for order %s: %v", order.ID, err)
		}
	}

	return order, nil
}

// GetAllOrders retrieves all orders.
func (s *OrderService) GetAllOrders() ([]models.Order, error) {
	return s.orderRepo.GetAll()
}

// GetOrdersForUser retrieves a customer's own orders.
func (s *OrderService) GetOrdersForUser(userID string) ([]models.Order, error) {
	return s.orderRepo.FindByUser(userID)
}

// GetOrderByID retrieves a single order by its ID.
func (s *OrderService) GetOrderByID(id string) (*models.Order, error) {
	return s.orderRepo.GetByID(id)
}

// UpdateOrderStatus applies a staff-triggered status transition. Only moves
// allowed by the lifecycle table are accepted. onTheWay and delivered are
// rejected outright: writing them here would bypass the delivery workflow
// and leave the order and the delivery-man record disagreeing about who,
// if anyone, is carrying the order.
func (s *OrderService) UpdateOrderStatus(id, status string) error {
	if status == models.OrderOnTheWay || status == models.OrderDelivered {
		return fmt.Errorf("order status %s is set by the delivery endpoints (/api/delivery/assign, /api/delivery/complete): %w", status, models.ErrConflict)
	}

	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return err
	}

	if !models.CanTransition(order.Status, status) {
		return fmt.Errorf("cannot move order from %s to %s: %w", order.Status, status, models.ErrConflict)
	}

	if err := s.orderRepo.UpdateStatus(id, status); err != nil {
		return fmt.Errorf("failed to update order status for order %s: %w", id, err)
	}

	if s.mqClient != nil && status == models.OrderCancelled {
		err := s.mqClient.PublishOrderEvent(rabbitmq.OrderEvent{
			Event:   rabbitmq.EventOrderCancelled,
			OrderID: id,
			Status:  status,
		})
		if err != nil {
			log.Printf("Warning: Failed to publish order cancelled event for order %s: %v", id, err)
		}
	}

	return nil
}
