package services

import (
	"fmt"
	"log"

	"warung/internal/models"
	"warung/internal/repositories"
	"warung/pkg/rabbitmq"

	"golang.org/x/crypto/bcrypt"
)

// DeliveryService implements the order-delivery workflow: claiming pending
// orders, automatic assignment and delivery completion. Every multi-record
// mutation runs as two sequential store writes; when the second write fails
// the first is explicitly compensated so no delivery man is stranded busy
// without an order and no order is left delivered with a busy courier.
type DeliveryService struct {
	deliveryRepo repositories.DeliveryManRepository
	orderRepo    repositories.OrderRepository
	mqClient     *rabbitmq.Client
}

// NewDeliveryService creates a new DeliveryService. mqClient may be nil, in
// which case event publication is skipped.
func NewDeliveryService(deliveryRepo repositories.DeliveryManRepository, orderRepo repositories.OrderRepository, mqClient *rabbitmq.Client) *DeliveryService {
	return &DeliveryService{
		deliveryRepo: deliveryRepo,
		orderRepo:    orderRepo,
		mqClient:     mqClient,
	}
}

// CreateDeliveryMan registers a new delivery-person account with a hashed
// password and available status.
func (s *DeliveryService) CreateDeliveryMan(man *models.DeliveryMan) error {
	if existing, err := s.deliveryRepo.GetByEmail(man.Email); err == nil && existing != nil {
		return fmt.Errorf("email '%s' already registered: %w", man.Email, models.ErrConflict)
	}
	if existing, err := s.deliveryRepo.GetByPhone(man.Phone); err == nil && existing != nil {
		return fmt.Errorf("phone '%s' already registered: %w", man.Phone, models.ErrConflict)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(man.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	man.Password = string(hashedPassword)
	man.Role = models.RoleDeliveryMan
	man.Status = models.StatusAvailable

	if err := s.deliveryRepo.Create(man); err != nil {
		return fmt.Errorf("failed to create delivery man: %w", err)
	}
	return nil
}

// PendingOrders returns all pending orders, oldest first, with the owning
// customer attached for display.
func (s *DeliveryService) PendingOrders() ([]models.Order, error) {
	return s.orderRepo.FindPending()
}

// ListDeliveryMen returns all delivery-person accounts.
func (s *DeliveryService) ListDeliveryMen() ([]models.DeliveryMan, error) {
	return s.deliveryRepo.GetAll()
}

// ActiveOrder returns the caller's current onTheWay order, derived from the
// orders table, or nil when there is none.
func (s *DeliveryService) ActiveOrder(deliveryManID string) (*models.Order, error) {
	return s.orderRepo.FindActiveByDeliveryMan(deliveryManID)
}

// AcceptOrder lets a delivery man claim a specific order. The claim is a
// conditional busy-if-available update; if the subsequent order update fails
// because the order is missing or already taken, the claim is released
// before the error is returned.
func (s *DeliveryService) AcceptOrder(deliveryManID, orderID string) (*models.Order, error) {
	if err := s.deliveryRepo.Claim(deliveryManID, orderID); err != nil {
		return nil, err
	}

	order, err := s.orderRepo.Assign(orderID, deliveryManID)
	if err != nil {
		// Roll back the claim so the delivery man is not stranded busy with
		// no assigned order.
		if releaseErr := s.deliveryRepo.Release(deliveryManID); releaseErr != nil {
			log.Printf("Failed to release delivery man %s after assign failure: %v", deliveryManID, releaseErr)
		}
		return nil, err
	}

	s.publishEvent(rabbitmq.EventOrderAssigned, order)
	return order, nil
}

// AssignDelivery automatically matches any one available delivery man to the
// order. Selection is first-match; there is no ranking or proximity logic.
// The same release-on-failure compensation as AcceptOrder applies when the
// order cannot be assigned.
func (s *DeliveryService) AssignDelivery(orderID string) (*models.Order, *models.DeliveryMan, error) {
	man, err := s.deliveryRepo.ClaimFirstAvailable(orderID)
	if err != nil {
		return nil, nil, err
	}

	order, err := s.orderRepo.Assign(orderID, man.ID)
	if err != nil {
		if releaseErr := s.deliveryRepo.Release(man.ID); releaseErr != nil {
			log.Printf("Failed to release delivery man %s after assign failure: %v", man.ID, releaseErr)
		}
		return nil, nil, err
	}

	s.publishEvent(rabbitmq.EventOrderAssigned, order)
	return order, man, nil
}

// MarkDelivered completes a delivery on behalf of the assigned delivery man.
// The order must exist and be assigned to the caller. The order is marked
// delivered first; if releasing the delivery man then fails, the order is
// reverted to onTheWay so the two records stay consistent.
func (s *DeliveryService) MarkDelivered(deliveryManID, orderID string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order.DeliveryManID == nil || *order.DeliveryManID != deliveryManID {
		return nil, fmt.Errorf("this order is not assigned to you: %w", models.ErrForbidden)
	}

	if err := s.orderRepo.UpdateStatus(orderID, models.OrderDelivered); err != nil {
		return nil, err
	}

	if err := s.deliveryRepo.Release(deliveryManID); err != nil {
		if revertErr := s.orderRepo.UpdateStatus(orderID, models.OrderOnTheWay); revertErr != nil {
			log.Printf("Failed to revert order %s after release failure: %v", orderID, revertErr)
		}
		return nil, err
	}

	order.Status = models.OrderDelivered
	s.publishEvent(rabbitmq.EventOrderDelivered, order)
	return order, nil
}

// CompleteDelivery is the admin-triggered force-complete: it marks the order
// delivered without an identity check and releases the assigned delivery
// man, if any, with the same revert-on-failure compensation as MarkDelivered.
func (s *DeliveryService) CompleteDelivery(orderID string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}

	if err := s.orderRepo.UpdateStatus(orderID, models.OrderDelivered); err != nil {
		return nil, err
	}

	if order.DeliveryManID != nil {
		if err := s.deliveryRepo.Release(*order.DeliveryManID); err != nil {
			if revertErr := s.orderRepo.UpdateStatus(orderID, order.Status); revertErr != nil {
				log.Printf("Failed to revert order %s after release failure: %v", orderID, revertErr)
			}
			return nil, err
		}
	}

	order.Status = models.OrderDelivered
	s.publishEvent(rabbitmq.EventOrderDelivered, order)
	return order, nil
}

// publishEvent publishes an order lifecycle event. Publication failures are
// logged, never surfaced; the store write already committed.
func (s *DeliveryService) publishEvent(event string, order *models.Order) {
	if s.mqClient == nil {
		return
	}

	deliveryManID := ""
	if order.DeliveryManID != nil {
		deliveryManID = *order.DeliveryManID
	}
	err := s.mqClient.PublishOrderEvent(rabbitmq.OrderEvent{
		Event:         event,
		OrderID:       order.ID,
		Status:        order.Status,
		DeliveryManID: deliveryManID,
		TotalAmount:   order.TotalAmount,
	})
	if err != nil {
		log.Printf("Warning: Failed to publish %s event for order %s: %v", event, order.ID, err)
	}
}
