package repositories

import "warung/internal/models"

// DeliveryManRepository defines the interface for delivery-person account
// access. Claim, ClaimFirstAvailable and Release are the only writers of
// the availability status and the current-order back-reference, and all
// three are single conditional updates so concurrent claims cannot both
// win the same delivery man.
type DeliveryManRepository interface {
	Create(man *models.DeliveryMan) error
	GetByEmail(email string) (*models.DeliveryMan, error)
	GetByPhone(phone string) (*models.DeliveryMan, error)
	GetByID(id string) (*models.DeliveryMan, error)
	GetAll() ([]models.DeliveryMan, error)

	// Claim marks the delivery man busy with the given order, but only if
	// he is currently available. Returns ErrNotFound if the id does not
	// resolve and ErrConflict if he is already busy.
	Claim(id, orderID string) error
	// ClaimFirstAvailable claims any one available delivery man for the
	// given order. Returns ErrNoCapacity when none is available.
	ClaimFirstAvailable(orderID string) (*models.DeliveryMan, error)
	// Release sets the delivery man back to available with no current order.
	Release(id string) error
}
