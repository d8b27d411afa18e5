package repositories

import "warung/internal/models"

// OrderRepository defines the interface for order data access, including
// the read-only aggregations used by the reporting service.
type OrderRepository interface {
	Create(order *models.Order) error
	GetByID(id string) (*models.Order, error)
	GetAll() ([]models.Order, error)
	FindByUser(userID string) ([]models.Order, error)

	// FindPending returns pending orders oldest first, with the owning
	// customer attached for display.
	FindPending() ([]models.Order, error)
	// FindActiveByDeliveryMan returns the delivery man's onTheWay order
	// with the customer attached, or nil when he has none.
	FindActiveByDeliveryMan(deliveryManID string) (*models.Order, error)

	// Assign sets the order onTheWay with the given delivery man and
	// returns the updated order. Returns ErrNotFound if the id does not
	// resolve and ErrConflict if the order is no longer awaiting delivery;
	// in either case nothing is written.
	Assign(orderID, deliveryManID string) (*models.Order, error)
	// UpdateStatus sets the order's status. Returns ErrNotFound if the id
	// does not resolve.
	UpdateStatus(id, status string) error

	TotalSales() (revenue float64, count int64, err error)
	CountByStatus(status string) (int64, error)
	DailyStats(days int) ([]models.DailyStat, error)
	TopSellingItems(limit int) ([]models.ItemSales, error)
}
