package repositories

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"warung/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{
		db: db,
	}
}

// Create creates a new order and its line items in the database.
func (r *GORMOrderRepository) Create(order *models.Order) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	if order.Status == "" {
		order.Status = models.OrderPending
	}
	if err := r.db.Create(order).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

// GetByID retrieves a single order with its items and customer.
func (r *GORMOrderRepository) GetByID(id string) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("Items").Preload("Customer").First(&order, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order with ID %s: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get order by ID %s: %w", id, err)
	}
	return &order, nil
}

// GetAll retrieves all orders with their items, newest first.
func (r *GORMOrderRepository) GetAll() ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.Preload("Items").Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to get all orders: %w", err)
	}
	return orders, nil
}

// FindByUser retrieves a customer's orders, newest first.
func (r *GORMOrderRepository) FindByUser(userID string) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get orders for user %s: %w", userID, err)
	}
	return orders, nil
}

// FindPending returns pending orders oldest first with the customer attached.
func (r *GORMOrderRepository) FindPending() ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Preload("Items").Preload("Customer").
		Where("status = ?", models.OrderPending).
		Order("created_at ASC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get pending orders: %w", err)
	}
	return orders, nil
}

// FindActiveByDeliveryMan returns the delivery man's onTheWay order, or nil
// when he has none.
func (r *GORMOrderRepository) FindActiveByDeliveryMan(deliveryManID string) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("Items").Preload("Customer").
		Where("delivery_man_id = ? AND status = ?", deliveryManID, models.OrderOnTheWay).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get active order for delivery man %s: %w", deliveryManID, err)
	}
	return &order, nil
}

// Assign sets the order onTheWay with the given delivery man. The update is
// conditional on the order still awaiting delivery, so two concurrent claims
// cannot both land and a cancelled or delivered order cannot be flipped back
// onTheWay. Nothing is written on failure, so callers can compensate their
// own prior writes.
func (r *GORMOrderRepository) Assign(orderID, deliveryManID string) (*models.Order, error) {
	res := r.db.Model(&models.Order{}).
		Where("id = ? AND status IN ?", orderID, []string{models.OrderPending, models.OrderPreparing}).
		Updates(map[string]interface{}{
			"status":          models.OrderOnTheWay,
			"delivery_man_id": deliveryManID,
		})
	if res.Error != nil {
		return nil, fmt.Errorf("failed to assign order %s: %w", orderID, res.Error)
	}
	if res.RowsAffected == 0 {
		// Distinguish a missing order from one already claimed or closed.
		if _, err := r.GetByID(orderID); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("order %s is not awaiting delivery: %w", orderID, models.ErrConflict)
	}
	return r.GetByID(orderID)
}

// UpdateStatus sets the order's status.
func (r *GORMOrderRepository) UpdateStatus(id, status string) error {
	res := r.db.Model(&models.Order{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return fmt.Errorf("failed to update status of order %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("order with ID %s: %w", id, models.ErrNotFound)
	}
	return nil
}

// TotalSales returns the revenue sum and order count across all orders.
func (r *GORMOrderRepository) TotalSales() (float64, int64, error) {
	var revenue float64
	var count int64
	row := r.db.Model(&models.Order{}).
		Select("COALESCE(SUM(total_amount), 0), COUNT(*)").Row()
	if err := row.Scan(&revenue, &count); err != nil {
		return 0, 0, fmt.Errorf("failed to aggregate total sales: %w", err)
	}
	return revenue, count, nil
}

// CountByStatus counts orders with the given status.
func (r *GORMOrderRepository) CountByStatus(status string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Order{}).Where("status = ?", status).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count orders with status %s: %w", status, err)
	}
	return count, nil
}

// DailyStats returns per-calendar-day revenue and order counts for the most
// recent distinct days, ascending. The grouping runs in Go because date
// expressions do not scan portably across the Postgres and SQLite drivers.
func (r *GORMOrderRepository) DailyStats(days int) ([]models.DailyStat, error) {
	var rows []struct {
		CreatedAt   time.Time
		TotalAmount float64
	}
	err := r.db.Model(&models.Order{}).
		Select("created_at, total_amount").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load orders for daily stats: %w", err)
	}

	byDay := make(map[string]*models.DailyStat)
	for _, row := range rows {
		day := row.CreatedAt.Format("2006-01-02")
		stat, ok := byDay[day]
		if !ok {
			stat = &models.DailyStat{Date: day}
			byDay[day] = stat
		}
		stat.Revenue += row.TotalAmount
		stat.Orders++
	}

	dates := make([]string, 0, len(byDay))
	for day := range byDay {
		dates = append(dates, day)
	}
	sort.Strings(dates)
	if len(dates) > days {
		dates = dates[len(dates)-days:]
	}

	stats := make([]models.DailyStat, 0, len(dates))
	for _, day := range dates {
		stats = append(stats, *byDay[day])
	}
	return stats, nil
}

// TopSellingItems ranks line-item names by summed quantity across all orders.
func (r *GORMOrderRepository) TopSellingItems(limit int) ([]models.ItemSales, error) {
	var items []models.ItemSales
	err := r.db.Model(&models.OrderItem{}).
		Select("name, SUM(quantity) AS total_sold").
		Group("name").
		Order("total_sold DESC").
		Limit(limit).
		Scan(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate top selling items: %w", err)
	}
	return items, nil
}
