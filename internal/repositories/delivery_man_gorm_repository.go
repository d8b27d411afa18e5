package repositories

import (
	"errors"
	"fmt"

	"warung/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMDeliveryManRepository is a GORM implementation of DeliveryManRepository.
type GORMDeliveryManRepository struct {
	db *gorm.DB
}

// NewGORMDeliveryManRepository creates a new instance of GORMDeliveryManRepository.
func NewGORMDeliveryManRepository(db *gorm.DB) *GORMDeliveryManRepository {
	return &GORMDeliveryManRepository{
		db: db,
	}
}

// Create creates a new delivery man in the database.
func (r *GORMDeliveryManRepository) Create(man *models.DeliveryMan) error {
	if man.ID == "" {
		man.ID = uuid.New().String()
	}
	if man.Status == "" {
		man.Status = models.StatusAvailable
	}
	if man.Role == "" {
		man.Role = models.RoleDeliveryMan
	}
	if err := r.db.Create(man).Error; err != nil {
		return fmt.Errorf("failed to create delivery man: %w", err)
	}
	return nil
}

// GetByEmail retrieves a delivery man by email.
func (r *GORMDeliveryManRepository) GetByEmail(email string) (*models.DeliveryMan, error) {
	var man models.DeliveryMan
	if err := r.db.First(&man, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("delivery man with email %s: %w", email, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get delivery man by email %s: %w", email, err)
	}
	return &man, nil
}

// GetByPhone retrieves a delivery man by phone number.
func (r *GORMDeliveryManRepository) GetByPhone(phone string) (*models.DeliveryMan, error) {
	var man models.DeliveryMan
	if err := r.db.First(&man, "phone = ?", phone).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("delivery man with phone %s: %w", phone, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get delivery man by phone %s: %w", phone, err)
	}
	return &man, nil
}

// GetByID retrieves a delivery man by ID.
func (r *GORMDeliveryManRepository) GetByID(id string) (*models.DeliveryMan, error) {
	var man models.DeliveryMan
	if err := r.db.First(&man, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("delivery man with ID %s: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get delivery man by ID %s: %w", id, err)
	}
	return &man, nil
}

// GetAll retrieves all delivery men.
func (r *GORMDeliveryManRepository) GetAll() ([]models.DeliveryMan, error) {
	var men []models.DeliveryMan
	if err := r.db.Find(&men).Error; err != nil {
		return nil, fmt.Errorf("failed to get all delivery men: %w", err)
	}
	return men, nil
}

// Claim marks the delivery man busy with the given order. The update is
// conditional on the current status being available, so two concurrent
// claims on the same delivery man cannot both succeed.
func (r *GORMDeliveryManRepository) Claim(id, orderID string) error {
	res := r.db.Model(&models.DeliveryMan{}).
		Where("id = ? AND status = ?", id, models.StatusAvailable).
		Updates(map[string]interface{}{
			"status":           models.StatusBusy,
			"current_order_id": orderID,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to claim delivery man %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		// Distinguish a missing delivery man from one that is already busy.
		if _, err := r.GetByID(id); err != nil {
			return err
		}
		return fmt.Errorf("delivery man %s already has an active delivery: %w", id, models.ErrConflict)
	}
	return nil
}

// ClaimFirstAvailable claims any one available delivery man. Candidates are
// tried in turn; losing the conditional update to a concurrent claim just
// moves on to the next available row.
func (r *GORMDeliveryManRepository) ClaimFirstAvailable(orderID string) (*models.DeliveryMan, error) {
	for {
		var man models.DeliveryMan
		if err := r.db.First(&man, "status = ?", models.StatusAvailable).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("no available delivery men at the moment: %w", models.ErrNoCapacity)
			}
			return nil, fmt.Errorf("failed to find available delivery man: %w", err)
		}

		res := r.db.Model(&models.DeliveryMan{}).
			Where("id = ? AND status = ?", man.ID, models.StatusAvailable).
			Updates(map[string]interface{}{
				"status":           models.StatusBusy,
				"current_order_id": orderID,
			})
		if res.Error != nil {
			return nil, fmt.Errorf("failed to claim delivery man %s: %w", man.ID, res.Error)
		}
		if res.RowsAffected == 0 {
			continue // lost the race for this candidate
		}

		man.Status = models.StatusBusy
		man.CurrentOrderID = &orderID
		return &man, nil
	}
}

// Release sets the delivery man back to available with no current order.
func (r *GORMDeliveryManRepository) Release(id string) error {
	res := r.db.Model(&models.DeliveryMan{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":           models.StatusAvailable,
			"current_order_id": nil,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to release delivery man %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("delivery man with ID %s: %w", id, models.ErrNotFound)
	}
	return nil
}
