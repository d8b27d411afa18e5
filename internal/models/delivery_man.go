package models

import "gorm.io/gorm"

// Delivery availability states. A busy delivery man cannot claim another order.
const (
	StatusAvailable = "available"
	StatusBusy      = "busy"
)

// DeliveryMan represents a delivery-person account. It lives in its own
// table, but shares the login identity space with User.
type DeliveryMan struct {
	ID             string  `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name           string  `json:"name" gorm:"type:varchar(100)" validate:"required,min=3"`
	Email          string  `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Phone          string  `json:"phone" gorm:"uniqueIndex;type:varchar(11)" validate:"required,len=11,numeric"`
	Password       string  `gorm:"type:varchar(255)" validate:"required,min=6"` // No json tag for security
	Role           string  `json:"role" gorm:"type:varchar(20);default:deliveryMan"`
	Status         string  `json:"status" gorm:"type:varchar(20);default:available"`
	CurrentOrderID *string `json:"current_order_id" gorm:"type:varchar(36)"`
	gorm.Model             // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
