package models

import "gorm.io/gorm"

// Account roles carried in the JWT and checked by the role middleware.
const (
	RoleUser        = "user"
	RoleAdmin       = "admin"
	RoleDeliveryMan = "deliveryMan"
)

// User represents a customer or admin account.
type User struct {
	ID         string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	FirstName  string `json:"first_name" gorm:"type:varchar(100)" validate:"required,min=3"`
	LastName   string `json:"last_name" gorm:"type:varchar(100)" validate:"required,min=3"`
	Email      string `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Phone      string `json:"phone" gorm:"uniqueIndex;type:varchar(11)" validate:"required,len=11,numeric"`
	Password   string `gorm:"type:varchar(255)" validate:"required,min=6"` // No json tag for security
	Address    string `json:"address" gorm:"type:varchar(255)"`
	Role       string `json:"role" gorm:"type:varchar(20);default:user"`
	gorm.Model        // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
