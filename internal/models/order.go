package models

import "time"

// Order lifecycle states. pending -> preparing -> onTheWay -> delivered,
// with cancellation allowed from pending and preparing only.
const (
	OrderPending   = "pending"
	OrderPreparing = "preparing"
	OrderOnTheWay  = "onTheWay"
	OrderDelivered = "delivered"
	OrderCancelled = "cancelled"
)

// Payment methods and settlement states.
const (
	PaymentCash = "Cash"
	PaymentCard = "Card"

	PaymentPending = "Pending"
	PaymentPaid    = "Paid"
	PaymentFailed  = "Failed"
)

// OrderItem is a line item within an order. Name and price are snapshots
// taken at checkout, so later menu edits do not rewrite history.
type OrderItem struct {
	ID         uint    `json:"-" gorm:"primaryKey"`
	OrderID    string  `json:"-" gorm:"type:varchar(36);index"`
	MenuItemID string  `json:"menu_item_id" gorm:"type:varchar(36)"`
	Name       string  `json:"name" validate:"required"`
	Price      float64 `json:"price" validate:"required,gt=0"`
	Quantity   int     `json:"quantity" validate:"required,min=1"`
}

// Payment is the payment sub-record embedded in an order.
type Payment struct {
	Method        string `json:"method" gorm:"type:varchar(10);default:Cash"`
	Status        string `json:"status" gorm:"type:varchar(10);default:Pending"`
	TransactionID string `json:"transaction_id,omitempty" gorm:"type:varchar(100)"`
}

// Order represents a customer order. The order record is the source of
// truth for delivery assignment: DeliveryManID is non-nil exactly when the
// status is onTheWay or delivered.
type Order struct {
	ID              string      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID          string      `json:"user_id" gorm:"type:varchar(36);index"`
	Customer        *User       `json:"customer,omitempty" gorm:"foreignKey:UserID"`
	Items           []OrderItem `json:"items" gorm:"foreignKey:OrderID"`
	TotalAmount     float64     `json:"total_amount"`
	DeliveryAddress string      `json:"delivery_address"`
	Payment         Payment     `json:"payment" gorm:"embedded;embeddedPrefix:payment_"`
	Status          string      `json:"status" gorm:"type:varchar(20);index"`
	DeliveryManID   *string     `json:"delivery_man_id" gorm:"type:varchar(36);index"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// OrderTransitions is the transition table for staff-triggered status
// updates. onTheWay and delivered are absent on purpose: those states are
// entered through the delivery workflow, which keeps the delivery-man
// record in step with the order.
var OrderTransitions = map[string][]string{
	OrderPending:   {OrderPreparing, OrderCancelled},
	OrderPreparing: {OrderCancelled},
}

// CanTransition reports whether an order may move from one status to another.
func CanTransition(from, to string) bool {
	for _, next := range OrderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
