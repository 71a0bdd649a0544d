package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Order lifecycle. A user has at most one PENDING order, which acts as
// their cart; checkout flips it to PAID.
const (
	OrderStatusPending = "PENDING"
	OrderStatusPaid    = "PAID"
)

// Order is a user's cart (PENDING) or a completed purchase (PAID).
type Order struct {
	gorm.Model
	UserID uint            `gorm:"not null;index" json:"userId"`
	User   *User           `json:"-"`
	Status string          `gorm:"size:20;not null;default:PENDING;index" json:"status"`
	Total  decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"total"`
	Items  []OrderItem     `json:"items"`
}

// OrderItem is one line of an order. UnitPrice is frozen at the moment the
// component entered the cart; later catalogue price changes do not touch
// it. A component appears at most once per order.
type OrderItem struct {
	gorm.Model
	OrderID     uint            `gorm:"not null;uniqueIndex:idx_order_component" json:"orderId"`
	ComponentID uint            `gorm:"not null;uniqueIndex:idx_order_component" json:"componentId"`
	Component   *Component      `json:"component,omitempty"`
	Quantity    int             `gorm:"not null;default:1" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unitPrice"`
}

// LineTotal is UnitPrice x Quantity.
func (i OrderItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
