package entity

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderItem is a frozen copy of a cart line, not live-linked to the cart.
type OrderItem struct {
	gorm.Model
	Qty       int             `json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(10,2)" json:"unitPrice"`
	LineTotal decimal.Decimal `gorm:"type:decimal(10,2)" json:"lineTotal"`

	OrderID uint  `json:"orderId"`
	Order   Order `json:"-"`

	FoodID uint `json:"foodId"`
	Food   Food `json:"food"` // preload for display names
}
