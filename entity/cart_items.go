package entity

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CartItem struct {
	gorm.Model
	CartID uint `json:"cartId"`
	Cart   Cart `json:"-"`

	FoodID uint `json:"foodId"`
	Food   Food `json:"food"`

	Qty       int             `json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(10,2)" json:"unitPrice"` // frozen at add time
	LineTotal decimal.Decimal `gorm:"type:decimal(10,2)" json:"lineTotal"`
}
