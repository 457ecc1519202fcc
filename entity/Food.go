package entity

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Food struct {
	gorm.Model
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Picture     string          `json:"picture"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2)" json:"price"`

	// availability is re-checked at cart mutation time, never reserved
	IsAvailable bool `gorm:"default:true" json:"isAvailable"`
	Stock       int  `json:"stock"`

	CategoryID uint     `json:"categoryId"`
	Category   Category `json:"-"`

	RestaurantID uint       `json:"restaurantId"`
	Restaurant   Restaurant `json:"-"` // preload for display fields only

	OrderItems []OrderItem `json:"-"`
	Reviews    []Review    `json:"-"`
}
