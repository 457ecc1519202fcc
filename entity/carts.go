package entity

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Cart struct {
	gorm.Model
	UserID uint `json:"userId" gorm:"uniqueIndex"`
	User   User `json:"-"`

	// maintained incrementally by every mutation; invariant:
	// TotalAmount == sum(items[].LineTotal)
	TotalAmount decimal.Decimal `gorm:"type:decimal(10,2)" json:"totalCartAmount"`

	// optimistic concurrency counter, bumped on every mutation
	Version uint `json:"-"`

	Items []CartItem `json:"items" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
