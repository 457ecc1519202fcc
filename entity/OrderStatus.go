package entity

import (
	"gorm.io/gorm"
)

// Seeded rows: Pending, Order Placed, Preparing, Out for Delivery,
// Delivered, Cancelled.
type OrderStatus struct {
	gorm.Model
	StatusName string `gorm:"size:100;uniqueIndex;not null" json:"statusName"`

	Orders []Order `json:"-"`
}
