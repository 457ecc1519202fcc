package entity

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Order struct {
	gorm.Model
	Subtotal       decimal.Decimal `gorm:"type:decimal(10,2)" json:"subtotal"`
	DeliveryCharge decimal.Decimal `gorm:"type:decimal(10,2)" json:"charges"`
	Total          decimal.Decimal `gorm:"type:decimal(10,2)" json:"totalOrderAmount"`

	UserID uint `json:"userId"`
	User   User `json:"-"` // preload only for admin/restaurant detail

	OrderStatusID uint        `json:"orderStatusId"`
	OrderStatus   OrderStatus `json:"orderStatus"`

	// address snapshot taken at checkout, not a live reference
	AddressLabel   string `json:"addressLabel"`
	AddressDetails string `json:"addressDetails"`

	OrderItems []OrderItem `json:"items"`
	Payment    *Payment    `json:"-"` // one-to-one, preload on detail
}
