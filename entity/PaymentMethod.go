package entity

import (
	"gorm.io/gorm"
)

// Seeded rows: Digital, Cash on Delivery.
type PaymentMethod struct {
	gorm.Model
	MethodName string `gorm:"size:100;uniqueIndex;not null" json:"methodName"`

	Payments []Payment `json:"-"`
}
