package entity

import (
	"gorm.io/gorm"
)

// Seeded rows: Pending, Paid, Failed.
type PaymentStatus struct {
	gorm.Model
	StatusName string `gorm:"size:100;uniqueIndex;not null" json:"statusName"`

	Payments []Payment `json:"-"`
}
