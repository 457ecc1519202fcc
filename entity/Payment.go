package entity

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Payment struct {
	gorm.Model
	Amount decimal.Decimal `gorm:"type:decimal(10,2)" json:"amount"`
	PaidAt *time.Time      `json:"paidAt,omitempty"`

	// provider checkout session; empty for Cash on Delivery
	SessionID      string `json:"sessionId"`
	TransactionRef string `gorm:"size:64" json:"transactionRef"`

	PaymentMethodID uint          `json:"paymentMethodId"`
	PaymentMethod   PaymentMethod `json:"-"`

	OrderID uint  `json:"orderId" gorm:"uniqueIndex"` // one payment per order
	Order   Order `json:"-"`

	UserID uint `json:"userId"` // denormalized for authorization checks
	User   User `json:"-"`

	PaymentStatusID uint          `json:"paymentStatusId"`
	PaymentStatus   PaymentStatus `json:"-"`
}
