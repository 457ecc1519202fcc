package entity

import (
	"time"

	"gorm.io/gorm"
)

// Review is feedback on a food item. Accepted only after a Delivered order
// containing the food, and at most once per (user, food).
type Review struct {
	gorm.Model
	Rating     int       `json:"rating"`
	Comments   string    `json:"comments"`
	ReviewDate time.Time `json:"reviewDate"`

	UserID uint `json:"userId"`
	User   User `json:"-"`

	FoodID uint `json:"foodId"`
	Food   Food `json:"-"`
}
