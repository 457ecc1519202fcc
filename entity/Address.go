package entity

import (
	"gorm.io/gorm"
)

// Address is a saved delivery address. Orders copy its text at checkout
// instead of referencing the row, so later edits do not rewrite history.
type Address struct {
	gorm.Model
	UserID  uint   `gorm:"index;not null" json:"-"`
	Label   string `json:"label"` // "Home", "Work", ...
	Details string `json:"details"`
}
