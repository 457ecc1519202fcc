package entity

import (
	"gorm.io/gorm"
)

type Category struct {
	gorm.Model
	Name  string `gorm:"uniqueIndex" json:"name"`
	Foods []Food `json:"-"`
}
