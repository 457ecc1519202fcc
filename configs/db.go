package configs

import (
	"foodhub/entity"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var db *gorm.DB

func DB() *gorm.DB {
	return db
}

func ConnectionDB(source string) {
	database, err := gorm.Open(sqlite.Open(source), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}
	db = database
}

func SetupDatabase() {
	db.AutoMigrate(
		&entity.User{}, &entity.Address{},
		&entity.Restaurant{}, &entity.Category{}, &entity.Food{},
		&entity.Cart{}, &entity.CartItem{},
		&entity.OrderStatus{}, &entity.Order{}, &entity.OrderItem{},
		&entity.PaymentMethod{}, &entity.PaymentStatus{}, &entity.Payment{},
		&entity.Review{},
	)
}
