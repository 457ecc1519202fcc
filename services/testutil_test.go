package services_test

import (
	"fmt"
	"sync/atomic"
	"testing"

	"foodhub/entity"
	"foodhub/repository"
	"foodhub/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var dbCounter int64

// testDB opens a fresh in-memory database, migrates the schema and seeds
// the lookup rows the services resolve at construction time.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:testdb_%d?mode=memory&cache=shared", atomic.AddInt64(&dbCounter, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&entity.User{}, &entity.Address{},
		&entity.Restaurant{}, &entity.Category{}, &entity.Food{},
		&entity.Cart{}, &entity.CartItem{},
		&entity.OrderStatus{}, &entity.Order{}, &entity.OrderItem{},
		&entity.PaymentMethod{}, &entity.PaymentStatus{}, &entity.Payment{},
		&entity.Review{},
	)
	require.NoError(t, err)

	for _, name := range []string{"Pending", "Order Placed", "Preparing", "Out for Delivery", "Delivered", "Cancelled"} {
		require.NoError(t, db.Create(&entity.OrderStatus{StatusName: name}).Error)
	}
	for _, name := range []string{"Digital", "Cash on Delivery"} {
		require.NoError(t, db.Create(&entity.PaymentMethod{MethodName: name}).Error)
	}
	for _, name := range []string{"Pending", "Paid", "Failed"} {
		require.NoError(t, db.Create(&entity.PaymentStatus{StatusName: name}).Error)
	}

	return db
}

func createCustomer(t *testing.T, db *gorm.DB, email string) *entity.User {
	t.Helper()
	u := &entity.User{Email: email, Password: "x", Role: "customer"}
	require.NoError(t, db.Create(u).Error)
	require.NoError(t, db.Create(&entity.Address{UserID: u.ID, Label: "Home", Details: "42 Test Street"}).Error)
	return u
}

func createRestaurant(t *testing.T, db *gorm.DB, name string) *entity.Restaurant {
	t.Helper()
	owner := &entity.User{Email: name + "@owner.test", Password: "x", Role: "restaurant"}
	require.NoError(t, db.Create(owner).Error)
	r := &entity.Restaurant{Name: name, UserID: owner.ID}
	require.NoError(t, db.Create(r).Error)
	return r
}

func createFood(t *testing.T, db *gorm.DB, restID uint, name, price string, stock int) *entity.Food {
	t.Helper()
	f := &entity.Food{
		Name:         name,
		Price:        decimal.RequireFromString(price),
		Stock:        stock,
		IsAvailable:  true,
		RestaurantID: restID,
	}
	require.NoError(t, db.Create(f).Error)
	return f
}

func newCartService(db *gorm.DB) *services.CartService {
	return services.NewCartService(db,
		repository.NewCartRepository(db),
		repository.NewFoodRepository(db))
}

func newOrderService(db *gorm.DB) *services.OrderService {
	return services.NewOrderService(db,
		repository.NewOrderRepository(db),
		repository.NewCartRepository(db),
		repository.NewUserRepository(db),
		repository.NewPaymentRepository(db))
}

func requireDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	require.True(t, decimal.RequireFromString(want).Equal(got),
		"want %s, got %s", want, got.String())
}
