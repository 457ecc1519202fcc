package repository_test

import (
	"fmt"
	"sync/atomic"
	"testing"

	"foodhub/entity"
	"foodhub/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var dbCounter int64

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:repotestdb_%d?mode=memory&cache=shared", atomic.AddInt64(&dbCounter, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entity.User{}, &entity.Cart{}, &entity.CartItem{}))
	return db
}

func TestCommitTotalVersionGuard(t *testing.T) {
	db := testDB(t)
	repo := repository.NewCartRepository(db)

	cart, err := repo.GetOrCreateCart(1)
	require.NoError(t, err)
	require.Zero(t, cart.Version)

	// first writer wins
	n, err := repo.CommitTotal(db, cart.ID, cart.Version, decimal.RequireFromString("10.00"))
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	// a second writer holding the stale version loses
	n, err = repo.CommitTotal(db, cart.ID, cart.Version, decimal.RequireFromString("20.00"))
	require.NoError(t, err)
	require.Zero(t, n)

	got, err := repo.GetCart(1)
	require.NoError(t, err)
	require.EqualValues(t, 1, got.Version)
	require.True(t, got.TotalAmount.Equal(decimal.RequireFromString("10.00")))
}

func TestClearCartBumpsVersion(t *testing.T) {
	db := testDB(t)
	repo := repository.NewCartRepository(db)

	cart, err := repo.GetOrCreateCart(1)
	require.NoError(t, err)
	require.NoError(t, repo.CreateItem(db, &entity.CartItem{
		CartID: cart.ID, FoodID: 7, Qty: 2,
		UnitPrice: decimal.RequireFromString("5.00"),
		LineTotal: decimal.RequireFromString("10.00"),
	}))

	require.NoError(t, repo.ClearCart(db, 1))

	got, err := repo.GetCartWithItems(1)
	require.NoError(t, err)
	require.Empty(t, got.Items)
	require.True(t, got.TotalAmount.IsZero())
	require.EqualValues(t, 1, got.Version)

	// a mutation prepared against the pre-clear state must fail its CAS
	n, err := repo.CommitTotal(db, cart.ID, cart.Version, decimal.RequireFromString("10.00"))
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestClearCartWithoutCartIsNoop(t *testing.T) {
	db := testDB(t)
	repo := repository.NewCartRepository(db)
	require.NoError(t, repo.ClearCart(db, 99))
}
