package repository

import (
	"errors"

	"foodhub/entity"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CartRepository struct{ DB *gorm.DB }

func NewCartRepository(db *gorm.DB) *CartRepository { return &CartRepository{DB: db} }

// GetCartWithItems returns the user's cart with live food display fields
// preloaded. An absent cart comes back as an empty one so the frontend can
// always render it.
func (r *CartRepository) GetCartWithItems(userID uint) (*entity.Cart, error) {
	var c entity.Cart
	err := r.DB.Where("user_id = ?", userID).
		Preload("Items").
		Preload("Items.Food").
		Preload("Items.Food.Restaurant").
		First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &entity.Cart{UserID: userID, TotalAmount: decimal.Zero}, nil
	}
	return &c, err
}

// GetCart returns the bare cart row or gorm.ErrRecordNotFound.
func (r *CartRepository) GetCart(userID uint) (*entity.Cart, error) {
	var c entity.Cart
	if err := r.DB.Where("user_id = ?", userID).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// GetOrCreateCart lazily creates the cart on first add.
func (r *CartRepository) GetOrCreateCart(userID uint) (*entity.Cart, error) {
	var c entity.Cart
	err := r.DB.Where("user_id = ?", userID).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c = entity.Cart{UserID: userID, TotalAmount: decimal.Zero}
		if err := r.DB.Create(&c).Error; err != nil {
			return nil, err
		}
		return &c, nil
	}
	return &c, err
}

func (r *CartRepository) GetItem(cartID, foodID uint) (*entity.CartItem, error) {
	var it entity.CartItem
	if err := r.DB.Where("cart_id = ? AND food_id = ?", cartID, foodID).First(&it).Error; err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *CartRepository) CreateItem(tx *gorm.DB, it *entity.CartItem) error {
	return tx.Create(it).Error
}

func (r *CartRepository) UpdateItem(tx *gorm.DB, itemID uint, qty int, lineTotal decimal.Decimal) error {
	return tx.Model(&entity.CartItem{}).Where("id = ?", itemID).
		Updates(map[string]any{"qty": qty, "line_total": lineTotal}).Error
}

func (r *CartRepository) DeleteItem(tx *gorm.DB, itemID uint) error {
	return tx.Delete(&entity.CartItem{}, itemID).Error
}

// CommitTotal is the optimistic write every cart mutation funnels through:
// the new running total is committed only if nobody else bumped the
// version since we read the cart. Returns rows affected; 0 means the
// caller lost the race and the whole transaction must be rolled back.
func (r *CartRepository) CommitTotal(tx *gorm.DB, cartID, version uint, total decimal.Decimal) (int64, error) {
	res := tx.Model(&entity.Cart{}).
		Where("id = ? AND version = ?", cartID, version).
		Updates(map[string]any{"total_amount": total, "version": gorm.Expr("version + 1")})
	return res.RowsAffected, res.Error
}

// ClearCart empties the cart but keeps the row, bumping the version so
// in-flight mutations against the old state fail their compare-and-swap.
func (r *CartRepository) ClearCart(tx *gorm.DB, userID uint) error {
	var c entity.Cart
	if err := tx.Where("user_id = ?", userID).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if err := tx.Where("cart_id = ?", c.ID).Delete(&entity.CartItem{}).Error; err != nil {
		return err
	}
	return tx.Model(&entity.Cart{}).Where("id = ?", c.ID).
		Updates(map[string]any{"total_amount": decimal.Zero, "version": gorm.Expr("version + 1")}).Error
}
