package services

import (
	"errors"

	"foodhub/entity"
	"foodhub/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CartService struct {
	DB       *gorm.DB
	CartRepo *repository.CartRepository
	FoodRepo *repository.FoodRepository
}

func NewCartService(db *gorm.DB, cr *repository.CartRepository, fr *repository.FoodRepository) *CartService {
	return &CartService{DB: db, CartRepo: cr, FoodRepo: fr}
}

func (s *CartService) Get(userID uint) (*entity.Cart, error) {
	return s.CartRepo.GetCartWithItems(userID)
}

// Contains backs the "Add to Cart" vs quantity-stepper UI decision.
func (s *CartService) Contains(userID, foodID uint) (bool, int, error) {
	c, err := s.CartRepo.GetCart(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, 0, nil
	}
	if err != nil {
		return false, 0, err
	}
	it, err := s.CartRepo.GetItem(c.ID, foodID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, 0, nil
	}
	if err != nil {
		return false, 0, err
	}
	return true, it.Qty, nil
}

// Add appends a new line. Re-adding a food already in the cart is rejected
// rather than merged; the client must use UpdateQty instead.
func (s *CartService) Add(userID, foodID uint, qty int) error {
	if qty <= 0 {
		qty = 1
	}

	f, err := s.FoodRepo.GetBasics(foodID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if !f.IsAvailable {
		return ErrNotFound
	}
	if qty > f.Stock {
		return ErrInsufficientStock
	}

	c, err := s.CartRepo.GetOrCreateCart(userID)
	if err != nil {
		return err
	}

	if _, err := s.CartRepo.GetItem(c.ID, foodID); err == nil {
		return ErrDuplicateItem
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	lineTotal := f.Price.Mul(decimal.NewFromInt(int64(qty)))
	line := &entity.CartItem{
		CartID:    c.ID,
		FoodID:    f.ID,
		Qty:       qty,
		UnitPrice: f.Price,
		LineTotal: lineTotal,
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.CartRepo.CreateItem(tx, line); err != nil {
			return err
		}
		affected, err := s.CartRepo.CommitTotal(tx, c.ID, c.Version, c.TotalAmount.Add(lineTotal))
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrVersionConflict
		}
		return nil
	})
}

// UpdateQty sets a line's quantity. Zero or negative removes the line.
// The line total is recomputed from the unit price frozen at add time and
// the running cart total is adjusted by the delta.
func (s *CartService) UpdateQty(userID, foodID uint, qty int) error {
	c, err := s.CartRepo.GetCart(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	it, err := s.CartRepo.GetItem(c.ID, foodID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	if qty <= 0 {
		return s.removeLine(c, it)
	}

	f, err := s.FoodRepo.GetBasics(foodID)
	if err != nil {
		return err
	}
	if qty > f.Stock {
		return ErrInsufficientStock
	}

	newLine := it.UnitPrice.Mul(decimal.NewFromInt(int64(qty)))
	delta := newLine.Sub(it.LineTotal)

	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.CartRepo.UpdateItem(tx, it.ID, qty, newLine); err != nil {
			return err
		}
		affected, err := s.CartRepo.CommitTotal(tx, c.ID, c.Version, c.TotalAmount.Add(delta))
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrVersionConflict
		}
		return nil
	})
}

func (s *CartService) RemoveItem(userID, foodID uint) error {
	c, err := s.CartRepo.GetCart(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	it, err := s.CartRepo.GetItem(c.ID, foodID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return s.removeLine(c, it)
}

func (s *CartService) removeLine(c *entity.Cart, it *entity.CartItem) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.CartRepo.DeleteItem(tx, it.ID); err != nil {
			return err
		}
		affected, err := s.CartRepo.CommitTotal(tx, c.ID, c.Version, c.TotalAmount.Sub(it.LineTotal))
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrVersionConflict
		}
		return nil
	})
}

func (s *CartService) Clear(userID uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		return s.CartRepo.ClearCart(tx, userID)
	})
}
