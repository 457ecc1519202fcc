package repository

import (
	"foodhub/entity"

	"gorm.io/gorm"
)

type FoodRepository struct{ DB *gorm.DB }

func NewFoodRepository(db *gorm.DB) *FoodRepository { return &FoodRepository{DB: db} }

// GetBasics fetches the fields cart/order math needs: price, ownership,
// availability.
func (r *FoodRepository) GetBasics(id uint) (entity.Food, error) {
	var f entity.Food
	err := r.DB.Select("id, price, restaurant_id, is_available, stock").First(&f, id).Error
	return f, err
}

func (r *FoodRepository) GetByID(id uint) (*entity.Food, error) {
	var f entity.Food
	if err := r.DB.Preload("Restaurant").Preload("Category").First(&f, id).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *FoodRepository) List(categoryID, restaurantID uint) ([]entity.Food, error) {
	db := r.DB.Model(&entity.Food{})
	if categoryID != 0 {
		db = db.Where("category_id = ?", categoryID)
	}
	if restaurantID != 0 {
		db = db.Where("restaurant_id = ?", restaurantID)
	}
	var foods []entity.Food
	err := db.Order("id ASC").Find(&foods).Error
	return foods, err
}

func (r *FoodRepository) Create(f *entity.Food) error {
	return r.DB.Create(f).Error
}

func (r *FoodRepository) Update(id uint, updates map[string]any) error {
	return r.DB.Model(&entity.Food{}).Where("id = ?", id).Updates(updates).Error
}

func (r *FoodRepository) Delete(id uint) error {
	return r.DB.Delete(&entity.Food{}, id).Error
}

func (r *FoodRepository) BelongsToRestaurant(foodID, restID uint) (bool, error) {
	var cnt int64
	err := r.DB.Model(&entity.Food{}).
		Where("id = ? AND restaurant_id = ?", foodID, restID).
		Count(&cnt).Error
	return cnt > 0, err
}

func (r *FoodRepository) ListCategories() ([]entity.Category, error) {
	var cats []entity.Category
	err := r.DB.Order("id ASC").Find(&cats).Error
	return cats, err
}
