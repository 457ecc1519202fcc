package repository

import (
	"foodhub/entity"

	"gorm.io/gorm"
)

type ReviewRepository struct{ DB *gorm.DB }

func NewReviewRepository(db *gorm.DB) *ReviewRepository { return &ReviewRepository{DB: db} }

func (r *ReviewRepository) Create(rev *entity.Review) error {
	return r.DB.Create(rev).Error
}

// ExistsForUserFood enforces one review per (customer, food).
func (r *ReviewRepository) ExistsForUserFood(userID, foodID uint) (bool, error) {
	var cnt int64
	err := r.DB.Model(&entity.Review{}).
		Where("user_id = ? AND food_id = ?", userID, foodID).
		Count(&cnt).Error
	return cnt > 0, err
}

func (r *ReviewRepository) ListForFood(foodID uint) ([]entity.Review, error) {
	var reviews []entity.Review
	err := r.DB.Preload("User").
		Where("food_id = ?", foodID).
		Order("id DESC").Find(&reviews).Error
	return reviews, err
}
