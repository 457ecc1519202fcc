package services

import (
	"errors"
	"time"

	"foodhub/entity"
	"foodhub/repository"

	"gorm.io/gorm"
)

type ReviewService struct {
	Repo      *repository.ReviewRepository
	OrderRepo *repository.OrderRepository
	FoodRepo  *repository.FoodRepository

	deliveredID uint
}

func NewReviewService(rr *repository.ReviewRepository, or *repository.OrderRepository, fr *repository.FoodRepository) *ReviewService {
	s := &ReviewService{Repo: rr, OrderRepo: or, FoodRepo: fr}
	if id, err := or.GetStatusIDByName("Delivered"); err == nil {
		s.deliveredID = id
	}
	return s
}

// Create accepts feedback only from a customer with a prior Delivered
// order containing the food, and only once per (customer, food) pair.
func (s *ReviewService) Create(userID, foodID uint, rating int, comments string) (*entity.Review, error) {
	if _, err := s.FoodRepo.GetBasics(foodID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	ok, err := s.OrderRepo.HasDeliveredOrderWithFood(userID, foodID, s.deliveredID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrForbidden
	}

	exists, err := s.Repo.ExistsForUserFood(userID, foodID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateReview
	}

	rev := &entity.Review{
		UserID:     userID,
		FoodID:     foodID,
		Rating:     rating,
		Comments:   comments,
		ReviewDate: time.Now(),
	}
	if err := s.Repo.Create(rev); err != nil {
		return nil, err
	}
	return rev, nil
}

func (s *ReviewService) ListForFood(foodID uint) ([]entity.Review, error) {
	return s.Repo.ListForFood(foodID)
}
