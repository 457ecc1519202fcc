package repository

import (
	"foodhub/entity"

	"gorm.io/gorm"
)

type UserRepository struct{ DB *gorm.DB }

func NewUserRepository(db *gorm.DB) *UserRepository { return &UserRepository{DB: db} }

func (r *UserRepository) Create(u *entity.User) error {
	return r.DB.Create(u).Error
}

func (r *UserRepository) CountByEmail(email string) (int64, error) {
	var count int64
	err := r.DB.Model(&entity.User{}).Where("email = ?", email).Count(&count).Error
	return count, err
}

func (r *UserRepository) FindByEmail(email string) (*entity.User, error) {
	var u entity.User
	if err := r.DB.Where("email = ?", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) FindByID(id uint) (*entity.User, error) {
	var u entity.User
	if err := r.DB.First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) Update(id uint, updates map[string]any) error {
	return r.DB.Model(&entity.User{}).Where("id = ?", id).Updates(updates).Error
}

// ListAddresses returns the user's saved addresses in insertion order;
// addressIndex at checkout indexes this slice.
func (r *UserRepository) ListAddresses(userID uint) ([]entity.Address, error) {
	var addrs []entity.Address
	err := r.DB.Where("user_id = ?", userID).Order("id ASC").Find(&addrs).Error
	return addrs, err
}

func (r *UserRepository) AddAddress(a *entity.Address) error {
	return r.DB.Create(a).Error
}

func (r *UserRepository) DeleteAddress(userID, addressID uint) error {
	return r.DB.Where("id = ? AND user_id = ?", addressID, userID).
		Delete(&entity.Address{}).Error
}

func (r *UserRepository) FindRestaurantByUserID(userID uint) (*entity.Restaurant, error) {
	var rest entity.Restaurant
	if err := r.DB.Where("user_id = ?", userID).First(&rest).Error; err != nil {
		return nil, err
	}
	return &rest, nil
}
