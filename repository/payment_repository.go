package repository

import (
	"time"

	"foodhub/entity"

	"gorm.io/gorm"
)

type PaymentRepository struct{ DB *gorm.DB }

func NewPaymentRepository(db *gorm.DB) *PaymentRepository { return &PaymentRepository{DB: db} }

func (r *PaymentRepository) Create(tx *gorm.DB, p *entity.Payment) error {
	return tx.Create(p).Error
}

func (r *PaymentRepository) GetByID(paymentID uint) (*entity.Payment, error) {
	var p entity.Payment
	if err := r.DB.First(&p, paymentID).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PaymentRepository) GetByOrderID(orderID uint) (*entity.Payment, error) {
	var p entity.Payment
	if err := r.DB.Where("order_id = ?", orderID).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PaymentRepository) UpdateStatus(tx *gorm.DB, paymentID, statusID uint, paidAt *time.Time) error {
	updates := map[string]any{
		"payment_status_id": statusID,
	}
	if paidAt != nil {
		updates["paid_at"] = paidAt
	}
	return tx.Model(&entity.Payment{}).Where("id = ?", paymentID).Updates(updates).Error
}

func (r *PaymentRepository) SetSessionID(paymentID uint, sessionID string) error {
	return r.DB.Model(&entity.Payment{}).Where("id = ?", paymentID).
		Update("session_id", sessionID).Error
}

func (r *PaymentRepository) SetMethod(paymentID, methodID uint) error {
	return r.DB.Model(&entity.Payment{}).Where("id = ?", paymentID).
		Update("payment_method_id", methodID).Error
}

func (r *PaymentRepository) GetMethodIDByName(name string) (uint, error) {
	var id uint
	err := r.DB.Model(&entity.PaymentMethod{}).
		Select("id").Where("method_name = ?", name).Scan(&id).Error
	return id, err
}

func (r *PaymentRepository) GetStatusIDByName(name string) (uint, error) {
	var id uint
	err := r.DB.Model(&entity.PaymentStatus{}).
		Select("id").Where("status_name = ?", name).Scan(&id).Error
	return id, err
}
