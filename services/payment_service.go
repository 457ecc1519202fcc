package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"foodhub/entity"
	"foodhub/pkg/payment"
	"foodhub/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PaymentIDs struct {
	StatusPending uint
	StatusPaid    uint
	StatusFailed  uint
	MethodDigital uint
	MethodCOD     uint
}

type PaymentService struct {
	DB        *gorm.DB
	PayRepo   *repository.PaymentRepository
	OrderRepo *repository.OrderRepository
	CartRepo  *repository.CartRepository
	Provider  payment.Provider

	IDs         PaymentIDs
	OrderStatus StatusIDs
	Notifier    OrderNotifier
}

func NewPaymentService(
	db *gorm.DB,
	payRepo *repository.PaymentRepository,
	orderRepo *repository.OrderRepository,
	cartRepo *repository.CartRepository,
	provider payment.Provider,
	orderStatus StatusIDs,
) *PaymentService {
	s := &PaymentService{
		DB: db, PayRepo: payRepo, OrderRepo: orderRepo, CartRepo: cartRepo,
		Provider: provider, OrderStatus: orderStatus, Notifier: noopNotifier{},
	}

	if id, err := payRepo.GetStatusIDByName("Pending"); err == nil {
		s.IDs.StatusPending = id
	}
	if id, err := payRepo.GetStatusIDByName("Paid"); err == nil {
		s.IDs.StatusPaid = id
	}
	if id, err := payRepo.GetStatusIDByName("Failed"); err == nil {
		s.IDs.StatusFailed = id
	}
	if id, err := payRepo.GetMethodIDByName("Digital"); err == nil {
		s.IDs.MethodDigital = id
	}
	if id, err := payRepo.GetMethodIDByName("Cash on Delivery"); err == nil {
		s.IDs.MethodCOD = id
	}

	return s
}

func (s *PaymentService) SetNotifier(n OrderNotifier) {
	if n != nil {
		s.Notifier = n
	}
}

// UpdateMethod switches between Digital and Cash on Delivery, allowed
// only before confirmation.
func (s *PaymentService) UpdateMethod(userID, paymentID uint, method string) error {
	p, err := s.PayRepo.GetByID(paymentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if p.UserID != userID {
		return ErrNotFound
	}
	if p.PaymentStatusID != s.IDs.StatusPending {
		return fmt.Errorf("%w: payment already settled", ErrInvalidInput)
	}

	methodID, err := s.PayRepo.GetMethodIDByName(method)
	if err != nil || methodID == 0 {
		return fmt.Errorf("%w: unknown payment method %q", ErrInvalidInput, method)
	}
	return s.PayRepo.SetMethod(p.ID, methodID)
}

type CheckoutSessionOut struct {
	SessionID string `json:"sessionId"`
	URL       string `json:"url"`
}

// CreateCheckoutSession opens a provider session for a pending digital
// payment and remembers its id for the later verify round-trip.
func (s *PaymentService) CreateCheckoutSession(ctx context.Context, userID, paymentID uint) (*CheckoutSessionOut, error) {
	p, err := s.PayRepo.GetByID(paymentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if p.UserID != userID {
		return nil, ErrNotFound
	}
	if p.PaymentMethodID != s.IDs.MethodDigital {
		return nil, fmt.Errorf("%w: payment method is not digital", ErrInvalidInput)
	}
	if p.PaymentStatusID != s.IDs.StatusPending {
		return nil, fmt.Errorf("%w: payment already settled", ErrInvalidInput)
	}

	amountMinor := p.Amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	sess, err := s.Provider.CreateSession(ctx, amountMinor, "usd", p.TransactionRef, map[string]string{
		"orderId":   fmt.Sprint(p.OrderID),
		"paymentId": fmt.Sprint(p.ID),
	})
	if err != nil {
		return nil, fmt.Errorf("payment provider: %w", err)
	}

	if err := s.PayRepo.SetSessionID(p.ID, sess.ID); err != nil {
		return nil, err
	}
	return &CheckoutSessionOut{SessionID: sess.ID, URL: sess.URL}, nil
}

// VerifyDigital re-queries the provider session. Completion flips the
// payment to Paid, the order to Order Placed and clears the caller's cart
// in one transaction. Non-completion marks the payment Failed and leaves
// the order untouched; there is no automatic retry.
func (s *PaymentService) VerifyDigital(ctx context.Context, userID, paymentID uint) error {
	p, err := s.PayRepo.GetByID(paymentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if p.UserID != userID {
		return ErrNotFound
	}

	// re-verifying a settled payment re-applies the same flips, which by
	// now are no-ops
	if p.PaymentStatusID == s.IDs.StatusPaid {
		return s.DB.Transaction(func(tx *gorm.DB) error {
			return s.CartRepo.ClearCart(tx, userID)
		})
	}

	if p.PaymentMethodID != s.IDs.MethodDigital {
		return fmt.Errorf("%w: payment method is not digital", ErrInvalidInput)
	}
	if p.SessionID == "" {
		return fmt.Errorf("%w: no checkout session for payment", ErrInvalidInput)
	}

	sess, err := s.Provider.GetSession(ctx, p.SessionID)
	if err != nil {
		return fmt.Errorf("payment provider: %w", err)
	}

	if !sess.Completed {
		if err := s.PayRepo.UpdateStatus(s.DB, p.ID, s.IDs.StatusFailed, nil); err != nil {
			return err
		}
		return ErrPaymentIncomplete
	}

	return s.settle(p.ID, p.OrderID, userID)
}

// VerifyCOD confirms a cash-on-delivery order with no provider round-trip.
func (s *PaymentService) VerifyCOD(userID, orderID uint) error {
	if _, err := s.OrderRepo.GetOrderForUser(userID, orderID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	p, err := s.PayRepo.GetByOrderID(orderID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	if p.PaymentStatusID == s.IDs.StatusPaid {
		return s.DB.Transaction(func(tx *gorm.DB) error {
			return s.CartRepo.ClearCart(tx, userID)
		})
	}

	if p.PaymentMethodID != s.IDs.MethodCOD {
		return fmt.Errorf("%w: payment method is not cash on delivery", ErrInvalidInput)
	}

	return s.settle(p.ID, p.OrderID, userID)
}

// settle applies the confirmation writes atomically: order Pending ->
// Order Placed through the guarded update, payment Paid, cart emptied.
// A guard miss means the order left Pending before verification: an order
// placed earlier still settles (without a new event), a cancelled order
// rolls everything back.
func (s *PaymentService) settle(paymentID, orderID, userID uint) error {
	now := time.Now()
	placedNow := false
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		affected, err := s.OrderRepo.UpdateStatusGuard(tx, orderID, s.OrderStatus.Pending, s.OrderStatus.OrderPlaced)
		if err != nil {
			return err
		}
		placedNow = affected > 0
		if !placedNow {
			cur, err := s.OrderRepo.GetOrderStatusID(tx, orderID)
			if err != nil {
				return err
			}
			if cur == s.OrderStatus.Cancelled {
				return ErrInvalidTransition
			}
		}
		if err := s.PayRepo.UpdateStatus(tx, paymentID, s.IDs.StatusPaid, &now); err != nil {
			return err
		}
		return s.CartRepo.ClearCart(tx, userID)
	})
	if err != nil {
		return err
	}

	if placedNow {
		s.Notifier.OrderStatusChanged(orderID, "Order Placed")
	}
	return nil
}

func (s *PaymentService) GetForOrder(userID, orderID uint) (*entity.Payment, error) {
	p, err := s.PayRepo.GetByOrderID(orderID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if p.UserID != userID {
		return nil, ErrNotFound
	}
	return p, nil
}
