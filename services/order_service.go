package services

import (
	"errors"

	"foodhub/entity"
	"foodhub/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type StatusIDs struct {
	Pending        uint
	OrderPlaced    uint
	Preparing      uint
	OutForDelivery uint
	Delivered      uint
	Cancelled      uint
}

type OrderService struct {
	DB       *gorm.DB
	Repo     *repository.OrderRepository
	CartRepo *repository.CartRepository
	UserRepo *repository.UserRepository
	PayRepo  *repository.PaymentRepository

	Status   StatusIDs
	Notifier OrderNotifier

	// allowed transitions, from-status id -> set of to-status ids
	transitions map[uint]map[uint]bool
}

func NewOrderService(
	db *gorm.DB,
	repo *repository.OrderRepository,
	cartRepo *repository.CartRepository,
	userRepo *repository.UserRepository,
	payRepo *repository.PaymentRepository,
) *OrderService {
	s := &OrderService{
		DB: db, Repo: repo, CartRepo: cartRepo, UserRepo: userRepo, PayRepo: payRepo,
		Notifier: noopNotifier{},
	}

	if id, err := repo.GetStatusIDByName("Pending"); err == nil {
		s.Status.Pending = id
	}
	if id, err := repo.GetStatusIDByName("Order Placed"); err == nil {
		s.Status.OrderPlaced = id
	}
	if id, err := repo.GetStatusIDByName("Preparing"); err == nil {
		s.Status.Preparing = id
	}
	if id, err := repo.GetStatusIDByName("Out for Delivery"); err == nil {
		s.Status.OutForDelivery = id
	}
	if id, err := repo.GetStatusIDByName("Delivered"); err == nil {
		s.Status.Delivered = id
	}
	if id, err := repo.GetStatusIDByName("Cancelled"); err == nil {
		s.Status.Cancelled = id
	}

	s.transitions = buildTransitionTable(s.Status)
	return s
}

func (s *OrderService) SetNotifier(n OrderNotifier) {
	if n != nil {
		s.Notifier = n
	}
}

// DeliveryCharge applies the tiered fee schedule to a cart subtotal:
// below 100 the fee is 15%, from 100 up to but excluding 500 it is 10%,
// from 500 on delivery is free.
func DeliveryCharge(subtotal decimal.Decimal) decimal.Decimal {
	switch {
	case subtotal.LessThan(decimal.NewFromInt(100)):
		return subtotal.Mul(decimal.NewFromFloat(0.15))
	case subtotal.LessThan(decimal.NewFromInt(500)):
		return subtotal.Mul(decimal.NewFromFloat(0.10))
	default:
		return decimal.Zero
	}
}

// CreateFromCart converts the caller's cart into an Order plus its
// companion Payment in one transaction. The cart itself is left intact;
// it is cleared only on payment confirmation, so an abandoned checkout
// can be resumed.
func (s *OrderService) CreateFromCart(userID uint, addressIndex int) (*entity.Order, error) {
	cart, err := s.CartRepo.GetCart(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	full, err := s.CartRepo.GetCartWithItems(userID)
	if err != nil {
		return nil, err
	}
	if len(full.Items) == 0 {
		return nil, ErrEmptyCart
	}

	addrs, err := s.UserRepo.ListAddresses(userID)
	if err != nil {
		return nil, err
	}
	if addressIndex < 0 || addressIndex >= len(addrs) {
		return nil, ErrInvalidAddress
	}
	addr := addrs[addressIndex]

	subtotal := cart.TotalAmount
	charge := DeliveryCharge(subtotal)
	total := subtotal.Add(charge)

	digitalID, err := s.PayRepo.GetMethodIDByName("Digital")
	if err != nil {
		return nil, err
	}
	payPendingID, err := s.PayRepo.GetStatusIDByName("Pending")
	if err != nil {
		return nil, err
	}

	var orderID uint
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		order := entity.Order{
			UserID:         userID,
			Subtotal:       subtotal,
			DeliveryCharge: charge,
			Total:          total,
			OrderStatusID:  s.Status.Pending,
			AddressLabel:   addr.Label,
			AddressDetails: addr.Details,
		}
		if err := s.Repo.CreateOrder(tx, &order); err != nil {
			return err
		}

		// copy the cart lines verbatim: quantities and frozen line totals,
		// not re-priced
		for _, it := range full.Items {
			oi := entity.OrderItem{
				OrderID:   order.ID,
				FoodID:    it.FoodID,
				Qty:       it.Qty,
				UnitPrice: it.UnitPrice,
				LineTotal: it.LineTotal,
			}
			if err := s.Repo.CreateOrderItem(tx, &oi); err != nil {
				return err
			}
		}

		p := entity.Payment{
			OrderID:         order.ID,
			UserID:          userID,
			Amount:          total,
			PaymentMethodID: digitalID,
			PaymentStatusID: payPendingID,
			TransactionRef:  uuid.NewString(),
		}
		if err := s.PayRepo.Create(tx, &p); err != nil {
			return err
		}

		orderID = order.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.Repo.GetOrderDetail(orderID)
}

// ----- Reads -----

func (s *OrderService) ListForUser(userID uint, limit int) ([]repository.OrderSummary, error) {
	return s.Repo.ListOrdersForUser(userID, limit)
}

func (s *OrderService) DetailForUser(userID, orderID uint) (*entity.Order, error) {
	if _, err := s.Repo.GetOrderForUser(userID, orderID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.Repo.GetOrderDetail(orderID)
}

type OrderListOut struct {
	Items []entity.Order `json:"items"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}

func (s *OrderService) ListForRestaurant(ownerUserID uint, statusID *uint, page, limit int) (*OrderListOut, error) {
	rest, err := s.UserRepo.FindRestaurantByUserID(ownerUserID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrForbidden
	}
	if err != nil {
		return nil, err
	}
	items, total, err := s.Repo.ListOrdersForRestaurant(rest.ID, statusID, page, limit)
	if err != nil {
		return nil, err
	}
	return &OrderListOut{Items: items, Total: total, Page: page, Limit: limit}, nil
}

func (s *OrderService) DetailForRestaurant(ownerUserID, orderID uint) (*entity.Order, error) {
	rest, err := s.UserRepo.FindRestaurantByUserID(ownerUserID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrForbidden
	}
	if err != nil {
		return nil, err
	}
	ok, err := s.Repo.ContainsRestaurantFood(orderID, rest.ID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}
	return s.Repo.GetOrderDetail(orderID)
}

func (s *OrderService) ListAll(statusID *uint, page, limit int) (*OrderListOut, error) {
	items, total, err := s.Repo.ListAllOrders(statusID, page, limit)
	if err != nil {
		return nil, err
	}
	return &OrderListOut{Items: items, Total: total, Page: page, Limit: limit}, nil
}

// Delete removes an order outright. Orthogonal to the status lifecycle;
// customers may delete their own orders, admins any.
func (s *OrderService) Delete(callerID uint, isAdmin bool, orderID uint) error {
	o, err := s.Repo.GetOrder(orderID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if !isAdmin && o.UserID != callerID {
		return ErrNotFound
	}
	return s.DB.Transaction(func(tx *gorm.DB) error {
		return s.Repo.DeleteOrder(tx, orderID)
	})
}
