package services

import (
	"errors"

	"gorm.io/gorm"
)

// The status enum used to be open: any caller with update rights could set
// any value. The table below closes it — every update is validated against
// the delivery progression, and Cancelled is reachable from any
// non-terminal state.
func buildTransitionTable(ids StatusIDs) map[uint]map[uint]bool {
	t := map[uint]map[uint]bool{
		ids.Pending:        {ids.OrderPlaced: true, ids.Cancelled: true},
		ids.OrderPlaced:    {ids.Preparing: true, ids.Cancelled: true},
		ids.Preparing:      {ids.OutForDelivery: true, ids.Cancelled: true},
		ids.OutForDelivery: {ids.Delivered: true, ids.Cancelled: true},
		ids.Delivered:      {},
		ids.Cancelled:      {},
	}
	return t
}

func (s *OrderService) transition(orderID, toID uint) error {
	o, err := s.Repo.GetOrder(orderID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	fromID := o.OrderStatusID
	if !s.transitions[fromID][toID] {
		return ErrInvalidTransition
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		affected, err := s.Repo.UpdateStatusGuard(tx, orderID, fromID, toID)
		if err != nil {
			return err
		}
		// somebody else moved the order between our read and write
		if affected == 0 {
			return ErrInvalidTransition
		}
		return nil
	})
	if err != nil {
		return err
	}

	if name, err := s.Repo.GetStatusNameByID(toID); err == nil {
		s.Notifier.OrderStatusChanged(orderID, name)
	}
	return nil
}

// UpdateStatusAsAdmin moves any order along the transition table.
func (s *OrderService) UpdateStatusAsAdmin(orderID uint, toStatus string) error {
	toID, err := s.Repo.GetStatusIDByName(toStatus)
	if err != nil {
		return ErrInvalidInput
	}
	return s.transition(orderID, toID)
}

// UpdateStatusAsRestaurant lets a partner advance an order that contains
// at least one of its foods.
func (s *OrderService) UpdateStatusAsRestaurant(ownerUserID, orderID uint, toStatus string) error {
	rest, err := s.UserRepo.FindRestaurantByUserID(ownerUserID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrForbidden
	}
	if err != nil {
		return err
	}
	ok, err := s.Repo.ContainsRestaurantFood(orderID, rest.ID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrForbidden
	}

	toID, err := s.Repo.GetStatusIDByName(toStatus)
	if err != nil {
		return ErrInvalidInput
	}
	return s.transition(orderID, toID)
}

// CancelAsCustomer is the one status write a customer may perform, and
// only on their own order while it is outside the terminal states. The
// transition table enforces the non-terminal part.
func (s *OrderService) CancelAsCustomer(userID, orderID uint) error {
	if _, err := s.Repo.GetOrderForUser(userID, orderID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.transition(orderID, s.Status.Cancelled)
}
