package services

import "errors"

// Sentinel errors the controllers translate into the HTTP error taxonomy.
var (
	ErrNotFound          = errors.New("not found")
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidInput      = errors.New("invalid input")
	ErrDuplicateItem     = errors.New("food already in cart")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrInvalidAddress    = errors.New("invalid address index")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrVersionConflict   = errors.New("cart modified concurrently, retry")
	ErrPaymentIncomplete = errors.New("payment not completed")
	ErrDuplicateReview   = errors.New("food already reviewed")
)
