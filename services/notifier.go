package services

// OrderNotifier receives order status changes, e.g. to push them over
// websockets. Implementations must not block.
type OrderNotifier interface {
	OrderStatusChanged(orderID uint, status string)
}

type noopNotifier struct{}

func (noopNotifier) OrderStatusChanged(uint, string) {}
