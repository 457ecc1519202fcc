package services_test

import (
	"sync"
	"testing"

	"foodhub/entity"
	"foodhub/services"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type recordingNotifier struct {
	mu     sync.Mutex
	events []string
}

func (n *recordingNotifier) OrderStatusChanged(orderID uint, status string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, status)
}

func placeOrder(t *testing.T, db *gorm.DB, orderSvc *services.OrderService, userID, foodID uint) *entity.Order {
	t.Helper()
	cartSvc := newCartService(db)
	require.NoError(t, cartSvc.Add(userID, foodID, 1))
	order, err := orderSvc.CreateFromCart(userID, 0)
	require.NoError(t, err)
	return order
}

func statusName(t *testing.T, db *gorm.DB, orderID uint) string {
	t.Helper()
	var o entity.Order
	require.NoError(t, db.Preload("OrderStatus").First(&o, orderID).Error)
	return o.OrderStatus.StatusName
}

func TestAdminStatusProgression(t *testing.T) {
	db := testDB(t)
	orderSvc := newOrderService(db)
	user := createCustomer(t, db, "alice@test")
	rest := createRestaurant(t, db, "Pasta Place")
	f := createFood(t, db, rest.ID, "Carbonara", "12.50", 10)
	order := placeOrder(t, db, orderSvc, user.ID, f.ID)

	notifier := &recordingNotifier{}
	orderSvc.SetNotifier(notifier)

	// skipping a state is rejected
	require.ErrorIs(t, orderSvc.UpdateStatusAsAdmin(order.ID, "Preparing"), services.ErrInvalidTransition)
	require.ErrorIs(t, orderSvc.UpdateStatusAsAdmin(order.ID, "Delivered"), services.ErrInvalidTransition)

	for _, next := range []string{"Order Placed", "Preparing", "Out for Delivery", "Delivered"} {
		require.NoError(t, orderSvc.UpdateStatusAsAdmin(order.ID, next))
		require.Equal(t, next, statusName(t, db, order.ID))
	}

	// Delivered is terminal
	require.ErrorIs(t, orderSvc.UpdateStatusAsAdmin(order.ID, "Cancelled"), services.ErrInvalidTransition)
	require.ErrorIs(t, orderSvc.UpdateStatusAsAdmin(order.ID, "Pending"), services.ErrInvalidTransition)

	require.Equal(t, []string{"Order Placed", "Preparing", "Out for Delivery", "Delivered"}, notifier.events)
}

func TestUnknownStatusRejected(t *testing.T) {
	db := testDB(t)
	orderSvc := newOrderService(db)
	user := createCustomer(t, db, "alice@test")
	rest := createRestaurant(t, db, "Pasta Place")
	f := createFood(t, db, rest.ID, "Carbonara", "12.50", 10)
	order := placeOrder(t, db, orderSvc, user.ID, f.ID)

	require.ErrorIs(t, orderSvc.UpdateStatusAsAdmin(order.ID, "Teleported"), services.ErrInvalidInput)
}

func TestCustomerCancel(t *testing.T) {
	db := testDB(t)
	orderSvc := newOrderService(db)
	alice := createCustomer(t, db, "alice@test")
	bob := createCustomer(t, db, "bob@test")
	rest := createRestaurant(t, db, "Pasta Place")
	f := createFood(t, db, rest.ID, "Carbonara", "12.50", 10)
	order := placeOrder(t, db, orderSvc, alice.ID, f.ID)

	// only the owner may cancel
	require.ErrorIs(t, orderSvc.CancelAsCustomer(bob.ID, order.ID), services.ErrNotFound)

	require.NoError(t, orderSvc.CancelAsCustomer(alice.ID, order.ID))
	require.Equal(t, "Cancelled", statusName(t, db, order.ID))

	// Cancelled is terminal too
	require.ErrorIs(t, orderSvc.CancelAsCustomer(alice.ID, order.ID), services.ErrInvalidTransition)
}

func TestCustomerCannotCancelDeliveredOrder(t *testing.T) {
	db := testDB(t)
	orderSvc := newOrderService(db)
	alice := createCustomer(t, db, "alice@test")
	rest := createRestaurant(t, db, "Pasta Place")
	f := createFood(t, db, rest.ID, "Carbonara", "12.50", 10)
	order := placeOrder(t, db, orderSvc, alice.ID, f.ID)

	for _, next := range []string{"Order Placed", "Preparing", "Out for Delivery", "Delivered"} {
		require.NoError(t, orderSvc.UpdateStatusAsAdmin(order.ID, next))
	}

	require.ErrorIs(t, orderSvc.CancelAsCustomer(alice.ID, order.ID), services.ErrInvalidTransition)
}

func TestRestaurantStatusUpdateScopedToOwnOrders(t *testing.T) {
	db := testDB(t)
	orderSvc := newOrderService(db)
	alice := createCustomer(t, db, "alice@test")
	restA := createRestaurant(t, db, "Pasta Place")
	restB := createRestaurant(t, db, "Burger Barn")
	f := createFood(t, db, restA.ID, "Carbonara", "12.50", 10)
	order := placeOrder(t, db, orderSvc, alice.ID, f.ID)

	// restaurant B has no food in the order
	err := orderSvc.UpdateStatusAsRestaurant(restB.UserID, order.ID, "Order Placed")
	require.ErrorIs(t, err, services.ErrForbidden)

	// restaurant A advances it along the table
	require.NoError(t, orderSvc.UpdateStatusAsRestaurant(restA.UserID, order.ID, "Order Placed"))
	require.NoError(t, orderSvc.UpdateStatusAsRestaurant(restA.UserID, order.ID, "Preparing"))
	require.Equal(t, "Preparing", statusName(t, db, order.ID))

	// an account without a restaurant is rejected outright
	require.ErrorIs(t, orderSvc.UpdateStatusAsRestaurant(alice.ID, order.ID, "Out for Delivery"), services.ErrForbidden)
}
