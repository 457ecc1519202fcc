package services_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"foodhub/entity"
	"foodhub/pkg/payment"
	"foodhub/repository"
	"foodhub/services"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeProvider stands in for the checkout provider. Sessions it creates
// report the completion flag set on the struct.
type fakeProvider struct {
	completed  bool
	err        error
	lastAmount int64
	sessions   map[string]*payment.Session
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{sessions: map[string]*payment.Session{}}
}

func (f *fakeProvider) CreateSession(_ context.Context, amountMinor int64, _ string, ref string, _ map[string]string) (*payment.Session, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.lastAmount = amountMinor
	sess := &payment.Session{
		ID:  fmt.Sprintf("sess_%s", ref),
		URL: fmt.Sprintf("https://pay.example/%s", ref),
	}
	f.sessions[sess.ID] = sess
	return sess, nil
}

func (f *fakeProvider) GetSession(_ context.Context, sessionID string) (*payment.Session, error) {
	if f.err != nil {
		return nil, f.err
	}
	sess, ok := f.sessions[sessionID]
	if !ok {
		return nil, errors.New("no such session")
	}
	out := *sess
	out.Completed = f.completed
	return &out, nil
}

func newPaymentService(db *gorm.DB, provider payment.Provider) *services.PaymentService {
	orderSvc := newOrderService(db)
	return services.NewPaymentService(db,
		repository.NewPaymentRepository(db),
		repository.NewOrderRepository(db),
		repository.NewCartRepository(db),
		provider,
		orderSvc.Status)
}

func paymentStatusName(t *testing.T, db *gorm.DB, paymentID uint) string {
	t.Helper()
	var p entity.Payment
	require.NoError(t, db.First(&p, paymentID).Error)
	var s entity.PaymentStatus
	require.NoError(t, db.First(&s, p.PaymentStatusID).Error)
	return s.StatusName
}

func orderPayment(t *testing.T, db *gorm.DB, orderID uint) *entity.Payment {
	t.Helper()
	var p entity.Payment
	require.NoError(t, db.Where("order_id = ?", orderID).First(&p).Error)
	return &p
}

func TestVerifyCODConfirmsOrderAndClearsCart(t *testing.T) {
	db := testDB(t)
	orderSvc := newOrderService(db)
	paySvc := newPaymentService(db, newFakeProvider())
	user := createCustomer(t, db, "alice@test")
	rest := createRestaurant(t, db, "Pasta Place")
	f := createFood(t, db, rest.ID, "Carbonara", "12.50", 10)
	order := placeOrder(t, db, orderSvc, user.ID, f.ID)
	p := orderPayment(t, db, order.ID)

	require.NoError(t, paySvc.UpdateMethod(user.ID, p.ID, "Cash on Delivery"))
	require.NoError(t, paySvc.VerifyCOD(user.ID, order.ID))

	require.Equal(t, "Order Placed", statusName(t, db, order.ID))
	require.Equal(t, "Paid", paymentStatusName(t, db, p.ID))

	total, _, n := cartTotals(t, db, user.ID)
	require.Zero(t, n)
	require.True(t, total.IsZero())

	var settled entity.Payment
	require.NoError(t, db.First(&settled, p.ID).Error)
	require.NotNil(t, settled.PaidAt)
}

func TestVerifyCODRequiresCODMethod(t *testing.T) {
	db := testDB(t)
	orderSvc := newOrderService(db)
	paySvc := newPaymentService(db, newFakeProvider())
	user := createCustomer(t, db, "alice@test")
	rest := createRestaurant(t, db, "Pasta Place")
	f := createFood(t, db, rest.ID, "Carbonara", "12.50", 10)
	order := placeOrder(t, db, orderSvc, user.ID, f.ID)

	// still on the default Digital method
	require.ErrorIs(t, paySvc.VerifyCOD(user.ID, order.ID), services.ErrInvalidInput)
	require.Equal(t, "Pending", statusName(t, db, order.ID))

	// someone else's order reads as missing
	bob := createCustomer(t, db, "bob@test")
	require.ErrorIs(t, paySvc.VerifyCOD(bob.ID, order.ID), services.ErrNotFound)
}

func TestVerifyDigitalSuccess(t *testing.T) {
	db := testDB(t)
	provider := newFakeProvider()
	orderSvc := newOrderService(db)
	paySvc := newPaymentService(db, provider)
	user := createCustomer(t, db, "alice@test")
	rest := createRestaurant(t, db, "Pasta Place")
	f := createFood(t, db, rest.ID, "Carbonara", "40.00", 10)
	order := placeOrder(t, db, orderSvc, user.ID, f.ID)
	p := orderPayment(t, db, order.ID)

	out, err := paySvc.CreateCheckoutSession(context.Background(), user.ID, p.ID)
	require.NoError(t, err)
	require.NotEmpty(t, out.SessionID)
	require.NotEmpty(t, out.URL)

	// 40.00 + 15% charge = 46.00 -> 4600 minor units
	require.Equal(t, int64(4600), provider.lastAmount)

	var withSession entity.Payment
	require.NoError(t, db.First(&withSession, p.ID).Error)
	require.Equal(t, out.SessionID, withSession.SessionID)

	provider.completed = true
	require.NoError(t, paySvc.VerifyDigital(context.Background(), user.ID, p.ID))

	require.Equal(t, "Order Placed", statusName(t, db, order.ID))
	require.Equal(t, "Paid", paymentStatusName(t, db, p.ID))
	_, _, n := cartTotals(t, db, user.ID)
	require.Zero(t, n)
}

func TestVerifyDigitalFailureMarksPaymentFailed(t *testing.T) {
	db := testDB(t)
	provider := newFakeProvider()
	orderSvc := newOrderService(db)
	paySvc := newPaymentService(db, provider)
	user := createCustomer(t, db, "alice@test")
	rest := createRestaurant(t, db, "Pasta Place")
	f := createFood(t, db, rest.ID, "Carbonara", "40.00", 10)
	order := placeOrder(t, db, orderSvc, user.ID, f.ID)
	p := orderPayment(t, db, order.ID)

	_, err := paySvc.CreateCheckoutSession(context.Background(), user.ID, p.ID)
	require.NoError(t, err)

	provider.completed = false
	require.ErrorIs(t, paySvc.VerifyDigital(context.Background(), user.ID, p.ID), services.ErrPaymentIncomplete)

	// payment failed, order and cart untouched
	require.Equal(t, "Failed", paymentStatusName(t, db, p.ID))
	require.Equal(t, "Pending", statusName(t, db, order.ID))
	total, _, n := cartTotals(t, db, user.ID)
	require.Equal(t, 1, n)
	requireDecimal(t, "40.00", total)
}

func TestVerifyDigitalIsIdempotentOncePaid(t *testing.T) {
	db := testDB(t)
	provider := newFakeProvider()
	orderSvc := newOrderService(db)
	paySvc := newPaymentService(db, provider)
	user := createCustomer(t, db, "alice@test")
	rest := createRestaurant(t, db, "Pasta Place")
	f := createFood(t, db, rest.ID, "Carbonara", "40.00", 10)
	order := placeOrder(t, db, orderSvc, user.ID, f.ID)
	p := orderPayment(t, db, order.ID)

	_, err := paySvc.CreateCheckoutSession(context.Background(), user.ID, p.ID)
	require.NoError(t, err)
	provider.completed = true
	require.NoError(t, paySvc.VerifyDigital(context.Background(), user.ID, p.ID))

	// status moved on since; a repeated verify must not regress it
	require.NoError(t, orderSvc.UpdateStatusAsAdmin(order.ID, "Preparing"))
	require.NoError(t, paySvc.VerifyDigital(context.Background(), user.ID, p.ID))
	require.Equal(t, "Preparing", statusName(t, db, order.ID))
	require.Equal(t, "Paid", paymentStatusName(t, db, p.ID))
}

func TestVerifyCODAfterCancelDoesNotSettle(t *testing.T) {
	db := testDB(t)
	orderSvc := newOrderService(db)
	paySvc := newPaymentService(db, newFakeProvider())
	notifier := &recordingNotifier{}
	paySvc.SetNotifier(notifier)
	user := createCustomer(t, db, "alice@test")
	rest := createRestaurant(t, db, "Pasta Place")
	f := createFood(t, db, rest.ID, "Carbonara", "12.50", 10)
	order := placeOrder(t, db, orderSvc, user.ID, f.ID)
	p := orderPayment(t, db, order.ID)

	require.NoError(t, paySvc.UpdateMethod(user.ID, p.ID, "Cash on Delivery"))
	require.NoError(t, orderSvc.CancelAsCustomer(user.ID, order.ID))

	require.ErrorIs(t, paySvc.VerifyCOD(user.ID, order.ID), services.ErrInvalidTransition)

	// nothing settled: payment pending, cart intact, no event pushed
	require.Equal(t, "Cancelled", statusName(t, db, order.ID))
	require.Equal(t, "Pending", paymentStatusName(t, db, p.ID))
	total, _, n := cartTotals(t, db, user.ID)
	require.Equal(t, 1, n)
	requireDecimal(t, "12.50", total)
	require.Empty(t, notifier.events)
}

func TestVerifyDigitalAfterCancelDoesNotSettle(t *testing.T) {
	db := testDB(t)
	provider := newFakeProvider()
	orderSvc := newOrderService(db)
	paySvc := newPaymentService(db, provider)
	user := createCustomer(t, db, "alice@test")
	rest := createRestaurant(t, db, "Pasta Place")
	f := createFood(t, db, rest.ID, "Carbonara", "40.00", 10)
	order := placeOrder(t, db, orderSvc, user.ID, f.ID)
	p := orderPayment(t, db, order.ID)

	_, err := paySvc.CreateCheckoutSession(context.Background(), user.ID, p.ID)
	require.NoError(t, err)
	provider.completed = true

	require.NoError(t, orderSvc.CancelAsCustomer(user.ID, order.ID))

	require.ErrorIs(t, paySvc.VerifyDigital(context.Background(), user.ID, p.ID), services.ErrInvalidTransition)
	require.Equal(t, "Cancelled", statusName(t, db, order.ID))
	require.Equal(t, "Pending", paymentStatusName(t, db, p.ID))
}

func TestVerifySettlesQuietlyWhenOrderAlreadyPlaced(t *testing.T) {
	db := testDB(t)
	orderSvc := newOrderService(db)
	paySvc := newPaymentService(db, newFakeProvider())
	notifier := &recordingNotifier{}
	paySvc.SetNotifier(notifier)
	user := createCustomer(t, db, "alice@test")
	rest := createRestaurant(t, db, "Pasta Place")
	f := createFood(t, db, rest.ID, "Carbonara", "12.50", 10)
	order := placeOrder(t, db, orderSvc, user.ID, f.ID)
	p := orderPayment(t, db, order.ID)

	require.NoError(t, paySvc.UpdateMethod(user.ID, p.ID, "Cash on Delivery"))
	require.NoError(t, orderSvc.UpdateStatusAsAdmin(order.ID, "Order Placed"))

	// the order already left Pending; the payment still settles but no
	// duplicate status event goes out
	require.NoError(t, paySvc.VerifyCOD(user.ID, order.ID))
	require.Equal(t, "Order Placed", statusName(t, db, order.ID))
	require.Equal(t, "Paid", paymentStatusName(t, db, p.ID))
	require.Empty(t, notifier.events)
}

func TestVerifyDigitalWithoutSession(t *testing.T) {
	db := testDB(t)
	orderSvc := newOrderService(db)
	paySvc := newPaymentService(db, newFakeProvider())
	user := createCustomer(t, db, "alice@test")
	rest := createRestaurant(t, db, "Pasta Place")
	f := createFood(t, db, rest.ID, "Carbonara", "12.50", 10)
	order := placeOrder(t, db, orderSvc, user.ID, f.ID)
	p := orderPayment(t, db, order.ID)

	require.ErrorIs(t, paySvc.VerifyDigital(context.Background(), user.ID, p.ID), services.ErrInvalidInput)
}

func TestCreateCheckoutSessionRejectsNonDigital(t *testing.T) {
	db := testDB(t)
	orderSvc := newOrderService(db)
	paySvc := newPaymentService(db, newFakeProvider())
	user := createCustomer(t, db, "alice@test")
	rest := createRestaurant(t, db, "Pasta Place")
	f := createFood(t, db, rest.ID, "Carbonara", "12.50", 10)
	order := placeOrder(t, db, orderSvc, user.ID, f.ID)
	p := orderPayment(t, db, order.ID)

	require.NoError(t, paySvc.UpdateMethod(user.ID, p.ID, "Cash on Delivery"))
	_, err := paySvc.CreateCheckoutSession(context.Background(), user.ID, p.ID)
	require.ErrorIs(t, err, services.ErrInvalidInput)
}

func TestUpdateMethodRules(t *testing.T) {
	db := testDB(t)
	orderSvc := newOrderService(db)
	paySvc := newPaymentService(db, newFakeProvider())
	alice := createCustomer(t, db, "alice@test")
	bob := createCustomer(t, db, "bob@test")
	rest := createRestaurant(t, db, "Pasta Place")
	f := createFood(t, db, rest.ID, "Carbonara", "12.50", 10)
	order := placeOrder(t, db, orderSvc, alice.ID, f.ID)
	p := orderPayment(t, db, order.ID)

	// unknown method name
	require.ErrorIs(t, paySvc.UpdateMethod(alice.ID, p.ID, "Barter"), services.ErrInvalidInput)

	// not the payer
	require.ErrorIs(t, paySvc.UpdateMethod(bob.ID, p.ID, "Cash on Delivery"), services.ErrNotFound)

	// settled payments are frozen
	require.NoError(t, paySvc.UpdateMethod(alice.ID, p.ID, "Cash on Delivery"))
	require.NoError(t, paySvc.VerifyCOD(alice.ID, order.ID))
	require.ErrorIs(t, paySvc.UpdateMethod(alice.ID, p.ID, "Digital"), services.ErrInvalidInput)
}

func TestGetForOrder(t *testing.T) {
	db := testDB(t)
	orderSvc := newOrderService(db)
	paySvc := newPaymentService(db, newFakeProvider())
	alice := createCustomer(t, db, "alice@test")
	bob := createCustomer(t, db, "bob@test")
	rest := createRestaurant(t, db, "Pasta Place")
	f := createFood(t, db, rest.ID, "Carbonara", "12.50", 10)
	order := placeOrder(t, db, orderSvc, alice.ID, f.ID)

	p, err := paySvc.GetForOrder(alice.ID, order.ID)
	require.NoError(t, err)
	require.Equal(t, order.ID, p.OrderID)

	_, err = paySvc.GetForOrder(bob.ID, order.ID)
	require.ErrorIs(t, err, services.ErrNotFound)
}

func TestSettleNotifiesStatusChange(t *testing.T) {
	db := testDB(t)
	orderSvc := newOrderService(db)
	paySvc := newPaymentService(db, newFakeProvider())
	notifier := &recordingNotifier{}
	paySvc.SetNotifier(notifier)
	user := createCustomer(t, db, "alice@test")
	rest := createRestaurant(t, db, "Pasta Place")
	f := createFood(t, db, rest.ID, "Carbonara", "12.50", 10)
	order := placeOrder(t, db, orderSvc, user.ID, f.ID)
	p := orderPayment(t, db, order.ID)

	require.NoError(t, paySvc.UpdateMethod(user.ID, p.ID, "Cash on Delivery"))
	require.NoError(t, paySvc.VerifyCOD(user.ID, order.ID))
	require.Equal(t, []string{"Order Placed"}, notifier.events)
}
