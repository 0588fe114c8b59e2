package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yazeedhani/Gytshop-API/config"
	"github.com/yazeedhani/Gytshop-API/internal/domain"
	"github.com/yazeedhani/Gytshop-API/internal/dto"
	"github.com/yazeedhani/Gytshop-API/pkg/errs"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type paymentFixture struct {
	payments PaymentService
	orders   OrderService
	repo     *memoryRepository
	gateway  *fakeGateway
}

func newPaymentFixture() *paymentFixture {
	repo := newMemoryRepository()
	producer := &fakeProducer{}
	gateway := &fakeGateway{result: dto.ChargeResult{TransactionStatus: "pending"}}
	orders := CreateOrderService(repo, producer)

	return &paymentFixture{
		payments: CreatePaymentService(repo, orders, gateway, config.Config{}),
		orders:   orders,
		repo:     repo,
		gateway:  gateway,
	}
}

// fillCart puts one 50.00 product into the owner's cart and returns the cart.
func (f *paymentFixture) fillCart(t *testing.T, owner string) dto.OrderResponse {
	t.Helper()

	p := seedProduct(t, f.repo, "headphones", 50, 3)
	resp, err := f.orders.AddProductToCart(context.Background(), owner, p.Hex())
	require.NoError(t, err)

	return resp
}

func (f *paymentFixture) orderStatus(t *testing.T, id string) string {
	t.Helper()

	oid, err := primitive.ObjectIDFromHex(id)
	require.NoError(t, err)

	order, err := f.repo.GetOrderByID(context.Background(), oid)
	require.NoError(t, err)

	return order.Status
}

func TestCreatePayment_Validation(t *testing.T) {
	f := newPaymentFixture()
	ctx := context.Background()

	_, err := f.payments.CreatePayment(ctx, "user-1", dto.PaymentRequest{Amount: 0})
	assert.ErrorIs(t, err, errs.ErrClient)

	// no open cart for this owner
	_, err = f.payments.CreatePayment(ctx, "user-1", dto.PaymentRequest{Amount: 50})
	assert.ErrorIs(t, err, errs.ErrNotFound)

	f.fillCart(t, "user-1")

	// the client-computed amount must match the trusted total
	_, err = f.payments.CreatePayment(ctx, "user-1", dto.PaymentRequest{Amount: 49})
	assert.ErrorIs(t, err, errs.ErrAmountMismatch)

	_, err = f.orders.ClearCart(ctx, "user-1", "user-1")
	require.NoError(t, err)

	_, err = f.payments.CreatePayment(ctx, "user-1", dto.PaymentRequest{Amount: 50})
	assert.ErrorIs(t, err, errs.ErrEmptyOrder)
}

func TestCreatePayment_GatewayFailure(t *testing.T) {
	f := newPaymentFixture()
	f.gateway.err = assert.AnError

	f.fillCart(t, "user-1")

	_, err := f.payments.CreatePayment(context.Background(), "user-1", dto.PaymentRequest{Amount: 50})
	assert.ErrorIs(t, err, errs.ErrPaymentGateway)
}

func TestCreatePayment_SettledChargeFinalizesOrder(t *testing.T) {
	f := newPaymentFixture()
	f.gateway.result = dto.ChargeResult{TransactionStatus: "capture"}

	cart := f.fillCart(t, "user-1")

	resp, err := f.payments.CreatePayment(context.Background(), "user-1", dto.PaymentRequest{Amount: 50})
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "Payment successful", resp.Message)
	require.NotEmpty(t, resp.TransactionNumber)

	assert.Equal(t, domain.OrderStatusPlaced, f.orderStatus(t, cart.ID))

	payment, err := f.repo.GetPaymentByTransactionNumber(context.Background(), resp.TransactionNumber)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusSuccess, payment.Status)
	assert.InDelta(t, 50, payment.Amount, 0.001)
	assert.Equal(t, []int64{50}, f.gateway.charges)
}

func TestCreatePayment_PendingChargeSettledByWebhook(t *testing.T) {
	f := newPaymentFixture()
	ctx := context.Background()

	cart := f.fillCart(t, "user-1")

	resp, err := f.payments.CreatePayment(ctx, "user-1", dto.PaymentRequest{Amount: 50})
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "Payment pending", resp.Message)
	assert.Equal(t, domain.OrderStatusOpen, f.orderStatus(t, cart.ID))

	err = f.payments.HandlePaymentNotification(ctx, dto.PaymentNotification{
		OrderID:           resp.TransactionNumber,
		TransactionStatus: "settlement",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusPlaced, f.orderStatus(t, cart.ID))

	payment, err := f.repo.GetPaymentByTransactionNumber(ctx, resp.TransactionNumber)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusSuccess, payment.Status)

	// a redelivered notification is a no-op
	err = f.payments.HandlePaymentNotification(ctx, dto.PaymentNotification{
		OrderID:           resp.TransactionNumber,
		TransactionStatus: "settlement",
	})
	assert.NoError(t, err)
}

func TestHandlePaymentNotification_UnknownTransaction(t *testing.T) {
	f := newPaymentFixture()

	err := f.payments.HandlePaymentNotification(context.Background(), dto.PaymentNotification{
		OrderID:           "missing-trx",
		TransactionStatus: "settlement",
	})
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestHandlePaymentNotification_ExpiredWindow(t *testing.T) {
	f := newPaymentFixture()
	f.gateway.result = dto.ChargeResult{
		TransactionStatus: "pending",
		ExpiryTime:        time.Now().Add(-time.Minute).Unix(),
	}
	ctx := context.Background()

	cart := f.fillCart(t, "user-1")

	resp, err := f.payments.CreatePayment(ctx, "user-1", dto.PaymentRequest{Amount: 50})
	require.NoError(t, err)

	err = f.payments.HandlePaymentNotification(ctx, dto.PaymentNotification{
		OrderID:           resp.TransactionNumber,
		TransactionStatus: "settlement",
	})
	assert.ErrorIs(t, err, errs.ErrPaymentExpired)

	// the cart survives the failed payment
	assert.Equal(t, domain.OrderStatusOpen, f.orderStatus(t, cart.ID))

	payment, err := f.repo.GetPaymentByTransactionNumber(ctx, resp.TransactionNumber)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusExpired, payment.Status)
}

func TestHandlePaymentNotification_DeniedCharge(t *testing.T) {
	f := newPaymentFixture()
	ctx := context.Background()

	f.fillCart(t, "user-1")

	resp, err := f.payments.CreatePayment(ctx, "user-1", dto.PaymentRequest{Amount: 50})
	require.NoError(t, err)

	err = f.payments.HandlePaymentNotification(ctx, dto.PaymentNotification{
		OrderID:           resp.TransactionNumber,
		TransactionStatus: "deny",
	})
	require.NoError(t, err)

	payment, err := f.repo.GetPaymentByTransactionNumber(ctx, resp.TransactionNumber)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusFailed, payment.Status)
}

func TestExpireStalePayments(t *testing.T) {
	f := newPaymentFixture()
	f.gateway.result = dto.ChargeResult{
		TransactionStatus: "pending",
		ExpiryTime:        time.Now().Add(-time.Minute).Unix(),
	}
	ctx := context.Background()

	f.fillCart(t, "user-1")

	resp, err := f.payments.CreatePayment(ctx, "user-1", dto.PaymentRequest{Amount: 50})
	require.NoError(t, err)

	f.payments.ExpireStalePayments()

	payment, err := f.repo.GetPaymentByTransactionNumber(ctx, resp.TransactionNumber)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusExpired, payment.Status)
}
