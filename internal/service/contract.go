package service

import (
	"context"

	"github.com/yazeedhani/Gytshop-API/internal/domain"
	"github.com/yazeedhani/Gytshop-API/internal/dto"
	pkgdto "github.com/yazeedhani/Gytshop-API/pkg/dto"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ProductService interface {
	AddProduct(ctx context.Context, owner string, data dto.ProductRequest) (resp dto.ProductResponse, err error)
	GetProducts(ctx context.Context, param pkgdto.Filter) (resp []dto.ProductResponse, err error)
	GetProductByID(ctx context.Context, id string) (resp dto.ProductResponse, err error)
	UpdateProduct(ctx context.Context, caller string, data dto.ProductRequest) (err error)
	DeleteProduct(ctx context.Context, caller string, id string) (err error)
	AddReview(ctx context.Context, caller string, productID string, data dto.ReviewRequest) (resp dto.ProductResponse, err error)
}

type OrderService interface {
	GetOpenOrder(ctx context.Context, caller string, owner string) (resp dto.OrderResponse, err error)
	AddProductToCart(ctx context.Context, owner string, productID string) (resp dto.OrderResponse, err error)
	RemoveProductFromCart(ctx context.Context, caller string, owner string, productID string) (resp dto.OrderResponse, err error)
	ClearCart(ctx context.Context, caller string, owner string) (resp dto.OrderResponse, err error)
	SetTotalPrice(ctx context.Context, caller string, orderID string, totalPrice float64) (err error)
	CartTotal(ctx context.Context, owner string) (order domain.Order, total float64, err error)
	FinalizeOrder(ctx context.Context, orderID primitive.ObjectID) (order domain.Order, err error)
}

type PaymentService interface {
	CreatePayment(ctx context.Context, owner string, req dto.PaymentRequest) (resp dto.PaymentResponse, err error)
	HandlePaymentNotification(ctx context.Context, req dto.PaymentNotification) (err error)
	ExpireStalePayments()
}

// EventProducer publishes domain events to the message broker.
type EventProducer interface {
	Publish(eventType string, key string, data interface{}) error
}

// PaymentGateway is the boundary to the external payment processor.
type PaymentGateway interface {
	Charge(ctx context.Context, transactionNumber string, amount int64, paymentMethodID string) (dto.ChargeResult, error)
}
