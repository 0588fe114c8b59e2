package repository

import (
	"context"

	"github.com/yazeedhani/Gytshop-API/internal/domain"
	pkgdto "github.com/yazeedhani/Gytshop-API/pkg/dto"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Repository interface {
	AddProduct(ctx context.Context, data domain.Product) (id primitive.ObjectID, err error)
	GetProducts(ctx context.Context, param pkgdto.Filter) (data []domain.Product, err error)
	GetProductByID(ctx context.Context, id primitive.ObjectID) (product domain.Product, err error)
	GetProductsByIDs(ctx context.Context, ids []primitive.ObjectID) (data []domain.Product, err error)
	UpdateProduct(ctx context.Context, data domain.Product) (err error)
	DeleteProduct(ctx context.Context, id primitive.ObjectID) (err error)
	AddProductReview(ctx context.Context, id primitive.ObjectID, review domain.Review) (err error)

	// AdjustProductStock is the single code path for every stock move. A
	// negative delta only matches when the remaining stock covers it, so
	// stock can never go below zero; zero matched documents surfaces as
	// ErrNotFound (missing product) or ErrOutOfStock (guard failed).
	AdjustProductStock(ctx context.Context, id primitive.ObjectID, delta int64) (err error)

	AddOrder(ctx context.Context, data domain.Order) (id primitive.ObjectID, err error)
	GetOrderByID(ctx context.Context, id primitive.ObjectID) (order domain.Order, err error)
	GetOpenOrderByOwner(ctx context.Context, owner string) (order domain.Order, err error)
	UpdateOrderItems(ctx context.Context, data domain.Order) (err error)
	SetOrderTotalPrice(ctx context.Context, data domain.Order, totalPrice float64) (err error)
	PlaceOrder(ctx context.Context, data domain.Order) (err error)

	AddPayment(ctx context.Context, data domain.Payment) (id primitive.ObjectID, err error)
	GetPaymentByTransactionNumber(ctx context.Context, transactionNumber string) (payment domain.Payment, err error)
	UpdatePaymentStatus(ctx context.Context, id primitive.ObjectID, status string) (err error)
	GetExpiredPendingPayments(ctx context.Context, now int64) (data []domain.Payment, err error)

	HandleTrx(ctx context.Context, fn func(ctx context.Context) error) error
}
