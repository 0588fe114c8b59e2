package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/yazeedhani/Gytshop-API/internal/domain"
	"github.com/yazeedhani/Gytshop-API/internal/dto"
	"github.com/yazeedhani/Gytshop-API/internal/repository"
	pkgdto "github.com/yazeedhani/Gytshop-API/pkg/dto"
	"github.com/yazeedhani/Gytshop-API/pkg/errs"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// memoryRepository mimics the MongoDB repository's semantics in memory:
// conditional stock updates, version-guarded order writes, the unique
// open-order-per-owner constraint, and all-or-nothing HandleTrx rollback.
type memoryRepository struct {
	mu       sync.RWMutex
	products map[primitive.ObjectID]domain.Product
	orders   map[primitive.ObjectID]domain.Order
	payments map[primitive.ObjectID]domain.Payment
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{
		products: map[primitive.ObjectID]domain.Product{},
		orders:   map[primitive.ObjectID]domain.Order{},
		payments: map[primitive.ObjectID]domain.Payment{},
	}
}

var _ repository.Repository = (*memoryRepository)(nil)

type trxKey struct{}

func (r *memoryRepository) locked(ctx context.Context, fn func() error) error {
	if ctx.Value(trxKey{}) != nil {
		return fn()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return fn()
}

func cloneProduct(p domain.Product) domain.Product {
	p.Reviews = append([]domain.Review{}, p.Reviews...)
	return p
}

func cloneOrder(o domain.Order) domain.Order {
	o.OrderedProducts = append([]primitive.ObjectID{}, o.OrderedProducts...)
	return o
}

func (r *memoryRepository) snapshot() (map[primitive.ObjectID]domain.Product, map[primitive.ObjectID]domain.Order, map[primitive.ObjectID]domain.Payment) {
	products := map[primitive.ObjectID]domain.Product{}
	for k, v := range r.products {
		products[k] = cloneProduct(v)
	}
	orders := map[primitive.ObjectID]domain.Order{}
	for k, v := range r.orders {
		orders[k] = cloneOrder(v)
	}
	payments := map[primitive.ObjectID]domain.Payment{}
	for k, v := range r.payments {
		payments[k] = v
	}
	return products, orders, payments
}

func (r *memoryRepository) HandleTrx(ctx context.Context, fn func(ctx context.Context) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	products, orders, payments := r.snapshot()

	err := fn(context.WithValue(ctx, trxKey{}, struct{}{}))
	if err != nil {
		r.products = products
		r.orders = orders
		r.payments = payments
	}

	return err
}

func (r *memoryRepository) AddProduct(ctx context.Context, data domain.Product) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	err := r.locked(ctx, func() error {
		data.ID = id
		r.products[id] = cloneProduct(data)
		return nil
	})
	return id, err
}

func (r *memoryRepository) GetProducts(ctx context.Context, param pkgdto.Filter) (data []domain.Product, err error) {
	err = r.locked(ctx, func() error {
		for _, product := range r.products {
			if param.Category != "" && product.Category != param.Category {
				continue
			}
			if param.Q != "" && !strings.Contains(strings.ToLower(product.Name), strings.ToLower(param.Q)) {
				continue
			}
			data = append(data, cloneProduct(product))
		}
		return nil
	})
	return
}

func (r *memoryRepository) GetProductByID(ctx context.Context, id primitive.ObjectID) (product domain.Product, err error) {
	err = r.locked(ctx, func() error {
		stored, ok := r.products[id]
		if !ok {
			return errs.ErrNotFound
		}
		product = cloneProduct(stored)
		return nil
	})
	return
}

func (r *memoryRepository) GetProductsByIDs(ctx context.Context, ids []primitive.ObjectID) (data []domain.Product, err error) {
	err = r.locked(ctx, func() error {
		for _, id := range ids {
			if product, ok := r.products[id]; ok {
				data = append(data, cloneProduct(product))
			}
		}
		return nil
	})
	return
}

func (r *memoryRepository) UpdateProduct(ctx context.Context, data domain.Product) error {
	return r.locked(ctx, func() error {
		stored, ok := r.products[data.ID]
		if !ok {
			return errs.ErrNotFound
		}
		stored.Name = data.Name
		stored.Description = data.Description
		stored.Price = data.Price
		stored.ImageURL = data.ImageURL
		stored.Version++
		r.products[data.ID] = stored
		return nil
	})
}

func (r *memoryRepository) DeleteProduct(ctx context.Context, id primitive.ObjectID) error {
	return r.locked(ctx, func() error {
		if _, ok := r.products[id]; !ok {
			return errs.ErrNotFound
		}
		delete(r.products, id)
		return nil
	})
}

func (r *memoryRepository) AddProductReview(ctx context.Context, id primitive.ObjectID, review domain.Review) error {
	return r.locked(ctx, func() error {
		stored, ok := r.products[id]
		if !ok {
			return errs.ErrNotFound
		}
		stored.Reviews = append(stored.Reviews, review)
		r.products[id] = stored
		return nil
	})
}

func (r *memoryRepository) AdjustProductStock(ctx context.Context, id primitive.ObjectID, delta int64) error {
	return r.locked(ctx, func() error {
		stored, ok := r.products[id]
		if !ok {
			return errs.ErrNotFound
		}
		if delta < 0 && stored.Stock < -delta {
			return errs.ErrOutOfStock
		}
		stored.Stock += delta
		stored.Version++
		r.products[id] = stored
		return nil
	})
}

func (r *memoryRepository) AddOrder(ctx context.Context, data domain.Order) (id primitive.ObjectID, err error) {
	err = r.locked(ctx, func() error {
		for _, order := range r.orders {
			if order.Owner == data.Owner && order.Status == domain.OrderStatusOpen {
				return errs.ErrConflict
			}
		}
		id = primitive.NewObjectID()
		data.ID = id
		r.orders[id] = cloneOrder(data)
		return nil
	})
	return
}

func (r *memoryRepository) GetOrderByID(ctx context.Context, id primitive.ObjectID) (order domain.Order, err error) {
	err = r.locked(ctx, func() error {
		stored, ok := r.orders[id]
		if !ok {
			return errs.ErrNotFound
		}
		order = cloneOrder(stored)
		return nil
	})
	return
}

func (r *memoryRepository) GetOpenOrderByOwner(ctx context.Context, owner string) (order domain.Order, err error) {
	err = r.locked(ctx, func() error {
		for _, stored := range r.orders {
			if stored.Owner == owner && stored.Status == domain.OrderStatusOpen {
				order = cloneOrder(stored)
				return nil
			}
		}
		return errs.ErrNotFound
	})
	return
}

func (r *memoryRepository) UpdateOrderItems(ctx context.Context, data domain.Order) error {
	return r.locked(ctx, func() error {
		stored, ok := r.orders[data.ID]
		if !ok || stored.Version != data.Version || stored.Status != domain.OrderStatusOpen {
			return errs.ErrConflict
		}
		stored.OrderedProducts = append([]primitive.ObjectID{}, data.OrderedProducts...)
		stored.Quantity = data.Quantity
		stored.Version++
		r.orders[data.ID] = stored
		return nil
	})
}

func (r *memoryRepository) SetOrderTotalPrice(ctx context.Context, data domain.Order, totalPrice float64) error {
	return r.locked(ctx, func() error {
		stored, ok := r.orders[data.ID]
		if !ok || stored.Version != data.Version || stored.Status != domain.OrderStatusOpen {
			return errs.ErrConflict
		}
		stored.TotalPrice = &totalPrice
		stored.Version++
		r.orders[data.ID] = stored
		return nil
	})
}

func (r *memoryRepository) PlaceOrder(ctx context.Context, data domain.Order) error {
	return r.locked(ctx, func() error {
		stored, ok := r.orders[data.ID]
		if !ok || stored.Version != data.Version || stored.Status != domain.OrderStatusOpen {
			return errs.ErrConflict
		}
		stored.Status = domain.OrderStatusPlaced
		stored.Version++
		r.orders[data.ID] = stored
		return nil
	})
}

func (r *memoryRepository) AddPayment(ctx context.Context, data domain.Payment) (id primitive.ObjectID, err error) {
	err = r.locked(ctx, func() error {
		id = primitive.NewObjectID()
		data.ID = id
		r.payments[id] = data
		return nil
	})
	return
}

func (r *memoryRepository) GetPaymentByTransactionNumber(ctx context.Context, transactionNumber string) (payment domain.Payment, err error) {
	err = r.locked(ctx, func() error {
		for _, stored := range r.payments {
			if stored.TransactionNumber == transactionNumber {
				payment = stored
				return nil
			}
		}
		return errs.ErrNotFound
	})
	return
}

func (r *memoryRepository) UpdatePaymentStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	return r.locked(ctx, func() error {
		stored, ok := r.payments[id]
		if !ok {
			return errs.ErrNotFound
		}
		stored.Status = status
		r.payments[id] = stored
		return nil
	})
}

func (r *memoryRepository) GetExpiredPendingPayments(ctx context.Context, now int64) (data []domain.Payment, err error) {
	err = r.locked(ctx, func() error {
		for _, payment := range r.payments {
			if payment.Status == domain.PaymentStatusPending && payment.ExpiredAt < now {
				data = append(data, payment)
			}
		}
		return nil
	})
	return
}

type publishedEvent struct {
	EventType string
	Key       string
}

type fakeProducer struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (p *fakeProducer) Publish(eventType string, key string, data interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{EventType: eventType, Key: key})
	return nil
}

func (p *fakeProducer) eventTypes() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]string, 0, len(p.events))
	for _, event := range p.events {
		types = append(types, event.EventType)
	}
	return types
}

type fakeGateway struct {
	mu      sync.Mutex
	result  dto.ChargeResult
	err     error
	charges []int64
}

func (g *fakeGateway) Charge(ctx context.Context, transactionNumber string, amount int64, paymentMethodID string) (dto.ChargeResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.charges = append(g.charges, amount)
	if g.err != nil {
		return dto.ChargeResult{}, g.err
	}
	result := g.result
	if result.ExpiryTime == 0 {
		result.ExpiryTime = time.Now().Add(15 * time.Minute).Unix()
	}
	return result, nil
}
