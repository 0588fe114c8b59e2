package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/yazeedhani/Gytshop-API/internal/domain"
	"github.com/yazeedhani/Gytshop-API/internal/dto"
	"github.com/yazeedhani/Gytshop-API/internal/repository"
	"github.com/yazeedhani/Gytshop-API/pkg/errs"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// maxMutationRetries bounds the optimistic-concurrency retry loop around
// every cart mutation. Exhaustion surfaces as ErrConflict.
const maxMutationRetries = 5

type OrderServiceImpl struct {
	repo     repository.Repository
	producer EventProducer
}

func CreateOrderService(repo repository.Repository, producer EventProducer) OrderService {
	return &OrderServiceImpl{repo: repo, producer: producer}
}

func (s *OrderServiceImpl) GetOpenOrder(ctx context.Context, caller string, owner string) (resp dto.OrderResponse, err error) {
	if caller != owner {
		return resp, errs.ErrUnauthorized
	}

	order, err := s.repo.GetOpenOrderByOwner(ctx, owner)
	if err != nil {
		return
	}

	return s.buildOrderResponse(ctx, order)
}

func (s *OrderServiceImpl) AddProductToCart(ctx context.Context, owner string, productID string) (resp dto.OrderResponse, err error) {
	pid, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return resp, errs.ErrNotFound
	}

	for attempt := 0; attempt < maxMutationRetries; attempt++ {
		order, err := s.getOrCreateOpenOrder(ctx, owner)
		if errors.Is(err, errs.ErrConflict) {
			continue
		}
		if err != nil {
			return resp, err
		}

		product, err := s.repo.GetProductByID(ctx, pid)
		if err != nil {
			return resp, err
		}
		if product.Stock < 1 {
			return resp, errs.ErrOutOfStock
		}

		updated := order
		updated.OrderedProducts = append(append([]primitive.ObjectID{}, order.OrderedProducts...), pid)
		updated.Quantity = int64(len(updated.OrderedProducts))

		err = s.repo.HandleTrx(ctx, func(txCtx context.Context) error {
			if err := s.repo.AdjustProductStock(txCtx, pid, -1); err != nil {
				return err
			}
			return s.repo.UpdateOrderItems(txCtx, updated)
		})
		if errors.Is(err, errs.ErrConflict) {
			continue
		}
		if err != nil {
			return resp, err
		}

		return s.buildOrderResponse(ctx, updated)
	}

	return resp, errs.ErrConflict
}

func (s *OrderServiceImpl) RemoveProductFromCart(ctx context.Context, caller string, owner string, productID string) (resp dto.OrderResponse, err error) {
	if caller != owner {
		return resp, errs.ErrUnauthorized
	}

	pid, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return resp, errs.ErrNotFound
	}

	for attempt := 0; attempt < maxMutationRetries; attempt++ {
		order, err := s.repo.GetOpenOrderByOwner(ctx, owner)
		if err != nil {
			return resp, err
		}

		remaining, removed := removeFirstOccurrence(order.OrderedProducts, pid)
		if !removed {
			return resp, errs.ErrNotFound
		}

		updated := order
		updated.OrderedProducts = remaining
		updated.Quantity = int64(len(remaining))

		err = s.repo.HandleTrx(ctx, func(txCtx context.Context) error {
			if err := s.repo.AdjustProductStock(txCtx, pid, 1); err != nil {
				return err
			}
			return s.repo.UpdateOrderItems(txCtx, updated)
		})
		if errors.Is(err, errs.ErrConflict) {
			continue
		}
		if err != nil {
			return resp, err
		}

		return s.buildOrderResponse(ctx, updated)
	}

	return resp, errs.ErrConflict
}

func (s *OrderServiceImpl) ClearCart(ctx context.Context, caller string, owner string) (resp dto.OrderResponse, err error) {
	if caller != owner {
		return resp, errs.ErrUnauthorized
	}

	for attempt := 0; attempt < maxMutationRetries; attempt++ {
		order, err := s.repo.GetOpenOrderByOwner(ctx, owner)
		if err != nil {
			return resp, err
		}

		occurrences := map[primitive.ObjectID]int64{}
		for _, pid := range order.OrderedProducts {
			occurrences[pid]++
		}

		updated := order
		updated.OrderedProducts = []primitive.ObjectID{}
		updated.Quantity = 0

		err = s.repo.HandleTrx(ctx, func(txCtx context.Context) error {
			for pid, count := range occurrences {
				if err := s.repo.AdjustProductStock(txCtx, pid, count); err != nil {
					return err
				}
			}
			return s.repo.UpdateOrderItems(txCtx, updated)
		})
		if errors.Is(err, errs.ErrConflict) {
			continue
		}
		if err != nil {
			return resp, err
		}

		return s.buildOrderResponse(ctx, updated)
	}

	return resp, errs.ErrConflict
}

// SetTotalPrice stores a client-computed display total. Billing never trusts
// it; checkout recomputes the amount from the catalog via CartTotal.
func (s *OrderServiceImpl) SetTotalPrice(ctx context.Context, caller string, orderID string, totalPrice float64) (err error) {
	if totalPrice < 0 {
		return errs.ErrClient
	}

	oid, err := primitive.ObjectIDFromHex(orderID)
	if err != nil {
		return errs.ErrNotFound
	}

	for attempt := 0; attempt < maxMutationRetries; attempt++ {
		order, err := s.repo.GetOrderByID(ctx, oid)
		if err != nil {
			return err
		}
		if order.Owner != caller {
			return errs.ErrUnauthorized
		}
		if order.Status == domain.OrderStatusPlaced {
			return errs.ErrOrderAlreadyPlaced
		}

		err = s.repo.SetOrderTotalPrice(ctx, order, totalPrice)
		if errors.Is(err, errs.ErrConflict) {
			continue
		}
		return err
	}

	return errs.ErrConflict
}

// CartTotal resolves the owner's open cart against authoritative catalog
// prices. This is the only total the payment flow bills against.
func (s *OrderServiceImpl) CartTotal(ctx context.Context, owner string) (order domain.Order, total float64, err error) {
	order, err = s.repo.GetOpenOrderByOwner(ctx, owner)
	if err != nil {
		return
	}

	products, err := s.repo.GetProductsByIDs(ctx, uniqueIDs(order.OrderedProducts))
	if err != nil {
		return
	}

	prices := map[primitive.ObjectID]float64{}
	for _, product := range products {
		prices[product.ID] = product.Price
	}

	for _, pid := range order.OrderedProducts {
		price, ok := prices[pid]
		if !ok {
			return order, 0, errs.ErrNotFound
		}
		total += price
	}

	return order, total, nil
}

func (s *OrderServiceImpl) FinalizeOrder(ctx context.Context, orderID primitive.ObjectID) (order domain.Order, err error) {
	for attempt := 0; attempt < maxMutationRetries; attempt++ {
		order, err = s.repo.GetOrderByID(ctx, orderID)
		if err != nil {
			return
		}
		if order.Status == domain.OrderStatusPlaced {
			return order, errs.ErrOrderAlreadyPlaced
		}
		if len(order.OrderedProducts) == 0 {
			return order, errs.ErrEmptyOrder
		}

		err = s.repo.PlaceOrder(ctx, order)
		if errors.Is(err, errs.ErrConflict) {
			continue
		}
		if err != nil {
			return
		}

		order.Status = domain.OrderStatusPlaced
		if err := s.producer.Publish("order_placed", order.ID.Hex(), order); err != nil {
			log.Ctx(ctx).Error().Err(err).Str("component", "FinalizeOrder").Msg("")
		}

		return order, nil
	}

	return order, errs.ErrConflict
}

func (s *OrderServiceImpl) getOrCreateOpenOrder(ctx context.Context, owner string) (order domain.Order, err error) {
	order, err = s.repo.GetOpenOrderByOwner(ctx, owner)
	if err == nil {
		return order, nil
	}
	if !errors.Is(err, errs.ErrNotFound) {
		return
	}

	now := time.Now().Unix()
	order = domain.Order{
		Owner:           owner,
		OrderedProducts: []primitive.ObjectID{},
		Quantity:        0,
		Status:          domain.OrderStatusOpen,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	id, err := s.repo.AddOrder(ctx, order)
	if err != nil {
		return
	}

	order.ID = id
	return order, nil
}

func (s *OrderServiceImpl) buildOrderResponse(ctx context.Context, order domain.Order) (resp dto.OrderResponse, err error) {
	products, err := s.repo.GetProductsByIDs(ctx, uniqueIDs(order.OrderedProducts))
	if err != nil {
		return
	}

	byID := map[primitive.ObjectID]domain.Product{}
	for _, product := range products {
		byID[product.ID] = product
	}

	resp = dto.OrderResponse{
		ID:         order.ID.Hex(),
		Owner:      order.Owner,
		Status:     order.Status,
		Quantity:   order.Quantity,
		TotalPrice: order.TotalPrice,
		Products:   []dto.ProductResponse{},
	}

	for _, pid := range order.OrderedProducts {
		if product, ok := byID[pid]; ok {
			resp.Products = append(resp.Products, toProductResponse(product))
		}
	}

	return resp, nil
}

// removeFirstOccurrence drops exactly one matching entry by equality. Units
// are never removed by positional index.
func removeFirstOccurrence(ids []primitive.ObjectID, target primitive.ObjectID) ([]primitive.ObjectID, bool) {
	out := make([]primitive.ObjectID, 0, len(ids))
	removed := false
	for _, id := range ids {
		if !removed && id == target {
			removed = true
			continue
		}
		out = append(out, id)
	}
	return out, removed
}

func uniqueIDs(ids []primitive.ObjectID) []primitive.ObjectID {
	seen := map[primitive.ObjectID]struct{}{}
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
