package repository

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/yazeedhani/Gytshop-API/internal/domain"
	"github.com/yazeedhani/Gytshop-API/pkg/errs"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func (r *MongoDBRepositoryImpl) AddOrder(ctx context.Context, data domain.Order) (id primitive.ObjectID, err error) {
	result, err := r.db.Collection("orders").InsertOne(ctx, data)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			// another request created this owner's open order first
			return id, errs.ErrConflict
		}
		log.Ctx(ctx).Error().Err(err).Str("component", "AddOrder").Msg("")
		return
	}

	return result.InsertedID.(primitive.ObjectID), err
}

func (r *MongoDBRepositoryImpl) GetOrderByID(ctx context.Context, id primitive.ObjectID) (order domain.Order, err error) {
	filter := bson.D{{Key: "_id", Value: id}}

	err = r.db.Collection("orders").FindOne(ctx, filter).Decode(&order)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return order, errs.ErrNotFound
		}
		log.Ctx(ctx).Error().Err(err).Str("component", "GetOrderByID").Msg("")

		return order, err
	}
	return order, nil
}

func (r *MongoDBRepositoryImpl) GetOpenOrderByOwner(ctx context.Context, owner string) (order domain.Order, err error) {
	filter := bson.D{
		{Key: "owner", Value: owner},
		{Key: "status", Value: domain.OrderStatusOpen},
	}

	err = r.db.Collection("orders").FindOne(ctx, filter).Decode(&order)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return order, errs.ErrNotFound
		}
		log.Ctx(ctx).Error().Err(err).Str("component", "GetOpenOrderByOwner").Msg("")

		return order, err
	}
	return order, nil
}

// UpdateOrderItems rewrites the product list and quantity counter. The filter
// matches on the version the caller read, so a lost race surfaces as
// ErrConflict instead of overwriting a concurrent mutation.
func (r *MongoDBRepositoryImpl) UpdateOrderItems(ctx context.Context, data domain.Order) (err error) {
	filter := bson.D{
		{Key: "_id", Value: data.ID},
		{Key: "version", Value: data.Version},
		{Key: "status", Value: domain.OrderStatusOpen},
	}

	update := bson.D{
		{Key: "$set", Value: bson.D{
			{Key: "ordered_products", Value: data.OrderedProducts},
			{Key: "quantity", Value: data.Quantity},
			{Key: "updated_at", Value: time.Now().Unix()},
		}},
		{Key: "$inc", Value: bson.D{{Key: "version", Value: 1}}},
	}

	result, err := r.db.Collection("orders").UpdateOne(ctx, filter, update)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "UpdateOrderItems").Msg("")
		return
	}

	if result.MatchedCount == 0 {
		return errs.ErrConflict
	}

	return
}

func (r *MongoDBRepositoryImpl) SetOrderTotalPrice(ctx context.Context, data domain.Order, totalPrice float64) (err error) {
	filter := bson.D{
		{Key: "_id", Value: data.ID},
		{Key: "version", Value: data.Version},
		{Key: "status", Value: domain.OrderStatusOpen},
	}

	update := bson.D{
		{Key: "$set", Value: bson.D{
			{Key: "total_price", Value: totalPrice},
			{Key: "updated_at", Value: time.Now().Unix()},
		}},
		{Key: "$inc", Value: bson.D{{Key: "version", Value: 1}}},
	}

	result, err := r.db.Collection("orders").UpdateOne(ctx, filter, update)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "SetOrderTotalPrice").Msg("")
		return
	}

	if result.MatchedCount == 0 {
		return errs.ErrConflict
	}

	return
}

func (r *MongoDBRepositoryImpl) PlaceOrder(ctx context.Context, data domain.Order) (err error) {
	filter := bson.D{
		{Key: "_id", Value: data.ID},
		{Key: "version", Value: data.Version},
		{Key: "status", Value: domain.OrderStatusOpen},
	}

	update := bson.D{
		{Key: "$set", Value: bson.D{
			{Key: "status", Value: domain.OrderStatusPlaced},
			{Key: "updated_at", Value: time.Now().Unix()},
		}},
		{Key: "$inc", Value: bson.D{{Key: "version", Value: 1}}},
	}

	result, err := r.db.Collection("orders").UpdateOne(ctx, filter, update)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "PlaceOrder").Msg("")
		return
	}

	if result.MatchedCount == 0 {
		return errs.ErrConflict
	}

	return
}

func (r *MongoDBRepositoryImpl) AddPayment(ctx context.Context, data domain.Payment) (id primitive.ObjectID, err error) {
	result, err := r.db.Collection("payments").InsertOne(ctx, data)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "AddPayment").Msg("")
		return
	}

	return result.InsertedID.(primitive.ObjectID), err
}

func (r *MongoDBRepositoryImpl) GetPaymentByTransactionNumber(ctx context.Context, transactionNumber string) (payment domain.Payment, err error) {
	filter := bson.D{{Key: "transaction_number", Value: transactionNumber}}

	err = r.db.Collection("payments").FindOne(ctx, filter).Decode(&payment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return payment, errs.ErrNotFound
		}
		log.Ctx(ctx).Error().Err(err).Str("component", "GetPaymentByTransactionNumber").Msg("")

		return payment, err
	}
	return payment, nil
}

func (r *MongoDBRepositoryImpl) UpdatePaymentStatus(ctx context.Context, id primitive.ObjectID, status string) (err error) {
	filter := bson.D{{Key: "_id", Value: id}}

	update := bson.D{
		{Key: "$set", Value: bson.D{
			{Key: "status", Value: status},
			{Key: "updated_at", Value: time.Now().Unix()},
		}},
	}

	result, err := r.db.Collection("payments").UpdateOne(ctx, filter, update)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "UpdatePaymentStatus").Msg("")
		return
	}

	if result.MatchedCount == 0 {
		return errs.ErrNotFound
	}

	return
}

func (r *MongoDBRepositoryImpl) GetExpiredPendingPayments(ctx context.Context, now int64) (data []domain.Payment, err error) {
	filter := bson.M{
		"status":     domain.PaymentStatusPending,
		"expired_at": bson.M{"$lt": now},
	}

	cursor, err := r.db.Collection("payments").Find(ctx, filter)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetExpiredPendingPayments").Msg("")
		return
	}

	if err = cursor.All(ctx, &data); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetExpiredPendingPayments").Msg("")
		return
	}

	return data, nil
}
