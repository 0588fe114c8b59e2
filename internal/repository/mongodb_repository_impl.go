package repository

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/yazeedhani/Gytshop-API/internal/domain"
	pkgdto "github.com/yazeedhani/Gytshop-API/pkg/dto"
	"github.com/yazeedhani/Gytshop-API/pkg/errs"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoDBRepositoryImpl struct {
	db *mongo.Database
}

func CreateNewMongoDBRepository(db *mongo.Database) Repository {
	return &MongoDBRepositoryImpl{db: db}
}

func (r *MongoDBRepositoryImpl) AddProduct(ctx context.Context, data domain.Product) (id primitive.ObjectID, err error) {
	result, err := r.db.Collection("products").InsertOne(ctx, data)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "AddProduct").Msg("")
		return
	}

	return result.InsertedID.(primitive.ObjectID), err
}

func (r *MongoDBRepositoryImpl) GetProducts(ctx context.Context, param pkgdto.Filter) (data []domain.Product, err error) {
	filter := bson.M{}
	if param.Category != "" {
		filter["category"] = param.Category
	}
	if param.Q != "" {
		filter["name"] = bson.M{"$regex": param.Q, "$options": "i"}
	}

	opts := options.Find()
	if param.Limit != 0 && param.Page != 0 {
		opts = opts.SetSkip((int64(param.Page) - 1) * int64(param.Limit)).SetLimit(int64(param.Limit))
	}

	cursor, err := r.db.Collection("products").Find(ctx, filter, opts)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetProducts").Msg("")
		return
	}

	if err = cursor.All(ctx, &data); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetProducts").Msg("")
		return
	}

	return data, nil
}

func (r *MongoDBRepositoryImpl) GetProductByID(ctx context.Context, id primitive.ObjectID) (product domain.Product, err error) {
	filter := bson.D{{Key: "_id", Value: id}}

	err = r.db.Collection("products").FindOne(ctx, filter).Decode(&product)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return product, errs.ErrNotFound
		}
		log.Ctx(ctx).Error().Err(err).Str("component", "GetProductByID").Msg("")

		return product, err
	}
	return product, nil
}

func (r *MongoDBRepositoryImpl) GetProductsByIDs(ctx context.Context, ids []primitive.ObjectID) (data []domain.Product, err error) {
	if len(ids) == 0 {
		return []domain.Product{}, nil
	}

	filter := bson.M{"_id": bson.M{"$in": ids}}

	cursor, err := r.db.Collection("products").Find(ctx, filter)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetProductsByIDs").Msg("")
		return
	}

	if err = cursor.All(ctx, &data); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetProductsByIDs").Msg("")
		return
	}

	return data, nil
}

func (r *MongoDBRepositoryImpl) UpdateProduct(ctx context.Context, data domain.Product) (err error) {
	filter := bson.D{{Key: "_id", Value: data.ID}}

	update := bson.D{
		{Key: "$set", Value: bson.D{
			{Key: "name", Value: data.Name},
			{Key: "description", Value: data.Description},
			{Key: "price", Value: data.Price},
			{Key: "image_url", Value: data.ImageURL},
			{Key: "updated_at", Value: time.Now().Unix()},
		}},
		{Key: "$inc", Value: bson.D{{Key: "version", Value: 1}}},
	}

	result, err := r.db.Collection("products").UpdateOne(ctx, filter, update)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "UpdateProduct").Msg("Failed to update product")
		return
	}

	if result.MatchedCount == 0 {
		return errs.ErrNotFound
	}

	return nil
}

func (r *MongoDBRepositoryImpl) DeleteProduct(ctx context.Context, id primitive.ObjectID) (err error) {
	filter := bson.D{{Key: "_id", Value: id}}

	result, err := r.db.Collection("products").DeleteOne(ctx, filter)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "DeleteProduct").Msg("")
		return
	}

	if result.DeletedCount == 0 {
		return errs.ErrNotFound
	}

	return
}

func (r *MongoDBRepositoryImpl) AddProductReview(ctx context.Context, id primitive.ObjectID, review domain.Review) (err error) {
	filter := bson.D{{Key: "_id", Value: id}}

	update := bson.D{
		{Key: "$push", Value: bson.D{{Key: "reviews", Value: review}}},
		{Key: "$set", Value: bson.D{{Key: "updated_at", Value: time.Now().Unix()}}},
	}

	result, err := r.db.Collection("products").UpdateOne(ctx, filter, update)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "AddProductReview").Msg("")
		return
	}

	if result.MatchedCount == 0 {
		return errs.ErrNotFound
	}

	return
}

func (r *MongoDBRepositoryImpl) AdjustProductStock(ctx context.Context, id primitive.ObjectID, delta int64) (err error) {
	filter := bson.M{"_id": id}
	if delta < 0 {
		// only match when the remaining stock covers the decrement
		filter["stock"] = bson.M{"$gte": -delta}
	}

	update := bson.D{
		{Key: "$inc", Value: bson.D{
			{Key: "stock", Value: delta},
			{Key: "version", Value: 1},
		}},
		{Key: "$set", Value: bson.D{{Key: "updated_at", Value: time.Now().Unix()}}},
	}

	result, err := r.db.Collection("products").UpdateOne(ctx, filter, update)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "AdjustProductStock").Msg("")
		return
	}

	if result.MatchedCount == 0 {
		_, err = r.GetProductByID(ctx, id)
		if err != nil {
			return err
		}
		return errs.ErrOutOfStock
	}

	return
}

func (r *MongoDBRepositoryImpl) HandleTrx(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := r.db.Client().StartSession()
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "HandleTrx").Msg("")
		return err
	}

	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		return nil, fn(sessCtx)
	})

	return err
}
