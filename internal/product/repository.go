package product

import (
	"context"
	"fmt"

	"gadgetshop-be/internal/db"
	"gadgetshop-be/internal/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, p Product) (*db.InsertResult, error)
	Find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]Product, error)
	Count(ctx context.Context, filter bson.M) (int64, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]Product, error)
	Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*db.UpdateResult, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*db.DeleteResult, error)
}

type repository struct {
	coll *mongo.Collection
}

func NewRepository(coll *mongo.Collection) Repository {
	return &repository{coll: coll}
}

func (r *repository) Create(ctx context.Context, p Product) (*db.InsertResult, error) {
	res, err := r.coll.InsertOne(ctx, p)
	if err != nil {
		logger.FromCtx(ctx).Error("db: failed to insert product",
			zap.String("title", p.Title),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %w", ErrFailedCreateProduct, err)
	}
	return db.NewInsertResult(res), nil
}

func (r *repository) Find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]Product, error) {
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedFindProducts, err)
	}
	defer cur.Close(ctx)

	products := []Product{}
	if err := cur.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedFindProducts, err)
	}
	return products, nil
}

func (r *repository) Count(ctx context.Context, filter bson.M) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrFailedCountProducts, err)
	}
	return n, nil
}

func (r *repository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]Product, error) {
	if len(ids) == 0 {
		return []Product{}, nil
	}
	return r.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, options.Find())
}

func (r *repository) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*db.UpdateResult, error) {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedUpdateProduct, err)
	}
	return db.NewUpdateResult(res), nil
}

func (r *repository) Delete(ctx context.Context, id primitive.ObjectID) (*db.DeleteResult, error) {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedDeleteProduct, err)
	}
	return db.NewDeleteResult(res), nil
}
