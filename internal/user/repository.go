package user

import (
	"context"
	"errors"
	"fmt"

	"gadgetshop-be/internal/db"
	"gadgetshop-be/internal/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Repository interface {
	FindByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context) ([]User, error)
	Create(ctx context.Context, u User) (*db.InsertResult, error)
	UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) (*db.UpdateResult, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*db.DeleteResult, error)
}

type repository struct {
	coll *mongo.Collection
}

func NewRepository(coll *mongo.Collection) Repository {
	return &repository{coll: coll}
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		logger.FromCtx(ctx).Error("db: failed to find user",
			zap.String("email", email),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %w", ErrFailedFindUser, err)
	}
	return &u, nil
}

func (r *repository) List(ctx context.Context) ([]User, error) {
	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedListUsers, err)
	}
	defer cur.Close(ctx)

	users := []User{}
	if err := cur.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedListUsers, err)
	}
	return users, nil
}

func (r *repository) Create(ctx context.Context, u User) (*db.InsertResult, error) {
	res, err := r.coll.InsertOne(ctx, u)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrUserExists
		}
		logger.FromCtx(ctx).Error("db: failed to insert user",
			zap.String("email", u.Email),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %w", ErrFailedCreateUser, err)
	}
	return db.NewInsertResult(res), nil
}

func (r *repository) UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) (*db.UpdateResult, error) {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedUpdateUser, err)
	}
	return db.NewUpdateResult(res), nil
}

func (r *repository) Delete(ctx context.Context, id primitive.ObjectID) (*db.DeleteResult, error) {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedDeleteUser, err)
	}
	return db.NewDeleteResult(res), nil
}
