package cart

import (
	"context"
	"errors"
	"fmt"

	"gadgetshop-be/internal/db"
	"gadgetshop-be/internal/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// Repository mutates the product sets embedded in user documents.
type Repository interface {
	AddItem(ctx context.Context, kind Kind, userEmail string, productID primitive.ObjectID) (*db.UpdateResult, error)
	GetItemIDs(ctx context.Context, kind Kind, userID primitive.ObjectID) ([]primitive.ObjectID, error)
	RemoveItem(ctx context.Context, kind Kind, userID, productID primitive.ObjectID) (*db.UpdateResult, error)
	PullProduct(ctx context.Context, productID primitive.ObjectID) (*db.UpdateResult, error)
}

type repository struct {
	users *mongo.Collection
}

func NewRepository(users *mongo.Collection) Repository {
	return &repository{users: users}
}

type listsDoc struct {
	Cart     []primitive.ObjectID `bson:"cart"`
	Wishlist []primitive.ObjectID `bson:"wishlist"`
}

func (d listsDoc) ids(kind Kind) []primitive.ObjectID {
	if kind == KindWishlist {
		return d.Wishlist
	}
	return d.Cart
}

func (r *repository) AddItem(ctx context.Context, kind Kind, userEmail string, productID primitive.ObjectID) (*db.UpdateResult, error) {
	res, err := r.users.UpdateOne(ctx,
		bson.M{"email": userEmail},
		bson.M{"$addToSet": bson.M{string(kind): productID}},
	)
	if err != nil {
		logger.FromCtx(ctx).Error("db: failed to add item",
			zap.String("kind", string(kind)),
			zap.String("product_id", productID.Hex()),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %w", ErrFailedAddItem, err)
	}
	return db.NewUpdateResult(res), nil
}

// GetItemIDs returns nil without error when the user does not exist.
func (r *repository) GetItemIDs(ctx context.Context, kind Kind, userID primitive.ObjectID) ([]primitive.ObjectID, error) {
	var doc listsDoc
	err := r.users.FindOne(ctx,
		bson.M{"_id": userID},
		options.FindOne().SetProjection(bson.M{string(kind): 1}),
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedGetItems, err)
	}
	return doc.ids(kind), nil
}

func (r *repository) RemoveItem(ctx context.Context, kind Kind, userID, productID primitive.ObjectID) (*db.UpdateResult, error) {
	res, err := r.users.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$pull": bson.M{string(kind): productID}},
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedRemoveItem, err)
	}
	return db.NewUpdateResult(res), nil
}

// PullProduct removes productID from every user's cart and wishlist.
func (r *repository) PullProduct(ctx context.Context, productID primitive.ObjectID) (*db.UpdateResult, error) {
	res, err := r.users.UpdateMany(ctx,
		bson.M{"$or": bson.A{
			bson.M{string(KindCart): productID},
			bson.M{string(KindWishlist): productID},
		}},
		bson.M{"$pull": bson.M{
			string(KindCart):     productID,
			string(KindWishlist): productID,
		}},
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedPullProduct, err)
	}
	return db.NewUpdateResult(res), nil
}
