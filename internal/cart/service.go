package cart

import (
	"context"
	"strings"

	"gadgetshop-be/internal/db"
	"gadgetshop-be/internal/logger"
	"gadgetshop-be/internal/product"
	"gadgetshop-be/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ProductLookup resolves stored product ids into product documents.
type ProductLookup interface {
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]product.Product, error)
}

// Service defines the business logic shared by carts and wishlists.
type Service interface {
	AddItem(ctx context.Context, kind Kind, input AddItemInput) (*db.UpdateResult, error)
	GetItems(ctx context.Context, kind Kind, userID string) ([]product.Product, error)
	RemoveItem(ctx context.Context, kind Kind, input RemoveItemInput) (*db.UpdateResult, error)
	ProductDeleted(ctx context.Context, productID primitive.ObjectID) error
}

type service struct {
	repo     Repository
	products ProductLookup
}

func NewService(repo Repository, products ProductLookup) Service {
	return &service{repo: repo, products: products}
}

// AddItem is idempotent: adding a product already in the set changes nothing.
func (s *service) AddItem(ctx context.Context, kind Kind, input AddItemInput) (*db.UpdateResult, error) {
	if !kind.Valid() {
		return nil, ErrInvalidKind
	}

	email := strings.TrimSpace(input.UserEmail)
	if email == "" {
		return nil, ErrUserEmailRequired
	}

	productID, err := utils.ParseObjectID(input.ProductID)
	if err != nil {
		return nil, err
	}

	return s.repo.AddItem(ctx, kind, email, productID)
}

// GetItems returns the products referenced by the user's set. Unknown users
// and ids whose product no longer exists yield no entries.
func (s *service) GetItems(ctx context.Context, kind Kind, userID string) ([]product.Product, error) {
	if !kind.Valid() {
		return nil, ErrInvalidKind
	}

	oid, err := utils.ParseObjectID(userID)
	if err != nil {
		return nil, err
	}

	ids, err := s.repo.GetItemIDs(ctx, kind, oid)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []product.Product{}, nil
	}

	return s.products.GetByIDs(ctx, ids)
}

// RemoveItem is idempotent: removing an absent product is not an error.
func (s *service) RemoveItem(ctx context.Context, kind Kind, input RemoveItemInput) (*db.UpdateResult, error) {
	if !kind.Valid() {
		return nil, ErrInvalidKind
	}

	userID, err := utils.ParseObjectID(input.UserID)
	if err != nil {
		return nil, err
	}
	productID, err := utils.ParseObjectID(input.ProductID)
	if err != nil {
		return nil, err
	}

	return s.repo.RemoveItem(ctx, kind, userID, productID)
}

// ProductDeleted drops a deleted product from every cart and wishlist.
func (s *service) ProductDeleted(ctx context.Context, productID primitive.ObjectID) error {
	res, err := s.repo.PullProduct(ctx, productID)
	if err != nil {
		return err
	}

	logger.FromCtx(ctx).Info("product pulled from lists",
		zap.String("layer", "service"),
		zap.String("product_id", productID.Hex()),
		zap.Int64("users_modified", res.ModifiedCount),
	)
	return nil
}
