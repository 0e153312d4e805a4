package product

import (
	"context"
	"strings"
	"time"

	"gadgetshop-be/internal/db"
	"gadgetshop-be/internal/logger"
	"gadgetshop-be/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type Service interface {
	Create(ctx context.Context, input NewProductInput) (*db.InsertResult, error)
	Featured(ctx context.Context) ([]Product, error)
	Search(ctx context.Context, params SearchParams) (*SearchResult, error)
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]Product, error)
	Update(ctx context.Context, id string, input UpdateProductInput) error
	Delete(ctx context.Context, id string) error
}

// DeleteListener is told about every deleted product so references held
// elsewhere (carts, wishlists) can be dropped.
type DeleteListener interface {
	ProductDeleted(ctx context.Context, id primitive.ObjectID) error
}

type ServiceOption func(*service)

func WithDeleteListener(l DeleteListener) ServiceOption {
	return func(s *service) { s.onDelete = l }
}

type service struct {
	repo     Repository
	onDelete DeleteListener
}

func NewService(repo Repository, opts ...ServiceOption) Service {
	s := &service{repo: repo}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create stores a product owned by the authenticated seller.
func (s *service) Create(ctx context.Context, input NewProductInput) (*db.InsertResult, error) {
	sellerEmail := utils.GetUserEmailFromContext(ctx)
	if sellerEmail == "" {
		return nil, ErrSellerRequired
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	if input.Price < 0 {
		return nil, ErrInvalidPrice
	}
	if input.Stock != nil && *input.Stock < 0 {
		return nil, ErrInvalidStock
	}

	return s.repo.Create(ctx, Product{
		Title:       title,
		Brand:       strings.TrimSpace(input.Brand),
		Price:       input.Price,
		Stock:       input.Stock,
		Category:    strings.TrimSpace(input.Category),
		Description: input.Description,
		ImageURL:    strings.TrimSpace(input.ImageURL),
		SellerEmail: sellerEmail,
	})
}

func (s *service) Featured(ctx context.Context) ([]Product, error) {
	return s.repo.Find(ctx, bson.M{}, options.Find().SetLimit(FeaturedLimit))
}

func (s *service) Search(ctx context.Context, params SearchParams) (*SearchResult, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "SearchProducts"),
	)

	start := time.Now()
	filter := params.Filter()

	log.Debug("product search requested",
		zap.Int64("page", params.Page),
		zap.Int64("limit", params.Limit),
		zap.String("sort", string(params.Sort)),
		zap.Any("filters", map[string]any{
			"title":    params.Title,
			"category": params.Category,
			"brand":    params.Brand,
		}),
	)

	/* ---------- FETCH PAGE ---------- */

	products, err := s.repo.Find(ctx, filter, params.FindOptions())
	if err != nil {
		log.Error("failed to fetch product page",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)),
		)
		return nil, err
	}

	/* ---------- COUNT FULL RESULT SET ---------- */

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error("failed to count products",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)),
		)
		return nil, err
	}

	brands, categories := Facets(products)

	log.Info("product search success",
		zap.Int("count", len(products)),
		zap.Int64("total", total),
		zap.Duration("duration", time.Since(start)),
	)

	return &SearchResult{
		Products:      products,
		Brands:        brands,
		Categories:    categories,
		TotalProducts: total,
	}, nil
}

func (s *service) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]Product, error) {
	return s.repo.FindByIDs(ctx, ids)
}

// Update applies a partial update. Only title, price and description can change.
func (s *service) Update(ctx context.Context, id string, input UpdateProductInput) error {
	oid, err := utils.ParseObjectID(id)
	if err != nil {
		return err
	}

	if !input.HasAnyField() {
		return ErrNoUpdateFields
	}

	fields := bson.M{}
	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return ErrTitleRequired
		}
		fields["title"] = title
	}
	if input.Price != nil {
		if *input.Price < 0 {
			return ErrInvalidPrice
		}
		fields["price"] = *input.Price
	}
	if input.Description != nil {
		fields["description"] = *input.Description
	}

	res, err := s.repo.Update(ctx, oid, fields)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "DeleteProduct"),
		zap.String("product_id", id),
	)

	oid, err := utils.ParseObjectID(id)
	if err != nil {
		return err
	}

	res, err := s.repo.Delete(ctx, oid)
	if err != nil {
		log.Error("failed to delete product", zap.Error(err))
		return err
	}
	if res.DeletedCount == 0 {
		return ErrProductNotFound
	}

	if s.onDelete != nil {
		// The product is already gone; a failed cleanup only leaves dangling references.
		if err := s.onDelete.ProductDeleted(ctx, oid); err != nil {
			log.Warn("failed to remove product from carts and wishlists", zap.Error(err))
		}
	}

	log.Info("product deleted")
	return nil
}
