package user

import (
	"context"
	"errors"
	"strings"

	"gadgetshop-be/internal/db"
	"gadgetshop-be/internal/logger"
	"gadgetshop-be/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

type Service interface {
	Register(ctx context.Context, input RegisterInput) (*db.InsertResult, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context) ([]User, error)
	UpdateRole(ctx context.Context, id string, role Role) (*db.UpdateResult, error)
	UpdateStatus(ctx context.Context, id string, status Status) (*db.UpdateResult, error)
	Delete(ctx context.Context, id string) (*db.DeleteResult, error)
	RoleOf(ctx context.Context, email string) (string, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Register inserts the user unless the email is already taken, in which case
// ErrUserExists is returned and nothing is written.
func (s *service) Register(ctx context.Context, input RegisterInput) (*db.InsertResult, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Register"),
	)

	email := strings.TrimSpace(input.Email)
	if email == "" {
		return nil, ErrEmailRequired
	}

	existing, err := s.repo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		log.Error("failed to look up user", zap.String("email", email), zap.Error(err))
		return nil, err
	}
	if existing != nil {
		log.Info("user already exists", zap.String("email", email))
		return nil, ErrUserExists
	}

	res, err := s.repo.Create(ctx, User{Email: email, Name: strings.TrimSpace(input.Name)})
	if err != nil {
		return nil, err
	}

	log.Info("register service completed", zap.String("email", email))
	return res, nil
}

// GetByEmail returns (nil, nil) when no user has that email.
func (s *service) GetByEmail(ctx context.Context, email string) (*User, error) {
	u, err := s.repo.FindByEmail(ctx, email)
	if errors.Is(err, ErrUserNotFound) {
		return nil, nil
	}
	return u, err
}

func (s *service) List(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}

func (s *service) UpdateRole(ctx context.Context, id string, role Role) (*db.UpdateResult, error) {
	if !role.Valid() {
		return nil, ErrInvalidRole
	}

	oid, err := utils.ParseObjectID(id)
	if err != nil {
		return nil, err
	}

	return s.repo.UpdateFields(ctx, oid, bson.M{"role": role})
}

func (s *service) UpdateStatus(ctx context.Context, id string, status Status) (*db.UpdateResult, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	oid, err := utils.ParseObjectID(id)
	if err != nil {
		return nil, err
	}

	return s.repo.UpdateFields(ctx, oid, bson.M{"status": status})
}

func (s *service) Delete(ctx context.Context, id string) (*db.DeleteResult, error) {
	oid, err := utils.ParseObjectID(id)
	if err != nil {
		return nil, err
	}

	res, err := s.repo.Delete(ctx, oid)
	if err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("user deleted",
		zap.String("user_id", id),
		zap.Int64("deleted", res.DeletedCount),
	)
	return res, nil
}

// RoleOf reports the stored role for the role gate. Every call is a store read.
func (s *service) RoleOf(ctx context.Context, email string) (string, error) {
	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	return string(u.Role), nil
}
