package store

import (
	"context"

	"marketplace-be/internal/logger"

	"go.uber.org/zap"
)

// Service defines the business logic for stores.
type Service interface {
	CreateStore(ctx context.Context, userID uint, input CreateStoreInput) (*Store, error)
	GetStore(ctx context.Context, id uint) (*Store, error)
	GetOwnStore(ctx context.Context, userID uint) (*Store, error)
	ListStores(ctx context.Context, search *string, limit, page int32) ([]*Store, error)
	UpdateStore(ctx context.Context, userID, storeID uint, input UpdateStoreInput) (*Store, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateStore(ctx context.Context, userID uint, input CreateStoreInput) (*Store, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateStore"),
		zap.Uint("user_id", userID),
	)

	st := &Store{
		UserID:      userID,
		Name:        input.Name,
		Description: input.Description,
		Phone:       input.Phone,
		Address:     input.Address,
	}

	if err := s.repo.Create(ctx, st); err != nil {
		log.Error("failed to create store", zap.Error(err))
		return nil, err
	}

	return st, nil
}

func (s *service) GetStore(ctx context.Context, id uint) (*Store, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetOwnStore(ctx context.Context, userID uint) (*Store, error) {
	return s.repo.GetByUserID(ctx, userID)
}

func (s *service) ListStores(ctx context.Context, search *string, limit, page int32) ([]*Store, error) {
	return s.repo.List(ctx, search, limit, page)
}

func (s *service) UpdateStore(ctx context.Context, userID, storeID uint, input UpdateStoreInput) (*Store, error) {
	st, err := s.repo.GetByID(ctx, storeID)
	if err != nil {
		return nil, err
	}

	if st.UserID != userID {
		return nil, ErrUnauthorized
	}

	if err := s.repo.Update(ctx, storeID, input); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, storeID)
}
