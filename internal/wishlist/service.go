package wishlist

import (
	"context"

	"marketplace-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	List(ctx context.Context, userID uint) ([]*Item, error)
	Add(ctx context.Context, userID, productID uint) (*Item, error)
	Remove(ctx context.Context, userID, productID uint) error
	Contains(ctx context.Context, userID, productID uint) (bool, error)
	Clear(ctx context.Context, userID uint) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context, userID uint) ([]*Item, error) {
	items, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*Item{}
	}
	return items, nil
}

func (s *service) Add(ctx context.Context, userID, productID uint) (*Item, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "AddToWishlist"),
		zap.Uint("user_id", userID),
		zap.Uint("product_id", productID),
	)

	it, err := s.repo.Add(ctx, userID, productID)
	if err != nil {
		log.Warn("failed to add to wishlist", zap.Error(err))
		return nil, err
	}

	log.Info("product wishlisted")
	return it, nil
}

func (s *service) Remove(ctx context.Context, userID, productID uint) error {
	return s.repo.Remove(ctx, userID, productID)
}

func (s *service) Contains(ctx context.Context, userID, productID uint) (bool, error) {
	return s.repo.Contains(ctx, userID, productID)
}

func (s *service) Clear(ctx context.Context, userID uint) error {
	return s.repo.Clear(ctx, userID)
}
