package review

import (
	"context"

	"marketplace-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	ListByProduct(ctx context.Context, productID uint, limit, page int32) ([]*Review, error)
	Summarize(ctx context.Context, productID uint) (*Summary, error)
	Create(ctx context.Context, userID uint, input CreateReviewInput) (*Review, error)
	Update(ctx context.Context, userID, reviewID uint, input UpdateReviewInput) (*Review, error)
	Delete(ctx context.Context, userID, reviewID uint) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) ListByProduct(ctx context.Context, productID uint, limit, page int32) ([]*Review, error) {
	reviews, err := s.repo.ListByProduct(ctx, productID, limit, page)
	if err != nil {
		return nil, err
	}
	if reviews == nil {
		reviews = []*Review{}
	}
	return reviews, nil
}

func (s *service) Summarize(ctx context.Context, productID uint) (*Summary, error) {
	return s.repo.Summarize(ctx, productID)
}

func (s *service) Create(ctx context.Context, userID uint, input CreateReviewInput) (*Review, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateReview"),
		zap.Uint("user_id", userID),
		zap.Uint("product_id", input.ProductID),
	)

	if input.Rating < 1 || input.Rating > 5 {
		return nil, ErrInvalidRating
	}

	rv := &Review{
		ProductID: input.ProductID,
		UserID:    userID,
		Rating:    input.Rating,
		Comment:   input.Comment,
	}

	if err := s.repo.Create(ctx, rv); err != nil {
		log.Warn("failed to create review", zap.Error(err))
		return nil, err
	}

	log.Info("review created", zap.Uint("review_id", rv.ID))
	return rv, nil
}

func (s *service) Update(ctx context.Context, userID, reviewID uint, input UpdateReviewInput) (*Review, error) {
	if input.Rating != nil && (*input.Rating < 1 || *input.Rating > 5) {
		return nil, ErrInvalidRating
	}

	rv, err := s.repo.GetByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if rv.UserID != userID {
		return nil, ErrUnauthorized
	}

	if err := s.repo.Update(ctx, reviewID, input); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, reviewID)
}

func (s *service) Delete(ctx context.Context, userID, reviewID uint) error {
	rv, err := s.repo.GetByID(ctx, reviewID)
	if err != nil {
		return err
	}
	if rv.UserID != userID {
		return ErrUnauthorized
	}
	return s.repo.Delete(ctx, reviewID)
}
