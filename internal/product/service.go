package product

import (
	"context"

	"marketplace-be/internal/logger"
	"marketplace-be/internal/store"

	"go.uber.org/zap"
)

// Service defines the business logic for products.
type Service interface {
	GetProducts(ctx context.Context, filter *ListFilter, limit, page int32) ([]*Product, error)
	GetProduct(ctx context.Context, id uint) (*Product, error)
	CreateProduct(ctx context.Context, userID uint, input CreateProductInput) (*Product, error)
	UpdateProduct(ctx context.Context, userID, productID uint, input UpdateProductInput) (*Product, error)
	DeleteProduct(ctx context.Context, userID, productID uint) error
}

type service struct {
	repo      Repository
	storeRepo store.Repository
}

func NewService(repo Repository, storeRepo store.Repository) Service {
	return &service{repo: repo, storeRepo: storeRepo}
}

func (s *service) GetProducts(ctx context.Context, filter *ListFilter, limit, page int32) ([]*Product, error) {
	return s.repo.List(ctx, filter, limit, page)
}

func (s *service) GetProduct(ctx context.Context, id uint) (*Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) CreateProduct(ctx context.Context, userID uint, input CreateProductInput) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateProduct"),
		zap.Uint("user_id", userID),
	)

	if input.Price <= 0 {
		return nil, ErrInvalidPrice
	}
	if input.StockQuantity < 0 {
		return nil, ErrInvalidStock
	}

	st, err := s.storeRepo.GetByUserID(ctx, userID)
	if err != nil {
		log.Warn("caller has no store", zap.Error(err))
		return nil, ErrUnauthorized
	}

	p := &Product{
		StoreID:       st.ID,
		CategoryID:    input.CategoryID,
		Name:          input.Name,
		Description:   input.Description,
		Price:         input.Price,
		StockQuantity: input.StockQuantity,
		StoreName:     st.Name,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

func (s *service) UpdateProduct(ctx context.Context, userID, productID uint, input UpdateProductInput) (*Product, error) {
	if err := s.authorize(ctx, userID, productID); err != nil {
		return nil, err
	}

	if input.Price != nil && *input.Price <= 0 {
		return nil, ErrInvalidPrice
	}
	if input.StockQuantity != nil && *input.StockQuantity < 0 {
		return nil, ErrInvalidStock
	}

	if err := s.repo.Update(ctx, productID, input); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, productID)
}

func (s *service) DeleteProduct(ctx context.Context, userID, productID uint) error {
	if err := s.authorize(ctx, userID, productID); err != nil {
		return err
	}
	return s.repo.Deactivate(ctx, productID)
}

func (s *service) authorize(ctx context.Context, userID, productID uint) error {
	p, err := s.repo.GetByID(ctx, productID)
	if err != nil {
		return err
	}

	st, err := s.storeRepo.GetByID(ctx, p.StoreID)
	if err != nil {
		return err
	}

	if st.UserID != userID {
		return ErrUnauthorized
	}

	return nil
}
