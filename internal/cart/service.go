package cart

import (
	"context"

	"marketplace-be/internal/logger"
	"marketplace-be/internal/product"

	"go.uber.org/zap"
)

// Service defines the business logic for carts.
type Service interface {
	GetCart(ctx context.Context, userID uint) (*Cart, error)
	AddItem(ctx context.Context, params AddItemParams) (*CartItem, error)
	UpdateItem(ctx context.Context, params UpdateItemParams) error
	RemoveItem(ctx context.Context, userID, itemID uint) error
	ClearCart(ctx context.Context, userID uint) error
}

type service struct {
	repo        Repository
	productRepo product.Repository
}

func NewService(repo Repository, productRepo product.Repository) Service {
	return &service{repo: repo, productRepo: productRepo}
}

func (s *service) GetCart(ctx context.Context, userID uint) (*Cart, error) {
	c, err := s.repo.GetCartWithItems(ctx, userID)
	if err != nil {
		return nil, err
	}
	if c.Items == nil {
		c.Items = []*CartItem{}
	}
	return c, nil
}

// AddItem puts a product into the user's cart, snapshotting the current
// price. Adding the same product again increases the quantity.
func (s *service) AddItem(ctx context.Context, params AddItemParams) (*CartItem, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "AddItem"),
		zap.Uint("user_id", params.UserID),
		zap.Uint("product_id", params.ProductID),
	)

	if params.Quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	p, err := s.productRepo.GetByID(ctx, params.ProductID)
	if err != nil {
		if err == product.ErrProductNotFound {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	if !p.IsActive || !p.IsInStock() {
		return nil, ErrProductInactive
	}

	c, err := s.repo.GetOrCreateCart(ctx, params.UserID)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.GetItemByCartAndProduct(ctx, c.ID, params.ProductID)
	if err != nil {
		return nil, err
	}

	finalQty := params.Quantity
	if existing != nil {
		finalQty += existing.Quantity
	}

	if p.StockQuantity < finalQty {
		log.Warn("insufficient stock",
			zap.Int("requested", finalQty),
			zap.Int("available", p.StockQuantity),
		)
		return nil, ErrInsufficientStock
	}

	if existing != nil {
		if err := s.repo.UpdateItemQuantity(ctx, existing.ID, finalQty); err != nil {
			return nil, err
		}
		existing.Quantity = finalQty
		return existing, nil
	}

	item := &CartItem{
		CartID:    c.ID,
		ProductID: params.ProductID,
		Quantity:  params.Quantity,
		Price:     p.Price,
	}
	if err := s.repo.CreateItem(ctx, item); err != nil {
		return nil, err
	}

	return item, nil
}

// UpdateItem sets an item's quantity; zero or negative removes the item.
func (s *service) UpdateItem(ctx context.Context, params UpdateItemParams) error {
	item, err := s.repo.GetItemByID(ctx, params.ItemID)
	if err != nil {
		return err
	}

	if item.OwnerID != params.UserID {
		return ErrNotCartOwner
	}

	if params.Quantity <= 0 {
		return s.repo.RemoveItem(ctx, params.ItemID)
	}

	p, err := s.productRepo.GetByID(ctx, item.ProductID)
	if err != nil {
		return err
	}
	if p.StockQuantity < params.Quantity {
		return ErrInsufficientStock
	}

	return s.repo.UpdateItemQuantity(ctx, params.ItemID, params.Quantity)
}

func (s *service) RemoveItem(ctx context.Context, userID, itemID uint) error {
	item, err := s.repo.GetItemByID(ctx, itemID)
	if err != nil {
		return err
	}

	if item.OwnerID != userID {
		return ErrNotCartOwner
	}

	return s.repo.RemoveItem(ctx, itemID)
}

func (s *service) ClearCart(ctx context.Context, userID uint) error {
	c, err := s.repo.GetOrCreateCart(ctx, userID)
	if err != nil {
		return err
	}
	return s.repo.ClearCart(ctx, c.ID)
}
