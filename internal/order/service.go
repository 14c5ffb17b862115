package order

import (
	"context"

	"marketplace-be/internal/logger"
	"marketplace-be/internal/payment"
	"marketplace-be/internal/store"

	"go.uber.org/zap"
)

// checkoutAttempts bounds the retry loop for order number collisions.
const checkoutAttempts = 3

type Service interface {
	// Checkout turns the caller's cart into one order per store.
	Checkout(ctx context.Context, params CheckoutParams) ([]*Order, error)

	// Cancel lets the buyer cancel a pending or confirmed order,
	// restoring stock.
	Cancel(ctx context.Context, userID, orderID uint) error

	// UpdateStatus lets the owning store move an order through the
	// fulfilment statuses.
	UpdateStatus(ctx context.Context, userID, orderID uint, to Status) error

	GetOrder(ctx context.Context, userID, orderID uint) (*Order, error)
	ListOrders(ctx context.Context, userID uint, filter *ListFilter, limit, page int32) ([]*Order, error)
	ListStoreOrders(ctx context.Context, userID uint, filter *ListFilter, limit, page int32) ([]*Order, error)
	StoreStatistics(ctx context.Context, userID uint) (*StoreStatistics, error)
}

type service struct {
	repo      Repository
	storeRepo store.Repository
}

func NewService(repo Repository, storeRepo store.Repository) Service {
	return &service{repo: repo, storeRepo: storeRepo}
}

func (s *service) Checkout(ctx context.Context, params CheckoutParams) ([]*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Checkout"),
		zap.Uint("user_id", params.UserID),
	)

	if !payment.ValidMethod(params.PaymentMethod) {
		return nil, ErrInvalidPayMethod
	}
	if err := validateAddress(params.ShippingAddress); err != nil {
		return nil, err
	}
	if params.BillingAddress != nil {
		if err := validateAddress(*params.BillingAddress); err != nil {
			return nil, err
		}
	}

	var orders []*Order
	var err error
	for attempt := 1; attempt <= checkoutAttempts; attempt++ {
		orders, err = s.repo.CreateFromCart(ctx, params)
		if err != ErrNumberConflict {
			break
		}
		log.Warn("order number collision, retrying", zap.Int("attempt", attempt))
	}
	if err != nil {
		return nil, err
	}

	log.Info("checkout succeeded", zap.Int("order_count", len(orders)))
	return orders, nil
}

func validateAddress(a Address) error {
	if a.Street == "" || a.City == "" || a.State == "" ||
		a.PostalCode == "" || a.Country == "" {
		return ErrMissingAddress
	}
	return nil
}

func (s *service) Cancel(ctx context.Context, userID, orderID uint) error {
	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if o.UserID != userID {
		return ErrUnauthorized
	}
	return s.repo.Cancel(ctx, orderID)
}

func (s *service) UpdateStatus(ctx context.Context, userID, orderID uint, to Status) error {
	if !ValidStatus(to) {
		return ErrInvalidStatus
	}

	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return err
	}

	st, err := s.storeRepo.GetByUserID(ctx, userID)
	if err != nil {
		if err == store.ErrStoreNotFound {
			return ErrUnauthorized
		}
		return err
	}
	if o.StoreID != st.ID {
		return ErrUnauthorized
	}

	return s.repo.UpdateStatus(ctx, orderID, to)
}

// GetOrder returns the order detail to its buyer or to the owner of
// the store it belongs to.
func (s *service) GetOrder(ctx context.Context, userID, orderID uint) (*Order, error) {
	o, err := s.repo.GetDetail(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if o.UserID == userID {
		return o, nil
	}

	st, err := s.storeRepo.GetByUserID(ctx, userID)
	if err == nil && st.ID == o.StoreID {
		return o, nil
	}

	return nil, ErrUnauthorized
}

func (s *service) ListOrders(ctx context.Context, userID uint, filter *ListFilter, limit, page int32) ([]*Order, error) {
	orders, err := s.repo.ListByUser(ctx, userID, filter, limit, page)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []*Order{}
	}
	return orders, nil
}

func (s *service) ListStoreOrders(ctx context.Context, userID uint, filter *ListFilter, limit, page int32) ([]*Order, error) {
	st, err := s.storeRepo.GetByUserID(ctx, userID)
	if err != nil {
		if err == store.ErrStoreNotFound {
			return nil, ErrUnauthorized
		}
		return nil, err
	}

	orders, err := s.repo.ListByStore(ctx, st.ID, filter, limit, page)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []*Order{}
	}
	return orders, nil
}

func (s *service) StoreStatistics(ctx context.Context, userID uint) (*StoreStatistics, error) {
	st, err := s.storeRepo.GetByUserID(ctx, userID)
	if err != nil {
		if err == store.ErrStoreNotFound {
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	return s.repo.Statistics(ctx, st.ID)
}
