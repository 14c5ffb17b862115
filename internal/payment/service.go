package payment

import (
	"context"

	"marketplace-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	GetByOrder(ctx context.Context, userID, orderID uint) (*Payment, error)
	ListMine(ctx context.Context, userID uint) ([]*Payment, error)

	// MarkPaid settles a pending payment. Settled payments are final.
	MarkPaid(ctx context.Context, paymentID uint) error
	MarkFailed(ctx context.Context, paymentID uint) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetByOrder(ctx context.Context, userID, orderID uint) (*Payment, error) {
	payments, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, p := range payments {
		if p.OrderID == orderID {
			return p, nil
		}
	}
	return nil, ErrPaymentNotFound
}

func (s *service) ListMine(ctx context.Context, userID uint) ([]*Payment, error) {
	payments, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if payments == nil {
		payments = []*Payment{}
	}
	return payments, nil
}

func (s *service) MarkPaid(ctx context.Context, paymentID uint) error {
	return s.settle(ctx, paymentID, StatusPaid)
}

func (s *service) MarkFailed(ctx context.Context, paymentID uint) error {
	return s.settle(ctx, paymentID, StatusFailed)
}

func (s *service) settle(ctx context.Context, paymentID uint, status Status) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "settle"),
		zap.Uint("payment_id", paymentID),
		zap.String("status", string(status)),
	)

	if err := s.repo.UpdateStatus(ctx, paymentID, status); err != nil {
		log.Error("failed to settle payment", zap.Error(err))
		return err
	}

	log.Info("payment settled")
	return nil
}
