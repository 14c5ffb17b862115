package address

import (
	"context"

	"marketplace-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	List(ctx context.Context, userID uint) ([]*Address, error)
	Get(ctx context.Context, userID uint, addressID uuid.UUID) (*Address, error)

	Create(ctx context.Context, userID uint, input CreateAddressInput) (*Address, error)
	Update(ctx context.Context, userID uint, addressID uuid.UUID, input UpdateAddressInput) (*Address, error)
	Delete(ctx context.Context, userID uint, addressID uuid.UUID) error

	SetDefaultAddress(ctx context.Context, userID uint, addressID uuid.UUID) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context, userID uint) ([]*Address, error) {
	addrs, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if addrs == nil {
		addrs = []*Address{}
	}
	return addrs, nil
}

// owned loads an address and hides other users' addresses behind
// not-found.
func (s *service) owned(ctx context.Context, userID uint, addressID uuid.UUID) (*Address, error) {
	addr, err := s.repo.GetByID(ctx, addressID)
	if err != nil {
		return nil, err
	}
	if addr.UserID != userID {
		return nil, ErrAddressNotFound
	}
	return addr, nil
}

func (s *service) Get(ctx context.Context, userID uint, addressID uuid.UUID) (*Address, error) {
	return s.owned(ctx, userID, addressID)
}

func (s *service) Create(ctx context.Context, userID uint, input CreateAddressInput) (*Address, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateAddress"),
		zap.Uint("user_id", userID),
	)

	addr := &Address{
		ID:         uuid.New(),
		UserID:     userID,
		Label:      input.Label,
		Phone:      input.Phone,
		Street:     input.Street,
		Unit:       input.Unit,
		City:       input.City,
		State:      input.State,
		PostalCode: input.PostalCode,
		Country:    input.Country,
		IsDefault:  input.SetAsDefault,
		IsActive:   true,
	}

	if input.SetAsDefault {
		if err := s.repo.ClearDefault(ctx, userID); err != nil {
			log.Error("failed to clear default address", zap.Error(err))
			return nil, err
		}
	}

	if err := s.repo.Create(ctx, addr); err != nil {
		log.Error("failed to create address", zap.Error(err))
		return nil, err
	}

	log.Info("address created", zap.String("address_id", addr.ID.String()))
	return addr, nil
}

func (s *service) Update(ctx context.Context, userID uint, addressID uuid.UUID, input UpdateAddressInput) (*Address, error) {
	if _, err := s.owned(ctx, userID, addressID); err != nil {
		return nil, err
	}

	if input.SetAsDefault {
		if err := s.repo.ClearDefault(ctx, userID); err != nil {
			return nil, err
		}
		if err := s.repo.SetDefault(ctx, userID, addressID); err != nil {
			return nil, err
		}
	}

	err := s.repo.Update(ctx, addressID, input)
	if err != nil && !(err == ErrNothingToUpdate && input.SetAsDefault) {
		return nil, err
	}

	return s.repo.GetByID(ctx, addressID)
}

func (s *service) Delete(ctx context.Context, userID uint, addressID uuid.UUID) error {
	if _, err := s.owned(ctx, userID, addressID); err != nil {
		return err
	}
	return s.repo.Deactivate(ctx, addressID)
}

func (s *service) SetDefaultAddress(ctx context.Context, userID uint, addressID uuid.UUID) error {
	if _, err := s.owned(ctx, userID, addressID); err != nil {
		return err
	}
	if err := s.repo.ClearDefault(ctx, userID); err != nil {
		return err
	}
	return s.repo.SetDefault(ctx, userID, addressID)
}
