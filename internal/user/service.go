package user

import (
	"context"

	"marketplace-be/internal/logger"

	"go.uber.org/zap"
)

// Service defines the business logic for users.
type Service interface {
	Register(ctx context.Context, input RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, input LoginInput) (*AuthResult, error)
	GetByID(ctx context.Context, id uint) (*User, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

var validRoles = map[string]bool{
	"client":           true,
	"store_owner":      true,
	"service_provider": true,
	"admin":            true,
}

func (s *service) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Register"),
		zap.String("email", input.Email),
	)

	role := input.Role
	if role == "" {
		role = "client"
	}
	if !validRoles[role] {
		return nil, ErrInvalidRole
	}

	hash, err := HashPassword(input.Password)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		return nil, err
	}

	u := &User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         role,
		Phone:        input.Phone,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	token, err := GenerateJWT(u.ID, u.Role, u.Email)
	if err != nil {
		log.Error("failed to generate token", zap.Error(err))
		return nil, err
	}

	log.Info("user registered", zap.Uint("user_id", u.ID))
	return &AuthResult{Token: token, User: u}, nil
}

func (s *service) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Login"),
		zap.String("email", input.Email),
	)

	u, err := s.repo.GetByEmail(ctx, input.Email)
	if err != nil {
		if err == ErrUserNotFound {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !CheckPasswordHash(input.Password, u.PasswordHash) {
		log.Warn("password mismatch")
		return nil, ErrInvalidCredentials
	}

	token, err := GenerateJWT(u.ID, u.Role, u.Email)
	if err != nil {
		return nil, err
	}

	return &AuthResult{Token: token, User: u}, nil
}

func (s *service) GetByID(ctx context.Context, id uint) (*User, error) {
	return s.repo.GetByID(ctx, id)
}
