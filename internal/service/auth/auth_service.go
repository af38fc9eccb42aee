package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/logger"
	"github.com/Domenick1991/flightbooking/internal/repository"
	"github.com/Domenick1991/flightbooking/internal/validation"
)

var errBadCredentials = fmt.Errorf("%w: incorrect username or password", domain.ErrUnauthorized)
var errBadToken = fmt.Errorf("%w: could not validate credentials", domain.ErrUnauthorized)

type AuthUseCase interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, username, password string) (string, error)
	Authenticate(ctx context.Context, token string) (*domain.User, error)
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hashed, password string) bool
}

type TokenIssuer interface {
	Issue(username string) (string, error)
	Parse(token string) (string, error)
}

type RegisterInput struct {
	Username    string  `json:"username" validate:"required,min=3,max=50"`
	Email       string  `json:"email" validate:"required,email"`
	FullName    string  `json:"full_name" validate:"required,min=1"`
	PhoneNumber *string `json:"phone_number" validate:"omitempty,max=50"`
	Password    string  `json:"password" validate:"required,min=6"`
}

type AuthService struct {
	store  repository.Store
	hasher PasswordHasher
	tokens TokenIssuer
	log    logger.Logger
}

func NewAuthService(store repository.Store, hasher PasswordHasher, tokens TokenIssuer, log logger.Logger) *AuthService {
	return &AuthService{store: store, hasher: hasher, tokens: tokens, log: log}
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.TrimSpace(input.Email)
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	hashed, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Username:       input.Username,
		Email:          input.Email,
		FullName:       input.FullName,
		PhoneNumber:    input.PhoneNumber,
		HashedPassword: hashed,
		IsActive:       true,
	}

	err = s.store.InTx(ctx, func(tx repository.Store) error {
		taken, err := tx.Users().ExistsByUsername(ctx, user.Username)
		if err != nil {
			return err
		}
		if taken {
			return fmt.Errorf("%w: username already registered", domain.ErrConflict)
		}

		taken, err = tx.Users().ExistsByEmail(ctx, user.Email)
		if err != nil {
			return err
		}
		if taken {
			return fmt.Errorf("%w: email already registered", domain.ErrConflict)
		}

		return tx.Users().Create(ctx, user)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("user registered", "user_id", user.ID, "username", user.Username)
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.store.Users().GetByUsername(ctx, username)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return "", err
	}

	hashed := ""
	if user != nil {
		hashed = user.HashedPassword
	}
	if !s.hasher.Verify(hashed, password) {
		return "", errBadCredentials
	}

	return s.tokens.Issue(user.Username)
}

func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	username, err := s.tokens.Parse(token)
	if err != nil {
		s.log.Debug("token rejected", "error", err)
		return nil, errBadToken
	}

	user, err := s.store.Users().GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, errBadToken
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, errBadToken
	}
	return user, nil
}

var _ AuthUseCase = (*AuthService)(nil)
