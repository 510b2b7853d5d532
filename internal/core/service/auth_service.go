package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/99minutos/memo-service/internal/core/domain"
	"github.com/99minutos/memo-service/internal/core/ports"
)

// AuthService implements signup, login and session account resolution.
type AuthService struct {
	store  ports.Store
	hasher ports.PasswordHasher
	logger zerolog.Logger
}

func NewAuthService(store ports.Store, hasher ports.PasswordHasher, logger zerolog.Logger) *AuthService {
	return &AuthService{store: store, hasher: hasher, logger: logger}
}

// Signup registers a new account. The email is stored as given.
func (s *AuthService) Signup(ctx context.Context, in ports.SignupInput) (*domain.Account, error) {
	if in.Username == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("signup: hash password: %w", err)
	}

	var created *domain.Account
	err = s.store.WithinTx(ctx, func(ctx context.Context, repos ports.Repositories) error {
		acc, err := repos.Accounts().Create(ctx, &domain.Account{
			Username:       in.Username,
			Email:          in.Email,
			HashedPassword: hash,
		})
		if err != nil {
			return err
		}
		created = acc
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrUsernameTaken) {
			s.logger.Debug().Str("username", in.Username).Msg("signup rejected: username taken")
			return nil, domain.ErrUsernameTaken
		}
		return nil, fmt.Errorf("signup: %w", err)
	}

	s.logger.Info().Int64("account_id", created.ID).Str("username", created.Username).Msg("account created")
	return created, nil
}

// Login checks the credentials. Unknown usernames and wrong passwords are
// reported identically as domain.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.Account, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	acc, err := s.ResolveAccount(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Verify(password, acc.HashedPassword) {
		return nil, domain.ErrInvalidCredentials
	}

	s.logger.Info().Int64("account_id", acc.ID).Msg("login succeeded")
	return acc, nil
}

func (s *AuthService) ResolveAccount(ctx context.Context, username string) (*domain.Account, error) {
	if username == "" {
		return nil, domain.ErrAccountNotFound
	}

	var acc *domain.Account
	err := s.store.WithinTx(ctx, func(ctx context.Context, repos ports.Repositories) error {
		found, err := repos.Accounts().FindByUsername(ctx, username)
		if err != nil {
			return err
		}
		acc = found
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("resolve account: %w", err)
	}
	return acc, nil
}
