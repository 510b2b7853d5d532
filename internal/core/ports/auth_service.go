package ports

import (
	"context"

	"github.com/99minutos/memo-service/internal/core/domain"
)

// SignupInput carries the fields accepted at registration.
type SignupInput struct {
	Username string
	Email    string
	Password string
}

type AuthService interface {
	Signup(ctx context.Context, input SignupInput) (*domain.Account, error)
	Login(ctx context.Context, username, password string) (*domain.Account, error)
	// ResolveAccount maps a session username to its account.
	ResolveAccount(ctx context.Context, username string) (*domain.Account, error)
}
