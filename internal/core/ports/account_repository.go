package ports

import (
	"context"

	"github.com/99minutos/memo-service/internal/core/domain"
)

// AccountRepository defines persistence operations for accounts.
type AccountRepository interface {
	// Create inserts the account and returns it with its ID populated.
	// A duplicate username yields domain.ErrUsernameTaken.
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)
	FindByUsername(ctx context.Context, username string) (*domain.Account, error)
}
