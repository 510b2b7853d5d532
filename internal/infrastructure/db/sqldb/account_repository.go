package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/99minutos/memo-service/internal/core/domain"
	"github.com/99minutos/memo-service/internal/core/ports"
)

type AccountRepository struct {
	db      DBTX
	dialect Dialect
}

func NewAccountRepository(db DBTX, dialect Dialect) *AccountRepository {
	return &AccountRepository{db: db, dialect: dialect}
}

// Create inserts the account and returns a copy carrying the assigned id.
// A taken username is reported as domain.ErrUsernameTaken.
func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) (*domain.Account, error) {
	query := r.dialect.Rebind(`INSERT INTO accounts (username, email, hashed_password) VALUES (?, ?, ?) RETURNING id`)

	created := *account
	err := r.db.QueryRowContext(ctx, query, account.Username, account.Email, account.HashedPassword).Scan(&created.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrUsernameTaken
		}
		return nil, fmt.Errorf("insert account: %w", err)
	}
	return &created, nil
}

func (r *AccountRepository) FindByUsername(ctx context.Context, username string) (*domain.Account, error) {
	query := r.dialect.Rebind(`SELECT id, username, email, hashed_password FROM accounts WHERE username = ?`)

	var acc domain.Account
	err := r.db.QueryRowContext(ctx, query, username).Scan(&acc.ID, &acc.Username, &acc.Email, &acc.HashedPassword)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find account: %w", err)
	}
	return &acc, nil
}

var _ ports.AccountRepository = (*AccountRepository)(nil)
