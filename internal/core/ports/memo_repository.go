package ports

import (
	"context"

	"github.com/99minutos/memo-service/internal/core/domain"
)

// MemoRepository defines persistence operations for memos.
// Every lookup is scoped by owner: a memo that belongs to another account is
// reported as domain.ErrMemoNotFound, exactly like a missing one.
type MemoRepository interface {
	Create(ctx context.Context, memo *domain.Memo) (*domain.Memo, error)
	ListByOwner(ctx context.Context, userID int64) ([]domain.Memo, error)
	Update(ctx context.Context, userID, memoID int64, patch domain.MemoPatch) (*domain.Memo, error)
	Delete(ctx context.Context, userID, memoID int64) error
}
