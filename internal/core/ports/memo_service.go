package ports

import (
	"context"

	"github.com/99minutos/memo-service/internal/core/domain"
)

// MemoInput carries the optional fields of a new memo.
type MemoInput struct {
	Title   *string
	Content *string
}

// MemoService defines use-case operations on the memos of one owner.
type MemoService interface {
	Create(ctx context.Context, owner *domain.Account, input MemoInput) (*domain.Memo, error)
	List(ctx context.Context, owner *domain.Account) ([]domain.Memo, error)
	Update(ctx context.Context, owner *domain.Account, memoID int64, patch domain.MemoPatch) (*domain.Memo, error)
	Delete(ctx context.Context, owner *domain.Account, memoID int64) error
}
