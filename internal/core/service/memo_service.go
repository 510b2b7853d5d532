package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/99minutos/memo-service/internal/core/domain"
	"github.com/99minutos/memo-service/internal/core/ports"
)

type MemoService struct {
	store  ports.Store
	logger zerolog.Logger
}

func NewMemoService(store ports.Store, logger zerolog.Logger) *MemoService {
	return &MemoService{store: store, logger: logger}
}

// Create stores a new memo owned by owner.
func (s *MemoService) Create(ctx context.Context, owner *domain.Account, in ports.MemoInput) (*domain.Memo, error) {
	if owner == nil {
		return nil, domain.ErrUnauthenticated
	}

	var created *domain.Memo
	err := s.store.WithinTx(ctx, func(ctx context.Context, repos ports.Repositories) error {
		m, err := repos.Memos().Create(ctx, &domain.Memo{
			UserID:  owner.ID,
			Title:   in.Title,
			Content: in.Content,
		})
		if err != nil {
			return err
		}
		created = m
		return nil
	})
	if err != nil {
		s.logger.Error().Err(err).Int64("account_id", owner.ID).Msg("failed to create memo")
		return nil, fmt.Errorf("create memo: %w", err)
	}

	s.logger.Info().Int64("memo_id", created.ID).Int64("account_id", owner.ID).Msg("memo created")
	return created, nil
}

// List returns every memo owned by owner, oldest first.
func (s *MemoService) List(ctx context.Context, owner *domain.Account) ([]domain.Memo, error) {
	if owner == nil {
		return nil, domain.ErrUnauthenticated
	}

	var memos []domain.Memo
	err := s.store.WithinTx(ctx, func(ctx context.Context, repos ports.Repositories) error {
		found, err := repos.Memos().ListByOwner(ctx, owner.ID)
		if err != nil {
			return err
		}
		memos = found
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list memos: %w", err)
	}
	if memos == nil {
		memos = []domain.Memo{}
	}
	return memos, nil
}

// Update overwrites the non-nil fields of patch on the owner's memo.
func (s *MemoService) Update(ctx context.Context, owner *domain.Account, memoID int64, patch domain.MemoPatch) (*domain.Memo, error) {
	if owner == nil {
		return nil, domain.ErrUnauthenticated
	}

	var updated *domain.Memo
	err := s.store.WithinTx(ctx, func(ctx context.Context, repos ports.Repositories) error {
		m, err := repos.Memos().Update(ctx, owner.ID, memoID, patch)
		if err != nil {
			return err
		}
		updated = m
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrMemoNotFound) {
			return nil, domain.ErrMemoNotFound
		}
		s.logger.Error().Err(err).Int64("memo_id", memoID).Msg("failed to update memo")
		return nil, fmt.Errorf("update memo: %w", err)
	}

	s.logger.Info().Int64("memo_id", memoID).Int64("account_id", owner.ID).Msg("memo updated")
	return updated, nil
}

func (s *MemoService) Delete(ctx context.Context, owner *domain.Account, memoID int64) error {
	if owner == nil {
		return domain.ErrUnauthenticated
	}

	err := s.store.WithinTx(ctx, func(ctx context.Context, repos ports.Repositories) error {
		return repos.Memos().Delete(ctx, owner.ID, memoID)
	})
	if err != nil {
		if errors.Is(err, domain.ErrMemoNotFound) {
			return domain.ErrMemoNotFound
		}
		s.logger.Error().Err(err).Int64("memo_id", memoID).Msg("failed to delete memo")
		return fmt.Errorf("delete memo: %w", err)
	}

	s.logger.Info().Int64("memo_id", memoID).Int64("account_id", owner.ID).Msg("memo deleted")
	return nil
}
