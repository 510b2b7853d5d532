package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/99minutos/memo-service/internal/core/domain"
	"github.com/99minutos/memo-service/internal/core/ports"
)

const memoColumns = `id, user_id, title, content`

type MemoRepository struct {
	db      DBTX
	dialect Dialect
}

func NewMemoRepository(db DBTX, dialect Dialect) *MemoRepository {
	return &MemoRepository{db: db, dialect: dialect}
}

func (r *MemoRepository) Create(ctx context.Context, memo *domain.Memo) (*domain.Memo, error) {
	query := r.dialect.Rebind(`INSERT INTO memos (user_id, title, content) VALUES (?, ?, ?) RETURNING ` + memoColumns)

	created, err := scanMemo(r.db.QueryRowContext(ctx, query, memo.UserID, nullString(memo.Title), nullString(memo.Content)))
	if err != nil {
		return nil, fmt.Errorf("insert memo: %w", err)
	}
	return created, nil
}

// ListByOwner returns the owner's memos in id order.
func (r *MemoRepository) ListByOwner(ctx context.Context, userID int64) ([]domain.Memo, error) {
	query := r.dialect.Rebind(`SELECT ` + memoColumns + ` FROM memos WHERE user_id = ? ORDER BY id`)

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list memos: %w", err)
	}
	defer rows.Close()

	memos := make([]domain.Memo, 0)
	for rows.Next() {
		m, err := scanMemo(rows)
		if err != nil {
			return nil, fmt.Errorf("scan memo: %w", err)
		}
		memos = append(memos, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list memos: %w", err)
	}
	return memos, nil
}

// Update applies the non-nil fields of patch. A memo that does not exist or
// belongs to another account is reported as domain.ErrMemoNotFound.
func (r *MemoRepository) Update(ctx context.Context, userID, memoID int64, patch domain.MemoPatch) (*domain.Memo, error) {
	query := r.dialect.Rebind(`UPDATE memos
		SET title = COALESCE(?, title), content = COALESCE(?, content)
		WHERE id = ? AND user_id = ?
		RETURNING ` + memoColumns)

	updated, err := scanMemo(r.db.QueryRowContext(ctx, query,
		nullString(patch.Title), nullString(patch.Content), memoID, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMemoNotFound
		}
		return nil, fmt.Errorf("update memo: %w", err)
	}
	return updated, nil
}

func (r *MemoRepository) Delete(ctx context.Context, userID, memoID int64) error {
	query := r.dialect.Rebind(`DELETE FROM memos WHERE id = ? AND user_id = ?`)

	res, err := r.db.ExecContext(ctx, query, memoID, userID)
	if err != nil {
		return fmt.Errorf("delete memo: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete memo: %w", err)
	}
	if n == 0 {
		return domain.ErrMemoNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMemo(row rowScanner) (*domain.Memo, error) {
	var (
		m       domain.Memo
		title   sql.NullString
		content sql.NullString
	)
	if err := row.Scan(&m.ID, &m.UserID, &title, &content); err != nil {
		return nil, err
	}
	m.Title = stringPtr(title)
	m.Content = stringPtr(content)
	return &m, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

var _ ports.MemoRepository = (*MemoRepository)(nil)
