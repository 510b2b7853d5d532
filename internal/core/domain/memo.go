package domain

import "errors"

var (
	ErrMemoNotFound = errors.New("memo not found")
	ErrInvalidInput = errors.New("invalid input")
)

// Memo is a title/content note owned by exactly one Account.
// Title and Content are nullable in storage; nil means "not set".
type Memo struct {
	ID      int64   `json:"id"`
	UserID  int64   `json:"user_id"`
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

// MemoPatch carries a partial update. Only non-nil fields overwrite the
// stored memo.
type MemoPatch struct {
	Title   *string
	Content *string
}

// Apply returns a copy of m with the patch applied.
func (p MemoPatch) Apply(m Memo) Memo {
	if p.Title != nil {
		t := *p.Title
		m.Title = &t
	}
	if p.Content != nil {
		c := *p.Content
		m.Content = &c
	}
	return m
}
