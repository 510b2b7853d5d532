package ports

import "context"

// Repositories exposes the repositories bound to a single transaction.
type Repositories interface {
	Accounts() AccountRepository
	Memos() MemoRepository
}

// Store hands out transaction-scoped repositories.
type Store interface {
	// WithinTx runs fn inside one transaction. The transaction is committed
	// when fn returns nil and rolled back otherwise; the underlying
	// connection is released before WithinTx returns.
	WithinTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
}
