package service

import (
	"context"
	"sort"

	"github.com/99minutos/memo-service/internal/core/domain"
	"github.com/99minutos/memo-service/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub store. WithinTx works on a copy of the data and only keeps
// it when fn succeeds, mirroring commit/rollback.
// ---------------------------------------------------------------------------

type stubData struct {
	accounts map[string]domain.Account
	memos    map[int64]domain.Memo
	nextID   int64
}

func (d stubData) clone() stubData {
	c := stubData{
		accounts: make(map[string]domain.Account, len(d.accounts)),
		memos:    make(map[int64]domain.Memo, len(d.memos)),
		nextID:   d.nextID,
	}
	for k, v := range d.accounts {
		c.accounts[k] = v
	}
	for k, v := range d.memos {
		c.memos[k] = v
	}
	return c
}

type stubStore struct {
	data      stubData
	txErr     error // if set, every repository call fails with it
	commits   int
	rollbacks int
}

func newStubStore() *stubStore {
	return &stubStore{data: stubData{
		accounts: make(map[string]domain.Account),
		memos:    make(map[int64]domain.Memo),
	}}
}

func (s *stubStore) WithinTx(ctx context.Context, fn func(ctx context.Context, repos ports.Repositories) error) error {
	work := s.data.clone()
	if err := fn(ctx, &stubRepos{data: &work, err: s.txErr}); err != nil {
		s.rollbacks++
		return err
	}
	s.data = work
	s.commits++
	return nil
}

type stubRepos struct {
	data *stubData
	err  error
}

func (r *stubRepos) Accounts() ports.AccountRepository { return (*stubAccounts)(r) }
func (r *stubRepos) Memos() ports.MemoRepository       { return (*stubMemos)(r) }

type stubAccounts stubRepos

func (r *stubAccounts) Create(_ context.Context, a *domain.Account) (*domain.Account, error) {
	if r.err != nil {
		return nil, r.err
	}
	if _, exists := r.data.accounts[a.Username]; exists {
		return nil, domain.ErrUsernameTaken
	}
	r.data.nextID++
	clone := *a
	clone.ID = r.data.nextID
	r.data.accounts[a.Username] = clone
	return &clone, nil
}

func (r *stubAccounts) FindByUsername(_ context.Context, username string) (*domain.Account, error) {
	if r.err != nil {
		return nil, r.err
	}
	a, ok := r.data.accounts[username]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return &a, nil
}

type stubMemos stubRepos

func (r *stubMemos) Create(_ context.Context, m *domain.Memo) (*domain.Memo, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.data.nextID++
	clone := *m
	clone.ID = r.data.nextID
	r.data.memos[clone.ID] = clone
	return &clone, nil
}

func (r *stubMemos) ListByOwner(_ context.Context, userID int64) ([]domain.Memo, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []domain.Memo
	for _, m := range r.data.memos {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubMemos) Update(_ context.Context, userID, memoID int64, patch domain.MemoPatch) (*domain.Memo, error) {
	if r.err != nil {
		return nil, r.err
	}
	m, ok := r.data.memos[memoID]
	if !ok || m.UserID != userID {
		return nil, domain.ErrMemoNotFound
	}
	m = patch.Apply(m)
	r.data.memos[memoID] = m
	return &m, nil
}

func (r *stubMemos) Delete(_ context.Context, userID, memoID int64) error {
	if r.err != nil {
		return r.err
	}
	m, ok := r.data.memos[memoID]
	if !ok || m.UserID != userID {
		return domain.ErrMemoNotFound
	}
	delete(r.data.memos, memoID)
	return nil
}

// stubHasher keeps tests fast; the bcrypt hasher is tested on its own.
type stubHasher struct {
	hashErr error
}

func (h stubHasher) Hash(p string) (string, error) {
	if h.hashErr != nil {
		return "", h.hashErr
	}
	return "hashed:" + p, nil
}

func (h stubHasher) Verify(p, hash string) bool {
	return hash == "hashed:"+p
}
