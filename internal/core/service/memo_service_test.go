package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/99minutos/memo-service/internal/core/domain"
	"github.com/99minutos/memo-service/internal/core/ports"
)

func strptr(s string) *string { return &s }

// seedAccounts registers alice and bob and returns their accounts.
func seedAccounts(t *testing.T, store *stubStore) (*domain.Account, *domain.Account) {
	t.Helper()
	auth := newAuthService(store)
	alice, err := auth.Signup(context.Background(), ports.SignupInput{Username: "alice", Email: "a@x.com", Password: "pw"})
	if err != nil {
		t.Fatalf("signup alice: %v", err)
	}
	bob, err := auth.Signup(context.Background(), ports.SignupInput{Username: "bob", Email: "b@x.com", Password: "pw"})
	if err != nil {
		t.Fatalf("signup bob: %v", err)
	}
	return alice, bob
}

func TestMemoService_CreateAndList(t *testing.T) {
	store := newStubStore()
	alice, bob := seedAccounts(t, store)
	svc := NewMemoService(store, zerolog.Nop())
	ctx := context.Background()

	m, err := svc.Create(ctx, alice, ports.MemoInput{Title: strptr("t"), Content: strptr("c")})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if m.UserID != alice.ID {
		t.Fatalf("memo must be owned by alice, got user_id=%d", m.UserID)
	}

	memos, err := svc.List(ctx, alice)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(memos) != 1 || memos[0].ID != m.ID {
		t.Fatalf("expected exactly the created memo, got %+v", memos)
	}

	others, err := svc.List(ctx, bob)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if others == nil || len(others) != 0 {
		t.Fatalf("expected empty non-nil list for bob, got %#v", others)
	}
}

func TestMemoService_CreateWithoutFields(t *testing.T) {
	store := newStubStore()
	alice, _ := seedAccounts(t, store)
	svc := NewMemoService(store, zerolog.Nop())

	m, err := svc.Create(context.Background(), alice, ports.MemoInput{})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if m.Title != nil || m.Content != nil {
		t.Fatalf("expected nil fields, got %+v", m)
	}
}

func TestMemoService_Update_Partial(t *testing.T) {
	store := newStubStore()
	alice, _ := seedAccounts(t, store)
	svc := NewMemoService(store, zerolog.Nop())
	ctx := context.Background()

	m, _ := svc.Create(ctx, alice, ports.MemoInput{Title: strptr("t"), Content: strptr("c")})

	updated, err := svc.Update(ctx, alice, m.ID, domain.MemoPatch{Title: strptr("t2")})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if *updated.Title != "t2" || *updated.Content != "c" {
		t.Fatalf("partial update must keep content, got %q/%q", *updated.Title, *updated.Content)
	}

	full, err := svc.Update(ctx, alice, m.ID, domain.MemoPatch{Title: strptr("x"), Content: strptr("y")})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if *full.Title != "x" || *full.Content != "y" {
		t.Fatalf("full update must overwrite both, got %q/%q", *full.Title, *full.Content)
	}
}

func TestMemoService_ForeignMemoIsNotFound(t *testing.T) {
	store := newStubStore()
	alice, bob := seedAccounts(t, store)
	svc := NewMemoService(store, zerolog.Nop())
	ctx := context.Background()

	m, _ := svc.Create(ctx, alice, ports.MemoInput{Title: strptr("secret"), Content: strptr("c")})

	if _, err := svc.Update(ctx, bob, m.ID, domain.MemoPatch{Title: strptr("pwned")}); !errors.Is(err, domain.ErrMemoNotFound) {
		t.Fatalf("expected ErrMemoNotFound on foreign update, got %v", err)
	}
	if err := svc.Delete(ctx, bob, m.ID); !errors.Is(err, domain.ErrMemoNotFound) {
		t.Fatalf("expected ErrMemoNotFound on foreign delete, got %v", err)
	}

	memos, _ := svc.List(ctx, alice)
	if len(memos) != 1 || *memos[0].Title != "secret" {
		t.Fatalf("alice's memo must be untouched, got %+v", memos)
	}
}

func TestMemoService_Delete(t *testing.T) {
	store := newStubStore()
	alice, _ := seedAccounts(t, store)
	svc := NewMemoService(store, zerolog.Nop())
	ctx := context.Background()

	m, _ := svc.Create(ctx, alice, ports.MemoInput{Title: strptr("t")})

	if err := svc.Delete(ctx, alice, m.ID); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if err := svc.Delete(ctx, alice, m.ID); !errors.Is(err, domain.ErrMemoNotFound) {
		t.Fatalf("second delete must report ErrMemoNotFound, got %v", err)
	}
	if _, err := svc.Update(ctx, alice, m.ID, domain.MemoPatch{Title: strptr("x")}); !errors.Is(err, domain.ErrMemoNotFound) {
		t.Fatalf("update after delete must report ErrMemoNotFound, got %v", err)
	}
}

func TestMemoService_StorageFailureIsWrapped(t *testing.T) {
	store := newStubStore()
	alice, _ := seedAccounts(t, store)
	store.txErr = errors.New("db down")
	svc := NewMemoService(store, zerolog.Nop())
	ctx := context.Background()

	if _, err := svc.Create(ctx, alice, ports.MemoInput{}); err == nil {
		t.Fatalf("expected create error")
	}
	if _, err := svc.List(ctx, alice); err == nil {
		t.Fatalf("expected list error")
	}
	_, err := svc.Update(ctx, alice, 1, domain.MemoPatch{})
	if err == nil || errors.Is(err, domain.ErrMemoNotFound) {
		t.Fatalf("expected non-not-found error, got %v", err)
	}
	if len(store.data.memos) != 0 {
		t.Fatalf("failed writes must not persist")
	}
}

func TestMemoService_NilOwner(t *testing.T) {
	svc := NewMemoService(newStubStore(), zerolog.Nop())

	if _, err := svc.Create(context.Background(), nil, ports.MemoInput{}); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
	if err := svc.Delete(context.Background(), nil, 1); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}
