package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"github.com/99minutos/memo-service/internal/core/domain"
	"github.com/99minutos/memo-service/internal/core/ports"
)

func newAuthService(store *stubStore) *AuthService {
	return NewAuthService(store, stubHasher{}, zerolog.Nop())
}

func TestAuthService_Signup_Success(t *testing.T) {
	store := newStubStore()
	svc := newAuthService(store)

	acc, err := svc.Signup(context.Background(), ports.SignupInput{Username: "alice", Email: "a@x.com", Password: "pw"})
	if err != nil {
		t.Fatalf("Signup returned error: %v", err)
	}
	if acc.ID == 0 {
		t.Fatalf("expected ID to be assigned")
	}
	if acc.HashedPassword == "pw" {
		t.Fatalf("expected password to be hashed")
	}
	if acc.Email != "a@x.com" {
		t.Fatalf("unexpected email: %q", acc.Email)
	}
	if store.commits != 1 {
		t.Fatalf("expected one committed transaction, got %d", store.commits)
	}
}

func TestAuthService_Signup_Duplicate(t *testing.T) {
	store := newStubStore()
	svc := newAuthService(store)

	if _, err := svc.Signup(context.Background(), ports.SignupInput{Username: "bob", Password: "pw"}); err != nil {
		t.Fatalf("first signup failed: %v", err)
	}
	_, err := svc.Signup(context.Background(), ports.SignupInput{Username: "bob", Email: "other@x.com", Password: "pw2"})
	if !errors.Is(err, domain.ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
	if len(store.data.accounts) != 1 {
		t.Fatalf("duplicate signup must not create a row, have %d", len(store.data.accounts))
	}
	if store.data.accounts["bob"].HashedPassword != "hashed:pw" {
		t.Fatalf("existing account must be untouched")
	}
}

func TestAuthService_Signup_Validation(t *testing.T) {
	svc := newAuthService(newStubStore())

	if _, err := svc.Signup(context.Background(), ports.SignupInput{Password: "pw"}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty username, got %v", err)
	}
	if _, err := svc.Signup(context.Background(), ports.SignupInput{Username: "carol"}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty password, got %v", err)
	}
}

func TestAuthService_Signup_StorageFailure(t *testing.T) {
	store := newStubStore()
	store.txErr = errors.New("disk full")
	svc := newAuthService(store)

	_, err := svc.Signup(context.Background(), ports.SignupInput{Username: "dave", Password: "pw"})
	if err == nil || errors.Is(err, domain.ErrUsernameTaken) {
		t.Fatalf("expected wrapped storage error, got %v", err)
	}
	if store.rollbacks != 1 || len(store.data.accounts) != 0 {
		t.Fatalf("expected rollback and no rows, got rollbacks=%d rows=%d", store.rollbacks, len(store.data.accounts))
	}
}

func TestAuthService_Signup_HashFailure(t *testing.T) {
	store := newStubStore()
	svc := NewAuthService(store, stubHasher{hashErr: errors.New("entropy")}, zerolog.Nop())

	if _, err := svc.Signup(context.Background(), ports.SignupInput{Username: "erin", Password: "pw"}); err == nil {
		t.Fatalf("expected error")
	}
	if store.commits+store.rollbacks != 0 {
		t.Fatalf("no transaction should be opened when hashing fails")
	}
}

func TestAuthService_Signup_RejectedByHasher(t *testing.T) {
	store := newStubStore()
	tooLong := fmt.Errorf("%w: password too long", domain.ErrInvalidInput)
	svc := NewAuthService(store, stubHasher{hashErr: tooLong}, zerolog.Nop())

	_, err := svc.Signup(context.Background(), ports.SignupInput{Username: "erin", Password: "pw"})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput to survive wrapping, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	svc := newAuthService(newStubStore())
	if _, err := svc.Signup(context.Background(), ports.SignupInput{Username: "carol", Password: "s3cret"}); err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	acc, err := svc.Login(context.Background(), "carol", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if acc.Username != "carol" {
		t.Fatalf("unexpected account: %+v", acc)
	}
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	svc := newAuthService(newStubStore())
	_, _ = svc.Signup(context.Background(), ports.SignupInput{Username: "dave", Password: "goodpass"})

	if _, err := svc.Login(context.Background(), "dave", "badpass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	svc := newAuthService(newStubStore())

	if _, err := svc.Login(context.Background(), "ghost", "pass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "", ""); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for empty input, got %v", err)
	}
}

func TestAuthService_Login_StorageFailure(t *testing.T) {
	store := newStubStore()
	store.txErr = errors.New("connection reset")
	svc := newAuthService(store)

	_, err := svc.Login(context.Background(), "alice", "pw")
	if err == nil || errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("storage failure must not look like bad credentials, got %v", err)
	}
}

func TestAuthService_ResolveAccount(t *testing.T) {
	svc := newAuthService(newStubStore())
	created, _ := svc.Signup(context.Background(), ports.SignupInput{Username: "frank", Password: "pw"})

	got, err := svc.ResolveAccount(context.Background(), "frank")
	if err != nil {
		t.Fatalf("ResolveAccount error: %v", err)
	}
	if got.ID != created.ID {
		t.Fatalf("expected id %d, got %d", created.ID, got.ID)
	}

	if _, err := svc.ResolveAccount(context.Background(), "deleted-mid-session"); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
	if _, err := svc.ResolveAccount(context.Background(), ""); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound for empty username, got %v", err)
	}
}
