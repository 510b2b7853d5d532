package handler

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/memo-service/internal/core/domain"
	"github.com/99minutos/memo-service/internal/core/ports"
	"github.com/99minutos/memo-service/internal/infrastructure/session"
)

type stubAuthService struct {
	signupFn  func(ctx context.Context, in ports.SignupInput) (*domain.Account, error)
	loginFn   func(ctx context.Context, username, password string) (*domain.Account, error)
	resolveFn func(ctx context.Context, username string) (*domain.Account, error)
}

func (s *stubAuthService) Signup(ctx context.Context, in ports.SignupInput) (*domain.Account, error) {
	return s.signupFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (*domain.Account, error) {
	return s.loginFn(ctx, username, password)
}

func (s *stubAuthService) ResolveAccount(ctx context.Context, username string) (*domain.Account, error) {
	return s.resolveFn(ctx, username)
}

type stubMemoService struct {
	createFn func(ctx context.Context, owner *domain.Account, in ports.MemoInput) (*domain.Memo, error)
	listFn   func(ctx context.Context, owner *domain.Account) ([]domain.Memo, error)
	updateFn func(ctx context.Context, owner *domain.Account, id int64, patch domain.MemoPatch) (*domain.Memo, error)
	deleteFn func(ctx context.Context, owner *domain.Account, id int64) error
}

func (s *stubMemoService) Create(ctx context.Context, owner *domain.Account, in ports.MemoInput) (*domain.Memo, error) {
	return s.createFn(ctx, owner, in)
}

func (s *stubMemoService) List(ctx context.Context, owner *domain.Account) ([]domain.Memo, error) {
	return s.listFn(ctx, owner)
}

func (s *stubMemoService) Update(ctx context.Context, owner *domain.Account, id int64, patch domain.MemoPatch) (*domain.Memo, error) {
	return s.updateFn(ctx, owner, id, patch)
}

func (s *stubMemoService) Delete(ctx context.Context, owner *domain.Account, id int64) error {
	return s.deleteFn(ctx, owner, id)
}

// stubRenderer records the template name and data it was asked to render.
type stubRenderer struct {
	name string
	data interface{}
}

func (r *stubRenderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	r.name, r.data = name, data
	_, err := io.WriteString(w, "<html>"+name+"</html>")
	return err
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

// newJSONContext builds a context for a JSON request, with an empty session
// and, when acc is non-nil, an authenticated account.
func newJSONContext(e *echo.Echo, method, target, body string, acc *domain.Account) (echo.Context, *httptest.ResponseRecorder, *session.Session) {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	sess := session.New()
	c.Set("session", sess)
	if acc != nil {
		c.Set("account", acc)
	}
	return c, rec, sess
}

func expectHTTPError(t *testing.T, err error, code int) {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %T (%v)", err, err)
	}
	if he.Code != code {
		t.Fatalf("expected status %d, got %d", code, he.Code)
	}
}

func strptr(s string) *string { return &s }
