package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/99minutos/memo-service/internal/infrastructure/session"
)

// recordingStore hands out a fixed session and records saves.
type recordingStore struct {
	loaded  *session.Session
	loadErr error
	saves   int
}

func (s *recordingStore) Load(context.Context, *http.Request) (*session.Session, error) {
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	return s.loaded, nil
}

func (s *recordingStore) Save(_ context.Context, w http.ResponseWriter, _ *session.Session) error {
	s.saves++
	http.SetCookie(w, &http.Cookie{Name: "session", Value: "saved"})
	return nil
}

func serveWithSession(store session.Store, h echo.HandlerFunc) *httptest.ResponseRecorder {
	e := echo.New()
	e.Use(Session(store, zerolog.Nop()))
	e.GET("/", h)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	return rec
}

func TestSession_SavesWhenModified(t *testing.T) {
	store := &recordingStore{loaded: session.New()}

	rec := serveWithSession(store, func(c echo.Context) error {
		SessionFrom(c).Set(SessionUsernameKey, "alice")
		return c.String(http.StatusOK, "ok")
	})

	if store.saves != 1 {
		t.Fatalf("expected one save, got %d", store.saves)
	}
	if rec.Header().Get("Set-Cookie") == "" {
		t.Fatalf("expected the cookie to be written before the body")
	}
}

func TestSession_SkipsUnmodified(t *testing.T) {
	store := &recordingStore{loaded: session.New()}

	rec := serveWithSession(store, func(c echo.Context) error {
		if SessionFrom(c) == nil {
			t.Fatalf("session not injected")
		}
		return c.String(http.StatusOK, "ok")
	})

	if store.saves != 0 || rec.Header().Get("Set-Cookie") != "" {
		t.Fatalf("unmodified session must not be saved")
	}
}

func TestSession_LoadError(t *testing.T) {
	store := &recordingStore{loadErr: errors.New("redis down")}

	rec := serveWithSession(store, func(c echo.Context) error {
		t.Fatalf("handler must not run")
		return nil
	})

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}
