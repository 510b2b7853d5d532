package handler

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/memo-service/internal/api/middleware"
	"github.com/99minutos/memo-service/internal/core/domain"
	"github.com/99minutos/memo-service/internal/infrastructure/session"
)

var errNoSession = errors.New("session middleware not installed")

// ctxAccount returns the account injected by the auth guard. Handlers behind
// the guard always have one; a missing account means the route is wired
// without it.
func ctxAccount(c echo.Context) (*domain.Account, error) {
	acc := middleware.AccountFrom(c)
	if acc == nil {
		return nil, domain.ErrUnauthenticated
	}
	return acc, nil
}

func ctxSession(c echo.Context) (*session.Session, error) {
	sess := middleware.SessionFrom(c)
	if sess == nil {
		return nil, errNoSession
	}
	return sess, nil
}
