package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/99minutos/memo-service/internal/core/domain"
	"github.com/99minutos/memo-service/internal/core/ports"
)

// SessionUsernameKey is the session entry that marks a logged-in browser.
const SessionUsernameKey = "username"

// RequireAccount resolves the session user to an account and injects it into
// the context. It must run after Session.
func RequireAccount(auth ports.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess := SessionFrom(c)
			if sess == nil {
				return domain.ErrUnauthenticated
			}

			username, ok := sess.Get(SessionUsernameKey)
			if !ok || username == "" {
				return domain.ErrUnauthenticated
			}

			acc, err := auth.ResolveAccount(c.Request().Context(), username)
			if err != nil {
				return err
			}

			c.Set(accountKey, acc)
			return next(c)
		}
	}
}

// AccountFrom returns the account injected by RequireAccount, or nil.
func AccountFrom(c echo.Context) *domain.Account {
	acc, _ := c.Get(accountKey).(*domain.Account)
	return acc
}
