package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/99minutos/memo-service/internal/infrastructure/session"
)

const (
	sessionKey = "session"
	accountKey = "account"
)

// Session loads the session bag for every request and saves it right before
// the response headers go out, if a handler changed it.
func Session(store session.Store, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()

			sess, err := store.Load(ctx, c.Request())
			if err != nil {
				return err
			}
			c.Set(sessionKey, sess)

			res := c.Response()
			res.Before(func() {
				if !sess.Modified() {
					return
				}
				if err := store.Save(ctx, res, sess); err != nil {
					log.Error().
						Err(err).
						Str("request_id", res.Header().Get(echo.HeaderXRequestID)).
						Msg("failed to save session")
				}
			})

			return next(c)
		}
	}
}

// SessionFrom returns the bag loaded by Session, or nil when the middleware
// did not run.
func SessionFrom(c echo.Context) *session.Session {
	sess, _ := c.Get(sessionKey).(*session.Session)
	return sess
}
