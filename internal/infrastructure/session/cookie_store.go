package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type sessionClaims struct {
	Values map[string]string `json:"v"`
	jwt.RegisteredClaims
}

// CookieStore keeps the bag in an HS256-signed token inside the cookie.
// Tampered, expired or malformed cookies load as an empty session.
type CookieStore struct {
	secret []byte
	opts   Options
	now    func() time.Time
}

func NewCookieStore(secret string, opts Options) (*CookieStore, error) {
	if secret == "" {
		return nil, errors.New("session: cookie store requires a secret")
	}
	return &CookieStore{secret: []byte(secret), opts: opts.withDefaults(), now: time.Now}, nil
}

func (s *CookieStore) Load(_ context.Context, r *http.Request) (*Session, error) {
	c, err := r.Cookie(s.opts.CookieName)
	if err != nil || c.Value == "" {
		return New(), nil
	}

	claims := &sessionClaims{}
	tkn, err := jwt.ParseWithClaims(c.Value, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil || !tkn.Valid {
		return New(), nil
	}

	sess := New()
	for k, v := range claims.Values {
		sess.values[k] = v
	}
	return sess, nil
}

func (s *CookieStore) Save(_ context.Context, w http.ResponseWriter, sess *Session) error {
	if sess.Empty() {
		http.SetCookie(w, s.opts.expiredCookie())
		return nil
	}

	now := s.now()
	claims := sessionClaims{
		Values: sess.Values(),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.opts.MaxAge)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return fmt.Errorf("sign session: %w", err)
	}

	http.SetCookie(w, s.opts.cookie(signed))
	return nil
}

var _ Store = (*CookieStore)(nil)
