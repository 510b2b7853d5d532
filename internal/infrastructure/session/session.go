// Package session keeps a small string bag per browser across requests.
//
// Two backends are provided: CookieStore keeps the whole bag in a signed
// cookie, RedisStore keeps it in Redis under a random id carried by the
// cookie. Saving an empty bag clears the cookie.
package session

import (
	"context"
	"net/http"
	"time"
)

const (
	DefaultCookieName = "session"
	DefaultMaxAge     = 14 * 24 * time.Hour
)

// Store loads and persists sessions for a request/response pair.
type Store interface {
	Load(ctx context.Context, r *http.Request) (*Session, error)
	Save(ctx context.Context, w http.ResponseWriter, s *Session) error
}

// Options configure the cookie shared by every backend.
type Options struct {
	CookieName string
	MaxAge     time.Duration
	Secure     bool
}

func (o Options) withDefaults() Options {
	if o.CookieName == "" {
		o.CookieName = DefaultCookieName
	}
	if o.MaxAge <= 0 {
		o.MaxAge = DefaultMaxAge
	}
	return o
}

// Session is a mutable bag of string values. It is not safe for concurrent
// use; one request owns it at a time.
type Session struct {
	id       string
	prevID   string
	values   map[string]string
	modified bool
}

// New returns an empty session.
func New() *Session {
	return &Session{values: make(map[string]string)}
}

func (s *Session) Get(key string) (string, bool) {
	v, ok := s.values[key]
	return v, ok
}

func (s *Session) Set(key, value string) {
	if cur, ok := s.values[key]; ok && cur == value {
		return
	}
	s.values[key] = value
	s.modified = true
}

// Delete removes key. Deleting a missing key is a no-op.
func (s *Session) Delete(key string) {
	if _, ok := s.values[key]; !ok {
		return
	}
	delete(s.values, key)
	s.modified = true
}

// Renew drops the server-side identifier so the next save issues a fresh
// one. Call it when the authenticated identity changes.
func (s *Session) Renew() {
	if s.id != "" {
		s.prevID = s.id
		s.id = ""
	}
	s.modified = true
}

// Modified reports whether the bag changed since it was loaded.
func (s *Session) Modified() bool { return s.modified }

// Empty reports whether the bag holds no values.
func (s *Session) Empty() bool { return len(s.values) == 0 }

// Values returns a copy of the bag.
func (s *Session) Values() map[string]string {
	out := make(map[string]string, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

func (o Options) cookie(value string) *http.Cookie {
	return &http.Cookie{
		Name:     o.CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   int(o.MaxAge.Seconds()),
		HttpOnly: true,
		Secure:   o.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func (o Options) expiredCookie() *http.Cookie {
	c := o.cookie("")
	c.MaxAge = -1
	c.Expires = time.Unix(0, 0)
	return c
}
