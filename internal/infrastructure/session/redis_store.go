package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "session:"

// RedisClient is the subset of *redis.Client used by RedisStore.
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// RedisStore keeps the bag in Redis as JSON under session:<id>; the cookie
// carries only the id. Entries expire with the cookie.
type RedisStore struct {
	client RedisClient
	opts   Options
}

func NewRedisStore(client RedisClient, opts Options) *RedisStore {
	return &RedisStore{client: client, opts: opts.withDefaults()}
}

func (s *RedisStore) Load(ctx context.Context, r *http.Request) (*Session, error) {
	c, err := r.Cookie(s.opts.CookieName)
	if err != nil || c.Value == "" {
		return New(), nil
	}
	if _, err := uuid.Parse(c.Value); err != nil {
		return New(), nil
	}

	raw, err := s.client.Get(ctx, keyPrefix+c.Value).Result()
	if errors.Is(err, redis.Nil) {
		return New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	sess := New()
	if err := json.Unmarshal([]byte(raw), &sess.values); err != nil {
		return New(), nil
	}
	if sess.values == nil {
		sess.values = make(map[string]string)
	}
	sess.id = c.Value
	return sess, nil
}

func (s *RedisStore) Save(ctx context.Context, w http.ResponseWriter, sess *Session) error {
	if sess.prevID != "" {
		if err := s.client.Del(ctx, keyPrefix+sess.prevID).Err(); err != nil {
			return fmt.Errorf("rotate session: %w", err)
		}
		sess.prevID = ""
	}

	if sess.Empty() {
		if sess.id != "" {
			if err := s.client.Del(ctx, keyPrefix+sess.id).Err(); err != nil {
				return fmt.Errorf("delete session: %w", err)
			}
		}
		http.SetCookie(w, s.opts.expiredCookie())
		return nil
	}

	if sess.id == "" {
		sess.id = uuid.NewString()
	}
	data, err := json.Marshal(sess.values)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.client.Set(ctx, keyPrefix+sess.id, data, s.opts.MaxAge).Err(); err != nil {
		return fmt.Errorf("store session: %w", err)
	}

	http.SetCookie(w, s.opts.cookie(sess.id))
	return nil
}

var _ Store = (*RedisStore)(nil)
