package utils

import (
	"context"
	"net"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/chicknext/chicknext/config"
)

// SessionTTL bounds both the server-side session entry and the cookie
// max-age handed to the browser.
const SessionTTL = 24 * time.Hour

const sessionKeyPrefix = "session:"

// NewRedisClient builds a Redis client from configuration. The handle is
// created in main and passed to whoever needs it.
func NewRedisClient(cfg config.AppConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         net.JoinHostPort(cfg.RedisHost, strconv.Itoa(cfg.RedisPort)),
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		DialTimeout:  3 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})
}

// SessionStore keeps sign-in sessions in Redis so both the API and the web
// process validate the same tokens. Tokens are opaque random strings; the
// browser cookie is only a capability reference, never trusted by itself.
type SessionStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewSessionStore wraps a Redis client with the session TTL.
func NewSessionStore(rdb *redis.Client, ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = SessionTTL
	}
	return &SessionStore{rdb: rdb, ttl: ttl}
}

// TTL returns the configured session lifetime.
func (s *SessionStore) TTL() time.Duration {
	return s.ttl
}

// Create mints a crypto-random token for username and stores it with TTL.
func (s *SessionStore) Create(ctx context.Context, username string) (string, error) {
	token := uuid.NewString()
	if err := s.rdb.Set(ctx, sessionKeyPrefix+token, username, s.ttl).Err(); err != nil {
		return "", err
	}
	return token, nil
}

// Validate looks the token up and returns the bound username. Expired or
// unknown tokens simply miss; Redis errors are treated as a miss so an
// outage never fakes a valid session.
func (s *SessionStore) Validate(ctx context.Context, token string) (string, bool) {
	if token == "" {
		return "", false
	}
	username, err := s.rdb.Get(ctx, sessionKeyPrefix+token).Result()
	if err != nil {
		return "", false
	}
	return username, true
}

// Destroy removes a session token.
func (s *SessionStore) Destroy(ctx context.Context, token string) error {
	return s.rdb.Del(ctx, sessionKeyPrefix+token).Err()
}
