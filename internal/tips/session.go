package tips

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/2beens/healthmetrics/pkg"
)

const (
	DefaultSessionTTL = 24 * time.Hour
	sessionKeyPrefix  = "healthmetrics-tips-session||"
)

var ErrSessionNotFound = errors.New("tips session not found")

// RedisSessionStore keeps one carousel cursor per session token.
// Every write refreshes the session TTL.
type RedisSessionStore struct {
	redisClient *redis.Client
	ttl         time.Duration
	// ability to inject random string generator func for tokens (for unit and dev testing)
	RandStringFunc func(s int) (string, error)
}

func NewRedisSessionStore(
	ttl time.Duration,
	redisClient *redis.Client,
) *RedisSessionStore {
	return &RedisSessionStore{
		ttl:            ttl,
		redisClient:    redisClient,
		RandStringFunc: pkg.GenerateRandomString,
	}
}

// NewSession stores a fresh session with the cursor at zero and
// returns its token.
func (s *RedisSessionStore) NewSession(ctx context.Context) (string, error) {
	token, err := s.RandStringFunc(35)
	if err != nil {
		return "", err
	}

	sessionKey := sessionKeyPrefix + token
	if err := s.redisClient.Set(ctx, sessionKey, 0, s.ttl).Err(); err != nil {
		return "", err
	}

	return token, nil
}

func (s *RedisSessionStore) Get(ctx context.Context, token string) (int, error) {
	cmd := s.redisClient.Get(ctx, sessionKeyPrefix+token)
	if err := cmd.Err(); err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, ErrSessionNotFound
		}
		return 0, err
	}

	index, err := strconv.Atoi(cmd.Val())
	if err != nil {
		return 0, fmt.Errorf("parse session index: %w", err)
	}

	return index, nil
}

func (s *RedisSessionStore) Set(ctx context.Context, token string, index int) error {
	return s.redisClient.Set(ctx, sessionKeyPrefix+token, index, s.ttl).Err()
}
