package server

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrSessionExpired is returned for unknown or expired tokens.
var ErrSessionExpired = errors.New("session expired")

// sessionTTL is how long a session token stays valid without use.
const sessionTTL = 30 * 24 * time.Hour

// Sessions maps opaque bearer tokens to user ids.
type Sessions interface {
	Create(ctx context.Context, userID string) (string, error)
	UserID(ctx context.Context, token string) (string, error)
	Revoke(ctx context.Context, token string) error
}

// RedisSessions stores tokens in Redis so sessions survive server
// restarts.
type RedisSessions struct {
	client *redis.Client
}

// NewRedisSessions connects to Redis and verifies the connection.
func NewRedisSessions(ctx context.Context, addr string) (*RedisSessions, error) {
	opt, err := redis.ParseURL(fmt.Sprintf("redis://%s", addr))
	if err != nil {
		opt = &redis.Options{Addr: addr}
	}
	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}
	return &RedisSessions{client: client}, nil
}

func sessionKey(token string) string {
	return "session:" + token
}

// Create implements Sessions.
func (r *RedisSessions) Create(ctx context.Context, userID string) (string, error) {
	token := uuid.NewString()
	if err := r.client.Set(ctx, sessionKey(token), userID, sessionTTL).Err(); err != nil {
		return "", fmt.Errorf("storing session: %w", err)
	}
	return token, nil
}

// UserID implements Sessions.
func (r *RedisSessions) UserID(ctx context.Context, token string) (string, error) {
	userID, err := r.client.Get(ctx, sessionKey(token)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrSessionExpired
	}
	if err != nil {
		return "", fmt.Errorf("looking up session: %w", err)
	}
	return userID, nil
}

// Revoke implements Sessions.
func (r *RedisSessions) Revoke(ctx context.Context, token string) error {
	return r.client.Del(ctx, sessionKey(token)).Err()
}

// MemorySessions is the fallback when Redis is not configured; sessions
// die with the process.
type MemorySessions struct {
	mu     sync.RWMutex
	tokens map[string]memorySession
}

type memorySession struct {
	userID  string
	expires time.Time
}

// NewMemorySessions creates an empty in-process session table.
func NewMemorySessions() *MemorySessions {
	return &MemorySessions{tokens: make(map[string]memorySession)}
}

// Create implements Sessions.
func (m *MemorySessions) Create(_ context.Context, userID string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	token := uuid.NewString()
	m.tokens[token] = memorySession{userID: userID, expires: time.Now().Add(sessionTTL)}
	return token, nil
}

// UserID implements Sessions.
func (m *MemorySessions) UserID(_ context.Context, token string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.tokens[token]
	if !ok || time.Now().After(s.expires) {
		return "", ErrSessionExpired
	}
	return s.userID, nil
}

// Revoke implements Sessions.
func (m *MemorySessions) Revoke(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tokens, token)
	return nil
}
