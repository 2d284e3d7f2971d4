// AngelaMos | 2026
// otp.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// CodeStore holds short-lived one-time codes keyed by email. It is an
// injected abstraction so production can share codes across instances
// through Redis while tests run against an in-process map.
type CodeStore interface {
	Set(ctx context.Context, email, code string, ttl time.Duration) error
	Get(ctx context.Context, email string) (string, error)
	Delete(ctx context.Context, email string) error
}

// ErrCodeNotFound covers both "never issued" and "expired": callers
// must not be able to tell the two apart.
var ErrCodeNotFound = errors.New("code not found")

const otpKeyPrefix = "otp:"

type redisCodeStore struct {
	client *redis.Client
}

func NewRedisCodeStore(client *redis.Client) CodeStore {
	return &redisCodeStore{client: client}
}

func (s *redisCodeStore) Set(
	ctx context.Context,
	email, code string,
	ttl time.Duration,
) error {
	if err := s.client.Set(ctx, otpKeyPrefix+email, code, ttl).Err(); err != nil {
		return fmt.Errorf("store otp code: %w", err)
	}
	return nil
}

func (s *redisCodeStore) Get(
	ctx context.Context,
	email string,
) (string, error) {
	code, err := s.client.Get(ctx, otpKeyPrefix+email).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrCodeNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get otp code: %w", err)
	}
	return code, nil
}

func (s *redisCodeStore) Delete(ctx context.Context, email string) error {
	if err := s.client.Del(ctx, otpKeyPrefix+email).Err(); err != nil {
		return fmt.Errorf("delete otp code: %w", err)
	}
	return nil
}

type memoryCodeEntry struct {
	code      string
	expiresAt time.Time
}

type memoryCodeStore struct {
	mu      sync.Mutex
	entries map[string]memoryCodeEntry
}

// NewMemoryCodeStore backs the CodeStore with a process-local map.
// Codes do not survive a restart and are invisible to other instances.
func NewMemoryCodeStore() CodeStore {
	return &memoryCodeStore{entries: make(map[string]memoryCodeEntry)}
}

func (s *memoryCodeStore) Set(
	_ context.Context,
	email, code string,
	ttl time.Duration,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[email] = memoryCodeEntry{
		code:      code,
		expiresAt: time.Now().Add(ttl),
	}
	return nil
}

func (s *memoryCodeStore) Get(
	_ context.Context,
	email string,
) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[email]
	if !ok {
		return "", ErrCodeNotFound
	}

	if time.Now().After(entry.expiresAt) {
		delete(s.entries, email)
		return "", ErrCodeNotFound
	}

	return entry.code, nil
}

func (s *memoryCodeStore) Delete(_ context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, email)
	return nil
}
