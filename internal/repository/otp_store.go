package repository

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/developer-portal/internal/domain"
)

// ErrNoChallenge signals there is no live OTP challenge for a phone
// number (never sent, expired, or already consumed).
var ErrNoChallenge = errors.New("no active otp challenge")

// OTPStore keeps pending one-time codes keyed by phone number.
// Entries expire on their own; Delete consumes a challenge after a
// successful verification.
type OTPStore interface {
	Put(ctx context.Context, challenge *domain.OTPChallenge, ttl time.Duration) error
	Get(ctx context.Context, phone string) (*domain.OTPChallenge, error)
	TTL(ctx context.Context, phone string) (time.Duration, error)
	Delete(ctx context.Context, phone string) error
}

const otpKeyPrefix = "otp:"

type redisOTPStore struct {
	client *redis.Client
}

// NewRedisOTPStore returns a Redis-backed challenge store; the TTL is
// delegated to Redis key expiry.
func NewRedisOTPStore(client *redis.Client) OTPStore {
	return &redisOTPStore{client: client}
}

func (s *redisOTPStore) Put(ctx context.Context, challenge *domain.OTPChallenge, ttl time.Duration) error {
	payload, err := json.Marshal(challenge)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, otpKeyPrefix+challenge.PhoneNumber, payload, ttl).Err()
}

func (s *redisOTPStore) Get(ctx context.Context, phone string) (*domain.OTPChallenge, error) {
	payload, err := s.client.Get(ctx, otpKeyPrefix+phone).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNoChallenge
		}
		return nil, err
	}

	var challenge domain.OTPChallenge
	if err := json.Unmarshal(payload, &challenge); err != nil {
		return nil, err
	}
	return &challenge, nil
}

func (s *redisOTPStore) TTL(ctx context.Context, phone string) (time.Duration, error) {
	ttl, err := s.client.TTL(ctx, otpKeyPrefix+phone).Result()
	if err != nil {
		return 0, err
	}
	if ttl < 0 {
		return 0, ErrNoChallenge
	}
	return ttl, nil
}

func (s *redisOTPStore) Delete(ctx context.Context, phone string) error {
	return s.client.Del(ctx, otpKeyPrefix+phone).Err()
}

type memoryOTPEntry struct {
	challenge domain.OTPChallenge
	expiresAt time.Time
}

// MemoryOTPStore is the in-memory OTPStore used without Redis and in
// tests. The clock is a field so expiry can be simulated.
type MemoryOTPStore struct {
	mu      sync.Mutex
	entries map[string]memoryOTPEntry
	Now     func() time.Time
}

// NewMemoryOTPStore creates an empty in-memory store.
func NewMemoryOTPStore() *MemoryOTPStore {
	return &MemoryOTPStore{
		entries: make(map[string]memoryOTPEntry),
		Now:     time.Now,
	}
}

func (s *MemoryOTPStore) Put(_ context.Context, challenge *domain.OTPChallenge, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[challenge.PhoneNumber] = memoryOTPEntry{
		challenge: *challenge,
		expiresAt: s.Now().Add(ttl),
	}
	return nil
}

func (s *MemoryOTPStore) Get(_ context.Context, phone string) (*domain.OTPChallenge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[phone]
	if !ok || !s.Now().Before(entry.expiresAt) {
		delete(s.entries, phone)
		return nil, ErrNoChallenge
	}
	challenge := entry.challenge
	return &challenge, nil
}

func (s *MemoryOTPStore) TTL(_ context.Context, phone string) (time.Duration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[phone]
	if !ok {
		return 0, ErrNoChallenge
	}
	remaining := entry.expiresAt.Sub(s.Now())
	if remaining <= 0 {
		delete(s.entries, phone)
		return 0, ErrNoChallenge
	}
	return remaining, nil
}

func (s *MemoryOTPStore) Delete(_ context.Context, phone string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, phone)
	return nil
}
