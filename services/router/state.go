package router

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

const lastDomainPrefix = "router:last:"

// StateStore remembers the last resolved domain per user.
type StateStore interface {
	LastDomain(ctx context.Context, userID string) (string, error)
	SetLastDomain(ctx context.Context, userID, domain string) error
}

// RedisStateStore keeps router state in Redis so stickiness survives
// restarts and works across replicas.
type RedisStateStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStateStore(client *redis.Client, ttl time.Duration) *RedisStateStore {
	return &RedisStateStore{client: client, ttl: ttl}
}

func (s *RedisStateStore) LastDomain(ctx context.Context, userID string) (string, error) {
	domain, err := s.client.Get(ctx, lastDomainPrefix+userID).Result()
	if err == redis.Nil {
		return RouteGeneral, nil
	}
	if err != nil {
		return "", err
	}
	return domain, nil
}

func (s *RedisStateStore) SetLastDomain(ctx context.Context, userID, domain string) error {
	return s.client.Set(ctx, lastDomainPrefix+userID, domain, s.ttl).Err()
}

// MemoryStateStore is the in-process fallback used in tests and single-node
// deployments.
type MemoryStateStore struct {
	mu   sync.RWMutex
	last map[string]string
}

func NewMemoryStateStore() *MemoryStateStore {
	return &MemoryStateStore{last: make(map[string]string)}
}

func (s *MemoryStateStore) LastDomain(ctx context.Context, userID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if d, ok := s.last[userID]; ok {
		return d, nil
	}
	return RouteGeneral, nil
}

func (s *MemoryStateStore) SetLastDomain(ctx context.Context, userID, domain string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last[userID] = domain
	return nil
}
