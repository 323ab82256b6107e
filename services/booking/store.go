package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"jetset/models"

	"github.com/go-redis/redis/v8"
)

// DraftStore is the keyed store holding one draft per user for a domain.
// Get returns (nil, nil) when the user has no draft yet.
type DraftStore interface {
	Get(ctx context.Context, userID string) (*models.BookingDraft, error)
	Put(ctx context.Context, userID string, draft *models.BookingDraft) error
	Delete(ctx context.Context, userID string) error
}

// MemoryDraftStore keeps drafts for the process lifetime. It hands out deep
// copies so concurrent readers never share mutable state with the engine.
type MemoryDraftStore struct {
	mu     sync.RWMutex
	drafts map[string]*models.BookingDraft
}

func NewMemoryDraftStore() *MemoryDraftStore {
	return &MemoryDraftStore{drafts: make(map[string]*models.BookingDraft)}
}

func (s *MemoryDraftStore) Get(ctx context.Context, userID string) (*models.BookingDraft, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.drafts[userID].Clone(), nil
}

func (s *MemoryDraftStore) Put(ctx context.Context, userID string, draft *models.BookingDraft) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts[userID] = draft.Clone()
	return nil
}

func (s *MemoryDraftStore) Delete(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, userID)
	return nil
}

// RedisDraftStore externalizes drafts to a keyed Redis store, for deployments
// where the assistant runs more than one replica. A zero TTL keeps drafts
// until explicitly deleted.
type RedisDraftStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisDraftStore(client *redis.Client, domain string, ttl time.Duration) *RedisDraftStore {
	return &RedisDraftStore{
		client: client,
		prefix: fmt.Sprintf("booking:draft:%s:", domain),
		ttl:    ttl,
	}
}

func (s *RedisDraftStore) Get(ctx context.Context, userID string) (*models.BookingDraft, error) {
	data, err := s.client.Get(ctx, s.prefix+userID).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booking draft: %w", err)
	}
	var draft models.BookingDraft
	if err := json.Unmarshal([]byte(data), &draft); err != nil {
		return nil, fmt.Errorf("failed to parse booking draft: %w", err)
	}
	return &draft, nil
}

func (s *RedisDraftStore) Put(ctx context.Context, userID string, draft *models.BookingDraft) error {
	data, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("failed to marshal booking draft: %w", err)
	}
	if err := s.client.Set(ctx, s.prefix+userID, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store booking draft: %w", err)
	}
	return nil
}

func (s *RedisDraftStore) Delete(ctx context.Context, userID string) error {
	if err := s.client.Del(ctx, s.prefix+userID).Err(); err != nil {
		return fmt.Errorf("failed to delete booking draft: %w", err)
	}
	return nil
}
