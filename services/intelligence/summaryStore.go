package intelligence

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	summaryPrefix    = "assistant:summary:"
	transcriptPrefix = "assistant:transcript:"
	counterPrefix    = "assistant:msgcount:"

	// transcriptWindow bounds the rolling window of recent messages kept per
	// user for summarization.
	transcriptWindow = 40
)

// SummaryStore accumulates per-user conversation summaries and the rolling
// transcript they are generated from. Everything here is best-effort side
// state: losing it never affects booking correctness.
type SummaryStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSummaryStore(client *redis.Client, ttl time.Duration) *SummaryStore {
	return &SummaryStore{client: client, ttl: ttl}
}

// RecordMessage appends an inbound message to the user's rolling transcript
// and returns the running message count.
func (s *SummaryStore) RecordMessage(ctx context.Context, userID, text string) (int64, error) {
	key := transcriptPrefix + userID
	pipe := s.client.TxPipeline()
	pipe.RPush(ctx, key, text)
	pipe.LTrim(ctx, key, -transcriptWindow, -1)
	pipe.Expire(ctx, key, s.ttl)
	count := pipe.Incr(ctx, counterPrefix+userID)
	pipe.Expire(ctx, counterPrefix+userID, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return count.Val(), nil
}

// Transcript returns the user's recent messages, oldest first.
func (s *SummaryStore) Transcript(ctx context.Context, userID string) ([]string, error) {
	return s.client.LRange(ctx, transcriptPrefix+userID, 0, -1).Result()
}

// AppendSummary accumulates a generated summary onto the user's record.
func (s *SummaryStore) AppendSummary(ctx context.Context, userID, summary string) error {
	key := summaryPrefix + userID
	existing, err := s.client.Get(ctx, key).Result()
	if err != nil && err != redis.Nil {
		return err
	}
	if existing != "" {
		summary = existing + "\n" + summary
	}
	return s.client.Set(ctx, key, summary, s.ttl).Err()
}

// Summary returns the accumulated summary, or "" when none exists.
func (s *SummaryStore) Summary(ctx context.Context, userID string) (string, error) {
	out, err := s.client.Get(ctx, summaryPrefix+userID).Result()
	if err == redis.Nil {
		return "", nil
	}
	return out, err
}

// Reset clears summary state after a booking is confirmed.
func (s *SummaryStore) Reset(ctx context.Context, userID string) error {
	return s.client.Del(ctx, summaryPrefix+userID, transcriptPrefix+userID, counterPrefix+userID).Err()
}
